package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository/dao"
)

var (
	ErrHackathonNotFound   = dao.ErrHackathonNotFound
	ErrPrizeNotFound       = dao.ErrPrizeNotFound
	ErrPrizeAlreadyAwarded = dao.ErrPrizeAlreadyAwarded
	ErrTopicNotFound       = dao.ErrTopicNotFound
)

type HackathonDAO interface {
	Insert(ctx context.Context, hackathon dao.Hackathon) (dao.Hackathon, error)
	Update(ctx context.Context, hackathon dao.Hackathon) (dao.Hackathon, error)
	FindByID(ctx context.Context, id uint) (dao.Hackathon, error)
	FindOpenForRegistration(ctx context.Context, now time.Time) ([]dao.Hackathon, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]dao.Hackathon, error)
	InsertTopics(ctx context.Context, topics []dao.Topic) ([]dao.Topic, error)
	FindTopics(ctx context.Context, hackathonID uint) ([]dao.Topic, error)
	FindTopicByID(ctx context.Context, id uint) (dao.Topic, error)
	InsertPrize(ctx context.Context, prize dao.Prize) (dao.Prize, error)
	FindPrizeByID(ctx context.Context, id uint) (dao.Prize, error)
	FindPrizes(ctx context.Context, hackathonID uint) ([]dao.Prize, error)
	InsertWinner(ctx context.Context, winner dao.Winner) (dao.Winner, error)
	CountStats(ctx context.Context, hackathonID uint) (teams, projects, prizes, judges int64, err error)
}

type HackathonRepository struct {
	dao HackathonDAO
}

func NewHackathonRepository(dao HackathonDAO) *HackathonRepository {
	return &HackathonRepository{
		dao: dao,
	}
}

func (r *HackathonRepository) Create(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(hackathon))
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *HackathonRepository) Update(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(hackathon))
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *HackathonRepository) FindByID(ctx context.Context, id uint) (domain.Hackathon, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *HackathonRepository) FindOpenForRegistration(ctx context.Context, now time.Time) ([]domain.Hackathon, error) {
	found, err := r.dao.FindOpenForRegistration(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOpenForRegistration -> %w", err)
	}

	hackathons := make([]domain.Hackathon, len(found))
	for i, h := range found {
		hackathons[i] = r.daoToDomain(h)
	}

	return hackathons, nil
}

func (r *HackathonRepository) FindByOrganizerID(ctx context.Context, organizerID uint) ([]domain.Hackathon, error) {
	found, err := r.dao.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrganizerID -> %w", err)
	}

	hackathons := make([]domain.Hackathon, len(found))
	for i, h := range found {
		hackathons[i] = r.daoToDomain(h)
	}

	return hackathons, nil
}

func (r *HackathonRepository) AddTopics(ctx context.Context, topics []domain.Topic) ([]domain.Topic, error) {
	daoTopics := make([]dao.Topic, len(topics))
	for i, t := range topics {
		daoTopics[i] = dao.Topic{
			HackathonID: t.HackathonID,
			Title:       t.Title,
			CreatedBy:   t.CreatedBy,
		}
	}

	created, err := r.dao.InsertTopics(ctx, daoTopics)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertTopics -> %w", err)
	}

	result := make([]domain.Topic, len(created))
	for i, t := range created {
		result[i] = r.topicDaoToDomain(t)
	}

	return result, nil
}

func (r *HackathonRepository) FindTopics(ctx context.Context, hackathonID uint) ([]domain.Topic, error) {
	found, err := r.dao.FindTopics(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTopics -> %w", err)
	}

	topics := make([]domain.Topic, len(found))
	for i, t := range found {
		topics[i] = r.topicDaoToDomain(t)
	}

	return topics, nil
}

func (r *HackathonRepository) FindTopicByID(ctx context.Context, id uint) (domain.Topic, error) {
	found, err := r.dao.FindTopicByID(ctx, id)
	if err != nil {
		return domain.Topic{}, fmt.Errorf("r.dao.FindTopicByID -> %w", err)
	}

	return r.topicDaoToDomain(found), nil
}

func (r *HackathonRepository) AddPrize(ctx context.Context, prize domain.Prize) (domain.Prize, error) {
	created, err := r.dao.InsertPrize(ctx, dao.Prize{
		HackathonID: prize.HackathonID,
		PrizeName:   prize.PrizeName,
		Description: prize.Description,
		Position:    prize.Position,
	})
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.InsertPrize -> %w", err)
	}

	return r.prizeDaoToDomain(created), nil
}

func (r *HackathonRepository) FindPrizeByID(ctx context.Context, id uint) (domain.Prize, error) {
	found, err := r.dao.FindPrizeByID(ctx, id)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("r.dao.FindPrizeByID -> %w", err)
	}

	return r.prizeDaoToDomain(found), nil
}

func (r *HackathonRepository) FindPrizes(ctx context.Context, hackathonID uint) ([]domain.Prize, error) {
	found, err := r.dao.FindPrizes(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPrizes -> %w", err)
	}

	prizes := make([]domain.Prize, len(found))
	for i, p := range found {
		prizes[i] = r.prizeDaoToDomain(p)
	}

	return prizes, nil
}

func (r *HackathonRepository) DeclareWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error) {
	created, err := r.dao.InsertWinner(ctx, dao.Winner{
		PrizeID:   winner.PrizeID,
		TeamID:    winner.TeamID,
		AwardedAt: winner.AwardedAt,
	})
	if err != nil {
		return domain.Winner{}, fmt.Errorf("r.dao.InsertWinner -> %w", err)
	}

	return r.winnerDaoToDomain(created), nil
}

func (r *HackathonRepository) Stats(ctx context.Context, hackathonID uint) (domain.HackathonStats, error) {
	teams, projects, prizes, judges, err := r.dao.CountStats(ctx, hackathonID)
	if err != nil {
		return domain.HackathonStats{}, fmt.Errorf("r.dao.CountStats -> %w", err)
	}

	return domain.HackathonStats{
		TotalTeams:    teams,
		TotalProjects: projects,
		TotalPrizes:   prizes,
		TotalJudges:   judges,
	}, nil
}

func (r *HackathonRepository) domainToDao(h domain.Hackathon) dao.Hackathon {
	return dao.Hackathon{
		ID:                    h.ID,
		OrganizerID:           h.OrganizerID,
		Title:                 h.Title,
		Description:           h.Description,
		StartDate:             h.StartDate,
		EndDate:               h.EndDate,
		RegistrationStartDate: h.RegistrationStartDate,
		RegistrationEndDate:   h.RegistrationEndDate,
		MaxTeamSize:           h.MaxTeamSize,
	}
}

func (r *HackathonRepository) daoToDomain(h dao.Hackathon) domain.Hackathon {
	return domain.Hackathon{
		ID:                    h.ID,
		OrganizerID:           h.OrganizerID,
		Title:                 h.Title,
		Description:           h.Description,
		StartDate:             h.StartDate,
		EndDate:               h.EndDate,
		RegistrationStartDate: h.RegistrationStartDate,
		RegistrationEndDate:   h.RegistrationEndDate,
		MaxTeamSize:           h.MaxTeamSize,
		CreatedAt:             h.CreatedAt,
		UpdatedAt:             h.UpdatedAt,
	}
}

func (r *HackathonRepository) topicDaoToDomain(t dao.Topic) domain.Topic {
	return domain.Topic{
		ID:          t.ID,
		HackathonID: t.HackathonID,
		Title:       t.Title,
		CreatedBy:   t.CreatedBy,
	}
}

func (r *HackathonRepository) prizeDaoToDomain(p dao.Prize) domain.Prize {
	prize := domain.Prize{
		ID:          p.ID,
		HackathonID: p.HackathonID,
		PrizeName:   p.PrizeName,
		Description: p.Description,
		Position:    p.Position,
	}
	if p.Winner != nil {
		winner := r.winnerDaoToDomain(*p.Winner)
		prize.Winner = &winner
	}

	return prize
}

func (r *HackathonRepository) winnerDaoToDomain(w dao.Winner) domain.Winner {
	return domain.Winner{
		ID:        w.ID,
		PrizeID:   w.PrizeID,
		TeamID:    w.TeamID,
		AwardedAt: w.AwardedAt,
	}
}
