package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository"
)

var (
	ErrHackathonNotFound   = repository.ErrHackathonNotFound
	ErrPrizeNotFound       = repository.ErrPrizeNotFound
	ErrPrizeAlreadyAwarded = repository.ErrPrizeAlreadyAwarded
	ErrTopicNotFound       = repository.ErrTopicNotFound
	ErrInvalidDateOrder    = domain.ErrInvalidDateOrder

	ErrNotOrganizer       = errors.New("only the hackathon organizer may perform this action")
	ErrTeamNotInHackathon = errors.New("team does not belong to this hackathon")
)

type HackathonRepository interface {
	Create(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error)
	Update(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error)
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
	FindOpenForRegistration(ctx context.Context, now time.Time) ([]domain.Hackathon, error)
	FindByOrganizerID(ctx context.Context, organizerID uint) ([]domain.Hackathon, error)
	AddTopics(ctx context.Context, topics []domain.Topic) ([]domain.Topic, error)
	FindTopics(ctx context.Context, hackathonID uint) ([]domain.Topic, error)
	AddPrize(ctx context.Context, prize domain.Prize) (domain.Prize, error)
	FindPrizeByID(ctx context.Context, id uint) (domain.Prize, error)
	FindPrizes(ctx context.Context, hackathonID uint) ([]domain.Prize, error)
	DeclareWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error)
	Stats(ctx context.Context, hackathonID uint) (domain.HackathonStats, error)
}

type HackathonTeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindByHackathonID(ctx context.Context, hackathonID uint) ([]domain.Team, error)
}

type HackathonUserRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
}

type HackathonService struct {
	repo     HackathonRepository
	teamRepo HackathonTeamRepository
	userRepo HackathonUserRepository
	sender   NotificationSender
}

func NewHackathonService(repo HackathonRepository, teamRepo HackathonTeamRepository, userRepo HackathonUserRepository, sender NotificationSender) *HackathonService {
	return &HackathonService{
		repo:     repo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		sender:   sender,
	}
}

func (s *HackathonService) CreateHackathon(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	if err := hackathon.ValidateDates(); err != nil {
		return domain.Hackathon{}, err
	}

	created, err := s.repo.Create(ctx, hackathon)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *HackathonService) UpdateHackathon(ctx context.Context, organizerID uint, hackathon domain.Hackathon) (domain.Hackathon, error) {
	existing, err := s.repo.FindByID(ctx, hackathon.ID)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if existing.OrganizerID != organizerID {
		return domain.Hackathon{}, ErrNotOrganizer
	}

	if err = hackathon.ValidateDates(); err != nil {
		return domain.Hackathon{}, err
	}

	hackathon.OrganizerID = organizerID

	updated, err := s.repo.Update(ctx, hackathon)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *HackathonService) GetHackathon(ctx context.Context, id uint) (domain.Hackathon, error) {
	hackathon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return hackathon, nil
}

func (s *HackathonService) ListOpenHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	hackathons, err := s.repo.FindOpenForRegistration(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindOpenForRegistration -> %w", err)
	}

	return hackathons, nil
}

func (s *HackathonService) ListByOrganizer(ctx context.Context, organizerID uint) ([]domain.Hackathon, error) {
	hackathons, err := s.repo.FindByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOrganizerID -> %w", err)
	}

	return hackathons, nil
}

func (s *HackathonService) AddTopics(ctx context.Context, organizerID, hackathonID uint, titles []string) ([]domain.Topic, error) {
	hackathon, err := s.repo.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.OrganizerID != organizerID {
		return nil, ErrNotOrganizer
	}

	topics := make([]domain.Topic, len(titles))
	for i, title := range titles {
		topics[i] = domain.Topic{
			HackathonID: hackathonID,
			Title:       title,
			CreatedBy:   organizerID,
		}
	}

	created, err := s.repo.AddTopics(ctx, topics)
	if err != nil {
		return nil, fmt.Errorf("s.repo.AddTopics -> %w", err)
	}

	return created, nil
}

func (s *HackathonService) GetTopics(ctx context.Context, hackathonID uint) ([]domain.Topic, error) {
	topics, err := s.repo.FindTopics(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTopics -> %w", err)
	}

	return topics, nil
}

func (s *HackathonService) AddPrize(ctx context.Context, organizerID uint, prize domain.Prize) (domain.Prize, error) {
	hackathon, err := s.repo.FindByID(ctx, prize.HackathonID)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.OrganizerID != organizerID {
		return domain.Prize{}, ErrNotOrganizer
	}

	created, err := s.repo.AddPrize(ctx, prize)
	if err != nil {
		return domain.Prize{}, fmt.Errorf("s.repo.AddPrize -> %w", err)
	}

	return created, nil
}

func (s *HackathonService) GetPrizes(ctx context.Context, hackathonID uint) ([]domain.Prize, error) {
	prizes, err := s.repo.FindPrizes(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPrizes -> %w", err)
	}

	return prizes, nil
}

// DeclareWinner awards a prize to a team. Each prize carries a unique
// winner slot in storage, so concurrent declarations for the same prize
// collapse to one winner and the loser gets ErrPrizeAlreadyAwarded.
// After the winner row is committed, every team leader in the hackathon
// gets the announcement and the winning leader additionally gets a
// congratulation. Email failures come back as warnings.
func (s *HackathonService) DeclareWinner(ctx context.Context, organizerID, prizeID, teamID uint) (domain.Winner, []string, error) {
	prize, err := s.repo.FindPrizeByID(ctx, prizeID)
	if err != nil {
		return domain.Winner{}, nil, fmt.Errorf("s.repo.FindPrizeByID -> %w", err)
	}

	hackathon, err := s.repo.FindByID(ctx, prize.HackathonID)
	if err != nil {
		return domain.Winner{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.OrganizerID != organizerID {
		return domain.Winner{}, nil, ErrNotOrganizer
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return domain.Winner{}, nil, fmt.Errorf("s.teamRepo.FindByID -> %w", err)
	}
	if team.HackathonID != prize.HackathonID {
		return domain.Winner{}, nil, ErrTeamNotInHackathon
	}

	winner, err := s.repo.DeclareWinner(ctx, domain.Winner{
		PrizeID:   prizeID,
		TeamID:    teamID,
		AwardedAt: time.Now(),
	})
	if err != nil {
		return domain.Winner{}, nil, fmt.Errorf("s.repo.DeclareWinner -> %w", err)
	}

	var warnings []string
	teams, err := s.teamRepo.FindByHackathonID(ctx, prize.HackathonID)
	if err != nil {
		zap.L().Warn("failed to load teams for winner announcement",
			zap.Uint("hackathon_id", prize.HackathonID),
			zap.Error(err),
		)

		return winner, []string{"winner announcement emails could not be sent"}, nil
	}

	leaderIDs := make([]uint, len(teams))
	for i, t := range teams {
		leaderIDs[i] = t.TeamLeaderID
	}

	leaders, err := s.userRepo.FindByIDs(ctx, leaderIDs)
	if err != nil {
		zap.L().Warn("failed to load team leaders for winner announcement",
			zap.Uint("hackathon_id", prize.HackathonID),
			zap.Error(err),
		)

		return winner, []string{"winner announcement emails could not be sent"}, nil
	}

	for _, leader := range leaders {
		if err = s.sender.SendWinnerAnnouncement(ctx, leader.Email, team.TeamName, prize.PrizeName, hackathon.Title); err != nil {
			zap.L().Warn("failed to send winner announcement",
				zap.String("email", leader.Email),
				zap.Uint("team_id", teamID),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("announcement for %v could not be emailed", leader.Email))
		}

		if leader.ID != team.TeamLeaderID {
			continue
		}

		if err = s.sender.SendWinnerCongratulation(ctx, leader.Email, team.TeamName, prize.PrizeName, hackathon.Title); err != nil {
			zap.L().Warn("failed to send winner congratulation",
				zap.String("email", leader.Email),
				zap.Uint("team_id", teamID),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("congratulation for %v could not be emailed", leader.Email))
		}
	}

	return winner, warnings, nil
}

func (s *HackathonService) GetStats(ctx context.Context, organizerID, hackathonID uint) (domain.HackathonStats, error) {
	hackathon, err := s.repo.FindByID(ctx, hackathonID)
	if err != nil {
		return domain.HackathonStats{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.OrganizerID != organizerID {
		return domain.HackathonStats{}, ErrNotOrganizer
	}

	stats, err := s.repo.Stats(ctx, hackathonID)
	if err != nil {
		return domain.HackathonStats{}, fmt.Errorf("s.repo.Stats -> %w", err)
	}

	return stats, nil
}
