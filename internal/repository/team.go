package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository/dao"
)

var (
	ErrTeamNotFound               = dao.ErrTeamNotFound
	ErrMemberNotFound             = dao.ErrMemberNotFound
	ErrAlreadyEnrolled            = dao.ErrAlreadyEnrolled
	ErrInvitationInvalidOrExpired = dao.ErrInvitationInvalidOrExpired
	ErrProjectAlreadySubmitted    = dao.ErrProjectAlreadySubmitted
	ErrProjectNotFound            = dao.ErrProjectNotFound
)

type TeamDAO interface {
	InsertWithEnrollment(ctx context.Context, team dao.Team, leaderID uint, now time.Time) (dao.Team, error)
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	FindByHackathonID(ctx context.Context, hackathonID uint) ([]dao.Team, error)
	FindByHackathonAndLeader(ctx context.Context, hackathonID, leaderID uint) (dao.Team, error)
	FindByLeaderID(ctx context.Context, leaderID uint) ([]dao.Team, error)
	CountMembers(ctx context.Context, teamID uint) (int64, error)
	FindMembers(ctx context.Context, teamID uint) ([]dao.TeamMember, error)
	FindMember(ctx context.Context, teamID, userID uint) (dao.TeamMember, error)
	InsertMemberWithInvitation(ctx context.Context, member dao.TeamMember, invitation dao.TeamInvitation) (dao.TeamInvitation, error)
	InsertInvitation(ctx context.Context, invitation dao.TeamInvitation) (dao.TeamInvitation, error)
	RedeemInvitation(ctx context.Context, token string, now time.Time) (dao.TeamInvitation, error)
	FindEnrollment(ctx context.Context, userID, hackathonID uint) (dao.Enrollment, error)
	InsertProject(ctx context.Context, project dao.Project) (dao.Project, error)
	FindProjectByTeamID(ctx context.Context, teamID uint) (dao.Project, error)
	FindProjectByID(ctx context.Context, id uint) (dao.Project, error)
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

// CreateWithEnrollment persists the team, its leader's enrollment and the
// leader's verified roster slot as one atomic unit.
func (r *TeamRepository) CreateWithEnrollment(ctx context.Context, team domain.Team, now time.Time) (domain.Team, error) {
	created, err := r.dao.InsertWithEnrollment(ctx, r.domainToDao(team), team.TeamLeaderID, now)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.InsertWithEnrollment -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindByHackathonID(ctx context.Context, hackathonID uint) ([]domain.Team, error) {
	found, err := r.dao.FindByHackathonID(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByHackathonID -> %w", err)
	}

	teams := make([]domain.Team, len(found))
	for i, t := range found {
		teams[i] = r.daoToDomain(t)
	}

	return teams, nil
}

func (r *TeamRepository) FindByHackathonAndLeader(ctx context.Context, hackathonID, leaderID uint) (domain.Team, error) {
	found, err := r.dao.FindByHackathonAndLeader(ctx, hackathonID, leaderID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByHackathonAndLeader -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindByLeaderID(ctx context.Context, leaderID uint) ([]domain.Team, error) {
	found, err := r.dao.FindByLeaderID(ctx, leaderID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByLeaderID -> %w", err)
	}

	teams := make([]domain.Team, len(found))
	for i, t := range found {
		teams[i] = r.daoToDomain(t)
	}

	return teams, nil
}

func (r *TeamRepository) CountMembers(ctx context.Context, teamID uint) (int, error) {
	count, err := r.dao.CountMembers(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountMembers -> %w", err)
	}

	return int(count), nil
}

func (r *TeamRepository) FindMembers(ctx context.Context, teamID uint) ([]domain.TeamMember, error) {
	found, err := r.dao.FindMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMembers -> %w", err)
	}

	members := make([]domain.TeamMember, len(found))
	for i, m := range found {
		members[i] = r.memberDaoToDomain(m)
	}

	return members, nil
}

func (r *TeamRepository) FindMember(ctx context.Context, teamID, userID uint) (domain.TeamMember, error) {
	found, err := r.dao.FindMember(ctx, teamID, userID)
	if err != nil {
		return domain.TeamMember{}, fmt.Errorf("r.dao.FindMember -> %w", err)
	}

	return r.memberDaoToDomain(found), nil
}

// AddMemberWithInvitation creates an unverified roster slot plus its
// invitation in one transaction and returns the issued invitation.
func (r *TeamRepository) AddMemberWithInvitation(ctx context.Context, teamID, userID uint, invitation domain.TeamInvitation, now time.Time) (domain.TeamInvitation, error) {
	created, err := r.dao.InsertMemberWithInvitation(ctx,
		dao.TeamMember{
			TeamID:   teamID,
			UserID:   userID,
			Verified: false,
			JoinedAt: now,
		},
		r.invitationDomainToDao(invitation),
	)
	if err != nil {
		return domain.TeamInvitation{}, fmt.Errorf("r.dao.InsertMemberWithInvitation -> %w", err)
	}

	return r.invitationDaoToDomain(created), nil
}

func (r *TeamRepository) CreateInvitation(ctx context.Context, invitation domain.TeamInvitation) (domain.TeamInvitation, error) {
	created, err := r.dao.InsertInvitation(ctx, r.invitationDomainToDao(invitation))
	if err != nil {
		return domain.TeamInvitation{}, fmt.Errorf("r.dao.InsertInvitation -> %w", err)
	}

	return r.invitationDaoToDomain(created), nil
}

func (r *TeamRepository) RedeemInvitation(ctx context.Context, token string, now time.Time) (domain.TeamInvitation, error) {
	redeemed, err := r.dao.RedeemInvitation(ctx, token, now)
	if err != nil {
		return domain.TeamInvitation{}, fmt.Errorf("r.dao.RedeemInvitation -> %w", err)
	}

	return r.invitationDaoToDomain(redeemed), nil
}

func (r *TeamRepository) IsEnrolled(ctx context.Context, userID, hackathonID uint) (bool, error) {
	_, err := r.dao.FindEnrollment(ctx, userID, hackathonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("r.dao.FindEnrollment -> %w", err)
	}

	return true, nil
}

func (r *TeamRepository) CreateProject(ctx context.Context, project domain.Project) (domain.Project, error) {
	created, err := r.dao.InsertProject(ctx, dao.Project{
		TeamID:      project.TeamID,
		HackathonID: project.HackathonID,
		ProjectName: project.ProjectName,
		Description: project.Description,
		GithubURL:   project.GithubURL,
		DemoURL:     project.DemoURL,
		SubmittedAt: project.SubmittedAt,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.InsertProject -> %w", err)
	}

	return r.projectDaoToDomain(created), nil
}

func (r *TeamRepository) FindProjectByTeamID(ctx context.Context, teamID uint) (domain.Project, error) {
	found, err := r.dao.FindProjectByTeamID(ctx, teamID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindProjectByTeamID -> %w", err)
	}

	return r.projectDaoToDomain(found), nil
}

func (r *TeamRepository) FindProjectByID(ctx context.Context, id uint) (domain.Project, error) {
	found, err := r.dao.FindProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("r.dao.FindProjectByID -> %w", err)
	}

	return r.projectDaoToDomain(found), nil
}

func (r *TeamRepository) domainToDao(t domain.Team) dao.Team {
	return dao.Team{
		ID:            t.ID,
		HackathonID:   t.HackathonID,
		TeamName:      t.TeamName,
		Description:   t.Description,
		TeamLeaderID:  t.TeamLeaderID,
		TeamSize:      t.TeamSize,
		TopicID:       t.TopicID,
		ProjectStatus: t.ProjectStatus,
	}
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:            t.ID,
		HackathonID:   t.HackathonID,
		TeamName:      t.TeamName,
		Description:   t.Description,
		TeamLeaderID:  t.TeamLeaderID,
		TeamSize:      t.TeamSize,
		TopicID:       t.TopicID,
		ProjectStatus: t.ProjectStatus,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TeamRepository) memberDaoToDomain(m dao.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Verified: m.Verified,
		JoinedAt: m.JoinedAt,
		User: domain.User{
			ID:          m.User.ID,
			Email:       m.User.Email,
			FirstName:   m.User.FirstName,
			LastName:    m.User.LastName,
			CollegeName: m.User.CollegeName,
			Gender:      m.User.Gender,
			UserType:    m.User.UserType,
			Status:      domain.UserStatus(m.User.Status),
		},
	}
}

func (r *TeamRepository) invitationDomainToDao(i domain.TeamInvitation) dao.TeamInvitation {
	return dao.TeamInvitation{
		TeamID:           i.TeamID,
		InvitedUserID:    i.InvitedUserID,
		InvitationToken:  i.InvitationToken,
		ExpiresAt:        i.ExpiresAt,
		InvitationStatus: i.Status,
	}
}

func (r *TeamRepository) invitationDaoToDomain(i dao.TeamInvitation) domain.TeamInvitation {
	return domain.TeamInvitation{
		ID:              i.ID,
		TeamID:          i.TeamID,
		InvitedUserID:   i.InvitedUserID,
		InvitationToken: i.InvitationToken,
		ExpiresAt:       i.ExpiresAt,
		Status:          i.InvitationStatus,
		CreatedAt:       i.CreatedAt,
	}
}

func (r *TeamRepository) projectDaoToDomain(p dao.Project) domain.Project {
	return domain.Project{
		ID:          p.ID,
		TeamID:      p.TeamID,
		HackathonID: p.HackathonID,
		ProjectName: p.ProjectName,
		Description: p.Description,
		GithubURL:   p.GithubURL,
		DemoURL:     p.DemoURL,
		SubmittedAt: p.SubmittedAt,
	}
}
