package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository"
)

const invitationTTL = 48 * time.Hour

var (
	ErrTeamNotFound               = repository.ErrTeamNotFound
	ErrMemberNotFound             = repository.ErrMemberNotFound
	ErrAlreadyEnrolled            = repository.ErrAlreadyEnrolled
	ErrInvitationInvalidOrExpired = repository.ErrInvitationInvalidOrExpired
	ErrProjectAlreadySubmitted    = repository.ErrProjectAlreadySubmitted
	ErrProjectNotFound            = repository.ErrProjectNotFound

	ErrRegistrationClosed    = errors.New("registration window is closed")
	ErrTeamSizeExceeded      = errors.New("team size exceeds the hackathon limit")
	ErrRosterFull            = errors.New("team roster is already full")
	ErrNotTeamLeader         = errors.New("only the team leader may perform this action")
	ErrMemberAlreadyVerified = errors.New("member has already verified their invitation")
	ErrTeamNotReady          = errors.New("team roster must be complete and fully verified")
)

type TeamRepository interface {
	CreateWithEnrollment(ctx context.Context, team domain.Team, now time.Time) (domain.Team, error)
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindByHackathonID(ctx context.Context, hackathonID uint) ([]domain.Team, error)
	FindByLeaderID(ctx context.Context, leaderID uint) ([]domain.Team, error)
	CountMembers(ctx context.Context, teamID uint) (int, error)
	FindMembers(ctx context.Context, teamID uint) ([]domain.TeamMember, error)
	FindMember(ctx context.Context, teamID, userID uint) (domain.TeamMember, error)
	AddMemberWithInvitation(ctx context.Context, teamID, userID uint, invitation domain.TeamInvitation, now time.Time) (domain.TeamInvitation, error)
	CreateInvitation(ctx context.Context, invitation domain.TeamInvitation) (domain.TeamInvitation, error)
	RedeemInvitation(ctx context.Context, token string, now time.Time) (domain.TeamInvitation, error)
	IsEnrolled(ctx context.Context, userID, hackathonID uint) (bool, error)
	CreateProject(ctx context.Context, project domain.Project) (domain.Project, error)
	FindProjectByTeamID(ctx context.Context, teamID uint) (domain.Project, error)
}

type TeamUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type TeamHackathonRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
	FindTopicByID(ctx context.Context, id uint) (domain.Topic, error)
}

type TeamService struct {
	repo          TeamRepository
	userRepo      TeamUserRepository
	hackathonRepo TeamHackathonRepository
	sender        NotificationSender
}

func NewTeamService(repo TeamRepository, userRepo TeamUserRepository, hackathonRepo TeamHackathonRepository, sender NotificationSender) *TeamService {
	return &TeamService{
		repo:          repo,
		userRepo:      userRepo,
		hackathonRepo: hackathonRepo,
		sender:        sender,
	}
}

// Enroll creates a team inside an open registration window. The team, the
// leader's enrollment and the leader's verified roster slot are written in
// one transaction, so a concurrent double enroll loses on the enrollment
// uniqueness and surfaces as ErrAlreadyEnrolled.
func (s *TeamService) Enroll(ctx context.Context, leaderID uint, team domain.Team) (domain.Team, error) {
	hackathon, err := s.hackathonRepo.FindByID(ctx, team.HackathonID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.hackathonRepo.FindByID -> %w", err)
	}

	now := time.Now()
	if !hackathon.RegistrationOpen(now) {
		return domain.Team{}, ErrRegistrationClosed
	}

	if team.TeamSize < 1 || team.TeamSize > hackathon.MaxTeamSize {
		return domain.Team{}, ErrTeamSizeExceeded
	}

	topic, err := s.hackathonRepo.FindTopicByID(ctx, team.TopicID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.hackathonRepo.FindTopicByID -> %w", err)
	}
	if topic.HackathonID != team.HackathonID {
		return domain.Team{}, repository.ErrTopicNotFound
	}

	team.TeamLeaderID = leaderID
	team.ProjectStatus = domain.ProjectNotSubmitted

	created, err := s.repo.CreateWithEnrollment(ctx, team, now)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.CreateWithEnrollment -> %w", err)
	}

	return created, nil
}

// UpdateMembers fills roster slots from the leader's descriptors. Emails
// without an account get a placeholder user, emails already on the roster
// are skipped, and every new slot gets a fresh single-use invitation.
// Invitation emails go out only after each slot is committed; delivery
// failures come back as warnings and never undo the slot.
func (s *TeamService) UpdateMembers(ctx context.Context, leaderID, teamID uint, descriptors []domain.MemberDescriptor) ([]domain.IssuedInvitation, []string, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if team.TeamLeaderID != leaderID {
		return nil, nil, ErrNotTeamLeader
	}

	count, err := s.repo.CountMembers(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.repo.CountMembers -> %w", err)
	}

	now := time.Now()
	hackathon, err := s.hackathonRepo.FindByID(ctx, team.HackathonID)
	if err != nil {
		return nil, nil, fmt.Errorf("s.hackathonRepo.FindByID -> %w", err)
	}

	var (
		issued   []domain.IssuedInvitation
		warnings []string
	)
	for _, descriptor := range descriptors {
		user, err := s.resolveMemberUser(ctx, descriptor)
		if err != nil {
			return issued, warnings, err
		}

		_, err = s.repo.FindMember(ctx, teamID, user.ID)
		if err == nil {
			// Already on the roster, nothing to do.
			continue
		}
		if !errors.Is(err, repository.ErrMemberNotFound) {
			return issued, warnings, fmt.Errorf("s.repo.FindMember -> %w", err)
		}

		if count >= team.TeamSize {
			return issued, warnings, ErrRosterFull
		}

		invitation := domain.TeamInvitation{
			TeamID:          teamID,
			InvitedUserID:   user.ID,
			InvitationToken: uuid.NewString(),
			ExpiresAt:       now.Add(invitationTTL),
			Status:          domain.InvitationPending,
		}

		created, err := s.repo.AddMemberWithInvitation(ctx, teamID, user.ID, invitation, now)
		if err != nil {
			return issued, warnings, fmt.Errorf("s.repo.AddMemberWithInvitation -> %w", err)
		}
		count++

		issued = append(issued, domain.IssuedInvitation{
			Email: user.Email,
			Token: created.InvitationToken,
		})

		if err = s.sender.SendTeamInvitation(ctx, user.Email, team.TeamName, hackathon.Title, created.InvitationToken, created.ExpiresAt); err != nil {
			zap.L().Warn("failed to send invitation email",
				zap.String("email", user.Email),
				zap.Uint("team_id", teamID),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("invitation for %v could not be emailed", user.Email))
		}
	}

	return issued, warnings, nil
}

// AcceptInvitation redeems a token. The flip from pending to accepted is a
// conditional update keyed on the token, its status and its expiry, so a
// replayed or expired token fails without leaking which condition failed.
func (s *TeamService) AcceptInvitation(ctx context.Context, token string) (domain.TeamInvitation, error) {
	redeemed, err := s.repo.RedeemInvitation(ctx, token, time.Now())
	if err != nil {
		return domain.TeamInvitation{}, fmt.Errorf("s.repo.RedeemInvitation -> %w", err)
	}

	return redeemed, nil
}

// ResendInvitation issues a fresh token for an unverified member. Earlier
// pending tokens are left alone and age out via their own expiry.
func (s *TeamService) ResendInvitation(ctx context.Context, leaderID, teamID, userID uint) (domain.IssuedInvitation, []string, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return domain.IssuedInvitation{}, nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if team.TeamLeaderID != leaderID {
		return domain.IssuedInvitation{}, nil, ErrNotTeamLeader
	}

	member, err := s.repo.FindMember(ctx, teamID, userID)
	if err != nil {
		return domain.IssuedInvitation{}, nil, fmt.Errorf("s.repo.FindMember -> %w", err)
	}
	if member.Verified {
		return domain.IssuedInvitation{}, nil, ErrMemberAlreadyVerified
	}

	hackathon, err := s.hackathonRepo.FindByID(ctx, team.HackathonID)
	if err != nil {
		return domain.IssuedInvitation{}, nil, fmt.Errorf("s.hackathonRepo.FindByID -> %w", err)
	}

	now := time.Now()
	created, err := s.repo.CreateInvitation(ctx, domain.TeamInvitation{
		TeamID:          teamID,
		InvitedUserID:   userID,
		InvitationToken: uuid.NewString(),
		ExpiresAt:       now.Add(invitationTTL),
		Status:          domain.InvitationPending,
	})
	if err != nil {
		return domain.IssuedInvitation{}, nil, fmt.Errorf("s.repo.CreateInvitation -> %w", err)
	}

	invitation := domain.IssuedInvitation{
		Email: member.User.Email,
		Token: created.InvitationToken,
	}

	var warnings []string
	if err = s.sender.SendTeamInvitation(ctx, member.User.Email, team.TeamName, hackathon.Title, created.InvitationToken, created.ExpiresAt); err != nil {
		zap.L().Warn("failed to send invitation email",
			zap.String("email", member.User.Email),
			zap.Uint("team_id", teamID),
			zap.Error(err),
		)
		warnings = append(warnings, fmt.Sprintf("invitation for %v could not be emailed", member.User.Email))
	}

	return invitation, warnings, nil
}

// GetTeamDetails returns the team with its roster and readiness flags.
func (s *TeamService) GetTeamDetails(ctx context.Context, teamID uint) (domain.TeamDetails, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return domain.TeamDetails{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	leader, err := s.userRepo.FindByID(ctx, team.TeamLeaderID)
	if err != nil {
		return domain.TeamDetails{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	members, err := s.repo.FindMembers(ctx, teamID)
	if err != nil {
		return domain.TeamDetails{}, fmt.Errorf("s.repo.FindMembers -> %w", err)
	}

	topic, err := s.hackathonRepo.FindTopicByID(ctx, team.TopicID)
	if err != nil {
		return domain.TeamDetails{}, fmt.Errorf("s.hackathonRepo.FindTopicByID -> %w", err)
	}

	details := domain.TeamDetails{
		Team:            team,
		Leader:          leader,
		Members:         members,
		TopicTitle:      topic.Title,
		AllMembersAdded: team.RosterComplete(len(members)),
	}
	details.ReadyToSubmit = details.AllMembersAdded &&
		domain.RosterVerified(members) &&
		team.ProjectStatus != domain.ProjectSubmitted

	project, err := s.repo.FindProjectByTeamID(ctx, teamID)
	if err != nil {
		if !errors.Is(err, repository.ErrProjectNotFound) {
			return domain.TeamDetails{}, fmt.Errorf("s.repo.FindProjectByTeamID -> %w", err)
		}
	} else {
		details.Project = &project
	}

	return details, nil
}

// SubmitProject records the team's single submission. The roster must be
// complete and fully verified; the insert and the team status flip happen
// in one transaction and a duplicate submit loses on the per-team
// uniqueness of projects.
func (s *TeamService) SubmitProject(ctx context.Context, leaderID uint, project domain.Project) (domain.Project, error) {
	team, err := s.repo.FindByID(ctx, project.TeamID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if team.TeamLeaderID != leaderID {
		return domain.Project{}, ErrNotTeamLeader
	}
	if team.ProjectStatus == domain.ProjectSubmitted {
		return domain.Project{}, ErrProjectAlreadySubmitted
	}

	members, err := s.repo.FindMembers(ctx, project.TeamID)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.FindMembers -> %w", err)
	}
	if !team.RosterComplete(len(members)) || !domain.RosterVerified(members) {
		return domain.Project{}, ErrTeamNotReady
	}

	project.HackathonID = team.HackathonID
	project.SubmittedAt = time.Now()

	created, err := s.repo.CreateProject(ctx, project)
	if err != nil {
		return domain.Project{}, fmt.Errorf("s.repo.CreateProject -> %w", err)
	}

	return created, nil
}

func (s *TeamService) GetTeamsByLeader(ctx context.Context, leaderID uint) ([]domain.Team, error) {
	teams, err := s.repo.FindByLeaderID(ctx, leaderID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByLeaderID -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) GetTeamsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Team, error) {
	teams, err := s.repo.FindByHackathonID(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByHackathonID -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) IsEnrolled(ctx context.Context, userID, hackathonID uint) (bool, error) {
	enrolled, err := s.repo.IsEnrolled(ctx, userID, hackathonID)
	if err != nil {
		return false, fmt.Errorf("s.repo.IsEnrolled -> %w", err)
	}

	return enrolled, nil
}

// resolveMemberUser finds the account behind a descriptor's email, creating
// a placeholder account when none exists yet. The placeholder carries an
// unguessable password hash and is claimed during signup.
func (s *TeamService) resolveMemberUser(ctx context.Context, descriptor domain.MemberDescriptor) (domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, descriptor.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.userRepo.FindByEmail -> %w", err)
	}

	hashedPassword, err := hashPassword(uuid.NewString())
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.userRepo.Create(ctx, domain.User{
		Email:        descriptor.Email,
		PasswordHash: hashedPassword,
		FirstName:    descriptor.FirstName,
		LastName:     descriptor.LastName,
		CollegeName:  descriptor.CollegeName,
		Gender:       descriptor.Gender,
		UserType:     domain.UserTypeParticipant,
		Status:       domain.UserPlaceholder,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.Create -> %w", err)
	}

	return created, nil
}
