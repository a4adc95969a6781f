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
	ErrJudgeAlreadyAssigned = repository.ErrJudgeAlreadyAssigned
	ErrAssignmentNotFound   = repository.ErrAssignmentNotFound
	ErrAssignmentNotPending = repository.ErrAssignmentNotPending
	ErrProjectAlreadyScored = repository.ErrProjectAlreadyScored
	ErrScoreNotFound        = repository.ErrScoreNotFound

	ErrNotAJudge               = errors.New("user is not a judge")
	ErrNotAssignedToTeam       = errors.New("judge is not assigned to this team")
	ErrInvalidAssignmentStatus = errors.New("assignment status must be accepted or rejected")
	ErrScoreOutOfRange         = fmt.Errorf("score must be between %d and %d", domain.MinScore, domain.MaxScore)
)

type JudgingRepository interface {
	CreateAssignment(ctx context.Context, assignment domain.JudgeAssignment) (domain.JudgeAssignment, error)
	FindAssignmentsByJudgeID(ctx context.Context, judgeID uint) ([]domain.JudgeAssignment, error)
	HasAssignment(ctx context.Context, judgeID, teamID uint) (bool, error)
	UpdateAssignmentStatus(ctx context.Context, id, judgeID uint, status string) (domain.JudgeAssignment, error)
	CreateScore(ctx context.Context, score domain.ProjectScore) (domain.ProjectScore, error)
	FindScore(ctx context.Context, projectID, judgeID uint) (domain.ProjectScore, error)
	UpdateScore(ctx context.Context, projectID, judgeID uint, value int, comments string) (domain.ProjectScore, error)
}

type JudgingUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByType(ctx context.Context, userType string) ([]domain.User, error)
}

type JudgingTeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindProjectByID(ctx context.Context, id uint) (domain.Project, error)
}

type JudgingHackathonRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
}

type JudgingService struct {
	repo          JudgingRepository
	userRepo      JudgingUserRepository
	teamRepo      JudgingTeamRepository
	hackathonRepo JudgingHackathonRepository
	sender        NotificationSender
}

func NewJudgingService(repo JudgingRepository, userRepo JudgingUserRepository, teamRepo JudgingTeamRepository, hackathonRepo JudgingHackathonRepository, sender NotificationSender) *JudgingService {
	return &JudgingService{
		repo:          repo,
		userRepo:      userRepo,
		teamRepo:      teamRepo,
		hackathonRepo: hackathonRepo,
		sender:        sender,
	}
}

// CreateJudge registers a judge account on behalf of an organizer.
func (s *JudgingService) CreateJudge(ctx context.Context, judge domain.User, password string) (domain.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	judge.PasswordHash = hashedPassword
	judge.UserType = domain.UserTypeJudge
	judge.Status = domain.UserRegistered

	created, err := s.userRepo.Create(ctx, judge)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *JudgingService) ListJudges(ctx context.Context) ([]domain.User, error) {
	judges, err := s.userRepo.FindByType(ctx, domain.UserTypeJudge)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByType -> %w", err)
	}

	return judges, nil
}

// AssignJudge pairs a judge with a team. The pair is unique in storage, so
// a duplicate assignment surfaces as ErrJudgeAlreadyAssigned. The judge is
// notified after the assignment is committed; a delivery failure comes
// back as a warning.
func (s *JudgingService) AssignJudge(ctx context.Context, organizerID, judgeID, teamID uint) (domain.JudgeAssignment, []string, error) {
	judge, err := s.userRepo.FindByID(ctx, judgeID)
	if err != nil {
		return domain.JudgeAssignment{}, nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if judge.UserType != domain.UserTypeJudge {
		return domain.JudgeAssignment{}, nil, ErrNotAJudge
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return domain.JudgeAssignment{}, nil, fmt.Errorf("s.teamRepo.FindByID -> %w", err)
	}

	hackathon, err := s.hackathonRepo.FindByID(ctx, team.HackathonID)
	if err != nil {
		return domain.JudgeAssignment{}, nil, fmt.Errorf("s.hackathonRepo.FindByID -> %w", err)
	}
	if hackathon.OrganizerID != organizerID {
		return domain.JudgeAssignment{}, nil, ErrNotOrganizer
	}

	assignment, err := s.repo.CreateAssignment(ctx, domain.JudgeAssignment{
		JudgeID:     judgeID,
		TeamID:      teamID,
		HackathonID: team.HackathonID,
		Status:      domain.AssignmentPending,
		AssignedAt:  time.Now(),
	})
	if err != nil {
		return domain.JudgeAssignment{}, nil, fmt.Errorf("s.repo.CreateAssignment -> %w", err)
	}

	var warnings []string
	if err = s.sender.SendJudgeAssignment(ctx, judge.Email, team.TeamName, hackathon.Title); err != nil {
		zap.L().Warn("failed to send assignment email",
			zap.String("email", judge.Email),
			zap.Uint("team_id", teamID),
			zap.Error(err),
		)
		warnings = append(warnings, fmt.Sprintf("assignment notice for %v could not be emailed", judge.Email))
	}

	return assignment, warnings, nil
}

func (s *JudgingService) GetAssignments(ctx context.Context, judgeID uint) ([]domain.JudgeAssignment, error) {
	assignments, err := s.repo.FindAssignmentsByJudgeID(ctx, judgeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAssignmentsByJudgeID -> %w", err)
	}

	return assignments, nil
}

// UpdateAssignmentStatus moves the judge's own pending assignment to
// accepted or rejected. Both outcomes are terminal.
func (s *JudgingService) UpdateAssignmentStatus(ctx context.Context, judgeID, assignmentID uint, status string) (domain.JudgeAssignment, error) {
	if status != domain.AssignmentAccepted && status != domain.AssignmentRejected {
		return domain.JudgeAssignment{}, ErrInvalidAssignmentStatus
	}

	updated, err := s.repo.UpdateAssignmentStatus(ctx, assignmentID, judgeID, status)
	if err != nil {
		return domain.JudgeAssignment{}, fmt.Errorf("s.repo.UpdateAssignmentStatus -> %w", err)
	}

	return updated, nil
}

// SubmitScore records a judge's score for a project. The judge must hold
// an assignment for the project's team; one score per judge per project is
// enforced in storage.
func (s *JudgingService) SubmitScore(ctx context.Context, judgeID, projectID uint, value int, comments string) (domain.ProjectScore, error) {
	if !domain.ValidScore(value) {
		return domain.ProjectScore{}, ErrScoreOutOfRange
	}

	project, err := s.teamRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("s.teamRepo.FindProjectByID -> %w", err)
	}

	assigned, err := s.repo.HasAssignment(ctx, judgeID, project.TeamID)
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("s.repo.HasAssignment -> %w", err)
	}
	if !assigned {
		return domain.ProjectScore{}, ErrNotAssignedToTeam
	}

	created, err := s.repo.CreateScore(ctx, domain.ProjectScore{
		ProjectID: projectID,
		JudgeID:   judgeID,
		Score:     value,
		Comments:  comments,
	})
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("s.repo.CreateScore -> %w", err)
	}

	return created, nil
}

func (s *JudgingService) UpdateScore(ctx context.Context, judgeID, projectID uint, value int, comments string) (domain.ProjectScore, error) {
	if !domain.ValidScore(value) {
		return domain.ProjectScore{}, ErrScoreOutOfRange
	}

	updated, err := s.repo.UpdateScore(ctx, projectID, judgeID, value, comments)
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("s.repo.UpdateScore -> %w", err)
	}

	return updated, nil
}

func (s *JudgingService) GetScore(ctx context.Context, judgeID, projectID uint) (domain.ProjectScore, error) {
	score, err := s.repo.FindScore(ctx, projectID, judgeID)
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("s.repo.FindScore -> %w", err)
	}

	return score, nil
}
