package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hackarch/hackarch-api/internal/domain"
	"github.com/hackarch/hackarch-api/internal/repository/dao"
)

var (
	ErrJudgeAlreadyAssigned = dao.ErrJudgeAlreadyAssigned
	ErrAssignmentNotFound   = dao.ErrAssignmentNotFound
	ErrAssignmentNotPending = dao.ErrAssignmentNotPending
	ErrProjectAlreadyScored = dao.ErrProjectAlreadyScored
	ErrScoreNotFound        = dao.ErrScoreNotFound
)

type JudgingDAO interface {
	InsertAssignment(ctx context.Context, assignment dao.JudgeAssignment) (dao.JudgeAssignment, error)
	FindAssignmentByID(ctx context.Context, id uint) (dao.JudgeAssignment, error)
	FindAssignment(ctx context.Context, judgeID, teamID uint) (dao.JudgeAssignment, error)
	FindAssignmentsByJudgeID(ctx context.Context, judgeID uint) ([]dao.JudgeAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, id, judgeID uint, status string) (dao.JudgeAssignment, error)
	InsertScore(ctx context.Context, score dao.ProjectScore) (dao.ProjectScore, error)
	FindScore(ctx context.Context, projectID, judgeID uint) (dao.ProjectScore, error)
	UpdateScore(ctx context.Context, projectID, judgeID uint, value int, comments string) (dao.ProjectScore, error)
}

type JudgingRepository struct {
	dao JudgingDAO
}

func NewJudgingRepository(dao JudgingDAO) *JudgingRepository {
	return &JudgingRepository{
		dao: dao,
	}
}

func (r *JudgingRepository) CreateAssignment(ctx context.Context, assignment domain.JudgeAssignment) (domain.JudgeAssignment, error) {
	created, err := r.dao.InsertAssignment(ctx, dao.JudgeAssignment{
		JudgeID:     assignment.JudgeID,
		TeamID:      assignment.TeamID,
		HackathonID: assignment.HackathonID,
		Status:      assignment.Status,
		AssignedAt:  assignment.AssignedAt,
	})
	if err != nil {
		return domain.JudgeAssignment{}, fmt.Errorf("r.dao.InsertAssignment -> %w", err)
	}

	return r.assignmentDaoToDomain(created), nil
}

func (r *JudgingRepository) FindAssignmentByID(ctx context.Context, id uint) (domain.JudgeAssignment, error) {
	found, err := r.dao.FindAssignmentByID(ctx, id)
	if err != nil {
		return domain.JudgeAssignment{}, fmt.Errorf("r.dao.FindAssignmentByID -> %w", err)
	}

	return r.assignmentDaoToDomain(found), nil
}

// HasAssignment reports whether the judge holds any assignment for the
// team, regardless of its status.
func (r *JudgingRepository) HasAssignment(ctx context.Context, judgeID, teamID uint) (bool, error) {
	_, err := r.dao.FindAssignment(ctx, judgeID, teamID)
	if err != nil {
		if errors.Is(err, dao.ErrAssignmentNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("r.dao.FindAssignment -> %w", err)
	}

	return true, nil
}

func (r *JudgingRepository) FindAssignmentsByJudgeID(ctx context.Context, judgeID uint) ([]domain.JudgeAssignment, error) {
	found, err := r.dao.FindAssignmentsByJudgeID(ctx, judgeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAssignmentsByJudgeID -> %w", err)
	}

	assignments := make([]domain.JudgeAssignment, len(found))
	for i, a := range found {
		assignments[i] = r.assignmentDaoToDomain(a)
	}

	return assignments, nil
}

func (r *JudgingRepository) UpdateAssignmentStatus(ctx context.Context, id, judgeID uint, status string) (domain.JudgeAssignment, error) {
	updated, err := r.dao.UpdateAssignmentStatus(ctx, id, judgeID, status)
	if err != nil {
		return domain.JudgeAssignment{}, fmt.Errorf("r.dao.UpdateAssignmentStatus -> %w", err)
	}

	return r.assignmentDaoToDomain(updated), nil
}

func (r *JudgingRepository) CreateScore(ctx context.Context, score domain.ProjectScore) (domain.ProjectScore, error) {
	created, err := r.dao.InsertScore(ctx, dao.ProjectScore{
		ProjectID: score.ProjectID,
		JudgeID:   score.JudgeID,
		Score:     score.Score,
		Comments:  score.Comments,
	})
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("r.dao.InsertScore -> %w", err)
	}

	return r.scoreDaoToDomain(created), nil
}

func (r *JudgingRepository) FindScore(ctx context.Context, projectID, judgeID uint) (domain.ProjectScore, error) {
	found, err := r.dao.FindScore(ctx, projectID, judgeID)
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("r.dao.FindScore -> %w", err)
	}

	return r.scoreDaoToDomain(found), nil
}

func (r *JudgingRepository) UpdateScore(ctx context.Context, projectID, judgeID uint, value int, comments string) (domain.ProjectScore, error) {
	updated, err := r.dao.UpdateScore(ctx, projectID, judgeID, value, comments)
	if err != nil {
		return domain.ProjectScore{}, fmt.Errorf("r.dao.UpdateScore -> %w", err)
	}

	return r.scoreDaoToDomain(updated), nil
}

func (r *JudgingRepository) assignmentDaoToDomain(a dao.JudgeAssignment) domain.JudgeAssignment {
	return domain.JudgeAssignment{
		ID:          a.ID,
		JudgeID:     a.JudgeID,
		TeamID:      a.TeamID,
		HackathonID: a.HackathonID,
		Status:      a.Status,
		AssignedAt:  a.AssignedAt,
	}
}

func (r *JudgingRepository) scoreDaoToDomain(s dao.ProjectScore) domain.ProjectScore {
	return domain.ProjectScore{
		ProjectID: s.ProjectID,
		JudgeID:   s.JudgeID,
		Score:     s.Score,
		Comments:  s.Comments,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
