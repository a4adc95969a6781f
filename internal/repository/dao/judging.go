package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrJudgeAlreadyAssigned = errors.New("judge already assigned to this team")
	ErrAssignmentNotFound   = errors.New("judge assignment not found")
	ErrAssignmentNotPending = errors.New("assignment already accepted or rejected")
	ErrProjectAlreadyScored = errors.New("project already scored by this judge")
	ErrScoreNotFound        = errors.New("project score not found")
)

type JudgeAssignment struct {
	ID      uint `gorm:"primaryKey"`
	JudgeID uint `gorm:"not null;uniqueIndex:idx_judge_assignments_judge_team"`
	Judge   User `gorm:"foreignKey:JudgeID"`
	TeamID  uint `gorm:"not null;uniqueIndex:idx_judge_assignments_judge_team"`
	Team    Team `gorm:"foreignKey:TeamID"`

	HackathonID uint      `gorm:"not null;index"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`

	Status     string    `gorm:"not null;default:'pending'"` // "pending", "accepted", or "rejected"
	AssignedAt time.Time `gorm:"not null"`
}

type ProjectScore struct {
	ID        uint    `gorm:"primaryKey"`
	ProjectID uint    `gorm:"not null;uniqueIndex:idx_project_scores_project_judge"`
	Project   Project `gorm:"foreignKey:ProjectID"`
	JudgeID   uint    `gorm:"not null;uniqueIndex:idx_project_scores_project_judge"`
	Judge     User    `gorm:"foreignKey:JudgeID"`

	Score    int `gorm:"not null"`
	Comments string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type JudgingDAO struct {
	db *gorm.DB
}

func NewJudgingDAO(db *gorm.DB) *JudgingDAO {
	return &JudgingDAO{
		db: db,
	}
}

func (d *JudgingDAO) InsertAssignment(ctx context.Context, assignment JudgeAssignment) (JudgeAssignment, error) {
	result := d.db.WithContext(ctx).Create(&assignment)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_judge_assignments_judge_team") {
			return JudgeAssignment{}, ErrJudgeAlreadyAssigned
		}

		return JudgeAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *JudgingDAO) FindAssignmentByID(ctx context.Context, id uint) (JudgeAssignment, error) {
	var assignment JudgeAssignment

	result := d.db.WithContext(ctx).First(&assignment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return JudgeAssignment{}, ErrAssignmentNotFound
		}

		return JudgeAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *JudgingDAO) FindAssignment(ctx context.Context, judgeID, teamID uint) (JudgeAssignment, error) {
	var assignment JudgeAssignment

	result := d.db.WithContext(ctx).
		Where("judge_id = ? AND team_id = ?", judgeID, teamID).
		First(&assignment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return JudgeAssignment{}, ErrAssignmentNotFound
		}

		return JudgeAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *JudgingDAO) FindAssignmentsByJudgeID(ctx context.Context, judgeID uint) ([]JudgeAssignment, error) {
	var assignments []JudgeAssignment

	result := d.db.WithContext(ctx).
		Preload("Team").
		Preload("Hackathon").
		Where("judge_id = ?", judgeID).
		Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

// UpdateAssignmentStatus moves a pending assignment to a terminal state.
// The status filter keeps the pending -> accepted|rejected machine
// one-way even under concurrent updates.
func (d *JudgingDAO) UpdateAssignmentStatus(ctx context.Context, id, judgeID uint, status string) (JudgeAssignment, error) {
	result := d.db.WithContext(ctx).Model(&JudgeAssignment{}).
		Where("id = ? AND judge_id = ? AND status = ?", id, judgeID, "pending").
		Update("status", status)
	if result.Error != nil {
		return JudgeAssignment{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing/foreign assignment from a terminal one.
		if _, err := d.FindAssignmentByID(ctx, id); errors.Is(err, ErrAssignmentNotFound) {
			return JudgeAssignment{}, ErrAssignmentNotFound
		}

		return JudgeAssignment{}, ErrAssignmentNotPending
	}

	return d.FindAssignmentByID(ctx, id)
}

func (d *JudgingDAO) InsertScore(ctx context.Context, score ProjectScore) (ProjectScore, error) {
	result := d.db.WithContext(ctx).Create(&score)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_project_scores_project_judge") {
			return ProjectScore{}, ErrProjectAlreadyScored
		}

		return ProjectScore{}, result.Error
	}

	return score, nil
}

func (d *JudgingDAO) FindScore(ctx context.Context, projectID, judgeID uint) (ProjectScore, error) {
	var score ProjectScore

	result := d.db.WithContext(ctx).
		Where("project_id = ? AND judge_id = ?", projectID, judgeID).
		First(&score)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProjectScore{}, ErrScoreNotFound
		}

		return ProjectScore{}, result.Error
	}

	return score, nil
}

func (d *JudgingDAO) UpdateScore(ctx context.Context, projectID, judgeID uint, value int, comments string) (ProjectScore, error) {
	result := d.db.WithContext(ctx).Model(&ProjectScore{}).
		Where("project_id = ? AND judge_id = ?", projectID, judgeID).
		Updates(map[string]any{
			"score":    value,
			"comments": comments,
		})
	if result.Error != nil {
		return ProjectScore{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ProjectScore{}, ErrScoreNotFound
	}

	return d.FindScore(ctx, projectID, judgeID)
}
