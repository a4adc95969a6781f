package domain

import "time"

const (
	AssignmentPending  = "pending"
	AssignmentAccepted = "accepted"
	AssignmentRejected = "rejected"
)

const (
	MinScore = 1
	MaxScore = 10
)

type JudgeAssignment struct {
	ID          uint      `json:"id"`
	JudgeID     uint      `json:"judge_id"`
	TeamID      uint      `json:"team_id"`
	HackathonID uint      `json:"hackathon_id"`
	Status      string    `json:"status"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// Transition moves a pending assignment to its terminal state. It reports
// false when the assignment already left pending; accepted and rejected
// are both terminal.
func (a *JudgeAssignment) Transition(status string) bool {
	if a.Status != AssignmentPending {
		return false
	}
	if status != AssignmentAccepted && status != AssignmentRejected {
		return false
	}

	a.Status = status

	return true
}

type ProjectScore struct {
	ProjectID uint      `json:"project_id"`
	JudgeID   uint      `json:"judge_id"`
	Score     int       `json:"score"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
