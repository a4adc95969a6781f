package domain

import (
	"errors"
	"time"
)

var ErrInvalidDateOrder = errors.New("hackathon dates must satisfy registration_start < registration_end <= start < end")

type Hackathon struct {
	ID                    uint      `json:"id"`
	OrganizerID           uint      `json:"organizer_id"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	StartDate             time.Time `json:"start_date"`
	EndDate               time.Time `json:"end_date"`
	RegistrationStartDate time.Time `json:"registration_start_date"`
	RegistrationEndDate   time.Time `json:"registration_end_date"`
	MaxTeamSize           int       `json:"max_team_size"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ValidateDates enforces the ordering invariant at creation/edit time.
func (h Hackathon) ValidateDates() error {
	if !h.RegistrationStartDate.Before(h.RegistrationEndDate) {
		return ErrInvalidDateOrder
	}
	if h.RegistrationEndDate.After(h.StartDate) {
		return ErrInvalidDateOrder
	}
	if !h.StartDate.Before(h.EndDate) {
		return ErrInvalidDateOrder
	}

	return nil
}

// RegistrationOpen reports whether now falls inside the registration window.
func (h Hackathon) RegistrationOpen(now time.Time) bool {
	return !now.Before(h.RegistrationStartDate) && !now.After(h.RegistrationEndDate)
}

type Topic struct {
	ID          uint   `json:"id"`
	HackathonID uint   `json:"hackathon_id"`
	Title       string `json:"title"`
	CreatedBy   uint   `json:"created_by"`
}

type Prize struct {
	ID          uint    `json:"id"`
	HackathonID uint    `json:"hackathon_id"`
	PrizeName   string  `json:"prize_name"`
	Description string  `json:"description"`
	Position    int     `json:"position"`
	Winner      *Winner `json:"winner,omitempty"`
}

type Winner struct {
	ID        uint      `json:"id"`
	PrizeID   uint      `json:"prize_id"`
	TeamID    uint      `json:"team_id"`
	AwardedAt time.Time `json:"awarded_at"`
}

type HackathonStats struct {
	TotalTeams    int64 `json:"total_teams"`
	TotalProjects int64 `json:"total_projects"`
	TotalPrizes   int64 `json:"total_prizes"`
	TotalJudges   int64 `json:"total_judges"`
}
