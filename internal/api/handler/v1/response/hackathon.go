package response

import "github.com/hackarch/hackarch-api/internal/domain"

// HackathonDetailsResponse decorates a hackathon with the caller's own
// participation state.
type HackathonDetailsResponse struct {
	Hackathon domain.Hackathon `json:"hackathon"`
	Enrolled  bool             `json:"enrolled"`
	TeamID    *uint            `json:"team_id,omitempty"`
}

type WinnerDeclaredResponse struct {
	Winner   domain.Winner `json:"winner"`
	Warnings []string      `json:"warnings,omitempty"`
}
