package response

import "github.com/hackarch/hackarch-api/internal/domain"

// Warnings carry post-commit notification failures. The state change
// itself already succeeded when warnings are present.
type MembersUpdatedResponse struct {
	Invitations []domain.IssuedInvitation `json:"invitations"`
	Warnings    []string                  `json:"warnings,omitempty"`
}

type InvitationResentResponse struct {
	Invitation domain.IssuedInvitation `json:"invitation"`
	Warnings   []string                `json:"warnings,omitempty"`
}

type InvitationAcceptedResponse struct {
	Message string `json:"message"`
	TeamID  uint   `json:"team_id"`
}
