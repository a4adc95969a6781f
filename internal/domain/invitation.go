package domain

import "time"

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

// TeamInvitation is a single-use, time-limited credential letting one
// specific user verify their membership in one specific team. Resending
// appends a fresh row; older pending rows age out via their own expiry.
type TeamInvitation struct {
	ID              uint      `json:"id"`
	TeamID          uint      `json:"team_id"`
	InvitedUserID   uint      `json:"invited_user_id"`
	InvitationToken string    `json:"-"`
	ExpiresAt       time.Time `json:"expires_at"`
	Status          string    `json:"invitation_status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (i TeamInvitation) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// IssuedInvitation is returned to the caller for programmatic visibility;
// the production delivery channel is the invitation email.
type IssuedInvitation struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
