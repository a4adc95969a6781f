package domain

import "time"

const (
	UserTypeParticipant = "participant"
	UserTypeOrganizer   = "organizer"
	UserTypeJudge       = "judge"
)

// UserStatus tags whether an account was created by a real registration
// or as a stand-in for someone invited by email before registering.
type UserStatus string

const (
	UserRegistered  UserStatus = "registered"
	UserPlaceholder UserStatus = "placeholder"
)

type User struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	CollegeName  string     `json:"college_name"`
	Gender       string     `json:"gender"`
	UserType     string     `json:"user_type"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u User) IsPlaceholder() bool {
	return u.Status == UserPlaceholder
}
