package domain

import "time"

const (
	ProjectSubmitted    = "Submitted"
	ProjectNotSubmitted = "Not submitted"
)

type Team struct {
	ID            uint      `json:"id"`
	HackathonID   uint      `json:"hackathon_id"`
	TeamName      string    `json:"team_name"`
	Description   string    `json:"description"`
	TeamLeaderID  uint      `json:"team_leader_id"`
	TeamSize      int       `json:"team_size"`
	TopicID       uint      `json:"topic_id"`
	ProjectStatus string    `json:"project_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TeamMember struct {
	TeamID   uint      `json:"team_id"`
	UserID   uint      `json:"user_id"`
	Verified bool      `json:"verified"`
	JoinedAt time.Time `json:"joined_at"`
	User     User      `json:"user"`
}

// MemberDescriptor is what a leader supplies when filling the roster;
// the referenced person may not have an account yet.
type MemberDescriptor struct {
	FirstName   string
	LastName    string
	Email       string
	CollegeName string
	Gender      string
}

type Enrollment struct {
	UserID      uint      `json:"user_id"`
	HackathonID uint      `json:"hackathon_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamDetails aggregates a team with its roster and derived readiness flags.
type TeamDetails struct {
	Team            Team         `json:"team"`
	Leader          User         `json:"team_leader"`
	Members         []TeamMember `json:"members"`
	Project         *Project     `json:"project,omitempty"`
	TopicTitle      string       `json:"topic_title"`
	AllMembersAdded bool         `json:"all_members_added"`
	ReadyToSubmit   bool         `json:"ready_to_submit"`
}

// RosterComplete holds when the declared team size is fully occupied.
func (t Team) RosterComplete(memberCount int) bool {
	return memberCount == t.TeamSize
}

// RosterVerified holds when every member redeemed their invitation.
func RosterVerified(members []TeamMember) bool {
	for _, m := range members {
		if !m.Verified {
			return false
		}
	}

	return true
}
