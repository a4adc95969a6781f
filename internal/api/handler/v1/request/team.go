package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type EnrollTeamRequest struct {
	HackathonID uint   `json:"hackathon_id"`
	TeamName    string `json:"team_name"`
	Description string `json:"description"`
	TeamSize    int    `json:"team_size"`
	TopicID     uint   `json:"topic_id"`
}

func (req *EnrollTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.HackathonID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamName, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.TeamSize, validation.Required, validation.Min(1)),
		validation.Field(&req.TopicID, validation.Required, validation.Min(uint(1))),
	)
}

type MemberEntry struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	CollegeName string `json:"college_name"`
	Gender      string `json:"gender"`
}

type UpdateMembersRequest struct {
	Members []MemberEntry `json:"members"`
}

func (req *UpdateMembersRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Members, validation.Required, validation.Each(validation.By(validateMemberEntry))),
	)
}

func validateMemberEntry(value interface{}) error {
	entry, ok := value.(MemberEntry)
	if !ok {
		return validation.NewInternalError(nil)
	}

	return validation.ValidateStruct(&entry,
		validation.Field(&entry.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&entry.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&entry.Email, validation.Required, is.Email),
		validation.Field(&entry.CollegeName, validation.Length(0, 100)),
		validation.Field(&entry.Gender, validation.In("male", "female", "other")),
	)
}

type SubmitProjectRequest struct {
	TeamID      uint   `json:"team_id"`
	ProjectName string `json:"project_name"`
	Description string `json:"description"`
	GithubURL   string `json:"github_url"`
	DemoURL     string `json:"demo_url"`
}

func (req *SubmitProjectRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.ProjectName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.GithubURL, validation.Required, is.URL),
		validation.Field(&req.DemoURL, is.URL),
	)
}
