package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateHackathonRequest struct {
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	StartDate             time.Time `json:"start_date"`
	EndDate               time.Time `json:"end_date"`
	RegistrationStartDate time.Time `json:"registration_start_date"`
	RegistrationEndDate   time.Time `json:"registration_end_date"`
	MaxTeamSize           int       `json:"max_team_size"`
}

func (req *CreateHackathonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.RegistrationStartDate, validation.Required),
		validation.Field(&req.RegistrationEndDate, validation.Required),
		validation.Field(&req.MaxTeamSize, validation.Required, validation.Min(1), validation.Max(20)),
	)
}

type UpdateHackathonRequest struct {
	CreateHackathonRequest
}

type AddTopicsRequest struct {
	Topics []string `json:"topics"`
}

func (req *AddTopicsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Topics, validation.Required, validation.Length(1, 50), validation.Each(validation.Required, validation.Length(2, 100))),
	)
}

type AddPrizeRequest struct {
	PrizeName   string `json:"prize_name"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

func (req *AddPrizeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PrizeName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.Position, validation.Required, validation.Min(1)),
	)
}

type DeclareWinnerRequest struct {
	PrizeID uint `json:"prize_id"`
	TeamID  uint `json:"team_id"`
}

func (req *DeclareWinnerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PrizeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
	)
}
