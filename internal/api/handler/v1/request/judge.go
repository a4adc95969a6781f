package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateJudgeRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (req *CreateJudgeRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.LastName, validation.Required, validation.Length(1, 50)),
	)
	if err != nil {
		return err
	}

	ok, err := passwordExp.MatchString(req.Password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

type AssignJudgeRequest struct {
	JudgeID uint `json:"judge_id"`
}

func (req *AssignJudgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.JudgeID, validation.Required, validation.Min(uint(1))),
	)
}

type UpdateAssignmentStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateAssignmentStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("accepted", "rejected")),
	)
}

type SubmitScoreRequest struct {
	Score    int    `json:"score"`
	Comments string `json:"comments"`
}

func (req *SubmitScoreRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Score, validation.Required, validation.Min(1), validation.Max(10)),
		validation.Field(&req.Comments, validation.Length(0, 1000)),
	)
}
