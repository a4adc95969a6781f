package response

import "github.com/hackarch/hackarch-api/internal/domain"

type JudgeAssignedResponse struct {
	Assignment domain.JudgeAssignment `json:"assignment"`
	Warnings   []string               `json:"warnings,omitempty"`
}
