package domain

import "time"

type Project struct {
	ID          uint      `json:"id"`
	TeamID      uint      `json:"team_id"`
	HackathonID uint      `json:"hackathon_id"`
	ProjectName string    `json:"project_name"`
	Description string    `json:"description"`
	GithubURL   string    `json:"github_url"`
	DemoURL     string    `json:"demo_url"`
	SubmittedAt time.Time `json:"submitted_at"`
}
