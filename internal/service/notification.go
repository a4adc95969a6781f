package service

import (
	"context"
	"time"
)

// NotificationSender delivers outbound emails. Implementations must be
// safe for concurrent use; delivery failures never roll back state that
// was already committed, callers surface them as warnings instead.
type NotificationSender interface {
	SendTeamInvitation(ctx context.Context, email, teamName, hackathonTitle, token string, expiresAt time.Time) error
	SendJudgeAssignment(ctx context.Context, email, teamName, hackathonTitle string) error
	SendWinnerAnnouncement(ctx context.Context, email, teamName, prizeName, hackathonTitle string) error
	SendWinnerCongratulation(ctx context.Context, email, teamName, prizeName, hackathonTitle string) error
}
