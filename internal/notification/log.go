package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LogSender writes notifications to the application log instead of
// delivering them. Used in development where no SMTP server is around.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendTeamInvitation(ctx context.Context, email, teamName, hackathonTitle, token string, expiresAt time.Time) error {
	zap.L().Info("team invitation",
		zap.String("email", email),
		zap.String("team", teamName),
		zap.String("hackathon", hackathonTitle),
		zap.String("token", token),
		zap.Time("expires_at", expiresAt),
	)

	return nil
}

func (s *LogSender) SendJudgeAssignment(ctx context.Context, email, teamName, hackathonTitle string) error {
	zap.L().Info("judge assignment notice",
		zap.String("email", email),
		zap.String("team", teamName),
		zap.String("hackathon", hackathonTitle),
	)

	return nil
}

func (s *LogSender) SendWinnerAnnouncement(ctx context.Context, email, teamName, prizeName, hackathonTitle string) error {
	zap.L().Info("winner announcement",
		zap.String("email", email),
		zap.String("team", teamName),
		zap.String("prize", prizeName),
		zap.String("hackathon", hackathonTitle),
	)

	return nil
}

func (s *LogSender) SendWinnerCongratulation(ctx context.Context, email, teamName, prizeName, hackathonTitle string) error {
	zap.L().Info("winner congratulation",
		zap.String("email", email),
		zap.String("team", teamName),
		zap.String("prize", prizeName),
		zap.String("hackathon", hackathonTitle),
	)

	return nil
}
