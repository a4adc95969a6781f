package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/hackarch/hackarch-api/internal/config"
)

// SMTPSender delivers text/plain notification emails over SMTP with
// plain auth.
type SMTPSender struct {
	host        string
	port        string
	username    string
	password    string
	sender      string
	frontendURL string
}

func NewSMTPSender(conf *config.SMTPConfig, frontendURL string) *SMTPSender {
	return &SMTPSender{
		host:        conf.Host,
		port:        conf.Port,
		username:    conf.Username,
		password:    conf.Password,
		sender:      conf.Sender,
		frontendURL: frontendURL,
	}
}

func (s *SMTPSender) SendTeamInvitation(ctx context.Context, email, teamName, hackathonTitle, token string, expiresAt time.Time) error {
	subject := fmt.Sprintf("You have been invited to join team %v", teamName)
	body := fmt.Sprintf(
		"You have been added to team %v for %v.\r\n\r\n"+
			"Confirm your spot by opening the link below:\r\n"+
			"%v/invitations/accept?token=%v\r\n\r\n"+
			"The link expires on %v.\r\n",
		teamName, hackathonTitle, s.frontendURL, token, expiresAt.Format(time.RFC1123),
	)

	return s.send(email, subject, body)
}

func (s *SMTPSender) SendJudgeAssignment(ctx context.Context, email, teamName, hackathonTitle string) error {
	subject := fmt.Sprintf("New judging assignment for %v", hackathonTitle)
	body := fmt.Sprintf(
		"You have been assigned to judge team %v in %v.\r\n\r\n"+
			"Log in to accept or decline the assignment:\r\n%v\r\n",
		teamName, hackathonTitle, s.frontendURL,
	)

	return s.send(email, subject, body)
}

func (s *SMTPSender) SendWinnerAnnouncement(ctx context.Context, email, teamName, prizeName, hackathonTitle string) error {
	subject := fmt.Sprintf("%v results: team %v won %v", hackathonTitle, teamName, prizeName)
	body := fmt.Sprintf(
		"Team %v has been awarded %v in %v.\r\n\r\n"+
			"Thank you for participating!\r\n",
		teamName, prizeName, hackathonTitle,
	)

	return s.send(email, subject, body)
}

func (s *SMTPSender) SendWinnerCongratulation(ctx context.Context, email, teamName, prizeName, hackathonTitle string) error {
	subject := fmt.Sprintf("Congratulations! Team %v won %v", teamName, prizeName)
	body := fmt.Sprintf(
		"Your team %v has been awarded %v in %v.\r\n\r\nCongratulations!\r\n",
		teamName, prizeName, hackathonTitle,
	)

	return s.send(email, subject, body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %v\r\nTo: %v\r\nSubject: %v\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%v",
		s.sender, to, subject, body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%v:%v", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.sender, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	return nil
}
