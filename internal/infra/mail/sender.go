package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=sender.go -destination=mock/mock_sender.go -package=mock_mail
type EmailSender interface {
	SendEmail(subject string, content string, to []string, cc []string, bcc []string, attachFiles []string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type SMTPSender struct {
	cf SMTPConfig
}

var _ EmailSender = (*SMTPSender)(nil)

func NewSMTPSender(cf SMTPConfig) *SMTPSender {
	return &SMTPSender{cf: cf}
}

func (s *SMTPSender) SendEmail(subject string, content string, to []string, cc []string, bcc []string, attachFiles []string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.cf.FromName, s.cf.From)
	e.Subject = subject
	e.HTML = []byte(content)
	e.To = to
	e.Cc = cc
	e.Bcc = bcc

	for _, f := range attachFiles {
		if _, err := e.AttachFile(f); err != nil {
			return fmt.Errorf("failed to attach file %s: %w", f, err)
		}
	}

	var auth smtp.Auth
	if s.cf.User != "" {
		auth = smtp.PlainAuth("", s.cf.User, s.cf.Password, s.cf.Host)
	}
	return e.Send(fmt.Sprintf("%s:%d", s.cf.Host, s.cf.Port), auth)
}

// LogSender writes mails to the log instead of delivering them.
type LogSender struct {
	logger zerolog.Logger
}

var _ EmailSender = (*LogSender)(nil)

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(subject string, content string, to []string, cc []string, bcc []string, attachFiles []string) error {
	s.logger.Info().
		Str("subject", subject).
		Strs("to", to).
		Int("size", len(content)).
		Msg("mail not delivered, no smtp host configured")
	s.logger.Debug().Str("content", content).Msg("mail body")
	return nil
}
