package mailer

import (
	"github.com/servineo/backend/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendWelcomeEmail(toEmail, toName string) error {
	logger.Info("[DEV MAIL] Welcome Email",
		"to", toEmail,
		"name", toName,
	)
	return nil
}

func (d *DevMailer) SendMagicLinkEmail(toEmail, code, magicLink string) error {
	logger.Info("[DEV MAIL] Magic Link Email",
		"to", toEmail,
		"code", code,
		"magic_link", magicLink,
	)
	return nil
}
