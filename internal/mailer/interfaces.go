package mailer

type Service interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendMagicLinkEmail(toEmail, code, magicLink string) error
}
