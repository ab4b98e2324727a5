package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendWelcomeEmail(toEmail, toName string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Bienvenido a Servineo"
	html := fmt.Sprintf(`
		<h2>Bienvenido a Servineo</h2>
		<p>Hola %s,</p>
		<p>Tu cuenta ha sido creada. Ya puedes buscar fixers cerca de ti y solicitar servicios.</p>
	`, toName)
	text := fmt.Sprintf("Hola %s, tu cuenta de Servineo ha sido creada.", toName)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendMagicLinkEmail(toEmail, code, magicLink string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Tu código de acceso Servineo"
	html := fmt.Sprintf(`
		<h2>Tu código de acceso</h2>
		<p>Tu código de verificación es: <strong style="font-size: 24px;">%s</strong></p>
		<p>O entra directamente con este enlace:</p>
		<p><a href="%s">Acceder a Servineo</a></p>
		<p>Este código expira en 15 minutos.</p>
	`, code, magicLink)
	text := fmt.Sprintf("Tu código de acceso es: %s\n\nO entra directamente: %s", code, magicLink)

	return m.sendEmail(toEmail, "", subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
