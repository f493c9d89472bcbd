package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

// Config holds SMTP settings and the dashboard URL used in links.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	DashboardURL string
	AppName      string
}

// Enabled reports whether an SMTP host is configured.
func (c Config) Enabled() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends account e-mails for the dashboard.
type Mailer struct {
	config Config
	send   SendFunc
}

// NewMailer creates a mailer that delivers over SMTP.
func NewMailer(config Config) *Mailer {
	if config.AppName == "" {
		config.AppName = "Sachet Water"
	}
	return &Mailer{config: config, send: smtp.SendMail}
}

// WithSender replaces the delivery function.
func (m *Mailer) WithSender(send SendFunc) *Mailer {
	m.send = send
	return m
}

// SendRecoveryEmail e-mails a single-use password recovery link.
func (m *Mailer) SendRecoveryEmail(to, name, token string, ttl time.Duration) error {
	if !m.config.Enabled() {
		return fmt.Errorf("email: smtp is not configured")
	}

	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(m.config.DashboardURL, "/"),
		url.QueryEscape(token),
	)

	body, err := render(recoveryTemplate, recoveryData{
		AppName: m.config.AppName,
		Name:    name,
		Link:    link,
		Minutes: int(ttl.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("email: render recovery message: %w", err)
	}

	subject := fmt.Sprintf("%s password recovery", m.config.AppName)
	return m.deliver(to, subject, body)
}

func (m *Mailer) deliver(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.config.SMTPHost, m.config.SMTPPort)

	var auth smtp.Auth
	if m.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.config.SMTPUsername, m.config.SMTPPassword, m.config.SMTPHost)
	}

	if err := m.send(addr, auth, m.config.FromEmail, []string{to}, m.message(to, subject, htmlBody)); err != nil {
		return fmt.Errorf("email: send to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) message(to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.config.FromName, m.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

type recoveryData struct {
	AppName string
	Name    string
	Link    string
	Minutes int
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var recoveryTemplate = template.Must(template.New("recovery").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:24px;font-family:Arial,Helvetica,sans-serif;background:#f4f7fa;">
  <table role="presentation" style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;">
    <tr>
      <td style="padding:24px 28px;background:#0b6fa4;color:#ffffff;font-size:20px;font-weight:bold;">{{.AppName}}</td>
    </tr>
    <tr>
      <td style="padding:28px;color:#334155;font-size:15px;line-height:1.6;">
        <p>Hello {{.Name}},</p>
        <p>A password recovery was requested for your dashboard account. The link below works once and expires in {{.Minutes}} minutes.</p>
        <p style="text-align:center;margin:28px 0;">
          <a href="{{.Link}}" style="background:#0b6fa4;color:#ffffff;padding:12px 24px;border-radius:6px;text-decoration:none;">Choose a new password</a>
        </p>
        <p style="font-size:13px;color:#64748b;">If you did not ask for this, ignore this message. Your password stays the same.</p>
        <p style="font-size:13px;color:#64748b;word-break:break-all;">{{.Link}}</p>
      </td>
    </tr>
  </table>
</body>
</html>
`))
