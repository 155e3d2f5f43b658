package mailing

import (
	"FlashFoodDelivery/internal/utils"
	"bytes"
	"fmt"
	"gopkg.in/gomail.v2"
	"html/template"
	"strconv"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	// Mailer sends HTML mail. Handlers call it after the order operation committed.
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}

	OrderMail struct {
		CustomerName string
		OrderID      string
		Status       string
		Total        string
		AppURL       string
	}
)

var orderMailTemplate = template.Must(template.New("order").Parse(`<p>Hi {{.CustomerName}},</p>
<p>Your order <b>{{.OrderID}}</b> is now <b>{{.Status}}</b>.</p>
<p>Total: {{.Total}}</p>
{{if .AppURL}}<p><a href="{{.AppURL}}/orders/{{.OrderID}}">View your order</a></p>{{end}}
<p>FlashFood</p>`))

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

// RenderOrderMail returns the subject and HTML body of an order status mail.
func RenderOrderMail(data OrderMail) (string, string, error) {
	var body bytes.Buffer
	if err := orderMailTemplate.Execute(&body, data); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Order %s: %s", data.OrderID, data.Status), body.String(), nil
}
