package client

import (
	"context"
	"fmt"

	"pageturn/internal/config"

	"gopkg.in/gomail.v2"
)

type MailClient interface {
	SendResetPasswordOTP(ctx context.Context, email string, otp int) error
}

type mailClientImpl struct {
	dialer *gomail.Dialer
	from   string
	sender string
}

func NewMailClient(cfg *config.SMTP) MailClient {
	return &mailClientImpl{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		sender: cfg.Username,
	}
}

func (c *mailClientImpl) SendResetPasswordOTP(ctx context.Context, email string, otp int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.sender, c.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your OTP Code")
	m.SetBody("text/html", ResetPasswordEmailBody(otp))

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send reset password email: %w", err)
	}
	return nil
}

func ResetPasswordEmailBody(otp int) string {
	return fmt.Sprintf(`<p>Your OTP for password reset is:</p>
<h2>%06d</h2>
<p>This OTP is valid for 10 minutes.</p>`, otp)
}
