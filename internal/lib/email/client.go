// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
// A Client built without an API key is disabled: it renders the message,
// logs that it was skipped and returns ErrDisabled.
package email

import (
	"context"
	"fmt"

	"github.com/openenergydashboard/oed-server/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ErrDisabled is returned when no Resend API key is configured.
var ErrDisabled = errors.New("email delivery is disabled")

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Enabled reports whether the client can deliver email.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// SendEmail renders templateName with data and sends it to one recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Debug().
			Str("template", string(templateName)).
			Str("to", to).
			Msg("email delivery disabled, skipping send")
		return ErrDisabled
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")

	return nil
}
