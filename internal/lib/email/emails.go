package email

import "context"

// WelcomeData fills the welcome template.
type WelcomeData struct {
	Email    string
	Role     string
	LoginURL string
}

// SendWelcomeEmail tells a newly created user which role they were given.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, role string) error {
	return c.SendEmail(
		ctx,
		to,
		"Your Energy Dashboard account",
		TemplateWelcome,
		WelcomeData{Email: to, Role: role},
	)
}
