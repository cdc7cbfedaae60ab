package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/openenergydashboard/oed-server/internal/lib/email"
)

// handleWelcomeEmailTask sends the welcome email described by t.
//
// A malformed payload is not retried. With email disabled the task
// succeeds without sending.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskWelcome).
		Int64("user_id", p.UserID).
		Logger()

	log.Info().Msg("Processing welcome email task")

	err := j.mailer.SendWelcomeEmail(ctx, p.To, p.Role)
	switch {
	case errors.Is(err, email.ErrDisabled):
		log.Info().Msg("Email disabled, welcome email skipped")
		return nil
	case err != nil:
		log.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Msg("Successfully sent welcome email")
	return nil
}
