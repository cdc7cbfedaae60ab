// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued through JobService.Client
//   - a worker server pulls them from Redis and runs the registered handlers
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/openenergydashboard/oed-server/internal/config"
	"github.com/rs/zerolog"
)

// WelcomeSender delivers the welcome email. *email.Client satisfies it.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, role string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	mailer WelcomeSender
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the Redis at cfg.Redis.Address.
//
// Queue weights give "critical" tasks the largest share of the 10 workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, mailer WelcomeSender) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		mailer: mailer,
		logger: logger,
	}
}

// Mux returns the task router with every handler registered.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the worker server in the background. It fails when Redis
// is unreachable.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks, then closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("closing job client")
	}
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, userID int64, to, role string) error {
	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{UserID: userID, To: to, Role: role})
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued welcome email")
	return nil
}
