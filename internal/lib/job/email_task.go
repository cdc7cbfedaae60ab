package job

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the job type name stored in Redis.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of the welcome email task.
// It never carries credentials.
type WelcomeEmailPayload struct {
	UserID int64  `json:"user_id"`
	To     string `json:"to"`
	Role   string `json:"role"`
}

// NewWelcomeEmailTask builds the welcome task for a freshly created user.
//
// The task id is derived from the user id so a repeated enqueue for the
// same user is rejected by asynq with ErrTaskIDConflict.
func NewWelcomeEmailTask(p WelcomeEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.TaskID(welcomeTaskID(p.UserID)),
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

func welcomeTaskID(userID int64) string {
	return TaskWelcome + ":" + strconv.FormatInt(userID, 10)
}
