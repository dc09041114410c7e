package tasks

import (
	"encoding/json"
	"fmt"

	"itufk/models"

	"github.com/hibiken/asynq"
)

const TypeSendPush = "push:send"

// NewPushTask wraps a push delivery as an asynq task. Delivery is best-effort,
// so the task is never retried.
func NewPushTask(payload models.PushPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("NewPushTask: %w", err)
	}
	task := asynq.NewTask(TypeSendPush, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Queue("default")}

	return task, opts, nil
}

// ParsePushTask decodes a task built by NewPushTask.
func ParsePushTask(task *asynq.Task) (models.PushPayload, error) {
	var p models.PushPayload
	if task.Type() != TypeSendPush {
		return p, fmt.Errorf("ParsePushTask: unexpected task type %q", task.Type())
	}
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("ParsePushTask: %w", err)
	}
	return p, nil
}
