package cron

import (
	"context"
	"fmt"

	"itufk/models"
	"itufk/services/notification"
	"itufk/services/tasks"

	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedSink is a notification.Sink that hands deliveries to the push worker.
// The result reports the tokens as queued; delivery outcome is logged by the worker.
type QueuedSink struct {
	client enqueuer
}

var _ notification.Sink = (*QueuedSink)(nil)

func NewQueuedSink(client *asynq.Client) *QueuedSink {
	return &QueuedSink{client: client}
}

func (q *QueuedSink) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*notification.DeliveryResult, error) {
	if len(tokens) == 0 {
		return &notification.DeliveryResult{}, nil
	}

	task, opts, err := tasks.NewPushTask(models.PushPayload{
		Tokens: tokens,
		Title:  title,
		Body:   body,
		Data:   data,
	})
	if err != nil {
		return nil, err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return nil, fmt.Errorf("QueuedSink: failed to enqueue push: %w", err)
	}
	return &notification.DeliveryResult{Queued: len(tokens)}, nil
}
