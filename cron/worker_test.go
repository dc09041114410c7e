package cron

import (
	"context"
	"errors"
	"testing"

	"itufk/models"
	"itufk/services/notification"
	"itufk/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	got []models.PushPayload
	err error
}

func (s *recordingSink) Send(_ context.Context, tokens []string, title, body string, data map[string]string) (*notification.DeliveryResult, error) {
	s.got = append(s.got, models.PushPayload{Tokens: tokens, Title: title, Body: body, Data: data})
	if s.err != nil {
		return nil, s.err
	}
	return &notification.DeliveryResult{SuccessCount: len(tokens)}, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default"}, nil
}

func Test_handlePushTask(t *testing.T) {
	payload := models.PushPayload{Tokens: []string{"t1"}, Title: "T", Body: "B", Data: map[string]string{"eventId": "e1"}}
	task, _, err := tasks.NewPushTask(payload)
	require.NoError(t, err)

	sink := &recordingSink{}
	require.NoError(t, handlePushTask(sink, zap.NewNop())(context.Background(), task))
	require.Len(t, sink.got, 1)
	assert.Equal(t, payload, sink.got[0])

	sink.err = errors.New("fcm down")
	assert.Error(t, handlePushTask(sink, zap.NewNop())(context.Background(), task))

	err = handlePushTask(sink, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeSendPush, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestQueuedSink_Send(t *testing.T) {
	q := &fakeEnqueuer{}
	sink := &QueuedSink{client: q}

	res, err := sink.Send(context.Background(), nil, "T", "B", nil)
	require.NoError(t, err)
	assert.Zero(t, res.SuccessCount)
	assert.Empty(t, q.tasks)

	res, err = sink.Send(context.Background(), []string{"t1", "t2"}, "T", "B", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Queued)
	assert.Zero(t, res.SuccessCount, "nothing is delivered until the worker runs")
	require.Len(t, q.tasks, 1)

	p, err := tasks.ParsePushTask(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, p.Tokens)

	q.err = errors.New("redis down")
	_, err = sink.Send(context.Background(), []string{"t1"}, "T", "B", nil)
	assert.Error(t, err)
}
