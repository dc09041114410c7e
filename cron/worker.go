package cron

import (
	"context"
	"fmt"
	"time"

	"itufk/config"
	"itufk/services/notification"
	"itufk/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the push queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// PushWorker drains queued push deliveries into the FCM sink.
type PushWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewPushWorker builds the worker without starting it.
func NewPushWorker(sink notification.Sink, logger *zap.Logger) *PushWorker {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendPush, handlePushTask(sink, logger))

	return &PushWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup a few times.
func (w *PushWorker) Start(ctx context.Context) {
	go monitorRedisConnection(ctx, w.logger)

	go func() {
		w.logger.Info("[PushWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Warn("[PushWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("[PushWorker] max retry attempts reached, queued pushes will not be delivered")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
}

// Shutdown stops fetching tasks and waits for in-flight deliveries.
func (w *PushWorker) Shutdown() {
	w.srv.Shutdown()
}

func handlePushTask(sink notification.Sink, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePushTask(task)
		if err != nil {
			logger.Warn("[PushHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		res, err := sink.Send(ctx, p.Tokens, p.Title, p.Body, p.Data)
		if err != nil {
			logger.Warn("[PushHandler] failed to send notification", zap.Error(err))
			return err
		}
		logger.Debug("[PushHandler] push delivered",
			zap.Int("success", res.SuccessCount), zap.Int("failure", res.FailureCount))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("[PushWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
