package reminder

import (
	"context"
	"fmt"

	"itufk/models"
	"itufk/services/notification"
	"itufk/utils"

	"go.uber.org/zap"
)

// Dispatcher issues at most one reminder per member, channel and event per
// calendar day. The check and the write are separate calls; two clients racing
// on the same triple can both pass ShouldNotify.
type Dispatcher struct {
	records RecordStore
	tokens  TokenRegistry
	sink    notification.Sink
	clock   Clock
	logger  *zap.Logger
}

// NewDispatcher builds a Dispatcher. A nil sink keeps reminders in-app only.
func NewDispatcher(records RecordStore, tokens TokenRegistry, sink notification.Sink, clock Clock, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &Dispatcher{
		records: records,
		tokens:  tokens,
		sink:    sink,
		clock:   clock,
		logger:  logger,
	}
}

// ShouldNotify is false when a record for the triple was created today.
func (d *Dispatcher) ShouldNotify(ctx context.Context, userID string, channel models.Channel, eventID string) (bool, error) {
	records, err := d.records.Query(ctx, userID, channel, eventID)
	if err != nil {
		return false, fmt.Errorf("ShouldNotify: %w", err)
	}

	now := d.clock.Now()
	for _, r := range records {
		if SameDay(r.CreatedAt, now, now.Location()) {
			return false, nil
		}
	}
	return true, nil
}

// Dispatch records the reminder and then attempts push delivery. It does not
// re-check ShouldNotify. Only a failed write is returned; delivery problems are
// logged because the record alone answers "was this member reminded today".
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, channel models.Channel, eventID, title, body string) error {
	now := d.clock.Now()
	record := models.ReminderRecord{
		UserID:    userID,
		Channel:   channel,
		EventID:   eventID,
		Title:     title,
		Body:      body,
		Day:       now.Format(models.EventDateLayout),
		CreatedAt: now,
	}

	id, err := d.records.Insert(ctx, record)
	if err != nil {
		return fmt.Errorf("Dispatch: failed to persist reminder: %w", err)
	}

	log := d.logger.With(
		zap.String("reminderId", id),
		zap.String("userId", userID),
		zap.String("channel", string(channel)),
		zap.String("eventId", eventID),
	)

	if d.sink == nil {
		return nil
	}

	tokens, err := d.tokens.GetPushTokens(ctx, userID)
	if err != nil {
		log.Warn("could not resolve push tokens, reminder kept in-app", zap.Error(err))
		return nil
	}
	if len(tokens) == 0 {
		log.Debug("no push tokens registered, reminder kept in-app")
		return nil
	}

	data := map[string]string{
		"type":       "announcement_reminder",
		"reminderId": id,
		"eventId":    eventID,
		"channel":    string(channel),
	}
	res, err := d.sink.Send(ctx, tokens, title, body, data)
	if err != nil {
		log.Warn("push delivery failed", zap.Error(err))
		return nil
	}
	if res.Queued > 0 {
		log.Info("reminder queued", zap.Int("tokens", res.Queued))
		return nil
	}
	log.Info("reminder pushed",
		zap.Int("delivered", res.SuccessCount),
		zap.Int("failed", res.FailureCount))
	return nil
}
