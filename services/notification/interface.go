package notification

import (
	"context"
	"errors"
	"fmt"

	"itufk/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sink delivers a push to a set of device registration tokens.
type Sink interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*DeliveryResult, error)
}

// DeliveryResult summarises a multicast delivery.
type DeliveryResult struct {
	SuccessCount int
	FailureCount int
	// FailedTokens are tokens FCM rejected, in request order.
	FailedTokens []string
	// Queued counts tokens handed to a background worker and not yet delivered.
	Queued int
}

// multicastClient is the part of *messaging.Client the sink needs.
type multicastClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMSink is the production Sink backed by Firebase Cloud Messaging.
type FCMSink struct {
	client multicastClient
	logger *zap.Logger
}

func NewFCMSink(client *messaging.Client, logger *zap.Logger) (*FCMSink, error) {
	if client == nil {
		return nil, fmt.Errorf("notification sink initialization error: messaging client is nil")
	}
	return newFCMSink(client, logger), nil
}

func newFCMSink(client multicastClient, logger *zap.Logger) *FCMSink {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &FCMSink{client: client, logger: logger}
}

// Send fans the notification out to every token in one multicast call.
func (s *FCMSink) Send(
	ctx context.Context,
	tokens []string,
	title, body string,
	data map[string]string,
) (*DeliveryResult, error) {
	if len(tokens) == 0 {
		return &DeliveryResult{}, nil
	}

	resp, err := s.client.SendEachForMulticast(ctx, buildMulticast(tokens, title, body, data))
	if err != nil {
		return nil, fmt.Errorf("Send: failed to send FCM multicast: %w", err)
	}

	result := &DeliveryResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}
	var errs []error
	for i, r := range resp.Responses {
		if r.Success || i >= len(tokens) {
			continue
		}
		result.FailedTokens = append(result.FailedTokens, tokens[i])
		errs = append(errs, r.Error)
	}

	s.logger.Debug("FCM multicast delivered",
		zap.Int("success", result.SuccessCount),
		zap.Int("failure", result.FailureCount))

	if result.SuccessCount == 0 && result.FailureCount > 0 {
		return result, fmt.Errorf("Send: every token failed: %w", errors.Join(errs...))
	}
	return result, nil
}

func buildMulticast(tokens []string, title, body string, data map[string]string) *messaging.MulticastMessage {
	payload := map[string]string{}
	for k, v := range data {
		payload[k] = v
	}
	if _, ok := payload["type"]; !ok {
		payload["type"] = "announcement_reminder"
	}

	return &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
}
