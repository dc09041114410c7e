package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"itufk/models"
	"itufk/services/notification"
)

type fakeTimer struct {
	d       time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func (t *fakeTimer) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// fakeClock hands every created timer to the test through timers.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers chan *fakeTimer
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, timers: make(chan *fakeTimer, 16)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	t := &fakeTimer{d: d, c: make(chan time.Time, 1)}
	c.timers <- t
	return t
}

type fakeRecordStore struct {
	mu        sync.Mutex
	records   []models.ReminderRecord
	seq       int
	QueryFunc func(userID string, channel models.Channel, eventID string) error
	InsertErr func(record models.ReminderRecord) error
}

func (s *fakeRecordStore) Query(_ context.Context, userID string, channel models.Channel, eventID string) ([]models.ReminderRecord, error) {
	if s.QueryFunc != nil {
		if err := s.QueryFunc(userID, channel, eventID); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ReminderRecord
	for _, r := range s.records {
		if r.UserID == userID && r.Channel == channel && r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRecordStore) Insert(_ context.Context, record models.ReminderRecord) (string, error) {
	if s.InsertErr != nil {
		if err := s.InsertErr(record); err != nil {
			return "", err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	record.ID = fmt.Sprintf("r%d", s.seq)
	s.records = append(s.records, record)
	return record.ID, nil
}

func (s *fakeRecordStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *fakeRecordStore) forUser(userID string) []models.ReminderRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ReminderRecord
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

type fakeTokens struct {
	tokens map[string][]string
	err    error
}

func (f fakeTokens) GetPushTokens(_ context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens[userID], nil
}

type sentPush struct {
	tokens      []string
	title, body string
	data        map[string]string
	storedAt    int
}

type fakeSink struct {
	mu    sync.Mutex
	store *fakeRecordStore
	sent  []sentPush
	err   error
	// queued makes the sink behave like the background queue.
	queued bool
}

func (f *fakeSink) Send(_ context.Context, tokens []string, title, body string, data map[string]string) (*notification.DeliveryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := 0
	if f.store != nil {
		stored = f.store.count()
	}
	f.sent = append(f.sent, sentPush{tokens: tokens, title: title, body: body, data: data, storedAt: stored})
	if f.err != nil {
		return nil, f.err
	}
	if f.queued {
		return &notification.DeliveryResult{Queued: len(tokens)}, nil
	}
	return &notification.DeliveryResult{SuccessCount: len(tokens)}, nil
}

func (f *fakeSink) calls() []sentPush {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentPush(nil), f.sent...)
}

type fakeEvents struct {
	events []models.Event
	err    error
}

func (f fakeEvents) ListEvents(context.Context) ([]models.Event, error) { return f.events, f.err }

type fakeMembers struct {
	members []models.Member
	err     error
}

func (f fakeMembers) ListMembers(context.Context) ([]models.Member, error) { return f.members, f.err }
