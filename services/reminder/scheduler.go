package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"itufk/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Options tune a Scheduler. A zero Window takes DefaultWindow.
type Options struct {
	// Hour is the local wall-clock hour the daily scan fires at.
	Hour   int
	Window Window
	Logger *zap.Logger
}

// DefaultHour is the local hour of the daily scan.
const DefaultHour = 17

// Scheduler runs the daily announcement scan on behalf of one member. It keeps
// at most one pending timer and rearms it after each scan completes.
type Scheduler struct {
	memberID   string
	events     EventSource
	members    MemberSource
	dispatcher *Dispatcher
	clock      Clock
	schedule   cron.Schedule
	window     Window
	logger     *zap.Logger

	mu       sync.Mutex
	running  bool
	nextFire time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(memberID string, events EventSource, members MemberSource, dispatcher *Dispatcher, clock Clock, opts Options) (*Scheduler, error) {
	if memberID == "" {
		return nil, fmt.Errorf("reminder scheduler: member id is required")
	}
	if events == nil || members == nil || dispatcher == nil || clock == nil {
		return nil, fmt.Errorf("reminder scheduler: missing dependency")
	}
	if opts.Hour < 0 || opts.Hour > 23 {
		return nil, fmt.Errorf("reminder scheduler: hour %d out of range", opts.Hour)
	}
	if opts.Window == (Window{}) {
		opts.Window = DefaultWindow
	}
	if opts.Window.MinDays > opts.Window.MaxDays {
		return nil, fmt.Errorf("reminder scheduler: empty window %d..%d", opts.Window.MinDays, opts.Window.MaxDays)
	}
	if opts.Logger == nil {
		opts.Logger = utils.GetLogger()
	}

	schedule, err := cron.ParseStandard(fmt.Sprintf("0 %d * * *", opts.Hour))
	if err != nil {
		return nil, fmt.Errorf("reminder scheduler: %w", err)
	}

	return &Scheduler{
		memberID:   memberID,
		events:     events,
		members:    members,
		dispatcher: dispatcher,
		clock:      clock,
		schedule:   schedule,
		window:     opts.Window,
		logger:     opts.Logger.With(zap.String("memberId", memberID)),
	}, nil
}

// NextFiring returns the next occurrence of the scan hour strictly after now,
// in now's location. Being exactly on the hour schedules tomorrow.
func (s *Scheduler) NextFiring(now time.Time) time.Time {
	return s.schedule.Next(now)
}

// Delay is the wait from now until NextFiring(now).
func (s *Scheduler) Delay(now time.Time) time.Duration {
	return s.NextFiring(now).Sub(now)
}

// NextFireTime is the armed fire time, zero while stopped.
func (s *Scheduler) NextFireTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextFire
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) MemberID() string { return s.memberID }

// Start arms the timer. Calling Start on a running scheduler does nothing.
// The loop ends on Stop or when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.running = true
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	s.logger.Info("reminder scheduler starting")
	go s.loop(ctx, done)
}

// Stop cancels the pending timer and waits for the loop to exit. A scan that is
// already running finishes first.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.nextFire = time.Time{}
		s.mu.Unlock()
		close(done)
	}()

	var fired time.Time
	for {
		now := s.clock.Now()
		// a wall clock stepped back must not bring the fire time before the last one
		from := now
		if fired.After(from) {
			from = fired
		}
		next := s.NextFiring(from)

		s.mu.Lock()
		s.nextFire = next
		s.mu.Unlock()

		s.logger.Debug("next announcement scan armed", zap.Time("at", next))
		timer := s.clock.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
		}
		fired = next

		// the scan outlives a concurrent Stop
		if err := s.ScanNow(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("daily announcement scan failed", zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// ScanNow loads events and members and runs one scan immediately. It leaves
// the timer alone.
func (s *Scheduler) ScanNow(ctx context.Context) error {
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("ScanNow: failed to list events: %w", err)
	}
	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("ScanNow: failed to list members: %w", err)
	}
	if len(events) == 0 || len(members) == 0 {
		s.logger.Debug("nothing to scan", zap.Int("events", len(events)), zap.Int("members", len(members)))
		return nil
	}

	s.RunDailyScan(ctx, events, members, s.memberID)
	return nil
}
