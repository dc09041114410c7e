package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	memberRepo "itufk/database/repository/member"
	"itufk/models"
	"itufk/services/reminder"
	"itufk/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// CredentialStore looks members up for login.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
}

// SchedulerFactory builds the reminder scheduler bound to a member session.
type SchedulerFactory func(memberID string) (*reminder.Scheduler, error)

// LoginResponse is returned to the client after a successful login.
type LoginResponse struct {
	ID           string    `json:"id"`
	Token        string    `json:"token"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	NextReminder time.Time `json:"nextReminder"`
}

// Manager owns member sessions and the reminder scheduler of each signed-in member.
type Manager struct {
	members      CredentialStore
	cache        TokenCache
	newScheduler SchedulerFactory
	ttl          time.Duration
	logger       *zap.Logger

	// base outlives requests; schedulers are cancelled by Logout or Shutdown.
	base context.Context

	mu         sync.Mutex
	schedulers map[string]*reminder.Scheduler
}

func NewManager(base context.Context, members CredentialStore, cache TokenCache, factory SchedulerFactory, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = utils.GetLogger()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		members:      members,
		cache:        cache,
		newScheduler: factory,
		ttl:          ttl,
		logger:       logger,
		base:         base,
		schedulers:   make(map[string]*reminder.Scheduler),
	}
}

func cacheKey(memberID string) string {
	return utils.AuthCachePrefix + memberID
}

// Login verifies credentials, issues a token and starts the member's reminder scheduler.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	member, err := m.members.GetByEmail(ctx, email)
	if errors.Is(err, memberRepo.ErrMemberNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		m.logger.Error("Failed to fetch member for login", zap.Error(err))
		return nil, fmt.Errorf("Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(member.ID, member.Email, m.ttl)
	if err != nil {
		m.logger.Error("Failed to generate session token", zap.Error(err))
		return nil, fmt.Errorf("Login: %w", err)
	}
	if err := m.cache.Set(ctx, cacheKey(member.ID), utils.HashToken(token), m.ttl); err != nil {
		m.logger.Error("Failed to cache session token", zap.Error(err))
		return nil, fmt.Errorf("Login: %w", err)
	}

	sched, err := m.ensureScheduler(member.ID)
	if err != nil {
		return nil, fmt.Errorf("Login: %w", err)
	}

	m.logger.Info("Member signed in", zap.String("memberId", member.ID))
	return &LoginResponse{
		ID:           member.ID,
		Token:        token,
		Name:         member.Name,
		Email:        member.Email,
		NextReminder: sched.NextFiring(time.Now()),
	}, nil
}

// Authenticate resolves a bearer token to a member ID. A valid session whose
// scheduler is not running (for example after a restart) gets it started again.
// An ended session takes its scheduler down with it.
func (m *Manager) Authenticate(ctx context.Context, token string) (string, error) {
	memberID, err := utils.ExtractIDFromToken(token)
	if err != nil || memberID == "" {
		if expiredID, ok := utils.ExpiredTokenSubject(token); ok {
			m.expireToken(ctx, expiredID, token)
		}
		return "", ErrUnauthorized
	}

	cached, err := m.cache.Get(ctx, cacheKey(memberID))
	if errors.Is(err, ErrCacheMiss) {
		m.endIfExpired(ctx, memberID)
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("Authenticate: %w", err)
	}
	if cached != utils.HashToken(token) {
		return "", ErrUnauthorized
	}

	if _, err := m.ensureScheduler(memberID); err != nil {
		m.logger.Warn("Failed to resume reminder scheduler", zap.String("memberId", memberID), zap.Error(err))
	}
	return memberID, nil
}

// expireToken ends the session an expired token belonged to, unless the member
// has since signed in again with a different token.
func (m *Manager) expireToken(ctx context.Context, memberID, token string) {
	cached, err := m.cache.Get(ctx, cacheKey(memberID))
	switch {
	case errors.Is(err, ErrCacheMiss):
		m.endIfExpired(ctx, memberID)
	case err != nil:
		m.logger.Warn("Failed to read session cache", zap.String("memberId", memberID), zap.Error(err))
	case cached == utils.HashToken(token):
		if err := m.cache.Del(ctx, cacheKey(memberID)); err != nil {
			m.logger.Warn("Failed to clear expired session", zap.String("memberId", memberID), zap.Error(err))
			return
		}
		m.endIfExpired(ctx, memberID)
	}
}

// endIfExpired stops the member's scheduler when no session is cached for them.
// The cache is read again under the lock so a concurrent Login keeps its scheduler.
func (m *Manager) endIfExpired(ctx context.Context, memberID string) bool {
	m.mu.Lock()
	sched, ok := m.schedulers[memberID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	if _, err := m.cache.Get(ctx, cacheKey(memberID)); !errors.Is(err, ErrCacheMiss) {
		m.mu.Unlock()
		return false
	}
	delete(m.schedulers, memberID)
	m.mu.Unlock()

	sched.Stop()
	m.logger.Info("Session expired, reminder scheduler stopped", zap.String("memberId", memberID))
	return true
}

// Sweep stops the schedulers of members whose session is no longer cached and
// returns how many it stopped.
func (m *Manager) Sweep(ctx context.Context) int {
	m.mu.Lock()
	ids := make([]string, 0, len(m.schedulers))
	for id := range m.schedulers {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	stopped := 0
	for _, id := range ids {
		if m.endIfExpired(ctx, id) {
			stopped++
		}
	}
	return stopped
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(ctx); n > 0 {
					m.logger.Info("Expired sessions swept", zap.Int("stopped", n))
				}
			}
		}
	}()
}

// Logout revokes the member's session and stops its scheduler.
func (m *Manager) Logout(ctx context.Context, memberID string) error {
	if err := m.cache.Del(ctx, cacheKey(memberID)); err != nil {
		m.logger.Error("Failed to clear session cache", zap.String("memberId", memberID), zap.Error(err))
		return fmt.Errorf("Logout: %w", err)
	}

	m.mu.Lock()
	sched := m.schedulers[memberID]
	delete(m.schedulers, memberID)
	m.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
	m.logger.Info("Member signed out", zap.String("memberId", memberID))
	return nil
}

// Scheduler returns the running scheduler of a member, if any.
func (m *Manager) Scheduler(memberID string) (*reminder.Scheduler, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedulers[memberID]
	return s, ok
}

// Shutdown stops every scheduler, waiting for in-flight scans.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	all := m.schedulers
	m.schedulers = make(map[string]*reminder.Scheduler)
	m.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range all {
		wg.Add(1)
		go func(s *reminder.Scheduler) {
			defer wg.Done()
			s.Stop()
		}(s)
	}
	wg.Wait()
	m.logger.Info("Reminder schedulers stopped", zap.Int("count", len(all)))
}

// ensureScheduler returns the member's running scheduler. One whose loop has
// ended is replaced by a fresh one.
func (m *Manager) ensureScheduler(memberID string) (*reminder.Scheduler, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.schedulers[memberID]; ok && s.Running() {
		return s, nil
	}
	s, err := m.newScheduler(memberID)
	if err != nil {
		return nil, err
	}
	s.Start(m.base)
	m.schedulers[memberID] = s
	return s, nil
}
