package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	eventRepo "itufk/database/repository/event"
	memberRepo "itufk/database/repository/member"
	"itufk/middleware"
	"itufk/models"
	"itufk/services/event"
	"itufk/services/reminder"
	"itufk/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asMember stands in for JWTAuthMemberMiddleware.
func asMember(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != "" {
			c.Set(middleware.ContextMemberID, id)
		}
		c.Next()
	}
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type fakeSessions struct {
	loggedOut []string
}

func (f *fakeSessions) Login(_ context.Context, email, password string) (*session.LoginResponse, error) {
	switch {
	case email == "broken@itu.edu.tr":
		return nil, errors.New("mongo down")
	case email != "ayse@itu.edu.tr" || password != "s3cret!":
		return nil, session.ErrInvalidCredentials
	}
	return &session.LoginResponse{ID: "A", Token: "tok", Email: email}, nil
}

func (f *fakeSessions) Logout(_ context.Context, memberID string) error {
	f.loggedOut = append(f.loggedOut, memberID)
	return nil
}

func TestSessionHandler(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewSessionHandler(sessions)

	r := gin.New()
	r.POST("/login", h.LoginHandler)
	r.POST("/logout", asMember("A"), h.LogoutHandler)
	r.POST("/anon-logout", asMember(""), h.LogoutHandler)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{name: "Should sign in with valid credentials", path: "/login", body: gin.H{"email": "ayse@itu.edu.tr", "password": "s3cret!"}, wantStatus: http.StatusOK},
		{name: "Should reject bad credentials", path: "/login", body: gin.H{"email": "ayse@itu.edu.tr", "password": "x"}, wantStatus: http.StatusUnauthorized},
		{name: "Should reject a missing password", path: "/login", body: gin.H{"email": "ayse@itu.edu.tr"}, wantStatus: http.StatusBadRequest},
		{name: "Should hide store failures", path: "/login", body: gin.H{"email": "broken@itu.edu.tr", "password": "x"}, wantStatus: http.StatusInternalServerError},
		{name: "Should sign out", path: "/logout", wantStatus: http.StatusOK},
		{name: "Should require a member to sign out", path: "/anon-logout", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
	assert.Equal(t, []string{"A"}, sessions.loggedOut)
}

type fakeTokenStore struct {
	tokens map[string][]string
}

func (f *fakeTokenStore) AddPushToken(_ context.Context, id, token string) error {
	if id == "ghost" {
		return memberRepo.ErrMemberNotFound
	}
	f.tokens[id] = append(f.tokens[id], token)
	return nil
}

func (f *fakeTokenStore) RemovePushToken(_ context.Context, id, token string) error {
	kept := f.tokens[id][:0]
	for _, t := range f.tokens[id] {
		if t != token {
			kept = append(kept, t)
		}
	}
	f.tokens[id] = kept
	return nil
}

func TestPushTokenHandler(t *testing.T) {
	store := &fakeTokenStore{tokens: map[string][]string{}}
	h := NewPushTokenHandler(store)

	r := gin.New()
	r.PUT("/me", asMember("A"), h.RegisterPushTokenHandler)
	r.DELETE("/me", asMember("A"), h.UnregisterPushTokenHandler)
	r.PUT("/ghost", asMember("ghost"), h.RegisterPushTokenHandler)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/me", gin.H{"token": "fcm-1"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/me", gin.H{"token": "fcm-2"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/me", gin.H{}).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/ghost", gin.H{"token": "fcm-3"}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/me", gin.H{"token": "fcm-1"}).Code)

	assert.Equal(t, []string{"fcm-2"}, store.tokens["A"])
}

type fakeEventService struct{}

func (fakeEventService) ListEvents(context.Context) ([]models.Event, error) {
	return []models.Event{{ID: "E1", Title: "Photo walk"}}, nil
}

func (fakeEventService) MarkAnnounced(_ context.Context, memberID, eventID string, channel models.Channel) (*models.Event, error) {
	switch {
	case !channel.Valid():
		return nil, event.ErrUnknownChannel
	case eventID != "E1":
		return nil, eventRepo.ErrEventNotFound
	case memberID != "A":
		return nil, event.ErrNotCaptain
	}
	return &models.Event{ID: "E1", GenericAnnounced: true}, nil
}

func TestEventHandler(t *testing.T) {
	h := NewEventHandler(fakeEventService{})

	r := gin.New()
	r.GET("/events", h.ListEventsHandler)
	r.PATCH("/as/A/events/:id/announced", asMember("A"), h.MarkAnnouncedHandler)
	r.PATCH("/as/C/events/:id/announced", asMember("C"), h.MarkAnnouncedHandler)

	w := do(r, http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Events, 1)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{name: "Should mark as captain", path: "/as/A/events/E1/announced", body: gin.H{"channel": "generic"}, wantStatus: http.StatusOK},
		{name: "Should forbid non-leads", path: "/as/C/events/E1/announced", body: gin.H{"channel": "generic"}, wantStatus: http.StatusForbidden},
		{name: "Should reject unknown channels", path: "/as/A/events/E1/announced", body: gin.H{"channel": "fax"}, wantStatus: http.StatusBadRequest},
		{name: "Should reject a missing channel", path: "/as/A/events/E1/announced", body: gin.H{}, wantStatus: http.StatusBadRequest},
		{name: "Should report missing events", path: "/as/A/events/E9/announced", body: gin.H{"channel": "generic"}, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

type fakeHistory struct {
	gotLimit int64
}

func (f *fakeHistory) ListByUser(_ context.Context, userID string, limit int64) ([]models.ReminderRecord, error) {
	f.gotLimit = limit
	return []models.ReminderRecord{{ID: "r1", UserID: userID, Channel: models.ChannelGeneric, EventID: "E1"}}, nil
}

type staticEvents []models.Event

func (s staticEvents) ListEvents(context.Context) ([]models.Event, error) { return s, nil }

type staticMembers []models.Member

func (s staticMembers) ListMembers(context.Context) ([]models.Member, error) { return s, nil }

type memRecords struct {
	records []models.ReminderRecord
}

func (m *memRecords) Query(_ context.Context, userID string, channel models.Channel, eventID string) ([]models.ReminderRecord, error) {
	var out []models.ReminderRecord
	for _, r := range m.records {
		if r.UserID == userID && r.Channel == channel && r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRecords) Insert(_ context.Context, r models.ReminderRecord) (string, error) {
	m.records = append(m.records, r)
	return "r", nil
}

type noTokens struct{}

func (noTokens) GetPushTokens(context.Context, string) ([]string, error) { return nil, nil }

type schedulerMap map[string]*reminder.Scheduler

func (m schedulerMap) Scheduler(id string) (*reminder.Scheduler, bool) {
	s, ok := m[id]
	return s, ok
}

func TestReminderHandler(t *testing.T) {
	clock := reminder.NewSystemClock(time.UTC)
	records := &memRecords{}
	dispatcher := reminder.NewDispatcher(records, noTokens{}, nil, clock, zap.NewNop())

	date := clock.Now().AddDate(0, 0, 3).Format(models.EventDateLayout)
	events := staticEvents{{ID: "E1", Title: "Photo walk", Date: date, CaptainID: "A"}}
	members := staticMembers{{ID: "A"}}
	sched, err := reminder.NewScheduler("A", events, members, dispatcher, clock, reminder.Options{Hour: 17, Logger: zap.NewNop()})
	require.NoError(t, err)
	sched.Start(context.Background())
	t.Cleanup(sched.Stop)

	history := &fakeHistory{}
	h := NewReminderHandler(history, schedulerMap{"A": sched})

	r := gin.New()
	r.GET("/as/A/reminders", asMember("A"), h.ListRemindersHandler)
	r.GET("/as/A/schedule", asMember("A"), h.GetScheduleHandler)
	r.GET("/as/B/schedule", asMember("B"), h.GetScheduleHandler)
	r.POST("/as/A/scan", asMember("A"), h.ScanNowHandler)
	r.POST("/as/B/scan", asMember("B"), h.ScanNowHandler)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/as/A/reminders", nil).Code)
	assert.Equal(t, int64(defaultReminderLimit), history.gotLimit)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/as/A/reminders?limit=5", nil).Code)
	assert.Equal(t, int64(5), history.gotLimit)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/as/A/reminders?limit=-1", nil).Code)

	require.Eventually(t, func() bool { return !sched.NextFireTime().IsZero() }, time.Second, 5*time.Millisecond)
	w := do(r, http.MethodGet, "/as/A/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sr scheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sr))
	assert.True(t, sr.Running)
	require.NotNil(t, sr.NextFireTime)
	assert.True(t, sr.NextFireTime.Equal(sched.NextFireTime()))

	w = do(r, http.MethodGet, "/as/B/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running": false}`, w.Body.String())

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/as/A/scan", nil).Code)
	assert.Len(t, records.records, 3, "one reminder per unannounced channel")
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/as/A/scan", nil).Code)
	assert.Len(t, records.records, 3, "a second scan the same day adds nothing")

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/as/B/scan", nil).Code)
}
