package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/repository"
)

// callLog общий журнал вызовов, по нему проверяется порядок шагов.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type memViolationRepo struct {
	mu        sync.Mutex
	rows      []models.Violation
	createErr error
	listErr   error
}

func (r *memViolationRepo) Create(_ context.Context, v *models.Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	v.ID = uuid.New()
	r.rows = append(r.rows, *v)
	return nil
}

func (r *memViolationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Violation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Violation, 0)
	for _, v := range r.rows {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memViolationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type memSuspensionRepo struct {
	mu          sync.Mutex
	log         *callLog
	suspensions []*models.Suspension
	history     []models.SuspensionHistoryEntry
	activateErr error
	historyErr  error
}

func (r *memSuspensionRepo) Activate(_ context.Context, s *models.Suspension) (*models.Suspension, error) {
	r.log.add("activate")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.activateErr != nil {
		return nil, r.activateErr
	}
	var superseded *models.Suspension
	for _, existing := range r.suspensions {
		if existing.UserID == s.UserID && existing.IsActive {
			existing.IsActive = false
			at := s.SuspendedAt
			existing.LiftedAt = &at
			cp := *existing
			superseded = &cp
		}
	}
	s.ID = uuid.New()
	s.IsActive = true
	cp := *s
	r.suspensions = append(r.suspensions, &cp)
	return superseded, nil
}

func (r *memSuspensionRepo) GetActive(_ context.Context, userID uuid.UUID) (*models.Suspension, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suspensions {
		if s.UserID == userID && s.IsActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSuspensionRepo) Deactivate(_ context.Context, id uuid.UUID, liftedBy *uuid.UUID, at time.Time) error {
	r.log.add("deactivate")
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suspensions {
		if s.ID == id && s.IsActive {
			s.IsActive = false
			s.LiftedAt = &at
			s.LiftedBy = liftedBy
			return nil
		}
	}
	return repository.ErrNoActiveSuspension
}

func (r *memSuspensionRepo) AppendHistory(_ context.Context, e *models.SuspensionHistoryEntry) error {
	r.log.add("history:" + e.Action)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.historyErr != nil {
		return r.historyErr
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	r.history = append(r.history, *e)
	return nil
}

func (r *memSuspensionRepo) ListHistory(_ context.Context, userID uuid.UUID) ([]models.SuspensionHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SuspensionHistoryEntry, 0)
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].UserID == userID {
			out = append(out, r.history[i])
		}
	}
	return out, nil
}

func (r *memSuspensionRepo) activeCount(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.suspensions {
		if s.UserID == userID && s.IsActive {
			n++
		}
	}
	return n
}

type memNotificationRepo struct {
	mu        sync.Mutex
	log       *callLog
	rows      []models.AdminNotification
	existsErr error
	createErr error
}

func (r *memNotificationRepo) ExistsForWeek(_ context.Context, userID uuid.UUID, weekKey, kind string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, n := range r.rows {
		if n.UserID == userID && n.WeekKey == weekKey && n.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

// Create повторяет частичный уникальный индекс по (user_id, week_key) для abuse_threshold.
func (r *memNotificationRepo) Create(_ context.Context, n *models.AdminNotification) (bool, error) {
	r.log.add("notify:" + n.Kind)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return false, r.createErr
	}
	if n.Kind == models.AdminNotificationAbuseThreshold {
		for _, existing := range r.rows {
			if existing.Kind == n.Kind && existing.UserID == n.UserID && existing.WeekKey == n.WeekKey {
				return false, nil
			}
		}
	}
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	r.rows = append(r.rows, *n)
	return true, nil
}

func (r *memNotificationRepo) List(_ context.Context, limit, offset int) ([]models.AdminNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AdminNotification, 0)
	for i := len(r.rows) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.rows[i])
	}
	return out, nil
}

func (r *memNotificationRepo) byKind(kind string) []models.AdminNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AdminNotification, 0)
	for _, n := range r.rows {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

type memProfileRepo struct {
	mu          sync.Mutex
	log         *callLog
	profiles    map[uuid.UUID]*models.Profile
	preferences map[uuid.UUID]json.RawMessage
	updateErr   error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{
		profiles:    make(map[uuid.UUID]*models.Profile),
		preferences: make(map[uuid.UUID]json.RawMessage),
	}
}

func (r *memProfileRepo) UpdateSuspensionStatus(_ context.Context, userID uuid.UUID, st models.SuspensionStatus) error {
	r.log.add("profile")
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.profiles[userID]
	if !ok {
		p = &models.Profile{UserID: userID}
		r.profiles[userID] = p
	}
	p.IsSuspended = st.IsSuspended
	p.SuspendedAt = st.SuspendedAt
	p.SuspendedUntil = st.SuspendedUntil
	p.SuspensionReason = st.SuspensionReason
	p.SuspendedBy = st.SuspendedBy
	return nil
}

func (r *memProfileRepo) GetProfile(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProfileRepo) GetPreferences(_ context.Context, userID uuid.UUID) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	return r.preferences[userID], nil
}

type memPrivacyRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]models.PrivacySettings
	reads    int
	getErr   error
}

func newMemPrivacyRepo() *memPrivacyRepo {
	return &memPrivacyRepo{settings: make(map[uuid.UUID]models.PrivacySettings)}
}

func (r *memPrivacyRepo) Get(_ context.Context, userID uuid.UUID) (*models.PrivacySettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.settings[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memPrivacyRepo) Upsert(_ context.Context, s *models.PrivacySettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	r.settings[s.UserID] = *s
	return nil
}

// abuseFixture собирает AbuseService на in-memory репозиториях.
type abuseFixture struct {
	log           *callLog
	violations    *memViolationRepo
	suspensions   *memSuspensionRepo
	notifications *memNotificationRepo
	profiles      *memProfileRepo
	suspender     *SuspensionService
	service       *AbuseService
	now           time.Time
}

func newAbuseFixture(now time.Time) *abuseFixture {
	log := &callLog{}
	f := &abuseFixture{
		log:           log,
		violations:    &memViolationRepo{},
		suspensions:   &memSuspensionRepo{log: log},
		notifications: &memNotificationRepo{log: log},
		profiles:      newMemProfileRepo(),
		now:           now,
	}
	f.profiles.log = log

	notifier := NewAdminNotificationService(f.notifications)
	f.suspender = NewSuspensionService(f.suspensions, f.profiles, notifier, 7*24*time.Hour)
	f.suspender.SetClock(f.clock)
	f.service = NewAbuseService(f.violations, NewEscalationPolicy(DefaultThresholds()), notifier, f.suspender)
	f.service.SetClock(f.clock)
	return f
}

func (f *abuseFixture) clock() time.Time {
	return f.now
}
