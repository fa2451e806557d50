package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return sqlx.NewDb(conn, "postgres"), mock
}

func strPtr(s string) *string { return &s }

func TestViolationRepository_CreateFillsIDAndTime(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewViolationRepository(db)

	id := uuid.New()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO violations")).
		WithArgs(sqlmock.AnyArg(), "spam_input", "high", nil, "2026-W42", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id.String(), now))

	v := &models.Violation{
		UserID:        uuid.New(),
		ViolationType: "spam_input",
		Severity:      strPtr("high"),
		WeekKey:       strPtr("2026-W42"),
	}
	require.NoError(t, repo.Create(context.Background(), v))

	assert.Equal(t, id, v.ID)
	require.NotNil(t, v.CreatedAt)
	assert.True(t, now.Equal(*v.CreatedAt))
}

func TestViolationRepository_ListByUserToleratesMissingColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewViolationRepository(db)

	userID := uuid.New()
	created := time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "violation_type", "severity", "evidence", "week_key", "created_at"}).
		AddRow(uuid.NewString(), userID.String(), "legacy", nil, []byte("null"), nil, nil).
		AddRow(uuid.NewString(), userID.String(), "xss_attempt", "low", []byte(`{"path":"/recipes"}`), "2026-W42", created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM violations")).WithArgs(sqlmock.AnyArg()).WillReturnRows(rows)

	violations, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, violations, 2)

	assert.Nil(t, violations[0].Severity)
	assert.Nil(t, violations[0].WeekKey)
	assert.Nil(t, violations[0].CreatedAt)
	assert.JSONEq(t, `{"path":"/recipes"}`, string(violations[1].Evidence))
	assert.Equal(t, "2026-W42", *violations[1].WeekKey)
}

func TestViolationRepository_ListByUserEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewViolationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM violations")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "violation_type", "severity", "evidence", "week_key", "created_at"}))

	violations, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, violations)
	assert.Empty(t, violations)
}

func TestAdminNotificationRepository_CreateConflictIsNotAnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admin_notifications")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	created, err := repo.Create(context.Background(), &models.AdminNotification{
		UserID:       uuid.New(),
		WeekKey:      "2026-W42",
		Kind:         models.AdminNotificationAbuseThreshold,
		ViolationIDs: []uuid.UUID{uuid.New()},
	})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAdminNotificationRepository_ListParsesViolationIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminNotificationRepository(db)

	v1, v2 := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_notifications")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "week_key", "kind", "violation_ids", "payload", "created_at"}).
			AddRow(uuid.NewString(), uuid.NewString(), "2026-W42", "abuse_threshold",
				[]byte("{"+v1.String()+","+v2.String()+"}"), []byte(`{"this_week_violations":5}`), time.Now()))

	list, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []uuid.UUID{v1, v2}, list[0].ViolationIDs)
	assert.JSONEq(t, `{"this_week_violations":5}`, string(list[0].Payload))
}

var suspensionColumns = []string{
	"id", "user_id", "reason", "suspended_at", "suspended_until",
	"triggered_by_violation_id", "suspended_by", "is_active", "lifted_at", "lifted_by",
}

func TestSuspensionRepository_ActivateSupersedesCurrent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSuspensionRepository(db)

	userID := uuid.New()
	oldID, newID := uuid.New(), uuid.New()
	at := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(suspensionColumns).
			AddRow(oldID.String(), userID.String(), "old", at.Add(-time.Hour), nil, nil, "system", true, nil, nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_suspensions SET is_active = FALSE")).
		WithArgs(sqlmock.AnyArg(), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_suspensions")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newID.String()))
	mock.ExpectCommit()

	s := &models.Suspension{UserID: userID, Reason: "new", SuspendedAt: at, SuspendedBy: "system"}
	superseded, err := repo.Activate(context.Background(), s)
	require.NoError(t, err)

	require.NotNil(t, superseded)
	assert.Equal(t, oldID, superseded.ID)
	assert.False(t, superseded.IsActive)
	assert.Equal(t, newID, s.ID)
	assert.True(t, s.IsActive)
}

func TestSuspensionRepository_ActivateWithoutCurrent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSuspensionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WillReturnRows(sqlmock.NewRows(suspensionColumns))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_suspensions")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	superseded, err := repo.Activate(context.Background(), &models.Suspension{UserID: uuid.New(), SuspendedAt: time.Now()})
	require.NoError(t, err)
	assert.Nil(t, superseded)
}

func TestSuspensionRepository_ActivateRacingInsertRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSuspensionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WillReturnRows(sqlmock.NewRows(suspensionColumns))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_suspensions")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Activate(context.Background(), &models.Suspension{UserID: uuid.New(), SuspendedAt: time.Now()})
	assert.ErrorIs(t, err, ErrSuspensionConflict)
}

func TestSuspensionRepository_DeactivateWithoutActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSuspensionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE user_suspensions")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), uuid.New(), nil, time.Now())
	assert.ErrorIs(t, err, ErrNoActiveSuspension)
}

func TestSuspensionRepository_GetActiveAbsent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSuspensionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_suspensions")).WillReturnRows(sqlmock.NewRows(suspensionColumns))

	s, err := repo.GetActive(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFriendshipRepository_GetStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendshipRepository(db)

	a, b := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM friendships")).
		WithArgs(a, b).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("accepted"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM friendships")).
		WithArgs(b, a).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	status, err := repo.GetStatus(context.Background(), a, b)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusAccepted, status)

	status, err = repo.GetStatus(context.Background(), b, a)
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestPrivacyRepository_GetAbsentReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPrivacyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM privacy_settings")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "profile_visibility", "email_visibility", "date_of_birth_visibility", "updated_at"}))

	settings, err := repo.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestUserRepository_UpdateSuspensionStatusUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.UpdateSuspensionStatus(context.Background(), uuid.New(), models.SuspensionStatus{IsSuspended: true})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_GetPreferences(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("preferences")).
		WillReturnRows(sqlmock.NewRows([]string{"preferences"}).AddRow([]byte(`{"diet":"vegetarian"}`)))

	prefs, err := repo.GetPreferences(context.Background(), uuid.New())
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(prefs, &decoded))
	assert.Equal(t, "vegetarian", decoded["diet"])
}
