package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

// AdminNotificationRepository уведомления для модераторов.
type AdminNotificationRepository struct {
	db *sqlx.DB
}

// NewAdminNotificationRepository создаёт экземпляр репозитория.
func NewAdminNotificationRepository(db *sqlx.DB) *AdminNotificationRepository {
	return &AdminNotificationRepository{db: db}
}

// ExistsForWeek проверяет, есть ли уже уведомление данного типа за неделю.
func (r *AdminNotificationRepository) ExistsForWeek(ctx context.Context, userID uuid.UUID, weekKey, kind string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM admin_notifications
			WHERE user_id = $1 AND week_key = $2 AND kind = $3
		)
	`
	if err := r.db.GetContext(ctx, &exists, query, userID, weekKey, kind); err != nil {
		return false, fmt.Errorf("admin notification repository: exists for week %w", err)
	}

	return exists, nil
}

// Create сохраняет уведомление. Для abuse_threshold повтор за ту же неделю
// отсекается уникальным индексом, тогда created=false.
func (r *AdminNotificationRepository) Create(ctx context.Context, notification *models.AdminNotification) (bool, error) {
	query := `
		INSERT INTO admin_notifications (user_id, week_key, kind, violation_ids, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at
	`

	payload := notification.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	err := r.db.QueryRowxContext(
		ctx, query,
		notification.UserID,
		notification.WeekKey,
		notification.Kind,
		pq.Array(uuidStrings(notification.ViolationIDs)),
		[]byte(payload),
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("admin notification repository: create %w", err)
	}

	return true, nil
}

// List возвращает уведомления, новые первыми.
func (r *AdminNotificationRepository) List(ctx context.Context, limit, offset int) ([]models.AdminNotification, error) {
	query := `
		SELECT id, user_id, week_key, kind, violation_ids::text[], payload, created_at
		FROM admin_notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("admin notification repository: list %w", err)
	}
	defer rows.Close()

	notifications := make([]models.AdminNotification, 0)
	for rows.Next() {
		var (
			n            models.AdminNotification
			violationIDs pq.StringArray
			payload      []byte
			createdAt    time.Time
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.WeekKey, &n.Kind, &violationIDs, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("admin notification repository: list scan %w", err)
		}
		n.Payload = json.RawMessage(payload)
		n.CreatedAt = createdAt
		n.ViolationIDs = make([]uuid.UUID, 0, len(violationIDs))
		for _, raw := range violationIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("admin notification repository: list parse violation id %w", err)
			}
			n.ViolationIDs = append(n.ViolationIDs, id)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin notification repository: list rows %w", err)
	}

	return notifications, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
