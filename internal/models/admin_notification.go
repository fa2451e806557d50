package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AdminNotification запись для модераторов о нарушителе.
// Уведомление abuse_threshold создаётся не более одного раза на (user_id, week_key).
type AdminNotification struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	UserID       uuid.UUID       `db:"user_id" json:"user_id"`
	WeekKey      string          `db:"week_key" json:"week_key"`
	Kind         string          `db:"kind" json:"kind"`
	ViolationIDs []uuid.UUID     `db:"-" json:"violation_ids"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
