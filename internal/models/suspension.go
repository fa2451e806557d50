package models

import (
	"time"

	"github.com/google/uuid"
)

// Suspension блокировка пользователя. Активной может быть только одна;
// при снятии или замене запись деактивируется, но не удаляется.
type Suspension struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	UserID                 uuid.UUID  `db:"user_id" json:"user_id"`
	Reason                 string     `db:"reason" json:"reason"`
	SuspendedAt            time.Time  `db:"suspended_at" json:"suspended_at"`
	SuspendedUntil         *time.Time `db:"suspended_until" json:"suspended_until,omitempty"`
	TriggeredByViolationID *uuid.UUID `db:"triggered_by_violation_id" json:"triggered_by_violation_id,omitempty"`
	SuspendedBy            string     `db:"suspended_by" json:"suspended_by"`
	IsActive               bool       `db:"is_active" json:"is_active"`
	LiftedAt               *time.Time `db:"lifted_at" json:"lifted_at,omitempty"`
	LiftedBy               *uuid.UUID `db:"lifted_by" json:"lifted_by,omitempty"`
}

// SuspensionHistoryEntry запись аудита, одна на каждый переход.
type SuspensionHistoryEntry struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	SuspensionID   uuid.UUID  `db:"suspension_id" json:"suspension_id"`
	Action         string     `db:"action" json:"action"`
	Reason         string     `db:"reason" json:"reason"`
	ViolationID    *uuid.UUID `db:"violation_id" json:"violation_id,omitempty"`
	SuspendedUntil *time.Time `db:"suspended_until" json:"suspended_until,omitempty"`
	Actor          string     `db:"actor" json:"actor"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// SuspensionStatus поля блокировки, которые хранятся в профиле.
type SuspensionStatus struct {
	IsSuspended      bool
	SuspendedAt      *time.Time
	SuspendedUntil   *time.Time
	SuspensionReason *string
	SuspendedBy      *string
}
