package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/pkg/weekkey"
)

// Violation описывает одно зафиксированное нарушение пользователя.
// Запись неизменяема: исправления оформляются новой записью.
type Violation struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	ViolationType string          `db:"violation_type" json:"violation_type"`
	Severity      *string         `db:"severity" json:"severity,omitempty"`
	Evidence      json.RawMessage `db:"evidence" json:"evidence,omitempty"`
	WeekKey       *string         `db:"week_key" json:"week_key,omitempty"`
	CreatedAt     *time.Time      `db:"created_at" json:"created_at,omitempty"`
}

// ResolveWeekKey возвращает неделю нарушения. Старые записи без week_key
// получают неделю из created_at; если нет ни того ни другого, ok=false.
func (v *Violation) ResolveWeekKey() (string, bool) {
	if v.WeekKey != nil && *v.WeekKey != "" {
		return *v.WeekKey, true
	}
	if v.CreatedAt != nil && !v.CreatedAt.IsZero() {
		return weekkey.For(*v.CreatedAt), true
	}
	return "", false
}

// WeeklyStats агрегированная статистика нарушений. Никогда не сохраняется.
type WeeklyStats struct {
	UserID             uuid.UUID      `json:"user_id"`
	WeekKey            string         `json:"week_key"`
	TotalViolations    int            `json:"total_violations"`
	ThisWeekViolations int            `json:"this_week_violations"`
	SeverityBreakdown  map[string]int `json:"severity_breakdown"`
	ShouldNotifyAdmin  bool           `json:"should_notify_admin"`
	ShouldAutoSuspend  bool           `json:"should_auto_suspend"`
}
