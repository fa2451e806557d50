package service

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

// AggregateWeeklyStats сворачивает журнал нарушений в статистику для недели currentWeek.
// Записи без severity не попадают в разбивку, записи без недели не попадают
// в счётчик недели; в общем счётчике учитываются все.
func AggregateWeeklyStats(userID uuid.UUID, violations []models.Violation, currentWeek string, policy *EscalationPolicy) *models.WeeklyStats {
	stats := &models.WeeklyStats{
		UserID:            userID,
		WeekKey:           currentWeek,
		TotalViolations:   len(violations),
		SeverityBreakdown: make(map[string]int),
	}

	for i := range violations {
		v := &violations[i]
		if week, ok := v.ResolveWeekKey(); ok && week == currentWeek {
			stats.ThisWeekViolations++
		}
		if v.Severity != nil && *v.Severity != "" {
			stats.SeverityBreakdown[*v.Severity]++
		}
	}

	decision := policy.Decide(stats)
	stats.ShouldNotifyAdmin = decision.Notify
	stats.ShouldAutoSuspend = decision.Suspend

	return stats
}

// ViolationsInWeek выбирает нарушения указанной недели.
func ViolationsInWeek(violations []models.Violation, week string) []models.Violation {
	out := make([]models.Violation, 0)
	for _, v := range violations {
		if key, ok := v.ResolveWeekKey(); ok && key == week {
			out = append(out, v)
		}
	}
	return out
}
