package service

import "github.com/ignatzorin/recipe-social-backend/internal/models"

// Пороги по умолчанию: нарушения за текущую неделю.
const (
	DefaultNotifyThreshold  = 5
	DefaultSuspendThreshold = 10
)

// Thresholds пороги эскалации.
type Thresholds struct {
	Notify  int
	Suspend int
}

// DefaultThresholds возвращает пороги 5/10.
func DefaultThresholds() Thresholds {
	return Thresholds{Notify: DefaultNotifyThreshold, Suspend: DefaultSuspendThreshold}
}

// Normalize заменяет некорректные значения дефолтами. Блокировка не может
// срабатывать раньше уведомления.
func (t Thresholds) Normalize() Thresholds {
	if t.Notify <= 0 {
		t.Notify = DefaultNotifyThreshold
	}
	if t.Suspend <= 0 {
		t.Suspend = DefaultSuspendThreshold
	}
	if t.Suspend < t.Notify {
		return DefaultThresholds()
	}
	return t
}

// Decision что нужно сделать по итогам статистики.
type Decision struct {
	Notify  bool
	Suspend bool
}

// EscalationPolicy чистая функция над недельной статистикой.
type EscalationPolicy struct {
	thresholds Thresholds
}

func NewEscalationPolicy(thresholds Thresholds) *EscalationPolicy {
	return &EscalationPolicy{thresholds: thresholds.Normalize()}
}

func (p *EscalationPolicy) Thresholds() Thresholds {
	return p.thresholds
}

// Decide сравнивает число нарушений за неделю с порогами.
// При 10 и более срабатывают оба флага.
func (p *EscalationPolicy) Decide(stats *models.WeeklyStats) Decision {
	return Decision{
		Notify:  stats.ThisWeekViolations >= p.thresholds.Notify,
		Suspend: stats.ThisWeekViolations >= p.thresholds.Suspend,
	}
}
