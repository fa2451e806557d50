// Package weekkey вычисляет ключ ISO-недели, по которому группируются нарушения.
package weekkey

import (
	"fmt"
	"time"
)

// For возвращает ключ недели вида "2026-W42" для момента t (в UTC).
func For(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Current возвращает ключ текущей недели по переданным часам.
func Current(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return For(now())
}
