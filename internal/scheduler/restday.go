package scheduler

import "github.com/alexanderramin/pauta/internal/domain"

// IsRestDay reports whether date has no study capacity: either its weekday
// rule grants zero minutes or it falls inside a rest period.
func IsRestDay(date domain.CalendarDate, rule domain.WeekdayRule, rest []domain.RestPeriod) bool {
	if rule.DailyMin <= 0 {
		return true
	}
	for _, rp := range rest {
		if rp.Range.Contains(date) {
			return true
		}
	}
	return false
}
