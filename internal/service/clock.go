package service

import (
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
)

// Clock supplies "today" to the use cases. The composer never reads a
// platform clock itself.
type Clock interface {
	Today() domain.CalendarDate
	Now() time.Time
}

// SystemClock reads the wall clock in Location (local time when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time { return time.Now().UTC() }

func (c SystemClock) Today() domain.CalendarDate {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return dateOf(time.Now().In(loc))
}

// FixedClock always reports Date as today.
type FixedClock struct {
	Date domain.CalendarDate
	At   time.Time
}

func (c FixedClock) Today() domain.CalendarDate { return c.Date }

func (c FixedClock) Now() time.Time {
	if c.At.IsZero() {
		return time.Now().UTC()
	}
	return c.At
}

func dateOf(t time.Time) domain.CalendarDate {
	y, m, d := t.Date()
	date, err := domain.NewCalendarDate(y, int(m), d)
	if err != nil {
		panic(err)
	}
	return date
}
