package domain

import "fmt"

// MaxDayMinutes is the largest duration a single day can hold.
const MaxDayMinutes = 1440

// PlannedDuration is a whole number of minutes in 0..MaxDayMinutes.
type PlannedDuration struct {
	min int
}

// NewPlannedDuration validates the minute count.
func NewPlannedDuration(minutes int) (PlannedDuration, error) {
	if minutes < 0 || minutes > MaxDayMinutes {
		return PlannedDuration{}, Errorf(CodeDomainViolation, "duration %d min out of range 0..%d", minutes, MaxDayMinutes)
	}
	return PlannedDuration{min: minutes}, nil
}

// Minutes is a shorthand for constructing durations from constants the
// caller knows are in range. It panics otherwise.
func Minutes(m int) PlannedDuration {
	d, err := NewPlannedDuration(m)
	if err != nil {
		panic(err)
	}
	return d
}

func (d PlannedDuration) Minutes() int { return d.min }
func (d PlannedDuration) IsZero() bool { return d.min == 0 }

// Add fails instead of exceeding MaxDayMinutes.
func (d PlannedDuration) Add(o PlannedDuration) (PlannedDuration, error) {
	return NewPlannedDuration(d.min + o.min)
}

// Sub fails instead of going below zero.
func (d PlannedDuration) Sub(o PlannedDuration) (PlannedDuration, error) {
	if o.min > d.min {
		return PlannedDuration{}, Errorf(CodeDomainViolation, "cannot subtract %d min from %d min", o.min, d.min)
	}
	return PlannedDuration{min: d.min - o.min}, nil
}

// Fits reports whether o can be subtracted from d.
func (d PlannedDuration) Fits(o PlannedDuration) bool {
	return o.min <= d.min
}

func (d PlannedDuration) String() string {
	return fmt.Sprintf("%dm", d.min)
}
