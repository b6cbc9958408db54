// Package ledger holds the review ledger discipline: when a review is
// scheduled, when it lapses, and which entries an allocation run may see.
// A MISSED entry is terminal here regardless of what storage returns.
package ledger

import (
	"sort"
	"time"

	"github.com/alexanderramin/pauta/internal/domain"
)

// Schedule builds the one review entry spawned by completing theory for
// subject on origin. It lands exactly FrequencyDays after origin.
func Schedule(id string, subject domain.Subject, origin domain.CalendarDate, policy domain.AutoReviewPolicy, now time.Time) (*domain.ReviewEntry, error) {
	if !policy.Enabled {
		return nil, domain.Errorf(domain.CodeDomainViolation, "auto review is disabled")
	}
	if policy.FrequencyDays < 1 {
		return nil, domain.Errorf(domain.CodeDomainViolation, "review frequency must be >= 1 day, got %d", policy.FrequencyDays)
	}
	dur, err := domain.NewPlannedDuration(policy.DurationMin)
	if err != nil {
		return nil, err
	}
	due, err := origin.AddDays(policy.FrequencyDays)
	if err != nil {
		return nil, domain.Errorf(domain.CodeDomainViolation, "review due date: %v", err)
	}
	return &domain.ReviewEntry{
		ID:            id,
		SubjectID:     subject.ID,
		SubjectName:   subject.Name,
		OriginDate:    origin,
		ScheduledDate: due,
		Duration:      dur,
		Status:        domain.ReviewScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Sweep marks every lapsed entry MISSED and returns the ones it changed, so
// the caller can persist exactly those transitions.
func Sweep(entries []*domain.ReviewEntry, today domain.CalendarDate, now time.Time) []*domain.ReviewEntry {
	var changed []*domain.ReviewEntry
	for _, e := range entries {
		if !e.IsLapsed(today) {
			continue
		}
		if err := e.MarkMissed(now); err == nil {
			changed = append(changed, e)
		}
	}
	return changed
}

// DueOn returns the entries an allocation run for date may place. Lapsed
// and terminal entries are excluded even when not yet swept.
func DueOn(entries []*domain.ReviewEntry, date, today domain.CalendarDate) []*domain.ReviewEntry {
	var out []*domain.ReviewEntry
	for _, e := range entries {
		if e.IsDueOn(date) && !e.IsLapsed(today) {
			out = append(out, e)
		}
	}
	SortEntries(out)
	return out
}

// Pending returns the still-offerable entries scheduled inside rng.
func Pending(entries []*domain.ReviewEntry, rng domain.DateRange, today domain.CalendarDate) []*domain.ReviewEntry {
	var out []*domain.ReviewEntry
	for _, e := range entries {
		if !rng.Contains(e.ScheduledDate) {
			continue
		}
		if e.Status == domain.ReviewScheduled && !e.IsLapsed(today) {
			out = append(out, e)
		}
	}
	SortEntries(out)
	return out
}

// Tasks converts entries into REVIEW tasks, preserving order.
func Tasks(entries []*domain.ReviewEntry) ([]domain.PlannedTask, error) {
	tasks := make([]domain.PlannedTask, 0, len(entries))
	for _, e := range entries {
		task, err := e.Task()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SortEntries orders entries by scheduled date, origin date, then id.
func SortEntries(entries []*domain.ReviewEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if c := a.ScheduledDate.Compare(b.ScheduledDate); c != 0 {
			return c < 0
		}
		if c := a.OriginDate.Compare(b.OriginDate); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
