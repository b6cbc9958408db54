package domain

import "time"

// ReviewEntry is one review obligation in the ledger. An entry is created
// exactly once per theory completion; MISSED and EXECUTED are terminal.
type ReviewEntry struct {
	ID            string
	SubjectID     string
	SubjectName   string
	OriginDate    CalendarDate
	ScheduledDate CalendarDate
	Duration      PlannedDuration
	Status        ReviewStatus
	ExecutedOn    CalendarDate
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDueOn reports whether the entry is a pending obligation for d.
func (r *ReviewEntry) IsDueOn(d CalendarDate) bool {
	return r.Status == ReviewScheduled && r.ScheduledDate.Equal(d)
}

// IsLapsed reports whether a still-scheduled entry's date has passed.
func (r *ReviewEntry) IsLapsed(today CalendarDate) bool {
	return r.Status == ReviewScheduled && r.ScheduledDate.Before(today)
}

// MarkExecuted records the review as done. Only a scheduled entry on its
// own date can be executed.
func (r *ReviewEntry) MarkExecuted(on CalendarDate, now time.Time) error {
	if r.Status != ReviewScheduled {
		return Errorf(CodeDomainViolation, "review %s is %s and cannot be executed", r.ID, r.Status)
	}
	if !on.Equal(r.ScheduledDate) {
		return Errorf(CodeDomainViolation, "review %s is due %s, not %s", r.ID, r.ScheduledDate, on)
	}
	r.Status = ReviewExecuted
	r.ExecutedOn = on
	r.UpdatedAt = now
	return nil
}

// MarkMissed closes a scheduled entry for good.
func (r *ReviewEntry) MarkMissed(now time.Time) error {
	if r.Status != ReviewScheduled {
		return Errorf(CodeDomainViolation, "review %s is %s and cannot be missed", r.ID, r.Status)
	}
	r.Status = ReviewMissed
	r.UpdatedAt = now
	return nil
}

// Task converts the entry into the REVIEW task that allocates it.
func (r *ReviewEntry) Task() (PlannedTask, error) {
	label := "Review"
	if r.SubjectName != "" {
		label = "Review: " + r.SubjectName
	}
	return NewPlannedTask(r.ID, TaskReview, r.Duration, label, &ReviewLink{
		ReviewID:   r.ID,
		SubjectID:  r.SubjectID,
		OriginDate: r.OriginDate,
		DueDate:    r.ScheduledDate,
	})
}
