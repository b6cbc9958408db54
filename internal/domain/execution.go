package domain

import "time"

// ExecutedItem is one activity as it actually happened.
type ExecutedItem struct {
	TaskID    string
	Type      TaskType
	Label     string
	SubjectID string
	ReviewID  string
	Actual    PlannedDuration
	Completed bool
}

// ExecutedDay is the immutable factual record of a studied date. It is never
// derived from, nor updated after, the plan it was executed against.
type ExecutedDay struct {
	id         string
	date       CalendarDate
	items      []ExecutedItem
	total      PlannedDuration
	recordedAt time.Time
}

// NewExecutedDay validates the items and derives the total.
func NewExecutedDay(id string, date CalendarDate, items []ExecutedItem, recordedAt time.Time) (*ExecutedDay, error) {
	if id == "" {
		return nil, Errorf(CodeDomainViolation, "execution id is required")
	}
	if date.IsZero() {
		return nil, Errorf(CodeDomainViolation, "execution date is required")
	}
	seen := make(map[string]bool, len(items))
	total := PlannedDuration{}
	for _, item := range items {
		if !ValidTaskTypes[item.Type] {
			return nil, Errorf(CodeDomainViolation, "executed item %s: unknown type %q", item.TaskID, item.Type)
		}
		if item.TaskID != "" {
			if seen[item.TaskID] {
				return nil, Errorf(CodeDomainViolation, "executed item %s recorded twice", item.TaskID)
			}
			seen[item.TaskID] = true
		}
		var err error
		total, err = total.Add(item.Actual)
		if err != nil {
			return nil, Errorf(CodeDomainViolation, "execution %s exceeds %d min in one day", date, MaxDayMinutes)
		}
	}
	copied := make([]ExecutedItem, len(items))
	copy(copied, items)
	return &ExecutedDay{id: id, date: date, items: copied, total: total, recordedAt: recordedAt}, nil
}

func (e *ExecutedDay) ID() string             { return e.id }
func (e *ExecutedDay) Date() CalendarDate     { return e.date }
func (e *ExecutedDay) Total() PlannedDuration { return e.total }
func (e *ExecutedDay) RecordedAt() time.Time  { return e.recordedAt }

// Items returns a copy of the executed items.
func (e *ExecutedDay) Items() []ExecutedItem {
	out := make([]ExecutedItem, len(e.items))
	copy(out, e.items)
	return out
}

// CompletedOfType returns the completed items of type t.
func (e *ExecutedDay) CompletedOfType(t TaskType) []ExecutedItem {
	var out []ExecutedItem
	for _, item := range e.items {
		if item.Completed && item.Type == t {
			out = append(out, item)
		}
	}
	return out
}
