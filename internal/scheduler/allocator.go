package scheduler

import (
	"github.com/alexanderramin/pauta/internal/domain"
)

// TheoryTaskID is the stable id of a subject's theory block on date.
func TheoryTaskID(date domain.CalendarDate, subjectID string) string {
	return "theory-" + date.String() + "-" + subjectID
}

// PickSubjects returns up to perDay eligible subjects for date. Subjects are
// taken in position order starting at an offset derived from the date
// ordinal, so consecutive days rotate through the list deterministically.
func PickSubjects(date domain.CalendarDate, subjects []domain.Subject, perDay int) []domain.Subject {
	var eligible []domain.Subject
	for _, s := range subjects {
		if s.Eligible() {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) == 0 || perDay <= 0 {
		return nil
	}
	SortSubjects(eligible)

	n := len(eligible)
	k := perDay
	if k > n {
		k = n
	}
	start := date.Ordinal() % n
	picked := make([]domain.Subject, 0, k)
	for i := 0; i < k; i++ {
		picked = append(picked, eligible[(start+i)%n])
	}
	return picked
}

// AllocateTheory fills the remaining capacity with theory for the picked
// subjects. Capacity is split evenly, each share is capped by the subject's
// remaining material, and whatever a capped subject could not take is
// offered to the others in pick order. Zero remaining capacity yields no
// items and is not an error.
func AllocateTheory(date domain.CalendarDate, subjects []domain.Subject, perDay int, remaining domain.PlannedDuration) ([]domain.DailyPlanItem, domain.PlannedDuration, error) {
	if remaining.IsZero() {
		return nil, remaining, nil
	}
	picked := PickSubjects(date, subjects, perDay)
	if len(picked) == 0 {
		return nil, remaining, nil
	}

	shares := splitCapacity(remaining.Minutes(), picked)

	var items []domain.DailyPlanItem
	for i, s := range picked {
		if shares[i] == 0 {
			continue
		}
		d, err := domain.NewPlannedDuration(shares[i])
		if err != nil {
			return nil, remaining, err
		}
		task, err := domain.NewPlannedTask(TheoryTaskID(date, s.ID), domain.TaskTheory, d, s.Name, nil)
		if err != nil {
			return nil, remaining, err
		}
		task.SubjectID = s.ID
		item, err := domain.NewDailyPlanItem(task, i)
		if err != nil {
			return nil, remaining, err
		}
		remaining, err = remaining.Sub(d)
		if err != nil {
			return nil, remaining, err
		}
		items = append(items, item)
	}
	return items, remaining, nil
}

func splitCapacity(available int, picked []domain.Subject) []int {
	k := len(picked)
	shares := make([]int, k)
	base, extra := available/k, available%k
	left := 0
	for i, s := range picked {
		want := base
		if i < extra {
			want++
		}
		shares[i] = clamp(want, 0, s.RemainingTheoryMin)
		left += want - shares[i]
	}

	// Second pass: offer leftover to subjects with spare material
	for i, s := range picked {
		if left == 0 {
			break
		}
		spare := s.RemainingTheoryMin - shares[i]
		if spare <= 0 {
			continue
		}
		give := clamp(spare, 0, left)
		shares[i] += give
		left -= give
	}
	return shares
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
