package scheduler

import (
	"sort"

	"github.com/alexanderramin/pauta/internal/domain"
)

// SortReviewTasks sorts due reviews by the deterministic canonical rules:
// 1. Origin date: earliest first
// 2. Due date: earliest first
// 3. Task ID: lexical ascending
func SortReviewTasks(tasks []domain.PlannedTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		la, lb := a.ReviewLink, b.ReviewLink
		if la != nil && lb != nil {
			if c := la.OriginDate.Compare(lb.OriginDate); c != 0 {
				return c < 0
			}
			if c := la.DueDate.Compare(lb.DueDate); c != 0 {
				return c < 0
			}
		}
		return a.ID < b.ID
	})
}

// SortSubjects orders subjects by position, then ID.
func SortSubjects(subjects []domain.Subject) {
	sort.SliceStable(subjects, func(i, j int) bool {
		if subjects[i].Position != subjects[j].Position {
			return subjects[i].Position < subjects[j].Position
		}
		return subjects[i].ID < subjects[j].ID
	})
}
