package domain

// TaskType is the closed set of study activity kinds.
type TaskType string

const (
	TaskTheory       TaskType = "THEORY"
	TaskReview       TaskType = "REVIEW"
	TaskQuestions    TaskType = "QUESTIONS"
	TaskInformatives TaskType = "INFORMATIVES"
	TaskLeiSeca      TaskType = "LEI_SECA"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[TaskType]bool{
	TaskTheory: true, TaskReview: true, TaskQuestions: true,
	TaskInformatives: true, TaskLeiSeca: true,
}

// ExtrasTypes lists the extras activities in their placement order.
var ExtrasTypes = []TaskType{TaskQuestions, TaskInformatives, TaskLeiSeca}

// Layer is the normative precedence class of a plan item.
type Layer string

const (
	LayerReview Layer = "REVIEW"
	LayerExtras Layer = "EXTRAS"
	LayerTheory Layer = "THEORY"
)

// Rank orders layers: reviews outrank extras outrank theory. Unknown layers
// rank last.
func (l Layer) Rank() int {
	switch l {
	case LayerReview:
		return 1
	case LayerExtras:
		return 2
	case LayerTheory:
		return 3
	}
	return 99
}

// LayerFor returns the only layer a task of type t may occupy.
func LayerFor(t TaskType) (Layer, bool) {
	switch t {
	case TaskReview:
		return LayerReview, true
	case TaskTheory:
		return LayerTheory, true
	case TaskQuestions, TaskInformatives, TaskLeiSeca:
		return LayerExtras, true
	}
	return "", false
}

type PlanStatus string

const (
	PlanPlanned  PlanStatus = "PLANNED"
	PlanRestDay  PlanStatus = "REST_DAY"
	PlanExecuted PlanStatus = "EXECUTED"
)

// ReviewStatus is the lifecycle of a review ledger entry. MISSED and
// EXECUTED are terminal.
type ReviewStatus string

const (
	ReviewScheduled ReviewStatus = "SCHEDULED"
	ReviewExecuted  ReviewStatus = "EXECUTED"
	ReviewMissed    ReviewStatus = "MISSED"
)
