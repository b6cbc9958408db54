package domain

// ReviewLink ties a review task to the theory completion that spawned it.
type ReviewLink struct {
	ReviewID   string
	SubjectID  string
	OriginDate CalendarDate
	DueDate    CalendarDate
}

// PlannedTask is one unit of planned study activity.
type PlannedTask struct {
	ID         string
	Type       TaskType
	Duration   PlannedDuration
	Label      string
	SubjectID  string
	ReviewLink *ReviewLink
}

// NewPlannedTask builds a task and checks it with Validate.
func NewPlannedTask(id string, t TaskType, d PlannedDuration, label string, link *ReviewLink) (PlannedTask, error) {
	task := PlannedTask{ID: id, Type: t, Duration: d, Label: label, ReviewLink: link}
	if link != nil {
		task.SubjectID = link.SubjectID
	}
	if err := task.Validate(); err != nil {
		return PlannedTask{}, err
	}
	return task, nil
}

// Validate enforces the review-link rule: REVIEW tasks carry a link whose
// due date follows its origin, every other type carries none.
func (t PlannedTask) Validate() error {
	if t.ID == "" {
		return Errorf(CodeDomainViolation, "task id is required")
	}
	if !ValidTaskTypes[t.Type] {
		return Errorf(CodeDomainViolation, "task %s: unknown type %q", t.ID, t.Type)
	}
	if t.Type == TaskReview {
		if t.ReviewLink == nil {
			return Errorf(CodeDomainViolation, "review task %s has no review link", t.ID)
		}
		if t.ReviewLink.OriginDate.IsZero() || t.ReviewLink.DueDate.IsZero() {
			return Errorf(CodeDomainViolation, "review task %s: link dates are required", t.ID)
		}
		if !t.ReviewLink.DueDate.After(t.ReviewLink.OriginDate) {
			return Errorf(CodeDomainViolation, "review task %s: due %s is not after origin %s",
				t.ID, t.ReviewLink.DueDate, t.ReviewLink.OriginDate)
		}
		return nil
	}
	if t.ReviewLink != nil {
		return Errorf(CodeDomainViolation, "%s task %s must not carry a review link", t.Type, t.ID)
	}
	return nil
}

// DailyPlanItem places a task in a normative layer at a given order.
type DailyPlanItem struct {
	Task  PlannedTask
	Layer Layer
	Order int
}

// NewDailyPlanItem places task in the layer its type belongs to.
func NewDailyPlanItem(task PlannedTask, order int) (DailyPlanItem, error) {
	layer, ok := LayerFor(task.Type)
	if !ok {
		return DailyPlanItem{}, Errorf(CodeDomainViolation, "task %s: no layer for type %q", task.ID, task.Type)
	}
	item := DailyPlanItem{Task: task, Layer: layer, Order: order}
	if err := item.Validate(); err != nil {
		return DailyPlanItem{}, err
	}
	return item, nil
}

// Validate checks the task and the layer/type correspondence.
func (i DailyPlanItem) Validate() error {
	if err := i.Task.Validate(); err != nil {
		return err
	}
	want, _ := LayerFor(i.Task.Type)
	if i.Layer != want {
		return Errorf(CodeDomainViolation, "task %s of type %s cannot sit in layer %s", i.Task.ID, i.Task.Type, i.Layer)
	}
	return nil
}
