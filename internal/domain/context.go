package domain

import "strconv"

// PlanningContext is the read-only input of one composition run. It is
// loaded once per (user, date) and passed explicitly; the composer reads
// nothing else.
type PlanningContext struct {
	UserID              string
	Date                CalendarDate
	Today               CalendarDate
	Profile             StudyProfile
	Subjects            []Subject
	DueReviewTasks      []PlannedTask
	HasExecutionForDate bool
}

// SnapshotID identifies the profile revision a plan was derived from.
func (c *PlanningContext) SnapshotID() string {
	return ProfileSnapshotID(c.Profile)
}

// ProfileSnapshotID formats the normative snapshot identifier of p.
func ProfileSnapshotID(p StudyProfile) string {
	return "profile:" + p.UserID + ":r" + strconv.Itoa(p.Revision)
}
