package domain

import "time"

// Subject is a theory source. RemainingTheoryMin is the material left to
// study; a subject with none left is not eligible for theory.
type Subject struct {
	ID                 string
	Name               string
	Position           int
	RemainingTheoryMin int
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Eligible reports whether the subject can receive theory time.
func (s *Subject) Eligible() bool {
	return s.Active && s.RemainingTheoryMin > 0
}
