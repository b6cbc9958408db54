package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileSchema is the top-level structure of a profile import file. The
// same shape is accepted as YAML or JSON.
type ProfileSchema struct {
	SubjectsPerDay int                `json:"subjects_per_day" yaml:"subjects_per_day" validate:"min=0,max=20"`
	Weekdays       []WeekdayImport    `json:"weekdays" yaml:"weekdays" validate:"max=7,dive"`
	Extras         *ExtrasImport      `json:"extras,omitempty" yaml:"extras,omitempty"`
	AutoReview     *AutoReviewImport  `json:"auto_review,omitempty" yaml:"auto_review,omitempty"`
	RestPeriods    []RestPeriodImport `json:"rest_periods,omitempty" yaml:"rest_periods,omitempty" validate:"dive"`
	Subjects       []SubjectImport    `json:"subjects,omitempty" yaml:"subjects,omitempty" validate:"dive"`
}

// WeekdayImport is the budget of one weekday, named in English.
type WeekdayImport struct {
	Weekday      string `json:"weekday" yaml:"weekday" validate:"required"`
	DailyMin     int    `json:"daily_min" yaml:"daily_min" validate:"min=0,max=1440"`
	Theory       bool   `json:"theory" yaml:"theory"`
	Questions    bool   `json:"questions" yaml:"questions"`
	Informatives bool   `json:"informatives" yaml:"informatives"`
	LeiSeca      bool   `json:"lei_seca" yaml:"lei_seca"`
}

// ExtrasImport holds the fixed length of each extras activity.
type ExtrasImport struct {
	QuestionsMin    int `json:"questions_min" yaml:"questions_min" validate:"min=0,max=1440"`
	InformativesMin int `json:"informatives_min" yaml:"informatives_min" validate:"min=0,max=1440"`
	LeiSecaMin      int `json:"lei_seca_min" yaml:"lei_seca_min" validate:"min=0,max=1440"`
}

// AutoReviewImport configures review scheduling after theory.
type AutoReviewImport struct {
	Enabled          bool `json:"enabled" yaml:"enabled"`
	FrequencyDays    int  `json:"frequency_days" yaml:"frequency_days" validate:"min=0,max=365"`
	DurationMin      int  `json:"duration_min" yaml:"duration_min" validate:"min=0,max=1440"`
	ReserveTimeBlock bool `json:"reserve_time_block" yaml:"reserve_time_block"`
	ReservedMin      int  `json:"reserved_min" yaml:"reserved_min" validate:"min=0,max=1440"`
}

// RestPeriodImport is an inclusive span of dates without study.
type RestPeriodImport struct {
	From  string `json:"from" yaml:"from" validate:"required,datetime=2006-01-02"`
	To    string `json:"to" yaml:"to" validate:"required,datetime=2006-01-02"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" validate:"max=80"`
}

// SubjectImport declares a theory source. Existing subjects with the same
// name are updated instead of duplicated.
type SubjectImport struct {
	Name      string `json:"name" yaml:"name" validate:"required,max=120"`
	TheoryMin int    `json:"theory_min" yaml:"theory_min" validate:"min=0"`
	Inactive  bool   `json:"inactive,omitempty" yaml:"inactive,omitempty"`
}

// LoadProfileSchema reads a profile import file. Files ending in .json are
// decoded as JSON, everything else as YAML. Unknown fields are rejected.
func LoadProfileSchema(path string) (*ProfileSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

func ParseJSON(data []byte) (*ProfileSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema ProfileSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

func ParseYAML(data []byte) (*ProfileSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var schema ProfileSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
