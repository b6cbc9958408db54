package importer

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalProfile(t *testing.T) {
	out, err := Convert(validMinimalSchema(), "ana")
	require.NoError(t, err)

	p := out.Profile
	assert.Equal(t, "ana", p.UserID)
	assert.Equal(t, 1, p.SubjectsPerDay)
	require.Len(t, p.WeekdayRules, 1)
	assert.Equal(t, domain.WeekdayRule{Weekday: 1, DailyMin: 120, TheoryEnabled: true}, p.WeekdayRules[1])
	assert.False(t, p.AutoReview.Enabled)
	assert.Empty(t, p.RestPeriods)

	require.Len(t, out.Subjects, 1)
	assert.Equal(t, ConvertedSubject{Name: "Constitutional Law", TheoryMin: 600, Active: true}, out.Subjects[0])
}

func TestConvert_FullProfile(t *testing.T) {
	schema, err := LoadProfileSchema(filepath.Join("testdata", "profile.yaml"))
	require.NoError(t, err)

	out, err := Convert(schema, "ana")
	require.NoError(t, err)

	p := out.Profile
	assert.Equal(t, 2, p.SubjectsPerDay)
	assert.Equal(t, 270, p.WeeklyBudgetMin())
	assert.True(t, p.WeekdayRules[1].QuestionsEnabled)
	assert.True(t, p.WeekdayRules[6].LeiSecaEnabled)
	assert.False(t, p.WeekdayRules[6].TheoryEnabled)
	assert.Equal(t, domain.ExtrasDurations{QuestionsMin: 30, InformativesMin: 20, LeiSecaMin: 15}, p.Extras)
	assert.Equal(t, domain.AutoReviewPolicy{Enabled: true, FrequencyDays: 7, DurationMin: 30}, p.AutoReview)

	require.Len(t, p.RestPeriods, 1)
	rp := p.RestPeriods[0]
	assert.NotEmpty(t, rp.ID)
	assert.Equal(t, "Christmas", rp.Label)
	assert.Equal(t, 3, rp.Range.Days())
	assert.True(t, rp.Range.Contains(domain.MustParseDate("2026-12-25")))

	require.Len(t, out.Subjects, 2)
	assert.Equal(t, "Administrative Law", out.Subjects[1].Name)
}

func TestConvert_ZeroSubjectsPerDayDefaultsToOne(t *testing.T) {
	schema := validMinimalSchema()
	schema.SubjectsPerDay = 0

	out, err := Convert(schema, "ana")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Profile.SubjectsPerDay)
}

func TestConvert_ProfileValidationStillApplies(t *testing.T) {
	schema := validMinimalSchema()
	schema.AutoReview = &AutoReviewImport{Enabled: true}

	_, err := Convert(schema, "ana")
	require.Error(t, err)
	assert.Equal(t, domain.CodeDomainViolation, domain.CodeOf(err))
}

func TestConvert_InactiveSubject(t *testing.T) {
	schema, err := LoadProfileSchema(filepath.Join("testdata", "profile.json"))
	require.NoError(t, err)

	out, err := Convert(schema, "ana")
	require.NoError(t, err)
	require.Len(t, out.Subjects, 1)
	assert.False(t, out.Subjects[0].Active)
	assert.Equal(t, 45, out.Profile.WeekdayRules[2].DailyMin)
}
