package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	p := Scaffold()

	got, err := Append(p, CategoryWork, map[string]any{
		"company":    "Globex",
		"position":   "Staff Engineer",
		"start_date": "June 2023",
		"end_date":   "current",
	})
	require.NoError(t, err)

	require.Len(t, got.Work, 2)
	assert.Equal(t, "Tech Corp", got.Work[0].Name)
	assert.Equal(t, WorkExperience{Name: "Globex", Position: "Staff Engineer", StartDate: "2023-06"}, got.Work[1])
	assert.Len(t, p.Work, 1, "input profile is left alone")
}

func TestAppendDoesNotDeduplicate(t *testing.T) {
	p := Scaffold()

	got, err := Append(p, CategoryEducation, map[string]any{
		"institution": "University of Tech",
		"area":        "Computer Science",
		"studyType":   "Bachelor",
		"startDate":   "2015-09",
	})
	require.NoError(t, err)
	assert.Len(t, got.Education, 2)
}

func TestAppendEachCategory(t *testing.T) {
	p := Scaffold()

	var err error
	p, err = Append(p, CategoryProject, map[string]any{"title": "resume-mate", "tech_stack": []any{"Go", "go"}})
	require.NoError(t, err)
	p, err = Append(p, CategorySkill, map[string]any{"name": "Go", "keywords": []any{"cobra", "Cobra"}})
	require.NoError(t, err)

	assert.Equal(t, []Project{{Name: "resume-mate", TechStack: []string{"Go"}}}, p.Projects)
	assert.Equal(t, []Skill{{Name: "Go", Keywords: []string{"cobra"}}}, p.Skills)
}

func TestAppendRejectsInvalidEntry(t *testing.T) {
	p := Scaffold()

	_, err := Append(p, CategoryWork, map[string]any{"name": "Globex", "startDate": "2023"})
	var violation *SchemaViolation
	require.True(t, errors.As(err, &violation))
	assert.True(t, violation.Has("position", "required"))

	_, err = Append(p, CategoryWork, map[string]any{"name": "Globex", "position": "Eng", "startDate": "later"})
	var normErr *NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, "work.startDate", normErr.Field)
}

func TestAppendRejectsInvalidProfile(t *testing.T) {
	p := Scaffold()
	p.Basics.Email = "nope"

	_, err := Append(p, CategorySkill, map[string]any{"name": "Go"})
	var invalid *InvalidProfile
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "existing", invalid.Role)
}

func TestAppendEntryNilProfile(t *testing.T) {
	_, err := AppendEntry(nil, Skill{Name: "Go"})
	assert.Error(t, err)
}
