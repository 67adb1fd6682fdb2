package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		endDate     bool
		want        string
		wantPresent bool
		wantErr     bool
	}{
		{name: "present end", value: "Present", endDate: true},
		{name: "present lowercase", value: "present", endDate: true},
		{name: "current", value: "Current", endDate: true},
		{name: "now padded", value: "  now ", endDate: true},
		{name: "empty", value: "", endDate: true},
		{name: "nil", value: nil},
		{name: "month name", value: "March 2021", want: "2021-03", wantPresent: true},
		{name: "short month", value: "Sept 2020", want: "2020-09", wantPresent: true},
		{name: "month with day", value: "Mar 5, 2021", want: "2021-03", wantPresent: true},
		{name: "year then month", value: "2021 March", want: "2021-03", wantPresent: true},
		{name: "day month year", value: "5 March 2021", want: "2021-03", wantPresent: true},
		{name: "iso day", value: "2021-03-15", want: "2021-03", wantPresent: true},
		{name: "iso timestamp", value: "2021-03-15T10:00:00Z", want: "2021-03", wantPresent: true},
		{name: "single digit month", value: "2021-3", want: "2021-03", wantPresent: true},
		{name: "slash month year", value: "03/2021", want: "2021-03", wantPresent: true},
		{name: "us full", value: "3/15/2021", want: "2021-03", wantPresent: true},
		{name: "eu full", value: "15.03.2021", want: "2021-03", wantPresent: true},
		{name: "year text", value: "2019", want: "2019", wantPresent: true},
		{name: "year int", value: 2019, want: "2019", wantPresent: true},
		{name: "year float", value: float64(2019), want: "2019", wantPresent: true},
		{name: "time value", value: time.Date(2020, time.July, 4, 0, 0, 0, 0, time.UTC), want: "2020-07", wantPresent: true},
		{name: "garbage", value: "banana", wantErr: true},
		{name: "bad month", value: "2021-13", wantErr: true},
		{name: "fraction", value: 2019.5, wantErr: true},
		{name: "ongoing start date", value: "Present", wantErr: true},
		{name: "unsupported type", value: []any{"2020"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present, err := NormalizeDate("work[0].startDate", tt.value, tt.endDate)
			if tt.wantErr {
				var normErr *NormalizationError
				require.True(t, errors.As(err, &normErr), "expected NormalizationError, got %v", err)
				assert.Equal(t, "work[0].startDate", normErr.Field)
				assert.Equal(t, tt.value, normErr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, present)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCleansProfile(t *testing.T) {
	raw := map[string]any{
		"basics": map[string]any{
			"name":    "  Jane   Doe ",
			"email":   "jane@x.com",
			"label":   "   ",
			"summary": "Builds\n\tthings.",
		},
		"work": []any{
			map[string]any{
				"company":    "Acme",
				"title":      "Engineer",
				"start_date": "March 2021",
				"end_date":   "Present",
				"highlights": []any{"Shipped X", "", "  "},
				"techStack":  []string{"Go", "go", "AWS", "GO"},
			},
		},
		"projects": []any{},
		"skills": []any{
			map[string]any{"name": "Go", "keywords": []any{"Goroutines", "goroutines", "Channels"}},
		},
	}

	got, err := Normalize(raw)
	require.NoError(t, err)

	basics := got["basics"].(map[string]any)
	assert.Equal(t, "Jane Doe", basics["name"])
	assert.Equal(t, "Builds things.", basics["summary"])
	assert.NotContains(t, basics, "label")
	assert.NotContains(t, got, "projects")

	work := got["work"].([]any)[0].(map[string]any)
	assert.Equal(t, "Acme", work["name"])
	assert.Equal(t, "Engineer", work["position"])
	assert.Equal(t, "2021-03", work["startDate"])
	assert.NotContains(t, work, "endDate")
	assert.Equal(t, []any{"Shipped X"}, work["highlights"])
	assert.Equal(t, []any{"Go", "AWS"}, work["techStack"])

	skill := got["skills"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"Goroutines", "Channels"}, skill["keywords"])

	// The input is left alone.
	assert.Equal(t, "  Jane   Doe ", raw["basics"].(map[string]any)["name"])
	assert.Equal(t, "Present", raw["work"].([]any)[0].(map[string]any)["end_date"])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := map[string]any{
		"basics": map[string]any{"name": " Jane Doe", "email": "jane@x.com"},
		"education": []any{
			map[string]any{
				"school":     "MIT",
				"area":       "CS",
				"degree":     "BSc",
				"start_date": "Sep 2010",
				"endDate":    "June 2014",
				"courses":    []any{"Algorithms", "algorithms"},
			},
		},
	}

	once, err := Normalize(raw)
	require.NoError(t, err)
	twice, err := Normalize(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)

	edu := once["education"].([]any)[0].(map[string]any)
	assert.Equal(t, "MIT", edu["institution"])
	assert.Equal(t, "BSc", edu["studyType"])
	assert.Equal(t, "2010-09", edu["startDate"])
	// Courses are a plain list and keep case variants.
	assert.Equal(t, []any{"Algorithms", "algorithms"}, edu["courses"])
}

func TestNormalizeCollectsDateErrors(t *testing.T) {
	_, err := Normalize(map[string]any{
		"work": []any{
			map[string]any{"name": "Acme", "startDate": "2019"},
			map[string]any{"name": "Globex", "startDate": "banana"},
		},
		"projects": []any{
			map[string]any{"name": "X", "endDate": "someday"},
		},
	})
	require.Error(t, err)

	var normErr *NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, "work[1].startDate", normErr.Field)
	assert.Equal(t, "banana", normErr.Value)
	assert.Contains(t, err.Error(), "projects[0].endDate")
}

func TestNormalizeEntry(t *testing.T) {
	got, err := NormalizeEntry(CategoryProject, map[string]any{
		"title":      " resume-mate ",
		"tech_stack": []any{"Go", "Cobra", "go"},
		"end_date":   "now",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":      "resume-mate",
		"techStack": []any{"Go", "Cobra"},
	}, got)

	_, err = NormalizeEntry(CategoryWork, map[string]any{"startDate": "whenever"})
	var normErr *NormalizationError
	require.True(t, errors.As(err, &normErr))
	assert.Equal(t, "work.startDate", normErr.Field)
}
