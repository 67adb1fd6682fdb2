package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spigell/resume-mate/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile(t *testing.T) *profile.MasterProfile {
	t.Helper()
	p, err := profile.FromMap(map[string]any{
		"basics": map[string]any{
			"name":     "Jane Doe",
			"label":    "Staff Engineer",
			"email":    "jane@example.com",
			"summary":  "Builds <reliable> systems.",
			"location": map[string]any{"city": "Berlin", "countryCode": "DE"},
		},
		"work": []any{
			map[string]any{
				"name":       "Acme Corp",
				"position":   "Senior Engineer",
				"startDate":  "2019-03",
				"highlights": []any{"Shipped X"},
				"techStack":  []any{"Go", "Postgres"},
			},
		},
		"education": []any{
			map[string]any{"institution": "TU Berlin", "area": "CS", "studyType": "MSc", "startDate": "2012-10", "endDate": "2014-09"},
		},
		"skills": []any{
			map[string]any{"name": "Languages", "keywords": []any{"Go", "Python"}},
			map[string]any{"name": "Leadership"},
		},
	})
	require.NoError(t, err)
	return p
}

func TestHTMLBuiltinThemes(t *testing.T) {
	for _, theme := range []string{"standard", "compact"} {
		t.Run(theme, func(t *testing.T) {
			r, err := New(theme, "")
			require.NoError(t, err)
			assert.Equal(t, theme, r.Theme())

			html, err := r.HTML(sampleProfile(t))
			require.NoError(t, err)

			assert.Contains(t, html, "<h1>Jane Doe</h1>")
			assert.Contains(t, html, "Mar 2019 - Present")
			assert.Contains(t, html, "Oct 2012 - Sep 2014")
			assert.Contains(t, html, "Go, Python")
			assert.Contains(t, html, "Builds &lt;reliable&gt; systems.")
			assert.NotContains(t, html, "<reliable>")
			assert.Contains(t, html, "box-sizing: border-box")
			assert.NotContains(t, html, "ZgotmplZ")
		})
	}
}

func TestHTMLDefaultTheme(t *testing.T) {
	r, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, r.Theme())
}

func TestHTMLRejectsInvalidProfile(t *testing.T) {
	r, err := New("standard", "")
	require.NoError(t, err)

	_, err = r.HTML(&profile.MasterProfile{Basics: profile.Basics{Name: "Jane"}})

	var invalid *profile.InvalidProfile
	require.True(t, errors.As(err, &invalid))
}

func TestThemesDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "minimal"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minimal", templateFile),
		[]byte(`<p>{{ .Profile.basics.name }}</p><style>{{ .CSS }}</style>`), 0o644))

	r, err := New("minimal", dir)
	require.NoError(t, err)

	html, err := r.HTML(sampleProfile(t))
	require.NoError(t, err)
	assert.Equal(t, "<p>Jane Doe</p><style></style>", html)

	assert.Equal(t, []string{"compact", "minimal", "standard"}, Themes(dir))

	// Built-in themes remain available next to a themes dir.
	_, err = New("compact", dir)
	require.NoError(t, err)
}

func TestUnknownTheme(t *testing.T) {
	_, err := New("fancy", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compact, standard")

	_, err = New("../secrets", "")
	require.Error(t, err)
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		start, end any
		want       string
	}{
		{"2020-01", "2021-12", "Jan 2020 - Dec 2021"},
		{"2020-01", nil, "Jan 2020 - Present"},
		{"2019", "2020", "2019 - 2020"},
		{nil, nil, "Present"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, period(tt.start, tt.end))
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a, b", join([]any{"a", "", "b"}, ", "))
	assert.Equal(t, "a|b", join([]string{"a", "b"}, "|"))
	assert.Equal(t, "", join(nil, ", "))
}

func TestPrintParams(t *testing.T) {
	params := printParams()

	assert.True(t, params.PrintBackground)
	assert.InDelta(t, 8.27, params.PaperWidth, 0.001)
	assert.InDelta(t, 11.69, params.PaperHeight, 0.001)
	for _, margin := range []float64{params.MarginTop, params.MarginBottom, params.MarginLeft, params.MarginRight} {
		assert.InDelta(t, 0.3937, margin, 0.0001)
	}
}
