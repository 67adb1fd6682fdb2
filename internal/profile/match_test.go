package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherWorkEntries(t *testing.T) {
	m := NewMatcher(DefaultMatchThreshold)
	acme := WorkExperience{Name: "Acme Corp", Position: "Senior Engineer", StartDate: "2019-01"}

	tests := []struct {
		name      string
		candidate WorkExperience
		want      bool
	}{
		{name: "legal suffix and case", candidate: WorkExperience{Name: "ACME Corporation", Position: "Senior Engineer"}, want: true},
		{name: "punctuation", candidate: WorkExperience{Name: "Acme, Inc.", Position: "Senior  Engineer"}, want: true},
		{name: "typo in position", candidate: WorkExperience{Name: "Acme", Position: "Senior Enginer"}, want: true},
		{name: "different position", candidate: WorkExperience{Name: "Acme Corp", Position: "Intern"}},
		{name: "different company", candidate: WorkExperience{Name: "Globex", Position: "Senior Engineer"}},
		{name: "similar looking company", candidate: WorkExperience{Name: "Acne Labs", Position: "Senior Engineer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := m.Score(tt.candidate.Identity(), acme.Identity())
			assert.Equal(t, tt.want, ok, "score %.3f", score)
		})
	}
}

func TestMatcherKeepsSymbolsApart(t *testing.T) {
	m := NewMatcher(DefaultMatchThreshold)

	tests := []struct {
		name string
		a, b WorkExperience
		want bool
	}{
		{
			name: "punctuation only positions",
			a:    WorkExperience{Name: "Acme", Position: "-"},
			b:    WorkExperience{Name: "Acme", Position: "..."},
		},
		{
			name: "same punctuation only position",
			a:    WorkExperience{Name: "Acme", Position: "-"},
			b:    WorkExperience{Name: "ACME", Position: "-"},
			want: true,
		},
		{
			name: "c++ and c#",
			a:    WorkExperience{Name: "Acme", Position: "C++ Developer"},
			b:    WorkExperience{Name: "Acme", Position: "C# Developer"},
		},
		{
			name: "c++ spelled differently",
			a:    WorkExperience{Name: "Acme", Position: "C++ Developer"},
			b:    WorkExperience{Name: "Acme", Position: "c++ developer"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := m.Score(tt.a.Identity(), tt.b.Identity())
			assert.Equal(t, tt.want, ok, "score %.3f", score)
		})
	}
}

func TestMatcherEducationDiacritics(t *testing.T) {
	m := NewMatcher(0)
	a := Education{Institution: "Universität Wien", Area: "Computer Science", StudyType: "MSc"}
	b := Education{Institution: "universitat wien", Area: "Computer-Science", StudyType: "M.Sc."}

	score, ok := m.Score(a.Identity(), b.Identity())
	assert.True(t, ok)
	assert.InDelta(t, 1.0, score, 1e-9)

	c := Education{Institution: "Universität Wien", Area: "Physics", StudyType: "MSc"}
	_, ok = m.Score(a.Identity(), c.Identity())
	assert.False(t, ok)
}

func TestMatcherSkillsAreExact(t *testing.T) {
	m := NewMatcher(DefaultMatchThreshold)

	_, ok := m.Score(Skill{Name: "Go"}.Identity(), Skill{Name: " go "}.Identity())
	assert.True(t, ok)

	_, ok = m.Score(Skill{Name: "Go"}.Identity(), Skill{Name: "Golang"}.Identity())
	assert.False(t, ok)

	_, ok = m.Score(Skill{Name: "Java"}.Identity(), Skill{Name: "JavaScript"}.Identity())
	assert.False(t, ok)
}

func TestMatcherThreshold(t *testing.T) {
	a := Project{Name: "resume mate"}.Identity()
	b := Project{Name: "resume mate cli"}.Identity()

	score, _ := NewMatcher(0).Score(a, b)
	require.InDelta(t, 2*10.0/23.0, score, 1e-9)

	_, ok := NewMatcher(0.9).Score(a, b)
	assert.False(t, ok)
	_, ok = NewMatcher(DefaultMatchThreshold).Score(a, b)
	assert.True(t, ok)
	// The threshold itself counts as a match.
	_, ok = NewMatcher(score).Score(a, b)
	assert.True(t, ok)

	// Out of range thresholds fall back to the default.
	assert.Equal(t, DefaultMatchThreshold, NewMatcher(1.5).Threshold)
	assert.Equal(t, DefaultMatchThreshold, NewMatcher(-1).Threshold)
}

func TestFind(t *testing.T) {
	m := NewMatcher(DefaultMatchThreshold)
	existing := []WorkExperience{
		{Name: "Globex", Position: "Engineer"},
		{Name: "Acme", Position: "Engineer"},
		{Name: "ACME Inc", Position: "Engineer"},
		{Name: "Acme", Position: "Engineers"},
	}

	idx, ok := Find(m, WorkExperience{Name: "Acme Corp", Position: "Engineer"}, existing)
	require.True(t, ok)
	// Entries 1 and 2 both score 1.0; the earliest wins.
	assert.Equal(t, 1, idx)

	idx, ok = Find(m, WorkExperience{Name: "Initech", Position: "Engineer"}, existing)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	_, ok = Find(m, WorkExperience{Name: "Acme", Position: "Engineer"}, nil)
	assert.False(t, ok)
}

func TestFindPrefersBestScore(t *testing.T) {
	m := NewMatcher(0.8)
	existing := []Project{
		{Name: "Payments Gateway v"},
		{Name: "Payments Gateway"},
	}

	idx, ok := Find(m, Project{Name: "payments-gateway"}, existing)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("acme", "acme"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.InDelta(t, 2*8.0/23.0, Similarity("acmecorp", "acmecorporation"), 1e-9)
	assert.InDelta(t, Similarity("kitten", "sitting"), Similarity("sitting", "kitten"), 1e-9)
}

func TestMatchKeys(t *testing.T) {
	assert.Equal(t, "acme", organizationKey("ACME Corporation"))
	assert.Equal(t, "acme", organizationKey("Acme, Inc."))
	assert.Equal(t, "acme", organizationKey("Acme Co. Ltd"))
	// A name made only of a suffix keeps it.
	assert.Equal(t, "company", organizationKey("Company"))
	assert.Equal(t, "seniorengineer", matchKey("  Senior   ENGINEER "))
	assert.Equal(t, "munchen", matchKey("München"))
	assert.Equal(t, "cplusplusdeveloper", matchKey("C++ Developer"))
	assert.Equal(t, "csharp", matchKey("C#"))
	assert.Equal(t, "...", matchKey(" ... "))
	assert.Equal(t, "&", organizationKey("&"))
}
