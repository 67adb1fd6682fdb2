package profile

import (
	"strings"
	"unicode/utf8"
)

// CategoryReport counts what happened to the entries of one category during a merge.
type CategoryReport struct {
	// Matched candidate entries folded into an existing entry.
	Matched int
	// Added candidate entries appended as new.
	Added int
	// Collapsed duplicates that were already present in the existing profile.
	Collapsed int
}

// MergeReport describes a merge per category.
type MergeReport map[Category]CategoryReport

type mergeConfig struct {
	matcher Matcher
}

// MergeOption customizes Merge.
type MergeOption func(*mergeConfig)

// WithMatcher replaces the default matcher.
func WithMatcher(m Matcher) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.matcher = m
	}
}

// Merge combines an existing profile with a candidate extracted from new source
// material. The result holds every highlight, course, technology and keyword of both
// inputs. Matched entries keep their position, new entries are appended in candidate
// order. Neither input is modified.
//
// Merge fails only when one of the inputs does not validate; it never fails on
// ambiguous data and keeps the existing value instead.
func Merge(existing, candidate *MasterProfile, opts ...MergeOption) (*MasterProfile, MergeReport, error) {
	cfg := mergeConfig{matcher: NewMatcher(DefaultMatchThreshold)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := Validate(existing); err != nil {
		return nil, nil, &InvalidProfile{Role: "existing", Cause: err}
	}
	if err := Validate(candidate); err != nil {
		return nil, nil, &InvalidProfile{Role: "candidate", Cause: err}
	}

	existing, candidate = existing.Clone(), candidate.Clone()
	report := MergeReport{}
	out := &MasterProfile{}

	out.Basics = mergeBasics(cfg.matcher, existing.Basics, candidate.Basics)

	var r CategoryReport
	out.Work, r = mergeEntries(cfg.matcher, existing.Work, candidate.Work, WorkExperience.reconcile)
	report[CategoryWork] = r
	out.Projects, r = mergeEntries(cfg.matcher, existing.Projects, candidate.Projects, Project.reconcile)
	report[CategoryProject] = r
	out.Education, r = mergeEntries(cfg.matcher, existing.Education, candidate.Education, Education.reconcile)
	report[CategoryEducation] = r
	out.Skills, r = mergeEntries(cfg.matcher, existing.Skills, candidate.Skills, Skill.reconcile)
	report[CategorySkill] = r

	return out, report, nil
}

// mergeEntries first folds duplicates already present in existing, then matches
// every candidate against the accumulated result.
func mergeEntries[T Identifiable](m Matcher, existing, candidate []T, reconcile func(T, T) T) ([]T, CategoryReport) {
	var report CategoryReport
	var out []T

	for _, entry := range existing {
		if i, ok := Find(m, entry, out); ok {
			out[i] = reconcile(out[i], entry)
			report.Collapsed++
			continue
		}
		out = append(out, entry)
	}

	for _, entry := range candidate {
		if i, ok := Find(m, entry, out); ok {
			out[i] = reconcile(out[i], entry)
			report.Matched++
			continue
		}
		out = append(out, entry)
		report.Added++
	}

	return out, report
}

func mergeBasics(m Matcher, e, c Basics) Basics {
	out := Basics{
		Name:     pickScalar(e.Name, c.Name),
		Label:    pickScalar(e.Label, c.Label),
		Email:    pickScalar(e.Email, c.Email),
		Phone:    pickScalar(e.Phone, c.Phone),
		URL:      pickScalar(e.URL, c.URL),
		Summary:  pickScalar(e.Summary, c.Summary),
		Location: mergeLocation(e.Location, c.Location),
	}
	out.Profiles, _ = mergeEntries(m, e.Profiles, c.Profiles, NetworkProfile.reconcile)
	return out
}

func mergeLocation(e, c *Location) *Location {
	switch {
	case e == nil && c == nil:
		return nil
	case e == nil:
		loc := *c
		return &loc
	case c == nil:
		loc := *e
		return &loc
	}

	return &Location{
		Address:     pickScalar(e.Address, c.Address),
		PostalCode:  pickScalar(e.PostalCode, c.PostalCode),
		City:        pickScalar(e.City, c.City),
		CountryCode: pickScalar(e.CountryCode, c.CountryCode),
		Region:      pickScalar(e.Region, c.Region),
	}
}

// Identity fields (names, positions, institutions) always keep the existing spelling.

func (w WorkExperience) reconcile(c WorkExperience) WorkExperience {
	return WorkExperience{
		Name:       w.Name,
		Position:   w.Position,
		URL:        pickScalar(w.URL, c.URL),
		StartDate:  pickDate(w.StartDate, c.StartDate),
		EndDate:    pickDate(w.EndDate, c.EndDate),
		Summary:    pickScalar(w.Summary, c.Summary),
		Highlights: unionExact(w.Highlights, c.Highlights),
		TechStack:  dedupeFold(w.TechStack, c.TechStack),
	}
}

func (p Project) reconcile(c Project) Project {
	return Project{
		Name:        p.Name,
		Description: pickScalar(p.Description, c.Description),
		Highlights:  unionExact(p.Highlights, c.Highlights),
		TechStack:   dedupeFold(p.TechStack, c.TechStack),
		URL:         pickScalar(p.URL, c.URL),
		StartDate:   pickDate(p.StartDate, c.StartDate),
		EndDate:     pickDate(p.EndDate, c.EndDate),
	}
}

func (e Education) reconcile(c Education) Education {
	return Education{
		Institution: e.Institution,
		URL:         pickScalar(e.URL, c.URL),
		Area:        e.Area,
		StudyType:   e.StudyType,
		StartDate:   pickDate(e.StartDate, c.StartDate),
		EndDate:     pickDate(e.EndDate, c.EndDate),
		Score:       pickScalar(e.Score, c.Score),
		Courses:     unionExact(e.Courses, c.Courses),
	}
}

func (s Skill) reconcile(c Skill) Skill {
	return Skill{
		Name:     s.Name,
		Level:    pickScalar(s.Level, c.Level),
		Keywords: dedupeFold(s.Keywords, c.Keywords),
	}
}

func (n NetworkProfile) reconcile(c NetworkProfile) NetworkProfile {
	return NetworkProfile{
		Network:  n.Network,
		Username: pickScalar(n.Username, c.Username),
		URL:      pickScalar(n.URL, c.URL),
	}
}

// pickScalar keeps the existing value unless it is empty or the candidate is
// strictly longer and not visibly truncated.
func pickScalar(existing, candidate string) string {
	switch {
	case existing == "":
		return candidate
	case candidate == "", candidate == existing:
		return existing
	case utf8.RuneCountInString(candidate) > utf8.RuneCountInString(existing) && !looksTruncated(candidate):
		return candidate
	default:
		return existing
	}
}

// pickDate takes the candidate date when the existing one is absent, or when the
// candidate refines it (2019 -> 2019-04). Conflicting dates keep the existing value.
func pickDate(existing, candidate string) string {
	switch {
	case candidate == "":
		return existing
	case existing == "":
		return candidate
	case datePrecision(candidate) > datePrecision(existing) && strings.HasPrefix(candidate, existing):
		return candidate
	default:
		return existing
	}
}

func looksTruncated(s string) bool {
	return strings.HasSuffix(s, "...") || strings.HasSuffix(s, "…")
}

// unionExact appends candidate items missing verbatim from existing.
func unionExact(existing, candidate []string) []string {
	var out []string
	seen := make(map[string]bool, len(existing)+len(candidate))
	for _, s := range existing {
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range candidate {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
