package profile

import "fmt"

// NewEntry normalizes and validates a raw entry of the given category.
func NewEntry(c Category, raw map[string]any) (Entry, error) {
	normalized, err := NormalizeEntry(c, raw)
	if err != nil {
		return nil, err
	}
	return DecodeEntry(c, normalized)
}

// Append validates raw as an entry of category c and returns a copy of p with the
// entry added at the end of that category. No duplicate detection is done.
func Append(p *MasterProfile, c Category, raw map[string]any) (*MasterProfile, error) {
	if err := Validate(p); err != nil {
		return nil, &InvalidProfile{Role: "existing", Cause: err}
	}

	entry, err := NewEntry(c, raw)
	if err != nil {
		return nil, err
	}

	return AppendEntry(p, entry)
}

// AppendEntry adds an already validated entry to a copy of p.
func AppendEntry(p *MasterProfile, entry Entry) (*MasterProfile, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is required")
	}
	out := p.Clone()

	switch e := entry.(type) {
	case WorkExperience:
		out.Work = append(out.Work, e.clone())
	case Project:
		out.Projects = append(out.Projects, e.clone())
	case Education:
		out.Education = append(out.Education, e.clone())
	case Skill:
		out.Skills = append(out.Skills, e.clone())
	default:
		return nil, fmt.Errorf("unsupported entry type %T", entry)
	}

	return out, nil
}
