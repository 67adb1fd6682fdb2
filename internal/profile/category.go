package profile

import (
	"strings"
)

// Category enumerates the list sections of a master profile.
type Category int

const (
	CategoryWork Category = iota + 1
	CategoryProject
	CategoryEducation
	CategorySkill
)

// Categories lists every category in profile order.
var Categories = []Category{CategoryWork, CategoryProject, CategoryEducation, CategorySkill}

// ParseCategory accepts singular and plural spellings, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "job", "jobs", "experience":
		return CategoryWork, nil
	case "project", "projects":
		return CategoryProject, nil
	case "education":
		return CategoryEducation, nil
	case "skill", "skills":
		return CategorySkill, nil
	}

	return 0, &SchemaViolation{
		Entity: "category",
		Violations: []Violation{{
			Field: "category",
			Rule:  "oneof",
			Value: s,
			Param: "work project education skill",
		}},
	}
}

// String returns the singular name used on the command line.
func (c Category) String() string {
	switch c {
	case CategoryWork:
		return "work"
	case CategoryProject:
		return "project"
	case CategoryEducation:
		return "education"
	case CategorySkill:
		return "skill"
	default:
		return "unknown"
	}
}

// Key returns the name of the profile field holding entries of this category.
func (c Category) Key() string {
	switch c {
	case CategoryWork:
		return "work"
	case CategoryProject:
		return "projects"
	case CategoryEducation:
		return "education"
	case CategorySkill:
		return "skills"
	default:
		return ""
	}
}

// aliases maps accepted alternative field names onto canonical ones for entries
// of the category. snake_case spellings are handled generically.
func (c Category) aliases() map[string]string {
	switch c {
	case CategoryWork:
		return map[string]string{"company": "name", "title": "position", "role": "position"}
	case CategoryEducation:
		return map[string]string{"degree": "studyType", "school": "institution"}
	case CategoryProject:
		return map[string]string{"title": "name"}
	default:
		return nil
	}
}
