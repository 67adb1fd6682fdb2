// Package profile holds the master profile schema and the rules for normalizing,
// matching and merging profile data extracted from resume documents.
package profile

// MasterProfile is the canonical record of a candidate's career history.
type MasterProfile struct {
	Basics    Basics           `json:"basics" yaml:"basics"`
	Work      []WorkExperience `json:"work,omitempty" yaml:"work,omitempty" validate:"dive"`
	Projects  []Project        `json:"projects,omitempty" yaml:"projects,omitempty" validate:"dive"`
	Education []Education      `json:"education,omitempty" yaml:"education,omitempty" validate:"dive"`
	Skills    []Skill          `json:"skills,omitempty" yaml:"skills,omitempty" validate:"dive"`
}

type Basics struct {
	Name     string           `json:"name" yaml:"name" validate:"required,tidy"`
	Label    string           `json:"label,omitempty" yaml:"label,omitempty" validate:"tidy"`
	Email    string           `json:"email" yaml:"email" validate:"required,email"`
	Phone    string           `json:"phone,omitempty" yaml:"phone,omitempty" validate:"tidy"`
	URL      string           `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,http_url"`
	Summary  string           `json:"summary,omitempty" yaml:"summary,omitempty" validate:"tidy"`
	Location *Location        `json:"location,omitempty" yaml:"location,omitempty"`
	Profiles []NetworkProfile `json:"profiles,omitempty" yaml:"profiles,omitempty" validate:"dive"`
}

type Location struct {
	Address     string `json:"address,omitempty" yaml:"address,omitempty" validate:"tidy"`
	PostalCode  string `json:"postalCode,omitempty" yaml:"postalCode,omitempty" validate:"tidy"`
	City        string `json:"city" yaml:"city" validate:"required,tidy"`
	CountryCode string `json:"countryCode,omitempty" yaml:"countryCode,omitempty" validate:"tidy"`
	Region      string `json:"region,omitempty" yaml:"region,omitempty" validate:"tidy"`
}

// NetworkProfile is an identity on a social or professional network.
type NetworkProfile struct {
	Network  string `json:"network" yaml:"network" validate:"required,tidy"`
	Username string `json:"username" yaml:"username" validate:"required,tidy"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,http_url"`
}

// WorkExperience is a single employment. Name holds the company name.
// An empty EndDate means the position is ongoing.
type WorkExperience struct {
	Name       string   `json:"name" yaml:"name" validate:"required,tidy"`
	Position   string   `json:"position" yaml:"position" validate:"required,tidy"`
	URL        string   `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,http_url"`
	StartDate  string   `json:"startDate" yaml:"startDate" validate:"required,yearmonth"`
	EndDate    string   `json:"endDate,omitempty" yaml:"endDate,omitempty" validate:"omitempty,yearmonth"`
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty" validate:"tidy"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty" validate:"tidy"`
	TechStack  []string `json:"techStack,omitempty" yaml:"techStack,omitempty" validate:"tidy,unique_fold"`
}

type Project struct {
	Name        string   `json:"name" yaml:"name" validate:"required,tidy"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" validate:"tidy"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty" validate:"tidy"`
	TechStack   []string `json:"techStack,omitempty" yaml:"techStack,omitempty" validate:"tidy,unique_fold"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,http_url"`
	StartDate   string   `json:"startDate,omitempty" yaml:"startDate,omitempty" validate:"omitempty,yearmonth"`
	EndDate     string   `json:"endDate,omitempty" yaml:"endDate,omitempty" validate:"omitempty,yearmonth"`
}

type Education struct {
	Institution string   `json:"institution" yaml:"institution" validate:"required,tidy"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,http_url"`
	Area        string   `json:"area" yaml:"area" validate:"required,tidy"`
	StudyType   string   `json:"studyType" yaml:"studyType" validate:"required,tidy"`
	StartDate   string   `json:"startDate" yaml:"startDate" validate:"required,yearmonth"`
	EndDate     string   `json:"endDate,omitempty" yaml:"endDate,omitempty" validate:"omitempty,yearmonth"`
	Score       string   `json:"score,omitempty" yaml:"score,omitempty" validate:"tidy"`
	Courses     []string `json:"courses,omitempty" yaml:"courses,omitempty" validate:"tidy"`
}

type Skill struct {
	Name     string   `json:"name" yaml:"name" validate:"required,tidy"`
	Level    string   `json:"level,omitempty" yaml:"level,omitempty" validate:"tidy"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" validate:"tidy,unique_fold"`
}

// Clone returns a deep copy of the profile.
func (p *MasterProfile) Clone() *MasterProfile {
	if p == nil {
		return nil
	}

	out := &MasterProfile{
		Basics:    p.Basics.clone(),
		Work:      cloneEach(p.Work, WorkExperience.clone),
		Projects:  cloneEach(p.Projects, Project.clone),
		Education: cloneEach(p.Education, Education.clone),
		Skills:    cloneEach(p.Skills, Skill.clone),
	}

	return out
}

func (b Basics) clone() Basics {
	if b.Location != nil {
		loc := *b.Location
		b.Location = &loc
	}
	b.Profiles = cloneEach(b.Profiles, func(n NetworkProfile) NetworkProfile { return n })
	return b
}

func (w WorkExperience) clone() WorkExperience {
	w.Highlights = cloneStrings(w.Highlights)
	w.TechStack = cloneStrings(w.TechStack)
	return w
}

func (p Project) clone() Project {
	p.Highlights = cloneStrings(p.Highlights)
	p.TechStack = cloneStrings(p.TechStack)
	return p
}

func (e Education) clone() Education {
	e.Courses = cloneStrings(e.Courses)
	return e
}

func (s Skill) clone() Skill {
	s.Keywords = cloneStrings(s.Keywords)
	return s
}

func cloneEach[T any](items []T, fn func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func cloneStrings(items []string) []string {
	if items == nil {
		return nil
	}
	return append([]string(nil), items...)
}
