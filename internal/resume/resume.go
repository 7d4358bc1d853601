// Package resume defines the résumé document model and the pure update
// operations the editor applies to it.
package resume

// SkillLevel is the self-assessed proficiency attached to a skill.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// SkillLevels lists the levels in ascending order.
var SkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Template selects the presentation variant of a document.
type Template string

const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateMinimal Template = "minimal"
)

// Templates lists the variants; the first one is the fallback.
var Templates = []Template{TemplateModern, TemplateClassic, TemplateMinimal}

// Known reports whether t is one of the defined variants.
func (t Template) Known() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// PersonalInfo holds contact details and the professional summary.
// LinkedIn and Website are optional and omitted from JSON when empty.
type PersonalInfo struct {
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
	Summary  string `json:"summary" yaml:"summary"`
}

// ExperienceEntry is one job in the work history. EndDate is ignored when
// Current is set.
type ExperienceEntry struct {
	ID           string   `json:"id" yaml:"id"`
	Company      string   `json:"company" yaml:"company"`
	Position     string   `json:"position" yaml:"position"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	EndDate      string   `json:"endDate" yaml:"endDate"`
	Current      bool     `json:"current" yaml:"current"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

// EducationEntry is one degree or program.
type EducationEntry struct {
	ID          string `json:"id" yaml:"id"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	GPA         string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
}

// SkillEntry is addressed by its position; duplicates are allowed.
type SkillEntry struct {
	Name  string     `json:"name" yaml:"name"`
	Level SkillLevel `json:"level" yaml:"level" validate:"oneof=beginner intermediate advanced expert"`
}

// Document is the aggregate edited during a session.
type Document struct {
	PersonalInfo PersonalInfo      `json:"personalInfo" yaml:"personalInfo"`
	Experiences  []ExperienceEntry `json:"experiences" yaml:"experiences"`
	Education    []EducationEntry  `json:"education" yaml:"education"`
	Skills       []SkillEntry      `json:"skills" yaml:"skills" validate:"dive"`
	Template     Template          `json:"template" yaml:"template" validate:"oneof=modern classic minimal"`
}

// NewDocument returns the empty default document.
func NewDocument() Document {
	return Document{
		Experiences: []ExperienceEntry{},
		Education:   []EducationEntry{},
		Skills:      []SkillEntry{},
		Template:    TemplateModern,
	}
}

// Normalize replaces absent sequences with empty ones so that every field
// of the document is present.
func (d Document) Normalize() Document {
	if d.Experiences == nil {
		d.Experiences = []ExperienceEntry{}
	}
	for i := range d.Experiences {
		if d.Experiences[i].Achievements == nil {
			d.Experiences[i].Achievements = []string{}
		}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Skills == nil {
		d.Skills = []SkillEntry{}
	}
	if d.Template == "" {
		d.Template = TemplateModern
	}
	return d
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.Experiences = make([]ExperienceEntry, len(d.Experiences))
	for i, exp := range d.Experiences {
		out.Experiences[i] = exp.clone()
	}
	out.Education = append(make([]EducationEntry, 0, len(d.Education)), d.Education...)
	out.Skills = append(make([]SkillEntry, 0, len(d.Skills)), d.Skills...)
	return out
}

func (e ExperienceEntry) clone() ExperienceEntry {
	e.Achievements = append(make([]string, 0, len(e.Achievements)), e.Achievements...)
	return e
}

// FindExperience returns the entry with the given id.
func (d Document) FindExperience(id string) (ExperienceEntry, bool) {
	for _, exp := range d.Experiences {
		if exp.ID == id {
			return exp.clone(), true
		}
	}
	return ExperienceEntry{}, false
}

// FindEducation returns the entry with the given id.
func (d Document) FindEducation(id string) (EducationEntry, bool) {
	for _, edu := range d.Education {
		if edu.ID == id {
			return edu, true
		}
	}
	return EducationEntry{}, false
}
