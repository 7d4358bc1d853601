// Package render projects a résumé document into a presentation tree for
// one of the template variants. It carries no scoring logic.
package render

import (
	"strings"

	"resumebuilder/internal/resume"
)

// PlaceholderName is shown when the document has no full name.
const PlaceholderName = "Your Name"

// SectionKind identifies the document section a View section comes from.
type SectionKind string

const (
	SectionSummary    SectionKind = "summary"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
)

// View is the rendered tree. Empty sections are omitted.
type View struct {
	Template resume.Template `json:"template" yaml:"template"`
	Header   Header          `json:"header" yaml:"header"`
	Sections []Section       `json:"sections" yaml:"sections"`
}

// Header holds the name line and the non-empty contact details in display
// order.
type Header struct {
	Name     string   `json:"name" yaml:"name"`
	Contacts []string `json:"contacts" yaml:"contacts"`
}

// Section is one titled block. Minimal omits the summary title.
type Section struct {
	Kind      SectionKind `json:"kind" yaml:"kind"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	Paragraph string      `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Items     []Item      `json:"items,omitempty" yaml:"items,omitempty"`
	Tags      []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Separator string      `json:"separator,omitempty" yaml:"separator,omitempty"`
}

// Item is one entry of the experience or education section.
type Item struct {
	Heading  string   `json:"heading" yaml:"heading"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Dates    string   `json:"dates,omitempty" yaml:"dates,omitempty"`
	Body     string   `json:"body,omitempty" yaml:"body,omitempty"`
	Bullets  []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Note     string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Resolve maps unrecognized template values to the first variant.
func Resolve(t resume.Template) resume.Template {
	if t.Known() {
		return t
	}
	return resume.Templates[0]
}

// Render projects doc using its own template selector.
func Render(doc resume.Document) View {
	return RenderAs(doc, doc.Template)
}

// RenderAs projects doc using tmpl instead of the document's selector.
func RenderAs(doc resume.Document, tmpl resume.Template) View {
	doc = doc.Normalize()
	v := variants[Resolve(tmpl)]

	view := View{
		Template: Resolve(tmpl),
		Header:   header(doc.PersonalInfo),
		Sections: []Section{},
	}

	if doc.PersonalInfo.Summary != "" {
		view.Sections = append(view.Sections, Section{
			Kind:      SectionSummary,
			Title:     v.summaryTitle,
			Paragraph: doc.PersonalInfo.Summary,
		})
	}

	if len(doc.Experiences) > 0 {
		items := make([]Item, 0, len(doc.Experiences))
		for _, exp := range doc.Experiences {
			items = append(items, v.experience(exp))
		}
		view.Sections = append(view.Sections, Section{
			Kind:  SectionExperience,
			Title: v.experienceTitle,
			Items: items,
		})
	}

	if len(doc.Education) > 0 {
		items := make([]Item, 0, len(doc.Education))
		for _, edu := range doc.Education {
			items = append(items, v.education(edu))
		}
		view.Sections = append(view.Sections, Section{
			Kind:  SectionEducation,
			Title: v.educationTitle,
			Items: items,
		})
	}

	if len(doc.Skills) > 0 {
		tags := make([]string, 0, len(doc.Skills))
		for _, skill := range doc.Skills {
			tags = append(tags, skill.Name)
		}
		view.Sections = append(view.Sections, Section{
			Kind:      SectionSkills,
			Title:     v.skillsTitle,
			Tags:      tags,
			Separator: v.skillSeparator,
		})
	}

	return view
}

func header(info resume.PersonalInfo) Header {
	name := info.FullName
	if name == "" {
		name = PlaceholderName
	}
	contacts := []string{}
	for _, c := range []string{info.Email, info.Phone, info.Location, info.LinkedIn, info.Website} {
		if c != "" {
			contacts = append(contacts, c)
		}
	}
	return Header{Name: name, Contacts: contacts}
}

// DateRange formats a start/end pair. Current entries end in "Present".
func DateRange(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	return start + " - " + end
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
