package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumebuilder/internal/resume"
)

func fullDocument() resume.Document {
	doc := resume.NewDocument()
	doc = resume.WithPersonalInfo(doc, resume.PersonalInfo{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-0100",
		LinkedIn: "linkedin.com/in/jane",
		Summary:  "Backend engineer.",
	})
	doc = resume.AddExperience(doc, resume.ExperienceEntry{
		ID: "e1", Company: "Acme", Position: "Engineer",
		StartDate: "2020-01", EndDate: "2021-01", Current: true,
		Description: "Built things", Achievements: []string{"Cut latency 40%"},
	})
	doc = resume.AddEducation(doc, resume.EducationEntry{
		ID: "d1", Institution: "State U", Degree: "BSc", Field: "CS",
		StartDate: "2012", EndDate: "2016", GPA: "3.8",
	})
	doc = resume.AppendSkill(doc, resume.SkillEntry{Name: "Go", Level: resume.LevelExpert})
	doc = resume.AppendSkill(doc, resume.SkillEntry{Name: "SQL", Level: resume.LevelAdvanced})
	return doc
}

func sectionTitles(v View) []string {
	titles := make([]string, 0, len(v.Sections))
	for _, s := range v.Sections {
		titles = append(titles, s.Title)
	}
	return titles
}

func TestRenderEmptyDocument(t *testing.T) {
	for _, tmpl := range resume.Templates {
		t.Run(string(tmpl), func(t *testing.T) {
			view := Render(resume.WithTemplate(resume.Document{}, tmpl))

			assert.Equal(t, tmpl, view.Template)
			assert.Equal(t, PlaceholderName, view.Header.Name)
			assert.Empty(t, view.Header.Contacts)
			assert.Empty(t, view.Sections)
		})
	}
}

func TestRenderUnknownTemplateFallsBackToModern(t *testing.T) {
	doc := resume.WithTemplate(fullDocument(), "fancy")

	view := Render(doc)

	assert.Equal(t, resume.TemplateModern, view.Template)
	assert.Equal(t, RenderAs(doc, resume.TemplateModern), view)
}

func TestRenderSectionTitles(t *testing.T) {
	tests := []struct {
		tmpl resume.Template
		want []string
	}{
		{resume.TemplateModern, []string{"PROFESSIONAL SUMMARY", "EXPERIENCE", "EDUCATION", "SKILLS"}},
		{resume.TemplateClassic, []string{"Professional Summary", "Professional Experience", "Education", "Skills"}},
		{resume.TemplateMinimal, []string{"", "Experience", "Education", "Skills"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tmpl), func(t *testing.T) {
			assert.Equal(t, tt.want, sectionTitles(RenderAs(fullDocument(), tt.tmpl)))
		})
	}
}

func TestRenderExperienceItem(t *testing.T) {
	modern := RenderAs(fullDocument(), resume.TemplateModern)
	require.Len(t, modern.Sections, 4)
	item := modern.Sections[1].Items[0]
	assert.Equal(t, "Engineer", item.Heading)
	assert.Equal(t, "Acme", item.Subtitle)
	assert.Equal(t, "2020-01 - Present", item.Dates)
	assert.Equal(t, []string{"Cut latency 40%"}, item.Bullets)

	classic := RenderAs(fullDocument(), resume.TemplateClassic)
	assert.Equal(t, "Acme | 2020-01 - Present", classic.Sections[1].Items[0].Subtitle)
	assert.Equal(t, "BSc in CS", classic.Sections[2].Items[0].Heading)
	assert.Equal(t, "GPA: 3.8", classic.Sections[2].Items[0].Note)
}

func TestRenderHeaderContacts(t *testing.T) {
	view := Render(fullDocument())

	assert.Equal(t, "Jane Doe", view.Header.Name)
	assert.Equal(t, []string{"jane@example.com", "555-0100", "linkedin.com/in/jane"}, view.Header.Contacts)
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020 - 2022", DateRange("2020", "2022", false))
	assert.Equal(t, "2020 - Present", DateRange("2020", "2022", true))
	assert.Equal(t, " - ", DateRange("", "", false))
}
