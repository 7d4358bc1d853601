package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	doc := NewDocument()
	doc = AddExperience(doc, ExperienceEntry{ID: "e1", Company: "Acme", Position: "Engineer", Achievements: []string{"Shipped v1"}})
	doc = AddExperience(doc, ExperienceEntry{ID: "e2", Company: "Globex", Position: "Lead"})
	doc = AddEducation(doc, EducationEntry{ID: "d1", Institution: "State U", Degree: "BSc"})
	doc = AppendSkill(doc, SkillEntry{Name: "Go", Level: LevelExpert})
	doc = AppendSkill(doc, SkillEntry{Name: "SQL", Level: LevelAdvanced})
	return doc
}

func TestNewDocumentIsEmptyDefault(t *testing.T) {
	doc := NewDocument()

	assert.Equal(t, PersonalInfo{}, doc.PersonalInfo)
	assert.NotNil(t, doc.Experiences)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Skills)
	assert.Empty(t, doc.Experiences)
	assert.Equal(t, TemplateModern, doc.Template)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	doc := sampleDocument()
	before := doc.Clone()

	_ = AddExperience(doc, ExperienceEntry{ID: "e3"})
	_ = RemoveExperience(doc, "e1")
	_ = UpdateExperience(doc, "e1", func(e ExperienceEntry) ExperienceEntry {
		e.Achievements[0] = "changed"
		e.Company = "Changed"
		return e
	})
	_ = RemoveEducation(doc, "d1")
	_ = RemoveSkill(doc, 0)
	_ = WithTemplate(doc, TemplateClassic)
	_ = WithPersonalInfo(doc, PersonalInfo{FullName: "X"})

	assert.Equal(t, before, doc)
}

func TestExperienceOperations(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(Document) Document
		wantIDs []string
	}{
		{
			name:    "add keeps insertion order",
			apply:   func(d Document) Document { return AddExperience(d, ExperienceEntry{ID: "e3"}) },
			wantIDs: []string{"e1", "e2", "e3"},
		},
		{
			name:    "remove by id",
			apply:   func(d Document) Document { return RemoveExperience(d, "e1") },
			wantIDs: []string{"e2"},
		},
		{
			name:    "remove unknown id is a no-op",
			apply:   func(d Document) Document { return RemoveExperience(d, "missing") },
			wantIDs: []string{"e1", "e2"},
		},
		{
			name: "update unknown id is a no-op",
			apply: func(d Document) Document {
				return UpdateExperience(d, "missing", func(e ExperienceEntry) ExperienceEntry {
					e.Company = "Nope"
					return e
				})
			},
			wantIDs: []string{"e1", "e2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apply(sampleDocument())
			ids := make([]string, 0, len(got.Experiences))
			for _, e := range got.Experiences {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestUpdateExperienceKeepsID(t *testing.T) {
	doc := UpdateExperience(sampleDocument(), "e2", func(e ExperienceEntry) ExperienceEntry {
		e.ID = "hijacked"
		e.Description = "Led the platform team"
		return e
	})

	got, ok := doc.FindExperience("e2")
	require.True(t, ok)
	assert.Equal(t, "Led the platform team", got.Description)
	assert.Equal(t, "Globex", got.Company)
	assert.Equal(t, []string{}, got.Achievements)
}

func TestUpdateUnknownIDReturnsEqualDocument(t *testing.T) {
	doc := sampleDocument()

	rewriteExperience := func(e ExperienceEntry) ExperienceEntry {
		return ExperienceEntry{
			ID: "other", Company: "X", Position: "Y", StartDate: "1999", EndDate: "2000",
			Current: true, Description: "changed", Achievements: []string{"changed"},
		}
	}
	rewriteEducation := func(e EducationEntry) EducationEntry {
		return EducationEntry{
			ID: "other", Institution: "X", Degree: "Y", Field: "Z",
			StartDate: "1999", EndDate: "2000", GPA: "4.0",
		}
	}

	assert.Equal(t, doc, UpdateExperience(doc, "missing", rewriteExperience))
	assert.Equal(t, doc, UpdateEducation(doc, "missing", rewriteEducation))
	assert.Equal(t, sampleDocument(), doc)
}

func TestEducationOperations(t *testing.T) {
	doc := sampleDocument()

	doc = UpdateEducation(doc, "d1", func(e EducationEntry) EducationEntry {
		e.Field = "Computer Science"
		return e
	})
	got, ok := doc.FindEducation("d1")
	require.True(t, ok)
	assert.Equal(t, "Computer Science", got.Field)

	doc = RemoveEducation(doc, "d1")
	assert.Empty(t, doc.Education)
	assert.NotNil(t, doc.Education)
}

func TestSkillOperations(t *testing.T) {
	doc := sampleDocument()

	doc = AppendSkill(doc, SkillEntry{Name: "Go", Level: LevelBeginner})
	assert.Len(t, doc.Skills, 3, "duplicates are allowed")

	doc = RemoveSkill(doc, 0)
	assert.Equal(t, []SkillEntry{
		{Name: "SQL", Level: LevelAdvanced},
		{Name: "Go", Level: LevelBeginner},
	}, doc.Skills)

	for _, index := range []int{-1, 2, 10} {
		assert.Equal(t, doc, RemoveSkill(doc, index), "index %d", index)
	}
}

func TestSectionReplacement(t *testing.T) {
	doc := sampleDocument()

	doc = WithExperiences(doc, nil)
	assert.Equal(t, []ExperienceEntry{}, doc.Experiences)

	doc = WithEducation(doc, []EducationEntry{{ID: "x"}})
	assert.Len(t, doc.Education, 1)

	doc = WithSkills(doc, nil)
	assert.Equal(t, []SkillEntry{}, doc.Skills)

	info := PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"}
	doc = WithPersonalInfo(doc, info)
	assert.Equal(t, info, doc.PersonalInfo)

	doc = WithTemplate(doc, TemplateMinimal)
	assert.Equal(t, TemplateMinimal, doc.Template)
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}
