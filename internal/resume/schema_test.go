package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := sampleDocument()
	doc = WithPersonalInfo(doc, PersonalInfo{FullName: "Jane Doe", Summary: ""})
	doc = WithTemplate(doc, TemplateClassic)

	data, err := Encode(doc)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Normalize(), got)
}

func TestEncodeWritesEmptySequences(t *testing.T) {
	data, err := Encode(Document{})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"personalInfo": {"fullName": "", "email": "", "phone": "", "location": "", "summary": ""},
		"experiences": [],
		"education": [],
		"skills": [],
		"template": "modern"
	}`, string(data))
}

func TestDecodeNormalizesMissingSequences(t *testing.T) {
	got, err := Decode([]byte(`{"personalInfo": {"fullName": "Jane"}, "experiences": [{"id": "a"}]}`))
	require.NoError(t, err)

	assert.Equal(t, "Jane", got.PersonalInfo.FullName)
	assert.Equal(t, []string{}, got.Experiences[0].Achievements)
	assert.Equal(t, []EducationEntry{}, got.Education)
	assert.Equal(t, []SkillEntry{}, got.Skills)
	assert.Equal(t, TemplateModern, got.Template)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{{{`},
		{"array root", `[]`},
		{"missing personal info", `{"experiences": []}`},
		{"wrong field type", `{"personalInfo": {"fullName": 42}}`},
		{"experience without id", `{"personalInfo": {}, "experiences": [{"company": "Acme"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestSchemaErrorListsFields(t *testing.T) {
	err := CheckSchema([]byte(`{"personalInfo": {"email": false}, "skills": [{"level": "expert"}]}`))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Len(t, schemaErr.Errors, 2)
	assert.Contains(t, err.Error(), "personalInfo.email")
}

func TestValidate(t *testing.T) {
	doc := sampleDocument()
	assert.NoError(t, Validate(doc))

	assert.Error(t, Validate(WithTemplate(doc, "fancy")))
	assert.Error(t, Validate(AppendSkill(doc, SkillEntry{Name: "Go", Level: "guru"})))
	assert.Error(t, ValidateSkill(SkillEntry{Name: "Go"}))
	assert.NoError(t, ValidateSkill(SkillEntry{Name: "Go", Level: LevelBeginner}))

	assert.True(t, ValidTemplate("minimal"))
	assert.False(t, ValidTemplate("Modern"))
}
