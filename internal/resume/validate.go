package resume

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the enumerated fields of doc: the template and every
// skill level must be one of the defined values.
func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("invalid document: %s", describe(err))
	}
	return nil
}

// ValidateSkill checks a single skill entry.
func ValidateSkill(skill SkillEntry) error {
	if err := validate.Struct(skill); err != nil {
		return fmt.Errorf("invalid skill: %s", describe(err))
	}
	return nil
}

// ValidTemplate reports whether name is a known template.
func ValidTemplate(name string) bool {
	return validate.Var(name, "oneof=modern classic minimal") == nil
}

func describe(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s (got %q)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return strings.Join(parts, "; ")
}
