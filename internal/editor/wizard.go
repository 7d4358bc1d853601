package editor

// Step is a section of the editing wizard
type Step string

const (
	StepPersonal   Step = "personal"
	StepExperience Step = "experience"
	StepEducation  Step = "education"
	StepSkills     Step = "skills"
)

// Steps lists the wizard sections in order
var Steps = []Step{StepPersonal, StepExperience, StepEducation, StepSkills}

// NextStep returns the section after current. The last section and unknown
// sections have no successor.
func NextStep(current Step) (Step, bool) {
	for i, step := range Steps {
		if step == current && i < len(Steps)-1 {
			return Steps[i+1], true
		}
	}
	return current, false
}
