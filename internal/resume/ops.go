package resume

// The operations below never mutate their input: each returns a new
// Document whose slices do not alias the input's backing arrays.

// AddExperience appends entry. The caller assigns the id.
func AddExperience(doc Document, entry ExperienceEntry) Document {
	out := doc.Clone()
	out.Experiences = append(out.Experiences, entry.clone())
	return out.Normalize()
}

// RemoveExperience drops the entry with id. Unknown ids are a no-op.
func RemoveExperience(doc Document, id string) Document {
	out := doc.Clone()
	kept := out.Experiences[:0]
	for _, exp := range out.Experiences {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	out.Experiences = kept
	return out
}

// UpdateExperience replaces the entry with id by fn(entry). The id is
// preserved whatever fn returns. Unknown ids are a no-op.
func UpdateExperience(doc Document, id string, fn func(ExperienceEntry) ExperienceEntry) Document {
	out := doc.Clone()
	for i, exp := range out.Experiences {
		if exp.ID == id {
			updated := fn(exp.clone()).clone()
			updated.ID = id
			out.Experiences[i] = updated
			break
		}
	}
	return out
}

// AddEducation appends entry. The caller assigns the id.
func AddEducation(doc Document, entry EducationEntry) Document {
	out := doc.Clone()
	out.Education = append(out.Education, entry)
	return out
}

// RemoveEducation drops the entry with id. Unknown ids are a no-op.
func RemoveEducation(doc Document, id string) Document {
	out := doc.Clone()
	kept := out.Education[:0]
	for _, edu := range out.Education {
		if edu.ID != id {
			kept = append(kept, edu)
		}
	}
	out.Education = kept
	return out
}

// UpdateEducation replaces the entry with id by fn(entry), keeping the id.
func UpdateEducation(doc Document, id string, fn func(EducationEntry) EducationEntry) Document {
	out := doc.Clone()
	for i, edu := range out.Education {
		if edu.ID == id {
			updated := fn(edu)
			updated.ID = id
			out.Education[i] = updated
			break
		}
	}
	return out
}

// AppendSkill adds skill at the end. Duplicates are allowed.
func AppendSkill(doc Document, skill SkillEntry) Document {
	out := doc.Clone()
	out.Skills = append(out.Skills, skill)
	return out
}

// RemoveSkill drops the skill at index. Out-of-range indexes are a no-op.
func RemoveSkill(doc Document, index int) Document {
	out := doc.Clone()
	if index < 0 || index >= len(out.Skills) {
		return out
	}
	out.Skills = append(out.Skills[:index], out.Skills[index+1:]...)
	return out
}

// WithPersonalInfo replaces the personal information section.
func WithPersonalInfo(doc Document, info PersonalInfo) Document {
	out := doc.Clone()
	out.PersonalInfo = info
	return out
}

// WithExperiences replaces the whole experience section.
func WithExperiences(doc Document, entries []ExperienceEntry) Document {
	out := doc.Clone()
	out.Experiences = make([]ExperienceEntry, len(entries))
	for i, exp := range entries {
		out.Experiences[i] = exp.clone()
	}
	return out.Normalize()
}

// WithEducation replaces the whole education section.
func WithEducation(doc Document, entries []EducationEntry) Document {
	out := doc.Clone()
	out.Education = append(make([]EducationEntry, 0, len(entries)), entries...)
	return out
}

// WithSkills replaces the whole skills section.
func WithSkills(doc Document, skills []SkillEntry) Document {
	out := doc.Clone()
	out.Skills = append(make([]SkillEntry, 0, len(skills)), skills...)
	return out
}

// WithTemplate selects the presentation variant.
func WithTemplate(doc Document, tmpl Template) Document {
	out := doc.Clone()
	out.Template = tmpl
	return out
}
