package render

import "resumebuilder/internal/resume"

type variant struct {
	summaryTitle    string
	experienceTitle string
	educationTitle  string
	skillsTitle     string
	skillSeparator  string
	experience      func(resume.ExperienceEntry) Item
	education       func(resume.EducationEntry) Item
}

var variants = map[resume.Template]variant{
	resume.TemplateModern: {
		summaryTitle:    "PROFESSIONAL SUMMARY",
		experienceTitle: "EXPERIENCE",
		educationTitle:  "EDUCATION",
		skillsTitle:     "SKILLS",
		experience: func(exp resume.ExperienceEntry) Item {
			return Item{
				Heading:  exp.Position,
				Subtitle: exp.Company,
				Dates:    DateRange(exp.StartDate, exp.EndDate, exp.Current),
				Body:     exp.Description,
				Bullets:  exp.Achievements,
			}
		},
		education: func(edu resume.EducationEntry) Item {
			return Item{
				Heading:  edu.Degree,
				Subtitle: joinNonEmpty(" - ", edu.Institution, edu.Field),
				Dates:    DateRange(edu.StartDate, edu.EndDate, false),
				Note:     gpaNote(edu.GPA),
			}
		},
	},
	resume.TemplateClassic: {
		summaryTitle:    "Professional Summary",
		experienceTitle: "Professional Experience",
		educationTitle:  "Education",
		skillsTitle:     "Skills",
		skillSeparator:  " • ",
		experience: func(exp resume.ExperienceEntry) Item {
			return Item{
				Heading:  exp.Position,
				Subtitle: joinNonEmpty(" | ", exp.Company, DateRange(exp.StartDate, exp.EndDate, exp.Current)),
				Body:     exp.Description,
				Bullets:  exp.Achievements,
			}
		},
		education: func(edu resume.EducationEntry) Item {
			heading := edu.Degree
			if edu.Field != "" {
				heading = joinNonEmpty(" in ", edu.Degree, edu.Field)
			}
			return Item{
				Heading:  heading,
				Subtitle: joinNonEmpty(" | ", edu.Institution, DateRange(edu.StartDate, edu.EndDate, false)),
				Note:     gpaNote(edu.GPA),
			}
		},
	},
	resume.TemplateMinimal: {
		experienceTitle: "Experience",
		educationTitle:  "Education",
		skillsTitle:     "Skills",
		skillSeparator:  " • ",
		experience: func(exp resume.ExperienceEntry) Item {
			return Item{
				Heading:  exp.Position,
				Subtitle: exp.Company,
				Dates:    DateRange(exp.StartDate, exp.EndDate, exp.Current),
				Body:     exp.Description,
				Bullets:  exp.Achievements,
			}
		},
		education: func(edu resume.EducationEntry) Item {
			return Item{
				Heading:  edu.Degree,
				Subtitle: joinNonEmpty(" · ", edu.Institution, edu.Field),
				Dates:    DateRange(edu.StartDate, edu.EndDate, false),
				Note:     gpaNote(edu.GPA),
			}
		},
	},
}

func gpaNote(gpa string) string {
	if gpa == "" {
		return ""
	}
	return "GPA: " + gpa
}
