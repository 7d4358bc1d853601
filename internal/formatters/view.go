package formatters

import (
	"fmt"
	"strings"

	"resumebuilder/internal/render"
)

// ViewTextFormatter writes a rendered view as plain text.
type ViewTextFormatter struct{}

func (vtf *ViewTextFormatter) Format(data any) (string, error) {
	view, ok := data.(render.View)
	if !ok {
		return "", fmt.Errorf("expected View, got %T", data)
	}

	var output strings.Builder

	output.WriteString(view.Header.Name)
	output.WriteString("\n")
	if len(view.Header.Contacts) > 0 {
		output.WriteString(strings.Join(view.Header.Contacts, " | "))
		output.WriteString("\n")
	}

	for _, section := range view.Sections {
		output.WriteString("\n")
		if section.Title != "" {
			output.WriteString(fmt.Sprintf("=== %s ===\n", strings.ToUpper(section.Title)))
		}
		if section.Paragraph != "" {
			output.WriteString(section.Paragraph)
			output.WriteString("\n")
		}
		for _, item := range section.Items {
			output.WriteString(item.Heading)
			if item.Dates != "" {
				output.WriteString(fmt.Sprintf(" (%s)", item.Dates))
			}
			output.WriteString("\n")
			if item.Subtitle != "" {
				output.WriteString(item.Subtitle)
				output.WriteString("\n")
			}
			if item.Body != "" {
				output.WriteString(item.Body)
				output.WriteString("\n")
			}
			for _, bullet := range item.Bullets {
				output.WriteString(fmt.Sprintf("- %s\n", bullet))
			}
			if item.Note != "" {
				output.WriteString(item.Note)
				output.WriteString("\n")
			}
			output.WriteString("\n")
		}
		if len(section.Tags) > 0 {
			output.WriteString(strings.Join(section.Tags, tagSeparator(section)))
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (vtf *ViewTextFormatter) SupportedType() string {
	return TypeView
}

// ViewMarkdownFormatter writes a rendered view as Markdown.
type ViewMarkdownFormatter struct{}

func (vmf *ViewMarkdownFormatter) Format(data any) (string, error) {
	view, ok := data.(render.View)
	if !ok {
		return "", fmt.Errorf("expected View, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", view.Header.Name))
	if len(view.Header.Contacts) > 0 {
		output.WriteString(strings.Join(view.Header.Contacts, " · "))
		output.WriteString("\n\n")
	}

	for _, section := range view.Sections {
		if section.Title != "" {
			output.WriteString(fmt.Sprintf("## %s\n\n", section.Title))
		}
		if section.Paragraph != "" {
			output.WriteString(section.Paragraph)
			output.WriteString("\n\n")
		}
		for _, item := range section.Items {
			output.WriteString(fmt.Sprintf("### %s\n\n", item.Heading))
			meta := make([]string, 0, 2)
			if item.Subtitle != "" {
				meta = append(meta, fmt.Sprintf("**%s**", item.Subtitle))
			}
			if item.Dates != "" {
				meta = append(meta, fmt.Sprintf("_%s_", item.Dates))
			}
			if len(meta) > 0 {
				output.WriteString(strings.Join(meta, " "))
				output.WriteString("\n\n")
			}
			if item.Body != "" {
				output.WriteString(item.Body)
				output.WriteString("\n\n")
			}
			if len(item.Bullets) > 0 {
				for _, bullet := range item.Bullets {
					output.WriteString(fmt.Sprintf("- %s\n", bullet))
				}
				output.WriteString("\n")
			}
			if item.Note != "" {
				output.WriteString(item.Note)
				output.WriteString("\n\n")
			}
		}
		if len(section.Tags) > 0 {
			output.WriteString(strings.Join(section.Tags, tagSeparator(section)))
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (vmf *ViewMarkdownFormatter) SupportedType() string {
	return TypeView
}

func tagSeparator(section render.Section) string {
	if section.Separator != "" {
		return section.Separator
	}
	return ", "
}
