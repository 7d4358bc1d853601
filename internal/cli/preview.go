package cli

import (
	"github.com/spf13/cobra"

	"resumebuilder/internal/common"
	"resumebuilder/internal/render"
	"resumebuilder/internal/resume"
)

var (
	previewConfig   common.CommandConfig
	previewTemplate string
)

var previewCmd = &cobra.Command{
	Use:   "preview [resume-file]",
	Short: "Render a résumé with a template",
	Long: `Render a résumé with the modern, classic or minimal template. The
document's own template is used unless --template is given; unknown names
fall back to modern.

Without a file argument the stored document is rendered.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOutput(cmd, &previewConfig, "")
	},
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewConfig.OutputFile, "output", "o", "", "Output file (default: stdout)")
	previewCmd.Flags().StringVarP(&previewConfig.OutputFormat, "format", "f", "", "Output format (text, markdown, html, json, yaml)")
	previewCmd.Flags().StringVarP(&previewTemplate, "template", "t", "", "Template override (modern, classic, minimal)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	return common.RunDocumentCommand(ctx, logger, newOutputHandler(cmd), previewConfig, args,
		storedDocument(cfg, logger),
		func(doc resume.Document) (any, error) {
			tmpl := doc.Template
			if previewTemplate != "" {
				tmpl = resume.Template(previewTemplate)
				if !tmpl.Known() {
					logger.Warn("Unknown template, using modern", "template", previewTemplate)
				}
			}
			return render.RenderAs(doc, tmpl), nil
		})
}
