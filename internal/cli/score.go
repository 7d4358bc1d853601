package cli

import (
	"github.com/spf13/cobra"

	"resumebuilder/internal/ats"
	"resumebuilder/internal/common"
	"resumebuilder/internal/resume"
)

var scoreConfig common.CommandConfig

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file]",
	Short: "Score a résumé for ATS compatibility",
	Long: `Score a résumé against six ATS rules: complete contact details, a
professional summary of 50 to 500 characters, detailed work experience,
education, at least five skills and well described experience entries.

Without a file argument the stored document is scored. JSON and YAML files
are accepted.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOutput(cmd, &scoreConfig, "")
	},
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file (default: stdout)")
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFormat, "format", "f", "", "Output format (json, yaml, text, markdown)")
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	return common.RunDocumentCommand(ctx, logger, newOutputHandler(cmd), scoreConfig, args,
		storedDocument(cfg, logger),
		func(doc resume.Document) (any, error) {
			result := ats.Score(doc)
			logger.Debug("Scored document", "overall", result.Overall, "suggestions", len(result.Suggestions))
			return result, nil
		})
}
