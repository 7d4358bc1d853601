package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/common"
	"resumebuilder/internal/editor"
	"resumebuilder/internal/errors"
)

var enhanceConfig common.CommandConfig

var enhanceCmd = &cobra.Command{
	Use:   "enhance",
	Short: "Improve résumé content with AI",
	Long: `Generate a professional summary or rewrite an experience entry with the
configured AI provider.

Without a file argument the stored document is enhanced and saved. With a
file the result is printed and nothing is stored.`,
}

var enhanceSummaryCmd = &cobra.Command{
	Use:   "summary [resume-file]",
	Short: "Generate a professional summary",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOutput(cmd, &enhanceConfig, "json")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnhance(cmd, args, func(ctx context.Context, session *editor.Session) editor.Outcome {
			return session.EnhanceSummary(ctx)
		})
	},
}

var enhanceExperienceCmd = &cobra.Command{
	Use:   "experience [experience-id] [resume-file]",
	Short: "Rewrite an experience description and achievements",
	Args:  cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOutput(cmd, &enhanceConfig, "json")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return runEnhance(cmd, args[1:], func(ctx context.Context, session *editor.Session) editor.Outcome {
			return session.EnhanceExperience(ctx, id)
		})
	},
}

func init() {
	enhanceCmd.PersistentFlags().StringVarP(&enhanceConfig.OutputFile, "output", "o", "", "Output file (default: stdout)")
	enhanceCmd.PersistentFlags().StringVarP(&enhanceConfig.OutputFormat, "format", "f", "", "Output format for the updated document (json, yaml)")

	enhanceCmd.AddCommand(enhanceSummaryCmd)
	enhanceCmd.AddCommand(enhanceExperienceCmd)
}

func runEnhance(cmd *cobra.Command, args []string, enhance func(context.Context, *editor.Session) editor.Outcome) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	service, err := ai.NewService(ctx, cfg.AI, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.LogError(err, "Failed to close AI service")
		}
	}()

	session, closeFn, err := sessionFor(ctx, args, logger, service)
	if err != nil {
		return err
	}
	defer closeFn()

	outcome := enhance(ctx, session)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", outcome.Notice.Title, outcome.Notice.Description)
	if outcome.Failure != nil {
		return outcome.Failure
	}
	return newOutputHandler(cmd).HandleOutput(outcome.State.Document, enhanceConfig)
}

// sessionFor seeds a throwaway session from the file argument, or opens the
// stored document when there is none
func sessionFor(ctx context.Context, args []string, logger *errors.Logger, enhancer ai.Enhancer) (*editor.Session, func(), error) {
	if len(args) == 0 {
		return openSession(ctx, getConfigFromContext(ctx), logger, enhancer)
	}
	doc, err := common.NewFileProcessor(logger).ReadDocument(args[0])
	if err != nil {
		return nil, nil, err
	}
	return seededSession(ctx, doc, logger, enhancer)
}
