package cli

import (
	"github.com/spf13/cobra"

	"resumebuilder/internal/ats"
	"resumebuilder/internal/common"
	"resumebuilder/internal/watch"
)

var watchConfig common.CommandConfig

var watchCmd = &cobra.Command{
	Use:   "watch [resume-file]",
	Short: "Rescore a résumé file whenever it changes",
	Long: `Print the ATS score of a JSON or YAML résumé file, then print it again
each time the file is saved. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOutput(cmd, &watchConfig, "")
	},
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConfig.OutputFormat, "format", "f", "", "Output format (json, yaml, text, markdown)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	file := args[0]
	processor := common.NewFileProcessor(logger)
	out := newOutputHandler(cmd)

	report := func() {
		doc, err := processor.ReadDocument(file)
		if err != nil {
			logger.LogError(err, "Skipping invalid document", "file", file)
			return
		}
		if err := out.HandleOutput(ats.Score(doc), watchConfig); err != nil {
			logger.LogError(err, "Failed to print score", "file", file)
		}
	}

	report()

	watcher := watch.New([]string{file}, cfg.Watch.Debounce, report, logger)
	if err := watcher.Start(); err != nil {
		return err
	}
	logger.Info("Watching for changes", "file", file)

	<-ctx.Done()
	return watcher.Stop()
}
