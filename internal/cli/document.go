package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumebuilder/internal/common"
	"resumebuilder/internal/resume"
)

var showConfig common.CommandConfig

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored document",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return prepareOutput(cmd, &showConfig, "json")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfigFromContext(ctx)
		logger := getLoggerFromContext(ctx)

		return common.RunDocumentCommand(ctx, logger, newOutputHandler(cmd), showConfig, nil,
			storedDocument(cfg, logger),
			func(doc resume.Document) (any, error) { return doc, nil })
	},
}

var importCmd = &cobra.Command{
	Use:   "import [resume-file]",
	Short: "Replace the stored document with a file",
	Long: `Replace the stored document with the content of a .json, .yaml or .yml
file. The file must match the document schema; nothing is stored otherwise.
Unquoted YAML values such as 3.8 or 2020-01-15 are read as text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfigFromContext(ctx)
		logger := getLoggerFromContext(ctx)

		doc, err := common.NewFileProcessor(logger).ReadDocument(args[0])
		if err != nil {
			return err
		}

		session, closeFn, err := openSession(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		state := session.Replace(doc)
		if err := session.Flush(ctx); err != nil {
			return err
		}
		band := state.Score.Band()
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (score %d/100, %s)\n", args[0], state.Score.Overall, band.Label)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the stored document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := getConfigFromContext(ctx)
		logger := getLoggerFromContext(ctx)

		session, closeFn, err := openSession(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		session.Reset()
		if err := session.Flush(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Document cleared")
		return nil
	},
}
