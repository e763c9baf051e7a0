package cmd

import (
	"refgen/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  = zap.NewNop()
	rootDir string
	debug   bool
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "refgen",
	Short: "refgen aggregates a project into Markdown reference documents",
	Long: `refgen walks a project tree and writes two aggregated Markdown documents:
docs/full_code_reference.md with every source file in a fenced block, and
docs/full_docs_reference.md with every Markdown file under docs/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetDebug(debug)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// Execute runs the root command with the given logger. Errors are returned,
// not printed, so the caller reports them once.
func Execute(l *zap.Logger) error {
	if l != nil {
		logger = l
	}
	return RootCmd.Execute()
}
