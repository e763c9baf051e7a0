package cmd

import (
	"refgen/pkg/reference"

	"github.com/spf13/cobra"
)

var docsArgs struct {
	output string
	check  bool
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate the full docs reference",
	Long: `Concatenate every Markdown file under docs/ into
docs/full_docs_reference.md. The exampleproject subtree and both generated
references are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := reference.Docs(reference.Options{
			Root:   rootDir,
			Output: docsArgs.output,
			Check:  docsArgs.check,
		}, logger)
		return report(cmd, res, err)
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsArgs.output, "output", "o", "", "Output file (default <root>/docs/full_docs_reference.md)")
	docsCmd.Flags().BoolVar(&docsArgs.check, "check", false, "Fail if the document on disk is out of date instead of writing it")

	RootCmd.AddCommand(docsCmd)
}
