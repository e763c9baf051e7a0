package cmd

import (
	"errors"
	"fmt"
	"os"

	"refgen/pkg/policy"
	"refgen/pkg/reference"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConfigEnv names the policy file used when --config is not given.
const ConfigEnv = "REFGEN_CONFIG"

var codeArgs struct {
	output string
	config string
	check  bool
}

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Generate the full code reference",
	Long: `Render every source file admitted by the inclusion policy into
docs/full_code_reference.md. Sections of unchanged files are copied from the
previous document byte for byte.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPolicy(codeArgs.config)
		if err != nil {
			return err
		}

		res, err := reference.Code(reference.Options{
			Root:   rootDir,
			Output: codeArgs.output,
			Check:  codeArgs.check,
		}, p, logger)
		return report(cmd, res, err)
	},
}

func init() {
	codeCmd.Flags().StringVarP(&codeArgs.output, "output", "o", "", "Output file (default <root>/docs/full_code_reference.md)")
	codeCmd.Flags().StringVarP(&codeArgs.config, "config", "c", "", "YAML inclusion policy (default $"+ConfigEnv+", else built-in)")
	codeCmd.Flags().BoolVar(&codeArgs.check, "check", false, "Fail if the document on disk is out of date instead of writing it")

	RootCmd.AddCommand(codeCmd)
}

// loadPolicy reads the policy file named by path or ConfigEnv, falling back
// to the built-in default.
func loadPolicy(path string) (policy.Policy, error) {
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return policy.Default(), nil
	}

	p, err := policy.Load(path)
	if err != nil {
		logger.Error("Failed to load inclusion policy", zap.String("file", path), zap.Error(err))
		return policy.Policy{}, err
	}
	logger.Debug("Loaded inclusion policy", zap.String("file", path))
	return p, nil
}

// report prints the diff of a stale document before handing err back.
func report(cmd *cobra.Command, res reference.Result, err error) error {
	if errors.Is(err, reference.ErrStale) {
		fmt.Fprint(cmd.ErrOrStderr(), res.Diff)
	}
	return err
}
