package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/aesctr/internal/config"
)

// preRun returns a PreRunE handler that resolves the positional [input [output]]
// arguments into the loaded cfg and validates the result.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Input = args[0]
		}

		if len(args) > 1 {
			cfg.Output = args[1]
		}

		if cfg.Show {
			return nil
		}

		return cfg.Validate()
	}
}

// show prints the configuration and reports whether the command should stop.
func show(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	if !cfg.Show {
		return false, nil
	}

	out, err := cfg.Display()
	if err != nil {
		return true, err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)

	return true, nil
}
