package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/logging"
	"github.com/idelchi/aesctr/internal/selftest"
)

// NewSelftestCommand creates a command running the cipher known-answer tests.
func NewSelftestCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the cipher known-answer tests",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := selftest.Run(logging.New(cfg.Verbose, cfg.Quiet)); err != nil {
				return fmt.Errorf("self-test: %w", err)
			}

			return nil
		},
	}
}
