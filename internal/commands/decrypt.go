package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/logging"
	"github.com/idelchi/aesctr/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
// CTR decryption is the encryption transform; only the default output name differs.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] [input [output]]",
		Aliases: []string{"dec"},
		Short:   "Decrypt a file",
		Args:    cobra.MaximumNArgs(2), //nolint:mnd // input and output
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := preRun(cfg)(cmd, args); err != nil {
				return err
			}

			cfg.Decrypt = true

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if done, err := show(cmd, cfg); done {
				return err
			}

			return logic.Run(cfg, logging.New(cfg.Verbose, cfg.Quiet))
		},
	}
}
