package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/aesctr/internal/config"
	"github.com/idelchi/aesctr/internal/logging"
	"github.com/idelchi/aesctr/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] [input [output]]",
		Aliases: []string{"enc"},
		Short:   "Encrypt a file",
		Args:    cobra.MaximumNArgs(2), //nolint:mnd // input and output
		PreRunE: preRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if done, err := show(cmd, cfg); done {
				return err
			}

			return logic.Run(cfg, logging.New(cfg.Verbose, cfg.Quiet))
		},
	}
}
