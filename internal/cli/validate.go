package cli

import (
	"github.com/spf13/cobra"

	"github.com/gork-labs/tsdox/internal/validator"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check the shape of a previously generated document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return validator.ValidateFile(args[0], cmd.OutOrStdout())
		},
	}
}
