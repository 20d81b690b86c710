package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyperstack/internal/types"
)

func newModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mode <dev|prod>",
		Short: "Set the project-wide default mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.SetGlobalMode(cmd.Context(), types.Mode(args[0])); err != nil {
				return err
			}
			fmt.Printf("global mode set to %s\n", args[0])
			return nil
		},
	}
}
