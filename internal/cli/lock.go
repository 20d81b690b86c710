package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Regenerate the package manager lockfile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			if err := service.Lock(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("lockfile updated")
			return nil
		},
	}
}
