package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up [services...]",
		Short: "Regenerate the orchestration config and start services",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.Up(cmd.Context(), args); err != nil {
				return err
			}
			fmt.Println("services started")
			return nil
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Stop the orchestrated services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			if err := service.Down(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("services stopped")
			return nil
		},
	}
}
