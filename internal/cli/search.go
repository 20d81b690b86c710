package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the registry for components and groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			result, err := service.Search(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("libraries: %s\n", joinOrDash(result.Libraries))
			fmt.Printf("services:  %s\n", joinOrDash(result.Services))
			fmt.Printf("groups:    %s\n", joinOrDash(result.Groups))
			return nil
		},
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
