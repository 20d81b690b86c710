package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest against the registry without syncing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.Check(cmd.Context())
			for _, issue := range result.Issues {
				fmt.Printf("  %s\n", issue)
			}
			if err != nil {
				return err
			}
			fmt.Println("all checks passed")
			return nil
		},
	}
}
