package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hyperstack/internal/app"
)

func newSyncCommand() *cobra.Command {
	var frozen bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Resolve the manifest and synchronize packages and services",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.Sync(cmd.Context(), app.SyncRequest{
				Frozen: resolveBool(cmd, frozen, "frozen", "frozen"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("synced %s: %d requirements, %d services\n",
				result.ProjectName, result.Requirements, result.Services)
			return nil
		},
	}
	cmd.Flags().BoolVar(&frozen, "frozen", false, "Do not update the lockfile during sync")
	_ = viper.BindPFlag("frozen", cmd.Flags().Lookup("frozen"))
	return cmd
}
