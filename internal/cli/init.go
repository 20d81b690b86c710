package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyperstack/internal/app"
)

func newInitCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a project manifest and registry layout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.InitProject(cmd.Context(), app.InitRequest{ProjectName: name})
			if err != nil {
				return err
			}
			fmt.Printf("manifest: %s\nregistry: %s\n", result.ManifestPath, result.RegistryPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name (defaults to directory name)")
	return cmd
}
