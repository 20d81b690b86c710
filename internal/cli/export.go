package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyperstack/internal/app"
)

func newExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the resolved requirements as requirements.txt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.Export(cmd.Context(), app.ExportRequest{OutputPath: output})
			if err != nil {
				return err
			}
			fmt.Printf("wrote %d requirements to %s\n", result.Requirements, result.OutputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "Output path (defaults to <project-root>/requirements.txt)")
	return cmd
}
