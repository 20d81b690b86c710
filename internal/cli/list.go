package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyperstack/internal/app"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current stack: groups, selections, and modes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", result.Project.Name, result.Project.Version)
			printStatusSection("dependencies", result.Dependencies)
			printStatusSection("services", result.Services)
			return nil
		},
	}
}

func printStatusSection(title string, section app.StatusSection) {
	fmt.Printf("%s:\n", title)
	for _, group := range section.Groups {
		suffix := ""
		if group.Profile != "" {
			suffix = fmt.Sprintf(" (profile: %s)", group.Profile)
		}
		fmt.Printf("  [%s] %s%s\n", group.Strategy, group.Group, suffix)
		for _, entry := range group.Selection {
			fmt.Printf("    %s (%s)\n", entry.Name, entry.Mode)
		}
	}
	for _, entry := range section.Standalone {
		fmt.Printf("  %s (%s)\n", entry.Name, entry.Mode)
	}
}
