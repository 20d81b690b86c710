package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hyperstack/internal/types"
)

func newProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the project's selections and overrides",
	}
	cmd.AddCommand(newProjectAddCommand())
	cmd.AddCommand(newProjectRemoveCommand())
	cmd.AddCommand(newProjectSelectCommand())
	cmd.AddCommand(newProjectDeselectCommand())
	cmd.AddCommand(newProjectRemoveGroupCommand())
	cmd.AddCommand(newProjectModeCommand())
	cmd.AddCommand(newProjectProfileCommand())
	cmd.AddCommand(newProjectVerifyCommand())
	return cmd
}

func newProjectAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <component>",
		Short: "Add a standalone component to the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.AddStandalone(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("added %s\n", args[0])
			return nil
		},
	}
}

func newProjectRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <component>",
		Short: "Remove a standalone component from the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.RemoveStandalone(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", args[0])
			return nil
		},
	}
}

func newProjectSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <group> <option>",
		Short: "Select a group option (1-of-N replaces, M-of-N accumulates)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.SelectGroup(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("selected %s in group %s\n", args[1], args[0])
			return nil
		},
	}
}

func newProjectDeselectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deselect <group> <option>",
		Short: "Remove an option from a group's selection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.DeselectGroupOption(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("deselected %s from group %s\n", args[1], args[0])
			return nil
		},
	}
}

func newProjectRemoveGroupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-group <group>",
		Short: "Drop a group entry from the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.RemoveGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("removed group %s\n", args[0])
			return nil
		},
	}
}

func newProjectModeCommand() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "mode <name> <dev|prod>",
		Short: "Set an explicit mode override on an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			mode := types.Mode(args[1])
			var err error
			if resolveBool(cmd, group, "group", "group") {
				err = service.SetGroupMode(cmd.Context(), args[0], mode)
			} else {
				err = service.SetComponentMode(cmd.Context(), args[0], mode)
			}
			if err != nil {
				return err
			}
			fmt.Printf("mode of %s set to %s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Treat the name as a group entry")
	_ = viper.BindPFlag("group", cmd.Flags().Lookup("group"))
	return cmd
}

func newProjectProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <entry> <profile>",
		Short: "Attach a deployment profile to a group or standalone entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.SetProfile(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("profile of %s set to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newProjectVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare the live environment against the current plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.VerifySync(cmd.Context())
			if err != nil {
				return err
			}
			if len(result.MissingPackages) == 0 && len(result.MissingServices) == 0 {
				fmt.Println("environment matches the plan")
				return nil
			}
			for _, name := range result.MissingPackages {
				fmt.Printf("missing package: %s\n", name)
			}
			for _, name := range result.MissingServices {
				fmt.Printf("missing service: %s\n", name)
			}
			return nil
		},
	}
}
