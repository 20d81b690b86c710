package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hyperstack/internal/app"
	"hyperstack/internal/types"
)

func newRegistryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage registry components and groups",
	}
	cmd.AddCommand(newRegistryAddLibraryCommand())
	cmd.AddCommand(newRegistryAddServiceCommand())
	cmd.AddCommand(newRegistryAddGroupCommand())
	cmd.AddCommand(newRegistryAddOptionCommand())
	cmd.AddCommand(newRegistryRemoveOptionCommand())
	cmd.AddCommand(newRegistryRemoveCommand())
	cmd.AddCommand(newRegistryShowCommand())
	cmd.AddCommand(newRegistryInitLibraryCommand())
	return cmd
}

type sourceFlags struct {
	Local    string
	Editable bool
	GitURL   string
	GitRef   string
	Package  string
	Image    string
	Build    string
}

func (f sourceFlags) variant() (*types.SourceVariant, error) {
	variant := &types.SourceVariant{}
	switch {
	case f.Local != "":
		variant.Local = &types.LocalSource{Path: f.Local, Editable: f.Editable}
	case f.GitURL != "":
		variant.Git = &types.GitSource{URL: f.GitURL, Ref: f.GitRef}
	case f.Package != "":
		variant.Package = &types.PackageSource{Specifier: f.Package}
	case f.Image != "":
		variant.Image = &types.ImageSource{Ref: f.Image}
	case f.Build != "":
		variant.Build = &types.BuildSource{Context: f.Build}
	default:
		return nil, nil
	}
	if err := variant.Validate(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(err.Error())
	}
	return variant, nil
}

func addSourceFlags(cmd *cobra.Command, prefix string, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.Local, prefix+"-local", "", "Local path source")
	cmd.Flags().BoolVar(&flags.Editable, prefix+"-editable", false, "Install the local source editable")
	cmd.Flags().StringVar(&flags.GitURL, prefix+"-git", "", "Git URL source")
	cmd.Flags().StringVar(&flags.GitRef, prefix+"-ref", "", "Git ref for the git source")
	cmd.Flags().StringVar(&flags.Package, prefix+"-package", "", "Package version specifier source")
	cmd.Flags().StringVar(&flags.Image, prefix+"-image", "", "Container image source")
	cmd.Flags().StringVar(&flags.Build, prefix+"-build", "", "Build context source")
}

func newRegistryAddLibraryCommand() *cobra.Command {
	var version, description string
	prod := sourceFlags{}
	dev := sourceFlags{}
	cmd := &cobra.Command{
		Use:   "add-library <name>",
		Short: "Add a library definition to the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prodVariant, err := prod.variant()
			if err != nil {
				return err
			}
			devVariant, err := dev.variant()
			if err != nil {
				return err
			}
			service := newAppService()
			def := types.ComponentDefinition{
				Name:        args[0],
				Kind:        types.ComponentKindLibrary,
				Version:     version,
				Description: description,
				Sources:     types.ComponentSources{Prod: prodVariant, Dev: devVariant},
			}
			if err := service.RegistryAddComponent(cmd.Context(), def); err != nil {
				return err
			}
			fmt.Printf("library %s added\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&version, "version", "0.1.0", "Component version")
	cmd.Flags().StringVar(&description, "description", "", "Component description")
	addSourceFlags(cmd, "prod", &prod)
	addSourceFlags(cmd, "dev", &dev)
	return cmd
}

func newRegistryAddServiceCommand() *cobra.Command {
	var description, containerName string
	var ports, volumes, aliases, env []string
	prod := sourceFlags{}
	dev := sourceFlags{}
	cmd := &cobra.Command{
		Use:   "add-service <name>",
		Short: "Add a service definition to the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prodVariant, err := prod.variant()
			if err != nil {
				return err
			}
			devVariant, err := dev.variant()
			if err != nil {
				return err
			}
			envMap, err := parseEnvPairs(env)
			if err != nil {
				return err
			}
			service := newAppService()
			def := types.ComponentDefinition{
				Name:        args[0],
				Kind:        types.ComponentKindService,
				Description: description,
				Common: types.RuntimeSettings{
					ContainerName:  containerName,
					NetworkAliases: aliases,
					Ports:          ports,
					Volumes:        volumes,
					Env:            envMap,
				},
				Sources: types.ComponentSources{Prod: prodVariant, Dev: devVariant},
			}
			if err := service.RegistryAddComponent(cmd.Context(), def); err != nil {
				return err
			}
			fmt.Printf("service %s added\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Component description")
	cmd.Flags().StringVar(&containerName, "container-name", "", "Container name")
	cmd.Flags().StringSliceVar(&ports, "port", nil, "Port mapping (repeatable)")
	cmd.Flags().StringSliceVar(&volumes, "volume", nil, "Volume mapping (repeatable)")
	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "Network alias (repeatable)")
	cmd.Flags().StringSliceVar(&env, "env", nil, "Environment entry KEY=VALUE (repeatable)")
	addSourceFlags(cmd, "prod", &prod)
	addSourceFlags(cmd, "dev", &dev)
	return cmd
}

func newRegistryAddGroupCommand() *cobra.Command {
	var kind, strategy string
	var options []string
	cmd := &cobra.Command{
		Use:   "add-group <name>",
		Short: "Add a group definition to the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			group := types.Group{
				Name:     args[0],
				Kind:     types.ComponentKind(kind),
				Strategy: types.GroupStrategy(strategy),
			}
			for _, option := range options {
				group.Options = append(group.Options, types.GroupOption{Name: option})
			}
			if err := service.RegistryAddGroup(cmd.Context(), group); err != nil {
				return err
			}
			fmt.Printf("group %s added\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "library", "Group kind (library or service)")
	cmd.Flags().StringVar(&strategy, "strategy", "1-of-N", "Selection strategy (1-of-N or M-of-N)")
	cmd.Flags().StringSliceVar(&options, "option", nil, "Group option (repeatable)")
	return cmd
}

func newRegistryAddOptionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-option <group> <option>",
		Short: "Append an option to a registry group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.RegistryAddOption(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("option %s added to group %s\n", args[1], args[0])
			return nil
		},
	}
}

func newRegistryRemoveOptionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-option <group> <option>",
		Short: "Remove an option from a registry group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.RegistryRemoveOption(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("option %s removed from group %s\n", args[1], args[0])
			return nil
		},
	}
}

func newRegistryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a component or group from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if err := service.RegistryRemove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("%s removed from registry\n", args[0])
			return nil
		},
	}
}

func newRegistryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a registry entry as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			if def, err := service.ShowComponent(args[0]); err == nil {
				return printYAML(def)
			}
			group, err := service.ShowGroup(args[0])
			if err != nil {
				return err
			}
			return printYAML(group)
		},
	}
}

func newRegistryInitLibraryCommand() *cobra.Command {
	var path string
	var register bool
	cmd := &cobra.Command{
		Use:   "init-library <name>",
		Short: "Scaffold a local library and register it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newAppService()
			result, err := service.InitLibrary(cmd.Context(), app.InitLibraryRequest{
				Name:     args[0],
				Path:     path,
				Register: register,
			})
			if err != nil {
				return err
			}
			fmt.Printf("library %s initialized at %s\n", args[0], result.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Library path (defaults to packages/<name>)")
	cmd.Flags().BoolVar(&register, "register", true, "Register the library with local prod/dev sources")
	return cmd
}

func parseEnvPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := cutPair(pair)
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("env entry %q is not KEY=VALUE", pair))
		}
		out[key] = value
	}
	return out, nil
}

func cutPair(pair string) (string, string, bool) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:], true
		}
	}
	return "", "", false
}

func printYAML(value interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
