package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hyperstack/internal/app"
)

func newPlanCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the manifest and print the materialization plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := newAppService()
			result, err := service.Plan(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printPlanJSON(result)
			}
			printPlanText(result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	return cmd
}

func printPlanText(result app.PlanResult) {
	fmt.Printf("plan for %s\n", result.ProjectName)
	fmt.Printf("requirements (%d):\n", len(result.Plan.Requirements))
	for _, req := range result.Plan.Requirements {
		fmt.Printf("  %s\n", req.Spec)
	}
	fmt.Printf("services (%d):\n", len(result.Plan.Services))
	for _, service := range result.Plan.Services {
		target := service.Image
		if service.Build != nil {
			target = "build:" + service.Build.Context
		}
		fmt.Printf("  %s -> %s\n", service.Name, target)
	}
	var withParams []string
	for _, component := range result.Components {
		if len(component.Params) > 0 {
			withParams = append(withParams, component.Name)
		}
	}
	if len(withParams) > 0 {
		fmt.Printf("merged parameters: %s\n", strings.Join(withParams, ", "))
	}
}

func printPlanJSON(result app.PlanResult) error {
	type jsonService struct {
		Name          string            `json:"name"`
		ContainerName string            `json:"container_name"`
		Image         string            `json:"image,omitempty"`
		BuildContext  string            `json:"build_context,omitempty"`
		Ports         []string          `json:"ports,omitempty"`
		Env           map[string]string `json:"env,omitempty"`
	}
	type jsonPlan struct {
		Project      string        `json:"project"`
		Requirements []string      `json:"requirements"`
		Services     []jsonService `json:"services"`
	}
	out := jsonPlan{
		Project:      result.ProjectName,
		Requirements: result.Plan.RequirementStrings(),
	}
	for _, service := range result.Plan.Services {
		entry := jsonService{
			Name:          service.Name,
			ContainerName: service.ContainerName,
			Image:         service.Image,
			Ports:         service.Ports,
			Env:           service.Env,
		}
		if service.Build != nil {
			entry.BuildContext = service.Build.Context
		}
		out.Services = append(out.Services, entry)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
