package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hyperstack/internal/ports"
	"hyperstack/internal/types"
)

// ReportFileName records the outcome of the last sync in machine
// readable form.
const ReportFileName = "hsm-report.json"

type ReportFileAdapter struct {
	Dir   string
	Clock func() time.Time
}

func NewReportFileAdapter(dir string, clock func() time.Time) ReportFileAdapter {
	if clock == nil {
		clock = time.Now
	}
	return ReportFileAdapter{Dir: dir, Clock: clock}
}

type reportComponent struct {
	Name   string              `json:"name"`
	Kind   string              `json:"kind"`
	Mode   string              `json:"mode"`
	Source string              `json:"source"`
	Params map[string][]string `json:"params,omitempty"`
}

type reportService struct {
	Name          string `json:"name"`
	ContainerName string `json:"container_name"`
	Image         string `json:"image,omitempty"`
	BuildContext  string `json:"build_context,omitempty"`
}

type resolutionReport struct {
	GeneratedAt  string            `json:"generated_at"`
	Requirements []string          `json:"requirements"`
	Services     []reportService   `json:"services"`
	Components   []reportComponent `json:"components"`
}

func (a ReportFileAdapter) WriteResolutionReport(plan types.Plan, components []ports.ComponentReport) error {
	report := resolutionReport{
		GeneratedAt:  a.Clock().UTC().Format(time.RFC3339),
		Requirements: plan.RequirementStrings(),
	}
	for _, service := range plan.Services {
		entry := reportService{
			Name:          service.Name,
			ContainerName: service.ContainerName,
			Image:         service.Image,
		}
		if service.Build != nil {
			entry.BuildContext = service.Build.Context
		}
		report.Services = append(report.Services, entry)
	}
	for _, component := range components {
		report.Components = append(report.Components, reportComponent{
			Name:   component.Name,
			Kind:   string(component.Kind),
			Mode:   string(component.Mode),
			Source: string(component.Source),
			Params: component.Params,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize resolution report").
			WithCause(err)
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	return os.WriteFile(filepath.Join(a.Dir, ReportFileName), append(data, '\n'), 0644)
}

var _ ports.ReportPort = ReportFileAdapter{}
