package ports

import "hyperstack/internal/types"

// ComponentReport summarizes one resolved component for the sync
// report.
type ComponentReport struct {
	Name   string
	Kind   types.ComponentKind
	Mode   types.Mode
	Source types.SourceType
	Params map[string][]string
}

// ReportPort writes the machine-readable record of one sync.
type ReportPort interface {
	WriteResolutionReport(plan types.Plan, components []ComponentReport) error
}
