package app

import "hyperstack/internal/types"

type InitRequest struct {
	ProjectName string
}

type InitResult struct {
	ManifestPath string
	RegistryPath string
}

type CheckResult struct {
	Issues []types.ValidationIssue
}

// ComponentSummary describes one expanded component in a plan: its
// effective mode, source kind, and merged implication parameters.
type ComponentSummary struct {
	Name   string
	Kind   types.ComponentKind
	Mode   types.Mode
	Source types.SourceType
	Params map[string][]string
}

type PlanResult struct {
	ProjectName string
	Plan        types.Plan
	Components  []ComponentSummary
}

type SyncRequest struct {
	Frozen bool
}

type SyncResult struct {
	ProjectName  string
	Requirements int
	Services     int
}

// VerifyResult lists plan entries the live environment is missing.
type VerifyResult struct {
	MissingPackages []string
	MissingServices []string
}

type SearchResult struct {
	Libraries []string
	Services  []string
	Groups    []string
}

// StatusGroup is one group line in the status tree.
type StatusGroup struct {
	Group     string
	Strategy  types.GroupStrategy
	Selection []StatusEntry
	Profile   string
}

// StatusEntry is one component line in the status tree.
type StatusEntry struct {
	Name string
	Mode types.Mode
}

// StatusSection holds the status tree of one component kind.
type StatusSection struct {
	Groups     []StatusGroup
	Standalone []StatusEntry
}

type StatusResult struct {
	Project      types.ProjectInfo
	Dependencies StatusSection
	Services     StatusSection
}

type InitLibraryRequest struct {
	Name     string
	Path     string
	Register bool
}

type InitLibraryResult struct {
	Path string
}

type ExportRequest struct {
	OutputPath string
}

type ExportResult struct {
	OutputPath   string
	Requirements int
}
