package types

// Requirement is one materialized library dependency, rendered as a
// requirement string the package manager understands.
type Requirement struct {
	Name string
	Spec string
}

// BuildSpec is the build arm of a service spec: a context directory and
// an optional alternate Dockerfile name.
type BuildSpec struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
}

// ServiceSpec is one materialized service, ready for the container
// engine.  Exactly one of Image and Build is populated.
type ServiceSpec struct {
	Name           string
	ContainerName  string
	Image          string
	Build          *BuildSpec
	Ports          []string
	Volumes        []string
	NetworkAliases []string
	Env            map[string]string
}

// Plan is the output of one resolution pass: the two disjoint artifacts
// handed to the package and container adapters.  Slices are ordered and
// name-unique.
type Plan struct {
	Requirements []Requirement
	Services     []ServiceSpec
}

// RequirementStrings returns the requirement specs in plan order.
func (p Plan) RequirementStrings() []string {
	out := make([]string, 0, len(p.Requirements))
	for _, req := range p.Requirements {
		out = append(out, req.Spec)
	}
	return out
}

type IssueCode string

const (
	IssueNotFound         IssueCode = "not-found"
	IssueInvalidSelection IssueCode = "invalid-selection"
	IssueEmptySelection   IssueCode = "empty-selection"
)

// ValidationIssue is one referential-integrity violation found during a
// dry-run check.
type ValidationIssue struct {
	Code    IssueCode
	Subject string
	Detail  string
}

func (i ValidationIssue) String() string {
	return string(i.Code) + ": " + i.Subject + ": " + i.Detail
}
