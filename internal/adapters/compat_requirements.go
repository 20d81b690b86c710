package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hyperstack/internal/types"
)

// CompatRequirementsAdapter emits a plain requirements.txt for tooling
// that bypasses the package manager (CI caches, scanners).
type CompatRequirementsAdapter struct {
	Path string
}

func NewCompatRequirementsAdapter(path string) CompatRequirementsAdapter {
	return CompatRequirementsAdapter{Path: path}
}

func (a CompatRequirementsAdapter) WriteRequirements(requirements []types.Requirement) error {
	if strings.TrimSpace(a.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("requirements output path is empty")
	}
	var lines []string
	for _, req := range requirements {
		lines = append(lines, req.Spec)
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return os.WriteFile(a.Path, []byte(content), 0644)
}
