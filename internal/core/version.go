package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// ValidateVersion checks a component version against PEP 440.  The
// materialized requirements target a Python package manager, so that is
// the only version grammar in the system.
func ValidateVersion(raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version must not be empty")
	}
	if _, err := pep440.Parse(value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", value)).
			WithCause(err)
	}
	return nil
}

// ValidateSpecifier checks a package-reference specifier set such as
// ">=1.26,<2.0".  An empty specifier is allowed and means "any".
func ValidateSpecifier(raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if _, err := pep440.NewSpecifiers(value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version specifier %q", value)).
			WithCause(err)
	}
	return nil
}
