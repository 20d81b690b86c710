// Package testutil provides shared helpers for the integration and e2e
// test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteRegistryEntry writes one raw YAML registry definition under the
// given category directory (libraries, services, library_groups,
// service_groups).
func WriteRegistryEntry(t *testing.T, registryRoot string, category string, name string, doc string) {
	t.Helper()
	dir := filepath.Join(registryRoot, category)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(doc), 0644))
}

// WriteManifest writes the raw hsm.yaml manifest into the project root.
func WriteManifest(t *testing.T, projectRoot string, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(projectRoot, "hsm.yaml"), []byte(doc), 0644))
}
