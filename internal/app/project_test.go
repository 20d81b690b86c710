package app

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hyperstack/internal/types"
)

func TestAddStandaloneRoutesByKind(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()

	require.NoError(t, h.service.AddStandalone(ctx, "zenoh"))
	require.NoError(t, h.service.AddStandalone(ctx, "zenoh-router"))

	require.Len(t, h.manifest.state.Dependencies.Standalone, 1)
	assert.Equal(t, "zenoh", h.manifest.state.Dependencies.Standalone[0].Name)
	require.Len(t, h.manifest.state.Services.Standalone, 1)
	assert.Equal(t, "zenoh-router", h.manifest.state.Services.Standalone[0].Name)
}

func TestAddStandaloneIsIdempotent(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()

	require.NoError(t, h.service.AddStandalone(ctx, "zenoh"))
	saves := h.manifest.saves
	require.NoError(t, h.service.AddStandalone(ctx, "zenoh"))

	assert.Len(t, h.manifest.state.Dependencies.Standalone, 1)
	assert.Equal(t, saves, h.manifest.saves)
}

func TestAddStandaloneUnknownComponent(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)

	err := h.service.AddStandalone(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestRemoveStandalone(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()
	require.NoError(t, h.service.AddStandalone(ctx, "zenoh"))

	require.NoError(t, h.service.RemoveStandalone(ctx, "zenoh"))
	assert.Empty(t, h.manifest.state.Dependencies.Standalone)

	err := h.service.RemoveStandalone(ctx, "zenoh")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestSelectGroupExactlyOneReplaces(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()

	require.NoError(t, h.service.SelectGroup(ctx, "messaging", "mqtt"))

	entry, ok := h.manifest.state.GroupSelectionFor("messaging")
	require.True(t, ok)
	assert.Equal(t, types.StringList{"mqtt"}, entry.Selection)
}

func TestSelectGroupCreatesEntry(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	h.registry.groups["routers"] = types.Group{
		Name:     "routers",
		Kind:     types.ComponentKindService,
		Strategy: types.StrategyAnySubset,
		Options:  []types.GroupOption{{Name: "zenoh-router"}},
	}

	require.NoError(t, h.service.SelectGroup(context.Background(), "routers", "zenoh-router"))

	require.Len(t, h.manifest.state.Services.Groups, 1)
	entry := h.manifest.state.Services.Groups[0]
	assert.Equal(t, "routers", entry.Group)
	assert.Equal(t, types.StrategyAnySubset, entry.Strategy)
	assert.Equal(t, types.StringList{"zenoh-router"}, entry.Selection)
}

func TestSelectGroupRejectsUnknownOption(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)

	err := h.service.SelectGroup(context.Background(), "messaging", "dds")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestDeselectGroupOptionDropsEmptyExactlyOneGroup(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)

	require.NoError(t, h.service.DeselectGroupOption(context.Background(), "messaging", "zenoh"))

	_, ok := h.manifest.state.GroupSelectionFor("messaging")
	assert.False(t, ok)
}

func TestRemoveGroup(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()

	require.NoError(t, h.service.RemoveGroup(ctx, "messaging"))
	assert.Empty(t, h.manifest.state.Dependencies.Groups)

	err := h.service.RemoveGroup(ctx, "messaging")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestSetModes(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()
	require.NoError(t, h.service.AddStandalone(ctx, "zenoh-router"))

	require.NoError(t, h.service.SetComponentMode(ctx, "zenoh-router", types.ModeDev))
	entry, _ := h.manifest.state.StandaloneFor("zenoh-router")
	assert.Equal(t, types.ModeDev, entry.Mode)

	require.NoError(t, h.service.SetGroupMode(ctx, "messaging", types.ModeDev))
	groupEntry, _ := h.manifest.state.GroupSelectionFor("messaging")
	assert.Equal(t, types.ModeDev, groupEntry.Mode)

	require.NoError(t, h.service.SetGlobalMode(ctx, types.ModeDev))
	assert.Equal(t, types.ModeDev, h.manifest.state.Project.Mode)
}

func TestSetModeRejectsUnknownMode(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)

	err := h.service.SetGlobalMode(context.Background(), "staging")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSetProfile(t *testing.T) {
	h := newTestHarness(t.TempDir())
	seedRoverStack(h)
	ctx := context.Background()
	require.NoError(t, h.service.AddStandalone(ctx, "zenoh-router"))

	require.NoError(t, h.service.SetProfile(ctx, "zenoh-router", "cloud"))
	entry, _ := h.manifest.state.StandaloneFor("zenoh-router")
	assert.Equal(t, "cloud", entry.Profile)

	// An empty profile clears the tag.
	require.NoError(t, h.service.SetProfile(ctx, "zenoh-router", ""))
	entry, _ = h.manifest.state.StandaloneFor("zenoh-router")
	assert.Equal(t, "", entry.Profile)

	err := h.service.SetProfile(ctx, "nowhere", "cloud")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestInitProjectCreatesManifestOnce(t *testing.T) {
	h := newTestHarness(t.TempDir())
	ctx := context.Background()

	result, err := h.service.InitProject(ctx, InitRequest{ProjectName: "rover"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ManifestPath)
	assert.Equal(t, "rover", h.manifest.state.Project.Name)

	// A second init leaves the manifest alone.
	h.manifest.state.Project.Version = "9.9.9"
	_, err = h.service.InitProject(ctx, InitRequest{ProjectName: "other"})
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", h.manifest.state.Project.Version)
}
