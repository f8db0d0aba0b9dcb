package core

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildstage/internal/types"
)

func TestBuildStagePlanFiltersSharedLibraries(t *testing.T) {
	listings := []types.ArtifactListing{
		{
			Name:    "glfw",
			Version: "3.4",
			Dir:     "cache/glfw/3.4/lib",
			Files:   []string{"cmake-config.cmake", "libglfw.a", "libglfw.so.3"},
		},
	}

	plan, err := BuildStagePlan(listings, "build/Release/bin")
	require.NoError(t, err)

	want := []types.StagedArtifact{
		{
			Name:        "glfw",
			Version:     "3.4",
			Source:      filepath.Join("cache/glfw/3.4/lib", "libglfw.so.3"),
			Destination: filepath.Join("build/Release/bin", "libglfw.so.3"),
		},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("unexpected plan (-want +got):\n%s", diff)
	}
}

func TestBuildStagePlanFirstDirectoryWins(t *testing.T) {
	// The same dependency may list a filename from several directories;
	// the first one keeps it.
	listings := []types.ArtifactListing{
		{Name: "boost", Version: "1.84.0", Dir: "cache/boost/1.84.0/lib", Files: []string{"libboost_json.so"}},
		{Name: "boost", Version: "1.84.0", Dir: "cache/boost/1.84.0/bin", Files: []string{"libboost_json.so"}},
	}

	plan, err := BuildStagePlan(listings, "out")
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, filepath.Join("cache/boost/1.84.0/lib", "libboost_json.so"), plan[0].Source)
}

func TestBuildStagePlanCollision(t *testing.T) {
	listings := []types.ArtifactListing{
		{Name: "zlib", Version: "1.3.1", Dir: "cache/zlib/1.3.1/lib", Files: []string{"libz.so.1"}},
		{Name: "zlib-ng", Version: "2.1.6", Dir: "cache/zlib-ng/2.1.6/lib", Files: []string{"libz.so.1"}},
	}

	plan, err := BuildStagePlan(listings, "out")
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.Contains(t, err.Error(), "staging collision: libz.so.1 provided by zlib")
	assert.Contains(t, err.Error(), "zlib-ng")
}

func TestBuildStagePlanEmpty(t *testing.T) {
	plan, err := BuildStagePlan(nil, "out")
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestNewToolchainDescription(t *testing.T) {
	settings := types.Settings{OS: "Linux", Compiler: "clang", BuildType: "Release", Arch: "x86_64"}

	description, err := NewToolchainDescription(settings, " Ninja ")
	require.NoError(t, err)

	want := types.ToolchainDescription{
		FormatVersion: types.ToolchainFormatVersion,
		Generator:     "Ninja",
		Settings:      settings,
	}
	if diff := cmp.Diff(want, description); diff != "" {
		t.Fatalf("unexpected description (-want +got):\n%s", diff)
	}
}

func TestNewToolchainDescriptionMissingSettings(t *testing.T) {
	_, err := NewToolchainDescription(types.Settings{Compiler: "clang"}, "Ninja")
	require.Error(t, err)
	// Missing names come in a fixed order.
	assert.Contains(t, err.Error(), "settings are required: os, build_type, arch")
}

func TestNewToolchainDescriptionEmptyGenerator(t *testing.T) {
	settings := types.Settings{OS: "Linux", Compiler: "clang", BuildType: "Release", Arch: "x86_64"}

	_, err := NewToolchainDescription(settings, "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator must not be empty")
}
