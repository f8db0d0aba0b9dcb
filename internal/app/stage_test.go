package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildstage/internal/adapters"
)

func TestStageApp(t *testing.T) {
	buildRoot := t.TempDir()

	result, err := NewService().Stage(t.Context(), StageRequest{
		BuildfilePath: fixturePath(t, "buildfile.yaml"),
		BuildRoot:     buildRoot,
	})
	require.NoError(t, err)

	assert.Equal(t, "Release", result.BuildType)
	// glfw, boost.json, imgui and zlib ship shared objects; catch2 is
	// static only and cmake is a build tool.
	assert.Equal(t, 4, result.Copied)
	assert.Len(t, result.Staged, 4)

	binDir := filepath.Join(buildRoot, "Release", "bin")
	for _, name := range []string{"libglfw.so.3", "libboost_json.so", "libimgui.so", "libz.so.1"} {
		if _, err := os.Stat(filepath.Join(binDir, name)); err != nil {
			t.Fatalf("expected staged library %s: %v", name, err)
		}
	}
	entries, err := os.ReadDir(binDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	manifest, err := adapters.NewOutputReaderAdapter(buildRoot).ReadStageManifest("Release")
	require.NoError(t, err)
	assert.Len(t, manifest, 4)
}

func TestStageAppRerun(t *testing.T) {
	buildRoot := t.TempDir()
	request := StageRequest{
		BuildfilePath: fixturePath(t, "buildfile.yaml"),
		BuildRoot:     buildRoot,
	}
	service := NewService()

	first, err := service.Stage(t.Context(), request)
	require.NoError(t, err)
	second, err := service.Stage(t.Context(), request)
	require.NoError(t, err)
	assert.Equal(t, first.Copied, second.Copied)
}

func TestStageAppMissingBuildType(t *testing.T) {
	dir := t.TempDir()
	path := writeTempBuildfile(t, dir, `
api_version: v1
project:
  name: demo
  version: 0.1.0
defaults:
  os: Linux
  compiler: clang
  arch: x86_64
  catalog: catalog.yaml
`)

	_, err := NewService().Stage(t.Context(), StageRequest{BuildfilePath: path, BuildRoot: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build_type setting is required for staging")
}
