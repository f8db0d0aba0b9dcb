package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildstage/internal/types"
)

func TestManifestFileAdapter_LoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "buildfile.yaml")
	content := `
api_version: v1
project:
  name: vulkan-renderer
  version: 0.1.0
generator: Ninja
defaults:
  os: Linux
  compiler: clang
  build_type: Release
  arch: x86_64
  catalog: catalog.yaml
  build_root: build
requires:
  - name: glfw
    version: ">=3.3"
    options:
      shared: true
  - name: boost
    version: "==1.84.0"
tool_requires:
  - name: cmake
    version: ">=3.28"
options:
  "*":
    fPIC: true
  imgui:
    docking: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	manifest, err := NewManifestFileAdapter().LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "v1", manifest.APIVersion)
	assert.Equal(t, "vulkan-renderer", manifest.Project.Name)
	assert.Equal(t, "0.1.0", manifest.Project.Version)
	assert.Equal(t, "Ninja", manifest.Generator)
	assert.Equal(t, "Linux", manifest.Defaults.OS)
	assert.Equal(t, "catalog.yaml", manifest.Defaults.Catalog)
	require.Len(t, manifest.Requires, 2)
	assert.Equal(t, "glfw", manifest.Requires[0].Name)
	assert.Equal(t, ">=3.3", manifest.Requires[0].Version)
	// Bools canonicalize to their lowercase string spelling.
	assert.Equal(t, types.OptionMap{"shared": "true"}, manifest.Requires[0].Options)
	require.Len(t, manifest.ToolRequires, 1)
	assert.Equal(t, "cmake", manifest.ToolRequires[0].Name)
	assert.Equal(t, types.OptionMap{"fPIC": "true"}, manifest.Options["*"])
	assert.Equal(t, types.OptionMap{"docking": "true"}, manifest.Options["imgui"])
}

func TestManifestFileAdapter_MissingFile(t *testing.T) {
	_, err := NewManifestFileAdapter().LoadManifest("/nonexistent/buildfile.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buildfile not found")
}

func TestManifestFileAdapter_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildfile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{{invalid"), 0o644))

	_, err := NewManifestFileAdapter().LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse buildfile yaml")
}

func TestManifestFileAdapter_RejectsNonScalarOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildfile.yaml")
	content := `
api_version: v1
project:
  name: demo
  version: 0.1.0
requires:
  - name: glfw
    options:
      shared: [true, false]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewManifestFileAdapter().LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse buildfile yaml")
}
