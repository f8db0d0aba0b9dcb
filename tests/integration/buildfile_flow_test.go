package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildstage/internal/adapters"
	"buildstage/internal/core"
	"buildstage/internal/policies"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

// TestBuildfileFlow exercises the single-directory workflow:
//
//	write buildfile -> load -> validate -> compile -> resolve -> toolchain -> stage
//
// This verifies the full pipeline a new user would follow after writing
// their first buildfile next to a package cache.
func TestBuildfileFlow(t *testing.T) {
	dir := t.TempDir()

	// Step 1: Write a buildfile with inline defaults and options.
	buildfileContent := `
api_version: v1
project:
  name: flow-test
  version: 0.1.0
generator: Ninja
defaults:
  os: Linux
  compiler: gcc
  build_type: Release
  arch: x86_64
  catalog: catalog.yaml
requires:
  - name: glfw
    version: ">=3.3"
tool_requires:
  - name: ninja
    version: ">=1.11"
options:
  "*":
    shared: true
`
	buildfilePath := filepath.Join(dir, "buildfile.yaml")
	require.NoError(t, os.WriteFile(buildfilePath, []byte(buildfileContent), 0644))

	// Step 2: Write a catalog describing a small cache next to it.
	catalogContent := `
packages:
  glfw:
    "3.3.8":
      artifact_dirs:
        - cache/glfw/3.3.8/lib
    "3.4":
      requires:
        - zlib>=1.2.11
      artifact_dirs:
        - cache/glfw/3.4/lib
  ninja:
    "1.11.1": {}
  zlib:
    "1.2.13":
      artifact_dirs:
        - cache/zlib/1.2.13/lib
`
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogContent), 0644))

	glfwLib := filepath.Join(dir, "cache", "glfw", "3.4", "lib")
	zlibLib := filepath.Join(dir, "cache", "zlib", "1.2.13", "lib")
	require.NoError(t, os.MkdirAll(glfwLib, 0755))
	require.NoError(t, os.MkdirAll(zlibLib, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(glfwLib, "libglfw.so.3"), []byte("glfw"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(glfwLib, "libglfw.a"), []byte("static"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(zlibLib, "libz.so.1"), []byte("zlib"), 0644))

	// Step 3: Load the buildfile.
	manifest, err := adapters.NewManifestFileAdapter().LoadManifest(buildfilePath)
	require.NoError(t, err)

	// Step 4: Verify defaults were parsed correctly.
	assert.Equal(t, "Linux", manifest.Defaults.OS)
	assert.Equal(t, "gcc", manifest.Defaults.Compiler)
	assert.Equal(t, "Release", manifest.Defaults.BuildType)
	assert.Equal(t, "x86_64", manifest.Defaults.Arch)
	assert.Equal(t, "catalog.yaml", manifest.Defaults.Catalog)
	assert.Equal(t, "Ninja", manifest.Generator)

	// Step 5: Validate and compile the requirement set.
	compiler := core.NewManifestCompiler()
	require.NoError(t, compiler.ValidateManifest(t.Context(), manifest))
	requirements, err := compiler.CompileRequirements(t.Context(), manifest)
	require.NoError(t, err)
	require.Len(t, requirements, 2)
	assert.Equal(t, types.DependencyKindLibrary, requirements[0].Kind)
	assert.Equal(t, types.DependencyKindTool, requirements[1].Kind)

	// Step 6: Build the option table and resolve.
	table := policies.NewOptionTable()
	for _, pattern := range shared.SortedKeys(manifest.Options) {
		for _, key := range shared.SortedKeys(manifest.Options[pattern]) {
			require.NoError(t, table.Set(pattern, key, string(manifest.Options[pattern][key])))
		}
	}
	settings := types.Settings{
		OS:        manifest.Defaults.OS,
		Compiler:  manifest.Defaults.Compiler,
		BuildType: manifest.Defaults.BuildType,
		Arch:      manifest.Defaults.Arch,
	}
	resolver := core.NewResolverCore(adapters.NewCatalogFileAdapter(catalogPath), table)
	resolved, err := resolver.Resolve(t.Context(), requirements, settings)
	require.NoError(t, err)

	require.Len(t, resolved, 3)
	pins := map[string]string{}
	tools := map[string]bool{}
	for _, dep := range resolved {
		pins[dep.Name] = dep.Version
		tools[dep.Name] = dep.IsBuildTool
	}
	assert.Equal(t, "3.4", pins["glfw"])
	assert.Equal(t, "1.11.1", pins["ninja"])
	assert.Equal(t, "1.2.13", pins["zlib"], "zlib arrives through glfw's recipe")
	assert.True(t, tools["ninja"])
	assert.False(t, tools["zlib"])

	// Step 7: Emit the toolchain for the merged settings.
	buildRoot := filepath.Join(dir, "build")
	description, err := core.NewToolchainDescription(settings, manifest.Generator)
	require.NoError(t, err)
	toolchainPath := filepath.Join(buildRoot, settings.BuildType, "toolchain.json")
	require.NoError(t, adapters.NewToolchainFileAdapter().WriteToolchain(description, toolchainPath))
	require.FileExists(t, toolchainPath)

	// Step 8: Plan and copy the stage. Tools are skipped; only shared
	// libraries move.
	stager := adapters.NewStagerFSAdapter()
	var listings []types.ArtifactListing
	for _, dep := range resolved {
		if dep.IsBuildTool {
			continue
		}
		depListings, err := stager.ListArtifacts(dep)
		require.NoError(t, err)
		listings = append(listings, depListings...)
	}
	binDir := filepath.Join(buildRoot, settings.BuildType, "bin")
	plan, err := core.BuildStagePlan(listings, binDir)
	require.NoError(t, err)
	copied, err := stager.CopyArtifacts(t.Context(), plan)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	require.FileExists(t, filepath.Join(binDir, "libglfw.so.3"))
	require.FileExists(t, filepath.Join(binDir, "libz.so.1"))
	assert.NoFileExists(t, filepath.Join(binDir, "libglfw.a"), "static archives are not staged")

	// Step 9: Write the resolution outputs and read them back.
	output := adapters.NewOutputFileAdapter(buildRoot)
	locks := make([]types.LockEntry, 0, len(resolved))
	for _, dep := range resolved {
		locks = append(locks, types.LockEntry{Name: dep.Name, Version: dep.Version, Kind: dep.Kind()})
	}
	require.NoError(t, output.WriteLock(locks))
	require.NoError(t, output.WriteStageManifest(settings.BuildType, plan))

	reader := adapters.NewOutputReaderAdapter(buildRoot)
	readLocks, err := reader.ReadLock()
	require.NoError(t, err)
	assert.Len(t, readLocks, 3)
	staged, err := reader.ReadStageManifest(settings.BuildType)
	require.NoError(t, err)
	assert.Len(t, staged, 2)
}
