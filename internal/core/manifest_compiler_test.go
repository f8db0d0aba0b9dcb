package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildstage/internal/types"
)

func validManifest() types.Manifest {
	return types.Manifest{
		APIVersion: "v1",
		Project:    types.Project{Name: "vulkan-renderer", Version: "0.1.0"},
		Requires: []types.RequirementDecl{
			{Name: "glfw", Version: ">=3.3"},
			{Name: "boost", Version: "==1.84.0"},
		},
		ToolRequires: []types.RequirementDecl{
			{Name: "cmake", Version: ">=3.28"},
		},
	}
}

func TestValidateManifest(t *testing.T) {
	compiler := NewManifestCompiler()
	require.NoError(t, compiler.ValidateManifest(t.Context(), validManifest()))
}

func TestValidateManifestUnsupportedAPIVersion(t *testing.T) {
	manifest := validManifest()
	manifest.APIVersion = "v2"

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported api_version: v2")
}

func TestValidateManifestDuplicateRequire(t *testing.T) {
	manifest := validManifest()
	// Duplicate detection runs on the normalized name.
	manifest.Requires = append(manifest.Requires, types.RequirementDecl{Name: "GLFW"})

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glfw is declared twice in requires")
}

func TestValidateManifestSameNameAcrossSections(t *testing.T) {
	// A package may be both a library and a build tool.
	manifest := validManifest()
	manifest.ToolRequires = append(manifest.ToolRequires, types.RequirementDecl{Name: "glfw"})

	require.NoError(t, NewManifestCompiler().ValidateManifest(t.Context(), manifest))
}

func TestValidateManifestUnnamedRequirement(t *testing.T) {
	manifest := validManifest()
	manifest.ToolRequires = append(manifest.ToolRequires, types.RequirementDecl{Name: "  "})

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool_requires entries must have a name")
}

func TestValidateManifestBadConstraint(t *testing.T) {
	manifest := validManifest()
	manifest.Requires[0].Version = ">="

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid constraint term")
}

func TestValidateManifestEmptyOptionKey(t *testing.T) {
	manifest := validManifest()
	manifest.Requires[0].Options = types.OptionMap{" ": "true"}

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty option key on glfw")
}

func TestValidateManifestBadOptionPattern(t *testing.T) {
	manifest := validManifest()
	manifest.Options = map[string]types.OptionMap{"lib*": {"shared": "true"}}

	err := NewManifestCompiler().ValidateManifest(t.Context(), manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported option pattern: "lib*"`)
}

func TestCompileRequirements(t *testing.T) {
	requirements, err := NewManifestCompiler().CompileRequirements(t.Context(), validManifest())
	require.NoError(t, err)

	type entry struct {
		Name string
		Kind types.DependencyKind
	}
	var got []entry
	for _, requirement := range requirements {
		got = append(got, entry{requirement.Name, requirement.Kind})
	}
	// Libraries first in document order, tools after.
	want := []entry{
		{"glfw", types.DependencyKindLibrary},
		{"boost", types.DependencyKindLibrary},
		{"cmake", types.DependencyKindTool},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected requirements (-want +got):\n%s", diff)
	}
}

func TestCompileRequirementsNormalizesNames(t *testing.T) {
	manifest := validManifest()
	manifest.Requires = []types.RequirementDecl{{Name: " ImGui ", Version: "==1.90.5-docking"}}
	manifest.ToolRequires = nil

	requirements, err := NewManifestCompiler().CompileRequirements(t.Context(), manifest)
	require.NoError(t, err)
	require.Len(t, requirements, 1)
	assert.Equal(t, "imgui", requirements[0].Name)
	require.Len(t, requirements[0].Constraints, 1)
	assert.Equal(t, "imgui", requirements[0].Constraints[0].Name)
	assert.Equal(t, "buildfile", requirements[0].Constraints[0].Source)
}

func TestCompileRequirementsMultipleTerms(t *testing.T) {
	manifest := validManifest()
	manifest.Requires = []types.RequirementDecl{{Name: "zlib", Version: ">=1.2.11, <2.0"}}
	manifest.ToolRequires = nil

	requirements, err := NewManifestCompiler().CompileRequirements(t.Context(), manifest)
	require.NoError(t, err)
	require.Len(t, requirements, 1)
	assert.Len(t, requirements[0].Constraints, 2)
}
