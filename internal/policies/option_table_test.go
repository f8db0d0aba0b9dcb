package policies

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionTableEffectiveLayersExactOverWildcard(t *testing.T) {
	table := NewOptionTable()
	require.NoError(t, table.Set("*", "shared", "true"))
	require.NoError(t, table.Set("*", "fPIC", "true"))
	require.NoError(t, table.Set("glfw", "shared", "false"))

	want := map[string]string{"shared": "false", "fPIC": "true"}
	if diff := cmp.Diff(want, table.Effective("glfw")); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}

	// Packages without an exact entry only see the wildcard.
	want = map[string]string{"shared": "true", "fPIC": "true"}
	if diff := cmp.Diff(want, table.Effective("boost")); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionTableLastSetWins(t *testing.T) {
	table := NewOptionTable()
	require.NoError(t, table.Set("glfw", "shared", "true"))
	require.NoError(t, table.Set("glfw", "shared", "false"))

	want := map[string]string{"shared": "false"}
	if diff := cmp.Diff(want, table.Effective("glfw")); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionTableSlashStarAlias(t *testing.T) {
	// "name/*" is the spelled-out form of an exact-name pattern.
	table := NewOptionTable()
	require.NoError(t, table.Set("imgui/*", "docking", "true"))

	want := map[string]string{"docking": "true"}
	if diff := cmp.Diff(want, table.Effective("imgui")); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionTableNormalizesNames(t *testing.T) {
	table := NewOptionTable()
	require.NoError(t, table.Set(" GLFW ", "shared", "false"))

	want := map[string]string{"shared": "false"}
	if diff := cmp.Diff(want, table.Effective("glfw")); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionTableRejectsPartialGlobs(t *testing.T) {
	table := NewOptionTable()
	for _, pattern := range []string{"lib*", "?x", "boost[0-9]", ""} {
		err := table.Set(pattern, "shared", "true")
		require.Error(t, err, "pattern %q", pattern)
		assert.Contains(t, err.Error(), "unsupported option pattern")
	}
}

func TestOptionTableRejectsEmptyKey(t *testing.T) {
	table := NewOptionTable()
	err := table.Set("glfw", "  ", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty option key")
}

func TestOptionTableFreeze(t *testing.T) {
	table := NewOptionTable()
	require.NoError(t, table.Set("glfw", "shared", "false"))
	require.False(t, table.Frozen())

	table.Freeze()
	table.Freeze()
	require.True(t, table.Frozen())

	err := table.Set("glfw", "vulkan", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "option table frozen: cannot set glfw:vulkan")

	// Frozen reads keep working.
	want := map[string]string{"shared": "false"}
	if diff := cmp.Diff(want, table.Effective("glfw")); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionTablePatterns(t *testing.T) {
	table := NewOptionTable()
	require.NoError(t, table.Set("zlib", "shared", "true"))
	require.NoError(t, table.Set("*", "fPIC", "true"))
	require.NoError(t, table.Set("boost", "shared", "false"))

	if diff := cmp.Diff([]string{"*", "boost", "zlib"}, table.Patterns()); diff != "" {
		t.Fatalf("unexpected patterns (-want +got):\n%s", diff)
	}
}

func TestOptionTableEmptyEffective(t *testing.T) {
	table := NewOptionTable()
	assert.Empty(t, table.Effective("glfw"))
}
