package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildstage/internal/types"
)

func testToolchainDescription() types.ToolchainDescription {
	return types.ToolchainDescription{
		FormatVersion: types.ToolchainFormatVersion,
		Generator:     "Ninja",
		Settings: types.Settings{
			OS:        "Linux",
			Compiler:  "clang",
			BuildType: "Release",
			Arch:      "x86_64",
		},
	}
}

func TestToolchainFileAdapter_WriteToolchain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Release", "toolchain.json")

	require.NoError(t, NewToolchainFileAdapter().WriteToolchain(testToolchainDescription(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.ToolchainDescription
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(testToolchainDescription(), got); diff != "" {
		t.Fatalf("unexpected toolchain content (-want +got):\n%s", diff)
	}
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestToolchainFileAdapter_NoTempResidue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolchain.json")

	require.NoError(t, NewToolchainFileAdapter().WriteToolchain(testToolchainDescription(), path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "toolchain.json", entries[0].Name())
}

func TestToolchainFileAdapter_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolchain.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, NewToolchainFileAdapter().WriteToolchain(testToolchainDescription(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), `"generator": "Ninja"`)
}

func TestToolchainFileAdapter_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should go forces the rename to fail.
	path := filepath.Join(dir, "toolchain.json")
	require.NoError(t, os.MkdirAll(path, 0o755))

	err := NewToolchainFileAdapter().WriteToolchain(testToolchainDescription(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toolchain write failed")
}
