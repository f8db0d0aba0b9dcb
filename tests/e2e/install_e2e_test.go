package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"buildstage/tests/testutil"
)

func TestInstallCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	buildRoot := t.TempDir()

	cmd := exec.Command("go", "run", "./cmd/buildstage", "install",
		"--buildfile", "fixtures/buildfile.yaml",
		"--build-root", buildRoot,
		"--presets",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	require.FileExists(t, filepath.Join(buildRoot, "buildstage.lock"))
	require.FileExists(t, filepath.Join(buildRoot, "options.report"))
	require.FileExists(t, filepath.Join(buildRoot, "Release", "toolchain.json"))
	require.FileExists(t, filepath.Join(buildRoot, "Release", "stage.manifest"))
	require.FileExists(t, filepath.Join(buildRoot, "Release", "bin", "libglfw.so.3"))
	require.FileExists(t, filepath.Join(buildRoot, "CMakePresets.json"))
}
