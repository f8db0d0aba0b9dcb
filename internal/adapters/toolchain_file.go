package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/ports"
	"buildstage/internal/types"
)

// ToolchainFileAdapter writes the toolchain description as JSON. The
// write is atomic: content goes to a temp file in the destination
// directory and is renamed into place, so a consumer never observes a
// partially written toolchain and a failed run leaves nothing behind.
type ToolchainFileAdapter struct{}

func NewToolchainFileAdapter() ToolchainFileAdapter {
	return ToolchainFileAdapter{}
}

func (a ToolchainFileAdapter) WriteToolchain(description types.ToolchainDescription, path string) error {
	data, err := json.MarshalIndent(description, "", "  ")
	if err != nil {
		return toolchainWriteError(err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return toolchainWriteError(err)
	}
	tmp, err := os.CreateTemp(dir, ".toolchain-*.tmp")
	if err != nil {
		return toolchainWriteError(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return toolchainWriteError(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return toolchainWriteError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return toolchainWriteError(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return toolchainWriteError(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return toolchainWriteError(err)
	}
	return nil
}

func toolchainWriteError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("toolchain write failed").
		WithCause(err)
}

var _ ports.ToolchainWriterPort = ToolchainFileAdapter{}
