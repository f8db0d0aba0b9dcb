package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/ports"
	"buildstage/internal/types"
)

// CompatibilityOutputAdapter emits a CMakePresets.json next to the
// toolchain file so cmake-driven workflows can consume the same
// configuration without reading the toolchain format.
type CompatibilityOutputAdapter struct{}

func NewCompatibilityOutputAdapter() CompatibilityOutputAdapter {
	return CompatibilityOutputAdapter{}
}

func (a CompatibilityOutputAdapter) WriteCMakePresets(description types.ToolchainDescription, path string) error {
	type configurePreset struct {
		Name           string            `json:"name"`
		DisplayName    string            `json:"displayName"`
		Generator      string            `json:"generator"`
		BinaryDir      string            `json:"binaryDir"`
		CacheVariables map[string]string `json:"cacheVariables"`
	}
	payload := struct {
		Version          int               `json:"version"`
		ConfigurePresets []configurePreset `json:"configurePresets"`
	}{
		Version: 6,
		ConfigurePresets: []configurePreset{
			{
				Name:        presetName(description.Settings.BuildType),
				DisplayName: fmt.Sprintf("%s (%s)", description.Settings.BuildType, description.Generator),
				Generator:   description.Generator,
				BinaryDir:   filepath.ToSlash(filepath.Dir(path)),
				CacheVariables: map[string]string{
					"CMAKE_BUILD_TYPE":    description.Settings.BuildType,
					"BUILDSTAGE_OS":       description.Settings.OS,
					"BUILDSTAGE_COMPILER": description.Settings.Compiler,
					"BUILDSTAGE_ARCH":     description.Settings.Arch,
				},
			},
		},
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal cmake presets").
			WithCause(err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create presets directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cmake presets").
			WithCause(err)
	}
	return nil
}

func presetName(buildType string) string {
	return "buildstage-" + strings.ToLower(strings.TrimSpace(buildType))
}

var _ ports.CompatibilityPort = CompatibilityOutputAdapter{}
