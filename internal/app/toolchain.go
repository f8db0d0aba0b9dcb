package app

import (
	"context"
	"path/filepath"

	"buildstage/internal/core"
	"buildstage/internal/types"
)

const (
	toolchainFileName = "toolchain.json"
	presetsFileName   = "CMakePresets.json"
)

func (s Service) Toolchain(ctx context.Context, req ToolchainRequest) (ToolchainResult, error) {
	inputs, err := s.loadBuild(ctx, req.BuildfilePath, req.ProfilePath, req.Settings, nil)
	if err != nil {
		return ToolchainResult{}, err
	}
	description, err := core.NewToolchainDescription(inputs.settings, inputs.generator)
	if err != nil {
		return ToolchainResult{}, err
	}
	return s.writeToolchain(description, resolveBuildRoot(req.BuildRoot, inputs), req.EmitPresets)
}

func (s Service) writeToolchain(description types.ToolchainDescription, buildRoot string, emitPresets bool) (ToolchainResult, error) {
	toolchainPath := filepath.Join(buildRoot, description.Settings.BuildType, toolchainFileName)
	if err := s.ToolchainWriter.WriteToolchain(description, toolchainPath); err != nil {
		return ToolchainResult{}, err
	}
	result := ToolchainResult{ToolchainPath: toolchainPath}
	if emitPresets {
		presetsPath := filepath.Join(buildRoot, presetsFileName)
		if err := s.Compat.WriteCMakePresets(description, presetsPath); err != nil {
			return ToolchainResult{}, err
		}
		result.PresetsPath = presetsPath
	}
	return result, nil
}
