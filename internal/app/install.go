package app

import (
	"context"

	"buildstage/internal/adapters"
	"buildstage/internal/core"
)

// Install runs the full pipeline: resolve the dependency graph, write
// the lock and options report, emit the toolchain description, and
// stage the runtime artifacts. Resolution completes before the first
// file is written, so a conflicting graph leaves no outputs behind.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	inputs, err := s.loadBuild(ctx, req.BuildfilePath, req.ProfilePath, req.Settings, req.Options)
	if err != nil {
		return InstallResult{}, err
	}
	description, err := core.NewToolchainDescription(inputs.settings, inputs.generator)
	if err != nil {
		return InstallResult{}, err
	}
	resolved, err := s.resolveDependencies(ctx, inputs, req.CatalogPath)
	if err != nil {
		return InstallResult{}, err
	}
	buildRoot := resolveBuildRoot(req.BuildRoot, inputs)
	output := adapters.NewOutputFileAdapter(buildRoot)
	if err := output.WriteLock(lockEntries(resolved)); err != nil {
		return InstallResult{}, err
	}
	if err := output.WriteOptionsReport(optionEntries(resolved)); err != nil {
		return InstallResult{}, err
	}
	toolchain, err := s.writeToolchain(description, buildRoot, req.EmitPresets)
	if err != nil {
		return InstallResult{}, err
	}
	report, err := s.stageResolved(ctx, resolved, buildRoot, inputs.settings.BuildType)
	if err != nil {
		return InstallResult{}, err
	}
	return InstallResult{
		ProjectName:   inputs.manifest.Project.Name,
		BuildType:     inputs.settings.BuildType,
		Resolved:      resolved,
		Copied:        report.Copied,
		OutputDir:     buildRoot,
		ToolchainPath: toolchain.ToolchainPath,
		PresetsPath:   toolchain.PresetsPath,
	}, nil
}
