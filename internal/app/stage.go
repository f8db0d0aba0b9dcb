package app

import (
	"context"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"buildstage/internal/adapters"
	"buildstage/internal/core"
	"buildstage/internal/types"
)

func (s Service) Stage(ctx context.Context, req StageRequest) (StageResult, error) {
	inputs, err := s.loadBuild(ctx, req.BuildfilePath, req.ProfilePath, req.Settings, req.Options)
	if err != nil {
		return StageResult{}, err
	}
	if inputs.settings.BuildType == "" {
		return StageResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build_type setting is required for staging")
	}
	resolved, err := s.resolveDependencies(ctx, inputs, req.CatalogPath)
	if err != nil {
		return StageResult{}, err
	}
	buildRoot := resolveBuildRoot(req.BuildRoot, inputs)
	report, err := s.stageResolved(ctx, resolved, buildRoot, inputs.settings.BuildType)
	if err != nil {
		return StageResult{}, err
	}
	return StageResult{
		BuildType: inputs.settings.BuildType,
		Copied:    report.Copied,
		Staged:    report.Artifacts,
		OutputDir: buildRoot,
	}, nil
}

// stageResolved copies the shared libraries of the runtime
// dependencies into <buildRoot>/<buildType>/bin and records them in
// the stage manifest. Build tools are not staged.
func (s Service) stageResolved(ctx context.Context, resolved []types.ResolvedDependency, buildRoot string, buildType string) (types.StageReport, error) {
	var listings []types.ArtifactListing
	for _, dep := range resolved {
		if dep.IsBuildTool {
			continue
		}
		depListings, err := s.Stager.ListArtifacts(dep)
		if err != nil {
			return types.StageReport{}, err
		}
		listings = append(listings, depListings...)
	}
	destDir := filepath.Join(buildRoot, buildType, "bin")
	plan, err := core.BuildStagePlan(listings, destDir)
	if err != nil {
		return types.StageReport{}, err
	}
	copied, err := s.Stager.CopyArtifacts(ctx, plan)
	if err != nil {
		log.Ctx(ctx).Error().Int("copied", copied).Msg("staging aborted")
		return types.StageReport{Copied: copied}, err
	}
	output := adapters.NewOutputFileAdapter(buildRoot)
	if err := output.WriteStageManifest(buildType, plan); err != nil {
		return types.StageReport{Copied: copied}, err
	}
	log.Ctx(ctx).Debug().
		Int("copied", copied).
		Str("build_type", buildType).
		Msg("artifacts staged")
	return types.StageReport{Copied: copied, Artifacts: plan}, nil
}
