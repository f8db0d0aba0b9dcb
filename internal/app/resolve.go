package app

import (
	"context"

	"buildstage/internal/adapters"
	"buildstage/internal/core"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	inputs, err := s.loadBuild(ctx, req.BuildfilePath, req.ProfilePath, req.Settings, req.Options)
	if err != nil {
		return ResolveResult{}, err
	}
	resolved, err := s.resolveDependencies(ctx, inputs, req.CatalogPath)
	if err != nil {
		return ResolveResult{}, err
	}
	buildRoot := resolveBuildRoot(req.BuildRoot, inputs)
	output := adapters.NewOutputFileAdapter(buildRoot)
	if err := output.WriteLock(lockEntries(resolved)); err != nil {
		return ResolveResult{}, err
	}
	if err := output.WriteOptionsReport(optionEntries(resolved)); err != nil {
		return ResolveResult{}, err
	}
	return ResolveResult{
		ProjectName: inputs.manifest.Project.Name,
		BuildType:   inputs.settings.BuildType,
		Resolved:    resolved,
		OutputDir:   buildRoot,
	}, nil
}

func (s Service) resolveDependencies(ctx context.Context, inputs buildInputs, catalogPath string) ([]types.ResolvedDependency, error) {
	path, err := resolveCatalogPath(catalogPath, inputs)
	if err != nil {
		return nil, err
	}
	resolver := core.NewResolverCore(openCatalog(path), inputs.table)
	return resolver.Resolve(ctx, inputs.requirements, inputs.settings)
}

func lockEntries(resolved []types.ResolvedDependency) []types.LockEntry {
	entries := make([]types.LockEntry, 0, len(resolved))
	for _, dep := range resolved {
		entries = append(entries, types.LockEntry{
			Name:    dep.Name,
			Version: dep.Version,
			Kind:    dep.Kind(),
		})
	}
	return entries
}

func optionEntries(resolved []types.ResolvedDependency) []types.OptionReportEntry {
	var entries []types.OptionReportEntry
	for _, dep := range resolved {
		for _, key := range shared.SortedKeys(dep.Options) {
			entries = append(entries, types.OptionReportEntry{
				Name:  dep.Name,
				Key:   key,
				Value: dep.Options[key],
			})
		}
	}
	return entries
}
