package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"buildstage/internal/ports"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

const (
	recipeFileName     = "recipe.yaml"
	defaultScanWorkers = 4
)

// CacheScanAdapter builds a catalog index from a package cache laid
// out as <root>/<name>/<version>/. Each version directory may carry a
// recipe.yaml with requirements and options; artifact directories not
// declared there are detected by looking for shared libraries.
type CacheScanAdapter struct {
	Workers int
}

func NewCacheScanAdapter() CacheScanAdapter {
	return CacheScanAdapter{Workers: defaultScanWorkers}
}

// BuildIndex scans the cache root. Artifact directories are recorded
// relative to the cache root so the written catalog stays valid next
// to the cache it describes.
func (a CacheScanAdapter) BuildIndex(ctx context.Context, cacheRoot string) (types.CatalogIndex, error) {
	nameEntries, err := os.ReadDir(cacheRoot)
	if err != nil {
		return types.CatalogIndex{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("cache root not found").
			WithCause(err)
	}
	var names []string
	for _, entry := range nameEntries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	index := types.CatalogIndex{Packages: map[string]map[string]types.Recipe{}}
	if len(names) == 0 {
		return index, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var mu sync.Mutex
	var errMu sync.Mutex
	var firstErr error
	workerCount := a.Workers
	if workerCount <= 0 {
		workerCount = defaultScanWorkers
	}
	if len(names) < workerCount {
		workerCount = len(names)
	}
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for _, name := range names {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			versions, err := scanPackageVersions(cacheRoot, name)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				errMu.Unlock()
				return
			}
			if len(versions) == 0 {
				return
			}
			mu.Lock()
			index.Packages[shared.NormalizeDependencyName(name)] = versions
			mu.Unlock()
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return types.CatalogIndex{}, firstErr
	}
	return index, nil
}

func scanPackageVersions(cacheRoot string, name string) (map[string]types.Recipe, error) {
	versionEntries, err := os.ReadDir(filepath.Join(cacheRoot, name))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("cannot scan package %s", name)).
			WithCause(err)
	}
	versions := map[string]types.Recipe{}
	for _, entry := range versionEntries {
		if !entry.IsDir() {
			continue
		}
		recipe, err := scanRecipe(cacheRoot, name, entry.Name())
		if err != nil {
			return nil, err
		}
		versions[entry.Name()] = recipe
	}
	return versions, nil
}

// scanRecipe reads <name>/<version>/recipe.yaml if present. Declared
// artifact_dirs are relative to the version directory and get rebased
// onto the cache root; without a declaration the version directory is
// searched for subdirectories holding shared libraries.
func scanRecipe(cacheRoot string, name string, version string) (types.Recipe, error) {
	relDir := filepath.Join(name, version)
	versionDir := filepath.Join(cacheRoot, relDir)
	var recipe types.Recipe
	data, err := os.ReadFile(filepath.Join(versionDir, recipeFileName))
	switch {
	case os.IsNotExist(err):
		// packages without a recipe carry no requirements
	case err != nil:
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("cannot read recipe for %s/%s", name, version)).
			WithCause(err)
	default:
		if err := yaml.Unmarshal(data, &recipe); err != nil {
			return types.Recipe{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid recipe for %s/%s", name, version)).
				WithCause(err)
		}
	}
	if len(recipe.ArtifactDirs) > 0 {
		rebased := make([]string, 0, len(recipe.ArtifactDirs))
		for _, dir := range recipe.ArtifactDirs {
			if filepath.IsAbs(dir) {
				rebased = append(rebased, filepath.Clean(dir))
				continue
			}
			rebased = append(rebased, filepath.Join(relDir, dir))
		}
		recipe.ArtifactDirs = rebased
		return recipe, nil
	}
	detected, err := detectArtifactDirs(versionDir, relDir)
	if err != nil {
		return types.Recipe{}, err
	}
	recipe.ArtifactDirs = detected
	return recipe, nil
}

func detectArtifactDirs(versionDir string, relDir string) ([]string, error) {
	entries, err := os.ReadDir(versionDir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("cannot scan version dir %s", versionDir)).
			WithCause(err)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(versionDir, entry.Name()))
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("cannot scan artifact dir %s", filepath.Join(versionDir, entry.Name()))).
				WithCause(err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if shared.IsSharedLibrary(file.Name()) {
				dirs = append(dirs, filepath.Join(relDir, entry.Name()))
				break
			}
		}
	}
	return dirs, nil
}

var _ ports.CatalogBuilderPort = CacheScanAdapter{}
