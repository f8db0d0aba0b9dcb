package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"buildstage/internal/ports"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

// CatalogFileAdapter reads package metadata from a YAML catalog. The
// file is loaded once and cached; relative artifact dirs resolve
// against the catalog's own directory.
type CatalogFileAdapter struct {
	Path   string
	cached types.CatalogIndex
	loaded bool
}

func NewCatalogFileAdapter(path string) *CatalogFileAdapter {
	return &CatalogFileAdapter{Path: path}
}

func (a *CatalogFileAdapter) Versions(name string) ([]string, error) {
	index, err := a.load()
	if err != nil {
		return nil, err
	}
	recipes, ok := index.Packages[shared.NormalizeDependencyName(name)]
	if !ok {
		return nil, nil
	}
	versions := shared.SortedKeys(recipes)
	return versions, nil
}

func (a *CatalogFileAdapter) Recipe(name string, version string) (types.Recipe, error) {
	index, err := a.load()
	if err != nil {
		return types.Recipe{}, err
	}
	normalized := shared.NormalizeDependencyName(name)
	recipe, ok := index.Packages[normalized][version]
	if !ok {
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no recipe for %s/%s in catalog", name, version))
	}
	recipe.Name = normalized
	recipe.Version = version
	recipe.ArtifactDirs = resolveArtifactDirs(filepath.Dir(a.Path), recipe.ArtifactDirs)
	return recipe, nil
}

func (a *CatalogFileAdapter) load() (types.CatalogIndex, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.CatalogIndex{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("catalog file not found").
			WithCause(err)
	}
	var index types.CatalogIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return types.CatalogIndex{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid catalog format").
			WithCause(err)
	}
	if index.Packages == nil {
		index.Packages = map[string]map[string]types.Recipe{}
	}
	a.cached = index
	a.loaded = true
	return index, nil
}

// resolveArtifactDirs anchors relative artifact dirs at the given base
// directory, keeping declaration order.
func resolveArtifactDirs(base string, dirs []string) []string {
	if len(dirs) == 0 {
		return nil
	}
	resolved := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if filepath.IsAbs(dir) {
			resolved = append(resolved, filepath.Clean(dir))
			continue
		}
		resolved = append(resolved, filepath.Join(base, dir))
	}
	return resolved
}

// WriteCatalog serializes an index back to YAML. Map keys marshal in
// sorted order, so the output is stable across runs.
func (a *CatalogFileAdapter) WriteCatalog(index types.CatalogIndex) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal catalog").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create catalog directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write catalog").
			WithCause(err)
	}
	return nil
}

var _ ports.CatalogPort = (*CatalogFileAdapter)(nil)
var _ ports.CatalogWriterPort = (*CatalogFileAdapter)(nil)
