package types

// Recipe is the catalog's metadata for one package version. Requires
// entries use the compact constraint form ("zlib>=1.2.11").
// ArtifactDirs are ordered; catalog adapters resolve relative entries
// against the catalog's own location before handing recipes out.
type Recipe struct {
	Name         string    `yaml:"-"`
	Version      string    `yaml:"-"`
	Requires     []string  `yaml:"requires,omitempty"`
	Options      OptionMap `yaml:"options,omitempty"`
	ArtifactDirs []string  `yaml:"artifact_dirs,omitempty"`
}

// CatalogIndex is the serialized form of a catalog: package name to
// version to recipe.
type CatalogIndex struct {
	Packages map[string]map[string]Recipe `yaml:"packages"`
}
