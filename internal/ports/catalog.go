package ports

import (
	"context"

	"buildstage/internal/types"
)

type CatalogPort interface {
	Versions(name string) ([]string, error)
	Recipe(name string, version string) (types.Recipe, error)
}

type CatalogWriterPort interface {
	WriteCatalog(index types.CatalogIndex) error
}

type CatalogBuilderPort interface {
	BuildIndex(ctx context.Context, cacheRoot string) (types.CatalogIndex, error)
}
