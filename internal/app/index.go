package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

const defaultCatalogFileName = "catalog.yaml"

// Index scans a package cache and writes a catalog describing it. The
// catalog lands inside the cache root unless an output path is given,
// keeping relative artifact directories valid.
func (s Service) Index(ctx context.Context, req IndexRequest) (IndexResult, error) {
	cacheRoot := strings.TrimSpace(req.CacheRoot)
	if cacheRoot == "" {
		return IndexResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cache root is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		outputPath = filepath.Join(cacheRoot, defaultCatalogFileName)
	}
	index, err := s.CatalogBuilder.BuildIndex(ctx, cacheRoot)
	if err != nil {
		return IndexResult{}, err
	}
	if err := openCatalogWriter(outputPath).WriteCatalog(index); err != nil {
		return IndexResult{}, err
	}
	result := IndexResult{OutputPath: outputPath, Packages: len(index.Packages)}
	for _, versions := range index.Packages {
		result.Versions += len(versions)
	}
	log.Ctx(ctx).Debug().
		Int("packages", result.Packages).
		Int("versions", result.Versions).
		Str("output", outputPath).
		Msg("catalog indexed")
	return result, nil
}
