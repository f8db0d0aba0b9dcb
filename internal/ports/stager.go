package ports

import (
	"context"

	"buildstage/internal/types"
)

type ArtifactStagerPort interface {
	ListArtifacts(dep types.ResolvedDependency) ([]types.ArtifactListing, error)
	CopyArtifacts(ctx context.Context, operations []types.StagedArtifact) (int, error)
}
