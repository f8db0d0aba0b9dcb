package core

import (
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/shared"
	"buildstage/internal/types"
)

// BuildStagePlan filters the listings down to shared libraries and
// plans the copies into destDir. Two dependencies contributing the
// same destination filename is a staging collision and aborts the
// plan, so a colliding run never writes a single file. Within one
// dependency the first directory providing a filename wins.
func BuildStagePlan(listings []types.ArtifactListing, destDir string) ([]types.StagedArtifact, error) {
	owners := map[string]types.StagedArtifact{}
	var plan []types.StagedArtifact
	for _, listing := range listings {
		for _, file := range listing.Files {
			if !shared.IsSharedLibrary(file) {
				continue
			}
			artifact := types.StagedArtifact{
				Name:        listing.Name,
				Version:     listing.Version,
				Source:      filepath.Join(listing.Dir, file),
				Destination: filepath.Join(destDir, file),
			}
			previous, taken := owners[file]
			if taken {
				if previous.Name == listing.Name {
					continue
				}
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("staging collision: %s provided by %s (%s) and %s (%s)",
						file, previous.Name, previous.Source, listing.Name, artifact.Source))
			}
			owners[file] = artifact
			plan = append(plan, artifact)
		}
	}
	return plan, nil
}
