package ports

import "buildstage/internal/types"

type ManifestPort interface {
	LoadManifest(path string) (types.Manifest, error)
}

type ProfilePort interface {
	LoadProfile(path string) (types.Profile, error)
}
