package app

import (
	"buildstage/internal/adapters"
	"buildstage/internal/ports"
)

type Service struct {
	ManifestLoader  ports.ManifestPort
	ProfileLoader   ports.ProfilePort
	ToolchainWriter ports.ToolchainWriterPort
	Compat          ports.CompatibilityPort
	Stager          ports.ArtifactStagerPort
	CatalogBuilder  ports.CatalogBuilderPort
}

func NewService() Service {
	return Service{
		ManifestLoader:  adapters.NewManifestFileAdapter(),
		ProfileLoader:   adapters.NewProfileFileAdapter(),
		ToolchainWriter: adapters.NewToolchainFileAdapter(),
		Compat:          adapters.NewCompatibilityOutputAdapter(),
		Stager:          adapters.NewStagerFSAdapter(),
		CatalogBuilder:  adapters.NewCacheScanAdapter(),
	}
}
