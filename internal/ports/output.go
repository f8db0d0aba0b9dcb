package ports

import "buildstage/internal/types"

type OutputPort interface {
	WriteLock(entries []types.LockEntry) error
	WriteOptionsReport(entries []types.OptionReportEntry) error
	WriteStageManifest(buildType string, artifacts []types.StagedArtifact) error
}

type OutputReaderPort interface {
	ReadLock() ([]types.LockEntry, error)
	ReadOptionsReport() ([]types.OptionReportEntry, error)
	ReadStageManifest(buildType string) ([]types.StagedArtifact, error)
}
