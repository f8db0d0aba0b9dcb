package app

import "buildstage/internal/types"

// SettingsOverride carries setting values picked up from flags, the
// environment, or the config file. Empty fields defer to the profile
// and then to the buildfile defaults.
type SettingsOverride struct {
	OS        string
	Compiler  string
	BuildType string
	Arch      string
	Generator string
}

type ValidateRequest struct {
	BuildfilePath string
	ProfilePath   string
	Options       []string
}

type ValidateResult struct {
	ProjectName    string
	ProjectVersion string
	Requires       int
	ToolRequires   int
}

type ResolveRequest struct {
	BuildfilePath string
	ProfilePath   string
	CatalogPath   string
	BuildRoot     string
	Settings      SettingsOverride
	Options       []string
}

type ResolveResult struct {
	ProjectName string
	BuildType   string
	Resolved    []types.ResolvedDependency
	OutputDir   string
}

type ToolchainRequest struct {
	BuildfilePath string
	ProfilePath   string
	BuildRoot     string
	Settings      SettingsOverride
	EmitPresets   bool
}

type ToolchainResult struct {
	ToolchainPath string
	PresetsPath   string
}

type StageRequest struct {
	BuildfilePath string
	ProfilePath   string
	CatalogPath   string
	BuildRoot     string
	Settings      SettingsOverride
	Options       []string
}

type StageResult struct {
	BuildType string
	Copied    int
	Staged    []types.StagedArtifact
	OutputDir string
}

type InstallRequest struct {
	BuildfilePath string
	ProfilePath   string
	CatalogPath   string
	BuildRoot     string
	Settings      SettingsOverride
	Options       []string
	EmitPresets   bool
}

type InstallResult struct {
	ProjectName   string
	BuildType     string
	Resolved      []types.ResolvedDependency
	Copied        int
	OutputDir     string
	ToolchainPath string
	PresetsPath   string
}

type InspectRequest struct {
	BuildRoot string
	BuildType string
}

type InspectResult struct {
	Locks     []types.LockEntry
	Libraries int
	Tools     int
	Options   []types.OptionReportEntry
	Staged    []types.StagedArtifact
}

type IndexRequest struct {
	CacheRoot  string
	OutputPath string
}

type IndexResult struct {
	OutputPath string
	Packages   int
	Versions   int
}
