package ports

import "buildstage/internal/types"

type ToolchainWriterPort interface {
	WriteToolchain(description types.ToolchainDescription, path string) error
}

type CompatibilityPort interface {
	WriteCMakePresets(description types.ToolchainDescription, path string) error
}
