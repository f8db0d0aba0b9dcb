package types

const ToolchainFormatVersion = 1

// ToolchainDescription is the machine-readable configuration handed to
// the build system: the generator plus the four environment settings,
// nothing else.
type ToolchainDescription struct {
	FormatVersion int      `json:"format_version"`
	Generator     string   `json:"generator"`
	Settings      Settings `json:"settings"`
}
