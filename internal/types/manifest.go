package types

type Project struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ManifestDefaults provides project-level defaults that the CLI and
// application layer use when a value is not explicitly provided via
// flags, environment variables, or a profile. Embedding defaults in
// the buildfile keeps simple projects to a single file.
type ManifestDefaults struct {
	OS        string `yaml:"os,omitempty"`
	Compiler  string `yaml:"compiler,omitempty"`
	BuildType string `yaml:"build_type,omitempty"`
	Arch      string `yaml:"arch,omitempty"`
	Catalog   string `yaml:"catalog,omitempty"`
	BuildRoot string `yaml:"build_root,omitempty"`
}

type RequirementDecl struct {
	Name    string    `yaml:"name"`
	Version string    `yaml:"version,omitempty"`
	Options OptionMap `yaml:"options,omitempty"`
}

type Manifest struct {
	APIVersion   string               `yaml:"api_version"`
	Project      Project              `yaml:"project"`
	Generator    string               `yaml:"generator,omitempty"`
	Defaults     ManifestDefaults     `yaml:"defaults,omitempty"`
	Requires     []RequirementDecl    `yaml:"requires"`
	ToolRequires []RequirementDecl    `yaml:"tool_requires,omitempty"`
	Options      map[string]OptionMap `yaml:"options,omitempty"`
}
