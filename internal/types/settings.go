package types

// Settings describe the build environment the toolchain targets. They
// are supplied by the invoking environment and never derived here.
type Settings struct {
	OS        string `yaml:"os,omitempty" json:"os"`
	Compiler  string `yaml:"compiler,omitempty" json:"compiler"`
	BuildType string `yaml:"build_type,omitempty" json:"build_type"`
	Arch      string `yaml:"arch,omitempty" json:"arch"`
}

// Missing returns the names of settings that are still empty, in a
// fixed order suitable for error messages.
func (s Settings) Missing() []string {
	var missing []string
	if s.OS == "" {
		missing = append(missing, "os")
	}
	if s.Compiler == "" {
		missing = append(missing, "compiler")
	}
	if s.BuildType == "" {
		missing = append(missing, "build_type")
	}
	if s.Arch == "" {
		missing = append(missing, "arch")
	}
	return missing
}

// Profile is an environment description loaded from a profile file:
// settings plus optional generator and option assignments for one
// target environment.
type Profile struct {
	Settings  Settings             `yaml:"settings"`
	Generator string               `yaml:"generator,omitempty"`
	Options   map[string]OptionMap `yaml:"options,omitempty"`
}
