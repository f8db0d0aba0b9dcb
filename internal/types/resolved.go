package types

// ResolvedDependency is one pinned package after resolution: exactly
// one per name, options fully decided, artifact dirs absolute.
type ResolvedDependency struct {
	Name         string
	Version      string
	Options      map[string]string
	ArtifactDirs []string
	IsBuildTool  bool
}

func (d ResolvedDependency) Kind() DependencyKind {
	if d.IsBuildTool {
		return DependencyKindTool
	}
	return DependencyKindLibrary
}
