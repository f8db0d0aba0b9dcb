package types

type LockEntry struct {
	Name    string
	Version string
	Kind    DependencyKind
}

type OptionReportEntry struct {
	Name  string
	Key   string
	Value string
}

type StagedArtifact struct {
	Name        string
	Version     string
	Source      string
	Destination string
}

type StageReport struct {
	Copied    int
	Artifacts []StagedArtifact
}
