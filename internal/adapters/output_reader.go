package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/ports"
	"buildstage/internal/types"
)

// OutputReaderAdapter parses the files the output adapter writes, for
// inspection after the fact.
type OutputReaderAdapter struct {
	Dir string
}

func NewOutputReaderAdapter(dir string) OutputReaderAdapter {
	return OutputReaderAdapter{Dir: dir}
}

func (a OutputReaderAdapter) ReadLock() ([]types.LockEntry, error) {
	lines, err := a.readLines(lockFileName)
	if err != nil {
		return nil, err
	}
	var entries []types.LockEntry
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return nil, invalidOutputFormat(lockFileName)
		}
		entries = append(entries, types.LockEntry{
			Name:    strings.TrimSpace(parts[0]),
			Version: strings.TrimSpace(parts[1]),
			Kind:    types.DependencyKind(strings.TrimSpace(parts[2])),
		})
	}
	return entries, nil
}

func (a OutputReaderAdapter) ReadOptionsReport() ([]types.OptionReportEntry, error) {
	lines, err := a.readLines(optionsReportFileName)
	if err != nil {
		return nil, err
	}
	var entries []types.OptionReportEntry
	for _, line := range lines {
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			return nil, invalidOutputFormat(optionsReportFileName)
		}
		entries = append(entries, types.OptionReportEntry{
			Name:  strings.TrimSpace(parts[0]),
			Key:   strings.TrimSpace(parts[1]),
			Value: strings.TrimSpace(parts[2]),
		})
	}
	return entries, nil
}

func (a OutputReaderAdapter) ReadStageManifest(buildType string) ([]types.StagedArtifact, error) {
	lines, err := a.readLines(filepath.Join(buildType, stageManifestFileName))
	if err != nil {
		return nil, err
	}
	var artifacts []types.StagedArtifact
	for _, line := range lines {
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return nil, invalidOutputFormat(stageManifestFileName)
		}
		artifacts = append(artifacts, types.StagedArtifact{
			Name:        strings.TrimSpace(parts[0]),
			Version:     strings.TrimSpace(parts[1]),
			Destination: strings.TrimSpace(parts[2]),
		})
	}
	return artifacts, nil
}

func (a OutputReaderAdapter) readLines(name string) ([]string, error) {
	path := filepath.Join(a.Dir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s not found", name)).
			WithCause(err)
	}
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func invalidOutputFormat(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid %s format", name))
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
