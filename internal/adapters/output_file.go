package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/ports"
	"buildstage/internal/types"
)

const (
	lockFileName          = "buildstage.lock"
	optionsReportFileName = "options.report"
	stageManifestFileName = "stage.manifest"
)

// OutputFileAdapter writes the resolution outputs under the build
// root. Every file is sorted before writing so reruns over identical
// inputs produce identical bytes.
type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

func (a OutputFileAdapter) WriteLock(entries []types.LockEntry) error {
	path, err := a.ensurePath(lockFileName)
	if err != nil {
		return err
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s,%s,%s", entry.Name, entry.Version, entry.Kind))
	}
	return a.writeLines(path, lines)
}

func (a OutputFileAdapter) WriteOptionsReport(entries []types.OptionReportEntry) error {
	path, err := a.ensurePath(optionsReportFileName)
	if err != nil {
		return err
	}
	ordered := append([]types.OptionReportEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].Key < ordered[j].Key
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s,%s,%s", entry.Name, entry.Key, entry.Value))
	}
	return a.writeLines(path, lines)
}

func (a OutputFileAdapter) WriteStageManifest(buildType string, artifacts []types.StagedArtifact) error {
	path, err := a.ensurePath(filepath.Join(buildType, stageManifestFileName))
	if err != nil {
		return err
	}
	ordered := append([]types.StagedArtifact(nil), artifacts...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Destination != ordered[j].Destination {
			return ordered[i].Destination < ordered[j].Destination
		}
		return ordered[i].Name < ordered[j].Name
	})
	var lines []string
	for _, artifact := range ordered {
		lines = append(lines, fmt.Sprintf("%s,%s,%s", artifact.Name, artifact.Version, artifact.Destination))
	}
	return a.writeLines(path, lines)
}

func (a OutputFileAdapter) ensurePath(name string) (string, error) {
	path := filepath.Join(a.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return path, nil
}

func (a OutputFileAdapter) writeLines(path string, lines []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", filepath.Base(path))).
			WithCause(err)
	}
	return nil
}

var _ ports.OutputPort = OutputFileAdapter{}
