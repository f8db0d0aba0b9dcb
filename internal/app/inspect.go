package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/adapters"
	"buildstage/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	buildRoot := strings.TrimSpace(req.BuildRoot)
	if buildRoot == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build root is required")
	}
	reader := adapters.NewOutputReaderAdapter(buildRoot)
	locks, err := reader.ReadLock()
	if err != nil {
		return InspectResult{}, err
	}
	options, err := reader.ReadOptionsReport()
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{
		Locks:   locks,
		Options: options,
	}
	for _, entry := range locks {
		if entry.Kind == types.DependencyKindTool {
			result.Tools++
			continue
		}
		result.Libraries++
	}
	if strings.TrimSpace(req.BuildType) != "" {
		staged, err := reader.ReadStageManifest(strings.TrimSpace(req.BuildType))
		if err != nil {
			return InspectResult{}, err
		}
		result.Staged = staged
	}
	return result, nil
}
