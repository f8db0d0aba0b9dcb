package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/types"
)

// NewToolchainDescription builds the toolchain document from the
// environment settings and the generator name. It deliberately takes
// no part in dependency resolution: settings and generator are all a
// toolchain file contains.
func NewToolchainDescription(settings types.Settings, generator string) (types.ToolchainDescription, error) {
	if missing := settings.Missing(); len(missing) > 0 {
		return types.ToolchainDescription{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("settings are required: %s", strings.Join(missing, ", ")))
	}
	if strings.TrimSpace(generator) == "" {
		return types.ToolchainDescription{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("generator must not be empty")
	}
	return types.ToolchainDescription{
		FormatVersion: types.ToolchainFormatVersion,
		Generator:     strings.TrimSpace(generator),
		Settings:      settings,
	}, nil
}
