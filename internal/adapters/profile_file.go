package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"buildstage/internal/ports"
	"buildstage/internal/types"
)

type ProfileFileAdapter struct{}

func NewProfileFileAdapter() ProfileFileAdapter {
	return ProfileFileAdapter{}
}

func (a ProfileFileAdapter) LoadProfile(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("profile not found").
			WithCause(err)
	}
	var profile types.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse profile yaml").
			WithCause(err)
	}
	return profile, nil
}

var _ ports.ProfilePort = ProfileFileAdapter{}
