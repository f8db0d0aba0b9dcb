package app

import "context"

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	inputs, err := s.loadBuild(ctx, req.BuildfilePath, req.ProfilePath, SettingsOverride{}, req.Options)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		ProjectName:    inputs.manifest.Project.Name,
		ProjectVersion: inputs.manifest.Project.Version,
		Requires:       len(inputs.manifest.Requires),
		ToolRequires:   len(inputs.manifest.ToolRequires),
	}, nil
}
