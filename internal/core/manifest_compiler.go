package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"buildstage/internal/policies"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

const manifestAPIVersion = "v1"

// ManifestCompiler validates a buildfile and compiles its requirement
// declarations into parsed requirements for the resolver.
type ManifestCompiler struct{}

func NewManifestCompiler() ManifestCompiler {
	return ManifestCompiler{}
}

func (c ManifestCompiler) ValidateManifest(ctx context.Context, manifest types.Manifest) error {
	assert.NotEmpty(ctx, manifest.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, manifest.Project.Name, "project.name must be set")
	assert.NotEmpty(ctx, manifest.Project.Version, "project.version must be set")
	if manifest.APIVersion != manifestAPIVersion {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported api_version: %s", manifest.APIVersion))
	}
	// A name may appear in both requires and tool_requires (library
	// and build-tool contexts), but not twice within one section.
	for _, section := range []struct {
		name  string
		decls []types.RequirementDecl
	}{
		{"requires", manifest.Requires},
		{"tool_requires", manifest.ToolRequires},
	} {
		seen := map[string]struct{}{}
		for _, decl := range section.decls {
			if err := validateRequirementDecl(decl, seen, section.name); err != nil {
				return err
			}
		}
	}
	if err := validateOptionPatterns(manifest.Options); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("project", manifest.Project.Name).Msg("manifest validated")
	return nil
}

// CompileRequirements turns the manifest declarations into parsed
// requirements: libraries first, tools after, document order kept.
func (c ManifestCompiler) CompileRequirements(ctx context.Context, manifest types.Manifest) ([]types.Requirement, error) {
	var requirements []types.Requirement
	for _, decl := range manifest.Requires {
		requirement, err := compileRequirement(decl, types.DependencyKindLibrary)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	for _, decl := range manifest.ToolRequires {
		requirement, err := compileRequirement(decl, types.DependencyKindTool)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	log.Ctx(ctx).Debug().Int("requirements", len(requirements)).Msg("manifest compiled")
	return requirements, nil
}

func compileRequirement(decl types.RequirementDecl, kind types.DependencyKind) (types.Requirement, error) {
	name := shared.NormalizeDependencyName(decl.Name)
	terms, err := ParseConstraintExpr(name, decl.Version, "buildfile")
	if err != nil {
		return types.Requirement{}, err
	}
	return types.Requirement{
		Name:        name,
		Constraints: terms,
		Kind:        kind,
	}, nil
}

func validateRequirementDecl(decl types.RequirementDecl, seen map[string]struct{}, section string) error {
	name := shared.NormalizeDependencyName(decl.Name)
	if name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s entries must have a name", section))
	}
	if _, ok := seen[name]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s is declared twice in %s", name, section))
	}
	seen[name] = struct{}{}
	if _, err := ParseConstraintExpr(name, decl.Version, "buildfile"); err != nil {
		return err
	}
	for key := range decl.Options {
		if strings.TrimSpace(key) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("empty option key on %s", name))
		}
	}
	return nil
}

// validateOptionPatterns dry-runs the manifest option section against a
// throwaway table so pattern errors surface at validation time.
func validateOptionPatterns(options map[string]types.OptionMap) error {
	table := policies.NewOptionTable()
	for _, pattern := range shared.SortedKeys(options) {
		for key, value := range options[pattern] {
			if err := table.Set(pattern, key, value.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
