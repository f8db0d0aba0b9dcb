package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"buildstage/internal/adapters"
	"buildstage/internal/core"
	"buildstage/internal/policies"
	"buildstage/internal/ports"
	"buildstage/internal/shared"
	"buildstage/internal/types"
)

const (
	defaultGenerator = "Ninja"
	defaultBuildRoot = "build"
)

// buildInputs is everything an operation derives from the buildfile,
// the profile, and the command line before it starts doing work.
type buildInputs struct {
	manifest     types.Manifest
	settings     types.Settings
	generator    string
	requirements []types.Requirement
	table        *policies.OptionTable
	buildfileDir string
}

// loadBuild loads and validates the buildfile, overlays the profile
// and the override on top of its defaults, and compiles requirements
// and the option table. Option precedence per pattern and key is
// buildfile, then profile, then command line; settings precedence is
// override, then profile, then buildfile defaults.
func (s Service) loadBuild(ctx context.Context, buildfilePath string, profilePath string, override SettingsOverride, optionArgs []string) (buildInputs, error) {
	path := strings.TrimSpace(buildfilePath)
	if path == "" {
		return buildInputs{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("buildfile path is required")
	}
	manifest, err := s.ManifestLoader.LoadManifest(path)
	if err != nil {
		return buildInputs{}, err
	}
	compiler := core.NewManifestCompiler()
	if err := compiler.ValidateManifest(ctx, manifest); err != nil {
		return buildInputs{}, err
	}
	var profile types.Profile
	if strings.TrimSpace(profilePath) != "" {
		profile, err = s.ProfileLoader.LoadProfile(profilePath)
		if err != nil {
			return buildInputs{}, err
		}
	}
	table := policies.NewOptionTable()
	if err := applyOptions(table, manifest.Options); err != nil {
		return buildInputs{}, err
	}
	if err := applyRequirementOptions(table, manifest); err != nil {
		return buildInputs{}, err
	}
	if err := applyOptions(table, profile.Options); err != nil {
		return buildInputs{}, err
	}
	if err := applyOptionArgs(table, optionArgs); err != nil {
		return buildInputs{}, err
	}
	requirements, err := compiler.CompileRequirements(ctx, manifest)
	if err != nil {
		return buildInputs{}, err
	}
	return buildInputs{
		manifest:     manifest,
		settings:     mergeSettings(manifest.Defaults, profile.Settings, override),
		generator:    firstNonEmpty(override.Generator, profile.Generator, manifest.Generator, defaultGenerator),
		requirements: requirements,
		table:        table,
		buildfileDir: filepath.Dir(path),
	}, nil
}

func mergeSettings(defaults types.ManifestDefaults, profile types.Settings, override SettingsOverride) types.Settings {
	return types.Settings{
		OS:        firstNonEmpty(override.OS, profile.OS, defaults.OS),
		Compiler:  firstNonEmpty(override.Compiler, profile.Compiler, defaults.Compiler),
		BuildType: firstNonEmpty(override.BuildType, profile.BuildType, defaults.BuildType),
		Arch:      firstNonEmpty(override.Arch, profile.Arch, defaults.Arch),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func applyOptions(table *policies.OptionTable, options map[string]types.OptionMap) error {
	for _, pattern := range shared.SortedKeys(options) {
		values := options[pattern]
		for _, key := range shared.SortedKeys(values) {
			if err := table.Set(pattern, key, string(values[key])); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyRequirementOptions folds options declared on individual requires
// entries into the table as exact-name assignments. They land after the
// buildfile options section, so the per-requirement declaration wins
// within the buildfile layer.
func applyRequirementOptions(table *policies.OptionTable, manifest types.Manifest) error {
	for _, decl := range append(append([]types.RequirementDecl{}, manifest.Requires...), manifest.ToolRequires...) {
		name := shared.NormalizeDependencyName(decl.Name)
		for _, key := range shared.SortedKeys(decl.Options) {
			if err := table.Set(name, key, string(decl.Options[key])); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyOptionArgs applies command-line option arguments of the form
// pattern:key=value, in the order given.
func applyOptionArgs(table *policies.OptionTable, args []string) error {
	for _, arg := range args {
		pattern, key, value, err := parseOptionArg(arg)
		if err != nil {
			return err
		}
		if err := table.Set(pattern, key, value); err != nil {
			return err
		}
	}
	return nil
}

func parseOptionArg(arg string) (pattern string, key string, value string, err error) {
	invalid := func() error {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid option argument %q: expected pattern:key=value", arg))
	}
	pattern, assignment, found := strings.Cut(arg, ":")
	if !found {
		return "", "", "", invalid()
	}
	key, value, found = strings.Cut(assignment, "=")
	if !found || strings.TrimSpace(pattern) == "" || strings.TrimSpace(key) == "" {
		return "", "", "", invalid()
	}
	return strings.TrimSpace(pattern), strings.TrimSpace(key), strings.TrimSpace(value), nil
}

// resolveCatalogPath picks the catalog location: the explicit request
// wins, otherwise the buildfile default resolved against the buildfile
// directory.
func resolveCatalogPath(requested string, inputs buildInputs) (string, error) {
	if strings.TrimSpace(requested) != "" {
		return strings.TrimSpace(requested), nil
	}
	fromManifest := strings.TrimSpace(inputs.manifest.Defaults.Catalog)
	if fromManifest == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is required: pass --catalog or set defaults.catalog in the buildfile")
	}
	if filepath.IsAbs(fromManifest) {
		return filepath.Clean(fromManifest), nil
	}
	return filepath.Join(inputs.buildfileDir, fromManifest), nil
}

func resolveBuildRoot(requested string, inputs buildInputs) string {
	if strings.TrimSpace(requested) != "" {
		return strings.TrimSpace(requested)
	}
	root := firstNonEmpty(inputs.manifest.Defaults.BuildRoot, defaultBuildRoot)
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(inputs.buildfileDir, root)
}

// openCatalog picks the catalog backend by file extension: SQLite for
// .db, .sqlite and .sqlite3, YAML otherwise.
func openCatalog(path string) ports.CatalogPort {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return adapters.NewSQLiteCatalogAdapter(path)
	default:
		return adapters.NewCatalogFileAdapter(path)
	}
}

func openCatalogWriter(path string) ports.CatalogWriterPort {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return adapters.NewSQLiteCatalogAdapter(path)
	default:
		return adapters.NewCatalogFileAdapter(path)
	}
}
