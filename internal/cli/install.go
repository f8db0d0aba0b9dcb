package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildstage/internal/app"
)

type installOptions struct {
	Buildfile string
	Profile   string
	Catalog   string
	BuildRoot string
	OS        string
	Compiler  string
	BuildType string
	Arch      string
	Generator string
	Options   []string
	Presets   bool
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve, emit the toolchain, and stage artifacts in one pass",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Buildfile, "buildfile", "buildfile.yaml", "Buildfile path")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Profile path")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog path (YAML or SQLite)")
	cmd.Flags().StringVar(&opts.BuildRoot, "build-root", "", "Build output root")
	cmd.Flags().StringVar(&opts.OS, "os", "", "Target operating system")
	cmd.Flags().StringVar(&opts.Compiler, "compiler", "", "Target compiler")
	cmd.Flags().StringVar(&opts.BuildType, "build-type", "", "Build type (Debug, Release, ...)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Target architecture")
	cmd.Flags().StringVar(&opts.Generator, "generator", "", "Build system generator")
	cmd.Flags().StringSliceVar(&opts.Options, "option", nil, "Option assignment (pattern:key=value)")
	cmd.Flags().BoolVar(&opts.Presets, "presets", false, "Also write CMakePresets.json")

	_ = viper.BindPFlag("buildfile", cmd.Flags().Lookup("buildfile"))
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("build_root", cmd.Flags().Lookup("build-root"))
	_ = viper.BindPFlag("os", cmd.Flags().Lookup("os"))
	_ = viper.BindPFlag("compiler", cmd.Flags().Lookup("compiler"))
	_ = viper.BindPFlag("build_type", cmd.Flags().Lookup("build-type"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("generator", cmd.Flags().Lookup("generator"))
	_ = viper.BindPFlag("options", cmd.Flags().Lookup("option"))
	_ = viper.BindPFlag("presets", cmd.Flags().Lookup("presets"))

	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions) error {
	service := newAppService()
	result, err := service.Install(ctx, app.InstallRequest{
		BuildfilePath: resolveString(cmd, opts.Buildfile, "buildfile", "buildfile"),
		ProfilePath:   resolveString(cmd, opts.Profile, "profile", "profile"),
		CatalogPath:   resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		BuildRoot:     resolveString(cmd, opts.BuildRoot, "build_root", "build-root"),
		Settings:      settingsOverride(cmd, opts.OS, opts.Compiler, opts.BuildType, opts.Arch, opts.Generator),
		Options:       resolveStrings(cmd, opts.Options, "options", "option"),
		EmitPresets:   resolveBool(cmd, opts.Presets, "presets", "presets"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("installed: %s (%d dependencies, %d artifacts staged)\n",
		result.ProjectName, len(result.Resolved), result.Copied)
	fmt.Printf("toolchain: %s\n", result.ToolchainPath)
	if result.PresetsPath != "" {
		fmt.Printf("presets: %s\n", result.PresetsPath)
	}
	return nil
}
