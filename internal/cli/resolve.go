package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildstage/internal/app"
)

type resolveOptions struct {
	Buildfile string
	Profile   string
	Catalog   string
	BuildRoot string
	OS        string
	Compiler  string
	BuildType string
	Arch      string
	Options   []string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the dependency graph and write the lock outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
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
	cmd.Flags().StringSliceVar(&opts.Options, "option", nil, "Option assignment (pattern:key=value)")

	_ = viper.BindPFlag("buildfile", cmd.Flags().Lookup("buildfile"))
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("build_root", cmd.Flags().Lookup("build-root"))
	_ = viper.BindPFlag("os", cmd.Flags().Lookup("os"))
	_ = viper.BindPFlag("compiler", cmd.Flags().Lookup("compiler"))
	_ = viper.BindPFlag("build_type", cmd.Flags().Lookup("build-type"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("options", cmd.Flags().Lookup("option"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		BuildfilePath: resolveString(cmd, opts.Buildfile, "buildfile", "buildfile"),
		ProfilePath:   resolveString(cmd, opts.Profile, "profile", "profile"),
		CatalogPath:   resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		BuildRoot:     resolveString(cmd, opts.BuildRoot, "build_root", "build-root"),
		Settings:      settingsOverride(cmd, opts.OS, opts.Compiler, opts.BuildType, opts.Arch, ""),
		Options:       resolveStrings(cmd, opts.Options, "options", "option"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s (%d dependencies)\n", result.ProjectName, len(result.Resolved))
	for _, dep := range result.Resolved {
		fmt.Printf("- %s/%s (%s)\n", dep.Name, dep.Version, dep.Kind())
	}
	return nil
}

func settingsOverride(cmd *cobra.Command, osName string, compiler string, buildType string, arch string, generator string) app.SettingsOverride {
	return app.SettingsOverride{
		OS:        resolveString(cmd, osName, "os", "os"),
		Compiler:  resolveString(cmd, compiler, "compiler", "compiler"),
		BuildType: resolveString(cmd, buildType, "build_type", "build-type"),
		Arch:      resolveString(cmd, arch, "arch", "arch"),
		Generator: resolveString(cmd, generator, "generator", "generator"),
	}
}
