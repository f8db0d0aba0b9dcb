package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildstage/internal/app"
)

type toolchainOptions struct {
	Buildfile string
	Profile   string
	BuildRoot string
	OS        string
	Compiler  string
	BuildType string
	Arch      string
	Generator string
	Presets   bool
}

func newToolchainCommand() *cobra.Command {
	opts := toolchainOptions{}
	cmd := &cobra.Command{
		Use:   "toolchain",
		Short: "Emit the toolchain description for the merged settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToolchain(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Buildfile, "buildfile", "buildfile.yaml", "Buildfile path")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Profile path")
	cmd.Flags().StringVar(&opts.BuildRoot, "build-root", "", "Build output root")
	cmd.Flags().StringVar(&opts.OS, "os", "", "Target operating system")
	cmd.Flags().StringVar(&opts.Compiler, "compiler", "", "Target compiler")
	cmd.Flags().StringVar(&opts.BuildType, "build-type", "", "Build type (Debug, Release, ...)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Target architecture")
	cmd.Flags().StringVar(&opts.Generator, "generator", "", "Build system generator")
	cmd.Flags().BoolVar(&opts.Presets, "presets", false, "Also write CMakePresets.json")

	_ = viper.BindPFlag("buildfile", cmd.Flags().Lookup("buildfile"))
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("build_root", cmd.Flags().Lookup("build-root"))
	_ = viper.BindPFlag("os", cmd.Flags().Lookup("os"))
	_ = viper.BindPFlag("compiler", cmd.Flags().Lookup("compiler"))
	_ = viper.BindPFlag("build_type", cmd.Flags().Lookup("build-type"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("generator", cmd.Flags().Lookup("generator"))
	_ = viper.BindPFlag("presets", cmd.Flags().Lookup("presets"))

	return cmd
}

func runToolchain(ctx context.Context, cmd *cobra.Command, opts toolchainOptions) error {
	service := newAppService()
	result, err := service.Toolchain(ctx, app.ToolchainRequest{
		BuildfilePath: resolveString(cmd, opts.Buildfile, "buildfile", "buildfile"),
		ProfilePath:   resolveString(cmd, opts.Profile, "profile", "profile"),
		BuildRoot:     resolveString(cmd, opts.BuildRoot, "build_root", "build-root"),
		Settings:      settingsOverride(cmd, opts.OS, opts.Compiler, opts.BuildType, opts.Arch, opts.Generator),
		EmitPresets:   resolveBool(cmd, opts.Presets, "presets", "presets"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("toolchain: %s\n", result.ToolchainPath)
	if result.PresetsPath != "" {
		fmt.Printf("presets: %s\n", result.PresetsPath)
	}
	return nil
}
