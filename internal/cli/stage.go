package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"buildstage/internal/app"
)

type stageOptions = resolveOptions

func newStageCommand() *cobra.Command {
	opts := stageOptions{}
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Stage runtime shared libraries into the build tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStage(cmd.Context(), cmd, opts)
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

	return cmd
}

func runStage(ctx context.Context, cmd *cobra.Command, opts stageOptions) error {
	service := newAppService()
	result, err := service.Stage(ctx, app.StageRequest{
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
	fmt.Printf("staged: %d artifacts (%s)\n", result.Copied, result.BuildType)
	for _, artifact := range result.Staged {
		fmt.Printf("- %s (%s/%s)\n", artifact.Destination, artifact.Name, artifact.Version)
	}
	return nil
}
