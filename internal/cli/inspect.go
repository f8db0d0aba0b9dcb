package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildstage/internal/app"
)

type inspectOptions struct {
	BuildRoot string
	BuildType string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the lock, options report, and stage manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.BuildRoot, "build-root", "build", "Build output root")
	cmd.Flags().StringVar(&opts.BuildType, "build-type", "", "Build type whose stage manifest to read")
	_ = viper.BindPFlag("build_root", cmd.Flags().Lookup("build-root"))
	_ = viper.BindPFlag("build_type", cmd.Flags().Lookup("build-type"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		BuildRoot: resolveString(cmd, opts.BuildRoot, "build_root", "build-root"),
		BuildType: resolveString(cmd, opts.BuildType, "build_type", "build-type"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("lock entries: %d (%d libraries, %d tools)\n", len(result.Locks), result.Libraries, result.Tools)
	for _, entry := range result.Locks {
		fmt.Printf("- %s/%s (%s)\n", entry.Name, entry.Version, entry.Kind)
	}
	fmt.Printf("option entries: %d\n", len(result.Options))
	for _, entry := range result.Options {
		fmt.Printf("- %s: %s=%s\n", entry.Name, entry.Key, entry.Value)
	}
	if len(result.Staged) > 0 {
		fmt.Printf("staged artifacts: %d\n", len(result.Staged))
		for _, artifact := range result.Staged {
			fmt.Printf("- %s (%s/%s)\n", artifact.Destination, artifact.Name, artifact.Version)
		}
	}
	return nil
}
