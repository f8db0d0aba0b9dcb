package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildstage/internal/app"
)

type validateOptions struct {
	Buildfile string
	Profile   string
	Options   []string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the buildfile and profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Buildfile, "buildfile", "buildfile.yaml", "Buildfile path")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Profile path")
	cmd.Flags().StringSliceVar(&opts.Options, "option", nil, "Option assignment (pattern:key=value)")
	_ = viper.BindPFlag("buildfile", cmd.Flags().Lookup("buildfile"))
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("options", cmd.Flags().Lookup("option"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		BuildfilePath: resolveString(cmd, opts.Buildfile, "buildfile", "buildfile"),
		ProfilePath:   resolveString(cmd, opts.Profile, "profile", "profile"),
		Options:       resolveStrings(cmd, opts.Options, "options", "option"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s/%s (%d requires, %d tool requires)\n",
		result.ProjectName, result.ProjectVersion, result.Requires, result.ToolRequires)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
