package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"buildstage/internal/app"
)

type indexOptions struct {
	CacheRoot string
	Output    string
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan a package cache and write its catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.CacheRoot, "cache", "", "Package cache root")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Catalog output path (defaults to catalog.yaml in the cache root)")
	_ = viper.BindPFlag("cache", cmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	service := newAppService()
	result, err := service.Index(ctx, app.IndexRequest{
		CacheRoot:  resolveString(cmd, opts.CacheRoot, "cache", "cache"),
		OutputPath: resolveString(cmd, opts.Output, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("indexed: %d packages, %d versions -> %s\n", result.Packages, result.Versions, result.OutputPath)
	return nil
}
