package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ihmgraph/pkg/cache"
	"github.com/matzehuels/ihmgraph/pkg/errors"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the citation cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached citation from the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend, err := c.openCache(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			cl, ok := backend.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeUnsupported, "cache backend %T cannot be cleared", backend)
			}
			if err := cl.Clear(ctx); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Cleared %s cache", c.backendName())
			if fc, ok := backend.(*cache.FileCache); ok {
				printDetail(cmd.OutOrStdout(), "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				d, err := cache.DefaultDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				dir = d
			}
			if name := c.backendName(); name != cache.BackendFile {
				printWarning(cmd.ErrOrStderr(), "configured backend is %s, not file", name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func (c *CLI) backendName() string {
	cfg := c.Config.cacheConfig(c.noCache)
	if cfg.Backend == "" {
		return cache.BackendFile
	}
	return cfg.Backend
}
