package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tichlinh-png/trace-worksheet/pkg/cache"
	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered worksheet cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached worksheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeInternal, err, "locate cache dir")
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeInternal, err, "open cache")
			}
			if err := fc.Clear(); err != nil {
				return apperr.Wrap(apperr.ErrCodeInternal, err, "clear cache")
			}
			loggerFromContext(cmd.Context()).Debug("cache cleared", "dir", dir)

			printSuccess("Cleared cache")
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return apperr.Wrap(apperr.ErrCodeInternal, err, "locate cache dir")
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
