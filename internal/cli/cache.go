package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand groups maintenance subcommands for the on-disk plan and
// artifact cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the plan and artifact cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

// cacheClearCommand empties the cache directory. Entries fan out into
// digest-prefix subdirectories, so clearing removes each top-level child
// wholesale after counting the files inside.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached plan and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}

			entries, err := os.ReadDir(dir)
			if os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return err
			}

			removed := 0
			for _, e := range entries {
				sub := filepath.Join(dir, e.Name())
				if e.IsDir() {
					if files, err := os.ReadDir(sub); err == nil {
						removed += len(files)
					}
				} else {
					removed++
				}
				if err := os.RemoveAll(sub); err != nil {
					return err
				}
			}

			printSuccess("Cleared %d cached entries", removed)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand prints the resolved cache directory, for scripting and
// for checking what a config override actually points at.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
