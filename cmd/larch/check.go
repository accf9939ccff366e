package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"larch/internal/diagfmt"
	"larch/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.lr|directory]",
	Short: "Type-check larch source files",
	Long: `Check runs the type checker over a source file or every *.lr file in a
directory. Without an argument it looks for a larch.toml manifest in the
current directory or one of its parents and checks the manifest entry plus
any [check].include paths.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory checking (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse cached results for unchanged files")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

var errCheckFailed = errors.New("check failed")

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	targets, err := resolveCheckTargets(args)
	if err != nil {
		return err
	}
	var paths []string
	seen := make(map[string]struct{})
	for _, target := range targets {
		collected, err := driver.CollectFiles(target)
		if err != nil {
			return err
		}
		for _, p := range collected {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		if !quiet {
			fmt.Fprintf(os.Stdout, "no %s files under %s\n", driver.SourceExt, targets[0])
		}
		return nil
	}

	var cache *driver.DiskCache
	if withCache {
		cache, err = driver.OpenDiskCache("larch")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	results, err := driver.CheckPaths(context.Background(), paths, jobs, cache)
	if err != nil {
		return err
	}

	opts := diagfmt.Options{
		Color:     useColor(cmd, os.Stderr),
		WithNotes: withNotes,
	}
	failed := false
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", result.Path, result.Err)
		case result.Diag != nil:
			failed = true
			if format == "json" {
				if err := diagfmt.JSON(os.Stdout, result.Diag, result.FS); err != nil {
					return err
				}
			} else {
				diagfmt.Pretty(os.Stderr, result.Diag, result.FS, opts)
			}
		default:
			if !quiet {
				suffix := ""
				if result.Cached {
					suffix = " (cached)"
				}
				fmt.Fprintf(os.Stdout, "%s: ok %s%s\n", result.Path, result.Type, suffix)
			}
		}
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

// resolveCheckTargets picks the paths to check: the explicit argument, or
// the manifest entry and includes discovered from the working directory.
func resolveCheckTargets(args []string) ([]string, error) {
	if len(args) == 1 {
		return args, nil
	}
	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(noLarchTomlMessage)
	}
	return manifest.CheckTargets()
}
