package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/govdeck/src/build"
	"github.com/sofmeright/govdeck/src/output"
)

var (
	buildOutDir   string
	buildOutput   string
	buildParallel int
)

var buildCmd = &cobra.Command{
	Use:   "build [deck...]",
	Short: "Write presentations",
	Long: `Render decks to .pptx files.

Without arguments every configured deck is built; the default
configuration builds the overview deck. Arguments pick configured deck
ids, built-in deck names, or deck files (.yml, .yaml, .toml).

Each written file is reported on stdout as "Presentation created: <path>".`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildOutDir, "out-dir", "", "output directory (default: build.out_dir)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file name (single deck only)")
	buildCmd.Flags().IntVar(&buildParallel, "parallel", 0, "decks built concurrently (default: build.parallel)")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	b := build.New(cfg, rootDir(), logger)
	decks, err := b.Select(cfg.Decks, args)
	if err != nil {
		return err
	}

	if buildOutput != "" {
		if len(decks) != 1 {
			return fmt.Errorf("--output needs exactly one deck, %d selected", len(decks))
		}
		decks[0].Output = buildOutput
	}

	if buildOutDir != "" {
		b.OutDir = buildOutDir
	}
	if buildParallel < 0 {
		return fmt.Errorf("--parallel must be >= 0, got %d", buildParallel)
	}
	if buildParallel > 0 {
		b.Parallel = buildParallel
	}

	start := time.Now()
	results, err := b.Build(context.Background(), decks)

	// Decks written before a failure are still reported.
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Presentation created: %s\n", r.Path)
	}

	if verbose && len(results) > 0 {
		w := os.Stderr
		end := output.DetectCI().Group(w, "govdeck_build", "Build")
		sec := output.NewSection(w, output.DetectStyle(), "Build", output.Elapsed(time.Since(start)))
		for _, r := range results {
			sec.Built(r.ID, r.Path, r.Slides, r.Bytes, r.Elapsed)
		}
		sec.Close()
		end()
	}
	return err
}
