package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sofmeright/govdeck/src/build"
	"github.com/sofmeright/govdeck/src/lint"
	_ "github.com/sofmeright/govdeck/src/lint/modules"
	"github.com/sofmeright/govdeck/src/output"
)

var (
	lintModules  []string
	lintNoModule []string
)

var lintCmd = &cobra.Command{
	Use:   "lint [deck...]",
	Short: "Check deck content",
	Long: `Check resolved deck text before it is rendered.

Modules run per deck in parallel. Any critical finding fails the command.
In CI a JUnit report is written to lint.report_dir.`,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringSliceVar(&lintModules, "module", nil, "run only these modules (comma-separated)")
	lintCmd.Flags().StringSliceVar(&lintNoModule, "no-module", nil, "skip these modules (comma-separated)")

	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	b := build.New(cfg, rootDir(), logger)
	decks, err := b.Select(cfg.Decks, args)
	if err != nil {
		return err
	}

	engine, err := lint.NewEngine(cfg.Lint, lintModules, lintNoModule)
	if err != nil {
		return err
	}
	logger.Debug("lint modules", zap.Strings("modules", engine.ModuleNames()))

	// Templates are expanded but the deck is not validated here: structure
	// problems are reported as findings instead of aborting the run.
	targets := make([]lint.Target, 0, len(decks))
	ids := make([]string, 0, len(decks))
	for _, dc := range decks {
		raw, err := b.Load(dc)
		if err != nil {
			return err
		}
		targets = append(targets, lint.Target{ID: dc.ID, Deck: raw.Resolve(b.Resolver.Resolve)})
		ids = append(ids, dc.ID)
	}

	st := output.DetectStyle()
	ci := output.DetectCI()
	w := cmd.OutOrStdout()

	ci.Context(w, ids)

	start := time.Now()
	findings, modStats, runErr := engine.RunWithStats(context.Background(), targets)
	elapsed := time.Since(start)

	if ci.Active() {
		path, jErr := output.WriteJUnit(cfg.Lint.ReportDir, targets, findings, elapsed)
		if jErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write junit report: %v\n", jErr)
		} else {
			logger.Debug("junit report written", zap.String("path", path))
		}
	}

	end := ci.Group(w, "govdeck_lint", "Lint")
	sec := output.NewSection(w, st, "Lint", output.Elapsed(elapsed))
	sec.ModuleTable(modStats)
	sec.Rule()
	for _, id := range ids {
		status, detail := output.DeckOutcome(findings, id)
		sec.Deck(id, status, detail)
	}
	sec.Close()
	end()

	counts := output.Count(findings)
	if len(findings) > 0 {
		endFindings := ci.Group(w, "govdeck_findings", "Findings")
		fSec := output.NewSection(w, st, "Findings", "")
		fSec.Findings(findings)
		fSec.Rule()
		fSec.Row("%s", counts.Summary(len(targets), st))
		fSec.Close()
		endFindings()
	}

	if runErr != nil {
		return fmt.Errorf("lint: %w", runErr)
	}
	if lint.HasCritical(findings) {
		return fmt.Errorf("lint failed: %d critical findings", counts.Critical)
	}
	return nil
}
