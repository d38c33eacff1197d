package lint

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/sofmeright/govdeck/src/config"
)

// Engine orchestrates lint modules across decks.
type Engine struct {
	Config  config.LintConfig
	Modules []Module
}

// NewEngine creates a lint engine. With only set, exactly those modules run
// regardless of config; otherwise every registered module that config (or its
// own default) enables. Names in skip are dropped either way.
func NewEngine(cfg config.LintConfig, only []string, skip []string) (*Engine, error) {
	names, explicit := only, len(only) > 0
	if !explicit {
		names = All()
	}

	e := &Engine{Config: cfg}
	for _, name := range names {
		if slices.Contains(skip, name) {
			continue
		}
		m, err := Get(name)
		if err != nil {
			return nil, err
		}
		if !explicit && !enabledInConfig(cfg, name, m) {
			continue
		}
		if err := configureModule(m, cfg, name); err != nil {
			return nil, err
		}
		e.Modules = append(e.Modules, m)
	}

	if len(e.Modules) == 0 {
		return nil, fmt.Errorf("no lint modules selected")
	}
	return e, nil
}

func enabledInConfig(cfg config.LintConfig, name string, m Module) bool {
	if mc, ok := cfg.Modules[name]; ok && mc.Enabled != nil {
		return *mc.Enabled
	}
	return m.DefaultEnabled()
}

// ModuleStats holds per-module scan statistics.
type ModuleStats struct {
	Name     string
	Decks    int
	Findings int
	Critical int
	Warnings int
}

// Run executes all modules against the given decks and returns findings.
func (e *Engine) Run(ctx context.Context, targets []Target) ([]Finding, error) {
	findings, _, err := e.RunWithStats(ctx, targets)
	return findings, err
}

// check is one module run against one deck.
type check struct {
	mod    int
	target Target
}

// RunWithStats executes all modules and returns findings plus per-module
// statistics. Findings are ordered by deck, slide, then module.
func (e *Engine) RunWithStats(ctx context.Context, targets []Target) ([]Finding, []ModuleStats, error) {
	checks := make([]check, 0, len(targets)*len(e.Modules))
	for _, t := range targets {
		for mi := range e.Modules {
			checks = append(checks, check{mod: mi, target: t})
		}
	}

	results := make([][]Finding, len(checks))
	failures := make([]error, len(checks))

	// Modules keep state between calls, so each one runs a single deck at a time.
	modLocks := make([]sync.Mutex, len(e.Modules))
	sem := semaphore.NewWeighted(int64(runtime.NumCPU() * 2))

	var (
		wg         sync.WaitGroup
		dispatched int
		acquireErr error
	)
	for i, c := range checks {
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		dispatched++
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			m := e.Modules[c.mod]
			modLocks[c.mod].Lock()
			found, err := m.Check(ctx, c.target)
			modLocks[c.mod].Unlock()
			if err != nil {
				failures[i] = fmt.Errorf("%s: %s: %w", m.Name(), c.target.ID, err)
				return
			}
			for k := range found {
				found[k].Deck = c.target.ID
				found[k].Module = m.Name()
			}
			results[i] = found
		}()
	}
	wg.Wait()

	stats := make([]ModuleStats, len(e.Modules))
	for i, m := range e.Modules {
		stats[i].Name = m.Name()
	}

	var (
		findings []Finding
		errs     []error
	)
	for i, c := range checks[:dispatched] {
		stats[c.mod].Decks++
		if failures[i] != nil {
			errs = append(errs, failures[i])
			continue
		}
		stats[c.mod].count(results[i])
		findings = append(findings, results[i]...)
	}
	if acquireErr != nil {
		errs = append(errs, acquireErr)
	}

	SortFindings(findings)

	if len(errs) > 0 {
		return findings, stats, fmt.Errorf("%d module errors (first: %w)", len(errs), errs[0])
	}
	return findings, stats, nil
}

func (s *ModuleStats) count(findings []Finding) {
	s.Findings += len(findings)
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warnings++
		}
	}
}

// SortFindings orders findings by deck, slide, module, then message.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Deck != b.Deck {
			return a.Deck < b.Deck
		}
		if a.Slide != b.Slide {
			return a.Slide < b.Slide
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.Message < b.Message
	})
}

// HasCritical reports whether any finding is critical.
func HasCritical(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// ModuleNames returns the names of all active modules in this engine.
func (e *Engine) ModuleNames() []string {
	names := make([]string, len(e.Modules))
	for i, m := range e.Modules {
		names[i] = m.Name()
	}
	return names
}

// configureModule passes YAML options to modules that implement ConfigurableModule.
func configureModule(m Module, cfg config.LintConfig, name string) error {
	cm, ok := m.(ConfigurableModule)
	if !ok {
		return nil
	}
	mc, exists := cfg.Modules[name]
	if !exists || mc.Options == nil {
		// Call with empty map so the module can apply defaults.
		return cm.Configure(nil)
	}
	return cm.Configure(mc.Options)
}
