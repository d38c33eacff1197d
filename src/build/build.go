// Package build resolves configured decks and writes them as presentations.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sofmeright/govdeck/src/config"
	"github.com/sofmeright/govdeck/src/deck"
	"github.com/sofmeright/govdeck/src/render"
	"github.com/sofmeright/govdeck/src/tmpl"
)

// Builder turns deck configs into .pptx files.
type Builder struct {
	RootDir  string // base for relative deck files and out_dir
	OutDir   string
	Parallel int
	Render   render.Options
	Resolver *tmpl.Resolver
	Log      *zap.Logger
}

// Result describes one written presentation.
type Result struct {
	ID      string
	Path    string
	Slides  int
	Bytes   int
	Elapsed time.Duration
}

// New creates a builder from configuration.
func New(cfg *config.Config, rootDir string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		RootDir:  rootDir,
		OutDir:   cfg.Build.OutDir,
		Parallel: cfg.Build.Parallel,
		Render: render.Options{
			Creator:      cfg.Presenter.Creator,
			AccentColor:  cfg.Render.AccentColor,
			HeadingColor: cfg.Render.HeadingColor,
			BodyColor:    cfg.Render.BodyColor,
		},
		Resolver: &tmpl.Resolver{
			Company: cfg.Presenter.Company,
			Email:   cfg.Presenter.Email,
			Date:    cfg.Presenter.Date,
			Vars:    cfg.Vars,
			RootDir: rootDir,
		},
		Log: log,
	}
}

// Load returns the raw deck a config points at, after the revision check.
// Templates are not expanded.
func (b *Builder) Load(dc config.DeckConfig) (*deck.Deck, error) {
	var (
		d   *deck.Deck
		err error
	)
	switch {
	case dc.Builtin != "":
		d, err = deck.Builtin(dc.Builtin)
	case dc.File != "":
		d, err = deck.Load(b.path(dc.File))
	default:
		return nil, fmt.Errorf("deck %s: neither builtin nor file set", dc.ID)
	}
	if err != nil {
		return nil, err
	}

	if err := d.CheckRevision(dc.Revision); err != nil {
		return nil, err
	}
	if dc.Output != "" {
		d.Output = dc.Output
	}
	if d.Output == "" {
		d.Output = dc.ID + ".pptx"
	}
	if err := config.CheckOutputPath(d.Output); err != nil {
		return nil, fmt.Errorf("deck %s: %w", dc.ID, err)
	}
	return d, nil
}

// Resolve loads a deck, expands its templates and validates the result.
func (b *Builder) Resolve(dc config.DeckConfig) (*deck.Deck, error) {
	raw, err := b.Load(dc)
	if err != nil {
		return nil, err
	}
	d := raw.Resolve(b.Resolver.Resolve)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// OutputPath returns where a deck will be written.
func (b *Builder) OutputPath(d *deck.Deck) string {
	out := b.OutDir
	if out == "" {
		out = "."
	}
	return b.path(filepath.Join(out, d.Output))
}

// Build renders and writes every deck. Decks are independent and run
// concurrently up to Parallel at a time; the first failure cancels the rest.
// Results are returned in input order. On failure the decks that were
// already written are still returned alongside the error.
func (b *Builder) Build(ctx context.Context, decks []config.DeckConfig) ([]Result, error) {
	results := make([]Result, len(decks))

	g, ctx := errgroup.WithContext(ctx)
	limit := b.Parallel
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, dc := range decks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := b.buildOne(dc)
			if err != nil {
				return fmt.Errorf("building %s: %w", dc.ID, err)
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		written := results[:0]
		for _, r := range results {
			if r.Path != "" {
				written = append(written, r)
			}
		}
		results = written
	}
	return results, err
}

func (b *Builder) buildOne(dc config.DeckConfig) (Result, error) {
	start := time.Now()

	d, err := b.Resolve(dc)
	if err != nil {
		return Result{}, err
	}

	data, err := render.Render(d, b.Render)
	if err != nil {
		return Result{}, err
	}

	path := b.OutputPath(d)
	if err := render.WriteFile(path, data); err != nil {
		return Result{}, err
	}

	res := Result{
		ID:      dc.ID,
		Path:    path,
		Slides:  len(d.Slides),
		Bytes:   len(data),
		Elapsed: time.Since(start),
	}
	b.Log.Debug("deck written",
		zap.String("deck", dc.ID),
		zap.String("path", path),
		zap.Int("slides", res.Slides),
		zap.Int("bytes", res.Bytes),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (b *Builder) path(p string) string {
	if filepath.IsAbs(p) || b.RootDir == "" {
		return p
	}
	return filepath.Join(b.RootDir, p)
}

// Select filters decks by id. Names that match no configured deck but name a
// built-in deck are built ad hoc with the built-in's default output. Deck file
// arguments are resolved against RootDir, the same base Load reads them from.
func (b *Builder) Select(decks []config.DeckConfig, names []string) ([]config.DeckConfig, error) {
	if len(names) == 0 {
		return decks, nil
	}

	byID := make(map[string]config.DeckConfig, len(decks))
	for _, d := range decks {
		byID[d.ID] = d
	}

	selected := make([]config.DeckConfig, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if d, ok := byID[n]; ok {
			selected = append(selected, d)
			continue
		}
		if deck.IsBuiltin(n) {
			selected = append(selected, config.DeckConfig{ID: n, Builtin: n})
			continue
		}
		if ext := filepath.Ext(n); ext == ".yml" || ext == ".yaml" || ext == ".toml" {
			if _, err := os.Stat(b.path(n)); err == nil {
				id := filepath.Base(n[:len(n)-len(ext)])
				selected = append(selected, config.DeckConfig{ID: id, File: n})
				continue
			}
		}
		return nil, fmt.Errorf("%w %q: not configured, not built-in (available: %v)", deck.ErrUnknownDeck, n, deck.Names())
	}
	return selected, nil
}
