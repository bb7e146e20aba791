package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/lhaig/vyc/internal/compiler"
	"github.com/lhaig/vyc/internal/config"
	"github.com/lhaig/vyc/internal/watch"
)

// project is a loaded configuration plus its discovered sources
type project struct {
	cfg      *config.Config
	root     string
	format   compiler.Format
	outDir   string
	registry *compiler.SourceRegistry
	cache    *compiler.Cache
}

// loadProject reads --config, or the project file of the working directory,
// or falls back to the defaults.
func loadProject(ctx *cli.Context) (*project, error) {
	path := ctx.GlobalString(configFlag.Name)
	if path == "" {
		if found, ok := config.Find("."); ok {
			path = found
		}
	}

	cfg := config.Default
	root := "."
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
		root = filepath.Dir(path)
		log.Debug("Loaded project file", "path", path, "name", cfg.Name)
	}

	format, err := emitFormat(ctx, cfg.Emit)
	if err != nil {
		return nil, err
	}
	outDir := ctx.String(outFlag.Name)
	if outDir == "" {
		outDir = filepath.Join(root, cfg.OutDir)
	}

	registry, err := compiler.NewSourceRegistry(root)
	if err != nil {
		return nil, err
	}
	cache, err := compiler.NewCache(0)
	if err != nil {
		return nil, err
	}
	return &project{
		cfg:      &cfg,
		root:     root,
		format:   format,
		outDir:   outDir,
		registry: registry,
		cache:    cache,
	}, nil
}

// build compiles every source once and writes the emitted output
func (p *project) build(ctx context.Context) error {
	if err := p.registry.Discover(p.cfg.Sources); err != nil {
		return err
	}
	paths := p.registry.Paths()
	if len(paths) == 0 {
		return fmt.Errorf("no sources matched %v", p.cfg.Sources)
	}

	builder := &compiler.Builder{Jobs: p.cfg.Jobs, Cache: p.cache, Label: p.registry.Rel}
	report, err := builder.Build(ctx, paths)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		written, err := compiler.EmitToDir(res, p.format, p.outDir, p.registry.Rel(res.Path))
		if err != nil {
			return err
		}
		log.Info("Compiled contract", "source", p.registry.Rel(res.Path), "output", written, "cached", res.Cached)
	}
	if report.Diagnostics.HasErrors() {
		printDiagnostics(report.Diagnostics)
		return fmt.Errorf("%d of %d sources failed", report.Diagnostics.Count(), len(paths))
	}
	return nil
}

func buildCommand(ctx *cli.Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}
	return p.build(context.Background())
}

func watchCommand(ctx *cli.Context) error {
	p, err := loadProject(ctx)
	if err != nil {
		return err
	}

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.build(sigctx); err != nil {
		log.Error("Initial build failed", "err", err)
	}

	dirs := p.registry.Dirs()
	if len(dirs) == 0 {
		dirs = []string{p.registry.Root()}
	}
	w := &watch.Watcher{Dirs: dirs, Suffix: compiler.SourceExt}
	log.Info("Watching for changes", "dirs", len(dirs))
	return w.Watch(sigctx, func() error { return p.build(sigctx) })
}
