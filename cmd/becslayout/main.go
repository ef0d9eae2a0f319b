// Command becslayout reports how the component names used by a template file
// pack into identifiers under the configured index bits, and what each
// installed entity costs in mask words. When scripting predicates are
// configured, each one is evaluated against a freshly spawned entity of every
// template.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fourbecs/becs/internal/config"
	"github.com/fourbecs/becs/internal/core/ecs"
	"github.com/fourbecs/becs/internal/data"
	"github.com/fourbecs/becs/internal/scripting"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg := config.Default()
	if p := os.Getenv("BECS_CONFIG"); p != "" {
		loaded, err := config.Load(p)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	path := cfg.Templates.Path
	if len(args) > 0 {
		path = args[0]
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read templates: %w", err)
	}

	layout, err := cfg.Layout()
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	reg := ecs.NewRegistry(layout)
	if _, err := data.DeclareTemplateTags(raw, reg); err != nil {
		return fmt.Errorf("declare components: %w", err)
	}
	table, err := data.ParseTemplateTable(raw, reg)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	log.Info("templates loaded",
		zap.String("path", path),
		zap.Int("templates", table.Count()),
		zap.Int("components", reg.Len()))

	world := ecs.NewWorld(reg, log)
	defer world.Close()
	engine := scripting.NewEngine(world, log)
	defer engine.Close()
	if err := engine.LoadDir(cfg.Scripting.Dir); err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}

	fmt.Fprintf(out, "index bits %d: %d slots x %d bits, %d of %d identifiers used, %d bytes of mask per entity\n\n",
		layout.IndexBits(), layout.Words(), layout.BitsPerWord(),
		reg.Len(), layout.Capacity(), layout.Words()*8)

	for _, name := range table.Names() {
		fmt.Fprintf(out, "%s\n", name)
		for _, k := range table.Get(name).Kinds {
			id := k.ID()
			fmt.Fprintf(out, "  %-24s slot %d  bit %2d  %#018x\n", k.Name(), id.Index(layout), id.Offset(layout), uint64(id))
		}
		if len(cfg.Scripting.Predicates) == 0 {
			continue
		}
		eid, err := table.Spawn(world, name)
		if err != nil {
			return fmt.Errorf("spawn %s: %w", name, err)
		}
		for _, fn := range cfg.Scripting.Predicates {
			ok, err := engine.Check(fn, eid)
			if err != nil {
				return fmt.Errorf("predicate %s on %s: %w", fn, name, err)
			}
			fmt.Fprintf(out, "  %-24s %t\n", fn+"()", ok)
		}
		world.Destroy(eid)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = level
	// stdout carries the report.
	zapCfg.OutputPaths = []string{"stderr"}
	return zapCfg.Build()
}
