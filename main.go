package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"sinpath/config"
	"sinpath/data"
	"sinpath/generation"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		seedFlag   = flag.String("seed", "", "run seed, random when empty")
		presetFlag = flag.String("preset", "", "rule preset: balanced, chaotic or safe")
		format     = flag.String("format", "text", "map output: text, json or yaml")
		scan       = flag.Int("scan", 0, "generate this many seeds and report collisions")
		walk       = flag.Bool("walk", false, "play the run headless, boss by boss")
		saveKey    = flag.String("save", "", "save the walked run under this key")
		view       = flag.Bool("view", false, "open the map viewer")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *seedFlag != "" {
		cfg.Seed = *seedFlag
	}
	if *presetFlag != "" {
		cfg.Preset = *presetFlag
	}

	level, _ := cfg.Level()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if err := run(context.Background(), cfg, options{
		format:  *format,
		scan:    *scan,
		walk:    *walk,
		saveKey: *saveKey,
		view:    *view,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

type options struct {
	format  string
	scan    int
	walk    bool
	saveKey string
	view    bool
}

func run(ctx context.Context, cfg config.Config, opts options, log zerolog.Logger) error {
	catalog := data.DefaultCatalog()
	if cfg.CatalogPath != "" {
		c, err := data.LoadCatalogFromFile(cfg.CatalogPath)
		if err != nil {
			return err
		}
		catalog = c
	}

	rules, err := generation.PresetByName(cfg.Preset)
	if err != nil {
		return err
	}

	genOpts := []generation.Option{
		generation.WithCatalog(catalog),
		generation.WithFinaleLayer(cfg.IncludeFinale),
		generation.WithLogger(log.With().Str("component", "generator").Logger()),
	}
	if cfg.StrictValidation {
		genOpts = append(genOpts, generation.WithStrictValidation())
	}
	gen := generation.NewMapGenerator(genOpts...)

	if opts.scan > 0 {
		return scanSeeds(ctx, gen, rules, opts.scan, os.Stdout, log)
	}

	seed := generation.ParseSeed(cfg.Seed)
	m, report, err := gen.Generate(seed, &rules)
	if err != nil {
		return err
	}
	log.Info().
		Str("seed", seed.Text).
		Str("preset", rules.Name).
		Int("layers", len(m.Layers)).
		Int("nodes", m.NodeCount()).
		Int("violations", len(report.Violations())).
		Msg("map generated")

	r := newRun(seed, &rules, m, report, catalog, log)

	switch {
	case opts.view:
		return runViewer(r)
	case opts.walk:
		if err := r.walk(ctx, os.Stdout); err != nil {
			return err
		}
		if opts.saveKey != "" {
			return r.save(ctx, cfg.SaveDir, opts.saveKey)
		}
		return nil
	default:
		return writeMap(os.Stdout, m, report, opts.format)
	}
}
