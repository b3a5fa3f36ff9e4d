package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ctf-cavegen/internal/batch"
	"ctf-cavegen/internal/config"
	"ctf-cavegen/internal/generate"
	"ctf-cavegen/internal/preview"
	"ctf-cavegen/internal/render"
	"ctf-cavegen/internal/runlog"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool

	width, height int
	seed          int64
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:          "levelgen",
		Short:        "Procedural capture-the-flag cave level generator",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log every failed attempt")
	pf.IntVar(&g.width, "width", 40, "level width in cells")
	pf.IntVar(&g.height, "height", 40, "level height in cells")
	pf.Int64Var(&g.seed, "seed", 0, "RNG seed (0 picks one from the clock)")

	rootCmd.AddCommand(generateCmd(g))
	rootCmd.AddCommand(printCmd(g))
	rootCmd.AddCommand(previewCmd(g))
	return rootCmd
}

// setup builds the logger and the effective configuration: file and
// environment first, then any flag the user set explicitly.
func (g *globals) setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadWithEnv(g.configPath, logger)
	if err != nil {
		return cfg, logger, err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = g.width
	}
	if flags.Changed("height") {
		cfg.Height = g.height
	}
	if flags.Changed("seed") {
		cfg.Seed = g.seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, logger, cfg.Validate()
}

func generateCmd(g *globals) *cobra.Command {
	var (
		count, workers int
		outDir, tiles  string
		noPNG, overlay bool
		noRunLog       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of levels into an output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("count") {
				cfg.Count = count
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("out") {
				cfg.OutDir = outDir
			}
			if flags.Changed("tiles") {
				cfg.TileDir = tiles
			}
			if noPNG {
				cfg.PNG = false
			}
			if noRunLog {
				cfg.RunLog = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runGenerate(ctx, cfg, overlay, logger)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&count, "count", "n", 1, "number of levels")
	f.IntVarP(&workers, "workers", "w", 4, "parallel workers")
	f.StringVarP(&outDir, "out", "o", "generated", "output directory")
	f.StringVar(&tiles, "tiles", "", "directory with wall.png, floor.png, red_flag.png, blue_flag.png")
	f.BoolVar(&noPNG, "no-png", false, "skip PNG output")
	f.BoolVar(&overlay, "overlay-path", false, "tint the flag to flag path in PNGs")
	f.BoolVar(&noRunLog, "no-run-log", false, "do not append to levels.jsonl")
	return cmd
}

func runGenerate(ctx context.Context, cfg config.Config, overlay bool, logger *slog.Logger) error {
	var tiles *render.TileSet
	if cfg.PNG {
		ts := render.DefaultTileSet()
		if cfg.TileDir != "" {
			loaded, err := render.LoadTileSet(cfg.TileDir)
			if err != nil {
				return err
			}
			ts = loaded
		}
		tiles = &ts
	}
	dirSink, err := batch.NewDirSink(cfg.OutDir, tiles)
	if err != nil {
		return err
	}
	dirSink.OverlayPath = overlay

	runLogDir := ""
	if cfg.RunLog {
		if runLogDir, err = runlog.DefaultDir(); err != nil {
			logger.Warn("run log disabled", "error", err)
		}
	}

	report := batch.SinkFunc(func(it batch.Item) error {
		rec := runlog.Record{
			Timestamp: time.Now().UTC(),
			ID:        it.ID.String(),
			Seed:      it.Seed,
			Width:     cfg.Width,
			Height:    cfg.Height,
		}
		if it.Err != nil {
			rec.Attempts = cfg.Generation.MaxAttempts
			rec.Error = it.Err.Error()
			logger.Warn("level failed", "index", it.Index, "seed", it.Seed, "error", it.Err)
		} else {
			rec.Attempts = it.Level.Attempts
			rec.Passes = it.Level.Passes
			rec.FloorFraction = it.Level.FloorFraction()
			rec.PathLength = it.Level.Path.Len()
			logger.Info("level written", "index", it.Index, "id", it.ID, "seed", it.Seed)
		}
		if runLogDir != "" {
			runlog.Append(runLogDir, rec, logger)
		}
		return nil
	})

	gen := generate.NewGenerator(cfg.Generation, logger)
	opts := batch.Options{
		Count:   cfg.Count,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
	}
	start := time.Now()
	sum, err := batch.Run(ctx, opts, gen, batch.Tee(dirSink, report))
	logger.Info("batch finished",
		"generated", sum.Generated, "failed", sum.Failed,
		"attempts", sum.Attempts, "elapsed", time.Since(start).Round(time.Millisecond),
		"out", cfg.OutDir)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	return nil
}

func printCmd(g *globals) *cobra.Command {
	var ascii, showPath, asJSON bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Generate one level and print it to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			gen := generate.NewGenerator(cfg.Generation, logger)
			level, err := gen.Generate(cfg.Width, cfg.Height, rand.New(rand.NewSource(cfg.Seed)))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(batch.Document{ID: uuid.New(), Seed: cfg.Seed, Level: level})
			}
			_, err = fmt.Fprint(out, render.Text(level, showPath, ascii))
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&ascii, "ascii", false, "plain characters instead of emoji")
	f.BoolVar(&showPath, "path", false, "mark the flag to flag path")
	f.BoolVar(&asJSON, "json", false, "print the level document as JSON")
	return cmd
}

func previewCmd(g *globals) *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse generated levels in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("theme") {
				cfg.Theme = themeName
			}
			theme, ok := render.ThemeByName(cfg.Theme)
			if !ok {
				return fmt.Errorf("unknown theme %q", cfg.Theme)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init screen: %w", err)
			}
			defer screen.Fini()

			// The screen owns the terminal, so the generator logs nowhere.
			preview.Run(screen, generate.NewGenerator(cfg.Generation, nil), cfg.Width, cfg.Height, cfg.Seed, theme)
			return nil
		},
	}
	cmd.Flags().StringVar(&themeName, "theme", "cave", "glyph theme: cave, ice, fungal, ascii")
	return cmd
}
