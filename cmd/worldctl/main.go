package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/voxel-world/internal/server/config"
)

// runFunc executes a command once flags are parsed.
type runFunc func(ctx context.Context, e *env) error

// A command registers its own flags in setup and returns the function to run.
type command struct {
	name  string
	usage string
	setup func(fs *flag.FlagSet) runFunc
}

var commands = []command{
	{"generate", "generate the world around the origin and print chunk summaries", generateCmd},
	{"walk", "move an observer across the world, streaming chunks", walkCmd},
	{"digest", "hash a region of generated chunks in parallel", digestCmd},
	{"save", "generate, apply edits and save the world", saveCmd},
	{"load", "load a saved world and regenerate it", loadCmd},
	{"saves", "list recorded saves, newest first", savesCmd},
	{"fetch", "download a save directory and verify it", fetchCmd},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var cmd *command
	for i := range commands {
		if commands[i].name == os.Args[1] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	e, run, err := newEnv(cmd, os.Args[2:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(ctx, e); err != nil {
		e.log.Error(cmd.name+" failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: worldctl <command> [flags]")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", c.name, c.usage)
	}
}

// env is what every command starts from.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

func newEnv(cmd *command, args []string) (*env, runFunc, error) {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)

	configPath := fs.String("config", "", "config file (.yaml, .toml or .json)")
	verbose := fs.Bool("v", false, "debug logging")
	seed := fs.Int64("seed", 0, "world seed, overrides params.seed")
	fs.IntVar(&cfg.ChunkWidth, "chunk-width", cfg.ChunkWidth, "chunk width and depth in blocks")
	fs.IntVar(&cfg.ChunkHeight, "chunk-height", cfg.ChunkHeight, "chunk height in blocks")
	fs.IntVar(&cfg.DrawDistance, "draw-distance", cfg.DrawDistance, "chunks kept around the observer")
	fs.BoolVar(&cfg.AsyncLoading, "async", cfg.AsyncLoading, "defer chunk generation to the idle queue")
	fs.IntVar(&cfg.IdleBudgetMS, "idle-budget", cfg.IdleBudgetMS, "idle queue budget in milliseconds")
	fs.StringVar(&cfg.Noise, "noise", cfg.Noise, "noise algorithm: simplex or opensimplex")
	fs.StringVar(&cfg.Pipeline, "pipeline", cfg.Pipeline, "generation pipeline: full or height")
	fs.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "save directory")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: file or leveldb")
	fs.StringVar(&cfg.IndexPath, "index", cfg.IndexPath, "save index database")
	run := cmd.setup(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if explicit["seed"] {
		cfg.Seed = seed
	}
	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			return nil, nil, err
		}
		config.Merge(cfg, fromFile, explicit)
		log.Info("loaded config", "path", *configPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return &env{cfg: cfg, log: log}, run, nil
}
