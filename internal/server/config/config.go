package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/voxel-world/internal/server/storage"
	"github.com/OCharnyshevich/voxel-world/internal/server/world"
	"github.com/OCharnyshevich/voxel-world/pkg/world/gen"
)

// Config holds the world configuration.
type Config struct {
	Seed         *int64 `json:"seed,omitempty" yaml:"seed,omitempty" toml:"seed,omitempty"` // overrides params.seed when set
	ChunkWidth   int    `json:"chunk_width" yaml:"chunk_width" toml:"chunk_width"`
	ChunkHeight  int    `json:"chunk_height" yaml:"chunk_height" toml:"chunk_height"`
	DrawDistance int    `json:"draw_distance" yaml:"draw_distance" toml:"draw_distance"`
	AsyncLoading bool   `json:"async_loading" yaml:"async_loading" toml:"async_loading"`
	IdleBudgetMS int    `json:"idle_budget_ms" yaml:"idle_budget_ms" toml:"idle_budget_ms"`
	Noise        string `json:"noise" yaml:"noise" toml:"noise"`          // "simplex" or "opensimplex"
	Pipeline     string `json:"pipeline" yaml:"pipeline" toml:"pipeline"` // "full" or "height"
	SaveDir      string `json:"save_dir" yaml:"save_dir" toml:"save_dir"`
	Backend      string `json:"backend" yaml:"backend" toml:"backend"`    // "file" or "leveldb"
	IndexPath    string `json:"index_path" yaml:"index_path" toml:"index_path"`

	Params gen.Params `json:"params" yaml:"params" toml:"params"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ChunkWidth:   24,
		ChunkHeight:  32,
		DrawDistance: 3,
		IdleBudgetMS: 1000,
		Noise:        string(gen.AlgorithmSimplex),
		Pipeline:     gen.PipelineFull.String(),
		SaveDir:      "data",
		Backend:      string(storage.BackendFile),
		IndexPath:    filepath.Join("data", "saves.db"),
		Params:       gen.DefaultParams(),
	}
}

// Load reads a config file over the defaults. The format follows the
// extension: .yaml/.yml, .toml or .json. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-width"] {
		cfg.ChunkWidth = fromFile.ChunkWidth
	}
	if !explicitFlags["chunk-height"] {
		cfg.ChunkHeight = fromFile.ChunkHeight
	}
	if !explicitFlags["draw-distance"] {
		cfg.DrawDistance = fromFile.DrawDistance
	}
	if !explicitFlags["async"] {
		cfg.AsyncLoading = fromFile.AsyncLoading
	}
	if !explicitFlags["idle-budget"] {
		cfg.IdleBudgetMS = fromFile.IdleBudgetMS
	}
	if !explicitFlags["noise"] {
		cfg.Noise = fromFile.Noise
	}
	if !explicitFlags["pipeline"] {
		cfg.Pipeline = fromFile.Pipeline
	}
	if !explicitFlags["save-dir"] {
		cfg.SaveDir = fromFile.SaveDir
	}
	if !explicitFlags["backend"] {
		cfg.Backend = fromFile.Backend
	}
	if !explicitFlags["index"] {
		cfg.IndexPath = fromFile.IndexPath
	}
	// Generation parameters have no flags.
	cfg.Params = fromFile.Params
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.ChunkWidth <= 0 {
		errs = append(errs, fmt.Errorf("chunk_width must be positive, got %d", c.ChunkWidth))
	}
	if c.ChunkHeight <= 0 {
		errs = append(errs, fmt.Errorf("chunk_height must be positive, got %d", c.ChunkHeight))
	}
	if c.DrawDistance < 0 {
		errs = append(errs, fmt.Errorf("draw_distance must not be negative, got %d", c.DrawDistance))
	}
	if c.IdleBudgetMS <= 0 {
		errs = append(errs, fmt.Errorf("idle_budget_ms must be positive, got %d", c.IdleBudgetMS))
	}
	if _, err := gen.ParseAlgorithm(c.Noise); err != nil {
		errs = append(errs, err)
	}
	if _, err := gen.ParsePipeline(c.Pipeline); err != nil {
		errs = append(errs, err)
	}
	if _, err := storage.ParseBackend(c.Backend); err != nil {
		errs = append(errs, err)
	}
	if err := c.params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("params: %w", err))
	}
	return errors.Join(errs...)
}

// IdleBudget returns the idle queue budget as a duration.
func (c *Config) IdleBudget() time.Duration {
	return time.Duration(c.IdleBudgetMS) * time.Millisecond
}

// WorldConfig translates c into a world.Config. c must be valid.
func (c *Config) WorldConfig() world.Config {
	noise, _ := gen.ParseAlgorithm(c.Noise)
	pipeline, _ := gen.ParsePipeline(c.Pipeline)

	wc := world.DefaultConfig()
	wc.Width = c.ChunkWidth
	wc.Height = c.ChunkHeight
	wc.DrawDistance = c.DrawDistance
	wc.Async = c.AsyncLoading
	wc.IdleBudget = c.IdleBudget()
	wc.Noise = noise
	wc.Pipeline = pipeline
	wc.Params = c.params()
	return wc
}

// StorageBackend returns the parsed backend. c must be valid.
func (c *Config) StorageBackend() storage.Backend {
	b, _ := storage.ParseBackend(c.Backend)
	return b
}

func (c *Config) params() gen.Params {
	p := c.Params
	if c.Seed != nil {
		p.Seed = *c.Seed
	}
	return p
}
