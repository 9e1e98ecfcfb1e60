// Package world streams chunks around an observer and routes block queries
// and edits to the owning chunk.
//
// A World is not safe for concurrent use. All calls, including RunIdle, are
// expected to come from one update loop.
package world

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
	"github.com/OCharnyshevich/voxel-world/pkg/world/gen"
	"github.com/OCharnyshevich/voxel-world/pkg/world/overlay"
	"github.com/OCharnyshevich/voxel-world/pkg/world/voxel"
)

var (
	// ErrMissingChunk is returned for positions whose chunk is not resident.
	ErrMissingChunk = errors.New("world: chunk not resident")
	// ErrChunkNotLoaded is returned while the owning chunk is still generating.
	ErrChunkNotLoaded = errors.New("world: chunk not loaded")
)

// Config holds the world configuration.
type Config struct {
	Width        int           // horizontal chunk size along X and Z
	Height       int           // vertical chunk size
	DrawDistance int           // chunks kept around the observer, Chebyshev radius
	Async        bool          // defer generation of streamed chunks to RunIdle
	IdleBudget   time.Duration // RunIdle budget when called with <= 0
	Noise        gen.Algorithm
	Pipeline     gen.Pipeline
	Registry     *block.Registry // nil selects block.Default()
	Params       gen.Params
	Renderer     Renderer // nil selects NopRenderer
}

// DefaultConfig returns a Config with the stock world dimensions.
func DefaultConfig() Config {
	return Config{
		Width:        24,
		Height:       32,
		DrawDistance: 3,
		IdleBudget:   time.Second,
		Noise:        gen.AlgorithmSimplex,
		Params:       gen.DefaultParams(),
	}
}

// World owns the resident chunks and the edit overlay.
type World struct {
	cfg      Config
	log      *slog.Logger
	reg      *block.Registry
	gen      *gen.Generator
	overlay  *overlay.Store
	chunks   map[ChunkPos]*Chunk
	queue    idleQueue
	renderer Renderer
}

// New creates an empty world. No chunk is resident until Generate or Update.
func New(cfg Config, log *slog.Logger) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid chunk size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.DrawDistance < 0 {
		return nil, fmt.Errorf("invalid draw distance %d", cfg.DrawDistance)
	}
	if cfg.Registry == nil {
		cfg.Registry = block.Default()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = NopRenderer{}
	}
	if log == nil {
		log = slog.Default()
	}

	g, err := cfg.newGenerator(cfg.Params)
	if err != nil {
		return nil, err
	}

	return &World{
		cfg:      cfg,
		log:      log,
		reg:      cfg.Registry,
		gen:      g,
		overlay:  overlay.New(),
		chunks:   make(map[ChunkPos]*Chunk),
		renderer: cfg.Renderer,
	}, nil
}

func (cfg Config) newGenerator(p gen.Params) (*gen.Generator, error) {
	return gen.New(p, cfg.Registry, gen.WithNoise(cfg.Noise), gen.WithPipeline(cfg.Pipeline))
}

// Config returns the configuration the world runs with.
func (w *World) Config() Config { return w.cfg }

// Registry returns the block registry.
func (w *World) Registry() *block.Registry { return w.reg }

// Params returns the current generation parameters.
func (w *World) Params() gen.Params { return w.gen.Params() }

// Generator returns the chunk generator.
func (w *World) Generator() *gen.Generator { return w.gen }

// Overlay returns the edit overlay. Callers must not mutate it while chunks
// are expected to stay consistent with it.
func (w *World) Overlay() *overlay.Store { return w.overlay }

// Generate rebuilds the world around the origin. All resident chunks are
// disposed; with clearOverlay the recorded edits are dropped as well. The
// [-d, d]² neighbourhood is generated synchronously.
func (w *World) Generate(clearOverlay bool) {
	start := time.Now()
	if clearOverlay {
		w.overlay.Clear()
	}
	w.disposeAll()

	d := w.cfg.DrawDistance
	for cx := -d; cx <= d; cx++ {
		for cz := -d; cz <= d; cz++ {
			w.generateChunk(w.newChunk(ChunkPos{cx, cz}))
		}
	}
	w.log.Info("world generated",
		"chunks", len(w.chunks),
		"seed", w.gen.Params().Seed,
		"edits", w.overlay.Len(),
		"elapsed", time.Since(start),
	)
}

// Update streams chunks around the observer: chunks farther than the draw
// distance are disposed, missing ones are created and generated right away
// or queued for RunIdle when the world is asynchronous.
func (w *World) Update(observer mgl64.Vec3) {
	b := BlockAtVec(observer)
	center, _ := w.WorldToChunkCoords(b.X, b.Y, b.Z)
	d := w.cfg.DrawDistance

	removed := 0
	for pos, c := range w.chunks {
		if !InDrawDistance(pos, center, d) {
			w.dispose(c)
			removed++
		}
	}

	added := 0
	for cx := center.X - d; cx <= center.X+d; cx++ {
		for cz := center.Z - d; cz <= center.Z+d; cz++ {
			pos := ChunkPos{cx, cz}
			if _, ok := w.chunks[pos]; ok {
				continue
			}
			c := w.newChunk(pos)
			if w.cfg.Async {
				w.queue.push(c)
			} else {
				w.generateChunk(c)
			}
			added++
		}
	}

	if added > 0 || removed > 0 {
		w.log.Debug("chunks streamed", "center", center, "added", added, "removed", removed, "queued", w.queue.len())
	}
}

// Regenerate rebuilds one resident chunk in place from the parameters and
// the overlay.
func (w *World) Regenerate(pos ChunkPos) error {
	c, ok := w.chunks[pos]
	if !ok {
		return ErrMissingChunk
	}
	w.renderer.Dispose(pos)
	w.generateChunk(c)
	return nil
}

// Restore swaps in new parameters and edits and regenerates the world. The
// current state is kept when params or the overlay are invalid.
func (w *World) Restore(params gen.Params, ov *overlay.Store) error {
	g, err := w.cfg.newGenerator(params)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if ov == nil {
		ov = overlay.New()
	}
	if err := ov.Validate(w.reg); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	w.gen = g
	w.cfg.Params = params
	w.overlay = ov
	w.Generate(false)
	return nil
}

// Chunks lists the resident chunks ordered by X then Z.
func (w *World) Chunks() []ChunkView {
	out := make([]ChunkView, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, w.view(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.X != out[j].Pos.X {
			return out[i].Pos.X < out[j].Pos.X
		}
		return out[i].Pos.Z < out[j].Pos.Z
	})
	return out
}

// Chunk returns the summary of the chunk at pos.
func (w *World) Chunk(pos ChunkPos) (ChunkView, bool) {
	c, ok := w.chunks[pos]
	if !ok {
		return ChunkView{}, false
	}
	return w.view(c), true
}

// Instances calls fn for every voxel of a loaded chunk that holds a render
// instance.
func (w *World) Instances(pos ChunkPos, fn func(l LocalPos, v voxel.Voxel)) error {
	c, ok := w.chunks[pos]
	if !ok {
		return ErrMissingChunk
	}
	if !c.Loaded() {
		return ErrChunkNotLoaded
	}
	c.grid.Each(func(x, y, z int, v voxel.Voxel) {
		if v.HasInstance() {
			fn(LocalPos{x, y, z}, v)
		}
	})
	return nil
}

// Digest hashes the block ids of a loaded chunk.
func (w *World) Digest(pos ChunkPos) (uint64, error) {
	c, ok := w.chunks[pos]
	if !ok {
		return 0, ErrMissingChunk
	}
	if !c.Loaded() {
		return 0, ErrChunkNotLoaded
	}
	return c.grid.Digest(), nil
}

// SpawnHeight returns the first free Y above the terrain surface at (x, z).
func (w *World) SpawnHeight(x, z int) int {
	return min(w.gen.Height(x, z), w.cfg.Height-1) + 1
}

func (w *World) newChunk(pos ChunkPos) *Chunk {
	// Dimensions were validated in New.
	grid, _ := voxel.NewGrid(w.cfg.Width, w.cfg.Height)
	c := &Chunk{pos: pos, grid: grid, state: StatePending}
	w.chunks[pos] = c
	return c
}

func (w *World) generateChunk(c *Chunk) {
	c.state = StateGenerating
	w.gen.Generate(c.grid, c.pos.X, c.pos.Z, w.overlay)
	w.buildInstances(c)
	c.state = StateLoaded
	w.log.Debug("chunk loaded", "cx", c.pos.X, "cz", c.pos.Z, "instances", c.instances)
}

func (w *World) dispose(c *Chunk) {
	c.state = StateDisposed
	c.instances = 0
	w.renderer.Dispose(c.pos)
	delete(w.chunks, c.pos)
	w.log.Debug("chunk disposed", "cx", c.pos.X, "cz", c.pos.Z)
}

func (w *World) disposeAll() {
	for _, c := range w.chunks {
		w.dispose(c)
	}
	w.queue.reset()
}
