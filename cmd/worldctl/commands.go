package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxel-world/internal/server/storage"
	"github.com/OCharnyshevich/voxel-world/internal/server/world"
	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
)

func (e *env) newWorld(r world.Renderer) (*world.World, error) {
	wc := e.cfg.WorldConfig()
	wc.Renderer = r
	return world.New(wc, e.log)
}

func (e *env) openStore() (storage.Store, error) {
	return storage.Open(e.cfg.StorageBackend(), e.cfg.SaveDir, e.log)
}

func printChunks(w *world.World) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CX\tCZ\tSTATE\tINSTANCES\tORIGIN")
	for _, c := range w.Chunks() {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%v\n", c.Pos.X, c.Pos.Z, c.State, c.Instances, c.Origin)
	}
	tw.Flush()
}

func generateCmd(fs *flag.FlagSet) runFunc {
	return func(ctx context.Context, e *env) error {
		r := world.NewInstanceCounter()
		w, err := e.newWorld(r)
		if err != nil {
			return err
		}
		w.Generate(true)
		printChunks(w)
		fmt.Printf("chunks=%d instances=%d spawn_y=%d\n", len(w.Chunks()), r.Total(), w.SpawnHeight(0, 0))
		return nil
	}
}

func walkCmd(fs *flag.FlagSet) runFunc {
	steps := fs.Int("steps", 8, "number of observer moves")
	dx := fs.Float64("dx", 24, "observer X movement per step, in blocks")
	dz := fs.Float64("dz", 0, "observer Z movement per step, in blocks")
	return func(ctx context.Context, e *env) error {
		r := world.NewInstanceCounter()
		w, err := e.newWorld(r)
		if err != nil {
			return err
		}
		w.Generate(true)

		pos := mgl64.Vec3{0, float64(w.SpawnHeight(0, 0)), 0}
		for i := 0; i < *steps; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos = pos.Add(mgl64.Vec3{*dx, 0, *dz})
			w.Update(pos)
			queued := w.Queued()
			generated := 0
			for w.Queued() > 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				generated += w.RunIdle(0)
			}
			fmt.Printf("step=%d observer=(%.0f,%.0f) resident=%d queued=%d generated=%d instances=%d\n",
				i+1, pos.X(), pos.Z(), len(w.Chunks()), queued, generated, r.Total())
		}
		return nil
	}
}

func digestCmd(fs *flag.FlagSet) runFunc {
	radius := fs.Int("radius", 2, "region radius in chunks")
	workers := fs.Int("workers", 0, "parallel generators (0 = one per CPU)")
	withSave := fs.Bool("with-save", false, "apply the saved world instead of a fresh one")
	return func(ctx context.Context, e *env) error {
		if *radius < 0 {
			return fmt.Errorf("negative radius %d", *radius)
		}
		w, err := e.newWorld(nil)
		if err != nil {
			return err
		}
		if *withSave {
			snap, err := e.loadSnapshot()
			if err != nil {
				return err
			}
			if err := snap.Apply(w); err != nil {
				return err
			}
		}

		ds := w.DigestRegion(world.ChunkPos{}, *radius, *workers)
		for _, d := range ds {
			fmt.Printf("%d,%d %016x\n", d.Pos.X, d.Pos.Z, d.Digest)
		}
		fmt.Printf("region %016x\n", world.CombineDigests(ds))
		return nil
	}
}

// editList collects -edit flags of the form "x,y,z=block".
type editList []edit

type edit struct {
	x, y, z int
	block   string
}

func (l *editList) String() string { return fmt.Sprint(len(*l)) }

func (l *editList) Set(s string) error {
	pos, name, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("edit %q: want x,y,z=block", s)
	}
	parts := strings.Split(pos, ",")
	if len(parts) != 3 {
		return fmt.Errorf("edit %q: want three coordinates", s)
	}
	var xyz [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("edit %q: %w", s, err)
		}
		xyz[i] = v
	}
	*l = append(*l, edit{xyz[0], xyz[1], xyz[2], strings.TrimSpace(name)})
	return nil
}

func applyEdits(w *world.World, edits editList) (int, error) {
	applied := 0
	for _, ed := range edits {
		t, ok := w.Registry().ByName(ed.block)
		if !ok {
			return applied, fmt.Errorf("unknown block %q", ed.block)
		}
		var changed bool
		if t.ID == block.Empty {
			changed = w.RemoveBlock(ed.x, ed.y, ed.z)
		} else {
			changed = w.AddBlock(ed.x, ed.y, ed.z, t.ID)
		}
		if changed {
			applied++
		}
	}
	return applied, nil
}

func saveCmd(fs *flag.FlagSet) runFunc {
	var edits editList
	fs.Var(&edits, "edit", "block edit x,y,z=block; repeatable, block \"empty\" removes")
	id := fs.String("id", "", "world id to save under (default: new)")
	return func(ctx context.Context, e *env) error {
		worldID := uuid.Nil
		if *id != "" {
			var err error
			if worldID, err = uuid.Parse(*id); err != nil {
				return fmt.Errorf("parse world id: %w", err)
			}
		}

		w, err := e.newWorld(nil)
		if err != nil {
			return err
		}
		w.Generate(true)
		applied, err := applyEdits(w, edits)
		if err != nil {
			return err
		}
		e.log.Info("edits applied", "requested", len(edits), "applied", applied)

		snap := storage.Capture(w, worldID)
		st, err := e.openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(snap); err != nil {
			return err
		}

		ix, err := storage.OpenIndex(e.cfg.IndexPath)
		if err != nil {
			return err
		}
		defer ix.Close()
		if err := ix.Record(ctx, storage.EntryFor(snap, e.cfg.StorageBackend(), e.cfg.SaveDir)); err != nil {
			return err
		}
		fmt.Printf("saved world %s edits=%d dir=%s\n", snap.WorldID, snap.Overlay.Len(), e.cfg.SaveDir)
		return nil
	}
}

func (e *env) loadSnapshot() (*storage.Snapshot, error) {
	st, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	snap, err := st.Load()
	if errors.Is(err, storage.ErrNoSave) {
		return nil, fmt.Errorf("%s: %w", e.cfg.SaveDir, err)
	}
	return snap, err
}

func loadCmd(fs *flag.FlagSet) runFunc {
	return func(ctx context.Context, e *env) error {
		snap, err := e.loadSnapshot()
		if err != nil {
			return err
		}
		r := world.NewInstanceCounter()
		w, err := e.newWorld(r)
		if err != nil {
			return err
		}
		if err := snap.Apply(w); err != nil {
			return err
		}
		printChunks(w)
		fmt.Printf("world %s seed=%d edits=%d saved=%s instances=%d\n",
			snap.WorldID, snap.Params.Seed, snap.Overlay.Len(), snap.SavedAt.Format("2006-01-02 15:04:05"), r.Total())
		return nil
	}
}

func savesCmd(fs *flag.FlagSet) runFunc {
	limit := fs.Int("limit", 20, "maximum saves to list (0 = all)")
	return func(ctx context.Context, e *env) error {
		ix, err := storage.OpenIndex(e.cfg.IndexPath)
		if err != nil {
			return err
		}
		defer ix.Close()
		entries, err := ix.List(ctx, *limit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SAVED\tWORLD\tBACKEND\tSEED\tEDITS\tPATH")
		for _, en := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				en.SavedAt.Format("2006-01-02 15:04:05"), en.WorldID, en.Backend, en.Seed, en.Edits, en.Path)
		}
		return tw.Flush()
	}
}
