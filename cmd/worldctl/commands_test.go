package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/OCharnyshevich/voxel-world/internal/server/config"
	"github.com/OCharnyshevich/voxel-world/pkg/world/block"
)

func TestEditListSet(t *testing.T) {
	tests := []struct {
		in      string
		want    edit
		wantErr bool
	}{
		{"1,2,3=stone", edit{1, 2, 3, "stone"}, false},
		{" -4, 10 ,7 = empty", edit{-4, 10, 7, "empty"}, false},
		{"1,2,3", edit{}, true},
		{"1,2=stone", edit{}, true},
		{"1,a,3=stone", edit{}, true},
	}
	for _, tt := range tests {
		var l editList
		err := l.Set(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && l[0] != tt.want {
			t.Errorf("Set(%q) = %+v, want %+v", tt.in, l[0], tt.want)
		}
	}
}

func TestApplyEdits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DrawDistance = 0
	cfg.Pipeline = "height"
	cfg.Params.Terrain.Magnitude = 0
	cfg.Params.Terrain.Offset = 10
	e := &env{cfg: cfg, log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	w, err := e.newWorld(nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Generate(true)

	var edits editList
	for _, s := range []string{"1,11,1=cactus", "2,10,2=empty", "3,5,3=stone", "500,11,0=stone"} {
		if err := edits.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	applied, err := applyEdits(w, edits)
	if err != nil {
		t.Fatalf("applyEdits() error = %v", err)
	}
	// (3,5,3) is occupied dirt and (500,11,0) is outside the resident chunk.
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if v, _ := w.GetBlock(1, 11, 1); v.ID != block.Cactus {
		t.Errorf("block at 1,11,1 = %d", v.ID)
	}

	edits = editList{{0, 12, 0, "obsidian"}}
	if _, err := applyEdits(w, edits); err == nil {
		t.Error("applyEdits accepted an unknown block")
	}
}
