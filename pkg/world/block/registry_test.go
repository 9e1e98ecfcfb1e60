package block

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	all := r.All()
	if len(all) != 14 {
		t.Fatalf("len(All()) = %d, want 14", len(all))
	}
	for i, bt := range all {
		if bt.ID != ID(i) {
			t.Errorf("All()[%d].ID = %d, want %d", i, bt.ID, i)
		}
	}

	res := r.Resources()
	want := []ID{Stone, CoalOre, IronOre}
	if len(res) != len(want) {
		t.Fatalf("len(Resources()) = %d, want %d", len(res), len(want))
	}
	for i, id := range want {
		if res[i].ID != id {
			t.Errorf("Resources()[%d] = %d, want %d", i, res[i].ID, id)
		}
	}
}

func TestRegistryLookups(t *testing.T) {
	r := Default()

	bt, ok := r.ByName("iron_ore")
	if !ok || bt.ID != IronOre {
		t.Fatalf("ByName(iron_ore) = %+v, %v", bt, ok)
	}
	if bt.Scarcity != 0.9 {
		t.Errorf("iron_ore scarcity = %v, want 0.9", bt.Scarcity)
	}
	if _, ok := r.ByID(200); ok {
		t.Error("ByID(200) should not exist")
	}
	if got := r.MustID("snow"); got != Snow {
		t.Errorf("MustID(snow) = %d, want %d", got, Snow)
	}
	if !r.Has(Cactus) {
		t.Error("Has(cactus) = false")
	}
}

func TestRegistryCopiesAreIsolated(t *testing.T) {
	r := Default()
	all := r.All()
	all[1].Name = "mutated"

	if bt, _ := r.ByID(Grass); bt.Name != "grass" {
		t.Errorf("registry mutated through All(): %q", bt.Name)
	}
}

func TestNewRegistryRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		types []Type
	}{
		{"no empty", []Type{{ID: 1, Name: "grass"}}},
		{"duplicate id", []Type{{ID: 0, Name: "empty"}, {ID: 0, Name: "air"}}},
		{"duplicate name", []Type{{ID: 0, Name: "empty"}, {ID: 1, Name: "empty"}}},
		{"blank name", []Type{{ID: 0, Name: ""}}},
		{"resource without scale", []Type{
			{ID: 0, Name: "empty"},
			{ID: 1, Name: "ore", Resource: true, Scarcity: 0.5},
		}},
		{"scarcity out of range", []Type{
			{ID: 0, Name: "empty"},
			{ID: 1, Name: "ore", Resource: true, Scarcity: 1.5, Scale: mgl64.Vec3{1, 1, 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.types...); err == nil {
				t.Error("NewRegistry() error = nil, want error")
			}
		})
	}
}

func TestCustomRegistryResourceOrder(t *testing.T) {
	r, err := NewRegistry(
		Type{ID: 0, Name: "empty"},
		Type{ID: 9, Name: "gold", Resource: true, Scarcity: 0.7, Scale: mgl64.Vec3{5, 5, 5}},
		Type{ID: 3, Name: "tin", Resource: true, Scarcity: 0.2, Scale: mgl64.Vec3{5, 5, 5}},
	)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	res := r.Resources()
	if res[0].Name != "gold" || res[1].Name != "tin" {
		t.Errorf("Resources() order = %s,%s, want gold,tin", res[0].Name, res[1].Name)
	}
	if all := r.All(); all[1].Name != "tin" {
		t.Errorf("All()[1] = %s, want tin (id order)", all[1].Name)
	}
}
