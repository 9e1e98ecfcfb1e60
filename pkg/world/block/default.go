package block

import "github.com/go-gl/mathgl/mgl64"

// Ids of the default registry.
const (
	Grass        ID = 1
	Dirt         ID = 2
	Stone        ID = 3
	CoalOre      ID = 4
	IronOre      ID = 5
	Tree         ID = 6
	Leaves       ID = 7
	Sand         ID = 8
	Cloud        ID = 9
	Snow         ID = 10
	JungleTree   ID = 11
	JungleLeaves ID = 12
	Cactus       ID = 13
)

// DefaultTypes returns the block types of the default registry.
// Resources are listed stone, coal, iron: later entries win when veins overlap.
func DefaultTypes() []Type {
	return []Type{
		{ID: Empty, Name: "empty"},
		{ID: Grass, Name: "grass", Color: 0x559020, Material: "grass"},
		{ID: Dirt, Name: "dirt", Color: 0x807020, Material: "dirt"},
		{
			ID: Stone, Name: "stone", Color: 0x808080, Material: "stone",
			Scale: mgl64.Vec3{30, 30, 30}, Scarcity: 0.5, Resource: true,
		},
		{
			ID: CoalOre, Name: "coal_ore", Color: 0x202020, Material: "coal_ore",
			Scale: mgl64.Vec3{20, 20, 20}, Scarcity: 0.8, Resource: true,
		},
		{
			ID: IronOre, Name: "iron_ore", Color: 0x806060, Material: "iron_ore",
			Scale: mgl64.Vec3{60, 60, 60}, Scarcity: 0.9, Resource: true,
		},
		{ID: Tree, Name: "tree", Material: "tree"},
		{ID: Leaves, Name: "leaves", Material: "leaves"},
		{ID: Sand, Name: "sand", Material: "sand"},
		{ID: Cloud, Name: "cloud", Color: 0xf0f0f0},
		{ID: Snow, Name: "snow", Color: 0xffffff},
		{ID: JungleTree, Name: "jungle_tree", Material: "jungle_tree"},
		{ID: JungleLeaves, Name: "jungle_leaves", Material: "jungle_leaves"},
		{ID: Cactus, Name: "cactus", Material: "cactus"},
	}
}

// Default returns a fresh registry holding DefaultTypes.
func Default() *Registry {
	r, err := NewRegistry(DefaultTypes()...)
	if err != nil {
		panic("block: default registry: " + err.Error())
	}
	return r
}
