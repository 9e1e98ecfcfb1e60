package block

import "github.com/go-gl/mathgl/mgl64"

// ID identifies a block type. IDs are stable across world instances.
type ID uint16

// Empty is the id of the air block. Every registry contains it.
const Empty ID = 0

// Type is a static block-type definition.
type Type struct {
	ID   ID
	Name string

	// Color is an RGB fallback colour for renderers without a material; 0 means unset.
	Color uint32

	// Scale is the noise sampling scale of a resource vein along each axis.
	Scale mgl64.Vec3

	// Scarcity is the noise threshold in [0,1] a resource must exceed to be placed.
	// Higher values make the resource rarer.
	Scarcity float64

	// Resource marks mineable ore-like blocks placed by vein generation.
	Resource bool

	// Material is an opaque reference owned by the rendering collaborator.
	Material string
}

// IsEmpty reports whether the type is the empty block.
func (t Type) IsEmpty() bool { return t.ID == Empty }
