package world

import (
	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// Transform is world position and yaw
type Transform struct {
	Position vmath.Vec3
	Yaw      float64
}

// Appearance is the template kind an object was created from
type Appearance struct {
	Kind    asset.Kind
	Visible bool
}

// Tag links an entity back to its opaque handle
type Tag struct {
	Handle physics.Handle
}
