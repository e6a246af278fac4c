package parameter

import (
	"time"
)

// Hit Detection
const (
	// HitRadiusSq is the squared distance below which a projectile hits a target (~0.22 units)
	HitRadiusSq = 0.05
)

// Respawn
const (
	// RespawnDelay is how long a hit target stays hidden
	RespawnDelay = 1000 * time.Millisecond
)

// DefaultTargets are the initial target positions
var DefaultTargets = [][3]float64{
	{1, 0, 0},
}
