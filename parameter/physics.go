package parameter

// Projectile Kinematics (per tick at TickRate)
const (
	// ProjectileSpeed is velocity magnitude in units per tick
	ProjectileSpeed = 0.2

	// ProjectileBoundRadius removes projectiles beyond this distance from world origin
	// Matches the diagonal half-extent of the 100x100 floor
	ProjectileBoundRadius = 71.0

	// ProjectileMaxAge removes projectiles after this many ticks (10s at 60Hz)
	ProjectileMaxAge = 600.0
)

// Floor Layout
const (
	FloorSize      = 100.0
	FloorBlockSize = 2.0
)
