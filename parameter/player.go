package parameter

// Avatar Movement (per tick at TickRate)
const (
	// MoveStep is linear translation per tick for forward/back/strafe
	MoveStep = 0.1

	// TurnStep is yaw rotation per tick in radians
	TurnStep = 0.02
)

// Avatar Spawn
var (
	// AvatarStart places the avatar behind the target row facing +Z
	AvatarStart = [3]float64{0, 0, -3}
)

// Blaster Muzzle
const (
	// MuzzleHeight lifts the projectile spawn point above the avatar origin
	MuzzleHeight = 0.06

	// MuzzleForwardFallback is used when the blaster template has no bounds
	MuzzleForwardFallback = 0.25
)
