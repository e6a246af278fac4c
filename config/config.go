package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-blaster/avatar"
	"github.com/lixenwraith/vi-blaster/combat"
	"github.com/lixenwraith/vi-blaster/engine"
	"github.com/lixenwraith/vi-blaster/input"
	"github.com/lixenwraith/vi-blaster/logging"
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/physics"
	"github.com/lixenwraith/vi-blaster/vmath"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// EnvPrefix is prepended to environment overrides, e.g. VIBLASTER_SIM_TICK_RATE
const EnvPrefix = "VIBLASTER"

// DefaultFile is looked up in the working directory when --config is not given
const DefaultFile = "vi-blaster.toml"

type SimConfig struct {
	TickRate int     `mapstructure:"tick_rate"`
	MaxSteps float64 `mapstructure:"max_steps"`
}

type MovementConfig struct {
	MoveStep float64 `mapstructure:"move_step"`
	TurnStep float64 `mapstructure:"turn_step"`
}

type ProjectileConfig struct {
	Speed        float64 `mapstructure:"speed"`
	BoundRadius  float64 `mapstructure:"bound_radius"`
	MaxAgeTicks  float64 `mapstructure:"max_age_ticks"`
	MuzzleHeight float64 `mapstructure:"muzzle_height"`
}

type CombatConfig struct {
	HitRadiusSq  float64       `mapstructure:"hit_radius_sq"`
	RespawnDelay time.Duration `mapstructure:"respawn_delay"`
}

type InputConfig struct {
	HoldTimeout   time.Duration `mapstructure:"hold_timeout"`
	RepeatTimeout time.Duration `mapstructure:"repeat_timeout"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type AssetsConfig struct {
	Manifest string `mapstructure:"manifest"`
	Workers  int    `mapstructure:"workers"`
}

type SceneConfig struct {
	Targets     [][]float64 `mapstructure:"targets"`
	AvatarStart []float64   `mapstructure:"avatar_start"`
	AvatarYaw   float64     `mapstructure:"avatar_yaw"`
}

// Config is the full runtime configuration
type Config struct {
	Sim        SimConfig           `mapstructure:"sim"`
	Movement   MovementConfig      `mapstructure:"movement"`
	Projectile ProjectileConfig    `mapstructure:"projectile"`
	Combat     CombatConfig        `mapstructure:"combat"`
	Keys       map[string][]string `mapstructure:"keys"`
	Input      InputConfig         `mapstructure:"input"`
	Audio      AudioConfig         `mapstructure:"audio"`
	Log        LogConfig           `mapstructure:"log"`
	Assets     AssetsConfig        `mapstructure:"assets"`
	Scene      SceneConfig         `mapstructure:"scene"`

	// Source is the config file actually read, empty when running on defaults
	Source string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sim.tick_rate", parameter.TickRate)
	v.SetDefault("sim.max_steps", parameter.MaxStepsPerTick)

	v.SetDefault("movement.move_step", parameter.MoveStep)
	v.SetDefault("movement.turn_step", parameter.TurnStep)

	v.SetDefault("projectile.speed", parameter.ProjectileSpeed)
	v.SetDefault("projectile.bound_radius", parameter.ProjectileBoundRadius)
	v.SetDefault("projectile.max_age_ticks", parameter.ProjectileMaxAge)
	v.SetDefault("projectile.muzzle_height", parameter.MuzzleHeight)

	v.SetDefault("combat.hit_radius_sq", parameter.HitRadiusSq)
	v.SetDefault("combat.respawn_delay", parameter.RespawnDelay)

	v.SetDefault("input.hold_timeout", parameter.KeyHoldTimeout)
	v.SetDefault("input.repeat_timeout", parameter.KeyRepeatTimeout)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/vi-blaster.log")

	v.SetDefault("assets.manifest", "")
	v.SetDefault("assets.workers", 2)

	targets := make([][]float64, 0, len(parameter.DefaultTargets))
	for _, t := range parameter.DefaultTargets {
		targets = append(targets, t[:])
	}
	v.SetDefault("scene.targets", targets)
	v.SetDefault("scene.avatar_start", parameter.AvatarStart[:])
	v.SetDefault("scene.avatar_yaw", 0.0)
}

// Flags returns the command line flag set understood by Load
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to TOML config file")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	fs.Int("tick-rate", 0, "simulation ticks per second")
	fs.Bool("mute", false, "disable audio")
	fs.String("manifest", "", "asset manifest YAML, built-in when empty")
	return fs
}

// Load parses args, reads the config file and environment, and validates the result
// Precedence: flags > env > file > defaults
func Load(args []string) (*Config, error) {
	fs := Flags("vi-blaster")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return LoadFlags(fs)
}

// LoadFlags loads configuration using an already parsed flag set
func LoadFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bind := map[string]string{
		"log.level":       "log-level",
		"sim.tick_rate":   "tick-rate",
		"assets.manifest": "manifest",
	}
	for key, flag := range bind {
		if f := fs.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	path, _ := fs.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".toml"))
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if mute, _ := fs.GetBool("mute"); mute {
		cfg.Audio.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every out-of-range value, each wrapped with ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Sim.TickRate > 0, "sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	check(c.Sim.MaxSteps >= 1, "sim.max_steps must be at least 1, got %v", c.Sim.MaxSteps)
	check(c.Movement.MoveStep >= 0, "movement.move_step must not be negative")
	check(c.Movement.TurnStep >= 0, "movement.turn_step must not be negative")
	check(c.Projectile.Speed > 0, "projectile.speed must be positive")
	check(c.Projectile.BoundRadius >= 0, "projectile.bound_radius must not be negative")
	check(c.Projectile.MaxAgeTicks >= 0, "projectile.max_age_ticks must not be negative")
	check(c.Combat.HitRadiusSq > 0, "combat.hit_radius_sq must be positive")
	check(c.Combat.RespawnDelay >= 0, "combat.respawn_delay must not be negative")
	check(c.Input.HoldTimeout > 0, "input.hold_timeout must be positive")
	check(c.Input.RepeatTimeout > 0, "input.repeat_timeout must be positive")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0,1], got %v", c.Audio.Volume)
	check(c.Assets.Workers > 0, "assets.workers must be positive")

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		check(false, "log.level %q", c.Log.Level)
	}
	for i, t := range c.Scene.Targets {
		check(len(t) == 3, "scene.targets[%d] needs 3 components, got %d", i, len(t))
	}
	check(len(c.Scene.AvatarStart) == 3, "scene.avatar_start needs 3 components, got %d", len(c.Scene.AvatarStart))

	if _, err := input.LoadBindings(c.Keys); err != nil {
		check(false, "%v", err)
	}
	return errors.Join(errs...)
}

// TickInterval is the wall-clock duration of one tick
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Sim.TickRate)
}

// Bindings merges [keys] overrides onto the default bindings
func (c *Config) Bindings() (*input.Bindings, error) {
	override, err := input.LoadBindings(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.Merge(input.DefaultBindings(), override), nil
}

// SceneOptions converts the config into engine options
func (c *Config) SceneOptions() (engine.Options, error) {
	bindings, err := c.Bindings()
	if err != nil {
		return engine.Options{}, err
	}
	opts := engine.DefaultOptions()
	opts.MoveStep = c.Movement.MoveStep
	opts.TurnStep = c.Movement.TurnStep
	opts.ProjectileSpeed = c.Projectile.Speed
	opts.Bounds = physics.Bounds{Radius: c.Projectile.BoundRadius, MaxAge: c.Projectile.MaxAgeTicks}
	opts.MuzzleHeight = c.Projectile.MuzzleHeight
	opts.HitRadiusSq = c.Combat.HitRadiusSq
	opts.RespawnTicks = combat.DelayTicks(c.Combat.RespawnDelay, c.Sim.TickRate)
	opts.Bindings = bindings

	if len(c.Scene.AvatarStart) == 3 {
		opts.AvatarStart = avatar.Pose{
			Position: vmath.Vec3{c.Scene.AvatarStart[0], c.Scene.AvatarStart[1], c.Scene.AvatarStart[2]},
			Yaw:      vmath.NormalizeAngle(c.Scene.AvatarYaw),
		}
	}
	opts.Targets = opts.Targets[:0:0]
	for _, t := range c.Scene.Targets {
		if len(t) == 3 {
			opts.Targets = append(opts.Targets, vmath.Vec3{t[0], t[1], t[2]})
		}
	}
	return opts, nil
}
