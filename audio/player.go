package audio

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-blaster/combat"
	"github.com/lixenwraith/vi-blaster/engine"
	"github.com/lixenwraith/vi-blaster/status"
)

// Cue plays a sound type, implemented by SoundManager
type Cue interface {
	Play(s SoundType) bool
}

// Player maps scene events to sound cues
type Player struct {
	cue    Cue
	logger zerolog.Logger
	state  *status.AtomicString
}

// NewPlayer creates a listener over cue; reg may be nil
func NewPlayer(cue Cue, reg *status.Registry, logger zerolog.Logger) *Player {
	if reg == nil {
		reg = status.NewRegistry()
	}
	p := &Player{
		cue:    cue,
		logger: logger,
		state:  reg.Strings.Get(status.KeyAudio),
	}
	p.state.Store("idle")
	return p
}

func (p *Player) OnFire(ev engine.FireEvent) {
	p.play(SoundFire)
}

func (p *Player) OnHit(hit combat.Hit) {
	p.play(SoundHit)
}

func (p *Player) OnRespawn(id combat.TargetID, tick uint64) {
	p.play(SoundRespawn)
}

func (p *Player) play(s SoundType) {
	if p.cue == nil {
		return
	}
	if p.cue.Play(s) {
		p.state.Store(s.String())
		p.logger.Trace().Str("sound", s.String()).Msg("cue")
	}
}
