package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-blaster/asset"
	"github.com/lixenwraith/vi-blaster/audio"
	"github.com/lixenwraith/vi-blaster/config"
	"github.com/lixenwraith/vi-blaster/core"
	"github.com/lixenwraith/vi-blaster/engine"
	"github.com/lixenwraith/vi-blaster/input"
	"github.com/lixenwraith/vi-blaster/logging"
	"github.com/lixenwraith/vi-blaster/parameter"
	"github.com/lixenwraith/vi-blaster/render"
	"github.com/lixenwraith/vi-blaster/status"
	"github.com/lixenwraith/vi-blaster/world"
)

// expireInterval is how often synthesized key releases are checked
const expireInterval = 20 * time.Millisecond

func main() {
	// Main goroutine panics restore the terminal like engine goroutines do
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vi-blaster: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := logging.Setup(logFile, cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, session := logging.WithSession(logger)
	core.SetCrashLogger(logger)
	logger.Info().
		Str("config", cfg.Source).
		Int("tick_rate", cfg.Sim.TickRate).
		Str("session", session.String()).
		Msg("starting")

	reg := status.NewRegistry()

	library, err := asset.NewLibrary(cfg.Assets.Workers, logger.With().Str("component", "asset").Logger())
	if err != nil {
		return fmt.Errorf("asset library: %w", err)
	}
	defer library.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loadDone := library.LoadFile(ctx, cfg.Assets.Manifest)

	opts, err := cfg.SceneOptions()
	if err != nil {
		return err
	}
	registry := world.NewRegistry()
	scene := engine.NewScene(opts, registry, library, reg, logger.With().Str("component", "scene").Logger())

	if sounds := newSounds(cfg, reg, logger); sounds != nil {
		defer sounds.Cleanup()
		scene.AddListener(audio.NewPlayer(sounds, reg, logger.With().Str("component", "audio").Logger()))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()
	screen.HideCursor()

	view := render.NewView(screen, library, reg)

	clock, tickDone := engine.NewClockScheduler(scene, engine.SystemTime{}, cfg.TickInterval(), cfg.Sim.MaxSteps, reg, logger.With().Str("component", "clock").Logger())
	clock.Start()
	defer clock.Stop()

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(events)
				return
			}
			events <- ev
		}
	})

	loop := &eventLoop{
		scene:      scene,
		view:       view,
		screen:     screen,
		translator: input.NewTcellTranslator(cfg.Input.HoldTimeout, cfg.Input.RepeatTimeout),
		logger:     logger,
	}
	assetState := reg.Strings.Get(status.KeyAssets)
	assetState.Store(library.State())

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()
	expireTicker := time.NewTicker(expireInterval)
	defer expireTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !loop.handle(ev, time.Now()) {
				logger.Info().Fields(reg.Fields()).Msg("quit")
				return nil
			}

		case now := <-expireTicker.C:
			loop.push(loop.translator.Expire(now))

		case err := <-loadDone:
			loadDone = nil
			assetState.Store(library.State())
			if err != nil {
				return fmt.Errorf("load assets: %w", err)
			}
			logger.Info().Msg("assets ready")

		case <-tickDone:
			// Drained so the clock never blocks; frames are paced by frameTicker

		case <-frameTicker.C:
			view.Draw(scene.Snapshot(), registry.Objects())
		}
	}
}

// newSounds starts the speaker; nil when muted or when init fails
func newSounds(cfg *config.Config, reg *status.Registry, logger zerolog.Logger) *audio.SoundManager {
	if !cfg.Audio.Enabled {
		reg.Strings.Get(status.KeyAudio).Store("muted")
		return nil
	}
	acfg := audio.DefaultAudioConfig()
	acfg.MasterVolume = cfg.Audio.Volume

	sm := audio.NewSoundManager(acfg)
	if err := sm.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("audio init failed, continuing without sound")
		reg.Strings.Get(status.KeyAudio).Store("off")
		return nil
	}
	return sm
}

// eventLoop routes terminal events to the scene input queue
type eventLoop struct {
	scene      *engine.Scene
	view       *render.View
	screen     tcell.Screen
	translator *input.TcellTranslator
	logger     zerolog.Logger
}

// handle processes one terminal event, false to quit
func (l *eventLoop) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Rune() {
		case '+':
			l.view.Zoom(2)
			return true
		case '-':
			l.view.Zoom(0.5)
			return true
		}
		keyEvents := l.translator.Translate(ev, now)
		for _, ke := range keyEvents {
			if ke.Down && l.scene.Bindings().Is(input.ActionQuit, ke.Key) {
				return false
			}
		}
		l.push(keyEvents)

	case *tcell.EventResize:
		l.screen.Sync()

	case *tcell.EventError:
		l.logger.Error().Err(errors.New(ev.Error())).Msg("terminal error")
	}
	return true
}

func (l *eventLoop) push(events []input.KeyEvent) {
	q := l.scene.Input()
	for _, ev := range events {
		q.Push(ev)
	}
}
