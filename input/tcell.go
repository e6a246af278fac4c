package input

import (
	"cmp"
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-blaster/parameter"
)

var tcellNamedKeys = map[tcell.Key]Key{
	tcell.KeyUp:     KeyArrowUp,
	tcell.KeyDown:   KeyArrowDown,
	tcell.KeyLeft:   KeyArrowLeft,
	tcell.KeyRight:  KeyArrowRight,
	tcell.KeyEscape: KeyEscape,
	tcell.KeyEnter:  "enter",
	tcell.KeyTab:    "tab",
}

type heldKey struct {
	last      time.Time
	repeating bool
}

// TcellTranslator turns terminal key presses into press/release events
// Terminals report presses and auto-repeats only; a release is synthesized once a
// held key has not repeated within the hold timeout
type TcellTranslator struct {
	mu            sync.Mutex
	held          map[Key]*heldKey
	holdTimeout   time.Duration
	repeatTimeout time.Duration
}

// NewTcellTranslator creates a translator; zero timeouts fall back to defaults
func NewTcellTranslator(hold, repeat time.Duration) *TcellTranslator {
	if hold <= 0 {
		hold = parameter.KeyHoldTimeout
	}
	if repeat <= 0 {
		repeat = parameter.KeyRepeatTimeout
	}
	return &TcellTranslator{
		held:          make(map[Key]*heldKey),
		holdTimeout:   hold,
		repeatTimeout: repeat,
	}
}

// KeysOf maps a tcell key event to normalized key names
// Upper-case letters and shifted keys also report shift
func KeysOf(ev *tcell.EventKey) []Key {
	if ev == nil {
		return nil
	}

	var keys []Key
	shift := ev.Modifiers()&tcell.ModShift != 0

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			shift = true
			r = unicode.ToLower(r)
		}
		keys = append(keys, NormalizeKey(string(r)))
	} else if k, ok := tcellNamedKeys[ev.Key()]; ok {
		keys = append(keys, k)
	} else {
		return nil
	}

	if shift {
		keys = append(keys, KeyShift)
	}
	return keys
}

// Translate records a press at now and returns Down events for newly held keys
// Repeats of an already held key only extend its hold
func (t *TcellTranslator) Translate(ev *tcell.EventKey, now time.Time) []KeyEvent {
	keys := KeysOf(ev)
	if len(keys) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var out []KeyEvent
	for _, k := range keys {
		if h, ok := t.held[k]; ok {
			h.last = now
			h.repeating = true
			continue
		}
		t.held[k] = &heldKey{last: now}
		out = append(out, KeyEvent{Key: k, Down: true})
	}
	return out
}

// Expire returns Up events for keys whose hold lapsed at now, in key order
func (t *TcellTranslator) Expire(now time.Time) []KeyEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []KeyEvent
	for k, h := range t.held {
		timeout := t.holdTimeout
		if h.repeating {
			timeout = t.repeatTimeout
		}
		if now.Sub(h.last) >= timeout {
			out = append(out, KeyEvent{Key: k, Down: false})
		}
	}
	slices.SortFunc(out, func(a, b KeyEvent) int { return cmp.Compare(a.Key, b.Key) })
	for _, ev := range out {
		delete(t.held, ev.Key)
	}
	return out
}

// Held returns the number of keys currently considered down
func (t *TcellTranslator) Held() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.held)
}
