// Package tui is the terminal front end: a top-down radar drawn with tcell
// and a keyboard mapping onto control intents.
package tui

import (
	"math"

	"flightsim/internal/core"
	"flightsim/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Key is a decoded key press.
type Key struct {
	Code tcell.Key
	Rune rune
}

// KeyFromEvent decodes a tcell key event.
func KeyFromEvent(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Key{Code: tcell.KeyRune, Rune: ev.Rune()}
	}
	return Key{Code: ev.Key()}
}

// Action is what a key press asks of the loop besides steering.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggled
)

// Terminals report presses but not releases, so held controls are latched
// for a few ticks per press and steering biases persist until recentred.
const (
	DefaultHoldTicks = 6
	biasStep         = 0.05
	maxBias          = 0.5
)

// Controls accumulates key presses into per-tick intents.
type Controls struct {
	Hold int

	turn  float64
	pitch float64
	alt   bool
	reset bool

	accel, decel, climb, descend, fire int
}

// NewControls returns controls with the default latch length.
func NewControls() *Controls {
	return &Controls{Hold: DefaultHoldTicks}
}

// Handle applies one key press. Render toggles are applied to opts.
func (c *Controls) Handle(k Key, opts *render.Options) Action {
	switch k.Code {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		c.turn = clampBias(c.turn + biasStep)
	case tcell.KeyRight:
		c.turn = clampBias(c.turn - biasStep)
	case tcell.KeyUp:
		if c.alt {
			c.pitch = clampBias(c.pitch + biasStep)
		} else {
			c.climb, c.descend = c.Hold, 0
		}
	case tcell.KeyDown:
		if c.alt {
			c.pitch = clampBias(c.pitch - biasStep)
		} else {
			c.descend, c.climb = c.Hold, 0
		}
	case tcell.KeyF1:
		c.alt = !c.alt
		c.pitch = 0
		return ActionToggled
	case tcell.KeyF2:
		if opts != nil {
			opts.Toggle(0xF2)
		}
		return ActionToggled
	case tcell.KeyRune:
		return c.handleRune(k.Rune, opts)
	}
	return ActionNone
}

func (c *Controls) handleRune(r rune, opts *render.Options) Action {
	switch r {
	case 'q':
		return ActionQuit
	case 'a', '+':
		c.accel, c.decel = c.Hold, 0
	case 'd', '-':
		c.decel, c.accel = c.Hold, 0
	case 'z', ' ':
		c.fire = c.Hold
	case 'c':
		c.turn, c.pitch = 0, 0
	case 'r':
		c.reset = true
	default:
		if opts != nil && opts.Toggle(r) {
			return ActionToggled
		}
	}
	return ActionNone
}

// AltControls reports whether pitch steering is active.
func (c *Controls) AltControls() bool { return c.alt }

// Intent returns the intent for the next tick and ages the latches.
func (c *Controls) Intent() core.ControlIntent {
	in := core.ControlIntent{
		Accelerate:  c.accel > 0,
		Decelerate:  c.decel > 0,
		Climb:       c.climb > 0,
		Descend:     c.descend > 0,
		Fire:        c.fire > 0,
		TurnBias:    c.turn,
		PitchBias:   c.pitch,
		AltControls: c.alt,
		Reset:       c.reset,
	}
	for _, latch := range []*int{&c.accel, &c.decel, &c.climb, &c.descend, &c.fire} {
		if *latch > 0 {
			*latch--
		}
	}
	if c.reset {
		c.reset = false
		c.turn, c.pitch = 0, 0
	}
	return in
}

func clampBias(v float64) float64 {
	return math.Max(-maxBias, math.Min(maxBias, math.Round(v*100)/100))
}
