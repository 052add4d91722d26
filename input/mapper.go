package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Mapper turns terminal events into intents
// Terminals report no key-up: the space key counts as held while auto-repeat
// keeps arriving and is released once repeats stop for holdTimeout.
// The left mouse button reports real press and release.
// Not safe for concurrent use; owned by the input goroutine
type Mapper struct {
	table       *KeyTable
	holdTimeout time.Duration

	spaceHeld bool
	lastSpace time.Time
	mouseHeld bool
}

// NewMapper creates a mapper; a nil table selects DefaultKeyTable
func NewMapper(table *KeyTable, holdTimeout time.Duration) *Mapper {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Mapper{table: table, holdTimeout: holdTimeout}
}

// Held reports whether the primary action is held by either source
func (m *Mapper) Held() bool {
	return m.spaceHeld || m.mouseHeld
}

// Map resolves one event received at now
func (m *Mapper) Map(ev tcell.Event, now time.Time) []Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.mapKey(ev, now)
	case *tcell.EventMouse:
		return m.mapMouse(ev)
	case *tcell.EventResize:
		return []Intent{{Type: IntentResize}}
	}
	return nil
}

func (m *Mapper) mapKey(ev *tcell.EventKey, now time.Time) []Intent {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		switch {
		case r == ' ':
			m.lastSpace = now
			if m.spaceHeld {
				return nil
			}
			return m.setHeld(func() { m.spaceHeld = true })
		case r >= '1' && r <= '9':
			return []Intent{{Type: IntentSlot, Slot: int(r - '1')}}
		}
		if t, ok := m.table.RuneKeys[r]; ok {
			return []Intent{{Type: t}}
		}
		return nil
	}

	if t, ok := m.table.SpecialKeys[ev.Key()]; ok {
		return []Intent{{Type: t}}
	}
	return nil
}

func (m *Mapper) mapMouse(ev *tcell.EventMouse) []Intent {
	down := ev.Buttons()&tcell.Button1 != 0
	if down == m.mouseHeld {
		return nil
	}
	return m.setHeld(func() { m.mouseHeld = down })
}

// Expire releases a space hold whose repeats stopped; call periodically
func (m *Mapper) Expire(now time.Time) []Intent {
	if !m.spaceHeld || now.Sub(m.lastSpace) < m.holdTimeout {
		return nil
	}
	return m.setHeld(func() { m.spaceHeld = false })
}

// setHeld applies change and emits Press or Release on an edge of the combined hold
func (m *Mapper) setHeld(change func()) []Intent {
	before := m.Held()
	change()
	after := m.Held()
	switch {
	case !before && after:
		return []Intent{{Type: IntentPress}}
	case before && !after:
		return []Intent{{Type: IntentRelease}}
	}
	return nil
}
