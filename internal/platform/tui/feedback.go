package tui

import (
	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

// Frames a screen flash lasts.
const (
	hitFlashFrames     = 18
	collectFlashFrames = 6
)

// flash is the terminal stand-in for haptics: colored screen edges after
// hits and pickups.
type flash struct {
	enabled bool
	frames  int
	color   core.Color
}

// Cue implements runner.Feedback.
func (f *flash) Cue(ev core.Event) error {
	if !f.enabled {
		return nil
	}
	switch ev.Kind {
	case core.EventHit:
		f.frames, f.color = hitFlashFrames, core.ColorBrightRed
	case core.EventCollected:
		if f.frames == 0 {
			f.frames, f.color = collectFlashFrames, core.ColorBrightYellow
		}
	case core.EventNewBest:
		f.frames, f.color = hitFlashFrames, core.ColorBrightCyan
	}
	return nil
}

// tick counts one frame down.
func (f *flash) tick() {
	if f.frames > 0 {
		f.frames--
	}
}

// draw paints both screen edges while the flash lasts.
func (f *flash) draw(dst *core.Screen) {
	if f.frames <= 0 {
		return
	}
	dst.DrawVLine(0, 0, dst.Height(), '┃', f.color)
	dst.DrawVLine(dst.Width()-1, 0, dst.Height(), '┃', f.color)
}
