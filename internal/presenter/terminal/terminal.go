// Package terminal presents the emulator's framebuffer in a terminal using
// tcell, and polls the keyboard for joypad input. The core package never
// imports it, and it never reaches back into core.Emulator beyond the
// methods needed to push frames in and pull button events out.
package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rholden/dmgcore/internal/joypad"
	"github.com/rholden/dmgcore/internal/video"
)

// ButtonEvent is one joypad button state change reported by a poll.
type ButtonEvent struct {
	Button  joypad.Button
	Pressed bool
}

// Presenter owns the terminal screen.
type Presenter struct {
	screen tcell.Screen
}

// New initializes a tcell screen in raw mode.
func New() (*Presenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: initializing screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	return &Presenter{screen: screen}, nil
}

// Close restores the terminal to its original state.
func (p *Presenter) Close() { p.screen.Fini() }

// keyMapping maps the default control scheme to joypad buttons.
var keyMapping = map[rune]joypad.Button{
	'w': joypad.Up,
	's': joypad.Down,
	'a': joypad.Left,
	'd': joypad.Right,
	'k': joypad.A,
	'j': joypad.B,
	'\n': joypad.Start,
	' ': joypad.Select,
}

// PollInput drains pending terminal events and returns one Pressed event
// per mapped key seen, and whether the user requested to quit. It never
// returns release events (Pressed false).
func (p *Presenter) PollInput() (events []ButtonEvent, quit bool) {
	for p.screen.HasPendingEvent() {
		ev := p.screen.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			if _, ok := ev.(*tcell.EventResize); ok {
				p.screen.Sync()
			}
			continue
		}

		if key.Key() == tcell.KeyCtrlC || key.Key() == tcell.KeyEscape {
			quit = true
			continue
		}

		var r rune
		switch key.Key() {
		case tcell.KeyEnter:
			r = '\n'
		case tcell.KeyRune:
			r = key.Rune()
		default:
			continue
		}

		if button, ok := keyMapping[r]; ok {
			events = append(events, ButtonEvent{Button: button, Pressed: true})
			slog.Debug("terminal: button pressed", "button", button)
		}
	}
	return events, quit
}

// shadeColors maps a 2-bit DMG shade to a terminal color, light-to-dark.
var shadeColors = [4]tcell.Color{
	tcell.ColorWhite,
	tcell.ColorSilver,
	tcell.ColorGray,
	tcell.ColorBlack,
}

// PresentFrame draws fb into the terminal using Unicode half-block
// characters so each terminal row covers two framebuffer rows, halving the
// vertical space the 160x144 image needs.
func (p *Presenter) PresentFrame(fb *video.FrameBuffer) {
	p.screen.Clear()

	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			top := fb.At(x, y)
			bottom := uint8(0)
			if y+1 < video.Height {
				bottom = fb.At(x, y+1)
			}

			style := tcell.StyleDefault.Foreground(shadeColors[top]).Background(shadeColors[bottom])
			p.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	p.screen.Show()
}
