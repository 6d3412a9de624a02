// Package serial implements a minimal, loggable stand-in for the DMG's
// serial link (SB/SC). There is no real link port behind it; this stub
// exists only so test ROMs that report results over serial remain
// observable.
package serial

import (
	"log/slog"

	"github.com/rholden/dmgcore/internal/addr"
	"github.com/rholden/dmgcore/internal/bit"
	"github.com/rholden/dmgcore/internal/interrupt"
)

// Port is a loggable SB/SC stand-in. Transfers complete immediately: writing
// SC with both the start bit (7) and the internal-clock bit (0) set appends
// the outgoing byte to a line buffer (a 0x00, '\n' or '\r' byte instead logs
// and empties the buffered line), resets SB to 0xFF, clears the start bit,
// and requests the serial interrupt.
type Port struct {
	sb, sc byte
	line   []byte
	logger *slog.Logger
}

// New returns a serial stub using the default slog logger.
func New() *Port {
	return &Port{logger: slog.Default()}
}

func (p *Port) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return p.sb
	case addr.SC:
		return p.sc
	default:
		panic("serial: invalid read address")
	}
}

func (p *Port) Write(address uint16, value byte, ic *interrupt.Controller) {
	switch address {
	case addr.SB:
		p.sb = value
	case addr.SC:
		p.sc = value
		p.maybeTransfer(ic)
	default:
		panic("serial: invalid write address")
	}
}

func (p *Port) maybeTransfer(ic *interrupt.Controller) {
	if !bit.IsSet(7, p.sc) || !bit.IsSet(0, p.sc) {
		return
	}

	b := p.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(p.line) > 0 {
			p.logger.Info("serial", "line", string(p.line))
			p.line = p.line[:0]
		}
	} else {
		p.line = append(p.line, b)
	}

	p.sb = 0xFF
	p.sc = bit.Reset(7, p.sc)
	ic.Request(addr.Serial)
}
