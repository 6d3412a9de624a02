// Package core wires the CPU, bus and video subsystems into a single
// cooperative scheduler loop: each Step checks for a pending interrupt,
// lets the CPU either idle in HALT or fetch-execute one instruction, runs
// any latched OAM DMA, advances the LCD state machine and PPU by the same
// number of cycles, and finally ticks the timer.
package core

import (
	"fmt"
	"log/slog"

	"github.com/rholden/dmgcore/internal/bus"
	"github.com/rholden/dmgcore/internal/cartridge"
	"github.com/rholden/dmgcore/internal/cpu"
	"github.com/rholden/dmgcore/internal/disasm"
	"github.com/rholden/dmgcore/internal/joypad"
	"github.com/rholden/dmgcore/internal/video"
)

// DebuggerState controls whether RunFrame executes freely or pauses for
// single-instruction/single-frame stepping.
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
)

const cyclesPerFrame = 17556 // M-cycles per 70224-dot frame (70224/4)

// Emulator is the root object a presenter drives: load a ROM, call Step or
// RunFrame repeatedly, and read back the framebuffer and input state.
type Emulator struct {
	cpu  *cpu.CPU
	bus  *bus.Bus
	lcd  *video.LCD
	ppu  *video.PPU
	cart *cartridge.Cartridge

	debuggerState    DebuggerState
	instructionCount uint64
	frameCount       uint64
}

// New loads romData as a cartridge and returns a power-on-state emulator.
func New(romData []byte) (*Emulator, error) {
	cart, err := cartridge.Load(romData)
	if err != nil {
		return nil, fmt.Errorf("core: loading cartridge: %w", err)
	}

	vram := video.NewVRAM()
	oam := video.NewOAM()
	lcd := video.NewLCD()

	e := &Emulator{
		cpu:  cpu.New(),
		bus:  bus.New(cart, lcd, vram, oam),
		lcd:  lcd,
		ppu:  video.NewPPU(vram, oam),
		cart: cart,
	}

	slog.Info("cartridge loaded", "title", cart.Header.Title, "mbc", cart.Header.MBCType)
	return e, nil
}

// Step executes exactly one scheduler tick: one CPU instruction (or one
// idle HALT cycle), the pending OAM DMA if any, the LCD/PPU for the same
// span of M-cycles, and the timer. It returns true if a VBlank was entered
// during this tick, i.e. a new frame is ready to present.
func (e *Emulator) Step() bool {
	if !e.cpu.Halted() {
		line := disasm.At(e.cpu.Regs.PC, e.bus)
		slog.Debug("executing instruction", "pc", line.Address, "asm", line.Instruction)
	}

	cycles := e.cpu.Step(e.bus)
	e.instructionCount++

	e.bus.RunPendingDMA()

	event := e.lcd.Update(cycles, e.bus.Interrupts())
	e.ppu.OnEvent(event, e.lcd)

	e.bus.Timer().Tick(cycles, e.bus.Interrupts())

	if event == video.VBlankEntered {
		e.frameCount++
		return true
	}
	return false
}

// RunFrame steps the emulator until a full frame has been produced, then
// returns. It does nothing while paused.
func (e *Emulator) RunFrame() {
	if e.debuggerState == DebuggerPaused {
		return
	}

	for {
		if e.Step() {
			return
		}
	}
}

// CurrentFrame returns the most recently rendered framebuffer.
func (e *Emulator) CurrentFrame() *video.FrameBuffer { return e.ppu.FrameBuffer() }

// SetButton forwards a physical button transition to the joypad, requesting
// a joypad interrupt on press.
func (e *Emulator) SetButton(b joypad.Button, pressed bool) {
	e.bus.Joypad().SetPressed(b, pressed, e.bus.Interrupts())
}

func (e *Emulator) Pause()  { e.debuggerState = DebuggerPaused; slog.Debug("emulator paused") }
func (e *Emulator) Resume() { e.debuggerState = DebuggerRunning; slog.Debug("emulator resumed") }

func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }
func (e *Emulator) FrameCount() uint64       { return e.frameCount }
func (e *Emulator) CartridgeHeader() cartridge.Header { return e.cart.Header }
