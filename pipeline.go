package pixelpipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoSource is returned by Run when no frame source is attached.
var ErrNoSource = errors.New("pipeline has no frame source")

// State is the scan controller state.
type State uint8

const (
	Idle State = iota
	Running
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Signals are the control inputs sampled on every clock edge.
type Signals struct {
	// Reset zeroes every buffer and register and forces the Idle state.
	Reset bool
	// Start begins a frame pass when the controller is Idle. It is ignored otherwise.
	Start bool
}

// scanPos is the raster position of the scan controller. addr always equals y*Width+x.
type scanPos struct {
	x, y, addr int
}

func (p scanPos) advance() scanPos {
	p.addr++
	p.x++
	if p.x == Width {
		p.x = 0
		p.y++
	}
	return p
}

// aligner carries the scan position and raw pixel through the same one step
// latency as the window, so writes land on the address that produced them.
type aligner struct {
	pos   scanPos
	raw   Pixel
	valid bool
}

// registers is the clocked state of the pipeline. A step computes a complete
// next value from the committed one and the two are swapped at the clock edge.
type registers struct {
	state State
	pos   scanPos
	win   window
	delay aligner
}

// outputWrite is a pending output frame write. Writes to the same address in
// one step are applied in issue order.
type outputWrite struct {
	addr int
	val  Pixel
}

// Pipeline is a clocked model of the streaming 3x3 Gaussian blur unit.
// It owns its line history and output frame exclusively; use one Pipeline
// per concurrent run.
type Pipeline struct {
	src     Source
	out     Frame
	history lineHistory
	regs    registers
	cycles  uint64

	histWr []historyWrite
	outWr  []outputWrite
}

// NewPipeline returns a pipeline in the Idle state reading from src.
func NewPipeline(src Source) *Pipeline {
	return &Pipeline{
		src:    src,
		histWr: make([]historyWrite, 0, 1),
		outWr:  make([]outputWrite, 0, 2),
	}
}

// hasSource reports whether a readable frame source is attached. A nil *Frame
// stored in the interface counts as no source.
func (p *Pipeline) hasSource() bool {
	if f, ok := p.src.(*Frame); ok {
		return f != nil
	}
	return p.src != nil
}

// Load replaces the frame source. It has no effect unless the pipeline is Idle.
func (p *Pipeline) Load(src Source) bool {
	if p.regs.state != Idle {
		return false
	}
	p.src = src
	return true
}

// State returns the committed scan controller state.
func (p *Pipeline) State() State { return p.regs.state }

// Cycles returns the number of clock edges since the last reset.
func (p *Pipeline) Cycles() uint64 { return p.cycles }

// Output returns the output frame. Its content is only complete after Tick
// has reported the Done pulse.
func (p *Pipeline) Output() *Frame { return &p.out }

// Reset zeroes every buffer and register and forces the Idle state,
// abandoning any pass in progress.
func (p *Pipeline) Reset() {
	if p.regs.state == Running {
		Logger().Debug("pipeline reset during run", slog.Int("addr", p.regs.pos.addr))
	}
	p.out = Frame{}
	p.history.reset()
	p.regs = registers{}
	p.cycles = 0
	p.histWr = p.histWr[:0]
	p.outWr = p.outWr[:0]
}

// Tick advances the pipeline by one clock edge and reports whether the
// one step Done pulse is asserted. When it returns true the output frame
// holds the complete result.
func (p *Pipeline) Tick(sig Signals) bool {
	if sig.Reset {
		p.Reset()
		return false
	}
	p.cycles++

	cur := p.regs
	next := cur
	next.delay.valid = false

	// Output writer: pass-through first, then the blurred override once a
	// full neighborhood was available for the delayed position.
	if d := cur.delay; d.valid {
		p.outWr = append(p.outWr, outputWrite{addr: d.pos.addr, val: d.raw})
		if d.pos.x >= 2 && d.pos.y >= 2 {
			p.outWr = append(p.outWr, outputWrite{addr: d.pos.addr, val: convolve(&cur.win)})
		}
	}

	var done bool
	switch cur.state {
	case Idle:
		next.pos = scanPos{}
		if sig.Start && p.hasSource() {
			next.state = Running
		}
	case Running:
		px := p.src.PixelAt(cur.pos.addr)
		mid, top := p.history.taps(cur.pos.x)

		next.win = cur.win.shift(top, mid, px)
		p.histWr = append(p.histWr, historyWrite{x: cur.pos.x, mid: px, top: mid})
		next.delay = aligner{pos: cur.pos, raw: px, valid: true}

		if cur.pos.addr == FrameSize-1 {
			next.state = Done
		} else {
			next.pos = cur.pos.advance()
		}
	case Done:
		done = true
		next.state = Idle
		next.pos = scanPos{}
	}

	p.commit(next)
	return done
}

// commit applies the pending memory writes and latches the next registers.
func (p *Pipeline) commit(next registers) {
	for _, w := range p.histWr {
		p.history.apply(w)
	}
	for _, w := range p.outWr {
		p.out[w.addr] = w.val
	}
	p.histWr = p.histWr[:0]
	p.outWr = p.outWr[:0]

	if next.state != p.regs.state {
		Logger().Debug("pipeline state",
			slog.String("from", p.regs.state.String()),
			slog.String("to", next.state.String()),
			slog.Uint64("cycle", p.cycles),
		)
	}
	p.regs = next
}

// Run performs the activation protocol: reset, release with start asserted,
// then clock until the Done pulse. It returns a copy of the output frame.
// Cancelling ctx asserts reset and discards the partial result.
func (p *Pipeline) Run(ctx context.Context) (*Frame, error) {
	if !p.hasSource() {
		return nil, ErrNoSource
	}
	p.Tick(Signals{Reset: true})

	start := true
	for {
		if p.cycles%Width == 0 {
			select {
			case <-ctx.Done():
				p.Tick(Signals{Reset: true})
				return nil, ctx.Err()
			default:
			}
		}
		if p.Tick(Signals{Start: start}) {
			break
		}
		start = false
	}
	Logger().Debug("pipeline run complete", slog.Uint64("cycles", p.cycles))

	out := p.out
	return &out, nil
}

// Blur runs a single pass of the pipeline over src. It returns nil when src is nil.
func Blur(src *Frame) *Frame {
	if src == nil {
		return nil
	}
	out, err := NewPipeline(src).Run(context.Background())
	if err != nil {
		return nil
	}
	return out
}
