package gcode

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"ngcsmooth/pkg/cfg"
	"ngcsmooth/pkg/float"
	"ngcsmooth/pkg/geometry"
)

// Options configures an Emitter.
type Options struct {
	HomeHeight   float.Float
	SafetyHeight float.Float
	// Tolerance bounds the deviation of simplified cuts from the buffered
	// ones, and the per-axis step that ends a buffered run.
	Tolerance    float.Float
	SpindleSpeed float.Float
	// Units is the unit word written by Begin, G20 or G21.
	Units string
	// Logger receives flush diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultOptions returns the options from the cfg package.
func DefaultOptions() Options {
	return Options{
		HomeHeight:   float.Float(cfg.HomeHeight),
		SafetyHeight: float.Float(cfg.SafetyHeight),
		Tolerance:    float.Float(cfg.Tolerance),
		SpindleSpeed: float.Float(cfg.SpindleSpeed),
		Units:        cfg.Units,
	}
}

// Emitter writes G-code for a stream of moves. Cuts are buffered and
// simplified into lines and arcs when the buffer is flushed; rapids and
// other commands flush first so the output keeps the order of the calls.
//
// Axis and mode words that match the last written values are omitted.
// The first write error is kept and makes every later write a no-op.
type Emitter struct {
	w      io.Writer
	err    error
	opts   Options
	logger *log.Logger

	last     geometry.Point3
	lastMode geometry.Mode
	plane    geometry.Plane
	cuts     []geometry.Point3
}

// New returns an Emitter writing to w. The position starts out unknown and
// the arc plane is XY.
func New(w io.Writer, opts Options) *Emitter {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Emitter{
		w:      w,
		opts:   opts,
		logger: logger,
		last:   geometry.Point3{X: float.NaN(), Y: float.NaN(), Z: float.NaN()},
		plane:  geometry.PlaneXY,
	}
}

func (e *Emitter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\n")
}

func (e *Emitter) printf(format string, args ...any) {
	e.println(fmt.Sprintf(format, args...))
}

func formatNumber(n float.Float) string {
	return strconv.FormatFloat(float64(n), 'f', -1, float.Bits)
}

// Err returns the first error encountered while writing.
func (e *Emitter) Err() error {
	return e.err
}

// Pending returns the number of buffered cuts.
func (e *Emitter) Pending() int {
	return len(e.cuts)
}

// Plane returns the current arc plane.
func (e *Emitter) Plane() geometry.Plane {
	return e.plane
}

// Begin writes the program preamble: units, a rapid to safety height,
// plane and mode words, and spindle start.
func (e *Emitter) Begin() {
	e.println(e.opts.Units)
	e.Rapid(geometry.Move{Z: geometry.Some(e.opts.SafetyHeight)})
	if word := e.plane.String(); word != "" {
		e.println(word + " G40")
	} else {
		e.println("G40")
	}
	e.println("G80 G90 G94")
	e.printf("S%s M3", formatNumber(e.opts.SpindleSpeed))
	e.println("G04 P3")
}

// SetPlane selects the arc plane. The plane word is written immediately;
// buffered cuts are not flushed, so the plane should only change between
// paths. PlaneNone disables arc fitting and writes nothing.
func (e *Emitter) SetPlane(p geometry.Plane) {
	if p == e.plane {
		return
	}
	e.plane = p
	if word := p.String(); word != "" {
		e.println(word)
	}
}

// SetFeed flushes and writes a new feed rate.
func (e *Emitter) SetFeed(f float.Float) {
	e.Flush()
	e.printf("F%s", formatNumber(f))
}

// Raw flushes and writes line verbatim. Use it for comments and words the
// Emitter does not track.
func (e *Emitter) Raw(line string) {
	e.Flush()
	e.println(line)
}

// ExactPath switches the machine to exact path mode (G61).
func (e *Emitter) ExactPath() {
	e.println("G61")
}

// Continuous switches the machine to path blending (G64), with a maximum
// deviation when t is positive.
func (e *Emitter) Continuous(t float.Float) {
	if t > 0 {
		e.printf("G64 P%s", formatNumber(t))
	} else {
		e.println("G64")
	}
}

// Cut buffers a feed move. Unset axes are taken from the previous cut, or
// from the last written position when the buffer is empty. A step larger
// than the tolerance on any axis flushes the buffer before the cut is added.
func (e *Emitter) Cut(m geometry.Move) {
	ref := e.last
	if n := len(e.cuts); n > 0 {
		ref = e.cuts[n-1]
	}
	p := m.Point(ref)

	tol := e.opts.Tolerance
	if float.Abs(ref.X-p.X) > tol || float.Abs(ref.Y-p.Y) > tol || float.Abs(ref.Z-p.Z) > tol {
		e.Flush()
	}
	e.cuts = append(e.cuts, p)
}

// Flush simplifies the buffered cuts and writes the result.
func (e *Emitter) Flush() {
	if len(e.cuts) == 0 {
		return
	}
	e.logger.Printf("flush: flushing %d cuts", len(e.cuts))

	var moves []geometry.Move
	first, last := e.cuts[0], e.cuts[len(e.cuts)-1]
	if first == last && len(e.cuts) > 1 {
		// A closed path simplifies to nothing; do it in two halves.
		half := len(e.cuts) / 2
		e.logger.Printf("flush: same endpoints, splitting %d cuts at %d", len(e.cuts), half)
		moves = geometry.Simplify(e.cuts[:half], e.opts.Tolerance, e.plane)
		moves = append(moves, geometry.Simplify(e.cuts[half:], e.opts.Tolerance, e.plane)...)
	} else {
		moves = geometry.Simplify(e.cuts, e.opts.Tolerance, e.plane)
	}

	for _, m := range moves {
		if m.Center != nil {
			p := m.Point(e.last)
			e.printf("%s X%s Y%s Z%s %s", m.Mode,
				geometry.FormatCoord(p.X), geometry.FormatCoord(p.Y), geometry.FormatCoord(p.Z), m.Center)
			e.last = p
			// Arcs always restate their mode, and the next line must too.
			e.lastMode = geometry.ModeUnset
		} else {
			e.move(m, geometry.ModeLinear)
		}
	}
	e.cuts = e.cuts[:0]
}

// move writes the axes of m that differ from the last written position,
// prefixed by mode if that changed too. Nothing is written for a move that
// goes nowhere.
func (e *Emitter) move(m geometry.Move, mode geometry.Mode) {
	p := m.Point(e.last)
	var words []string
	if !float.IsNaN(p.X) && p.X != e.last.X {
		words = append(words, "X"+geometry.FormatCoord(p.X))
		e.last.X = p.X
	}
	if !float.IsNaN(p.Y) && p.Y != e.last.Y {
		words = append(words, "Y"+geometry.FormatCoord(p.Y))
		e.last.Y = p.Y
	}
	if !float.IsNaN(p.Z) && p.Z != e.last.Z {
		words = append(words, "Z"+geometry.FormatCoord(p.Z))
		e.last.Z = p.Z
	}
	if len(words) == 0 {
		return
	}
	if mode != e.lastMode {
		words = append([]string{mode.String()}, words...)
		e.lastMode = mode
	}
	e.println(strings.Join(words, " "))
}

// Rapid flushes and writes a rapid move.
func (e *Emitter) Rapid(m geometry.Move) {
	e.Flush()
	e.move(m, geometry.ModeRapid)
}

// Home flushes and rapids to the home height.
func (e *Emitter) Home() {
	e.Rapid(geometry.Move{Z: geometry.Some(e.opts.HomeHeight)})
}

// Safety flushes and rapids to the safety height.
func (e *Emitter) Safety() {
	e.Rapid(geometry.Move{Z: geometry.Some(e.opts.SafetyHeight)})
}

// End flushes, retracts to safety height and ends the program. It returns
// the first write error, if any.
func (e *Emitter) End() error {
	e.Flush()
	e.Safety()
	e.println("M2")
	return e.err
}
