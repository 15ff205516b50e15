package gcode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngcsmooth/pkg/float"
	"ngcsmooth/pkg/geometry"
)

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func point(x, y, z float.Float) geometry.Move {
	return geometry.MoveTo(geometry.Point3{X: x, Y: y, Z: z})
}

func TestBeginEnd(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, DefaultOptions())
	e.Begin()
	if err := e.End(); err != nil {
		t.Fatalf("End: %s", err)
	}

	want := []string{
		"G20",
		"G00 Z0.040000",
		"G17 G40",
		"G80 G90 G94",
		"S1000 M3",
		"G04 P3",
		"M2",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestDedup(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, DefaultOptions())
	e.Cut(point(1, 2, 3))
	e.Flush()
	e.Cut(point(1, 2, 3))
	e.Cut(point(1, 2, 5))
	e.Flush()

	want := []string{
		"G01 X1.000000 Y2.000000 Z3.000000",
		"Z5.000000",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestNoOpMovesAreDropped(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, DefaultOptions())
	e.Rapid(point(0, 0, 1))
	e.Rapid(point(0, 0, 1))
	e.Rapid(geometry.Move{})
	e.Rapid(geometry.Move{Z: geometry.Some(1)})
	e.Cut(point(0, 0, 1))
	e.Flush()

	want := []string{"G00 X0.000000 Y0.000000 Z1.000000"}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestModeWords(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Tolerance = 0.01
	e := New(&buf, opts)
	e.Rapid(point(0, 0, 0.1))
	e.Cut(geometry.Move{Z: geometry.Some(-0.005)})
	e.Cut(geometry.Move{X: geometry.Some(0.005)})
	e.Cut(geometry.Move{X: geometry.Some(0.01)})
	e.SetFeed(12)
	e.Cut(geometry.Move{Y: geometry.Some(0.01)})
	e.Safety()

	want := []string{
		"G00 X0.000000 Y0.000000 Z0.100000",
		"G01 Z-0.005000",
		"X0.010000",
		"F12",
		"Y0.010000",
		"G00 Z0.040000",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestLargeStepFlushes(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Tolerance = 0.1
	e := New(&buf, opts)
	e.Rapid(point(0, 0, 0))
	e.Cut(point(0.05, 0, 0))
	e.Cut(point(0.1, 0, 0))
	if e.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", e.Pending())
	}
	// More than the tolerance away on Y: the run so far is written first.
	e.Cut(point(0.1, 0.5, 0))
	if e.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", e.Pending())
	}

	want := []string{
		"G00 X0.000000 Y0.000000 Z0.000000",
		"G01 X0.050000",
		"X0.100000",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestClosedPathBisection(t *testing.T) {
	// A unit square walked in quarter steps, ending where it started.
	var square []geometry.Point3
	for i := 0; i < 4; i++ {
		square = append(square, geometry.Point3{X: float.Float(i) * 0.25})
	}
	for i := 0; i < 4; i++ {
		square = append(square, geometry.Point3{X: 1, Y: float.Float(i) * 0.25})
	}
	for i := 0; i < 4; i++ {
		square = append(square, geometry.Point3{X: 1 - float.Float(i)*0.25, Y: 1})
	}
	for i := 0; i <= 4; i++ {
		square = append(square, geometry.Point3{Y: 1 - float.Float(i)*0.25})
	}

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Tolerance = 0.3
	e := New(&buf, opts)
	e.SetPlane(geometry.PlaneNone)
	e.Rapid(point(0, 0, 0))
	for _, p := range square {
		e.Cut(geometry.MoveTo(p))
	}
	if e.Pending() != len(square) {
		t.Fatalf("Pending() = %d, want %d", e.Pending(), len(square))
	}
	e.Flush()

	// The first half ends at (1, 0.75); the second starts at the midpoint
	// (1, 1), which is written once.
	want := []string{
		"G00 X0.000000 Y0.000000 Z0.000000",
		"G01 X1.000000",
		"Y0.750000",
		"Y1.000000",
		"X0.000000",
		"Y0.000000",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestArc(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Tolerance = 0.01
	e := New(&buf, opts)
	e.Rapid(point(1, 0, 0))
	for deg := 0.0; deg <= 90; deg += 0.5 {
		rad := deg * math.Pi / 180
		e.Cut(point(float.Float(math.Cos(rad)), float.Float(math.Sin(rad)), 0))
	}
	e.Flush()
	e.Cut(geometry.Move{Y: geometry.Some(1.005)})
	e.Flush()

	want := []string{
		"G00 X1.000000 Y0.000000 Z0.000000",
		"G03 X0.000000 Y1.000000 Z0.000000 I-1.000000 J0.000000",
		"G01 Y1.005000",
	}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
}

func TestSetPlane(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, DefaultOptions())
	e.SetPlane(geometry.PlaneXY)
	e.SetPlane(geometry.PlaneXZ)
	e.SetPlane(geometry.PlaneXZ)
	e.SetPlane(geometry.PlaneYZ)
	e.ExactPath()
	e.Continuous(0.001)
	e.Continuous(0)
	e.Home()

	want := []string{"G18", "G19", "G61", "G64 P0.001", "G64", "G00 Z1.500000"}
	if diff := cmp.Diff(want, lines(&buf)); diff != "" {
		t.Errorf("incorrect output: %s", diff)
	}
	if e.Plane() != geometry.PlaneYZ {
		t.Errorf("Plane() = %v, want G19", e.Plane())
	}
}

type failingWriter struct{ n int }

var errFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errFull
	}
	w.n--
	return len(p), nil
}

func TestWriteErrorIsSticky(t *testing.T) {
	w := &failingWriter{n: 2}
	e := New(w, DefaultOptions())
	e.Begin()
	if !errors.Is(e.Err(), errFull) {
		t.Fatalf("Err() = %v, want %v", e.Err(), errFull)
	}
	if err := e.End(); !errors.Is(err, errFull) {
		t.Errorf("End() = %v, want %v", err, errFull)
	}
}
