package geometry

import (
	"strconv"

	"ngcsmooth/pkg/float"
)

// Mode is the motion mode of a move.
type Mode int

const (
	// ModeUnset keeps whatever mode the machine is currently in.
	ModeUnset Mode = iota
	ModeRapid
	ModeLinear
	ModeCW
	ModeCCW
)

func (m Mode) String() string {
	switch m {
	case ModeRapid:
		return "G00"
	case ModeLinear:
		return "G01"
	case ModeCW:
		return "G02"
	case ModeCCW:
		return "G03"
	}
	return ""
}

// Axis is an optional coordinate. An unset axis keeps its previous value.
type Axis struct {
	Value float.Float
	Set   bool
}

// Some returns a set Axis.
func Some(v float.Float) Axis {
	return Axis{Value: v, Set: true}
}

// Or returns the axis value, or fallback when the axis is unset.
func (a Axis) Or(fallback float.Float) float.Float {
	if a.Set {
		return a.Value
	}
	return fallback
}

// Move is a sparse motion update. Unset axes are unchanged from the last
// emitted position. Center is only non-nil on arc moves.
type Move struct {
	X, Y, Z Axis
	Center  *ArcCenter
	Mode    Mode
}

// MoveTo returns a move with all three axes set to p.
func MoveTo(p Point3) Move {
	return Move{X: Some(p.X), Y: Some(p.Y), Z: Some(p.Z)}
}

// Point returns the move's coordinates, resolving unset axes against last.
func (m Move) Point(last Point3) Point3 {
	return Point3{X: m.X.Or(last.X), Y: m.Y.Or(last.Y), Z: m.Z.Or(last.Z)}
}

// FormatCoord formats a coordinate with six decimals. Negative zero is
// written as zero.
func FormatCoord(v float.Float) string {
	s := strconv.FormatFloat(float64(v), 'f', 6, 64)
	if s == "-0.000000" {
		return "0.000000"
	}
	return s
}
