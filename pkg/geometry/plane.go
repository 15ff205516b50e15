package geometry

// Plane selects which pair of axes is used for arc fitting.
type Plane int

const (
	// PlaneNone disables arc fitting; only straight moves are produced.
	PlaneNone Plane = iota
	PlaneXY
	PlaneXZ
	PlaneYZ
)

// String returns the plane-select word (G17, G18 or G19).
func (pl Plane) String() string {
	switch pl {
	case PlaneXY:
		return "G17"
	case PlaneXZ:
		return "G18"
	case PlaneYZ:
		return "G19"
	}
	return ""
}

// Letters returns the axis letters used for arc center offsets in the plane.
func (pl Plane) Letters() (string, string) {
	switch pl {
	case PlaneXY:
		return "I", "J"
	case PlaneXZ:
		return "I", "K"
	case PlaneYZ:
		return "J", "K"
	}
	panic("geometry: no offset letters for plane " + pl.String())
}

// Project drops the axis perpendicular to the plane.
func (pl Plane) Project(p Point3) Point2 {
	switch pl {
	case PlaneXY:
		return Point2{X: p.X, Y: p.Y}
	case PlaneXZ:
		return Point2{X: p.X, Y: p.Z}
	case PlaneYZ:
		return Point2{X: p.Y, Y: p.Z}
	}
	panic("geometry: cannot project onto PlaneNone")
}

// ParsePlane maps "xy", "xz", "yz" (or the G17/G18/G19 words) to a Plane.
// Anything else, including the empty string, is PlaneNone.
func ParsePlane(s string) (Plane, bool) {
	switch s {
	case "xy", "XY", "G17":
		return PlaneXY, true
	case "xz", "XZ", "G18":
		return PlaneXZ, true
	case "yz", "YZ", "G19":
		return PlaneYZ, true
	case "", "none":
		return PlaneNone, true
	}
	return PlaneNone, false
}

// flipsSweep reports whether the projected sweep direction is reversed
// relative to the commanded arc direction.
// TODO: re-derive this from the G18 axis orientation instead of keeping it as observed.
func (pl Plane) flipsSweep() bool {
	return pl == PlaneXZ
}
