package geometry

import "ngcsmooth/pkg/float"

// DistanceToSegment returns the 3D distance from p to the segment a..b.
// A zero-length segment has distance 0 to every point.
func DistanceToSegment(a, b, p Point3) float.Float {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	d2 := dx*dx + dy*dy + dz*dz
	if d2 == 0 {
		return 0
	}
	t := (dx*(p.X-a.X) + dy*(p.Y-a.Y) + dz*(p.Z-a.Z)) / d2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	ex := p.X - a.X - t*dx
	ey := p.Y - a.Y - t*dy
	ez := p.Z - a.Z - t*dz
	return float.Sqrt(ex*ex + ey*ey + ez*ez)
}

// Circumradius returns the radius of the circle through p1, p2 and p3.
// ok is false when the points are collinear or coincident.
func Circumradius(p1, p2, p3 Point2) (radius float.Float, ok bool) {
	p12 := p1.Minus(p2)
	p23 := p2.Minus(p3)
	p31 := p3.Minus(p1)
	den := float.Abs(p12.CrossProductZ(p23))
	if den < float.NearZero {
		return 0, false
	}
	return p12.Magnitude() * p23.Magnitude() * p31.Magnitude() / 2 / den, true
}

// Circumcenter returns the center of the circle through p1, p2 and p3,
// using barycentric weights. ok is false for the same degenerate inputs
// as Circumradius.
func Circumcenter(p1, p2, p3 Point2) (center Point2, ok bool) {
	den := float.Abs(p1.Minus(p2).CrossProductZ(p2.Minus(p3)))
	if den < float.NearZero {
		return Point2{}, false
	}
	d := 2 * den * den
	alpha := p2.Minus(p3).Magnitude2() * p1.Minus(p2).Dot(p1.Minus(p3)) / d
	beta := p1.Minus(p3).Magnitude2() * p2.Minus(p1).Dot(p2.Minus(p3)) / d
	gamma := p1.Minus(p2).Magnitude2() * p3.Minus(p1).Dot(p3.Minus(p2)) / d
	return p1.Scale(alpha).Add(p2.Scale(beta)).Add(p3.Scale(gamma)), true
}

func sign(v float.Float) int {
	if float.Abs(v) < float.NearZero {
		return 0
	}
	if v < 0 {
		return -1
	}
	return 1
}

type quadrant struct{ x, y int }

// QuadrantConsistent reports whether p1, p2 and p3 all lie in one quadrant
// around center. A point on an axis counts as being in either quadrant it
// borders.
func QuadrantConsistent(plane Plane, center Point2, p1, p2, p3 Point3) bool {
	signs := map[quadrant]struct{}{}
	for _, p := range []Point3{p1, p2, p3} {
		q := plane.Project(p).Minus(center)
		signs[quadrant{sign(q.X), sign(q.Y)}] = struct{}{}
	}
	if len(signs) == 1 {
		return true
	}

	for _, diagonal := range []quadrant{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		if _, found := signs[diagonal]; found {
			delete(signs, quadrant{diagonal.x, 0})
			delete(signs, quadrant{0, diagonal.y})
		}
	}
	return len(signs) == 1
}

// SweepIsCounterClockwise reports whether the arc around center from p1
// through p2 to p3 turns counter-clockwise in the projected plane. The
// angles are unwrapped so that each is at least the previous one; the arc
// is counter-clockwise when the total sweep stays below a full turn.
func SweepIsCounterClockwise(plane Plane, center Point2, p1, p2, p3 Point3) bool {
	angle := func(p Point3) float.Float {
		v := plane.Project(p).Minus(center)
		return float.Atan2(v.Y, v.X)
	}
	start, mid, end := angle(p1), angle(p2), angle(p3)

	if mid < start {
		mid += 2 * float.Pi
	}
	for end < mid {
		end += 2 * float.Pi
	}
	return end-start < 2*float.Pi
}

// ArcDeviation returns how far p lies from the circle of the given center
// and radius, measured in the plane.
func ArcDeviation(plane Plane, center Point2, p Point3, radius float.Float) float.Float {
	return float.Abs(plane.Project(p).Distance(center) - radius)
}

// ArcCenter is the center of an arc relative to its start point, in the
// arc's plane.
type ArcCenter struct {
	Plane Plane
	A     float.Float
	B     float.Float
}

// ArcOffsets returns center minus start, tagged with the plane.
func ArcOffsets(plane Plane, center Point2, start Point3) ArcCenter {
	offset := center.Minus(plane.Project(start))
	return ArcCenter{Plane: plane, A: offset.X, B: offset.Y}
}

// String formats the offsets as G-code words, e.g. "I1.000000 J-2.500000".
func (c ArcCenter) String() string {
	a, b := c.Plane.Letters()
	return a + FormatCoord(c.A) + " " + b + FormatCoord(c.B)
}
