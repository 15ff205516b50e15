package geometry

import "ngcsmooth/pkg/float"

// recursion tells douglas whether it owns the endpoints of its range.
type recursion int

const (
	// outermost calls emit the first and last point of the range.
	outermost recursion = iota
	// interior calls share both endpoints with their caller, which emits them.
	interior
)

// Simplify simplifies the path using a variant of the Douglas-Peucker
// algorithm and returns it as a sequence of moves. Every input point lies
// within tolerance of the returned path, and the first and last returned
// moves are the first and last input points.
//
// If plane is not PlaneNone, runs of points that fit a circle in that plane
// are returned as a single arc move. Movement perpendicular to the plane
// distorts the fit, so a plane should only be given for paths that move on
// the plane's two axes.
//
// A closed path (first point equal to last) simplifies to almost nothing;
// callers should split it first.
func Simplify(points []Point3, tolerance float.Float, plane Plane) []Move {
	if len(points) == 0 {
		panic("geometry: Simplify called with no points")
	}
	return douglas(points, tolerance, plane, outermost)
}

func douglas(points []Point3, tolerance float.Float, plane Plane, call recursion) []Move {
	if len(points) == 1 {
		return []Move{MoveTo(points[0])}
	}

	first, last := points[0], points[len(points)-1]
	closed := first == last

	worstDist := float.Inf(-1)
	worstIndex := 0
	minRadius := float.Inf(1)
	minIndex := -1
	for i, p := range points {
		var d float.Float
		if closed {
			// DistanceToSegment is 0 for a zero-length chord, which would
			// let a loop back to the start pass unsplit; measure to the point.
			d = first.Distance(p)
		} else {
			d = DistanceToSegment(first, last, p)
		}
		if d > worstDist {
			worstDist = d
			worstIndex = i
		}
		if plane == PlaneNone {
			continue
		}
		if r, ok := Circumradius(plane.Project(first), plane.Project(p), plane.Project(last)); ok && r < minRadius {
			minRadius = r
			minIndex = i
		}
	}

	worstArcDist := float.Inf(1)
	var center Point2
	var arcPoint Point3
	if minIndex >= 0 {
		var ok bool
		arcPoint, center, ok = arcCandidate(points, minIndex, plane)
		if ok && QuadrantConsistent(plane, center, first, arcPoint, last) {
			worstArcDist = 0
			for _, p := range points {
				worstArcDist = float.Max(worstArcDist, ArcDeviation(plane, center, p, minRadius))
			}
		}
	}

	var result []Move
	switch {
	case worstArcDist < tolerance && worstArcDist < worstDist:
		ccw := SweepIsCounterClockwise(plane, center, first, arcPoint, last)
		if plane.flipsSweep() {
			ccw = !ccw
		}
		arc := MoveTo(last)
		offsets := ArcOffsets(plane, center, first)
		arc.Center = &offsets
		if ccw {
			arc.Mode = ModeCCW
		} else {
			arc.Mode = ModeCW
		}
		result = append(result, MoveTo(first), arc)

	case worstDist > tolerance:
		if call == outermost {
			result = append(result, MoveTo(first))
		}
		result = append(result, douglas(points[:worstIndex+1], tolerance, plane, interior)...)
		result = append(result, MoveTo(points[worstIndex]))
		result = append(result, douglas(points[worstIndex:], tolerance, plane, interior)...)
		if call == outermost {
			result = append(result, MoveTo(last))
		}

	default:
		if call == outermost {
			result = append(result, MoveTo(first), MoveTo(last))
		}
	}
	return result
}

// arcCandidate picks the middle point used to construct the candidate
// circle: the point just before the one with the smallest circumradius.
// When that is the first point the circle is degenerate and ok is false,
// so the range is never fitted with an arc.
func arcCandidate(points []Point3, minIndex int, plane Plane) (Point3, Point2, bool) {
	i := minIndex - 1
	if i < 0 {
		return Point3{}, Point2{}, false
	}
	first, last := plane.Project(points[0]), plane.Project(points[len(points)-1])
	center, ok := Circumcenter(first, plane.Project(points[i]), last)
	if !ok {
		return Point3{}, Point2{}, false
	}
	return points[i], center, true
}
