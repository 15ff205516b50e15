package geometry

import "ngcsmooth/pkg/float"

// Point3 is a tool position. Points are compared with ==, which is exact.
type Point3 struct {
	X float.Float
	Y float.Float
	Z float.Float
}

// Point2 is a Point3 projected onto one of the arc planes.
type Point2 struct {
	X float.Float
	Y float.Float
}

type Vector2 = Point2

func (a Vector2) Minus(b Vector2) Vector2 {
	return Vector2{
		X: a.X - b.X,
		Y: a.Y - b.Y,
	}
}

func (a Vector2) Add(b Vector2) Vector2 {
	return Vector2{
		X: a.X + b.X,
		Y: a.Y + b.Y,
	}
}

// Scale returns the point scaled by the given factor f.
func (p Point2) Scale(f float.Float) Point2 {
	return Point2{X: p.X * f, Y: p.Y * f}
}

func (a Vector2) Dot(b Vector2) float.Float {
	return a.X*b.X + a.Y*b.Y
}

func (a Vector2) CrossProductZ(b Vector2) float.Float {
	return a.X*b.Y - a.Y*b.X
}

func (v Vector2) Magnitude() float.Float {
	return float.Hypot(v.X, v.Y)
}

func (v Vector2) Magnitude2() float.Float {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance between two points.
func (p Point2) Distance(other Point2) float.Float {
	return float.Hypot(p.X-other.X, p.Y-other.Y)
}

// Distance returns the 3D distance between two points.
func (p Point3) Distance(other Point3) float.Float {
	dx, dy, dz := p.X-other.X, p.Y-other.Y, p.Z-other.Z
	return float.Sqrt(dx*dx + dy*dy + dz*dz)
}
