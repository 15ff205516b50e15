//go:build !float32

package float

import "math"

// Float is a floating point type. This type alias allows for easy switching between float32 and float64.
type Float = float64

// NearZero is the absolute threshold below which the geometry kernel treats a
// cross product or coordinate as zero. It is well above the float64 machine
// epsilon.
const NearZero Float = 1e-9

const Pi = Float(math.Pi)

func Min(a, b Float) Float {
	return math.Min(a, b)
}

func Max(a, b Float) Float {
	return math.Max(a, b)
}

func Abs(n Float) Float {
	return math.Abs(n)
}

func Sqrt(n Float) Float {
	return math.Sqrt(n)
}

func Hypot(p, q Float) Float {
	return math.Hypot(p, q)
}

func Atan2(y, x Float) Float {
	return math.Atan2(y, x)
}

func NaN() Float {
	return math.NaN()
}

func IsNaN(n Float) bool {
	return math.IsNaN(n)
}

func Inf(sign int) Float {
	return math.Inf(sign)
}

func IsInf(n Float, sign int) bool {
	return math.IsInf(n, sign)
}

// Bits is the size of Float, for strconv.
const Bits = 64
