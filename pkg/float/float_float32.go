//go:build float32

package float

import (
	"math"

	"github.com/chewxy/math32"
)

// Float is a floating point type. This type alias allows for easy switching between float32 and float64.
type Float = float32

// NearZero is the absolute threshold below which the geometry kernel treats a
// cross product or coordinate as zero. At float32 it is the machine epsilon.
const NearZero Float = 1.1920929e-07

const Pi = Float(math.Pi)

func Min(a, b Float) Float {
	return math32.Min(a, b)
}

func Max(a, b Float) Float {
	return math32.Max(a, b)
}

func Abs(n Float) Float {
	return math32.Abs(n)
}

func Sqrt(n Float) Float {
	return math32.Sqrt(n)
}

func Hypot(p, q Float) Float {
	return math32.Hypot(p, q)
}

func Atan2(y, x Float) Float {
	return math32.Atan2(y, x)
}

func NaN() Float {
	return math32.NaN()
}

func IsNaN(n Float) bool {
	return math32.IsNaN(n)
}

func Inf(sign int) Float {
	return math32.Inf(sign)
}

func IsInf(n Float, sign int) bool {
	return math32.IsInf(n, sign)
}

// Bits is the size of Float, for strconv.
const Bits = 32
