package geom

import "math"

// Vec is a 2D vector in world units (pixels, pixels/s or pixels/s²).
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }
func (v Vec) Mod() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec) Eq(o Vec, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Cap clamps each component of v into [-limit, limit] of the same axis.
func (v Vec) Cap(limit Vec) Vec {
	return Vec{
		X: math.Min(limit.X, math.Max(-limit.X, v.X)),
		Y: math.Min(limit.Y, math.Max(-limit.Y, v.Y)),
	}
}

// WithMod returns a vector pointing along v with modulus m.
// A zero vector stays zero.
func (v Vec) WithMod(m float64) Vec {
	l := v.Mod()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(m / l)
}
