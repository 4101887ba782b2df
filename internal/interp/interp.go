// Package interp maps eased progress onto concrete property values.
package interp

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Float interpolates between a and b. f=0 gives a, f=1 gives b; f outside
// [0,1] extrapolates, which is how overshooting curves show through.
func Float(a, b, f float64) float64 {
	return a + (b-a)*f
}

// Angle interpolates between two angles in radians along the shorter arc.
func Angle(a, b, f float64) float64 {
	d := math.Remainder(b-a, 2*math.Pi)
	return a + d*f
}

// Vec3 is a point or direction in 3D.
type Vec3 struct{ X, Y, Z float64 }

// Vec interpolates a and b component-wise.
func Vec(a, b Vec3, f float64) Vec3 {
	return Vec3{Float(a.X, b.X, f), Float(a.Y, b.Y, f), Float(a.Z, b.Z, f)}
}

// Color blends in CIE-L*a*b*, which keeps perceived lightness even. The
// result is clamped into the RGB gamut.
func Color(a, b colorful.Color, f float64) colorful.Color {
	return a.BlendLab(b, f).Clamped()
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (colorful.Color, error) {
	return colorful.Hex(s)
}
