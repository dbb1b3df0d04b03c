// Package colorspace converts between sRGB and CIE Lab (D65) and computes
// perceptual color distance under both the Euclidean (ΔE₇₆) and CIEDE2000
// (ΔE₀₀) metrics.
package colorspace

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB holds three 8-bit sRGB channels. Alpha is not represented; callers
// drop it before conversion.
type RGB struct {
	R, G, B uint8
}

// Lab holds a CIE Lab triple. L is in [0, 100]; A and B are roughly in
// [-128, 127].
type Lab struct {
	L, A, B float64
}

// srgbToLinear applies the piecewise inverse sRGB gamma curve to a single
// 8-bit channel, returning a linear value in [0, 1].
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToXyz converts linear sRGB to CIE XYZ under the D65 reference white
// via the standard sRGB primaries matrix.
func linearToXyz(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

const labEpsilon = 216.0 / 24389.0
const labKappa = 24389.0 / 27.0

// xyzToLab converts D65 CIE XYZ to Lab, clamping negative inputs to zero
// before the nonlinear transform.
func xyzToLab(x, y, z float64) Lab {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if z < 0 {
		z = 0
	}
	xr := x / 0.95047
	yr := y / 1.00000
	zr := z / 1.08883
	f := func(t float64) float64 {
		if t > labEpsilon {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16.0) / 116.0
	}
	fx, fy, fz := f(xr), f(yr), f(zr)
	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// ToLab converts an sRGB color to CIE Lab (D65).
func (c RGB) ToLab() Lab {
	r := srgbToLinear(c.R)
	g := srgbToLinear(c.G)
	b := srgbToLinear(c.B)
	x, y, z := linearToXyz(r, g, b)
	return xyzToLab(x, y, z)
}

// DeltaE76 returns the Euclidean distance between two Lab colors.
func DeltaE76(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// DeltaE00 returns the CIEDE2000 perceptual distance between two Lab
// colors, delegated to go-colorful's implementation of the formula.
//
// go-colorful's Lab constructor and distance functions operate on L, a, b
// normalized by a factor of 100 relative to the conventional L in [0,100]
// scale used elsewhere in this package, so inputs are rescaled before the
// call and the returned distance is scaled back up by the same factor.
func DeltaE00(a, b Lab) float64 {
	ca := colorful.Lab(a.L/100, a.A/100, a.B/100)
	cb := colorful.Lab(b.L/100, b.A/100, b.B/100)
	return ca.DistanceCIEDE2000(cb) * 100
}

// Hex renders an RGB value as an upper-case "#RRGGBB" string.
func (c RGB) Hex() string {
	const hexDigits = "0123456789ABCDEF"
	buf := [7]byte{'#'}
	buf[1] = hexDigits[c.R>>4]
	buf[2] = hexDigits[c.R&0xF]
	buf[3] = hexDigits[c.G>>4]
	buf[4] = hexDigits[c.G&0xF]
	buf[5] = hexDigits[c.B>>4]
	buf[6] = hexDigits[c.B&0xF]
	return string(buf[:])
}
