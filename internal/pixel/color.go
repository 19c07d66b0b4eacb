package pixel

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a single cell packed the way the ws281x driver expects it: 0xWWRRGGBB.
type Color uint32

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func RGBW(r, g, b, w uint8) Color {
	return RGB(r, g, b) | Color(uint32(w)<<24)
}

func (c Color) W() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) String() string {
	if c.W() != 0 {
		return fmt.Sprintf("%08x", uint32(c))
	}
	return fmt.Sprintf("%06x", uint32(c))
}

// HSB converts a hue/saturation/brightness triple, all on a 0-1 scale, to a Color. Saturation and brightness
// are clamped, hue wraps around.
func HSB(hue, saturation, brightness float64) Color {
	hue = math.Mod(hue, 1)
	if hue < 0 {
		hue += 1
	}
	r, g, b := colorful.Hsv(hue*360, clamp(saturation, 0, 1), clamp(brightness, 0, 1)).Clamped().RGB255()
	return RGB(r, g, b)
}

// WithBrightness gets the same color, but with a lower or equal brightness, on a scale from 0-100, where 100 is
// the same as the input.
func WithBrightness(c Color, light float64) Color {
	if light >= 100 {
		return c
	}
	if light <= 0 {
		return 0
	}

	scale := func(v uint8) uint8 {
		return uint8(float64(v) * light / 100)
	}
	return RGBW(scale(c.R()), scale(c.G()), scale(c.B()), scale(c.W()))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
