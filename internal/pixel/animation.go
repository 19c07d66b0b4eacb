package pixel

import "math"

func Fill(b *Buffer, c Color) {
	for i := range b.colors {
		b.colors[i] = c
	}
}

// FillRainbow spreads a full saturation hue gradient evenly over the whole buffer.
func FillRainbow(b *Buffer) {
	n := b.Len()
	for i := 0; i < n; i++ {
		b.colors[i] = HSB(float64(i)/float64(n), 1, 1)
	}
}

// FillPercentage sets the first pct percent of the cells to first and the rest to rest. Used as a gauge.
func FillPercentage(b *Buffer, first, rest Color, pct float64) {
	pct = clamp(pct, 0, 100)
	split := int(math.Round(pct / 100 * float64(b.Len())))

	i := 0
	for ; i < split; i++ {
		b.colors[i] = first
	}
	for ; i < b.Len(); i++ {
		b.colors[i] = rest
	}
}

// Rotate moves every cell one step towards the start of the strip, the first cell wrapping around to the end.
func Rotate(b *Buffer) {
	n := b.Len()
	if n < 2 {
		return
	}

	first := b.colors[0]
	for i := 0; i < n-1; i++ {
		b.Swap(i, i+1)
	}
	b.colors[n-1] = first
}

// Dim writes src scaled to the given brightness (0-100) into dst. src is left untouched.
func Dim(dst, src *Buffer, light float64) {
	n := src.Len()
	if dst.Len() < n {
		n = dst.Len()
	}
	for i := 0; i < n; i++ {
		dst.colors[i] = WithBrightness(src.colors[i], light)
	}
}
