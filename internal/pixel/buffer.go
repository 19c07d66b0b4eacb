package pixel

// Buffer mirrors the per-pixel state of a strip. It is allocated once with a fixed size.
type Buffer struct {
	colors []Color
}

func NewBuffer(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{colors: make([]Color, n)}
}

func (b *Buffer) Len() int {
	return len(b.colors)
}

func (b *Buffer) Get(i int) Color {
	return b.colors[i]
}

func (b *Buffer) Set(i int, c Color) {
	b.colors[i] = c
}

func (b *Buffer) Swap(i, j int) {
	b.colors[i], b.colors[j] = b.colors[j], b.colors[i]
}

// Colors exposes the backing slice. Callers must not keep it across ticks.
func (b *Buffer) Colors() []Color {
	return b.colors
}
