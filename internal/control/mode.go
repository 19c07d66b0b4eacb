package control

type Mode int

const (
	SolidColor Mode = iota
	Rainbow
)

func (m Mode) String() string {
	switch m {
	case SolidColor:
		return "solid"
	case Rainbow:
		return "rainbow"
	}
	return "N/A"
}
