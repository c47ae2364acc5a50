package imagepkg

import (
	"fmt"
	"image/color"
)

// RenderMode selects how text is laid over an image.
type RenderMode int

const (
	// Badge draws one large, heavily outlined label, used for grid indices.
	Badge RenderMode = iota
	// Caption draws wrapped text filled with a color taken from the image.
	Caption
)

func (m RenderMode) String() string {
	switch m {
	case Badge:
		return "badge"
	case Caption:
		return "caption"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// Align is the horizontal anchoring of a text line.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
)

// TextStyle describes how a line of text is painted. Lines are always
// anchored by the top of the text.
type TextStyle struct {
	FontFamily  string
	FontSize    float64
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth int
	Align       Align
	Wrap        bool
}

// LineHeight is the vertical distance between consecutive lines.
func (s TextStyle) LineHeight() int {
	return int(s.FontSize) - 20
}

// StyleFor returns the style of mode. Caption fill is a placeholder until the
// renderer samples it from the source image.
func StyleFor(mode RenderMode, family string) TextStyle {
	switch mode {
	case Badge:
		return TextStyle{
			FontFamily:  family,
			FontSize:    120,
			Fill:        color.White,
			Stroke:      color.Black,
			StrokeWidth: 30,
			Align:       AlignStart,
		}
	default:
		return TextStyle{
			FontFamily:  family,
			FontSize:    70,
			Fill:        color.Black,
			Stroke:      color.White,
			StrokeWidth: 10,
			Align:       AlignCenter,
			Wrap:        true,
		}
	}
}
