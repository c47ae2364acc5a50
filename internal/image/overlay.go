package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Renderer lays styled text over images. Every call to Render works on its
// own freshly allocated surface, so a Renderer can be shared between
// goroutines.
type Renderer struct {
	fonts  *FontRegistry
	angles AngleSource
}

// NewRenderer creates a renderer drawing with the registry's default family
// and rotating each line by an angle taken from angles.
func NewRenderer(fonts *FontRegistry, angles AngleSource) *Renderer {
	return &Renderer{fonts: fonts, angles: angles}
}

// Render returns a copy of src with text drawn across its top edge.
//
// Badge mode draws text as a single line. Caption mode wraps it to half the
// image width and fills it with the slightly darkened color found at the
// center of src. Every line is stroked, then filled, then rotated around its
// anchor by its own jitter angle.
func (r *Renderer) Render(text string, src image.Image, mode RenderMode) (*image.NRGBA, error) {
	if err := r.fonts.EnsureLoaded(); err != nil {
		return nil, err
	}

	out := imaging.Clone(src)
	if text == "" {
		return out, nil
	}

	style := StyleFor(mode, r.fonts.DefaultFamily())
	if mode == Caption {
		style.Fill = SampleCenterColor(src, DefaultDarken)
	}

	face, err := r.fonts.Face(style.FontFamily, style.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	width := out.Bounds().Dx()
	lines := []string{text}
	if style.Wrap {
		lines = Wrap(text, width/2, func(s string) int {
			return font.MeasureString(face, s).Ceil()
		})
	}

	for i, line := range lines {
		// start-aligned badges also begin at the horizontal center
		anchor := image.Pt(width/2, i*style.LineHeight())
		out = drawLine(out, line, anchor, style, face, r.angles.Angle())
	}
	return out, nil
}

// drawLine paints one line on its own layer and composites it onto dst so
// that the layer's anchor lands on anchor after rotating by angle.
func drawLine(dst *image.NRGBA, line string, anchor image.Point, style TextStyle, face font.Face, angle float64) *image.NRGBA {
	layer, origin := renderLine(line, style, face)

	var placed image.Image = layer
	if angle != 0 {
		w, h := layer.Bounds().Dx(), layer.Bounds().Dy()
		rotated := imaging.Rotate(layer, -angle*180/math.Pi, color.Transparent)
		origin = rotateAbout(origin, w, h, rotated.Bounds().Dx(), rotated.Bounds().Dy(), angle)
		placed = rotated
	}
	return imaging.Overlay(dst, placed, anchor.Sub(origin), 1.0)
}

// renderLine draws the stroked and filled line on a transparent layer and
// returns it with the anchor point inside the layer: the top of the text,
// at its horizontal center or start depending on the style.
func renderLine(line string, style TextStyle, face font.Face) (*image.RGBA, image.Point) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	advance := font.MeasureString(face, line).Ceil()

	radius := style.StrokeWidth / 2
	pad := radius + 1
	bounds := image.Rect(0, 0, advance+2*pad, height+2*pad)

	glyphs := image.NewAlpha(bounds)
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(pad, pad+ascent),
	}
	d.DrawString(line)

	layer := image.NewRGBA(bounds)
	if radius > 0 {
		outline := dilate(glyphs, radius)
		draw.DrawMask(layer, bounds, image.NewUniform(style.Stroke), image.Point{}, outline, image.Point{}, draw.Over)
	}
	draw.DrawMask(layer, bounds, image.NewUniform(style.Fill), image.Point{}, glyphs, image.Point{}, draw.Over)

	origin := image.Pt(pad, pad)
	if style.Align == AlignCenter {
		origin.X += advance / 2
	}
	return layer, origin
}

// dilate grows the coverage of mask by a disc of the given radius.
func dilate(mask *image.Alpha, radius int) *image.Alpha {
	b := mask.Bounds()
	out := image.NewAlpha(b)
	w, h := b.Dx(), b.Dy()
	offsets := discOffsets(radius)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := mask.Pix[y*mask.Stride+x]
			if a == 0 {
				continue
			}
			for _, o := range offsets {
				tx, ty := x+o.X, y+o.Y
				if tx < 0 || ty < 0 || tx >= w || ty >= h {
					continue
				}
				i := ty*out.Stride + tx
				if out.Pix[i] < a {
					out.Pix[i] = a
				}
			}
		}
	}
	return out
}

func discOffsets(radius int) []image.Point {
	var pts []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				pts = append(pts, image.Pt(dx, dy))
			}
		}
	}
	return pts
}

// rotateAbout maps p, a point of a w×h image, to its position in the
// dstW×dstH image obtained by rotating clockwise by angle radians about the
// center.
func rotateAbout(p image.Point, w, h, dstW, dstH int, angle float64) image.Point {
	sin, cos := math.Sincos(angle)
	x := float64(p.X) - float64(w)/2
	y := float64(p.Y) - float64(h)/2
	rx := x*cos - y*sin
	ry := x*sin + y*cos
	return image.Pt(
		int(math.Round(rx+float64(dstW)/2)),
		int(math.Round(ry+float64(dstH)/2)),
	)
}
