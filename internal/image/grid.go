package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	CanvasWidth  = 800
	CanvasHeight = 800
	// MaxColumns is the widest a grid row gets; it also fixes the cell size.
	MaxColumns = 4
)

// GridLayout is the placement of n images on the fixed canvas. Cells are
// square and the grid is centered on both axes.
type GridLayout struct {
	Count       int
	Columns     int
	Rows        int
	CellSize    int
	PaddingTop  int
	PaddingLeft int
}

// Layout computes the grid for n images.
func Layout(n int) (GridLayout, error) {
	if n < 1 {
		return GridLayout{}, &LayoutError{Count: n, Reason: "at least one image is required"}
	}

	cols := min(n, MaxColumns)
	rows := (n + cols - 1) / cols
	cell := CanvasWidth / MaxColumns

	return GridLayout{
		Count:       n,
		Columns:     cols,
		Rows:        rows,
		CellSize:    cell,
		PaddingTop:  (CanvasHeight - rows*cell) / 2,
		PaddingLeft: (CanvasWidth - cols*cell) / 2,
	}, nil
}

// Cell returns the canvas rectangle of the i-th image.
func (l GridLayout) Cell(i int) image.Rectangle {
	col := i % l.Columns
	row := i / l.Columns
	origin := image.Pt(l.PaddingLeft+col*l.CellSize, l.PaddingTop+row*l.CellSize)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(l.CellSize, l.CellSize))}
}

// ComposeGrid tiles images onto a new 800x800 canvas, each one stretched to
// fill its square cell. Inputs are left untouched.
func ComposeGrid(images []image.Image) (*image.NRGBA, error) {
	layout, err := Layout(len(images))
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(CanvasWidth, CanvasHeight, color.Transparent)
	for i, img := range images {
		cell := layout.Cell(i)
		scaled := imaging.Resize(img, cell.Dx(), cell.Dy(), imaging.Lanczos)
		canvas = imaging.Paste(canvas, scaled, cell.Min)
	}
	return canvas, nil
}
