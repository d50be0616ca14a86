package canvas

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

// the board takes this share of the smaller viewport dimension
const viewportFill = 0.8

const (
	// PixelAspect is the width/height ratio of a pixel.
	PixelAspect = 1.0
	// TerminalAspect is the number of terminal columns that span the height of one row.
	TerminalAspect = 2.0
)

// Surface is the drawable area of the board. Width and Height are multiples of the board size.
type Surface struct {
	Width  int
	Height int
}

// Setup - sizes a square surface to the smaller viewport dimension.
// aspect converts one unit of height into horizontal units, so a terminal surface is square on screen.
func Setup(viewWidth, viewHeight int, aspect float64) (Surface, error) {
	if aspect <= 0 {
		aspect = PixelAspect
	}

	side := math.Min(float64(viewHeight), float64(viewWidth)/aspect) * viewportFill

	height := snap(int(side))
	width := snap(int(float64(height) * aspect))

	if height == 0 || width == 0 {
		return Surface{}, fmt.Errorf("%w: %dx%d", apperror.ErrViewportTooSmall, viewWidth, viewHeight)
	}

	return Surface{Width: width, Height: height}, nil
}

// snap - rounds down to a multiple of the board size so every cell gets the same extent.
func snap(value int) int {
	if value < entity.BoardSize {
		return 0
	}

	return value - value%entity.BoardSize
}

// CellSize - returns the width and height of one cell.
func (that Surface) CellSize() (float64, float64) {
	return float64(that.Width) / entity.BoardSize, float64(that.Height) / entity.BoardSize
}

// CellOrigin - returns the top-left corner of the cell.
func (that Surface) CellOrigin(row, col int) (float64, float64) {
	cellWidth, cellHeight := that.CellSize()

	return float64(col) * cellWidth, float64(row) * cellHeight
}

// CellAt - maps a point on the surface to the cell under it.
func (that Surface) CellAt(x, y float64) (int, int, error) {
	if x < 0 || y < 0 || x >= float64(that.Width) || y >= float64(that.Height) {
		return 0, 0, fmt.Errorf("%w: (%g, %g) on %dx%d", apperror.ErrOutsideSurface, x, y, that.Width, that.Height)
	}

	cellWidth, cellHeight := that.CellSize()

	row := int(math.Floor(y / cellHeight))
	col := int(math.Floor(x / cellWidth))

	return row, col, nil
}
