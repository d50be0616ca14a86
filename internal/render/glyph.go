// Package render draws a GameState onto a surface. Renderers only read the state.
package render

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

// glyphInset is the share of a cell kept clear around a mark.
const glyphInset = 0.2

type cellBox struct {
	row, col      int
	x, y          float64
	width, height float64
	owner         entity.Player
	occupied      bool
}

// cells - lays out the nine cells of the state on the surface, row by row.
func cells(surface canvas.Surface, state *entity.GameState) []cellBox {
	width, height := surface.CellSize()
	boxes := make([]cellBox, 0, entity.CellCount)

	for index, cell := range state.Field {
		row, col := index/entity.BoardSize, index%entity.BoardSize
		x, y := surface.CellOrigin(row, col)
		owner, occupied := cell.Owner()

		boxes = append(boxes, cellBox{
			row: row, col: col,
			x: x, y: y,
			width: width, height: height,
			owner:    owner,
			occupied: occupied,
		})
	}

	return boxes
}

// strokes of the X glyph: two diagonals across the inset cell.
func (that cellBox) crossStrokes() [2][4]float64 {
	padX, padY := that.width*glyphInset, that.height*glyphInset
	left, top := that.x+padX, that.y+padY
	right, bottom := that.x+that.width-padX, that.y+that.height-padY

	return [2][4]float64{
		{left, top, right, bottom},
		{right, top, left, bottom},
	}
}

// circle of the O glyph: center and radius inside the inset cell.
func (that cellBox) ring() (float64, float64, float64) {
	radius := math.Min(that.width, that.height) * (0.5 - glyphInset)

	return that.x + that.width/2, that.y + that.height/2, radius
}
