package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

const DefaultLineWidth = 10

type rgb struct{ r, g, b float64 }

var (
	background = rgb{1, 1, 1}
	gridColor  = rgb{0.1, 0.1, 0.1}

	playerColors = map[entity.Player]rgb{
		entity.Player0: {0.85, 0.2, 0.2},
		entity.Player1: {0.2, 0.35, 0.85},
	}
)

// Canvas strokes the board onto a raster image.
type Canvas struct {
	lineWidth float64
}

func NewCanvas(lineWidth float64) *Canvas {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}

	return &Canvas{lineWidth: lineWidth}
}

// Draw - clears the surface and draws the grid and every mark.
func (that *Canvas) Draw(surface canvas.Surface, state *entity.GameState) image.Image {
	return that.draw(surface, state).Image()
}

// Render - draws the board and encodes it as PNG.
func (that *Canvas) Render(writer io.Writer, surface canvas.Surface, state *entity.GameState) error {
	if err := that.draw(surface, state).EncodePNG(writer); err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	return nil
}

func (that *Canvas) draw(surface canvas.Surface, state *entity.GameState) *gg.Context {
	dc := gg.NewContext(surface.Width, surface.Height)

	dc.SetRGB(background.r, background.g, background.b)
	dc.Clear()
	dc.SetLineWidth(that.lineWidth)

	for _, box := range cells(surface, state) {
		dc.SetRGB(gridColor.r, gridColor.g, gridColor.b)
		dc.DrawRectangle(box.x, box.y, box.width, box.height)
		dc.Stroke()

		if !box.occupied {
			continue
		}

		color := playerColors[box.owner]
		dc.SetRGB(color.r, color.g, color.b)

		switch box.owner {
		case entity.Player0:
			for _, stroke := range box.crossStrokes() {
				dc.DrawLine(stroke[0], stroke[1], stroke[2], stroke[3])
			}
		case entity.Player1:
			dc.DrawCircle(box.ring())
		}

		dc.Stroke()
	}

	return dc
}
