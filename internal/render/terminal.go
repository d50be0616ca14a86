package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

// border takes one column and one line on each side of a cell
const borderSize = 2

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("244"))

	markStyles = map[entity.Player]lipgloss.Style{
		entity.Player0: lipgloss.NewStyle().Foreground(lipgloss.Color("#D93333")).Bold(true),
		entity.Player1: lipgloss.NewStyle().Foreground(lipgloss.Color("#3359D9")).Bold(true),
	}
)

// Terminal draws the board with box-drawing borders, one character per surface unit.
type Terminal struct{}

func NewTerminal() *Terminal {
	return &Terminal{}
}

// Fits - reports whether every cell of the surface has room for its border and one inner line.
// Render only matches the surface extent when it does.
func (that *Terminal) Fits(surface canvas.Surface) bool {
	cellWidth, cellHeight := surface.CellSize()
	minCell := float64(borderSize + 1)

	return cellWidth >= minCell && cellHeight >= minCell
}

// Render - returns the board as a block of Height lines, each Width columns wide.
func (that *Terminal) Render(surface canvas.Surface, state *entity.GameState) string {
	cellWidth, cellHeight := surface.CellSize()
	innerWidth := max(int(cellWidth)-borderSize, 1)
	innerHeight := max(int(cellHeight)-borderSize, 1)

	rows := make([]string, 0, entity.BoardSize)
	line := make([]string, 0, entity.BoardSize)

	for _, box := range cells(surface, state) {
		content := strings.Join(glyph(box, innerWidth, innerHeight), "\n")
		if box.occupied {
			content = markStyles[box.owner].Render(content)
		}

		line = append(line, cellStyle.Render(content))

		if box.col == entity.BoardSize-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = line[:0]
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// glyph - rasterizes the mark of a cell into width x height runes.
// X follows the two diagonals, O follows a circle that is round on screen.
func glyph(box cellBox, width, height int) []string {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	if box.occupied {
		for row := range grid {
			// vertical position of the line center in [0, 1]
			v := (float64(row) + 0.5) / float64(height)

			switch box.owner {
			case entity.Player0:
				left := int(math.Round(v * float64(width-1)))
				right := width - 1 - left

				grid[row][left], grid[row][right] = '\\', '/'
				if left == right {
					grid[row][left] = 'X'
				}
			case entity.Player1:
				// half chord of the unit circle at this height
				half := math.Sqrt(1 - math.Pow(2*v-1, 2))
				center := float64(width-1) / 2
				offset := half * center

				grid[row][int(math.Round(center-offset))] = 'o'
				grid[row][int(math.Round(center+offset))] = 'o'
			}
		}
	}

	lines := make([]string, height)
	for i, runes := range grid {
		lines[i] = string(runes)
	}

	return lines
}
