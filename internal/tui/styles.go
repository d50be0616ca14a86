// Package tui runs the board in a terminal: an interactive game and a read-only spectator view.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/render"
)

// one line under the board for the status
const statusHeight = 1

var (
	statusStyle = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D93333"))
)

func statusText(status string, turn, winner entity.Player) string {
	switch status {
	case entity.StatusWon:
		return fmt.Sprintf("%s wins", winner.Mark())
	case entity.StatusDraw:
		return "Draw"
	default:
		return fmt.Sprintf("%s to move", turn.Mark())
	}
}

// fitBoard - sizes the board for a terminal of width x height, leaving room for the status line.
// A board whose cells cannot hold their borders is refused, so clicks always map to the drawn cell.
func fitBoard(renderer *render.Terminal, width, height int) (canvas.Surface, error) {
	surface, err := canvas.Setup(width, height-statusHeight, canvas.TerminalAspect)
	if err != nil {
		return canvas.Surface{}, err
	}

	if !renderer.Fits(surface) {
		return canvas.Surface{}, fmt.Errorf("%w: %dx%d", apperror.ErrViewportTooSmall, width, height)
	}

	return surface, nil
}
