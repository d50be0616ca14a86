package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/render"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/usecase"
)

// GameModel is the interactive board. bubbletea delivers every event on one goroutine,
// so the session is only touched from Update.
type GameModel struct {
	ctx      context.Context
	logger   *slog.Logger
	session  *usecase.Session
	renderer *render.Terminal

	surface canvas.Surface
	err     error
}

func NewGameModel(ctx context.Context, logger *slog.Logger, session *usecase.Session) *GameModel {
	return &GameModel{
		ctx:      ctx,
		logger:   logger.With("component", "tui"),
		session:  session,
		renderer: render.NewTerminal(),
	}
}

func (that *GameModel) Init() tea.Cmd {
	return nil
}

func (that *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		that.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return that, tea.Quit
		case "r":
			that.session.Reset(that.ctx)
			that.err = nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			that.click(msg.X, msg.Y)
		}
	}

	return that, nil
}

// resize - fits the board into the terminal, leaving room for the status line.
func (that *GameModel) resize(width, height int) {
	surface, err := fitBoard(that.renderer, width, height)
	if err != nil {
		that.logger.Debug("terminal too small for the board", "width", width, "height", height)
		that.surface = canvas.Surface{}
		that.err = err

		return
	}

	that.surface = surface
	that.err = nil
}

// click - turns a mouse press into a move. Presses outside the board are ignored.
func (that *GameModel) click(x, y int) {
	log := that.logger.With("method", "click", "x", x, "y", y)

	row, col, err := that.surface.CellAt(float64(x), float64(y))
	if err != nil {
		log.Debug("click outside the board")
		return
	}

	that.err = nil

	// the finished board stays on screen until the player starts a new game
	if err = that.session.Move(that.ctx, row, col); err != nil && !errors.Is(err, apperror.ErrGameFinished) {
		log.Error("failed to make move", "error", err)
		that.err = err
	}
}

func (that *GameModel) View() string {
	if that.surface.Width == 0 {
		return errorStyle.Render("terminal is too small, resize it or press q")
	}

	board := that.renderer.Render(that.surface, that.session.State())

	status := statusStyle.Render(statusText(that.session.Status(), that.session.State().CurrentPlayer, that.session.Winner()))
	hint := hintStyle.Render("  click a cell · r new game · q quit")

	if that.err != nil {
		hint = "  " + errorStyle.Render(that.err.Error())
	}

	return board + "\n" + status + hint
}
