package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/canvas"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/render"
)

// BoardMsg carries a board received from the broadcast.
type BoardMsg entity.Snapshot

// BoardsClosedMsg is sent when the broadcast subscription ends.
type BoardsClosedMsg struct{}

// SpectatorModel follows a game played elsewhere. It never changes the board itself.
type SpectatorModel struct {
	boards   <-chan entity.Snapshot
	renderer *render.Terminal
	spinner  spinner.Model

	surface canvas.Surface
	board   *entity.Snapshot
	closed  bool
}

// NewSpectatorModel - latest may be nil when no game was published yet.
func NewSpectatorModel(boards <-chan entity.Snapshot, latest *entity.Snapshot) *SpectatorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = hintStyle

	return &SpectatorModel{
		boards:   boards,
		renderer: render.NewTerminal(),
		spinner:  s,
		board:    latest,
	}
}

func (that *SpectatorModel) Init() tea.Cmd {
	return tea.Batch(that.spinner.Tick, waitForBoard(that.boards))
}

// waitForBoard - blocks on the subscription and turns the next board into a message.
func waitForBoard(boards <-chan entity.Snapshot) tea.Cmd {
	return func() tea.Msg {
		board, ok := <-boards
		if !ok {
			return BoardsClosedMsg{}
		}

		return BoardMsg(board)
	}
}

func (that *SpectatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		surface, err := fitBoard(that.renderer, msg.Width, msg.Height)
		if err != nil {
			surface = canvas.Surface{}
		}

		that.surface = surface

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return that, tea.Quit
		}

	case BoardMsg:
		board := entity.Snapshot(msg)
		that.board = &board

		return that, waitForBoard(that.boards)

	case BoardsClosedMsg:
		that.closed = true

	case spinner.TickMsg:
		// the spinner only runs until the first board arrives
		if that.board != nil || that.closed {
			return that, nil
		}

		var cmd tea.Cmd
		that.spinner, cmd = that.spinner.Update(msg)

		return that, cmd
	}

	return that, nil
}

func (that *SpectatorModel) View() string {
	if that.surface.Width == 0 {
		return errorStyle.Render("terminal is too small, resize it or press q")
	}

	if that.board == nil {
		return that.spinner.View() + hintStyle.Render(" waiting for a game · q quit")
	}

	state := that.board.GameState()
	board := that.renderer.Render(that.surface, state)

	status := statusStyle.Render(statusText(that.board.Status, state.CurrentPlayer, entity.PlayerFromMark(that.board.Winner)))

	hint := hintStyle.Render("  watching · q quit")
	if that.closed {
		hint = "  " + errorStyle.Render("broadcast ended")
	}

	return board + "\n" + status + hint
}
