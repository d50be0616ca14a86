package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-canvas/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-canvas/internal/entity"
)

// Lines lists every winning triple: three rows, three columns, two diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// MakeTurn - places the current player's mark at row/col and passes the turn.
// A move onto an occupied cell is ignored and leaves the state untouched.
func MakeTurn(state *entity.GameState, row, col int) error {
	if err := validateCoordinate(row, col); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	index := entity.Index(row, col)
	if !state.Field[index].IsEmpty() {
		return nil
	}

	state.Field[index] = entity.CellOf(state.CurrentPlayer)
	state.CurrentPlayer = state.CurrentPlayer.Next()

	return nil
}

// validateCoordinate - checks that both indices are on the board.
func validateCoordinate(row, col int) error {
	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCoordinate, row, col)
	}

	return nil
}

// GetWinner - returns the player owning a full line, or NoPlayer.
// The first owned line in Lines order decides; under alternating play all owned lines share one owner.
func GetWinner(state *entity.GameState) entity.Player {
	for _, line := range Lines {
		if owner, ok := lineOwner(state, line); ok {
			return owner
		}
	}

	return entity.NoPlayer
}

// WinningLines - returns every line currently owned by a single player.
func WinningLines(state *entity.GameState) [][3]int {
	var lines [][3]int

	for _, line := range Lines {
		if _, ok := lineOwner(state, line); ok {
			lines = append(lines, line)
		}
	}

	return lines
}

func lineOwner(state *entity.GameState, line [3]int) (entity.Player, bool) {
	a, b, c := state.Field[line[0]], state.Field[line[1]], state.Field[line[2]]
	if a.IsEmpty() || a != b || b != c {
		return entity.NoPlayer, false
	}

	return a.Owner()
}

// IsGameFinished - reports whether every cell is occupied, winner or not.
func IsGameFinished(state *entity.GameState) bool {
	for _, cell := range state.Field {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// Evaluate - decides what follows a move: another move, a win or a draw.
func Evaluate(state *entity.GameState) (string, entity.Player) {
	if winner := GetWinner(state); winner != entity.NoPlayer {
		return entity.StatusWon, winner
	}

	if IsGameFinished(state) {
		return entity.StatusDraw, entity.NoPlayer
	}

	return entity.StatusAwaitingMove, entity.NoPlayer
}
