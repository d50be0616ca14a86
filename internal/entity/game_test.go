package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameState(t *testing.T) {
	// When: creating a new game state
	state := NewGameState()

	// Then: player 0 moves first and every cell is empty
	require.NotNil(t, state)
	assert.Equal(t, Player0, state.CurrentPlayer)
	assert.Len(t, state.Field, CellCount)

	for i, cell := range state.Field {
		assert.True(t, cell.IsEmpty(), "cell %d should be empty", i)
	}
}

func TestGameState_Reset(t *testing.T) {
	// Given: a state with some marks and player 1 to move
	state := NewGameState()
	state.Field[0] = CellPlayer0
	state.Field[4] = CellPlayer1
	state.CurrentPlayer = Player1

	// When: resetting it
	state.Reset()

	// Then: it matches a freshly created state
	assert.Equal(t, NewGameState(), state)
}

func TestPlayer(t *testing.T) {
	t.Run("Next alternates between the two players", func(t *testing.T) {
		assert.Equal(t, Player1, Player0.Next())
		assert.Equal(t, Player0, Player1.Next())
	})

	t.Run("Mark selects the glyph", func(t *testing.T) {
		assert.Equal(t, PlayerX, Player0.Mark())
		assert.Equal(t, PlayerO, Player1.Mark())
		assert.Empty(t, NoPlayer.Mark())
	})

	t.Run("PlayerFromMark is the inverse of Mark", func(t *testing.T) {
		assert.Equal(t, Player0, PlayerFromMark(PlayerX))
		assert.Equal(t, Player1, PlayerFromMark(PlayerO))
		assert.Equal(t, NoPlayer, PlayerFromMark(""))
	})
}

func TestCell_Owner(t *testing.T) {
	t.Run("Empty cell has no owner", func(t *testing.T) {
		owner, ok := EmptyCell.Owner()

		assert.False(t, ok)
		assert.Equal(t, NoPlayer, owner)
	})

	t.Run("Occupied cells report their player", func(t *testing.T) {
		owner, ok := CellOf(Player0).Owner()
		require.True(t, ok)
		assert.Equal(t, Player0, owner)

		owner, ok = CellOf(Player1).Owner()
		require.True(t, ok)
		assert.Equal(t, Player1, owner)
	})
}

func TestSnapshot(t *testing.T) {
	t.Run("Ongoing game carries the player turn", func(t *testing.T) {
		// Given: X in the center, O to move
		state := NewGameState()
		state.Field[4] = CellPlayer0
		state.CurrentPlayer = Player1

		// When: taking a snapshot
		snapshot := NewSnapshot("abc", state, StatusAwaitingMove, NoPlayer)

		// Then: the board is rendered as marks
		expected := Snapshot{
			SessionID: "abc",
			Board:     [CellCount]string{"", "", "", "", PlayerX, "", "", "", ""},
			Turn:      PlayerO,
			Status:    StatusAwaitingMove,
			Winner:    "",
		}
		assert.Equal(t, expected, snapshot)
		assert.False(t, snapshot.IsFinished())
	})

	t.Run("Finished game has no turn", func(t *testing.T) {
		// Given: X owns the top row
		state := NewGameState()
		state.Field[0], state.Field[1], state.Field[2] = CellPlayer0, CellPlayer0, CellPlayer0
		state.Field[3], state.Field[4] = CellPlayer1, CellPlayer1
		state.CurrentPlayer = Player1

		// When: taking a snapshot of the won game
		snapshot := NewSnapshot("abc", state, StatusWon, Player0)

		// Then: the winner is set and nobody is to move
		assert.Equal(t, PlayerX, snapshot.Winner)
		assert.Empty(t, snapshot.Turn)
		assert.True(t, snapshot.IsFinished())
	})

	t.Run("GameState rebuilds the field", func(t *testing.T) {
		// Given: a snapshot received by a spectator
		snapshot := Snapshot{
			Board:  [CellCount]string{PlayerX, PlayerO, "", "", "", "", "", "", ""},
			Turn:   PlayerX,
			Status: StatusAwaitingMove,
		}

		// When: rebuilding the state
		state := snapshot.GameState()

		// Then: the cells and the player turn are restored
		assert.Equal(t, CellPlayer0, state.Field[0])
		assert.Equal(t, CellPlayer1, state.Field[1])
		assert.Equal(t, EmptyCell, state.Field[2])
		assert.Equal(t, Player0, state.CurrentPlayer)
	})
}
