package entity

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

const (
	StatusAwaitingMove = "awaiting_move"
	StatusWon          = "won"
	StatusDraw         = "draw"
)

// Cell is the content of one board position. EmptyCell is a distinct tag, so an empty line can never look like a won one.
type Cell uint8

const (
	EmptyCell Cell = iota
	CellPlayer0
	CellPlayer1
)

// CellOf - returns the cell value owned by the given player.
func CellOf(player Player) Cell {
	switch player {
	case Player0:
		return CellPlayer0
	case Player1:
		return CellPlayer1
	default:
		return EmptyCell
	}
}

// Owner - returns the player occupying the cell and false for an empty cell.
func (that Cell) Owner() (Player, bool) {
	switch that {
	case CellPlayer0:
		return Player0, true
	case CellPlayer1:
		return Player1, true
	default:
		return NoPlayer, false
	}
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// GameState is the mutable snapshot of one game in progress.
// Mutation belongs to the tictactoe package; everything else only reads it.
type GameState struct {
	CurrentPlayer Player
	Field         [CellCount]Cell
}

// NewGameState - creates the initial state: player 0 to move, every cell empty.
func NewGameState() *GameState {
	state := &GameState{}
	state.Reset()

	return state
}

// Reset - puts the state back to the initial position in place.
func (that *GameState) Reset() {
	that.CurrentPlayer = Player0
	that.Field = [CellCount]Cell{}
}

// Index - converts a row/column pair to the linear field index.
func Index(row, col int) int {
	return row*BoardSize + col
}

func (that *GameState) CellAt(row, col int) Cell {
	return that.Field[Index(row, col)]
}

// Snapshot is the read-only view of a session shipped to renderers, spectators and HTTP clients.
type Snapshot struct {
	SessionID string            `json:"session_id"`
	Board     [CellCount]string `json:"board"`
	Turn      string            `json:"player_turn"`
	Status    string            `json:"status"`
	Winner    string            `json:"winner"`
}

// NewSnapshot - projects the state into a Snapshot. The turn is blank once the game is over.
func NewSnapshot(sessionID string, state *GameState, status string, winner Player) Snapshot {
	snapshot := Snapshot{
		SessionID: sessionID,
		Status:    status,
		Winner:    winner.Mark(),
	}

	for i, cell := range state.Field {
		owner, _ := cell.Owner()
		snapshot.Board[i] = owner.Mark()
	}

	if status == StatusAwaitingMove {
		snapshot.Turn = state.CurrentPlayer.Mark()
	}

	return snapshot
}

// GameState - rebuilds a state from the snapshot, used by spectators to render a received board.
func (that Snapshot) GameState() *GameState {
	state := NewGameState()

	for i, mark := range that.Board {
		state.Field[i] = CellOf(PlayerFromMark(mark))
	}

	if player := PlayerFromMark(that.Turn); player != NoPlayer {
		state.CurrentPlayer = player
	}

	return state
}

func (that Snapshot) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}
