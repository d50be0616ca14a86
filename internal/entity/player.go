package entity

const (
	PlayerX = "X"
	PlayerO = "O"
)

// Player identifies one of the two participants. It doubles as the glyph selector: Player0 draws X, Player1 draws O.
type Player int

const (
	NoPlayer Player = -1
	Player0  Player = 0
	Player1  Player = 1
)

// Next - returns the player who moves after this one.
func (that Player) Next() Player {
	return that ^ 1
}

// Mark - returns the glyph of the player, or an empty string for NoPlayer.
func (that Player) Mark() string {
	switch that {
	case Player0:
		return PlayerX
	case Player1:
		return PlayerO
	default:
		return ""
	}
}

// PlayerFromMark - inverse of Mark.
func PlayerFromMark(mark string) Player {
	switch mark {
	case PlayerX:
		return Player0
	case PlayerO:
		return Player1
	default:
		return NoPlayer
	}
}
