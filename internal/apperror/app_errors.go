package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOutsideSurface    = errors.New("point is outside the board surface")
	ErrViewportTooSmall  = errors.New("viewport is too small for the board")
	ErrBoardNotFound     = errors.New("board not found")
)
