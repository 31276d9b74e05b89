package game

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned for coordinates outside the board
	ErrOutOfRange = errors.New("coordinates out of range")
	// ErrInvalidSequence is returned when an operation is not valid in the
	// board's current lifecycle stage, e.g. revealing before generation
	ErrInvalidSequence = errors.New("invalid operation sequence")
	// ErrGameOver is returned for actions sent after the game was won or lost
	ErrGameOver = errors.New("game is over")

	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidConfig     = errors.New("invalid game config")
	ErrNoMove            = errors.New("director has no move")
)
