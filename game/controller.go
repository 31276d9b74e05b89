package game

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Controller applies player actions to a Board and tracks the outcome of the
// game. The first action always generates the board, whatever its kind.
type Controller struct {
	board *Board

	lock      sync.Mutex
	finished  Outcome
	listeners []func(Outcome)
}

func NewController(board *Board) *Controller {
	return &Controller{board: board}
}

func (controller *Controller) Board() *Board {
	return controller.board
}

// OnOutcome registers a listener called once, after the game is won or lost
func (controller *Controller) OnOutcome(listener func(Outcome)) {
	controller.lock.Lock()
	defer controller.lock.Unlock()

	controller.listeners = append(controller.listeners, listener)
}

// HandleAction applies a reveal or flag at the coordinates and returns the
// outcome of the game afterwards
func (controller *Controller) HandleAction(row, col int, kind ActionKind) (Outcome, error) {
	controller.lock.Lock()
	outcome, transitioned, err := controller.apply(row, col, kind)
	listeners := append([]func(Outcome){}, controller.listeners...)
	controller.lock.Unlock()

	if err != nil {
		return outcome, err
	}

	if transitioned {
		for _, listener := range listeners {
			listener(outcome)
		}
	}
	return outcome, nil
}

// Outcome evaluates the game state of the board
func (controller *Controller) Outcome() Outcome {
	controller.lock.Lock()
	defer controller.lock.Unlock()

	if controller.finished != Ongoing {
		return controller.finished
	}
	return evaluate(controller.board)
}

func (controller *Controller) apply(row, col int, kind ActionKind) (Outcome, bool, error) {
	if controller.finished != Ongoing {
		return controller.finished, false, errors.Wrapf(ErrGameOver, "game already %s", controller.finished)
	}

	board := controller.board

	var err error
	switch {
	case !board.Generated():
		err = board.Generate(row, col)
	case kind == Reveal:
		err = board.Reveal(row, col)
	case kind == Flag:
		err = board.ToggleFlag(row, col)
	default:
		err = errors.Errorf("unknown action kind %d", kind)
	}
	if err != nil {
		return Ongoing, false, err
	}

	outcome := evaluate(board)
	if outcome == Ongoing {
		return outcome, false, nil
	}

	controller.finished = outcome
	Log.WithFields(logrus.Fields{
		"outcome": outcome,
		"row":     row,
		"col":     col,
		"action":  kind,
	}).Info("game over")
	return outcome, true, nil
}

// evaluate applies the win and loss rules. A game is lost once any mine is
// revealed. It is won when every mine is flagged and every cell is either
// flagged or revealed; a flagged safe cell still counts.
func evaluate(board *Board) Outcome {
	if !board.Generated() {
		return Ongoing
	}

	won, lost := true, false
	board.Each(func(cell *Cell) {
		if cell.isMine && cell.isRevealed {
			lost = true
		}
		if (cell.isMine && !cell.isFlagged) || !(cell.isFlagged || cell.isRevealed) {
			won = false
		}
	})

	switch {
	case lost:
		return Lost
	case won:
		return Won
	default:
		return Ongoing
	}
}
