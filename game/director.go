package game

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Director interface {
	/**
	 * Pick the next action for the board, or false if there is none
	 */
	Next(board *Board) (Action, bool)
}

type PlayConfig struct {
	// Pause between actions
	Delay time.Duration
	// Called after each action is applied
	OnAction func(Action, Outcome)
}

// Play lets director drive controller until the game ends, the director runs
// out of moves, or ctx is cancelled
func Play(ctx context.Context, controller *Controller, director Director, config PlayConfig) (Outcome, error) {
	var tick <-chan time.Time
	if config.Delay > 0 {
		ticker := time.NewTicker(config.Delay)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if outcome := controller.Outcome(); outcome != Ongoing {
			return outcome, nil
		}

		action, ok := director.Next(controller.Board())
		if !ok {
			return Ongoing, ErrNoMove
		}

		outcome, err := controller.HandleAction(action.Row, action.Col, action.Kind)
		if err != nil {
			return outcome, errors.Wrapf(err, "director %s at (%d, %d)", action.Kind, action.Row, action.Col)
		}
		if config.OnAction != nil {
			config.OnAction(action, outcome)
		}

		if tick == nil {
			select {
			case <-ctx.Done():
				return outcome, ctx.Err()
			default:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return outcome, ctx.Err()
		case <-tick:
		}
	}
}
