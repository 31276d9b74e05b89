package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/they4kman/safesweep/game"
	"github.com/they4kman/safesweep/term"
)

// runDirected lets the configured director play a single game, rendering the
// board after every move
func runDirected(
	ctx context.Context,
	out io.Writer,
	config game.GameConfig,
	source *rand.Rand,
	newController term.ControllerFactory,
	options term.Options,
) error {
	return playDirected(ctx, out, directors[config.Director](source), config, newController, options)
}

func playDirected(
	ctx context.Context,
	out io.Writer,
	director game.Director,
	config game.GameConfig,
	newController term.ControllerFactory,
	options term.Options,
) error {
	controller, err := newController()
	if err != nil {
		return err
	}
	controller.OnOutcome(func(outcome game.Outcome) {
		game.Log.WithField("director", config.Director).Infof("director %s", outcome)
	})

	var renderErr error
	outcome, err := game.Play(ctx, controller, director, game.PlayConfig{
		Delay: config.Delay,
		OnAction: func(action game.Action, outcome game.Outcome) {
			fmt.Fprintf(out, "%s (%d, %d)\n", action.Kind, action.Row, action.Col)
			if err := term.Render(out, controller.Board(), outcome, options); err != nil && renderErr == nil {
				renderErr = err
			}
		},
	})
	if err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}

	term.ShowOutcome(out, outcome)
	return nil
}
