package term

import (
	"bufio"
	"fmt"
	"io"

	"github.com/they4kman/safesweep/game"
)

// ControllerFactory creates the controller for each new game
type ControllerFactory func() (*game.Controller, error)

// Session is an interactive game over a line-based reader and writer
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	options Options

	newController ControllerFactory
	controller    *game.Controller

	// Set by the outcome listener, shown after the board is rendered
	pendingOutcome game.Outcome
}

func NewSession(in io.Reader, out io.Writer, options Options, newController ControllerFactory) *Session {
	return &Session{
		in:            bufio.NewScanner(in),
		out:           out,
		options:       options,
		newController: newController,
	}
}

// Run reads commands until quit or end of input
func (session *Session) Run() error {
	if err := session.start(); err != nil {
		return err
	}

	for {
		fmt.Fprint(session.out, "> ")
		if !session.in.Scan() {
			fmt.Fprintln(session.out)
			return session.in.Err()
		}

		line := session.in.Text()
		game.Log.WithField("line", line).Debug("received command")

		command, err := ParseCommand(line)
		if err == ErrEmptyCommand {
			continue
		}
		if err != nil {
			fmt.Fprintf(session.out, "error: %v\n", err)
			continue
		}

		switch command.Kind {
		case CommandQuit:
			return nil
		case CommandHelp:
			fmt.Fprint(session.out, usage)
		case CommandNew:
			if err := session.start(); err != nil {
				return err
			}
		case CommandAction:
			if err := session.act(command.Action); err != nil {
				return err
			}
		}
	}
}

func (session *Session) start() error {
	controller, err := session.newController()
	if err != nil {
		return err
	}

	session.controller = controller
	session.pendingOutcome = game.Ongoing
	controller.OnOutcome(func(outcome game.Outcome) {
		session.pendingOutcome = outcome
	})

	return session.render()
}

func (session *Session) act(action game.Action) error {
	if _, err := session.controller.HandleAction(action.Row, action.Col, action.Kind); err != nil {
		fmt.Fprintf(session.out, "error: %v\n", err)
		return nil
	}

	if err := session.render(); err != nil {
		return err
	}

	if outcome := session.pendingOutcome; outcome != game.Ongoing {
		session.pendingOutcome = game.Ongoing
		ShowOutcome(session.out, outcome)
		fmt.Fprintln(session.out, "type 'new' to play again or 'quit' to exit")
	}
	return nil
}

func (session *Session) render() error {
	return Render(session.out, session.controller.Board(), session.controller.Outcome(), session.options)
}

// ShowOutcome prints the end of game message
func ShowOutcome(w io.Writer, outcome game.Outcome) {
	switch outcome {
	case game.Won:
		fmt.Fprintln(w, "You won!")
	case game.Lost:
		fmt.Fprintln(w, "Boom. You lost.")
	}
}
