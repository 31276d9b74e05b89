package game

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
)

func TestFirstActionAlwaysGenerates(t *testing.T) {
	for _, kind := range []ActionKind{Reveal, Flag} {
		t.Run(kind.String(), func(t *testing.T) {
			controller := NewController(mustBoard(t, 9, 9, fixedRand(0)))

			outcome, err := controller.HandleAction(4, 4, kind)
			if err != nil {
				t.Fatal(err)
			}
			if outcome != Ongoing {
				t.Errorf("expected ongoing game, have %s", outcome)
			}

			board := controller.Board()
			if !board.Generated() {
				t.Fatal("expected first action to generate the board")
			}
			if revealed, _ := board.IsRevealed(4, 4); !revealed {
				t.Errorf("expected start cell to be revealed")
			}
			if flagged, _ := board.IsFlagged(4, 4); flagged {
				t.Errorf("first action must not flag")
			}
		})
	}
}

func TestSingleCellBoardWinsImmediately(t *testing.T) {
	controller := NewController(mustBoard(t, 1, 1, fixedRand(0)))

	var outcomes []Outcome
	controller.OnOutcome(func(outcome Outcome) {
		outcomes = append(outcomes, outcome)
	})

	outcome, err := controller.HandleAction(0, 0, Reveal)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Won {
		t.Errorf("expected win, have %s", outcome)
	}
	if len(outcomes) != 1 || outcomes[0] != Won {
		t.Errorf("expected a single win notification, have %v", outcomes)
	}
}

func TestThreeByThreeCenterClick(t *testing.T) {
	// The safe radius covers the whole 3x3 board
	controller := NewController(mustBoard(t, 3, 3, fixedRand(0)))

	if _, err := controller.HandleAction(1, 1, Reveal); err != nil {
		t.Fatal(err)
	}

	board := controller.Board()
	if board.NumMines() != 0 {
		t.Errorf("expected no mines, have %d\n%s", board.NumMines(), board)
	}
	if controller.Outcome() != Won {
		t.Errorf("expected win once every cell is revealed, have %s", controller.Outcome())
	}
}

func TestOutcomeStaysOngoingUntilOuterCellsHandled(t *testing.T) {
	board := mustLayout(t, `
		O#O
		#.#
		O#O
	`)
	controller := NewController(board)

	moves := []struct {
		row, col int
		kind     ActionKind
	}{
		{0, 0, Flag},
		{0, 1, Reveal},
		{0, 2, Flag},
		{1, 0, Reveal},
		{1, 2, Reveal},
		{2, 0, Flag},
		{2, 1, Reveal},
	}
	for _, move := range moves {
		outcome, err := controller.HandleAction(move.row, move.col, move.kind)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != Ongoing {
			t.Fatalf("%s (%d, %d): expected ongoing, have %s", move.kind, move.row, move.col, outcome)
		}
	}

	outcome, err := controller.HandleAction(2, 2, Flag)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Won {
		t.Errorf("expected win, have %s\n%s", outcome, board)
	}
}

func TestLossIsFinal(t *testing.T) {
	board := mustLayout(t, `
		.#O
		###
	`)
	controller := NewController(board)

	notified := 0
	controller.OnOutcome(func(outcome Outcome) {
		notified++
		if outcome != Lost {
			t.Errorf("expected loss notification, have %s", outcome)
		}
	})

	outcome, err := controller.HandleAction(0, 2, Reveal)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Lost {
		t.Fatalf("expected loss, have %s", outcome)
	}

	if _, err := controller.HandleAction(1, 0, Reveal); errors.Cause(err) != ErrGameOver {
		t.Errorf("expected game over error, received %v", err)
	}
	if _, err := controller.HandleAction(0, 2, Flag); errors.Cause(err) != ErrGameOver {
		t.Errorf("expected game over error, received %v", err)
	}

	if controller.Outcome() != Lost {
		t.Errorf("loss reverted to %s", controller.Outcome())
	}
	if notified != 1 {
		t.Errorf("expected one notification, have %d", notified)
	}
}

func TestHandleActionOutOfRange(t *testing.T) {
	controller := NewController(mustBoard(t, 4, 4, fixedRand(0)))

	if _, err := controller.HandleAction(4, 0, Reveal); errors.Cause(err) != ErrOutOfRange {
		t.Errorf("expected out of range error, received %v", err)
	}
	if controller.Board().Generated() {
		t.Errorf("rejected action must not generate the board")
	}

	if _, err := controller.HandleAction(0, 0, Reveal); err != nil {
		t.Fatal(err)
	}
	if _, err := controller.HandleAction(0, -1, Flag); errors.Cause(err) != ErrOutOfRange {
		t.Errorf("expected out of range error, received %v", err)
	}
}

func TestUnknownActionKind(t *testing.T) {
	controller := NewController(mustLayout(t, "#O"))
	if _, err := controller.HandleAction(0, 0, ActionKind(42)); err == nil {
		t.Errorf("expected error for unknown action kind")
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   Outcome
	}{
		{"all mines flagged and safe revealed", "F.\n.F", Won},
		{"safe cell flagged instead of revealed", "Ff\n.F", Won},
		{"mine unflagged", "O.\n.F", Ongoing},
		{"safe cell hidden", "F#\n.F", Ongoing},
		{"mine revealed", "*.\n.F", Lost},
		{"mine revealed beside flags", "*f\nfF", Lost},
		{"no mines all revealed", "..\n..", Won},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if have := evaluate(mustLayout(t, test.layout)); have != test.want {
				t.Errorf("have %s, want %s", have, test.want)
			}
		})
	}
}

func TestEvaluateUngenerated(t *testing.T) {
	controller := NewController(mustBoard(t, 1, 1, fixedRand(1)))
	if controller.Outcome() != Ongoing {
		t.Errorf("expected ungenerated board to be ongoing, have %s", controller.Outcome())
	}
}

func TestHandleActionConcurrentInputs(t *testing.T) {
	controller := NewController(mustLayout(t, "O#######"))

	var lock sync.Mutex
	var outcomes []Outcome
	controller.OnOutcome(func(outcome Outcome) {
		lock.Lock()
		defer lock.Unlock()
		outcomes = append(outcomes, outcome)
	})

	actions := []Action{{Row: 0, Col: 0, Kind: Flag}}
	for col := 1; col < 8; col++ {
		actions = append(actions, Action{Row: 0, Col: col, Kind: Reveal})
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(actions))
	for _, action := range actions {
		wg.Add(1)
		go func(action Action) {
			defer wg.Done()
			if _, err := controller.HandleAction(action.Row, action.Col, action.Kind); err != nil && errors.Cause(err) != ErrGameOver {
				errs <- err
			}
		}(action)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	if outcome := controller.Outcome(); outcome != Won {
		t.Errorf("expected win, have %s", outcome)
	}
	if len(outcomes) != 1 || outcomes[0] != Won {
		t.Errorf("expected a single win notification, have %v", outcomes)
	}
}
