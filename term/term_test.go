package term

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/safesweep/game"
)

func TestMain(m *testing.M) {
	game.Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func mustLayout(t *testing.T, layout string) *game.Board {
	t.Helper()
	board, err := game.ParseLayout(layout)
	if err != nil {
		t.Fatal(err)
	}
	return board
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{line: "r 1 2", want: Command{Kind: CommandAction, Action: game.Action{Row: 1, Col: 2, Kind: game.Reveal}}},
		{line: "  REVEAL   0 9 ", want: Command{Kind: CommandAction, Action: game.Action{Row: 0, Col: 9, Kind: game.Reveal}}},
		{line: "f 3 4", want: Command{Kind: CommandAction, Action: game.Action{Row: 3, Col: 4, Kind: game.Flag}}},
		{line: "flag -1 4", want: Command{Kind: CommandAction, Action: game.Action{Row: -1, Col: 4, Kind: game.Flag}}},
		{line: "q", want: Command{Kind: CommandQuit}},
		{line: "new", want: Command{Kind: CommandNew}},
		{line: "help", want: Command{Kind: CommandHelp}},
		{line: "r 1", wantErr: true},
		{line: "r a 1", wantErr: true},
		{line: "f 1 b", wantErr: true},
		{line: "quit now", wantErr: true},
		{line: "dig 1 1", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			have, err := ParseCommand(test.line)
			if test.wantErr {
				if err == nil {
					t.Errorf("expected error, have %+v", have)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if have != test.want {
				t.Errorf("have %+v, want %+v", have, test.want)
			}
		})
	}
}

func TestParseEmptyCommand(t *testing.T) {
	if _, err := ParseCommand("   "); err != ErrEmptyCommand {
		t.Errorf("expected empty command error, received %v", err)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		outcome game.Outcome
		want    string
	}{
		{
			name:    "ongoing",
			layout:  "O#\n..",
			outcome: game.Ongoing,
			want:    "mines: 001\n  0 1\n0 # #\n1 1 1\n",
		},
		{
			name:    "lost",
			layout:  "Of\n.*",
			outcome: game.Lost,
			want:    "mines: 001   LOSE :(\n  0 1\n0 o x\n1 2 *\n",
		},
		{
			name:    "won",
			layout:  "F.\n..",
			outcome: game.Won,
			want:    "mines: 000   WIN!\n  0 1\n0 F 1\n1 1 1\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := Render(&out, mustLayout(t, test.layout), test.outcome, Options{}); err != nil {
				t.Fatal(err)
			}
			if out.String() != test.want {
				t.Errorf("have\n%q\nwant\n%q", out.String(), test.want)
			}
		})
	}
}

func TestRenderUngenerated(t *testing.T) {
	board, err := game.NewBoard(game.BoardConfig{Rows: 1, Cols: 11})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Render(&out, board, game.Ongoing, Options{}); err != nil {
		t.Fatal(err)
	}

	want := "mines: ---\n    0  1  2  3  4  5  6  7  8  9 10\n 0" + strings.Repeat("  #", 11) + "\n"
	if out.String() != want {
		t.Errorf("have\n%q\nwant\n%q", out.String(), want)
	}
}

func TestRenderColor(t *testing.T) {
	var out bytes.Buffer
	if err := Render(&out, mustLayout(t, "O#\n.."), game.Ongoing, Options{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[38;2;0;0;255m1\x1b[0m") {
		t.Errorf("expected a blue 1 in %q", out.String())
	}
}

func TestSession(t *testing.T) {
	games := 0
	factory := func() (*game.Controller, error) {
		games++
		board, err := game.ParseLayout("O.\n..")
		if err != nil {
			return nil, err
		}
		return game.NewController(board), nil
	}

	in := strings.NewReader("dig\nr 5 5\n\nf 0 0\nr 1 1\nnew\nquit\nf 0 0\n")
	var out bytes.Buffer
	if err := NewSession(in, &out, Options{}, factory).Run(); err != nil {
		t.Fatal(err)
	}

	output := out.String()
	for _, want := range []string{
		`error: unknown command "dig"`,
		"error: (5, 5) outside 2x2 board: coordinates out of range",
		"You won!",
		"error: game already won: game is over",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if games != 2 {
		t.Errorf("expected 2 games started, have %d", games)
	}
	if strings.Count(output, "You won!") != 1 {
		t.Errorf("expected a single win message:\n%s", output)
	}
}

func TestSessionEndOfInput(t *testing.T) {
	factory := func() (*game.Controller, error) {
		return game.NewController(mustLayout(t, "O#")), nil
	}

	var out bytes.Buffer
	if err := NewSession(strings.NewReader("f 0 0"), &out, Options{}, factory).Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "0 F #") {
		t.Errorf("expected flagged board in output:\n%s", out.String())
	}
}
