package term

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/they4kman/safesweep/game"
)

type CommandKind int

const (
	CommandAction CommandKind = iota
	CommandNew
	CommandQuit
	CommandHelp
)

type Command struct {
	Kind   CommandKind
	Action game.Action
}

var ErrEmptyCommand = errors.New("empty command")

const usage = `commands:
  r, reveal ROW COL   reveal a cell
  f, flag ROW COL     toggle a flag
  n, new              start a new game
  h, help             show this help
  q, quit             exit
`

var actionKinds = map[string]game.ActionKind{
	"r":      game.Reveal,
	"reveal": game.Reveal,
	"f":      game.Flag,
	"flag":   game.Flag,
}

var simpleCommands = map[string]CommandKind{
	"n":    CommandNew,
	"new":  CommandNew,
	"q":    CommandQuit,
	"quit": CommandQuit,
	"h":    CommandHelp,
	"help": CommandHelp,
	"?":    CommandHelp,
}

// ParseCommand parses one line of player input
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	name, args := fields[0], fields[1:]

	if kind, ok := simpleCommands[name]; ok {
		if len(args) != 0 {
			return Command{}, errors.Errorf("%s takes no arguments", name)
		}
		return Command{Kind: kind}, nil
	}

	kind, ok := actionKinds[name]
	if !ok {
		return Command{}, errors.Errorf("unknown command %q", name)
	}
	if len(args) != 2 {
		return Command{}, errors.Errorf("%s needs ROW and COL", name)
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, errors.Wrapf(err, "invalid row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, errors.Wrapf(err, "invalid column %q", args[1])
	}

	return Command{
		Kind:   CommandAction,
		Action: game.Action{Row: row, Col: col, Kind: kind},
	}, nil
}
