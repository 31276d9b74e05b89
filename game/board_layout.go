package game

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseLayout builds an already generated board from the notation produced by
// Board.String:
//
//	#  hidden safe cell      O  hidden mine
//	.  revealed safe cell    *  revealed mine
//	f  flagged safe cell     F  flagged mine
//
// Rows are separated by newlines; blank lines and surrounding whitespace are
// ignored.
func ParseLayout(layout string) (*Board, error) {
	rows := make([]string, 0)
	for _, line := range strings.Split(layout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrInvalidDimensions, "empty layout")
	}

	cols := len([]rune(rows[0]))
	board, err := NewBoard(BoardConfig{
		Rows:            len(rows),
		Cols:            cols,
		SafeDist:        DefaultSafeDist,
		BombSpawnChance: DefaultBombSpawnChance,
	})
	if err != nil {
		return nil, err
	}

	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != cols {
			return nil, errors.Wrapf(ErrInvalidDimensions, "row %d has %d cells, expected %d", r, len(runes), cols)
		}

		for c, symbol := range runes {
			cell := &board.cells[r][c]
			if !cell.deserialize(symbol) {
				return nil, errors.Errorf("invalid layout symbol %q at (%d, %d)", symbol, r, c)
			}
			if cell.isMine {
				board.numMines++
			}
			if cell.isFlagged {
				board.numFlags++
			}
		}
	}

	board.fillMines()
	board.generated = true

	return board, nil
}
