package random

import (
	"github.com/they4kman/safesweep/game"
)

// Source picks a random index below n
type Source interface {
	Intn(n int) int
}

// Director reveals a random unrevealed, unflagged cell on every turn
type Director struct {
	source Source
}

func New(source Source) *Director {
	return &Director{source: source}
}

func (director *Director) Next(board *game.Board) (game.Action, bool) {
	candidates := make([]*game.Cell, 0, board.Rows()*board.Cols())
	board.Each(func(cell *game.Cell) {
		if !cell.IsRevealed() && !cell.IsFlagged() {
			candidates = append(candidates, cell)
		}
	})

	if len(candidates) == 0 {
		return game.Action{}, false
	}

	cell := candidates[director.source.Intn(len(candidates))]
	return game.Action{
		Row:  cell.Row(),
		Col:  cell.Col(),
		Kind: game.Reveal,
	}, true
}
