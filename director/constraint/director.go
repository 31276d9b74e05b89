package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/safesweep/director/random"
	"github.com/they4kman/safesweep/game"
	"github.com/they4kman/safesweep/util/collections"
)

// Director plays from what the revealed numbers prove, and only guesses when
// nothing can be deduced
type Director struct {
	fallback *random.Director
}

// Observation states that exactly numMines of cells are mines
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[*game.Cell]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range sortedCells(observation.cells) {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(fmt.Sprintf("(%d, %d)", cell.Row(), cell.Col()))
	}

	var originRepr string
	if observation.origin == nil {
		originRepr = "?"
	} else {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.Row(), observation.origin.Col())
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(observation.cells.Len())
}

type actorFunc func(board *game.Board, observations []*Observation) (game.Action, bool)

func New(source random.Source) *Director {
	return &Director{fallback: random.New(source)}
}

func (director *Director) Next(board *game.Board) (game.Action, bool) {
	if !board.Generated() {
		return game.Action{Row: board.Rows() / 2, Col: board.Cols() / 2, Kind: game.Reveal}, true
	}

	observations := observe(board)
	observations = append(observations, simplify(observations)...)

	actors := []struct {
		name string
		act  actorFunc
	}{
		{"deliberate", actDeliberate},
		{"counting", actCounting},
		{"lowest probability", actLowestProbability},
	}

	for _, actor := range actors {
		if action, ok := actor.act(board, observations); ok {
			game.Log.WithFields(logrus.Fields{
				"director": "constraint",
				"rule":     actor.name,
				"action":   action.Kind,
				"row":      action.Row,
				"col":      action.Col,
			}).Debug("chose action")
			return action, true
		}
	}

	return director.fallback.Next(board)
}

// observe collects an observation around every revealed number that still
// borders unknown cells
func observe(board *game.Board) []*Observation {
	observations := make([]*Observation, 0)

	board.Each(func(cell *game.Cell) {
		if !cell.IsRevealed() || cell.IsMine() {
			return
		}

		observation := Observation{
			origin:   cell,
			numMines: cell.NumMines(),
			cells:    collections.NewSet[*game.Cell](),
		}
		for _, neighbor := range board.Neighbors(cell) {
			if neighbor.IsRevealed() {
				continue
			}
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(neighbor)
			}
		}

		if observation.cells.Len() > 0 {
			observations = append(observations, &observation)
		}
	})

	return observations
}

// simplify derives new observations from pairs where one observation's cells
// are a strict subset of another's: the remaining cells hold the difference
// in mine counts
func simplify(observations []*Observation) []*Observation {
	derived := make([]*Observation, 0)

	for _, observation := range observations {
		for _, containing := range observations {
			if observation == containing || observation.cells.Len() >= containing.cells.Len() {
				continue
			}
			if observation.cells.Difference(containing.cells).Len() != 0 {
				continue
			}

			derived = append(derived, &Observation{
				numMines: containing.numMines - observation.numMines,
				cells:    containing.cells.Difference(observation.cells),
			})
		}
	}

	return derived
}

func actDeliberate(board *game.Board, observations []*Observation) (game.Action, bool) {
	for _, observation := range observations {
		switch observation.numMines {
		case 0:
			return actionAt(sortedCells(observation.cells)[0], game.Reveal), true
		case observation.cells.Len():
			return actionAt(sortedCells(observation.cells)[0], game.Flag), true
		}
	}
	return game.Action{}, false
}

// actCounting compares the unknown cells left on the board against the number
// of mines not yet flagged
func actCounting(board *game.Board, observations []*Observation) (game.Action, bool) {
	unknown := make([]*game.Cell, 0)
	board.Each(func(cell *game.Cell) {
		if !cell.IsRevealed() && !cell.IsFlagged() {
			unknown = append(unknown, cell)
		}
	})

	if len(unknown) == 0 {
		return game.Action{}, false
	}

	switch board.MinesRemaining() {
	case 0:
		return actionAt(unknown[0], game.Reveal), true
	case len(unknown):
		return actionAt(unknown[0], game.Flag), true
	}
	return game.Action{}, false
}

func actLowestProbability(board *game.Board, observations []*Observation) (game.Action, bool) {
	// A cell is as risky as the worst observation covering it
	cellProbabilities := make(map[*game.Cell]float64)
	for _, observation := range observations {
		if observation.numMines < 0 {
			continue
		}

		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, ok := cellProbabilities[cell]; !ok || probability > past {
				cellProbabilities[cell] = probability
			}
		}
	}

	if len(cellProbabilities) == 0 {
		return game.Action{}, false
	}

	candidates := collections.NewSet[*game.Cell]()
	for cell := range cellProbabilities {
		candidates.Add(cell)
	}

	var best *game.Cell
	for _, cell := range sortedCells(candidates) {
		if best == nil || cellProbabilities[cell] < cellProbabilities[best] {
			best = cell
		}
	}
	return actionAt(best, game.Reveal), true
}

func actionAt(cell *game.Cell, kind game.ActionKind) game.Action {
	return game.Action{Row: cell.Row(), Col: cell.Col(), Kind: kind}
}

// sortedCells orders cells row-major so choices are deterministic
func sortedCells(cells collections.Set[*game.Cell]) []*game.Cell {
	sorted := cells.Slice()
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row() != sorted[j].Row() {
			return sorted[i].Row() < sorted[j].Row()
		}
		return sorted[i].Col() < sorted[j].Col()
	})
	return sorted
}
