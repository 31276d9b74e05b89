package game

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Rand is the source of randomness used for mine placement
type Rand interface {
	Float64() float64
}

type BoardConfig struct {
	Rows, Cols      int
	SafeDist        float64
	BombSpawnChance float64
	Rand            Rand
}

type Board struct {
	rows, cols int // in number of cells
	cells      [][]Cell

	generated bool
	numMines  int
	numFlags  int

	safeDist        float64
	bombSpawnChance float64
	rand            Rand
}

func NewBoard(config BoardConfig) (*Board, error) {
	if config.Rows < 1 || config.Cols < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "%dx%d", config.Rows, config.Cols)
	}
	if config.BombSpawnChance < 0 || config.BombSpawnChance > 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "bomb spawn chance %v not within [0, 1]", config.BombSpawnChance)
	}
	if config.SafeDist < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "negative safe distance %v", config.SafeDist)
	}
	if config.Rand == nil {
		config.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	board := &Board{
		rows:            config.Rows,
		cols:            config.Cols,
		cells:           make([][]Cell, config.Rows),
		safeDist:        config.SafeDist,
		bombSpawnChance: config.BombSpawnChance,
		rand:            config.Rand,
	}

	for r := 0; r < board.rows; r++ {
		row := make([]Cell, board.cols)
		for c := range row {
			row[c].row, row[c].col = r, c
		}
		board.cells[r] = row
	}

	return board, nil
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Cols() int {
	return board.cols
}

func (board *Board) Generated() bool {
	return board.generated
}

// NumMines is the total number of mines placed; zero until generated
func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

// MinesRemaining is the mine count minus the flags placed, which goes
// negative when the player over-flags
func (board *Board) MinesRemaining() int {
	return board.numMines - board.numFlags
}

func (board *Board) WithinBounds(row, col int) bool {
	return row >= 0 && row < board.rows && col >= 0 && col < board.cols
}

// CellAt returns the cell at the coordinates, or nil when out of bounds
func (board *Board) CellAt(row, col int) *Cell {
	if board.WithinBounds(row, col) {
		return &board.cells[row][col]
	}
	return nil
}

// Each visits every cell in row-major order
func (board *Board) Each(visit func(cell *Cell)) {
	for r := range board.cells {
		for c := range board.cells[r] {
			visit(&board.cells[r][c])
		}
	}
}

// Neighbors returns the up to 8 in-bounds cells surrounding cell
func (board *Board) Neighbors(cell *Cell) []*Cell {
	neighbors := make([]*Cell, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		if neighbor := board.CellAt(cell.row+offset[0], cell.col+offset[1]); neighbor != nil {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

func (board *Board) IsBomb(row, col int) (bool, error) {
	cell, err := board.checkedCell(row, col)
	if err != nil {
		return false, err
	}
	return cell.isMine, nil
}

func (board *Board) IsRevealed(row, col int) (bool, error) {
	cell, err := board.checkedCell(row, col)
	if err != nil {
		return false, err
	}
	return cell.isRevealed, nil
}

func (board *Board) IsFlagged(row, col int) (bool, error) {
	cell, err := board.checkedCell(row, col)
	if err != nil {
		return false, err
	}
	return cell.isFlagged, nil
}

// AdjacentBombs counts the mines among the in-bounds neighbors of a cell,
// excluding the cell itself
func (board *Board) AdjacentBombs(row, col int) (int, error) {
	cell, err := board.checkedCell(row, col)
	if err != nil {
		return 0, err
	}
	return cell.numMines, nil
}

// Generate places mines, keeping every cell closer than the safe distance to
// the start mine-free, then reveals the start cell. It may only be called once.
func (board *Board) Generate(startRow, startCol int) error {
	if board.generated {
		return errors.Wrap(ErrInvalidSequence, "board already generated")
	}
	start, err := board.checkedCell(startRow, startCol)
	if err != nil {
		return err
	}

	for r := range board.cells {
		for c := range board.cells[r] {
			cell := &board.cells[r][c]
			// A roll is drawn for every cell, including those in the safe zone
			roll := board.rand.Float64()
			dist := math.Hypot(float64(r-startRow), float64(c-startCol))

			if roll < board.bombSpawnChance && !(dist < board.safeDist) {
				cell.isMine = true
				board.numMines++
			}
		}
	}

	board.fillMines()
	board.generated = true

	Log.WithFields(logrus.Fields{
		"rows":  board.rows,
		"cols":  board.cols,
		"mines": board.numMines,
		"start": start,
	}).Debug("generated board")

	board.reveal(start)
	return nil
}

// Reveal opens a cell. Zero-count cells flood outwards; mines, flagged cells
// and already revealed cells are left alone by the flood.
func (board *Board) Reveal(row, col int) error {
	cell, err := board.playableCell(row, col)
	if err != nil {
		return err
	}

	board.reveal(cell)
	return nil
}

// ToggleFlag flips the flag on an unrevealed cell; revealed cells are ignored
func (board *Board) ToggleFlag(row, col int) error {
	cell, err := board.playableCell(row, col)
	if err != nil {
		return err
	}

	if cell.isRevealed {
		Log.WithField("cell", cell).Debug("ignoring flag on revealed cell")
		return nil
	}

	cell.isFlagged = !cell.isFlagged
	if cell.isFlagged {
		board.numFlags++
	} else {
		board.numFlags--
	}

	Log.WithFields(logrus.Fields{
		"cell":    cell,
		"flagged": cell.isFlagged,
	}).Debug("toggled flag")
	return nil
}

// reveal opens a cell and floods out from empty ones. A flag blocks the
// reveal, so flagged cells also bound the flood.
func (board *Board) reveal(cell *Cell) {
	if cell.isRevealed || cell.isFlagged {
		return
	}

	if cell.isMine || cell.numMines > 0 {
		cell.isRevealed = true
		Log.WithFields(logrus.Fields{
			"cell": cell,
			"mine": cell.isMine,
		}).Debug("revealed cell")
		return
	}

	opened := flood(board, cell)
	Log.WithFields(logrus.Fields{
		"cell":   cell,
		"opened": opened,
	}).Debug("flooded empty region")
}

// fillMines computes the neighbor mine count of every cell
func (board *Board) fillMines() {
	board.Each(func(cell *Cell) {
		cell.numMines = 0
	})
	board.Each(func(cell *Cell) {
		if !cell.isMine {
			return
		}
		for _, neighbor := range board.Neighbors(cell) {
			neighbor.numMines++
		}
	})
}

func (board *Board) checkedCell(row, col int) (*Cell, error) {
	cell := board.CellAt(row, col)
	if cell == nil {
		return nil, errors.Wrapf(ErrOutOfRange, "(%d, %d) outside %dx%d board", row, col, board.rows, board.cols)
	}
	return cell, nil
}

func (board *Board) playableCell(row, col int) (*Cell, error) {
	cell, err := board.checkedCell(row, col)
	if err != nil {
		return nil, err
	}
	if !board.generated {
		return nil, errors.Wrap(ErrInvalidSequence, "board not generated yet")
	}
	return cell, nil
}

// String renders the board in layout notation, one line per row
func (board *Board) String() string {
	var builder strings.Builder
	for r, row := range board.cells {
		if r > 0 {
			builder.WriteByte('\n')
		}
		for c := range row {
			builder.WriteString(row[c].serialize())
		}
	}
	return builder.String()
}
