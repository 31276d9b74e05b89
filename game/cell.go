package game

import (
	"fmt"
)

type Cell struct {
	row, col int
	numMines int

	isMine, isRevealed, isFlagged bool
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) serialize() string {
	switch {
	case cell.isMine:
		switch {
		case cell.isRevealed:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isRevealed:
		return "."
	default:
		return "#"
	}
}

func (cell *Cell) deserialize(c rune) bool {
	switch c {
	case '*':
		cell.isMine, cell.isRevealed = true, true
	case 'F':
		cell.isMine, cell.isFlagged = true, true
	case 'O':
		cell.isMine = true
	case 'f':
		cell.isFlagged = true
	case '.':
		cell.isRevealed = true
	case '#':
	default:
		return false
	}

	return true
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Col() int {
	return cell.col
}

func (cell *Cell) IsMine() bool {
	return cell.isMine
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

// NumMines is the number of mines among the cell's neighbors
func (cell *Cell) NumMines() int {
	return cell.numMines
}
