package game

import (
	"github.com/gammazero/deque"
	"github.com/they4kman/safesweep/util/collections"
)

// flood reveals origin and every safe cell reachable from it through cells
// with no neighboring mines. Returns the number of cells revealed.
func flood(board *Board, origin *Cell) int {
	visited := collections.NewSet(origin)
	var visitQueue deque.Deque
	visitQueue.PushBack(origin)

	opened := 0
	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(*Cell)
		cell.isRevealed = true
		opened++

		if cell.numMines != 0 {
			continue
		}

		for _, neighbor := range board.Neighbors(cell) {
			if neighbor.isMine || neighbor.isRevealed || neighbor.isFlagged {
				continue
			}
			// Don't visit, if already queued
			if visited.Contains(neighbor) {
				continue
			}

			visited.Add(neighbor)
			visitQueue.PushBack(neighbor)
		}
	}

	return opened
}
