package term

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/they4kman/safesweep/game"
	"golang.org/x/image/colornames"
)

type Options struct {
	// Emit ANSI truecolor escapes
	Color bool
}

var numberColors = map[int]color.RGBA{
	1: colornames.Blue,
	2: colornames.Green,
	3: colornames.Red,
	4: colornames.Darkblue,
	5: colornames.Maroon,
	6: colornames.Darkcyan,
	7: colornames.Black,
	8: colornames.Gray,
}

var symbolColors = map[string]color.RGBA{
	"F": colornames.Orange,
	"x": colornames.Darkred,
	"*": colornames.Red,
	"o": colornames.Dimgray,
}

// symbol renders a cell the way the player sees it. Once the game is lost,
// hidden mines and wrongly flagged cells are exposed.
func symbol(cell *game.Cell, outcome game.Outcome) string {
	switch {
	case cell.IsFlagged():
		if outcome == game.Lost && !cell.IsMine() {
			return "x"
		}
		return "F"
	case cell.IsRevealed():
		if cell.IsMine() {
			return "*"
		}
		if cell.NumMines() == 0 {
			return "."
		}
		return strconv.Itoa(cell.NumMines())
	case outcome == game.Lost && cell.IsMine():
		return "o"
	default:
		return "#"
	}
}

func colorize(s string, c color.RGBA) string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.R, c.G, c.B, s)
}

func (options Options) paint(cell *game.Cell, s string) string {
	if !options.Color {
		return s
	}
	if c, ok := symbolColors[s]; ok {
		return colorize(s, c)
	}
	if c, ok := numberColors[cell.NumMines()]; ok && cell.IsRevealed() && !cell.IsMine() {
		return colorize(s, c)
	}
	return s
}

// Render writes the board with a header line holding the mine counter and the
// outcome, followed by the grid with row and column indices
func Render(w io.Writer, board *game.Board, outcome game.Outcome, options Options) error {
	var out strings.Builder

	if board.Generated() {
		fmt.Fprintf(&out, "mines: %03d", board.MinesRemaining())
	} else {
		out.WriteString("mines: ---")
	}
	switch outcome {
	case game.Won:
		out.WriteString("   WIN!")
	case game.Lost:
		out.WriteString("   LOSE :(")
	}
	out.WriteByte('\n')

	width := len(strconv.Itoa(max(board.Rows(), board.Cols()) - 1))
	cellFormat := fmt.Sprintf(" %%%ds", width)

	out.WriteString(strings.Repeat(" ", width))
	for c := 0; c < board.Cols(); c++ {
		fmt.Fprintf(&out, cellFormat, strconv.Itoa(c))
	}
	out.WriteByte('\n')

	for r := 0; r < board.Rows(); r++ {
		fmt.Fprintf(&out, "%*d", width, r)
		for c := 0; c < board.Cols(); c++ {
			cell := board.CellAt(r, c)
			s := symbol(cell, outcome)
			padding := strings.Repeat(" ", width-len(s)+1)
			out.WriteString(padding + options.paint(cell, s))
		}
		out.WriteByte('\n')
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
