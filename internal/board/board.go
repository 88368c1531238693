package board

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

/*
Board holds the ground truth of one Minesweeper game: where the mines
are, plus which cells have been flagged as found. It is a passive
oracle; it answers IsMine and NeighborMines and is never told anything
by the solver except which mines it has located.
*/
type Board struct {
	Height, Width int
	MineCount     int
	mined         []bool /* row-major mine placement */
	flagged       []bool
}

// New places mineCount mines uniformly at random on a height x width
// board.
func New(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", height, width)
	}
	if mineCount < 0 || mineCount > height*width {
		return nil, fmt.Errorf(
			"cannot place %d mines on a %dx%d board", mineCount, height, width,
		)
	}
	b := &Board{
		Height:    height,
		Width:     width,
		MineCount: mineCount,
		mined:     make([]bool, height*width),
		flagged:   make([]bool, height*width),
	}
	for planted := 0; planted < mineCount; {
		i := r.IntN(height * width)
		if !b.mined[i] {
			b.mined[i] = true
			planted++
		}
	}
	return b, nil
}

func (b *Board) index(row, col int) int {
	return row*b.Width + col
}

func (b *Board) Contains(row, col int) bool {
	return 0 <= row && row < b.Height && 0 <= col && col < b.Width
}

func (b *Board) IsMine(row, col int) bool {
	return b.mined[b.index(row, col)]
}

// NeighborMines counts the mines within one row and column of a cell,
// not including the cell itself.
func (b *Board) NeighborMines(row, col int) (count int) {
	for dr := -1; dr <= +1; dr++ {
		for dc := -1; dc <= +1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.Contains(row+dr, col+dc) && b.IsMine(row+dr, col+dc) {
				count++
			}
		}
	}
	return
}

// Flag marks a cell as a located mine. Flagging is how the solver
// reports progress; it does not alter the board truth.
func (b *Board) Flag(row, col int) {
	b.flagged[b.index(row, col)] = true
}

func (b *Board) Flagged(row, col int) bool {
	return b.flagged[b.index(row, col)]
}

// Won reports whether the flags match the mines exactly.
func (b *Board) Won() bool {
	for i := range b.mined {
		if b.mined[i] != b.flagged[i] {
			return false
		}
	}
	return true
}

// String renders the mine placement, one row per line, X for a mine.
func (b *Board) String() string {
	var sb strings.Builder
	rule := strings.Repeat("--", b.Width) + "-\n"
	sb.WriteString(rule)
	for row := range b.Height {
		for col := range b.Width {
			if b.IsMine(row, col) {
				sb.WriteString("|X")
			} else {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("|\n")
		sb.WriteString(rule)
	}
	return sb.String()
}
