package knowledge

import (
	"fmt"
	"math/rand/v2"
)

/*
Knowledge is the evolving knowledge base of one Minesweeper game: the
cells already played, the cells proven safe or mined, and the live
sentences that still constrain unknown cells.

A Knowledge is owned by a single game session and is not safe for
concurrent use.
*/
type Knowledge struct {
	height, width int

	// Proven facts. These sets only ever grow, and a cell joins at most
	// one of safes/mines.
	moves CellSet
	safes CellSet
	mines CellSet

	/*
	 * Live sentences are held in an arena; concluded sentences leave a
	 * nil slot behind so queued indices stay valid. The queue holds the
	 * indices of sentences changed since they were last examined, the
	 * same to-do discipline the board generator's set store uses.
	 */
	sentences []*Sentence
	queue     []int
	queued    map[int]struct{}

	strict bool
}

type Option func(*Knowledge)

// Strict makes sentence-level fact conflicts fatal instead of silent
// no-ops. Derived-sentence inconsistencies are fatal in either mode.
func Strict() Option {
	return func(k *Knowledge) { k.strict = true }
}

func New(height, width int, options ...Option) *Knowledge {
	k := &Knowledge{
		height: height,
		width:  width,
		moves:  NewCellSet(),
		safes:  NewCellSet(),
		mines:  NewCellSet(),
		queued: make(map[int]struct{}),
	}
	for _, op := range options {
		op(k)
	}
	return k
}

func (k *Knowledge) Height() int { return k.height }
func (k *Knowledge) Width() int  { return k.width }

func (k *Knowledge) Contains(cell Cell) bool {
	return 0 <= cell.Row && cell.Row < k.height &&
		0 <= cell.Col && cell.Col < k.width
}

func (k *Knowledge) neighbors(cell Cell) []Cell {
	cells := make([]Cell, 0, 8)
	for dr := -1; dr <= +1; dr++ {
		for dc := -1; dc <= +1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Cell{Row: cell.Row + dr, Col: cell.Col + dc}
			if k.Contains(n) {
				cells = append(cells, n)
			}
		}
	}
	return cells
}

// Moves returns a copy of the set of cells already played.
func (k *Knowledge) Moves() CellSet { return k.moves.Clone() }

// Safes returns a copy of the set of cells proven safe.
func (k *Knowledge) Safes() CellSet { return k.safes.Clone() }

// Mines returns a copy of the set of cells proven to be mines.
func (k *Knowledge) Mines() CellSet { return k.mines.Clone() }

// SentenceCount reports how many sentences are still live.
func (k *Knowledge) SentenceCount() (n int) {
	for _, s := range k.sentences {
		if s != nil {
			n++
		}
	}
	return
}

func (k *Knowledge) enqueue(i int) {
	if _, ok := k.queued[i]; ok {
		return /* already on it */
	}
	k.queued[i] = struct{}{}
	k.queue = append(k.queue, i)
}

func (k *Knowledge) dequeue() (int, bool) {
	for len(k.queue) > 0 {
		i := k.queue[0]
		k.queue = k.queue[1:]
		delete(k.queued, i)
		if k.sentences[i] != nil {
			return i, true
		}
	}
	return 0, false
}

/*
MarkMine publishes the fact that cell is a mine to the whole knowledge
base: the cell joins the mines set and leaves every sentence that
mentions it. Sentences it changes go back on the to-do queue.
*/
func (k *Knowledge) MarkMine(cell Cell) error {
	if k.safes.Has(cell) {
		return ConsistencyError{fmt.Sprintf(
			"cell %v is proven safe and cannot be marked a mine", cell,
		)}
	}
	if k.mines.Has(cell) {
		return nil
	}
	k.mines.Add(cell)
	for i, s := range k.sentences {
		if s == nil {
			continue
		}
		changed, ok := s.markMine(cell)
		if !ok && k.strict {
			return ConsistencyError{fmt.Sprintf(
				"mine at %v contradicts sentence %v", cell, s,
			)}
		}
		if changed {
			k.enqueue(i)
		}
	}
	return nil
}

// MarkSafe publishes the fact that cell is not a mine, symmetrically to
// [Knowledge.MarkMine].
func (k *Knowledge) MarkSafe(cell Cell) error {
	if k.mines.Has(cell) {
		return ConsistencyError{fmt.Sprintf(
			"cell %v is a proven mine and cannot be marked safe", cell,
		)}
	}
	if k.safes.Has(cell) {
		return nil
	}
	k.safes.Add(cell)
	for i, s := range k.sentences {
		if s == nil {
			continue
		}
		changed, ok := s.markSafe(cell)
		if !ok && k.strict {
			return ConsistencyError{fmt.Sprintf(
				"safe cell %v contradicts sentence %v", cell, s,
			)}
		}
		if changed {
			k.enqueue(i)
		}
	}
	return nil
}

/*
RecordClue feeds in one revealed-cell result: cell was opened safely and
has count mines among its in-bounds neighbors. The clue becomes a new
sentence over the cell's still-unknown neighbors (known mines are
discounted from count, known safes simply dropped) and propagation runs
to a fixed point before returning.
*/
func (k *Knowledge) RecordClue(cell Cell, count int) error {
	if !k.Contains(cell) {
		return fmt.Errorf("cell %v outside a %dx%d board", cell, k.height, k.width)
	}
	k.moves.Add(cell)
	if err := k.MarkSafe(cell); err != nil {
		return err
	}

	cells := NewCellSet()
	for _, n := range k.neighbors(cell) {
		if k.safes.Has(n) {
			continue
		}
		if k.mines.Has(n) {
			count--
			continue
		}
		cells.Add(n)
	}

	s, err := NewSentence(cells, count)
	if err != nil {
		return err
	}
	k.sentences = append(k.sentences, s)
	k.enqueue(len(k.sentences) - 1)

	return k.propagate()
}

/*
propagate runs deduction to a fixed point.

Each pass drains the to-do queue: a changed sentence is subtracted from
every live strict superset, which derives "other.count - changed.count
mines among other.cells - changed.cells" and dirties the superset. When
the queue is empty the pass sweeps for concluded sentences and broadcasts
their verdicts, which may dirty further sentences and start another pass.

Termination: every subtraction strictly shrinks some sentence's cell set
and every conclusion removes a sentence, both bounded below, so the loop
cannot run forever on a finite board. The fixed point reached does not
depend on queue order; subtraction and marking commute.
*/
func (k *Knowledge) propagate() error {
	for {
		progress := false

		for {
			i, ok := k.dequeue()
			if !ok {
				break
			}
			sub := k.sentences[i]
			if len(sub.cells) == 0 {
				continue /* nothing to subtract */
			}
			for j, s := range k.sentences {
				if j == i || s == nil {
					continue
				}
				if len(sub.cells) >= len(s.cells) ||
					!sub.cells.SubsetOf(s.cells) {
					continue
				}
				if err := s.subtract(sub); err != nil {
					return err
				}
				k.enqueue(j)
			}
			progress = true
		}

		for i, s := range k.sentences {
			if s == nil || !s.concluded() {
				continue
			}
			mines := s.KnownMines()
			safes := s.KnownSafes()
			k.sentences[i] = nil
			progress = true
			for c := range mines {
				if err := k.MarkMine(c); err != nil {
					return err
				}
			}
			for c := range safes {
				if err := k.MarkSafe(c); err != nil {
					return err
				}
			}
		}

		if !progress {
			return nil
		}
	}
}

// SafeMove returns a cell proven safe that has not been played yet. The
// choice among eligible cells is arbitrary.
func (k *Knowledge) SafeMove() (Cell, bool) {
	for c := range k.safes {
		if !k.moves.Has(c) {
			return c, true
		}
	}
	return Cell{}, false
}

/*
RandomMove returns a uniformly random cell that has not been played and
is not a proven mine. It is the last resort when no safe move can be
proven, so the cell may or may not turn out safe. Reports false once the
board offers no such cell.
*/
func (k *Knowledge) RandomMove(r *rand.Rand) (Cell, bool) {
	candidates := make([]Cell, 0, k.height*k.width-len(k.moves))
	for row := range k.height {
		for col := range k.width {
			c := Cell{Row: row, Col: col}
			if !k.moves.Has(c) && !k.mines.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[r.IntN(len(candidates))], true
}
