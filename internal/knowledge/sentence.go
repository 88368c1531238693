package knowledge

import "fmt"

/*
A Sentence is a logical statement about the board: exactly `count` of
`cells` are mines. Sentences only ever describe cells whose contents are
unknown; as soon as a cell is proven safe or mined it is removed from
every sentence that mentions it.

Invariant: 0 <= count <= len(cells). Both mutators below refuse any
update that would break it.
*/
type Sentence struct {
	cells CellSet
	count int
}

// NewSentence builds a sentence over a copy of cells. A count outside
// [0, len(cells)] is not a recoverable game state and is rejected outright:
// clamping it would fabricate false certainty.
func NewSentence(cells CellSet, count int) (*Sentence, error) {
	if count < 0 || count > len(cells) {
		return nil, ConsistencyError{fmt.Sprintf(
			"sentence cannot hold %d mines in %d cells", count, len(cells),
		)}
	}
	return &Sentence{cells: cells.Clone(), count: count}, nil
}

func (s Sentence) String() string {
	return fmt.Sprintf("%v = %d", s.cells.Sorted(), s.count)
}

// Equal is structural: same cell set, same count.
func (s *Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

func (s *Sentence) Count() int { return s.count }

func (s *Sentence) Cells() CellSet { return s.cells.Clone() }

// KnownMines returns every cell of the sentence when all of them must be
// mines (count equals cardinality), otherwise nil.
func (s *Sentence) KnownMines() CellSet {
	if len(s.cells) > 0 && s.count == len(s.cells) {
		return s.cells.Clone()
	}
	return nil
}

// KnownSafes returns every cell of the sentence when none of them can be
// a mine (count is zero), otherwise nil.
func (s *Sentence) KnownSafes() CellSet {
	if len(s.cells) > 0 && s.count == 0 {
		return s.cells.Clone()
	}
	return nil
}

// concluded reports that the sentence has nothing more to say: either it
// is empty or it resolves every one of its cells.
func (s *Sentence) concluded() bool {
	return len(s.cells) == 0 || s.count == 0 || s.count == len(s.cells)
}

/*
markMine records the fact that cell is a mine. Facts are broadcast to
every sentence in the knowledge base regardless of relevance, so a cell
the sentence does not mention is a no-op, not an error.

Removing a mine cell shrinks cells and count together, keeping the
invariant intact. A member cell with count already at zero contradicts
the sentence; the mutation is refused and ok is false so the knowledge
base can surface the fault in strict mode.
*/
func (s *Sentence) markMine(cell Cell) (changed, ok bool) {
	if !s.cells.Has(cell) {
		return false, true
	}
	if s.count == 0 {
		return false, false
	}
	s.cells.Delete(cell)
	s.count--
	return true, true
}

/*
markSafe records the fact that cell is not a mine. Removing a safe cell
leaves count unchanged: the mines live among the rest. A member cell in a
sentence whose every cell must be a mine contradicts the fact; refused,
ok false.
*/
func (s *Sentence) markSafe(cell Cell) (changed, ok bool) {
	if !s.cells.Has(cell) {
		return false, true
	}
	if s.count == len(s.cells) {
		return false, false
	}
	s.cells.Delete(cell)
	return true, true
}

/*
subtract removes a proven sub-statement from s: every cell of sub leaves
s.cells and sub's count leaves s.count. Caller guarantees sub.cells is a
strict subset of s.cells. The result can only be inconsistent if the
knowledge base already was; that is reported, never clamped.
*/
func (s *Sentence) subtract(sub *Sentence) error {
	for c := range sub.cells {
		s.cells.Delete(c)
	}
	s.count -= sub.count
	if s.count < 0 || s.count > len(s.cells) {
		return ConsistencyError{fmt.Sprintf(
			"subtracting %v from a superset left %d mines in %d cells",
			sub, s.count, len(s.cells),
		)}
	}
	return nil
}
