package knowledge

import (
	"fmt"
	"slices"
)

// Cell is a board coordinate. It is a comparable value type so it can key
// maps and sets directly.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s.Add(c)
	}
	return s
}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

func (s CellSet) Delete(c Cell) {
	delete(s, c)
}

func (s CellSet) Clone() CellSet {
	clone := make(CellSet, len(s))
	for c := range s {
		clone.Add(c)
	}
	return clone
}

func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell of s is in other.
func (s CellSet) SubsetOf(other CellSet) bool {
	if len(s) > len(other) {
		return false
	}
	for c := range s {
		if !other.Has(c) {
			return false
		}
	}
	return true
}

// Sorted returns the cells in row-major order, for rendering and stable
// serialization.
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return cells
}
