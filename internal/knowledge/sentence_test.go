package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSentenceRejectsImpossibleCounts(t *testing.T) {
	cells := NewCellSet(Cell{0, 0}, Cell{0, 1})

	tests := []struct {
		name  string
		count int
		ok    bool
	}{
		{"negative", -1, false},
		{"zero", 0, true},
		{"cardinality", 2, true},
		{"above cardinality", 3, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := NewSentence(cells, test.count)
			if test.ok {
				require.NoError(t, err)
				assert.Equal(t, test.count, s.Count())
			} else {
				var ce ConsistencyError
				assert.ErrorAs(t, err, &ce)
			}
		})
	}
}

func TestSentenceCopiesItsCells(t *testing.T) {
	cells := NewCellSet(Cell{1, 1})
	s, err := NewSentence(cells, 1)
	require.NoError(t, err)

	cells.Add(Cell{2, 2})
	assert.Equal(t, 1, len(s.Cells()))
}

func TestKnownMines(t *testing.T) {
	s, err := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 2)
	require.NoError(t, err)
	assert.True(t, s.KnownMines().Equal(NewCellSet(Cell{0, 0}, Cell{0, 1})))
	assert.Nil(t, s.KnownSafes())

	s, err = NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
	require.NoError(t, err)
	assert.Nil(t, s.KnownMines())
	assert.Nil(t, s.KnownSafes())
}

func TestKnownSafes(t *testing.T) {
	s, err := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 0)
	require.NoError(t, err)
	assert.True(t, s.KnownSafes().Equal(NewCellSet(Cell{0, 0}, Cell{0, 1})))
	assert.Nil(t, s.KnownMines())
}

func TestMarkMine(t *testing.T) {
	s, err := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 1)
	require.NoError(t, err)

	changed, ok := s.markMine(Cell{5, 5})
	assert.False(t, changed, "foreign cell must be a no-op")
	assert.True(t, ok)

	changed, ok = s.markMine(Cell{0, 1})
	assert.True(t, changed)
	assert.True(t, ok)
	assert.Equal(t, 0, s.Count())
	assert.True(t, s.Cells().Equal(NewCellSet(Cell{0, 0}, Cell{0, 2})))

	// count is exhausted; another mine in this set is a contradiction
	changed, ok = s.markMine(Cell{0, 0})
	assert.False(t, changed)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count())
}

func TestMarkSafe(t *testing.T) {
	s, err := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 1)
	require.NoError(t, err)

	changed, ok := s.markSafe(Cell{5, 5})
	assert.False(t, changed)
	assert.True(t, ok)

	changed, ok = s.markSafe(Cell{0, 2})
	assert.True(t, changed)
	assert.True(t, ok)
	assert.Equal(t, 1, s.Count(), "removing a safe cell keeps the mine count")
	assert.True(t, s.Cells().Equal(NewCellSet(Cell{0, 0}, Cell{0, 1})))

	// every remaining cell must be a mine; declaring one safe is refused
	all, err := NewSentence(NewCellSet(Cell{1, 0}, Cell{1, 1}), 2)
	require.NoError(t, err)
	changed, ok = all.markSafe(Cell{1, 0})
	assert.False(t, changed)
	assert.False(t, ok)
}

func TestSentenceInvariantUnderMutation(t *testing.T) {
	s, err := NewSentence(
		NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1}), 2,
	)
	require.NoError(t, err)

	for _, c := range []Cell{{0, 0}, {1, 1}, {0, 1}, {1, 0}, {9, 9}} {
		s.markMine(c)
		assert.GreaterOrEqual(t, s.Count(), 0)
		assert.LessOrEqual(t, s.Count(), len(s.Cells()))
	}
}

func TestSentenceEqual(t *testing.T) {
	a, err := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
	require.NoError(t, err)
	b, err := NewSentence(NewCellSet(Cell{0, 1}, Cell{0, 0}), 1)
	require.NoError(t, err)
	c, err := NewSentence(NewCellSet(Cell{0, 1}, Cell{0, 0}), 2)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "cell insertion order must not matter")
	assert.False(t, a.Equal(c))
}

func TestSubtract(t *testing.T) {
	super, err := NewSentence(
		NewCellSet(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}), 2,
	)
	require.NoError(t, err)
	sub, err := NewSentence(NewCellSet(Cell{0, 0}, Cell{0, 1}), 1)
	require.NoError(t, err)

	require.NoError(t, super.subtract(sub))
	assert.True(t, super.Cells().Equal(NewCellSet(Cell{0, 2})))
	assert.Equal(t, 1, super.Count())
	assert.True(t, super.KnownMines().Equal(NewCellSet(Cell{0, 2})))
}
