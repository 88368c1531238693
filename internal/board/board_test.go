package board

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name                     string
		height, width, mineCount int
		ok                       bool
	}{
		{"8x8(8)", 8, 8, 8, true},
		{"1x1(0)", 1, 1, 0, true},
		{"full board", 3, 3, 9, true},
		{"too many mines", 3, 3, 10, false},
		{"negative mines", 3, 3, -1, false},
		{"empty board", 0, 3, 1, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			b, err := New(test.height, test.width, test.mineCount, r)
			if !test.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			mines := 0
			for row := range b.Height {
				for col := range b.Width {
					if b.IsMine(row, col) {
						mines++
					}
				}
			}
			assert.Equal(t, test.mineCount, mines)
		})
	}
}

func TestNeighborMines(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := New(3, 3, 9, r)
	require.NoError(t, err)

	// on a fully mined board every cell sees all of its neighbors
	assert.Equal(t, 3, b.NeighborMines(0, 0))
	assert.Equal(t, 5, b.NeighborMines(0, 1))
	assert.Equal(t, 8, b.NeighborMines(1, 1))
}

func TestNeighborMinesMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	b, err := New(8, 8, 10, r)
	require.NoError(t, err)

	for row := range b.Height {
		for col := range b.Width {
			want := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					if b.Contains(row+dr, col+dc) && b.IsMine(row+dr, col+dc) {
						want++
					}
				}
			}
			assert.Equal(t, want, b.NeighborMines(row, col))
		}
	}
}

func TestWon(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := New(4, 4, 3, r)
	require.NoError(t, err)

	assert.False(t, b.Won())
	for row := range b.Height {
		for col := range b.Width {
			if b.IsMine(row, col) {
				b.Flag(row, col)
			}
		}
	}
	assert.True(t, b.Won())
}

func TestWonRequiresExactFlags(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := New(2, 2, 1, r)
	require.NoError(t, err)

	// flag everything: real mine flagged, but so are safe cells
	for row := range b.Height {
		for col := range b.Width {
			b.Flag(row, col)
		}
	}
	assert.False(t, b.Won())
}

func TestString(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := New(2, 3, 6, r)
	require.NoError(t, err)

	s := b.String()
	assert.Equal(t, 6, strings.Count(s, "X"))
	assert.Equal(t, 5, strings.Count(s, "\n"))
}

func TestGobRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := New(5, 7, 9, r)
	require.NoError(t, err)
	b.Flag(2, 3)

	data, err := b.GobEncode()
	require.NoError(t, err)

	var restored Board
	require.NoError(t, restored.GobDecode(data))
	assert.Equal(t, b.Height, restored.Height)
	assert.Equal(t, b.Width, restored.Width)
	assert.True(t, restored.Flagged(2, 3))
	for row := range b.Height {
		for col := range b.Width {
			assert.Equal(t, b.IsMine(row, col), restored.IsMine(row, col))
		}
	}
}
