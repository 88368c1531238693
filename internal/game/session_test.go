package game

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deduced moves carry a soundness guarantee: a probe the knowledge base
// proved safe must never hit a mine, whatever the board. Guesses may
// lose, proven mines must be real ones.
func TestPlayIsSound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		height, width, mineCount int
	}{
		{"4x4(2)", 4, 4, 2},
		{"8x8(8)", 8, 8, 8},
		{"8x8(10)", 8, 8, 10},
		{"16x16(40)", 16, 16, 40},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for seed := range uint64(25) {
				r := rand.New(rand.NewPCG(seed, seed+1))
				s, err := NewSession(test.height, test.width, test.mineCount, r)
				require.NoError(t, err)
				require.NoError(t, s.Play())

				assert.Contains(t, []Status{Won, Lost}, s.Status)

				for _, move := range s.Moves {
					if !move.Guess {
						assert.False(t, move.Mined,
							"seed %d: deduced move %v hit a mine", seed, move.Cell)
					}
				}
				for c := range s.Know.Mines() {
					assert.True(t, s.Board.IsMine(c.Row, c.Col),
						"seed %d: %v proven mine but board disagrees", seed, c)
				}
				if s.Status == Won {
					assert.True(t, s.Board.Won())
				}
			}
		})
	}
}

func TestMinelessBoardIsWonInOneProbe(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSession(5, 5, 0, r)
	require.NoError(t, err)

	require.NoError(t, s.Play())
	assert.Equal(t, Won, s.Status)
	assert.Equal(t, 1, s.Guesses, "only the opening probe is a guess")
}

func TestFullyMinedBoardLosesOnFirstProbe(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSession(3, 3, 9, r)
	require.NoError(t, err)

	move, err := s.Step()
	require.NoError(t, err)
	require.NotNil(t, move)
	assert.True(t, move.Guess)
	assert.True(t, move.Mined)
	assert.Equal(t, Lost, s.Status)
}

func TestStepAfterGameOver(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewSession(3, 3, 9, r)
	require.NoError(t, err)
	require.NoError(t, s.Play())

	move, err := s.Step()
	assert.NoError(t, err)
	assert.Nil(t, move)
}

func TestSessionGobRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	s, err := NewSession(8, 8, 8, r)
	require.NoError(t, err)

	_, err = s.Step()
	require.NoError(t, err)
	_, err = s.Step()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(s))

	var restored Session
	require.NoError(t, gob.NewDecoder(bytes.NewBuffer(buf.Bytes())).Decode(&restored))
	restored.Seed(rand.New(rand.NewPCG(9, 10)))

	assert.Equal(t, s.Status, restored.Status)
	assert.Equal(t, len(s.Moves), len(restored.Moves))
	require.NoError(t, restored.Play())
	assert.Contains(t, []Status{Won, Lost}, restored.Status)
}
