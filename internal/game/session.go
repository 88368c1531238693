package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-agent/internal/board"
	"github.com/vancomm/minesweeper-agent/internal/knowledge"
)

type Status int

const (
	Playing Status = iota
	Won
	Lost
	// Stalled means no unplayed non-mine candidate cell remains but the
	// flags do not yet match the mines; with a truthful board this only
	// happens on degenerate setups.
	Stalled
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Stalled:
		return "stalled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Move is one probe the agent made, with its provenance: a deduced move
// was proven safe beforehand, a guess was not.
type Move struct {
	Cell  knowledge.Cell `json:"cell"`
	Guess bool           `json:"guess"`
	Mined bool           `json:"mined"`
}

/*
Session drives one game: it owns the board oracle and the knowledge
base, asks the knowledge base for the next probe (provably safe if
possible, a guess otherwise), feeds the resulting clue back in, and
flags mines on the board as they are proven.
*/
type Session struct {
	Board   *board.Board
	Know    *knowledge.Knowledge
	Status  Status
	Moves   []Move
	Guesses int

	rnd *rand.Rand
}

func NewSession(height, width, mineCount int, r *rand.Rand) (*Session, error) {
	b, err := board.New(height, width, mineCount, r)
	if err != nil {
		return nil, err
	}
	return &Session{
		Board: b,
		Know:  knowledge.New(height, width),
		rnd:   r,
	}, nil
}

// Seed attaches the randomness source used for guessing. Needed after a
// session is decoded from storage; the source itself is not persisted.
func (s *Session) Seed(r *rand.Rand) {
	s.rnd = r
}

func (s *Session) rand() *rand.Rand {
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s.rnd
}

/*
Step advances the game by one probe. A safe move is preferred; failing
that the agent guesses among cells not yet played and not proven mined.
Returns nil once the game is over or no candidate cell remains.
*/
func (s *Session) Step() (*Move, error) {
	if s.Status != Playing {
		return nil, nil
	}

	cell, ok := s.Know.SafeMove()
	guess := false
	if !ok {
		cell, ok = s.Know.RandomMove(s.rand())
		guess = true
	}
	if !ok {
		s.Status = Stalled
		return nil, nil
	}

	move := Move{Cell: cell, Guess: guess}
	if guess {
		s.Guesses++
	}

	if s.Board.IsMine(cell.Row, cell.Col) {
		move.Mined = true
		s.Moves = append(s.Moves, move)
		s.Status = Lost
		return &move, nil
	}

	count := s.Board.NeighborMines(cell.Row, cell.Col)
	if err := s.Know.RecordClue(cell, count); err != nil {
		return nil, fmt.Errorf("clue for %v: %w", cell, err)
	}

	for c := range s.Know.Mines() {
		s.Board.Flag(c.Row, c.Col)
	}

	s.Moves = append(s.Moves, move)
	if s.Board.Won() {
		s.Status = Won
	}
	return &move, nil
}

// Play runs the agent until the game is won, lost or stalled.
func (s *Session) Play() error {
	for s.Status == Playing {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
