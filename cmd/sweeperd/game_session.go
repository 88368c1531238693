package main

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/vancomm/minesweeper-agent/internal/game"
	"github.com/vancomm/minesweeper-agent/internal/knowledge"
)

type GameSession struct {
	SessionId int
	PlayerId  *int
	Session   *game.Session
	StartedAt time.Time
	EndedAt   time.Time
}

type GameSessionJSON struct {
	SessionId string           `json:"session_id"`
	Height    int              `json:"height"`
	Width     int              `json:"width"`
	MineCount int              `json:"mine_count"`
	Status    string           `json:"status"`
	Moves     []game.Move      `json:"moves"`
	Guesses   int              `json:"guesses"`
	Safes     []knowledge.Cell `json:"safes"`
	Mines     []knowledge.Cell `json:"mines"`
	StartedAt int64            `json:"started_at"`
	EndedAt   *int64           `json:"ended_at,omitempty"`
}

func (s GameSession) MarshalJSON() ([]byte, error) {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(GameSessionJSON{
		SessionId: strconv.Itoa(s.SessionId),
		Height:    s.Session.Board.Height,
		Width:     s.Session.Board.Width,
		MineCount: s.Session.Board.MineCount,
		Status:    s.Session.Status.String(),
		Moves:     s.Session.Moves,
		Guesses:   s.Session.Guesses,
		Safes:     s.Session.Know.Safes().Sorted(),
		Mines:     s.Session.Know.Mines().Sorted(),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	})
}
