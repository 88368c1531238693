package main

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/database"
	"github.com/vancomm/minesweeper-agent/internal/game"
)

type postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dbUrl string) (*postgres, error) {
	db, err := database.Connect(ctx, dbUrl)
	if err != nil {
		return nil, err
	}
	return &postgres{db}, nil
}

func (pg *postgres) Ping(ctx context.Context) error {
	return pg.db.Ping(ctx)
}

func (pg *postgres) Close() {
	pg.db.Close()
}

type Player struct {
	PlayerId     int
	Username     string
	PasswordHash []byte
}

func (pg *postgres) CreatePlayer(
	ctx context.Context, username string, passwordHash []byte,
) (*Player, error) {
	var playerId int
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO player (
			username, password_hash
		)
		VALUES (
			@username, @password_hash
		)
		RETURNING player_id`,
		pgx.NamedArgs{
			"username":      username,
			"password_hash": passwordHash,
		}).Scan(&playerId); err != nil {
		return nil, err
	}
	player := &Player{
		PlayerId: playerId,
		Username: username,
	}
	return player, nil
}

func (pg *postgres) GetPlayer(
	ctx context.Context, username string,
) (*Player, error) {
	rows, err := pg.db.Query(ctx, `
		SELECT player_id, username, password_hash
		FROM player
		WHERE username = $1;`,
		username)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (pg *postgres) CreateSession(
	ctx context.Context, playerId *int, s *game.Session,
) (*GameSession, error) {
	var (
		stateBuf  bytes.Buffer
		sessionId int
		startedAt time.Time
	)
	if err := gob.NewEncoder(&stateBuf).Encode(s); err != nil {
		return nil, err
	}
	if err := pg.db.QueryRow(ctx, `
		INSERT INTO game_session (
			player_id, height, width, mine_count, status, guesses, state
		)
		VALUES (
			@player_id, @height, @width, @mine_count, @status, @guesses, @state
		)
		RETURNING game_session_id, started_at;`,
		pgx.NamedArgs{
			"player_id":  playerId,
			"height":     s.Board.Height,
			"width":      s.Board.Width,
			"mine_count": s.Board.MineCount,
			"status":     s.Status.String(),
			"guesses":    s.Guesses,
			"state":      stateBuf.Bytes(),
		}).Scan(&sessionId, &startedAt); err != nil {
		return nil, err
	}
	session := &GameSession{
		SessionId: sessionId,
		PlayerId:  playerId,
		Session:   s,
		StartedAt: startedAt,
	}
	return session, nil
}

func (pg *postgres) GetSession(
	ctx context.Context, sessionId int,
) (*GameSession, error) {
	var (
		stateBuf  []byte
		playerId  pgtype.Int8
		s         game.Session
		startedAt time.Time
		endedAt   pgtype.Timestamptz
	)
	if err := pg.db.QueryRow(ctx, `
		SELECT player_id, state, started_at, ended_at
		FROM game_session
		WHERE game_session_id = $1;`,
		sessionId).Scan(
		&playerId, &stateBuf, &startedAt, &endedAt,
	); err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(bytes.NewBuffer(stateBuf)).Decode(&s); err != nil {
		return nil, err
	}
	session := &GameSession{
		SessionId: sessionId,
		Session:   &s,
		StartedAt: startedAt,
		EndedAt:   endedAt.Time,
	}
	if playerId.Valid {
		id := int(playerId.Int64)
		session.PlayerId = &id
	}
	return session, nil
}

func (pg *postgres) UpdateSession(
	ctx context.Context, session *GameSession,
) error {
	var stateBuf bytes.Buffer
	if err := gob.NewEncoder(&stateBuf).Encode(session.Session); err != nil {
		return err
	}
	var endedAt *time.Time
	if !session.EndedAt.IsZero() {
		endedAt = &session.EndedAt
	}
	_, err := pg.db.Exec(ctx, `
		UPDATE game_session
		SET status = @status
			, guesses = @guesses
			, ended_at = @ended_at
			, state = @state
		WHERE game_session_id = @game_session_id;`,
		pgx.NamedArgs{
			"game_session_id": session.SessionId,
			"status":          session.Session.Status.String(),
			"guesses":         session.Session.Guesses,
			"ended_at":        endedAt,
			"state":           stateBuf.Bytes(),
		})
	return err
}
