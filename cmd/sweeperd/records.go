package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
)

type GameRecord struct {
	GameSessionId string  `json:"session_id"`
	Username      *string `json:"username"`
	Height        int     `json:"height"`
	Width         int     `json:"width"`
	MineCount     int     `json:"mine_count"`
	Guesses       int     `json:"guesses"`
	Playtime      float64 `json:"playtime"`
}

type GameRecordFilters struct {
	username   *string
	gameParams *NewGameParams
}

func (f GameRecordFilters) WhereClause() (string, pgx.NamedArgs) {
	args := pgx.NamedArgs{}
	whereClauses := []string{}
	if f.username != nil {
		args["username"] = &f.username
		whereClauses = append(whereClauses, "username = @username")
	}
	if f.gameParams != nil {
		args["height"] = &f.gameParams.Height
		args["width"] = &f.gameParams.Width
		args["mineCount"] = &f.gameParams.MineCount
		whereClauses = append(
			whereClauses,
			"height = @height",
			"width = @width",
			"mine_count = @mineCount",
		)
	}

	if len(whereClauses) == 0 {
		return "", args
	}
	return strings.Join(whereClauses, " and "), args
}

type GameRecordsOption = func(*GameRecordFilters) error

func GameRecordsForPlayer(username string) GameRecordsOption {
	return func(f *GameRecordFilters) error {
		f.username = &username
		return nil
	}
}

func GameRecordsForGameParams(gameParams *NewGameParams) GameRecordsOption {
	return func(f *GameRecordFilters) error {
		f.gameParams = gameParams
		return nil
	}
}

// Best solved games: fewest guesses first, ties broken by playtime.
func getGameRecords(
	ctx context.Context, options ...GameRecordsOption,
) ([]GameRecord, error) {
	filters := &GameRecordFilters{}
	for _, op := range options {
		err := op(filters)
		if err != nil {
			return nil, err
		}
	}

	sql := `
	select
		game_session_id
		, username
		, height
		, width
		, mine_count
		, guesses
		, (
			extract('epoch' from ended_at) - extract('epoch' from started_at)
		) * 1000 playtime
	from game_session
		left outer join player using (player_id)
	where
		status = 'won'
		and ended_at is not null`

	whereClause, args := filters.WhereClause()
	if whereClause != "" {
		sql += " and " + whereClause
	}

	sql += " order by guesses, playtime"

	rows, err := pg.db.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}

func handleGetRecords(w http.ResponseWriter, r *http.Request) {
	options := []GameRecordsOption{}
	var params NewGameParams
	if err := dec.Decode(&params, r.URL.Query()); err == nil {
		options = append(options, GameRecordsForGameParams(&params))
	}
	records, err := getGameRecords(r.Context(), options...)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}

func handleGetOwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := getGameRecords(
		r.Context(), GameRecordsForPlayer(claims.Username),
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, records); err != nil {
		log.Error(err)
	}
}
