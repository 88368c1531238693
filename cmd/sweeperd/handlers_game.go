package main

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

var (
	dec = schema.NewDecoder()
	rnd = rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(),
		new(maphash.Hash).Sum64(),
	))
)

func init() {
	dec.IgnoreUnknownKeys(true)
}

type NewGameParams struct {
	Height    int `schema:"height,required"`
	Width     int `schema:"width,required"`
	MineCount int `schema:"mine_count,required"`
}

func handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := dec.Decode(&params, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s, err := game.NewSession(params.Height, params.Width, params.MineCount, rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}
	var playerId *int
	if claims, ok := r.Context().Value(ctxPlayerClaims).(*PlayerClaims); ok {
		log.Debug("creating session for player ", claims.Username)
		playerId = &claims.PlayerId
		refreshPlayerCookies(w, *claims)
	} else {
		log.Debug("creating anonymous session")
	}
	session, err := pg.CreateSession(r.Context(), playerId, s)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func fetchSession(w http.ResponseWriter, r *http.Request) *GameSession {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if err == pgx.ErrNoRows {
		w.WriteHeader(http.StatusNotFound)
		return nil
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return nil
	}
	return session
}

func handleGetGame(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

// advance runs the agent, stamps the end time on a terminal status and
// persists the session. steps < 0 means play to completion.
func advance(session *GameSession, steps int) error {
	session.Session.Seed(rnd)
	if steps < 0 {
		if err := session.Session.Play(); err != nil {
			return err
		}
	} else {
		for range steps {
			if _, err := session.Session.Step(); err != nil {
				return err
			}
		}
	}
	if session.Session.Status != game.Playing && session.EndedAt.IsZero() {
		session.EndedAt = time.Now().UTC()
	}
	return nil
}

func handleStep(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	if err := advance(session, 1); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if err := pg.UpdateSession(r.Context(), session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}

func handleSolve(w http.ResponseWriter, r *http.Request) {
	session := fetchSession(w, r)
	if session == nil {
		return
	}
	if err := advance(session, -1); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if err := pg.UpdateSession(r.Context(), session); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	if _, err := sendJSON(w, session); err != nil {
		log.Error(err)
	}
}
