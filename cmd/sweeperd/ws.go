package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

// handleWatchWs streams a game as the agent plays it. Each "step" text
// message advances one probe, "solve" runs to the end; the session is
// persisted and written back after every command.
func handleWatchWs(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, err := pg.GetSession(r.Context(), sessionId)
	if err == pgx.ErrNoRows {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error(err)
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		command := strings.TrimSpace(string(message))
		log.Debug("\t> ", command)

		switch command {
		case "step":
			err = advance(session, 1)
		case "solve":
			err = advance(session, -1)
		default:
			log.Debug("unknown ws command: ", command)
			continue
		}
		if err != nil {
			log.Error("advance: ", err)
			return
		}

		if err := pg.UpdateSession(r.Context(), session); err != nil {
			log.Error("update: ", err)
			return
		}
		if err := c.WriteJSON(session); err != nil {
			log.Error("write: ", err)
			break
		}
		log.Debug("\t< <session data>")
	}
}
