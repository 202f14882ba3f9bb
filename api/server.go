// Package api is the network surface of the arena: a websocket endpoint for
// players and read-only HTTP endpoints for the current state.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/battlesnakeio/arena/admin"
	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/notify"
	"github.com/battlesnakeio/arena/stats"
	"github.com/battlesnakeio/arena/version"
	"github.com/battlesnakeio/arena/worker"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server serves the arena over HTTP.
type Server struct {
	hs     *http.Server
	hub    *Hub
	worker *worker.Worker
	admin  *admin.Service
	board  stats.Board
}

// New returns a server listening on addr. The hub must be the broadcaster
// the game notifies through.
func New(addr string, hub *Hub, w *worker.Worker, adm *admin.Service, board stats.Board) *Server {
	s := &Server{
		hub:    hub,
		worker: w,
		admin:  adm,
		board:  board,
	}

	router := httprouter.New()
	router.GET("/socket", s.socket)
	router.GET("/state", s.state)
	router.GET("/leaderboard", s.leaderboard)
	router.GET("/version", s.version)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	log.WithField("listen", s.hs.Addr).Info("arena api listening")
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for handlers to return.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{
		id:      uuid.NewV4().String(),
		server:  s,
		conn:    conn,
		codec:   codecFor(r),
		limiter: newLimiter(),
	}
	c.send = s.hub.Register(c.id)
	s.hub.SendTo(c.id, notify.Message{Type: TypeWelcome, Payload: Welcome{ID: c.id}})
	s.worker.Connect(c.id)
	c.log().WithField("RemoteAddr", r.RemoteAddr).Info("client connected")

	go c.writePump()
	go c.readPump()
}

func (s *Server) state(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeResponse(w, r, s.worker.Snapshot())
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	n := config.LeaderboardLen
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive number")
			return
		}
		n = parsed
	}
	writeResponse(w, r, s.board.Leaderboard(n))
}

func (s *Server) version(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeResponse(w, r, map[string]string{
		"version": version.Version,
		"commit":  version.Commit,
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, v interface{}) {
	codec := codecFor(r)
	data, err := codec.Marshal(v)
	if err != nil {
		log.WithError(err).Error("unable to encode response")
		writeError(w, http.StatusInternalServerError, "unable to encode response")
		return
	}
	w.Header().Set("Content-Type", codec.ContentType())
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", JSON.ContentType())
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(notify.Notification{Text: text})
}
