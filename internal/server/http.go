package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/reveal"
	"github.com/xtding233/kessan-board/internal/series"
	"github.com/xtding233/kessan-board/internal/session"
)

type boardResp struct {
	ID      string          `json:"id,omitempty"`
	Payload *engine.Payload `json:"payload,omitempty"`
	Err     string          `json:"err,omitempty"`
}

// Handler serves the board API over a session store.
type Handler struct {
	sessions *session.Store
	mux      *http.ServeMux
}

func NewHandler(sessions *session.Store) *Handler {
	h := &Handler{sessions: sessions, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /sessions", h.handleCreate)
	h.mux.HandleFunc("GET /sessions/{id}", h.withBoard(h.handleGet))
	h.mux.HandleFunc("DELETE /sessions/{id}", h.handleDelete)
	h.mux.HandleFunc("POST /sessions/{id}/players", h.withBoard(h.handlePlayers))
	h.mux.HandleFunc("POST /sessions/{id}/years", h.withBoard(h.handleYears))
	h.mux.HandleFunc("POST /sessions/{id}/values", h.withBoard(h.handleValue))
	h.mux.HandleFunc("POST /sessions/{id}/rename", h.withBoard(h.handleRename))
	h.mux.HandleFunc("POST /sessions/{id}/start", h.withBoard(h.handleStart))
	h.mux.HandleFunc("POST /sessions/{id}/skip", h.withBoard(h.handleSkip))
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func writeJSON(w http.ResponseWriter, status int, resp boardResp) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, boardResp{Err: msg})
}

// writeBoard answers with the current payload, or maps err to a status.
func writeBoard(w http.ResponseWriter, id string, e *engine.Engine, err error) {
	switch {
	case errors.Is(err, engine.ErrLocked), errors.Is(err, reveal.ErrAlreadyStarted):
		writeErr(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	p := e.Payload()
	writeJSON(w, http.StatusOK, boardResp{ID: id, Payload: &p})
}

type boardHandler func(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine)

func (h *Handler) withBoard(next boardHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		e, err := h.sessions.Get(id)
		if err != nil {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		next(w, r, id, e)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var o config.Overrides
	if n, ok, msg := parseInt(r, "players"); msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	} else if ok {
		o.Players = &n
	}
	if s := r.URL.Query().Get("years"); s != "" {
		n := series.ParseYearCount(s)
		o.Years = &n
	}
	if s := r.URL.Query().Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid seed")
			return
		}
		o.Seed = &seed
	}

	id, e, err := h.sessions.Create(o)
	if errors.Is(err, session.ErrFull) {
		writeErr(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		log.Printf("create session: %v", err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	p := e.Payload()
	writeJSON(w, http.StatusCreated, boardResp{ID: id, Payload: &p})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	writeBoard(w, id, e, nil)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Delete(r.PathValue("id")) {
		writeErr(w, http.StatusNotFound, session.ErrNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePlayers(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	n, ok, msg := parseInt(r, "n")
	if !ok {
		if msg == "" {
			msg = "missing param n"
		}
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	writeBoard(w, id, e, e.SetPlayerCount(n))
}

// years takes the raw field text; anything non-numeric means 1.
func (h *Handler) handleYears(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	writeBoard(w, id, e, e.SetYearCountRaw(r.URL.Query().Get("n")))
}

// values: year is 1-based as shown on the entry form; value is raw text.
func (h *Handler) handleValue(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	year, ok, msg := parseInt(r, "year")
	if !ok || year < 1 {
		if msg == "" {
			msg = "missing/invalid param year"
		}
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	player := r.URL.Query().Get("player")
	if player == "" {
		writeErr(w, http.StatusBadRequest, "missing param player")
		return
	}
	writeBoard(w, id, e, e.SetValue(year-1, player, r.URL.Query().Get("value")))
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	q := r.URL.Query()
	writeBoard(w, id, e, e.Rename(q.Get("player"), q.Get("name")))
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	writeBoard(w, id, e, e.Start())
}

func (h *Handler) handleSkip(w http.ResponseWriter, r *http.Request, id string, e *engine.Engine) {
	e.Skip()
	writeBoard(w, id, e, nil)
}
