package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// Server errors.
var (
	ErrMissingLogger = errors.New("sync server needs a logger")
)

// Config configures a Server.
type Config struct {
	APIKey  string           // Required bearer token, empty accepts any.
	ChainID int              // Required X-Chain-ID value.
	Logger  general_i.Logger // Request logger.
}

// record is one roster entry as the sync service stores it.
type record struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction string  `json:"direction"`
	Username  string  `json:"username"`
	Color     string  `json:"color"`
	Score     int     `json:"score"`
}

type updateRequest struct {
	Player *struct {
		record
		Eliminated []string `json:"eliminated"`
	} `json:"player"`
}

type stateResponse struct {
	Players []record `json:"players"`
}

type updateResponse struct {
	Hash string `json:"hash"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server is an in-memory stand-in for the shared sync service. Players are
// listed in the order they first pushed; eliminated players are dropped and
// cannot push again.
type Server struct {
	apiKey     string
	chainID    string
	logger     general_i.Logger
	order      []string
	players    map[string]record
	eliminated map[string]struct{}
	sync.RWMutex
}

// NewServer creates an empty sync server.
func NewServer(c *Config) (*Server, error) {
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}
	return &Server{
		apiKey:     c.APIKey,
		chainID:    strconv.Itoa(c.ChainID),
		logger:     c.Logger,
		players:    make(map[string]record),
		eliminated: make(map[string]struct{}),
	}, nil
}

// Handler returns the HTTP handler serving the sync endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /game/state", s.authorized(s.handleState))
	mux.HandleFunc("POST /game/update", s.authorized(s.handleUpdate))
	return mux
}

func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("Authorization") != "Bearer "+s.apiKey {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid api key"})
			return
		}
		if r.Header.Get("X-Chain-ID") != s.chainID {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown chain id"})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.RLock()
	players := make([]record, 0, len(s.order))
	for _, id := range s.order {
		players = append(players, s.players[id])
	}
	s.RUnlock()

	writeJSON(w, http.StatusOK, stateResponse{Players: players})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil || req.Player == nil || strings.TrimSpace(req.Player.ID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed player state"})
		return
	}
	p := req.Player

	s.Lock()
	if _, ok := s.eliminated[p.ID]; ok {
		s.Unlock()
		writeJSON(w, http.StatusGone, errorResponse{Error: "player was eliminated"})
		return
	}
	if _, ok := s.players[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.players[p.ID] = p.record
	for _, id := range p.Eliminated {
		if id == p.ID {
			continue
		}
		s.eliminate(id)
	}
	s.Unlock()

	if len(p.Eliminated) > 0 {
		s.logger.Info(fmt.Sprintf("player %s reported eliminations: %v", p.ID, p.Eliminated))
	}
	writeJSON(w, http.StatusOK, updateResponse{Hash: uuid.NewString()})
}

// eliminate removes id from the roster. The caller holds the lock.
func (s *Server) eliminate(id string) {
	s.eliminated[id] = struct{}{}
	if _, ok := s.players[id]; !ok {
		return
	}
	delete(s.players, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
