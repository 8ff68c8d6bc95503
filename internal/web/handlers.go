package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"ping-monitor/internal/models"
)

const writeTimeout = 5 * time.Second

const (
	eventSnapshot     = "snapshot"
	eventIrregularity = "irregularity"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(u.Host), strings.TrimSpace(r.Host))
	},
}

type event struct {
	Type         string               `json:"type"`
	Snapshot     *models.Snapshot     `json:"snapshot,omitempty"`
	Irregularity *models.Irregularity `json:"irregularity,omitempty"`
}

type irregularitiesResponse struct {
	Closed []models.Irregularity `json:"closed"`
	Open   []models.Irregularity `json:"open"`
}

// client is one websocket subscriber. When its buffer is full the oldest
// event is dropped.
type client struct {
	send chan event
}

func (c *client) offer(ev event) {
	select {
	case c.send <- ev:
		return
	default:
	}
	select {
	case <-c.send:
	default:
	}
	select {
	case c.send <- ev:
	default:
	}
}

// handleSnapshot handles /api/snapshot requests
func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, _ := s.state()
	writeJSON(w, http.StatusOK, snap)
}

// handleIrregularities handles /api/irregularities requests
func (s *Server) handleIrregularities(w http.ResponseWriter, _ *http.Request) {
	snap, closed := s.state()
	resp := irregularitiesResponse{
		Closed: closed,
		Open:   []models.Irregularity{},
	}
	for _, t := range snap.Targets {
		if t.OpenIrregular != nil {
			resp.Open = append(resp.Open, *t.OpenIrregular)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{send: make(chan event, clientBuffer)}
	latest, ok := s.register(c)
	if !ok {
		return
	}
	defer s.unregister(c)

	if err := writeEvent(conn, event{Type: eventSnapshot, Snapshot: &latest}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-c.send:
			if err := writeEvent(conn, ev); err != nil {
				return
			}
		case <-done:
			return
		case <-s.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "monitor stopped"),
				time.Now().Add(writeTimeout))
			return
		}
	}
}

func writeEvent(conn *websocket.Conn, ev event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(ev)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
