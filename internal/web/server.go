package web

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"ping-monitor/internal/models"
)

const (
	shutdownTimeout = 5 * time.Second
	clientBuffer    = 16
)

// Server publishes the live monitor state over HTTP and websocket.
type Server struct {
	*http.Server
	logger *log.Logger

	mu      sync.RWMutex
	latest  models.Snapshot
	closed  []models.Irregularity
	clients map[*client]struct{}
	quit    chan struct{}
	stopped bool
}

// New creates a status server bound to addr. The server only listens once
// Start is called.
func New(addr string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		logger:  logger,
		clients: make(map[*client]struct{}),
		quit:    make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/irregularities", s.handleIrregularities).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start listens and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.logger.Printf("Status server listening on http://%s", ln.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ln) }()

	select {
	case <-ctx.Done():
		s.stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		s.stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// stop releases websocket clients; hijacked connections are not covered by Shutdown.
func (s *Server) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.quit)
}

// Render implements models.Presenter. It never blocks on slow clients.
func (s *Server) Render(snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snap
	s.broadcast(event{Type: eventSnapshot, Snapshot: &snap})
	return nil
}

// IrregularityClosed records a closed period and forwards it to clients.
func (s *Server) IrregularityClosed(period models.Irregularity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, period)
	s.broadcast(event{Type: eventIrregularity, Irregularity: &period})
}

// broadcast must be called with mu held.
func (s *Server) broadcast(ev event) {
	for c := range s.clients {
		c.offer(ev)
	}
}

func (s *Server) register(c *client) (models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return models.Snapshot{}, false
	}
	s.clients[c] = struct{}{}
	return s.latest, true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

func (s *Server) state() (models.Snapshot, []models.Irregularity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	closed := make([]models.Irregularity, len(s.closed))
	copy(closed, s.closed)
	return s.latest, closed
}
