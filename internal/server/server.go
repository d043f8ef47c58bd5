// Package server exposes the game over WebSocket. Every client connection
// plays its own independent game against an ephemeral session.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/streetbook/internal/engine"
	"github.com/lox/streetbook/internal/randutil"
	"github.com/lox/streetbook/internal/session"
	"github.com/lox/streetbook/internal/store"
)

// Server accepts WebSocket clients and runs a game session per
// connection.
type Server struct {
	addr        string
	rules       engine.Rules
	seed        int64
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	nextSeed    int64
}

func New(addr string, rules engine.Rules, seed int64, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr:  addr,
		rules: rules,
		seed:  seed,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.logger.Info("listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Handler returns the HTTP handler, for serving on an existing listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return nil
}

func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	sess, err := s.newSession(r.Context())
	if err != nil {
		s.logger.Error("session start failed", "error", err)
		_ = conn.Close()
		return
	}

	client := NewConnection(conn, sess, s.logger)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// newSession builds an independent game for a fresh connection. Server
// games are not persisted across reconnects.
func (s *Server) newSession(ctx context.Context) (*session.Session, error) {
	s.mu.Lock()
	seed := s.seed + s.nextSeed
	s.nextSeed++
	s.mu.Unlock()

	eng := engine.New(s.rules, randutil.New(seed), s.logger)
	return session.LoadOrNew(ctx, eng, store.NewMemory(), s.logger, quartz.NewReal())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
