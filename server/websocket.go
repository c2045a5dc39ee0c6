// Package server streams planned shots to browser viewers over websockets.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lab1702/golf-ai/game"
)

//go:embed static/*
var staticFiles embed.FS

// Message types
const (
	MsgTypeShot    = "shot"
	MsgTypeHistory = "history"
	MsgTypeHoled   = "holed"
)

// HistorySize is how many recent shots a newly connected viewer receives
const HistorySize = 32

// Connection timing
const (
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second // Must be less than pongWait
	writeWait    = 10 * time.Second
	sendBuffer   = 256
	maxReadBytes = 4096
)

// isValidOrigin checks if the origin is allowed to connect
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		slog.Warn("invalid origin URL", "origin", origin)
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1" {
		return true
	}

	slog.Warn("rejected websocket connection", "origin", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true, // Enable per-message deflate compression
}

// ServerMessage represents a message from server to viewer
type ServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// HoledEvent is sent once the ball drops
type HoledEvent struct {
	Strokes int32     `json:"strokes"`
	Time    time.Time `json:"time"`
}

// Client represents a connected viewer
type Client struct {
	ID     int
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// Server fans shot reports out to every connected viewer
type Server struct {
	mu         sync.RWMutex
	clients    map[int]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
	history    []game.ShotReport
	nextID     int
	published  int
	logger     *slog.Logger
	done       chan struct{} // Closed when Run returns
}

// NewServer creates a viewer hub. Call Run to start delivering messages.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		clients:    make(map[int]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ServerMessage, sendBuffer),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run delivers client events and broadcasts until ctx is done. It must be called once.
func (s *Server) Run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			for id, client := range s.clients {
				delete(s.clients, id)
				close(client.send)
			}
			s.mu.Unlock()
			return

		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			backlog := append([]game.ShotReport(nil), s.history...)
			s.mu.Unlock()
			client.send <- ServerMessage{Type: MsgTypeHistory, Data: backlog}
			s.logger.Info("viewer connected", "client", client.ID)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.mu.Unlock()
			s.logger.Info("viewer disconnected", "client", client.ID)

		case message := <-s.broadcast:
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
					// Successfully sent
				default:
					// Client send channel is full, skip this message
					s.logger.Warn("viewer send buffer full, skipping broadcast", "client", client.ID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// PublishShot records a shot and broadcasts it. It never blocks; when the broadcast
// queue is full the live update is dropped but the shot stays in the history.
func (s *Server) PublishShot(report game.ShotReport) {
	s.mu.Lock()
	s.history = append(s.history, report)
	if len(s.history) > HistorySize {
		s.history = s.history[len(s.history)-HistorySize:]
	}
	s.published++
	s.mu.Unlock()

	s.enqueue(ServerMessage{Type: MsgTypeShot, Data: report})
}

// PublishHoled announces that the ball went in
func (s *Server) PublishHoled(strokes int32) {
	s.enqueue(ServerMessage{Type: MsgTypeHoled, Data: HoledEvent{Strokes: strokes, Time: time.Now()}})
}

func (s *Server) enqueue(msg ServerMessage) {
	select {
	case s.broadcast <- msg:
	default:
		s.logger.Warn("broadcast queue full, dropping message", "type", msg.Type)
	}
}

// History returns a copy of the recent shots
func (s *Server) History() []game.ShotReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]game.ShotReport(nil), s.history...)
}

// HealthStatus is the /health response body
type HealthStatus struct {
	Status  string `json:"status"`
	Viewers int    `json:"viewers"`
	Shots   int    `json:"shots"`
}

// HandleHealth reports hub status
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := HealthStatus{Status: "ok", Viewers: len(s.clients), Shots: s.published}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// Handler returns the viewer routes: static page, /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	fsys, err := fs.Sub(staticFiles, "static")
	if err == nil {
		mux.Handle("/", http.FileServer(http.FS(fsys)))
	}
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/health", s.HandleHealth)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("viewer listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("viewer shutdown error", "error", err)
		return err
	}
	return nil
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade error", "error", err)
		return
	}

	s.mu.Lock()
	clientID := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := &Client{
		ID:     clientID,
		conn:   conn,
		send:   make(chan ServerMessage, sendBuffer),
		server: s,
	}

	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump keeps the connection alive and notices when the viewer goes away.
// Viewers are read-only; anything they send is discarded.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("websocket error", "client", c.ID, "error", err)
			}
			break
		}
	}
}

// writePump sends messages to the viewer
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
