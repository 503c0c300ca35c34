// Package web is the browser port. Frames go to every connected browser
// as JSON over a websocket; keys and clicks come back the same way. The
// engine keeps running while no browser is connected and a reconnecting
// browser gets the newest frame at once.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/event"
	"nhport/pkg/engine/logger"
	"nhport/pkg/port/window"
)

//go:embed index.html
var indexHTML []byte

// Pusher receives UI events. bridge.Core satisfies it.
type Pusher interface {
	Push(ev event.UIEvent) error
	Close()
}

// serverMessage is what the browser receives.
type serverMessage struct {
	Type  string        `json:"type"` // frame, bell, print
	Frame *window.Frame `json:"frame,omitempty"`
	// Rows holds the map as drawn characters, one string per row.
	Rows []string `json:"rows,omitempty"`
	Text string   `json:"text,omitempty"`
}

func frameMessage(f *window.Frame) serverMessage {
	rows := make([]string, f.Height)
	for y := range rows {
		line := make([]rune, f.Width)
		for x := range line {
			line[x] = f.At(x, y).Rune(f.DECGraphics)
		}
		rows[y] = string(line)
	}
	return serverMessage{Type: "frame", Frame: f, Rows: rows}
}

// Server is a window.Surface that serves browsers.
type Server struct {
	addr   string
	events Pusher
	latest *window.Latest

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	httpSrv *http.Server
	log     *logrus.Entry
}

var _ window.Surface = (*Server)(nil)

// New creates a server that will listen on addr once Init is called.
func New(events Pusher, addr string) *Server {
	return &Server{
		addr:    addr,
		events:  events,
		latest:  window.NewLatest(),
		clients: make(map[*client]struct{}),
		log:     logger.Log.WithField("port", "web"),
	}
}

// Handler returns the HTTP routes: the page, the websocket and a health
// check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Init starts listening. It fails if the address cannot be bound.
func (s *Server) Init() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.httpSrv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	s.log.WithField("addr", ln.Addr().String()).Info("web port listening")

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("web server stopped")
			s.events.Close()
		}
	}()
	return nil
}

// Exit disconnects every browser and stops the server.
func (s *Server) Exit(msg string) {
	if msg != "" {
		s.broadcast(serverMessage{Type: "print", Text: msg})
	}
	s.mu.Lock()
	s.closed = true
	for c := range s.clients {
		close(c.send)
		delete(s.clients, c)
	}
	s.mu.Unlock()

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.log.WithError(err).Warn("web server shutdown")
		}
	}
	if msg != "" {
		fmt.Fprintln(os.Stdout, msg)
	}
}

// Render sends a snapshot of m to every browser.
func (s *Server) Render(m *window.Model) {
	f := m.Snapshot()
	s.latest.Publish(f)
	s.broadcast(frameMessage(f))
}

func (s *Server) Bell() {
	s.broadcast(serverMessage{Type: "bell"})
}

func (s *Server) RawPrint(text string) {
	s.broadcast(serverMessage{Type: "print", Text: text})
}

// Clients returns the number of connected browsers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) broadcast(msg serverMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.enqueue(msg)
	}
}

func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	if f := s.latest.Load(); f != nil {
		c.enqueue(frameMessage(f))
	}
	s.log.WithField("clients", len(s.clients)).Info("browser connected")
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	s.log.WithField("clients", len(s.clients)).Info("browser disconnected")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	c := newClient(s, conn)
	if !s.register(c) {
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
