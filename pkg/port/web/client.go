package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nhport/pkg/engine/event"
	"nhport/pkg/engine/input"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientMessage is what the browser sends.
type clientMessage struct {
	Type   string `json:"type"` // key, click, resize, quit
	Key    string `json:"key,omitempty"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// browserKeys maps KeyboardEvent.key names to input codes.
var browserKeys = map[string]string{
	"ArrowUp":    "arrow_up",
	"ArrowDown":  "arrow_down",
	"ArrowLeft":  "arrow_left",
	"ArrowRight": "arrow_right",
	"Home":       "home",
	"End":        "end",
	"PageUp":     "page_up",
	"PageDown":   "page_down",
	"Enter":      "enter",
	"Escape":     "escape",
	"Backspace":  "backspace",
	"Tab":        "tab",
	" ":          "space",
}

// client is one browser connection.
type client struct {
	srv   *Server
	conn  *websocket.Conn
	send  chan serverMessage
	count input.Counter
	log   *logrus.Entry
}

func newClient(srv *Server, conn *websocket.Conn) *client {
	return &client{
		srv:  srv,
		conn: conn,
		send: make(chan serverMessage, sendBuffer),
		log:  srv.log.WithField("remote", conn.RemoteAddr().String()),
	}
}

// enqueue queues msg without blocking. A client that cannot keep up
// misses frames; the next one supersedes them anyway.
func (c *client) enqueue(msg serverMessage) {
	select {
	case c.send <- msg:
	default:
		c.log.WithField("type", msg.Type).Debug("client slow, message dropped")
	}
}

// toEvent converts a browser message into a UI event.
func (c *client) toEvent(msg clientMessage) (event.UIEvent, bool) {
	switch msg.Type {
	case "key":
		code, ok := browserKeys[msg.Key]
		if !ok {
			code = msg.Key
		}
		if msg.Ctrl && len([]rune(msg.Key)) == 1 {
			code = "ctrl_" + strings.ToLower(msg.Key)
		}
		ev, ok := input.ToEvent(input.RawInput{Device: input.DeviceBrowser, Code: code, Timestamp: time.Now()})
		if !ok {
			return event.UIEvent{}, false
		}
		if ev.Kind == event.KindKeyPress {
			return c.count.Feed(ev.Key)
		}
		return ev, true
	case "click":
		return event.PointerClick(msg.X, msg.Y), true
	case "resize":
		return event.Resize(msg.Width, msg.Height), true
	case "quit":
		return event.Quit(), true
	}
	return event.UIEvent{}, false
}

// readPump reads browser input until the connection drops.
func (c *client) readPump() {
	defer func() {
		c.srv.unregister(c)
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		ev, ok := c.toEvent(msg)
		if !ok {
			continue
		}
		if err := c.srv.events.Push(ev); err != nil {
			return
		}
	}
}

// writePump sends queued messages and pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
