package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"nhport/pkg/engine/bridge"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/glyph"
	"nhport/pkg/engine/input"
	"nhport/pkg/engine/winproc"
	"nhport/pkg/port/window"
)

type recorder struct {
	events chan event.UIEvent
}

func newRecorder() *recorder {
	return &recorder{events: make(chan event.UIEvent, 16)}
}

func (r *recorder) Push(ev event.UIEvent) error {
	r.events <- ev
	return nil
}

func (r *recorder) Close() {}

func (r *recorder) next(t *testing.T) event.UIEvent {
	t.Helper()
	select {
	case ev := <-r.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event pushed")
		return event.UIEvent{}
	}
}

func startServer(t *testing.T) (*Server, *recorder, *httptest.Server) {
	t.Helper()
	rec := newRecorder()
	s := New(rec, "")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, rec, ts
}

func dial(t *testing.T, s *Server, ts *httptest.Server, want int) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for s.Clients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", s.Clients(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg serverMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func newModel() *window.Model {
	core := bridge.New(bridge.Config{})
	m := window.NewModel(core)
	mp := m.CreateWindow(winproc.KindMap)
	l := core.Layout()
	m.PrintGlyph(mp, 0, 0, l.CmapGlyph(glyph.CmapTLCorner))
	m.PrintGlyph(mp, 1, 0, l.CmapGlyph(glyph.CmapHWall))
	return m
}

func TestServer_IndexAndHealth(t *testing.T) {
	_, _, ts := startServer(t)

	for path, want := range map[string]string{"/": "<title>nhport</title>", "/health": "ok"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), want) {
			t.Errorf("GET %s = %d %q", path, resp.StatusCode, body)
		}
	}

	resp, err := http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /missing = %d", resp.StatusCode)
	}
}

func TestServer_KeysBecomeEvents(t *testing.T) {
	s, rec, ts := startServer(t)
	conn := dial(t, s, ts, 1)

	msgs := []clientMessage{
		{Type: "key", Key: "2"},
		{Type: "key", Key: "0"},
		{Type: "key", Key: "s"},
		{Type: "key", Key: "ArrowUp"},
		{Type: "key", Key: "x", Ctrl: true},
		{Type: "key", Key: "Shift"},
		{Type: "click", X: 3, Y: 4},
		{Type: "quit"},
	}
	for _, m := range msgs {
		if err := conn.WriteJSON(m); err != nil {
			t.Fatalf("WriteJSON() error = %v", err)
		}
	}

	want := []event.UIEvent{
		event.KeyPressCount('s', 20),
		event.KeyPress('k'),
		event.KeyPress(event.Ctrl('x')),
		event.PointerClick(3, 4),
		event.Quit(),
	}
	for i, w := range want {
		if got := rec.next(t); got != w {
			t.Errorf("event %d = %v, want %v", i, got, w)
		}
	}
}

func TestServer_CtrlChordIgnoresShift(t *testing.T) {
	input.Bind("ctrl_t", '_')
	defer input.ResetBindings()

	s, rec, ts := startServer(t)
	conn := dial(t, s, ts, 1)
	if err := conn.WriteJSON(clientMessage{Type: "key", Key: "T", Ctrl: true}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := rec.next(t); got != event.KeyPress('_') {
		t.Errorf("Ctrl+Shift+T = %v, want the ctrl_t binding", got)
	}
}

func TestServer_RenderBroadcasts(t *testing.T) {
	s, _, ts := startServer(t)
	conn := dial(t, s, ts, 1)

	m := newModel()
	m.SetDECGraphics(true)
	s.Render(m)

	msg := readMessage(t, conn)
	if msg.Type != "frame" || msg.Frame == nil {
		t.Fatalf("message = %+v", msg)
	}
	if !strings.HasPrefix(msg.Rows[0], "┌─") {
		t.Errorf("row 0 = %q", msg.Rows[0])
	}

	s.Bell()
	if msg := readMessage(t, conn); msg.Type != "bell" {
		t.Errorf("bell message = %+v", msg)
	}
}

func TestServer_LateClientGetsLatestFrame(t *testing.T) {
	s, _, ts := startServer(t)
	s.Render(newModel())

	conn := dial(t, s, ts, 1)
	msg := readMessage(t, conn)
	if msg.Type != "frame" || !strings.HasPrefix(msg.Rows[0], "--") {
		t.Errorf("first message = %+v", msg)
	}
}

func TestServer_ExitDisconnects(t *testing.T) {
	s, _, ts := startServer(t)
	conn := dial(t, s, ts, 1)

	s.Exit("")
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after Exit")
	}
	if s.Clients() != 0 {
		t.Errorf("clients = %d after Exit", s.Clients())
	}
}
