package input

import (
	"testing"

	"nhport/pkg/engine/event"
)

func TestToEvent(t *testing.T) {
	t.Cleanup(ResetBindings)

	tests := []struct {
		code string
		want event.UIEvent
		ok   bool
	}{
		{"arrow_up", event.KeyPress('k'), true},
		{"gamepad_b", event.KeyPress(event.KeyEscape), true},
		{"s", event.KeyPress('s'), true},
		{"ctrl_x", event.KeyPress(event.Ctrl('x')), true},
		{CodeInterrupt, event.Quit(), true},
		{CodeClose, event.Quit(), true},
		{"f13", event.UIEvent{}, false},
		{"", event.UIEvent{}, false},
	}
	for _, tt := range tests {
		got, ok := ToEvent(RawInput{Device: DeviceKeyboard, Code: tt.code})
		if ok != tt.ok || got != tt.want {
			t.Errorf("ToEvent(%q) = %v, %v; want %v, %v", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBind(t *testing.T) {
	t.Cleanup(ResetBindings)

	Bind("f1", '?')
	if k, ok := KeyFor("f1"); !ok || k != '?' {
		t.Errorf("KeyFor(f1) = %v, %v", k, ok)
	}
	codes := CodesFor('k')
	want := []string{"arrow_up", "gamepad_dpad_up"}
	if len(codes) != len(want) || codes[0] != want[0] || codes[1] != want[1] {
		t.Errorf("CodesFor('k') = %v, want %v", codes, want)
	}

	ResetBindings()
	if _, ok := KeyFor("f1"); ok {
		t.Error("f1 still bound after ResetBindings")
	}
}

func TestCounter(t *testing.T) {
	var c Counter
	for _, k := range []event.Key{'2', '0'} {
		if _, ok := c.Feed(k); ok {
			t.Fatalf("digit %q emitted an event", rune(k))
		}
	}
	if c.Pending() != 20 {
		t.Errorf("Pending() = %d, want 20", c.Pending())
	}
	ev, ok := c.Feed('s')
	if !ok || ev != event.KeyPressCount('s', 20) {
		t.Errorf("Feed('s') = %v, %v", ev, ok)
	}
	ev, ok = c.Feed('s')
	if !ok || ev.Count != 0 {
		t.Errorf("count carried over: %v", ev)
	}
	// A leading zero is a key, not a count.
	if ev, ok := c.Feed('0'); !ok || ev.Key != '0' {
		t.Errorf("Feed('0') = %v, %v", ev, ok)
	}
}
