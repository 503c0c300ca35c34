package terminal

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func decodeAll(t *testing.T, in string) []string {
	t.Helper()
	d := NewDecoder(strings.NewReader(in))
	var codes []string
	for {
		raw, err := d.Next()
		if errors.Is(err, io.EOF) {
			return codes
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		codes = append(codes, raw.Code)
	}
}

func TestDecoder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "hjk", []string{"h", "j", "k"}},
		{"arrows", "\x1b[A\x1b[B\x1bOC\x1b[D", []string{"arrow_up", "arrow_down", "arrow_right", "arrow_left"}},
		{"paging", "\x1b[5~\x1b[6~\x1b[H\x1b[4~", []string{"page_up", "page_down", "home", "end"}},
		{"lone escape", "\x1b", []string{"escape"}},
		{"escape then key", "\x1bq", []string{"escape", "q"}},
		{"interrupt", "\x03", []string{"interrupt"}},
		{"enter", "\r\n", []string{"enter", "enter"}},
		{"control", "\x18\x12", []string{"ctrl_x", "ctrl_r"}},
		{"backspace", "\x7f", []string{"backspace"}},
		{"unknown sequence", "\x1b[Za", []string{"", "a"}},
		{"utf8", "é", []string{"é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(t, tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("codes = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("code[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
