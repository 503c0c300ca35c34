package terminal

import (
	"bufio"
	"io"
	"time"

	"nhport/pkg/engine/input"
)

// Decoder reads raw-mode terminal bytes and names each key.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks for the next key. Escape sequences that arrive in one read
// are decoded as a unit; a lone ESC is reported as "escape".
func (d *Decoder) Next() (input.RawInput, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return input.RawInput{}, err
	}
	return input.RawInput{
		Device:    input.DeviceTerminal,
		Code:      d.decode(b),
		Timestamp: time.Now(),
	}, nil
}

func (d *Decoder) decode(b byte) string {
	switch {
	case b == 0x1b:
		return d.escape()
	case b == 3:
		return input.CodeInterrupt
	case b == '\r' || b == '\n':
		return "enter"
	case b == 127 || b == 8:
		return "backspace"
	case b == '\t':
		return "tab"
	case b < 0x20:
		return "ctrl_" + string(rune('a'+b-1))
	case b < 0x80:
		return string(rune(b))
	}
	// UTF-8 lead byte: hand the whole rune back.
	if err := d.r.UnreadByte(); err == nil {
		if r, _, err := d.r.ReadRune(); err == nil {
			return string(r)
		}
	}
	return ""
}

func (d *Decoder) escape() string {
	if d.r.Buffered() == 0 {
		return "escape"
	}
	b2, _ := d.r.ReadByte()
	// CSI (ESC [) and SS3 (ESC O) sequences.
	if b2 != '[' && b2 != 'O' {
		d.r.UnreadByte()
		return "escape"
	}
	b3, err := d.r.ReadByte()
	if err != nil {
		return ""
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	case 'H':
		return "home"
	case 'F':
		return "end"
	}
	if b3 >= '0' && b3 <= '9' {
		seq := []byte{b3}
		for {
			c, err := d.r.ReadByte()
			if err != nil {
				return ""
			}
			if c == '~' {
				break
			}
			seq = append(seq, c)
		}
		switch string(seq) {
		case "1", "7":
			return "home"
		case "4", "8":
			return "end"
		case "5":
			return "page_up"
		case "6":
			return "page_down"
		}
	}
	// Unknown sequence: discarded.
	return ""
}
