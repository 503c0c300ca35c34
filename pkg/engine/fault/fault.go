// Package fault holds the fatal error type raised when the engine and a
// window port break their calling contract.
package fault

import "fmt"

// ProtocolViolation reports a contract breach between the engine and the
// port, such as an out-of-range glyph or a window call from the wrong
// goroutine. It is never recovered from in production code.
type ProtocolViolation struct {
	Op     string
	Detail string
}

func (p *ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation in %s: %s", p.Op, p.Detail)
}

// Violate panics with a ProtocolViolation.
func Violate(op, format string, args ...any) {
	panic(&ProtocolViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
