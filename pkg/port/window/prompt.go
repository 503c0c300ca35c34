package window

import (
	"strings"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
)

// AnswerYesNo interprets cmd as an answer to a one-key question. ok is
// false while the key is not an acceptable answer. Cancel answers 'q' or
// 'n' when offered, otherwise def; Enter and Quit answer def.
func AnswerYesNo(cmd command.EngineCommand, choices string, def rune) (answer rune, ok bool) {
	switch cmd.Code {
	case command.Quit, command.Confirm:
		return def, true
	case command.Cancel:
		switch {
		case strings.ContainsRune(choices, 'q'):
			return 'q', true
		case strings.ContainsRune(choices, 'n'):
			return 'n', true
		}
		return def, true
	}
	if cmd.Key <= 0 {
		return 0, false
	}
	r := rune(cmd.Key)
	if choices == "" {
		return r, true
	}
	if strings.ContainsRune(choices, r) {
		return r, true
	}
	// Answers are case-insensitive when only one case is offered.
	lower := []rune(strings.ToLower(string(r)))[0]
	if strings.ContainsRune(choices, lower) {
		return lower, true
	}
	return 0, false
}

// LineEditor collects a line of text from key commands.
type LineEditor struct {
	buf []rune
}

// Feed applies cmd. done is true once the line is finished; ok is false
// when it was cancelled.
func (e *LineEditor) Feed(cmd command.EngineCommand) (done, ok bool) {
	switch cmd.Code {
	case command.Quit, command.Cancel:
		e.buf = nil
		return true, false
	case command.Confirm:
		return true, true
	}
	switch {
	case cmd.Key == event.KeyBackspace || cmd.Key == 0x7f:
		if len(e.buf) > 0 {
			e.buf = e.buf[:len(e.buf)-1]
		}
	case cmd.Key >= 0x20:
		e.buf = append(e.buf, rune(cmd.Key))
	}
	return false, false
}

// Text returns the line so far.
func (e *LineEditor) Text() string {
	return string(e.buf)
}

// Complete returns the extended command the line so far uniquely
// identifies, or "".
func (e *LineEditor) Complete() string {
	if c, ok := command.LookupExtended(e.Text()); ok {
		return c.Name
	}
	return ""
}
