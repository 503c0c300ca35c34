package winproc

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/fault"
	"nhport/pkg/engine/glyph"
)

// GoroutineID returns the id of the calling goroutine, parsed from the
// runtime stack header.
func GoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Guard pins window-procs calls to a single goroutine.
type Guard struct {
	owner atomic.Uint64
}

// Bind makes the calling goroutine the owner. Rebinding from another
// goroutine is a protocol violation.
func (g *Guard) Bind() {
	id := GoroutineID()
	if !g.owner.CompareAndSwap(0, id) && g.owner.Load() != id {
		fault.Violate("winproc.Bind", "already bound to goroutine %d, called from %d", g.owner.Load(), id)
	}
}

// Check panics with a ProtocolViolation unless called from the owner. An
// unbound guard binds to the first caller.
func (g *Guard) Check(op string) {
	id := GoroutineID()
	if g.owner.CompareAndSwap(0, id) {
		return
	}
	if owner := g.owner.Load(); owner != id {
		fault.Violate(op, "called from goroutine %d, engine runs on %d", id, owner)
	}
}

type guarded struct {
	p WindowProcs
	g *Guard
}

// Guarded wraps p so that every call is checked against g.
func Guarded(p WindowProcs, g *Guard) WindowProcs {
	return &guarded{p: p, g: g}
}

func (w *guarded) InitWindows() error {
	w.g.Check("InitWindows")
	return w.p.InitWindows()
}

func (w *guarded) ExitWindows(msg string) {
	w.g.Check("ExitWindows")
	w.p.ExitWindows(msg)
}

func (w *guarded) CreateWindow(kind Kind) WinID {
	w.g.Check("CreateWindow")
	return w.p.CreateWindow(kind)
}

func (w *guarded) ClearWindow(win WinID) {
	w.g.Check("ClearWindow")
	w.p.ClearWindow(win)
}

func (w *guarded) DisplayWindow(win WinID, blocking bool) {
	w.g.Check("DisplayWindow")
	w.p.DisplayWindow(win, blocking)
}

func (w *guarded) DestroyWindow(win WinID) {
	w.g.Check("DestroyWindow")
	w.p.DestroyWindow(win)
}

func (w *guarded) Curs(win WinID, x, y int) {
	w.g.Check("Curs")
	w.p.Curs(win, x, y)
}

func (w *guarded) PutStr(win WinID, attr Attr, text string) {
	w.g.Check("PutStr")
	w.p.PutStr(win, attr, text)
}

func (w *guarded) PrintGlyph(win WinID, x, y int, g glyph.Glyph) {
	w.g.Check("PrintGlyph")
	w.p.PrintGlyph(win, x, y, g)
}

func (w *guarded) ClipAround(x, y int) {
	w.g.Check("ClipAround")
	w.p.ClipAround(x, y)
}

func (w *guarded) StartMenu(win WinID) {
	w.g.Check("StartMenu")
	w.p.StartMenu(win)
}

func (w *guarded) AddMenu(win WinID, item MenuItem) {
	w.g.Check("AddMenu")
	w.p.AddMenu(win, item)
}

func (w *guarded) EndMenu(win WinID, prompt string) {
	w.g.Check("EndMenu")
	w.p.EndMenu(win, prompt)
}

func (w *guarded) SelectMenu(win WinID, how How) []MenuPick {
	w.g.Check("SelectMenu")
	return w.p.SelectMenu(win, how)
}

func (w *guarded) GetCommand() command.EngineCommand {
	w.g.Check("GetCommand")
	return w.p.GetCommand()
}

func (w *guarded) GetExtendedCommand() (string, bool) {
	w.g.Check("GetExtendedCommand")
	return w.p.GetExtendedCommand()
}

func (w *guarded) YesNo(prompt, choices string, def rune) rune {
	w.g.Check("YesNo")
	return w.p.YesNo(prompt, choices, def)
}

func (w *guarded) Bell() {
	w.g.Check("Bell")
	w.p.Bell()
}

func (w *guarded) RawPrint(text string) {
	w.g.Check("RawPrint")
	w.p.RawPrint(text)
}

func (w *guarded) SetDECGraphics(enabled bool) {
	w.g.Check("SetDECGraphics")
	SetDECGraphics(w.p, enabled)
}
