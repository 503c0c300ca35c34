package window

import (
	"strings"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
	"nhport/pkg/engine/winproc"
)

const accelerators = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Menu is a menu under construction or being answered.
type Menu struct {
	Prompt string
	Items  []winproc.MenuItem
	How    winproc.How
	Cursor int

	selected map[int]bool
	nextAcc  int
}

// Add appends an item, assigning the next free accelerator to selectable
// items that have none.
func (m *Menu) Add(item winproc.MenuItem) {
	if item.Selectable() && item.Accelerator == 0 && m.nextAcc < len(accelerators) {
		item.Accelerator = rune(accelerators[m.nextAcc])
		m.nextAcc++
	}
	m.Items = append(m.Items, item)
}

// Begin resets the selection for a new SelectMenu call.
func (m *Menu) Begin(how winproc.How) {
	m.How = how
	m.selected = make(map[int]bool)
	m.Cursor = 0

	// Find first selectable item
	for i, item := range m.Items {
		if item.Selectable() {
			m.Cursor = i
			break
		}
	}
	for i, item := range m.Items {
		if item.Selectable() && item.Preselected && how != winproc.PickNone {
			m.selected[i] = true
		}
	}
}

// Next moves the cursor to the next selectable item, wrapping around.
func (m *Menu) Next() {
	for i := m.Cursor + 1; i < len(m.Items); i++ {
		if m.Items[i].Selectable() {
			m.Cursor = i
			return
		}
	}
	for i := 0; i < m.Cursor; i++ {
		if m.Items[i].Selectable() {
			m.Cursor = i
			return
		}
	}
}

// Prev moves the cursor to the previous selectable item, wrapping around.
func (m *Menu) Prev() {
	for i := m.Cursor - 1; i >= 0; i-- {
		if m.Items[i].Selectable() {
			m.Cursor = i
			return
		}
	}
	for i := len(m.Items) - 1; i > m.Cursor; i-- {
		if m.Items[i].Selectable() {
			m.Cursor = i
			return
		}
	}
}

// Selected reports whether item i is picked.
func (m *Menu) Selected(i int) bool {
	return m.selected[i]
}

// Toggle flips item i. Headers cannot be picked.
func (m *Menu) Toggle(i int) {
	if i < 0 || i >= len(m.Items) || !m.Items[i].Selectable() {
		return
	}
	if m.selected == nil {
		m.selected = make(map[int]bool)
	}
	m.selected[i] = !m.selected[i]
}

// Picks returns the picked items in menu order.
func (m *Menu) Picks(count int) []winproc.MenuPick {
	var picks []winproc.MenuPick
	for i, item := range m.Items {
		if m.selected[i] {
			picks = append(picks, winproc.MenuPick{ID: item.ID, Count: count})
		}
	}
	return picks
}

func (m *Menu) indexOfAccel(k event.Key) int {
	for i, item := range m.Items {
		if item.Selectable() && event.Key(item.Accelerator) == k {
			return i
		}
	}
	return -1
}

func (m *Menu) indexOfID(id int) int {
	for i, item := range m.Items {
		if item.Selectable() && item.ID == id {
			return i
		}
	}
	return -1
}

// Handle applies one command to the menu. done reports that the menu is
// finished; picks is nil when it was cancelled or nothing was chosen.
func (m *Menu) Handle(cmd command.EngineCommand) (done bool, picks []winproc.MenuPick) {
	count := 1
	if cmd.Count > 1 {
		count = cmd.Count
	}

	switch cmd.Code {
	case command.Quit, command.Cancel:
		return true, nil
	case command.Confirm:
		switch m.How {
		case winproc.PickOne:
			if m.Cursor < len(m.Items) && m.Items[m.Cursor].Selectable() {
				return true, []winproc.MenuPick{{ID: m.Items[m.Cursor].ID, Count: count}}
			}
			return true, nil
		case winproc.PickAny:
			return true, m.Picks(count)
		}
		return true, nil
	case command.MenuPick:
		return m.choose(m.indexOfID(cmd.MenuID), count)
	}

	if m.How == winproc.PickNone {
		// Any key dismisses a display-only menu.
		return true, nil
	}

	if i := m.indexOfAccel(cmd.Key); i >= 0 {
		return m.choose(i, count)
	}

	switch {
	case cmd.Code == command.Move && cmd.Dir == command.North:
		m.Prev()
	case cmd.Code == command.Move && cmd.Dir == command.South:
		m.Next()
	case cmd.Key == ' ' && m.How == winproc.PickAny:
		m.Toggle(m.Cursor)
	case cmd.Key == '.' && m.How == winproc.PickAny:
		if m.selected == nil {
			m.selected = make(map[int]bool)
		}
		for i := range m.Items {
			if m.Items[i].Selectable() {
				m.selected[i] = true
			}
		}
	case cmd.Key == '-' && m.How == winproc.PickAny:
		m.selected = make(map[int]bool)
	}
	return false, nil
}

func (m *Menu) choose(i, count int) (bool, []winproc.MenuPick) {
	if i < 0 {
		return false, nil
	}
	m.Cursor = i
	switch m.How {
	case winproc.PickNone:
		return true, nil
	case winproc.PickOne:
		return true, []winproc.MenuPick{{ID: m.Items[i].ID, Count: count}}
	}
	m.Toggle(i)
	return false, nil
}

// Render lays the menu out as plain text rows, marking the cursor with
// '>' and picked items with '+'.
func (m *Menu) Render() []string {
	var rows []string
	if m.Prompt != "" {
		rows = append(rows, m.Prompt)
	}
	for i, item := range m.Items {
		if !item.Selectable() {
			rows = append(rows, item.Text)
			continue
		}
		var b strings.Builder
		if i == m.Cursor && m.How != winproc.PickNone {
			b.WriteString("> ")
		} else {
			b.WriteString("  ")
		}
		b.WriteRune(item.Accelerator)
		if m.selected[i] {
			b.WriteString(" + ")
		} else {
			b.WriteString(" - ")
		}
		b.WriteString(item.Text)
		rows = append(rows, b.String())
	}
	return rows
}
