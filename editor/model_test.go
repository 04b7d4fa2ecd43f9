package editor

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/content"
)

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Text: "a\nb\nc"})
	m = m.Blur()

	m = m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 20, Height: 3})
	if got := lipgloss.Height(m.View()); got != 3 {
		t.Fatalf("height after WindowSizeMsg: got %d, want %d", got, 3)
	}
}

func TestModel_StatusAndPromptShareFooterRow(t *testing.T) {
	m := New(Config{Text: "a\nb\nc", ShowStatus: true})
	m = m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height with status: got %d, want %d", got, 4)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 4 || !strings.HasPrefix(stripANSI(lines[3]), "link: ") {
		t.Fatalf("prompt row: got %q", lines)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	c := content.FromBlocks(
		content.NewBlock("1", content.BlockHeaderOne, "one"),
		content.NewBlock("2", "", "two"),
		content.NewBlock("3", content.BlockUnorderedListItem, "three"),
		content.NewBlock("4", "", "four"),
	)
	m := New(Config{Content: c})
	m = m.Blur()
	m = m.SetSize(8, 3)

	got := strings.Split(m.View(), "\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}

	want := []string{
		"# one",
		"two",
		"• three",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", want) {
		t.Fatalf("unexpected view:\n got: %q\nwant: %q", got, want)
	}
}

func TestModel_BlurIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"}).Blur()
	m = keys(m, runes("x"))
	if got := m.State().Content().PlainText(); got != "ab" {
		t.Fatalf("blurred editor accepted input: %q", got)
	}
	if m.Focused() {
		t.Fatalf("Focused after Blur")
	}
	if !m.Focus().Focused() {
		t.Fatalf("not Focused after Focus")
	}
}

func TestUpdateMouse_ClickAndDragSelect(t *testing.T) {
	m := New(Config{Text: "hello\nxy"})
	m = m.SetSize(20, 2)
	k := firstKey(m)

	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	caretAt(t, m, k, 2)

	m, _ = m.Update(tea.MouseMsg{X: 40, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	sel := m.State().Selection()
	if sel.AnchorOffset != 2 || sel.FocusOffset != 5 || sel.FocusKey != k {
		t.Fatalf("drag selection: got %+v", sel)
	}

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion})
	if got := m.State().Selection().FocusOffset; got != 5 {
		t.Fatalf("motion after release moved selection: focus %d", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Shift: true})
	sel = m.State().Selection()
	if sel.AnchorKey != k || sel.AnchorOffset != 2 || sel.FocusKey != m.State().Content().LastBlock().Key() || sel.FocusOffset != 1 {
		t.Fatalf("shift-click selection: got %+v", sel)
	}
}

func TestUpdateMouse_WheelHonorsScrollPolicy(t *testing.T) {
	text := "a\nb\nc\nd\ne\nf"
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	m := New(Config{Text: text}).SetSize(10, 2)
	m, _ = m.Update(wheel)
	if got := stripANSI(strings.Split(m.View(), "\n")[0]); strings.TrimSpace(got) != "d" {
		t.Fatalf("wheel did not scroll with ScrollAllowManual: first row %q", got)
	}

	m = New(Config{Text: text, ScrollPolicy: ScrollFollowCursorOnly}).SetSize(10, 2)
	m, _ = m.Update(wheel)
	if got := stripANSI(strings.Split(m.View(), "\n")[0]); !strings.Contains(got, "a") {
		t.Fatalf("wheel scrolled with ScrollFollowCursorOnly: first row %q", got)
	}
}
