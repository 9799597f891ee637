package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/moor/list"
	"github.com/grovetools/moor/mark"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(0).Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingLeft(1)
)

// Options configure a quick-menu invocation.
type Options struct {
	Title     string
	MaxHeight int
	// OnSelect runs after the menu closes with a chosen item.
	OnSelect func(mark.Item)
}

// Model is the Bubble Tea model for the quick menu. Deletions and moves
// mutate the underlying list directly, so listeners (notably the MRU
// write-back) observe every edit as it happens.
type Model struct {
	list     *list.List
	opts     Options
	keys     KeyMap
	cursor   int
	selected mark.Item
	quitting bool
}

// NewModel builds a menu over the given list.
func NewModel(l *list.List, opts Options) Model {
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = 12
	}
	if opts.Title == "" {
		opts.Title = l.Name()
	}
	return Model{list: l, opts: opts, keys: DefaultKeyMap()}
}

// Selected returns the item chosen by the user, or nil when the menu was
// dismissed.
func (m Model) Selected() mark.Item {
	return m.selected
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) clampCursor() {
	if m.cursor >= m.list.Len() {
		m.cursor = m.list.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Select):
		if item, err := m.list.At(m.cursor); err == nil {
			m.selected = item
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Delete):
		if m.list.Len() > 0 {
			_, _ = m.list.Remove(m.cursor)
			m.clampCursor()
		}
		if m.list.Len() == 0 {
			m.quitting = true
			return m, tea.Quit
		}

	case key.Matches(keyMsg, m.keys.MoveUp):
		if m.cursor > 0 {
			_ = m.list.Reorder(swapPermutation(m.list.Len(), m.cursor, m.cursor-1))
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.MoveDown):
		if m.cursor < m.list.Len()-1 {
			_ = m.list.Reorder(swapPermutation(m.list.Len(), m.cursor, m.cursor+1))
			m.cursor++
		}
	}

	return m, nil
}

// swapPermutation returns the identity permutation of length n with i and j
// exchanged.
func swapPermutation(n, i, j int) []int {
	perm := make([]int, n)
	for k := range perm {
		perm[k] = k
	}
	perm[i], perm[j] = perm[j], perm[i]
	return perm
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.opts.Title))
	b.WriteString("\n")

	items := m.list.Items()
	start, end := viewport(len(items), m.cursor, m.opts.MaxHeight)
	for i := start; i < end; i++ {
		label := fmt.Sprintf("%d  %s", i+1, items[i].Value())
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(label))
		} else {
			b.WriteString(itemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter jump · d delete · J/K move · q close"))
	b.WriteString("\n")
	return b.String()
}

// viewport returns the visible window around the cursor.
func viewport(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > n {
		end = n
		start = end - height
	}
	return start, end
}
