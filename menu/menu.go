// Package menu renders a navigable quick menu over a list, real or virtual.
// It is the presentation layer of moor: the core hands it a list and a
// selection callback and stays unaware of terminals.
package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/moor/list"
	"github.com/grovetools/moor/logging"
)

// Toggle shows the quick menu for the given list. A nil or empty list is a
// no-op: nothing is rendered. When the user picks an item, opts.OnSelect runs
// after the program has released the terminal.
func Toggle(l *list.List, opts Options) error {
	if l == nil || l.Len() == 0 {
		logging.NewLogger("menu").Debug("nothing to show, skipping menu")
		return nil
	}

	program := tea.NewProgram(NewModel(l, opts))
	final, err := program.Run()
	if err != nil {
		return err
	}

	model, ok := final.(Model)
	if !ok {
		return nil
	}
	if item := model.Selected(); item != nil && opts.OnSelect != nil {
		opts.OnSelect(item)
	}
	return nil
}
