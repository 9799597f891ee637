// Package nvimhost adapts a Neovim instance to the moor host interface over
// RPC. View-left signals arrive as notifications; the exit signal uses a
// blocking request so pending state is flushed before Neovim finishes
// shutting down.
package nvimhost

import (
	"fmt"

	"github.com/neovim/go-client/nvim"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/moor/errors"
	"github.com/grovetools/moor/logging"
)

const (
	viewLeftMethod = "moor_view_left"
	exitMethod     = "moor_exit"
)

// Adapter implements host.Host for a connected Neovim instance.
type Adapter struct {
	v   *nvim.Nvim
	log *logrus.Entry
}

// New wraps an already-attached client.
func New(v *nvim.Nvim) *Adapter {
	return &Adapter{v: v, log: logging.NewLogger("nvimhost")}
}

// Dial connects to a running Neovim instance, typically via the address in
// $NVIM or v:servername.
func Dial(addr string) (*Adapter, error) {
	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, errors.HostAttach(err)
	}
	return New(v), nil
}

// Close terminates the RPC connection.
func (a *Adapter) Close() error {
	return a.v.Close()
}

// OnViewLeft implements host.Host. The handler fires on every BufLeave as a
// fire-and-forget notification.
func (a *Adapter) OnViewLeft(fn func()) error {
	if err := a.v.RegisterHandler(viewLeftMethod, func() {
		fn()
	}); err != nil {
		return errors.HostAttach(err)
	}
	cmd := fmt.Sprintf("autocmd moor BufLeave * call rpcnotify(%d, '%s')", a.v.ChannelID(), viewLeftMethod)
	return a.autocmd(cmd)
}

// OnExit implements host.Host. VimLeavePre issues a blocking rpcrequest, so
// Neovim waits for fn to finish before it exits.
func (a *Adapter) OnExit(fn func()) error {
	if err := a.v.RegisterHandler(exitMethod, func() error {
		fn()
		return nil
	}); err != nil {
		return errors.HostAttach(err)
	}
	cmd := fmt.Sprintf("autocmd moor VimLeavePre * silent! call rpcrequest(%d, '%s')", a.v.ChannelID(), exitMethod)
	return a.autocmd(cmd)
}

// autocmd installs a command inside the moor augroup, creating the group on
// first use.
func (a *Adapter) autocmd(cmd string) error {
	if err := a.v.Command("augroup moor | augroup END"); err != nil {
		return errors.HostAttach(err)
	}
	if err := a.v.Command(cmd); err != nil {
		return errors.HostAttach(err)
	}
	a.log.WithField("autocmd", cmd).Debug("registered host hook")
	return nil
}

// Edit opens the given file in the attached instance and moves the cursor.
// Row is 1-based, col 0-based, matching nvim_win_set_cursor.
func (a *Adapter) Edit(path string, row, col int) error {
	if err := a.v.Command(fmt.Sprintf("edit %s", path)); err != nil {
		return err
	}
	if row > 0 {
		win, err := a.v.CurrentWindow()
		if err != nil {
			return err
		}
		return a.v.SetWindowCursor(win, [2]int{row, col})
	}
	return nil
}
