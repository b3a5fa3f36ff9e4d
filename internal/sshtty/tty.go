// Package sshtty adapts a gliderlabs/ssh session to tcell so every SSH
// client gets its own screen.
package sshtty

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is used when the client sends no TERM or one we do not trust.
const DefaultTerm = "xterm-256color"

// allowedTerms lists terminal types passed through to terminfo lookup.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// TermFor picks the terminal type for a session: the PTY request's TERM,
// then TERM from environ, then DefaultTerm. Only allow-listed names pass.
func TermFor(pty gossh.Pty, environ []string) string {
	if allowedTerms[pty.Term] {
		return pty.Term
	}
	return TermFromEnviron(environ)
}

// TermFromEnviron returns the client's TERM from environ when it is on the
// allow list, DefaultTerm otherwise.
func TermFromEnviron(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok {
			if allowedTerms[term] {
				return term
			}
			break
		}
	}
	return DefaultTerm
}

// window is the client's last reported size plus the resize hook tcell
// installs. Updates arrive on the SSH window-change goroutine.
type window struct {
	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
}

func (w *window) get() tcell.WindowSize {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// set stores win and returns the hook to call, if any.
func (w *window) set(win gossh.Window) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.size = tcell.WindowSize{Width: win.Width, Height: win.Height}
	return w.onResize
}

func (w *window) hook(cb func()) {
	w.mu.Lock()
	w.onResize = cb
	w.mu.Unlock()
}

// SessionTty implements tcell.Tty over one SSH session. Reads and writes go
// straight to the channel; Start, Stop and Drain have nothing to do because
// the server handler owns the channel's lifetime.
type SessionTty struct {
	session gossh.Session
	win     window
	changes <-chan gossh.Window
}

// New wraps s. pty carries the initial size; changes delivers resizes.
func New(s gossh.Session, pty gossh.Pty, changes <-chan gossh.Window) *SessionTty {
	t := &SessionTty{session: s, changes: changes}
	t.win.set(pty.Window)
	return t
}

func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *SessionTty) Close() error { return t.session.Close() }
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the size the client last reported.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	return t.win.get(), nil
}

// NotifyResize installs cb and starts following window changes until the
// session closes the channel.
func (t *SessionTty) NotifyResize(cb func()) {
	t.win.hook(cb)
	go func() {
		for win := range t.changes {
			if cb := t.win.set(win); cb != nil {
				cb()
			}
		}
	}()
}
