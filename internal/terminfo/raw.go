package terminfo

import (
	"fmt"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// RawScope holds the terminal in raw mode with the alternate screen active
// and the cursor hidden. Restore is idempotent and must run on every exit
// path; a menu that leaves the shell in raw mode is the one failure users
// never forgive.
type RawScope struct {
	fd   int
	prev *term.State
	out  *termenv.Output
	once sync.Once
}

// EnterRaw switches the input descriptor to raw mode and prepares the output
// for full-frame drawing.
func EnterRaw(in *os.File, out *termenv.Output) (*RawScope, error) {
	fd := int(in.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	out.AltScreen()
	out.HideCursor()
	return &RawScope{fd: fd, prev: prev, out: out}, nil
}

// Restore undoes raw mode, the alternate screen, and cursor hiding. Safe to
// call multiple times and from a signal handler.
func (s *RawScope) Restore() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.out.ShowCursor()
		s.out.ExitAltScreen()
		if s.prev != nil {
			_ = term.Restore(s.fd, s.prev)
		}
	})
}
