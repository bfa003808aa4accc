// Package app wires the menu runtime together: preflight checks, the
// raw-mode scope, and the read-decode-transition-render loop.
package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"shellmate/internal/input"
	"shellmate/internal/logging/events"
	"shellmate/internal/menu"
	"shellmate/internal/store"
	"shellmate/internal/terminfo"
)

// Config describes user-provided application options.
type Config struct {
	MenuType     string
	StorePath    string
	EscTimeoutMS int
	ForceASCII   bool
	NoColor      bool
	Verbose      bool
}

// Minimum usable frame. Below this the menu refuses to start rather than
// drawing something unreadable.
const (
	MinWidth  = 44
	MinHeight = 12
)

// ErrNoTTY is returned before raw mode is ever entered, so a piped
// invocation can never corrupt terminal state.
var ErrNoTTY = errors.New("standard input/output is not a terminal")

// ErrUnknownMenu marks a bad menu_type argument; a usage error, not a
// runtime one.
var ErrUnknownMenu = errors.New("unknown menu type")

// SizeError reports a terminal below the minimum dimensions.
type SizeError struct {
	Width, Height int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("terminal too small (%dx%d, need at least %dx%d)", e.Width, e.Height, MinWidth, MinHeight)
}

// Run executes one menu session. All raw-mode acquisition happens after
// every preflight check has passed, and release is guaranteed on normal
// exit, error, and signal paths alike.
func Run(cfg Config) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNoTTY
	}

	caps := terminfo.Detect()
	if cfg.ForceASCII {
		caps.Unicode = false
	}
	if cfg.NoColor {
		caps.Color = false
	}
	if caps.Width < MinWidth || caps.Height < MinHeight {
		return &SizeError{Width: caps.Width, Height: caps.Height}
	}

	root, err := menu.Builtin(cfg.MenuType)
	if err != nil {
		return fmt.Errorf("%w %q", ErrUnknownMenu, cfg.MenuType)
	}

	storePath := cfg.StorePath
	if storePath == "" {
		storePath, err = store.DefaultPath()
		if err != nil {
			return err
		}
	}
	st, err := store.Open(storePath)
	if err != nil {
		return err
	}

	tree := menu.NewTree(root, st)

	out := termenv.NewOutput(os.Stdout)
	raw, err := terminfo.EnterRaw(os.Stdin, out)
	if err != nil {
		return err
	}
	defer raw.Restore()
	events.App.RawMode(true)

	// A signal must restore the shell's terminal before the process dies;
	// leaving raw mode armed is the one failure users cannot recover from
	// without blindly typing reset.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			raw.Restore()
			events.App.Exit(1)
			os.Exit(1)
		}
	}()

	escTimeout := time.Duration(cfg.EscTimeoutMS) * time.Millisecond
	if escTimeout <= 0 {
		escTimeout = input.DefaultEscTimeout
	}

	src := input.NewReaderSource(os.Stdin)
	defer src.Close()
	dec := input.NewDecoder(src, escTimeout, input.DefaultPollTimeout)

	s := newSession(cfg, tree, st, caps, out)
	return s.loop(dec)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// currentSize re-probes the terminal; resizes are picked up on the next
// loop iteration rather than via SIGWINCH.
func currentSize(caps terminfo.Capabilities) terminfo.Capabilities {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		caps.Width = w
		caps.Height = h
	}
	return caps
}
