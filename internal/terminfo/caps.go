// Package terminfo detects what the attached terminal can do and manages the
// raw-mode scope for the menu session.
package terminfo

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Capabilities describes the terminal the menu is about to draw on. Detection
// never fails; the zero-ish fallback is ASCII borders, no color, 80x24.
type Capabilities struct {
	Color   bool
	Unicode bool
	Width   int
	Height  int
}

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// Detect queries the environment and the stdout descriptor. Degrades silently
// on every failure path; a terminal that cannot report a size still gets a
// usable capability set.
func Detect() Capabilities {
	caps := Capabilities{
		Color:   termenv.EnvColorProfile() != termenv.Ascii,
		Unicode: unicodeLocale(os.Environ()),
		Width:   fallbackWidth,
		Height:  fallbackHeight,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		caps.Width = w
		caps.Height = h
	}
	return caps
}

// unicodeLocale reports whether the locale environment advertises UTF-8.
// LC_ALL wins over LC_CTYPE wins over LANG, matching glibc precedence.
func unicodeLocale(environ []string) bool {
	values := map[string]string{}
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		values[k] = v
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v, ok := values[key]
		if !ok || v == "" {
			continue
		}
		lower := strings.ToLower(v)
		return strings.Contains(lower, "utf-8") || strings.Contains(lower, "utf8")
	}
	return false
}
