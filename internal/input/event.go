// Package input turns the raw terminal byte stream into discrete key events.
// The hard part is telling a lone ESC keypress apart from the first byte of
// an arrow-key escape sequence; see Decoder for the two-stage timeout read.
package input

import "fmt"

// Kind identifies a decoded key event.
type Kind int

const (
	Unknown Kind = iota
	Timeout
	Up
	Down
	Left
	Right
	Home
	End
	Delete
	Enter
	Escape
	Space
	Backspace
	Char
	Number
)

// Event is a single decoded key press. Rune is set for Char, Digit for
// Number, Raw for Unknown.
type Event struct {
	Kind  Kind
	Rune  rune
	Digit int
	Raw   []byte
}

func (k Kind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Home:
		return "home"
	case End:
		return "end"
	case Delete:
		return "delete"
	case Enter:
		return "enter"
	case Escape:
		return "escape"
	case Space:
		return "space"
	case Backspace:
		return "backspace"
	case Char:
		return "char"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Describe renders the event for trace logging.
func (e Event) Describe() string {
	switch e.Kind {
	case Char:
		return fmt.Sprintf("char(%c)", e.Rune)
	case Number:
		return fmt.Sprintf("number(%d)", e.Digit)
	case Unknown:
		return fmt.Sprintf("unknown(% x)", e.Raw)
	default:
		return e.Kind.String()
	}
}
