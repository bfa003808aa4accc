package input

import (
	"time"

	"shellmate/internal/logging/events"
)

const (
	// DefaultEscTimeout is the wait for the byte after ESC before the press
	// is reported as a standalone Escape. Terminals deliver ESC [ A as three
	// separate bytes in quick succession; values much below 30ms misreport
	// arrow keys as Escape on slow links, values much above 50ms make a real
	// Escape press feel sluggish.
	DefaultEscTimeout = 40 * time.Millisecond

	// DefaultPollTimeout bounds the wait for the first byte of an event.
	// Expiry produces a Timeout event, which the runtime uses to refresh the
	// footer without disturbing navigation state.
	DefaultPollTimeout = 250 * time.Millisecond
)

// Decoder reads key events from a ByteSource, one event per Next call.
type Decoder struct {
	src         ByteSource
	escTimeout  time.Duration
	pollTimeout time.Duration
}

// NewDecoder builds a Decoder. Non-positive timeouts fall back to the
// defaults.
func NewDecoder(src ByteSource, escTimeout, pollTimeout time.Duration) *Decoder {
	if escTimeout <= 0 {
		escTimeout = DefaultEscTimeout
	}
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	return &Decoder{src: src, escTimeout: escTimeout, pollTimeout: pollTimeout}
}

// Next blocks for at most the poll timeout waiting for the first byte, then
// applies the sequence rules. Errors are terminal (input closed); everything
// else decodes to some event, Unknown at worst.
func (d *Decoder) Next() (Event, error) {
	b, ok, err := d.src.ReadByte(d.pollTimeout)
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Kind: Timeout}, nil
	}
	ev := d.decodeFirst(b)
	if ev.Kind == Unknown {
		events.Key.Unknown(ev.Raw)
	}
	return ev, nil
}

func (d *Decoder) decodeFirst(b byte) Event {
	switch {
	case b == 0x1b:
		return d.decodeEscape()
	case b == '\r' || b == '\n':
		return Event{Kind: Enter}
	case b == 0x7f || b == 0x08:
		return Event{Kind: Backspace}
	case b == ' ':
		return Event{Kind: Space}
	case b >= '0' && b <= '9':
		return Event{Kind: Number, Digit: int(b - '0')}
	case b > ' ' && b < 0x7f:
		return Event{Kind: Char, Rune: rune(b)}
	default:
		return Event{Kind: Unknown, Raw: []byte{b}}
	}
}

// decodeEscape disambiguates a standalone ESC press from a CSI sequence.
// The second read uses the dedicated escape timeout: if nothing follows, the
// user pressed Escape itself.
func (d *Decoder) decodeEscape() Event {
	second, ok, err := d.src.ReadByte(d.escTimeout)
	if err != nil || !ok {
		return Event{Kind: Escape}
	}
	if second != '[' {
		return Event{Kind: Unknown, Raw: []byte{0x1b, second}}
	}
	final, ok, err := d.src.ReadByte(d.escTimeout)
	if err != nil || !ok {
		return Event{Kind: Unknown, Raw: []byte{0x1b, '['}}
	}
	switch final {
	case 'A':
		return Event{Kind: Up}
	case 'B':
		return Event{Kind: Down}
	case 'C':
		return Event{Kind: Right}
	case 'D':
		return Event{Kind: Left}
	case 'H':
		return Event{Kind: Home}
	case 'F':
		return Event{Kind: End}
	case '3':
		tilde, ok, err := d.src.ReadByte(d.escTimeout)
		if err == nil && ok && tilde == '~' {
			return Event{Kind: Delete}
		}
		raw := []byte{0x1b, '[', '3'}
		if ok {
			raw = append(raw, tilde)
		}
		return Event{Kind: Unknown, Raw: raw}
	default:
		return Event{Kind: Unknown, Raw: []byte{0x1b, '[', final}}
	}
}
