package input

import (
	"io"
	"time"
)

// ByteSource yields one byte at a time with a bounded wait. ok is false when
// the timeout elapsed with no byte available; err is terminal (closed input,
// read failure).
type ByteSource interface {
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)
}

type readResult struct {
	b   byte
	err error
}

// ReaderSource adapts an io.Reader (normally the raw-mode stdin) to the
// ByteSource contract. A single pump goroutine performs the blocking reads so
// the decode loop itself never blocks past its timeout. A single ordered
// channel carries both bytes and the terminal error, so buffered input is
// always delivered before EOF.
type ReaderSource struct {
	results chan readResult
	done    chan struct{}
}

// NewReaderSource starts the pump goroutine. Close releases it.
func NewReaderSource(r io.Reader) *ReaderSource {
	s := &ReaderSource{
		results: make(chan readResult, 64),
		done:    make(chan struct{}),
	}
	go s.pump(r)
	return s
}

func (s *ReaderSource) pump(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case s.results <- readResult{b: buf[0]}:
			case <-s.done:
				return
			}
		}
		if err != nil {
			select {
			case s.results <- readResult{err: err}:
			case <-s.done:
			}
			return
		}
	}
}

// ReadByte waits up to timeout for the next byte.
func (s *ReaderSource) ReadByte(timeout time.Duration) (byte, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-s.results:
		if res.err != nil {
			return 0, false, res.err
		}
		return res.b, true, nil
	case <-timer.C:
		return 0, false, nil
	}
}

// Close stops the pump goroutine. The underlying reader is not closed; the
// caller owns it.
func (s *ReaderSource) Close() {
	close(s.done)
}
