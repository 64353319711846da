package conio

import (
	"io"
	"time"

	"github.com/xyproto/env/v2"
)

// Modern emulators send every byte of an escape sequence in one burst, so
// a short bounded wait after ESC is enough to tell a lone Esc press from
// the start of a sequence. 10ms is generous for local terminals; raise
// CONIO_ESC_TIMEOUT_MS for laggy links. The Unix backend can only wait in
// termios VTIME steps of a tenth of a second, so on a real tty any value
// below 100ms waits one full step.
var defaultEscTimeout = time.Duration(env.Int("CONIO_ESC_TIMEOUT_MS", 10)) * time.Millisecond

// Input binds the readers and the mouse mode commands to one console.
// At most one reader (sync or async) should be consuming the console at a
// time; concurrent readers race for the same bytes.
type Input struct {
	con        Console
	escTimeout time.Duration
	sync       *SyncReader
}

// NewInput opens the platform console and returns an Input bound to it.
func NewInput() (*Input, error) {
	con, err := NewConsole()
	if err != nil {
		return nil, err
	}
	return FromConsole(con), nil
}

// FromConsole binds an already opened console. The caller keeps ownership
// of raw-mode setup and restoration.
func FromConsole(con Console) *Input {
	return &Input{con: con, escTimeout: defaultEscTimeout}
}

// SetEscTimeout changes the bounded wait used to disambiguate a lone Esc
// press from an escape sequence.
func (in *Input) SetEscTimeout(d time.Duration) {
	in.escTimeout = d
	if in.sync != nil {
		in.sync.escTimeout = d
	}
}

// ReadSync returns the blocking single-call reader bound to this Input's
// console. The reader is created once and reused: a console read can pull
// in more bytes than one event needs, and the leftover must stay buffered
// for the next call rather than vanish with a discarded reader.
func (in *Input) ReadSync() *SyncReader {
	if in.sync == nil {
		in.sync = newSyncReader(in.con, in.escTimeout)
	}
	return in.sync
}

// ReadAsync starts a background reader that decodes events and delivers
// them over a channel.
func (in *Input) ReadAsync() *AsyncReader {
	return newAsyncReader(in.con, in.escTimeout)
}

// ReadUntilAsync starts a background reader that forwards raw bytes,
// bypassing event decoding, until delim is seen.
func (in *Input) ReadUntilAsync(delim byte) *RawReader {
	return newRawReader(in.con, delim)
}

// ReadChar blocks until a plain character key arrives, skipping any other
// events in between.
func (in *Input) ReadChar() (rune, error) {
	r := in.ReadSync()
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return 0, err
		}
		if k, ok := ev.(KeyEvent); ok && k.Kind == KeyChar {
			return k.Rune, nil
		}
	}
}

// xterm mouse tracking: button presses (1000), button motion (1002), and
// the urxvt (1015) and SGR (1006) extended coordinate encodings. Disable
// unwinds them in reverse order.
const (
	enableMouseSeq  = "\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h"
	disableMouseSeq = "\x1b[?1006l\x1b[?1015l\x1b[?1002l\x1b[?1000l"
)

// EnableMouseMode asks the terminal to start emitting mouse report
// sequences. Enabling an already enabled mode is a protocol-level no-op,
// so calling this twice is harmless.
func (in *Input) EnableMouseMode() error {
	return writeAll(in.con, []byte(enableMouseSeq))
}

// DisableMouseMode asks the terminal to stop emitting mouse reports.
func (in *Input) DisableMouseMode() error {
	return writeAll(in.con, []byte(disableMouseSeq))
}

// Close releases the console handle.
func (in *Input) Close() error { return in.con.Close() }

// writeAll retries on partial writes.
func writeAll(con Console, p []byte) error {
	for len(p) > 0 {
		n, err := con.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
