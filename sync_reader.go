package conio

import "time"

// SyncReader decodes one event per call on the calling goroutine. It keeps
// no buffer beyond what the decoder needs to resolve a single event, and
// has no cancellation of its own: stop calling it when done.
type SyncReader struct {
	con        Console
	dec        Decoder
	escTimeout time.Duration
	buf        [64]byte
}

func newSyncReader(con Console, escTimeout time.Duration) *SyncReader {
	return &SyncReader{con: con, escTimeout: escTimeout}
}

// ReadEvent blocks until one complete event can be decoded from the
// console and returns it. Console failures are returned as-is; malformed
// input never produces an error.
func (r *SyncReader) ReadEvent() (InputEvent, error) {
	for {
		if ev, ok := r.dec.Decode(false); ok {
			return ev, nil
		}
		var n int
		var err error
		if r.dec.Pending() > 0 {
			// Mid-sequence: wait a bounded time for the remainder. If
			// nothing arrives the pending bytes are decoded as complete,
			// which turns a lone ESC into the Esc key.
			n, err = r.con.ReadTimeout(r.buf[:], r.escTimeout)
			if err == nil && n == 0 {
				if ev, ok := r.dec.Decode(true); ok {
					return ev, nil
				}
				continue
			}
		} else {
			n, err = r.con.Read(r.buf[:])
		}
		if err != nil {
			return nil, err
		}
		r.dec.Feed(r.buf[:n])
	}
}
