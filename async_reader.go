package conio

import (
	"sync"
	"time"
)

// Sized so a burst of key repeats or mouse motion does not stall the
// worker while the consumer is busy rendering.
const deliveryChanSize = 128

// AsyncReader owns a dedicated goroutine that reads the console, decodes
// events and delivers them over a channel in arrival order. The channel is
// closed when the reader is stopped or the console read fails; after the
// close, Err reports the failure, if any.
//
// Stopping is cooperative: the worker cannot be interrupted in the middle
// of a blocking device read, only told to exit once that read returns.
// Stop itself never blocks on the worker.
type AsyncReader struct {
	events   chan InputEvent
	stop     chan struct{}
	stopOnce sync.Once
	err      error
}

func newAsyncReader(con Console, escTimeout time.Duration) *AsyncReader {
	ar := &AsyncReader{
		events: make(chan InputEvent, deliveryChanSize),
		stop:   make(chan struct{}),
	}
	go ar.run(con, escTimeout)
	return ar
}

func (ar *AsyncReader) run(con Console, escTimeout time.Duration) {
	defer close(ar.events)
	var dec Decoder
	var buf [64]byte
	for {
		select {
		case <-ar.stop:
			return
		default:
		}
		for {
			ev, ok := dec.Decode(false)
			if !ok {
				break
			}
			if !ar.send(ev) {
				return
			}
		}
		var n int
		var err error
		if dec.Pending() > 0 {
			n, err = con.ReadTimeout(buf[:], escTimeout)
			if err == nil && n == 0 {
				// Wait expired: decode the pending bytes as complete.
				if ev, ok := dec.Decode(true); ok && !ar.send(ev) {
					return
				}
				continue
			}
		} else {
			n, err = con.Read(buf[:])
		}
		if err != nil {
			ar.err = err
			return
		}
		dec.Feed(buf[:n])
	}
}

// send delivers ev unless a stop was requested.
func (ar *AsyncReader) send(ev InputEvent) bool {
	select {
	case ar.events <- ev:
		return true
	case <-ar.stop:
		return false
	}
}

// Events returns the delivery channel. It yields events in arrival order
// and is closed once the reader stops or the console read fails.
func (ar *AsyncReader) Events() <-chan InputEvent { return ar.events }

// Next blocks until an event is available. ok is false once the stream has
// ended.
func (ar *AsyncReader) Next() (ev InputEvent, ok bool) {
	ev, ok = <-ar.events
	return ev, ok
}

// Poll returns a queued event without blocking. ok is false when no event
// is waiting, or the stream has ended. Meant for render loops that must
// not stall on absent input.
func (ar *AsyncReader) Poll() (InputEvent, bool) {
	select {
	case ev, ok := <-ar.events:
		if !ok {
			return nil, false
		}
		return ev, true
	default:
		return nil, false
	}
}

// Err reports the console failure that ended the stream, or nil if the
// reader was stopped. Only meaningful after the events channel is closed.
func (ar *AsyncReader) Err() error { return ar.err }

// Stop asks the worker to exit at its next opportunity and returns
// immediately.
func (ar *AsyncReader) Stop() {
	ar.stopOnce.Do(func() { close(ar.stop) })
}

// RawReader forwards raw console bytes over a channel, bypassing event
// decoding, until a delimiter byte is seen. The delimiter itself is not
// delivered. Used for protocols layered directly on the raw stream, such
// as terminal query responses.
type RawReader struct {
	bytes    chan byte
	stop     chan struct{}
	stopOnce sync.Once
	err      error
}

func newRawReader(con Console, delim byte) *RawReader {
	rr := &RawReader{
		bytes: make(chan byte, deliveryChanSize),
		stop:  make(chan struct{}),
	}
	go rr.run(con, delim)
	return rr
}

func (rr *RawReader) run(con Console, delim byte) {
	defer close(rr.bytes)
	var buf [64]byte
	for {
		select {
		case <-rr.stop:
			return
		default:
		}
		n, err := con.Read(buf[:])
		if err != nil {
			rr.err = err
			return
		}
		for _, b := range buf[:n] {
			if b == delim {
				return
			}
			select {
			case rr.bytes <- b:
			case <-rr.stop:
				return
			}
		}
	}
}

// Bytes returns the delivery channel. It is closed once the delimiter is
// seen, the reader is stopped, or the console read fails.
func (rr *RawReader) Bytes() <-chan byte { return rr.bytes }

// Next blocks until a byte is available. ok is false once the stream has
// ended.
func (rr *RawReader) Next() (b byte, ok bool) {
	b, ok = <-rr.bytes
	return b, ok
}

// Err reports the console failure that ended the stream, if any.
func (rr *RawReader) Err() error { return rr.err }

// Stop asks the worker to exit at its next opportunity and returns
// immediately.
func (rr *RawReader) Stop() {
	rr.stopOnce.Do(func() { close(rr.stop) })
}
