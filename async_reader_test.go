package conio

import (
	"errors"
	"io"
	"testing"
	"time"
)

// Longest the tests wait for a delivery before declaring the reader has a
// bug.
const deliveryTimeout = time.Second

func nextEvent(t *testing.T, ar *AsyncReader) InputEvent {
	t.Helper()
	select {
	case ev, ok := <-ar.Events():
		if !ok {
			t.Fatal("event channel closed early")
		}
		return ev
	case <-time.After(deliveryTimeout):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

func waitClosed(t *testing.T, ch <-chan InputEvent) {
	t.Helper()
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-time.After(deliveryTimeout):
			t.Fatal("timed out waiting for channel close")
		}
	}
}

func TestAsyncReaderOrdering(t *testing.T) {
	con := newFakeConsole()
	ar := newTestInput(con).ReadAsync()
	defer ar.Stop()

	con.feed("ab\x1b[A\x1b[M\x20\x25\x23c")
	want := []InputEvent{
		Char('a'),
		Char('b'),
		KeyEvent{Kind: KeyUp},
		MouseEvent{Kind: MousePress, Button: MouseLeft, X: 5, Y: 3},
		Char('c'),
	}
	for i, w := range want {
		if ev := nextEvent(t, ar); ev != w {
			t.Fatalf("event %d = %v, want %v", i, ev, w)
		}
	}
}

func TestAsyncReaderLoneEscape(t *testing.T) {
	con := newFakeConsole()
	ar := newTestInput(con).ReadAsync()
	defer ar.Stop()

	con.feed("\x1b")
	if ev := nextEvent(t, ar); ev != InputEvent(KeyEvent{Kind: KeyEsc}) {
		t.Fatalf("event = %v, want Esc", ev)
	}
}

func TestAsyncReaderPoll(t *testing.T) {
	con := newFakeConsole()
	ar := newTestInput(con).ReadAsync()
	defer ar.Stop()

	if ev, ok := ar.Poll(); ok {
		t.Fatalf("Poll on idle reader = %v, want none", ev)
	}

	con.feed("x")
	deadline := time.Now().Add(deliveryTimeout)
	for {
		if ev, ok := ar.Poll(); ok {
			if ev != InputEvent(Char('x')) {
				t.Fatalf("Poll = %v, want 'x'", ev)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("Poll never saw the event")
		}
		time.Sleep(time.Millisecond)
	}
}

// Stopping a reader whose worker is parked in a blocking read must not
// block the stopping goroutine, and the worker must exit at its next
// opportunity.
func TestAsyncReaderStopWhileIdle(t *testing.T) {
	con := newFakeConsole()
	ar := newTestInput(con).ReadAsync()

	stopped := make(chan struct{})
	go func() {
		ar.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(deliveryTimeout):
		t.Fatal("Stop blocked on an idle reader")
	}

	// Wake the blocked read; the worker must notice the stop and close
	// the channel at its next opportunity.
	con.feed("x")
	waitClosed(t, ar.Events())
	if err := ar.Err(); err != nil {
		t.Fatalf("Err after stop = %v, want nil", err)
	}
}

func TestAsyncReaderEndOfStream(t *testing.T) {
	con := newFakeConsole()
	ar := newTestInput(con).ReadAsync()

	con.feed("hi")
	con.endOfInput()

	if ev := nextEvent(t, ar); ev != InputEvent(Char('h')) {
		t.Fatalf("event = %v, want 'h'", ev)
	}
	if ev := nextEvent(t, ar); ev != InputEvent(Char('i')) {
		t.Fatalf("event = %v, want 'i'", ev)
	}
	waitClosed(t, ar.Events())
	if err := ar.Err(); !errors.Is(err, io.EOF) {
		t.Fatalf("Err = %v, want io.EOF", err)
	}
	if ev, ok := ar.Next(); ok {
		t.Fatalf("Next after close = %v, want none", ev)
	}
}

func TestRawReaderUntilDelimiter(t *testing.T) {
	con := newFakeConsole()
	rr := newTestInput(con).ReadUntilAsync('\n')

	con.feed("hello\nworld")
	for _, want := range []byte("hello") {
		select {
		case b, ok := <-rr.Bytes():
			if !ok {
				t.Fatal("byte channel closed early")
			}
			if b != want {
				t.Fatalf("byte = %q, want %q", b, want)
			}
		case <-time.After(deliveryTimeout):
			t.Fatal("timed out waiting for byte")
		}
	}
	// The delimiter ends the stream and is not delivered.
	select {
	case b, ok := <-rr.Bytes():
		if ok {
			t.Fatalf("unexpected byte %q after delimiter", b)
		}
	case <-time.After(deliveryTimeout):
		t.Fatal("timed out waiting for channel close")
	}
	if err := rr.Err(); err != nil {
		t.Fatalf("Err = %v, want nil", err)
	}
}

func TestRawReaderBypassesDecoding(t *testing.T) {
	con := newFakeConsole()
	rr := newTestInput(con).ReadUntilAsync(0)

	// An escape sequence comes through byte for byte.
	con.feed("\x1b[A\x00")
	var got []byte
	for {
		b, ok := rr.Next()
		if !ok {
			break
		}
		got = append(got, b)
	}
	if string(got) != "\x1b[A" {
		t.Fatalf("raw bytes = %q, want %q", got, "\x1b[A")
	}
}

func TestRawReaderStop(t *testing.T) {
	con := newFakeConsole()
	rr := newTestInput(con).ReadUntilAsync('\n')

	stopped := make(chan struct{})
	go func() {
		rr.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(deliveryTimeout):
		t.Fatal("Stop blocked on an idle raw reader")
	}
}
