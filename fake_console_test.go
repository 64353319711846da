package conio

import (
	"io"
	"sync"
	"time"
)

// fakeConsole is an in-memory Console for tests. Bytes queued with feed
// show up on Read/ReadTimeout in order; everything written is recorded.
type fakeConsole struct {
	in   chan []byte
	pend []byte

	mu     sync.Mutex
	wrote  []string
	closed bool
	done   chan struct{}
}

func newFakeConsole() *fakeConsole {
	return &fakeConsole{
		in:   make(chan []byte, 64),
		done: make(chan struct{}),
	}
}

func (c *fakeConsole) feed(s string) { c.in <- []byte(s) }

// endOfInput makes subsequent reads fail with io.EOF once the queue
// drains, simulating a disconnected device.
func (c *fakeConsole) endOfInput() { close(c.in) }

func (c *fakeConsole) Read(p []byte) (int, error) {
	if len(c.pend) == 0 {
		select {
		case b, ok := <-c.in:
			if !ok {
				return 0, io.EOF
			}
			c.pend = b
		case <-c.done:
			return 0, ErrClosed
		}
	}
	n := copy(p, c.pend)
	c.pend = c.pend[n:]
	return n, nil
}

func (c *fakeConsole) ReadTimeout(p []byte, d time.Duration) (int, error) {
	if len(c.pend) == 0 {
		select {
		case b, ok := <-c.in:
			if !ok {
				return 0, io.EOF
			}
			c.pend = b
		case <-time.After(d):
			return 0, nil
		case <-c.done:
			return 0, ErrClosed
		}
	}
	n := copy(p, c.pend)
	c.pend = c.pend[n:]
	return n, nil
}

func (c *fakeConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	c.wrote = append(c.wrote, string(p))
	return len(p), nil
}

func (c *fakeConsole) written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.wrote...)
}

func (c *fakeConsole) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
	return nil
}
