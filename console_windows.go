//go:build windows

package conio

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const enableVirtualTerminalInput = 0x0200

type windowsConsole struct {
	in     windows.Handle
	out    *os.File
	mode   uint32   // console mode at open time, restored on Close
	conin  *os.File // owned CONIN$ handle, if stdin was not a console
	closed bool
}

// NewConsole opens the console input handle with virtual terminal input
// enabled, so that keys and mouse reports arrive as VT byte sequences and
// the same decoder serves both platforms.
func NewConsole() (Console, error) {
	f := os.Stdin
	var conin *os.File
	if !term.IsTerminal(int(f.Fd())) {
		var err error
		conin, err = os.OpenFile("CONIN$", os.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("stdin is not a console and CONIN$ could not be opened: %w", err)
		}
		f = conin
	}
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		if conin != nil {
			conin.Close()
		}
		return nil, err
	}
	if mode&enableVirtualTerminalInput == 0 {
		if err := windows.SetConsoleMode(h, mode|enableVirtualTerminalInput); err != nil {
			if conin != nil {
				conin.Close()
			}
			return nil, err
		}
	}
	return &windowsConsole{in: h, out: os.Stdout, mode: mode, conin: conin}, nil
}

func (c *windowsConsole) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	var n uint32
	if err := windows.ReadFile(c.in, p, &n, nil); err != nil {
		return int(n), err
	}
	return int(n), nil
}

func (c *windowsConsole) ReadTimeout(p []byte, d time.Duration) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	ms := uint32(d.Milliseconds())
	if ms == 0 {
		ms = 1
	}
	ev, err := windows.WaitForSingleObject(c.in, ms)
	if err != nil {
		return 0, err
	}
	if ev == uint32(windows.WAIT_TIMEOUT) {
		return 0, nil
	}
	return c.Read(p)
}

func (c *windowsConsole) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.out.Write(p)
}

func (c *windowsConsole) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	windows.SetConsoleMode(c.in, c.mode)
	if c.conin != nil {
		return c.conin.Close()
	}
	return nil
}
