package conio

import (
	"errors"
	"testing"
)

func TestMouseModeCommands(t *testing.T) {
	con := newFakeConsole()
	in := FromConsole(con)

	if err := in.EnableMouseMode(); err != nil {
		t.Fatalf("EnableMouseMode: %v", err)
	}
	if err := in.DisableMouseMode(); err != nil {
		t.Fatalf("DisableMouseMode: %v", err)
	}

	want := []string{
		"\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h",
		"\x1b[?1006l\x1b[?1015l\x1b[?1002l\x1b[?1000l",
	}
	got := con.written()
	if len(got) != len(want) {
		t.Fatalf("wrote %d commands, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// Enabling twice issues the command twice; the terminal treats the second
// as a no-op, so a disable afterwards must still work.
func TestMouseModeIdempotent(t *testing.T) {
	con := newFakeConsole()
	in := FromConsole(con)

	if err := in.EnableMouseMode(); err != nil {
		t.Fatalf("first EnableMouseMode: %v", err)
	}
	if err := in.EnableMouseMode(); err != nil {
		t.Fatalf("second EnableMouseMode: %v", err)
	}
	if err := in.DisableMouseMode(); err != nil {
		t.Fatalf("DisableMouseMode: %v", err)
	}
	if got := con.written(); len(got) != 3 {
		t.Fatalf("wrote %d commands, want 3", len(got))
	}
}

func TestMouseModeClosedConsole(t *testing.T) {
	con := newFakeConsole()
	in := FromConsole(con)

	in.Close()
	if err := in.EnableMouseMode(); !errors.Is(err, ErrClosed) {
		t.Fatalf("EnableMouseMode on closed console = %v, want ErrClosed", err)
	}
	if err := in.DisableMouseMode(); !errors.Is(err, ErrClosed) {
		t.Fatalf("DisableMouseMode on closed console = %v, want ErrClosed", err)
	}
}
