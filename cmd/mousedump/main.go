// Enables mouse reporting and prints mouse events. Press q or Ctrl-C to
// exit.
package main

import (
	"fmt"
	"os"

	"github.com/mgutz/ansi"
	"github.com/termdev/conio"
	"golang.org/x/term"
)

func main() {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	in, err := conio.NewInput()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.Close()

	if err := in.EnableMouseMode(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.DisableMouseMode()

	mouseColor := ansi.ColorFunc("cyan+b")

	fmt.Print("click, drag and scroll (q to exit)\r\n")
	ar := in.ReadAsync()
	defer ar.Stop()
	for ev := range ar.Events() {
		switch ev := ev.(type) {
		case conio.MouseEvent:
			fmt.Printf("%s\r\n", mouseColor(ev.String()))
		case conio.KeyEvent:
			if ev == conio.Char('q') || ev == conio.Ctrl('c') {
				return
			}
		}
	}
	if err := ar.Err(); err != nil {
		fmt.Printf("read error: %v\r\n", err)
	}
}
