// Prints every decoded input event. Press Esc twice to exit.
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

	keyColor := ansi.ColorFunc("green+b")
	otherColor := ansi.ColorFunc("yellow")

	fmt.Print("press keys (Esc twice to exit)\r\n")
	r := in.ReadSync()
	escCount := 0
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			fmt.Printf("read error: %v\r\n", err)
			return
		}
		switch ev := ev.(type) {
		case conio.KeyEvent:
			fmt.Printf("%s\r\n", keyColor(ev.String()))
			if ev.Kind == conio.KeyEsc {
				escCount++
				if escCount > 1 {
					fmt.Print("bye!\r\n")
					return
				}
				fmt.Print("press Esc again to exit\r\n")
			} else {
				escCount = 0
			}
		default:
			fmt.Printf("%s\r\n", otherColor(fmt.Sprint(ev)))
		}
	}
}
