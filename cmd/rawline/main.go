// Reads raw bytes up to the first newline, bypassing event decoding, and
// prints what was received.
package main

import (
	"fmt"
	"os"

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

	fmt.Print("type a line, end with Enter\r\n")
	rr := in.ReadUntilAsync('\r')
	defer rr.Stop()

	var line []byte
	for b := range rr.Bytes() {
		line = append(line, b)
		fmt.Printf("%q ", b)
	}
	fmt.Printf("\r\ngot %d bytes: %q\r\n", len(line), line)
	if err := rr.Err(); err != nil {
		fmt.Printf("read error: %v\r\n", err)
	}
}
