package conio

import "unicode/utf8"

// Decoder translates a raw byte stream into InputEvents. It does no I/O:
// callers append bytes with Feed and pop events with Decode. The only state
// it keeps between calls is the tail of a partially received sequence, so a
// fresh Decoder per reader is cheap.
//
// Decoding is total: any byte sequence yields a finite series of events.
// Malformed input is reported as data (Unsupported or Unknown), never as an
// error.
type Decoder struct {
	buf []byte
}

// Feed appends raw bytes read from the terminal.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Pending returns the number of buffered bytes not yet decoded into events.
func (d *Decoder) Pending() int { return len(d.buf) }

// Decode pops the next event from the buffered bytes. It returns ok=false
// when the buffer holds only the start of a sequence that more bytes could
// still complete, such as a lone ESC. Passing atEOF=true declares that no
// further bytes are coming, which forces a decision: a lone ESC becomes the
// Esc key and a truncated escape sequence becomes Unsupported.
func (d *Decoder) Decode(atEOF bool) (InputEvent, bool) {
	ev, n := decodeEvent(d.buf, atEOF)
	if n == 0 {
		return nil, false
	}
	d.buf = d.buf[:copy(d.buf, d.buf[n:])]
	return ev, true
}

// decodeEvent decodes one event from the front of p, returning the event
// and the number of bytes consumed. n=0 means more input is needed. When
// atEOF is set and p is non-empty, it always consumes at least one byte.
func decodeEvent(p []byte, atEOF bool) (ev InputEvent, n int) {
	if len(p) == 0 {
		return nil, 0
	}
	b := p[0]
	switch {
	case b == 0x1b:
		return decodeEscape(p, atEOF)
	case b == 0x00:
		return KeyEvent{Kind: KeyNull}, 1
	case b == 0x08 || b == 0x7f:
		return KeyEvent{Kind: KeyBackspace}, 1
	case b == '\t':
		return Char('\t'), 1
	case b == '\r' || b == '\n':
		return Char('\n'), 1
	case b <= 0x1a: // 0x01..0x1a less the cases above
		return Ctrl(rune('a' + b - 1)), 1
	case b <= 0x1f: // ^\ ^] ^^ ^_
		return Ctrl(rune('4' + b - 0x1c)), 1
	case b < utf8.RuneSelf:
		return Char(rune(b)), 1
	}
	if !utf8.FullRune(p) && !atEOF {
		return nil, 0
	}
	r, n := utf8.DecodeRune(p)
	if r == utf8.RuneError && n <= 1 {
		return Unknown{}, 1
	}
	return Char(r), n
}

// decodeEscape handles everything that starts with ESC (0x1b).
func decodeEscape(p []byte, atEOF bool) (InputEvent, int) {
	if len(p) == 1 {
		if atEOF {
			return KeyEvent{Kind: KeyEsc}, 1
		}
		return nil, 0
	}
	switch p[1] {
	case '[':
		return decodeCSI(p, atEOF)
	case 'O':
		return decodeSS3(p, atEOF)
	case 0x1b:
		// Two escapes in a row: report the first, keep the second.
		return KeyEvent{Kind: KeyEsc}, 1
	}
	// ESC followed by a plain character is the Alt combination. The
	// character may itself be a multi-byte rune.
	if !utf8.FullRune(p[1:]) && !atEOF {
		return nil, 0
	}
	r, n := utf8.DecodeRune(p[1:])
	if r == utf8.RuneError && n <= 1 {
		return Unknown{}, 1 + n
	}
	return Alt(r), 1 + n
}

// decodeSS3 handles ESC O sequences: arrows, Home/End and F1-F4 in the
// application keypad encoding.
func decodeSS3(p []byte, atEOF bool) (InputEvent, int) {
	if len(p) < 3 {
		if atEOF {
			return unsupported(p), len(p)
		}
		return nil, 0
	}
	switch p[2] {
	case 'A':
		return KeyEvent{Kind: KeyUp}, 3
	case 'B':
		return KeyEvent{Kind: KeyDown}, 3
	case 'C':
		return KeyEvent{Kind: KeyRight}, 3
	case 'D':
		return KeyEvent{Kind: KeyLeft}, 3
	case 'H':
		return KeyEvent{Kind: KeyHome}, 3
	case 'F':
		return KeyEvent{Kind: KeyEnd}, 3
	case 'P', 'Q', 'R', 'S':
		return F(int(p[2]-'P') + 1), 3
	}
	return unsupported(p[:3]), 3
}

// decodeCSI handles ESC [ sequences: cursor and editing keys, function
// keys, modified arrows, and all three mouse report encodings.
func decodeCSI(p []byte, atEOF bool) (InputEvent, int) {
	if len(p) < 3 {
		if atEOF {
			return unsupported(p), len(p)
		}
		return nil, 0
	}
	switch p[2] {
	case 'M':
		// Legacy X10 mouse report: three data bytes offset by 32.
		if len(p) < 6 {
			if atEOF {
				return unsupported(p), len(p)
			}
			return nil, 0
		}
		return x10Mouse(p[3:6]), 6
	case '[':
		// Linux console function keys: ESC [ [ A..E is F1..F5.
		if len(p) < 4 {
			if atEOF {
				return unsupported(p), len(p)
			}
			return nil, 0
		}
		if c := p[3]; c >= 'A' && c <= 'E' {
			return F(int(c-'A') + 1), 4
		}
		return unsupported(p[:4]), 4
	}

	// Consume parameter bytes up to the final byte.
	sgr := false
	i := 2
	if p[i] == '<' {
		sgr = true
		i++
	}
	start := i
	numeric := true
	for i < len(p) && p[i] >= 0x30 && p[i] <= 0x3f {
		if p[i] != ';' && (p[i] < '0' || p[i] > '9') {
			numeric = false
		}
		i++
	}
	if i == len(p) {
		if atEOF {
			return unsupported(p), len(p)
		}
		return nil, 0
	}
	final := p[i]
	n := i + 1
	if !numeric {
		return unsupported(p[:n]), n
	}
	params := csiParams(p[start:i])

	if sgr {
		if (final == 'M' || final == 'm') && len(params) == 3 {
			return sgrMouse(params, final == 'm'), n
		}
		return unsupported(p[:n]), n
	}

	switch final {
	case 'M':
		// rxvt (mode 1015) mouse report: decimal parameters, X10 bits.
		if len(params) == 3 && params[0] >= 32 {
			return mouseReport(params[0]-32, uint16(params[1]), uint16(params[2])), n
		}
	case 'A', 'B', 'C', 'D':
		if k, ok := arrowKey(final, params); ok {
			return k, n
		}
	case 'H':
		if len(params) == 0 {
			return KeyEvent{Kind: KeyHome}, n
		}
	case 'F':
		if len(params) == 0 {
			return KeyEvent{Kind: KeyEnd}, n
		}
	case 'Z':
		if len(params) == 0 {
			return KeyEvent{Kind: KeyBackTab}, n
		}
	case '~':
		if len(params) == 1 {
			if k, ok := tildeKey(params[0]); ok {
				return k, n
			}
		}
	}
	return unsupported(p[:n]), n
}

// Arrow finals A-D in plain, Ctrl- and Shift-modified form.
var (
	plainArrows = [4]KeyKind{KeyUp, KeyDown, KeyRight, KeyLeft}
	ctrlArrows  = [4]KeyKind{KeyCtrlUp, KeyCtrlDown, KeyCtrlRight, KeyCtrlLeft}
	shiftArrows = [4]KeyKind{KeyShiftUp, KeyShiftDown, KeyShiftRight, KeyShiftLeft}
)

// arrowKey maps a CSI arrow final byte plus parameters onto a plain,
// Ctrl- or Shift-modified arrow. xterm sends the modifier as a second
// parameter after a leading 1; some terminals omit the 1.
func arrowKey(final byte, params []int) (KeyEvent, bool) {
	mod := 0
	switch {
	case len(params) == 0:
	case len(params) == 2 && params[0] == 1:
		mod = params[1]
	case len(params) == 1:
		mod = params[0]
	default:
		return KeyEvent{}, false
	}
	i := final - 'A' // 0=Up 1=Down 2=Right 3=Left
	switch mod {
	case 0, 1:
		return KeyEvent{Kind: plainArrows[i]}, true
	case 5:
		return KeyEvent{Kind: ctrlArrows[i]}, true
	case 2:
		return KeyEvent{Kind: shiftArrows[i]}, true
	}
	return KeyEvent{}, false
}

// tildeKey maps the single numeric parameter of a CSI ~ sequence.
func tildeKey(param int) (KeyEvent, bool) {
	switch param {
	case 1, 7:
		return KeyEvent{Kind: KeyHome}, true
	case 2:
		return KeyEvent{Kind: KeyInsert}, true
	case 3:
		return KeyEvent{Kind: KeyDelete}, true
	case 4, 8:
		return KeyEvent{Kind: KeyEnd}, true
	case 5:
		return KeyEvent{Kind: KeyPageUp}, true
	case 6:
		return KeyEvent{Kind: KeyPageDown}, true
	case 11, 12, 13, 14, 15:
		return F(param - 10), true
	case 17, 18, 19, 20, 21:
		return F(param - 11), true
	case 23, 24:
		return F(param - 12), true
	}
	return KeyEvent{}, false
}

// csiParams splits semicolon-delimited decimal parameters. An empty
// component counts as 0.
func csiParams(p []byte) []int {
	if len(p) == 0 {
		return nil
	}
	nums := []int{0}
	for _, c := range p {
		if c == ';' {
			nums = append(nums, 0)
			continue
		}
		cur := len(nums) - 1
		nums[cur] = nums[cur]*10 + int(c-'0')
	}
	return nums
}

// x10Mouse decodes the three data bytes of a legacy mouse report. All
// three values are offset by 32 on the wire; a byte below the offset
// cannot be part of a valid report.
func x10Mouse(q []byte) InputEvent {
	if q[0] < 32 || q[1] < 32 || q[2] < 32 {
		return MouseEvent{Kind: MouseUnknown}
	}
	return mouseReport(int(q[0])-32, uint16(q[1])-32, uint16(q[2])-32)
}

// sgrMouse decodes an SGR (mode 1006) report. Unlike the legacy form the
// final byte says whether this is a press ('M') or a release ('m').
func sgrMouse(params []int, release bool) InputEvent {
	x, y := uint16(params[1]), uint16(params[2])
	if release {
		return MouseEvent{Kind: MouseRelease, X: x, Y: y}
	}
	return mouseReport(params[0], x, y)
}

// mouseReport maps an xterm button value (offset already removed) onto a
// MouseEvent. The low two bits select the button, 0x40 marks wheel
// movement and 0x20 marks motion with a button held.
func mouseReport(cb int, x, y uint16) InputEvent {
	if cb&3 == 3 {
		if cb&0x20 != 0 {
			// Motion with no button held carries nothing we report.
			return MouseEvent{Kind: MouseUnknown}
		}
		return MouseEvent{Kind: MouseRelease, X: x, Y: y}
	}
	if cb&0x20 != 0 {
		return MouseEvent{Kind: MouseHold, X: x, Y: y}
	}
	var btn MouseButton
	switch cb & 3 {
	case 0:
		btn = MouseLeft
		if cb&0x40 != 0 {
			btn = MouseWheelUp
		}
	case 1:
		btn = MouseMiddle
		if cb&0x40 != 0 {
			btn = MouseWheelDown
		}
	case 2:
		btn = MouseRight
	}
	return MouseEvent{Kind: MousePress, Button: btn, X: x, Y: y}
}

// unsupported copies the consumed bytes out of the decoder buffer, which
// is reused across calls.
func unsupported(p []byte) Unsupported {
	return Unsupported{Bytes: append([]byte(nil), p...)}
}
