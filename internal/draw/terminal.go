package draw

import (
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize bounds a single write to the session, about one TCP segment
// on a typical MTU, so SSH sends a frame as a steady stream of small packets.
const maxChunkSize = 1400

// ANSI sequences used by the screen and the HUD.
const (
	ColorReset      = "\033[0m"
	ColorRed        = "\033[31m"
	ColorBrightCyan = "\033[96m"

	clearSeq      = "\033[H\033[2J"
	hideCursorSeq = "\033[?25l"
	showCursorSeq = "\033[?25h"
)

// Screen collects one frame of terminal output: the canvas cells first, then
// the HUD text on top. Present sends it to the session in chunks. Column and
// row arguments are 1-based inside the render area; the centering offset is
// added here.
type Screen struct {
	out    io.Writer
	buf    strings.Builder
	num    [20]byte
	offCol int
	offRow int
}

var _ io.Writer = (*Screen)(nil)

// NewScreen creates a screen writing to the session w.
func NewScreen(w io.Writer) *Screen {
	return &Screen{out: w}
}

// SetOffset moves the render area, e.g. after a resize.
func (s *Screen) SetOffset(col, row int) {
	s.offCol, s.offRow = col, row
}

// Open hides the cursor and blanks the terminal for the game.
func (s *Screen) Open() error {
	s.buf.WriteString(hideCursorSeq)
	s.buf.WriteString(clearSeq)
	return s.Present()
}

// Close blanks the terminal and gives the cursor back.
func (s *Screen) Close() error {
	s.buf.WriteString(clearSeq)
	s.buf.WriteString(showCursorSeq)
	return s.Present()
}

// Write takes canvas output, which carries its own cursor moves.
func (s *Screen) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// Clear queues a full terminal clear before whatever follows in the frame.
func (s *Screen) Clear() {
	s.buf.WriteString(clearSeq)
}

func (s *Screen) moveTo(col, row int) {
	s.buf.WriteString("\033[")
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(row+s.offRow), 10))
	s.buf.WriteByte(';')
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(col+s.offCol), 10))
	s.buf.WriteByte('H')
}

// Text writes text at (col, row).
func (s *Screen) Text(col, row int, text string) {
	s.moveTo(col, row)
	s.buf.WriteString(text)
}

// Styled writes text at (col, row) in the SGR style sgr and resets it after.
func (s *Screen) Styled(col, row int, sgr, text string) {
	s.moveTo(col, row)
	s.buf.WriteString(sgr)
	s.buf.WriteString(text)
	s.buf.WriteString(ColorReset)
}

// Pending returns the number of bytes queued for the next Present.
func (s *Screen) Pending() int {
	return s.buf.Len()
}

// Present sends the queued frame in writes of at most maxChunkSize bytes.
func (s *Screen) Present() error {
	data := s.buf.String()
	s.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(s.out, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// FgRGB returns the 24-bit foreground color sequence for c.
func FgRGB(c color.RGBA) string {
	var b [24]byte
	out := append(b[:0], "\033[38;2;"...)
	out = strconv.AppendInt(out, int64(c.R), 10)
	out = append(out, ';')
	out = strconv.AppendInt(out, int64(c.G), 10)
	out = append(out, ';')
	out = strconv.AppendInt(out, int64(c.B), 10)
	out = append(out, 'm')
	return string(out)
}

// TermSizeFunc reports the terminal's columns and rows. SSH sessions supply
// one fed by window-change requests.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize is the TermSizeFunc of the local terminal.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
