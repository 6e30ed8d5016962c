package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// recorder keeps every write separately.
type recorder struct {
	writes []string
	err    error
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func TestScreenTextOffset(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out)
	s.SetOffset(2, 3)
	s.Text(1, 1, "hi")
	if s.Pending() == 0 {
		t.Fatal("nothing queued")
	}
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[4;3Hhi" {
		t.Fatalf("presented %q", out.String())
	}
	if s.Pending() != 0 {
		t.Error("queue not reset by Present")
	}
}

func TestScreenStyledResets(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out)
	s.Styled(5, 2, ColorBrightCyan, "1. zoe")
	s.Present()
	if want := "\033[2;5H" + ColorBrightCyan + "1. zoe" + ColorReset; out.String() != want {
		t.Fatalf("presented %q, want %q", out.String(), want)
	}
}

func TestScreenPresentsInChunks(t *testing.T) {
	rec := &recorder{}
	s := NewScreen(rec)
	s.Text(1, 1, strings.Repeat("x", 3*maxChunkSize))
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
	if len(rec.writes) != 4 {
		t.Fatalf("got %d writes, want 4", len(rec.writes))
	}
	total := 0
	for _, w := range rec.writes {
		if len(w) > maxChunkSize {
			t.Fatalf("write of %d bytes exceeds %d", len(w), maxChunkSize)
		}
		total += len(w)
	}
	if total != len("\033[1;1H")+3*maxChunkSize {
		t.Errorf("wrote %d bytes", total)
	}
}

func TestScreenPresentError(t *testing.T) {
	gone := errors.New("session closed")
	s := NewScreen(&recorder{err: gone})
	s.Text(1, 1, "x")
	if err := s.Present(); !errors.Is(err, gone) {
		t.Fatalf("Present = %v, want %v", err, gone)
	}
}

func TestScreenOpenClose(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out)
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), hideCursorSeq) || !strings.Contains(out.String(), clearSeq) {
		t.Fatalf("open wrote %q", out.String())
	}
	out.Reset()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), showCursorSeq) {
		t.Fatalf("close wrote %q", out.String())
	}
}

func TestCanvasRendersIntoScreen(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out)
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Set(0, 0, red)
	c.Render(s)
	if out.Len() != 0 {
		t.Fatal("canvas bypassed the screen")
	}
	s.Present()
	if !strings.Contains(out.String(), string(BlockUpperHalf)) {
		t.Fatalf("presented %q", out.String())
	}
}
