package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

var red = color.RGBA{0xff, 0, 0, 0xff}

func TestFromNDC(t *testing.T) {
	tests := []struct {
		x, y float64
		want Point
	}{
		{-1, 1, Point{0, 0}},
		{1, -1, Point{80, 48}},
		{0, 0, Point{40, 24}},
	}
	for _, tt := range tests {
		if got := FromNDC(tt.x, tt.y, 80, 48); got != tt.want {
			t.Errorf("FromNDC(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawLineSetsEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(Point{0, 0}, Point{9, 9}, red)
	for _, p := range [][2]int{{0, 0}, {9, 9}, {5, 5}} {
		got, ok := c.Pixel(p[0], p[1])
		if !ok || got != red {
			t.Errorf("pixel %v = %v, %v", p, got, ok)
		}
	}
	if _, ok := c.Pixel(9, 0); ok {
		t.Error("pixel off the line is set")
	}
}

func TestDrawLineOffscreen(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(Point{-50, -3}, Point{-1, -40}, red)
	for y := range 10 {
		for x := range 10 {
			if _, ok := c.Pixel(x, y); ok {
				t.Fatalf("offscreen line set pixel (%d, %d)", x, y)
			}
		}
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(1, 0, red)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.Contains(first.String(), string(BlockUpperHalf)) {
		t.Fatalf("first frame missing the pixel: %q", first.String())
	}
	if !strings.Contains(first.String(), FgRGB(red)) {
		t.Errorf("first frame missing the color: %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if third.String() != "\033[1;2H " {
		t.Fatalf("cleared pixel wrote %q, want a single blank", third.String())
	}
}

func TestForceRedrawAndTextDirty(t *testing.T) {
	c := NewCanvas(4, 2)
	var out bytes.Buffer
	c.Render(&out)

	c.MarkTextDirty(2, 2, 2)
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "\033["); got != 2 {
		t.Fatalf("text-dirty render moved the cursor %d times, want 2: %q", got, out.String())
	}

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	if got := strings.Count(out.String(), "\033["); got != 8 {
		t.Fatalf("forced render moved the cursor %d times, want 8", got)
	}
}

func TestRenderBlockHalves(t *testing.T) {
	c := NewCanvas(3, 1)
	c.setPixel(0, 0, red)
	c.setPixel(0, 1, red)
	c.setPixel(1, 1, red)

	var out bytes.Buffer
	c.Render(&out)
	s := out.String()
	for _, want := range []rune{BlockFull, BlockLowerHalf} {
		if !strings.ContainsRune(s, want) {
			t.Errorf("render %q missing %q", s, want)
		}
	}
}

func TestFgRGB(t *testing.T) {
	if got := FgRGB(color.RGBA{0, 173, 255, 255}); got != "\033[38;2;0;173;255m" {
		t.Fatalf("FgRGB = %q", got)
	}
}

func TestShadeLevel(t *testing.T) {
	if ShadeLevel(-1) != ' ' || ShadeLevel(2) != BlockFull || ShadeLevel(0.5) != BlockMedium {
		t.Fatal("shade levels out of order")
	}
}
