package tui

import "testing"

func TestBrailleBitLayout(t *testing.T) {
	// micro position within a cell -> braille dot bit
	bits := map[[2]int]uint8{
		{0, 0}: 0x01, {0, 1}: 0x02, {0, 2}: 0x04, {0, 3}: 0x40,
		{1, 0}: 0x08, {1, 1}: 0x10, {1, 2}: 0x20, {1, 3}: 0x80,
	}
	for pos, want := range bits {
		b := newBrailleBuf(1, 1)
		b.setPixel(pos[0], pos[1], 0)
		if got := b.m[0][0]; got != want {
			t.Errorf("setPixel(%d, %d): mask %#02x, want %#02x", pos[0], pos[1], got, want)
		}
	}
}

func TestBrailleCellRune(t *testing.T) {
	b := newBrailleBuf(2, 1)
	if r, _ := b.cell(0, 0); r != ' ' {
		t.Errorf("empty cell: got %q, want space", r)
	}
	b.setPixel(0, 0, 3)
	r, pal := b.cell(0, 0)
	if r != rune(0x2801) {
		t.Errorf("got %q, want %q", r, rune(0x2801))
	}
	if pal != 3 {
		t.Errorf("palette: got %d, want 3", pal)
	}
	// a full cell lights all eight dots
	for mx := 0; mx < 2; mx++ {
		for my := 0; my < 4; my++ {
			b.setPixel(2+mx, my, 0)
		}
	}
	if r, _ := b.cell(1, 0); r != rune(0x28FF) {
		t.Errorf("full cell: got %q, want %q", r, rune(0x28FF))
	}
}

func TestBrailleOutOfBounds(t *testing.T) {
	b := newBrailleBuf(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}, {100, 100}} {
		b.setPixel(p[0], p[1], 0) // must not panic
	}
	for y := range b.m {
		for x, mask := range b.m[y] {
			if mask != 0 {
				t.Errorf("cell (%d, %d) set by out-of-bounds pixel", x, y)
			}
		}
	}
}

func TestBrailleLineEndpoints(t *testing.T) {
	b := newBrailleBuf(8, 4)
	b.drawLineMicro(0, 0, 15, 15, 1)
	if b.m[0][0]&0x01 == 0 {
		t.Error("line start pixel not set")
	}
	if b.m[3][7]&0x80 == 0 {
		t.Error("line end pixel not set")
	}
	// color follows the line
	if _, pal := b.cell(0, 0); pal != 1 {
		t.Errorf("palette: got %d, want 1", pal)
	}
}

func TestBrailleLineDegenerate(t *testing.T) {
	b := newBrailleBuf(2, 2)
	b.drawLineMicro(1, 1, 1, 1, 0)
	if r, _ := b.cell(0, 0); r != rune(0x2800+0x10) {
		t.Errorf("single-point line: got %q, want %q", r, rune(0x2800+0x10))
	}
}
