package gui

import "testing"

func TestAlignTextOverflowingColumn(t *testing.T) {
	b := Rect{X: 10, Y: 0, W: 40, H: 30}

	right := alignText(b, 100, 14, Vec2{}, TextRight)
	if right.X != b.X {
		t.Errorf("right aligned text wider than its column should start at %v, got %v", b.X, right.X)
	}
	if right.W != 100 {
		t.Errorf("right aligned width = %v, want the text width", right.W)
	}

	centered := alignText(b, 100, 14, Vec2{}, TextCentered)
	if centered.X != b.X {
		t.Errorf("centered text wider than its column should start at %v, got %v", b.X, centered.X)
	}
}

func TestAlignTextVertical(t *testing.T) {
	b := Rect{X: 0, Y: 100, W: 200, H: 30}
	tests := []struct {
		align TextAlign
		wantY float32
	}{
		{TextAlignLeft | TextAlignTop, 100},
		{TextAlignLeft | TextAlignMiddle, 108},
		{TextAlignLeft | TextAlignBottom, 116},
	}
	for _, tt := range tests {
		got := alignText(b, 20, 14, Vec2{}, tt.align)
		if got.Y != tt.wantY {
			t.Errorf("align %b: y = %v, want %v", tt.align, got.Y, tt.wantY)
		}
	}
}

func TestAlignTextPadding(t *testing.T) {
	b := Rect{X: 0, Y: 0, W: 100, H: 20}
	pad := Vec2{X: 2, Y: 1}

	got := alignText(b, 10, 14, pad, TextAlignRight|TextAlignTop)
	// Right edge of the text box sits on the column edge.
	if got.X+got.W != b.W {
		t.Errorf("right edge = %v, want %v", got.X+got.W, b.W)
	}
	if got.W != 10+4*pad.X {
		t.Errorf("width = %v, want text plus padding", got.W)
	}
	if got.Y != pad.Y {
		t.Errorf("top aligned y = %v, want padding %v", got.Y, pad.Y)
	}
}
