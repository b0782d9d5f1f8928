package render

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestScreenProjectionElements(t *testing.T) {
	sizes := [][2]int{{600, 600}, {800, 450}, {1, 1}, {1920, 1080}}
	for _, s := range sizes {
		w, h := s[0], s[1]
		m := ScreenProjection(w, h)
		if !approx(m.At(0, 0), 2/float32(w)) {
			t.Errorf("%dx%d: (0,0) = %v, want %v", w, h, m.At(0, 0), 2/float32(w))
		}
		if !approx(m.At(1, 1), -2/float32(h)) {
			t.Errorf("%dx%d: (1,1) = %v, want %v", w, h, m.At(1, 1), -2/float32(h))
		}
		if !approx(m.At(3, 0), -1) {
			t.Errorf("%dx%d: (3,0) = %v, want -1", w, h, m.At(3, 0))
		}
		if !approx(m.At(3, 1), 1) {
			t.Errorf("%dx%d: (3,1) = %v, want 1", w, h, m.At(3, 1))
		}
		if !approx(m.At(3, 3), 1) {
			t.Errorf("%dx%d: (3,3) = %v, want 1", w, h, m.At(3, 3))
		}
	}
}

func TestScreenProjectionCorners(t *testing.T) {
	m := ScreenProjection(600, 400)
	tests := []struct {
		x, y         float32
		wantX, wantY float32
	}{
		{0, 0, -1, 1},
		{600, 0, 1, 1},
		{0, 400, -1, -1},
		{600, 400, 1, -1},
		{300, 200, 0, 0},
	}
	for _, tt := range tests {
		got := m.Transform(tt.x, tt.y, 0, 1)
		if !approx(got[0], tt.wantX) || !approx(got[1], tt.wantY) {
			t.Errorf("(%v,%v) -> (%v,%v), want (%v,%v)", tt.x, tt.y, got[0], got[1], tt.wantX, tt.wantY)
		}
		if !approx(got[2], 0) || !approx(got[3], 1) {
			t.Errorf("(%v,%v): z,w = %v,%v, want 0,1", tt.x, tt.y, got[2], got[3])
		}
	}
}

func TestIdentityTransform(t *testing.T) {
	got := Identity4().Transform(1, 2, 3, 4)
	if got != [4]float32{1, 2, 3, 4} {
		t.Errorf("identity transform = %v", got)
	}
}

func TestTexCoordV(t *testing.T) {
	tests := []struct {
		local float32
		code  byte
		want  float32
	}{
		{0, 0, 0},
		{1, 0, 1.0 / 256},
		{0, 'A', 65.0 / 256},
		{1, 'A', 66.0 / 256},
		{1, 255, 1},
	}
	for _, tt := range tests {
		if got := TexCoordV(tt.local, tt.code); !approx(got, tt.want) {
			t.Errorf("TexCoordV(%v, %d) = %v, want %v", tt.local, tt.code, got, tt.want)
		}
	}
	if got := BandOffset('A'); !approx(got, 65.0/256) {
		t.Errorf("BandOffset('A') = %v", got)
	}
}
