package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"pythagorean", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, Distance(tt.b, tt.a), 1e-9)
		})
	}
}

func TestShape_ToPixel(t *testing.T) {
	s := Shape{Height: 480, Width: 640}
	got := s.ToPixel(Point{X: 0.5, Y: 0.25})
	assert.Equal(t, Point{X: 320, Y: 120}, got)
}

func TestShape_PixelDistance(t *testing.T) {
	s := Shape{Height: 200, Width: 100}
	// 0.3*100 = 30 horizontally, 0.2*200 = 40 vertically.
	d := s.PixelDistance(Point{0, 0}, Point{0.3, 0.2})
	assert.InDelta(t, 50.0, d, 1e-9)
}

func TestShape_Valid(t *testing.T) {
	assert.True(t, Shape{Height: 1, Width: 1}.Valid())
	assert.False(t, Shape{Height: 0, Width: 10}.Valid())
	assert.False(t, Shape{Height: 10, Width: -1}.Valid())
}

func TestPoint_Finite(t *testing.T) {
	assert.True(t, Point{0.2, 0.4}.Finite())
	assert.False(t, Point{math.NaN(), 0}.Finite())
	assert.False(t, Point{0, math.Inf(1)}.Finite())
}
