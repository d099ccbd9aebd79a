package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi, v float64
		want      float64
	}{
		{"inside", 0, 1, 0.25, 0.25},
		{"at upper bound", 0, 1, 1, 0},
		{"above", 0, 0.4, 0.9, 0.1},
		{"negative", 0, 1, -0.25, 0.75},
		{"many cycles negative", 0, 2, -7, 1},
		{"offset range", 10, 20, 25, 15},
		{"empty span", 3, 3, 42, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Wrap(tt.lo, tt.hi, tt.v), 1e-12)
		})
	}
}

func TestWrapStaysInRange(t *testing.T) {
	for v := -10.0; v < 10; v += 0.0137 {
		w := Wrap(0, 0.3, v)
		if w < 0 || w >= 0.3 {
			t.Fatalf("Wrap(0, 0.3, %v) = %v, out of range", v, w)
		}
	}
}

func TestWrapInt(t *testing.T) {
	assert.Equal(t, 3, WrapInt(4, -1))
	assert.Equal(t, 0, WrapInt(4, 8))
	assert.Equal(t, 1, WrapInt(4, 5))
	assert.Equal(t, 0, WrapInt(0, 5))
}

func TestSnapRoundsToNearest(t *testing.T) {
	assert.InDelta(t, 0.5, Snap(0.25, 0.6), 1e-12)
	assert.InDelta(t, 0.75, Snap(0.25, 0.63), 1e-12)
	assert.InDelta(t, -0.25, Snap(0.25, -0.2), 1e-12)
	assert.Equal(t, 0.33, Snap(0, 0.33))
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(1, 5, -3))
	assert.Equal(t, 5.0, Clamp(1, 5, 9))
	assert.Equal(t, 2.5, Clamp(1, 5, 2.5))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, 0.0, Smoothstep(0.35, 0.85, 0.1))
	assert.Equal(t, 1.0, Smoothstep(0.35, 0.85, 2))
	assert.InDelta(t, 0.5, Smoothstep(0.35, 0.85, 0.6), 1e-12)
	assert.Equal(t, 1.0, Smoothstep(1, 1, 1))
}

func TestFract(t *testing.T) {
	assert.InDelta(t, 0.25, Fract(2.25), 1e-12)
	assert.InDelta(t, 0.75, Fract(-0.25), 1e-12)
}

func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(0.1+0.2, 0.3))
	assert.False(t, NearlyEqual(0.3, 0.30001))
	assert.True(t, NearlyEqual(1e12, 1e12+1e-1))
	assert.False(t, NearlyEqual(0, math.SmallestNonzeroFloat64+1e-6))
}
