package utils

import (
	"math"
	"testing"
)

func TestEaseCurves(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(float64) float64
		input    float64
		expected float64
	}{
		{"缓出起点", EaseOutCubic, 0, 0},
		{"缓出中点", EaseOutCubic, 0.5, 0.875},
		{"缓出终点", EaseOutCubic, 1, 1},
		{"缓入中点", EaseInCubic, 0.5, 0.125},
		{"缓入终点", EaseInCubic, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.input); math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("got %v, 期望 %v", got, tt.expected)
			}
		})
	}
}

func TestFadeOut(t *testing.T) {
	if FadeOut(0, 4) != 1 || FadeOut(1.9, 4) != 1 {
		t.Error("first half should be fully opaque")
	}
	if got := FadeOut(3, 4); math.Abs(got-0.875) > 0.001 {
		t.Errorf("FadeOut(3, 4) = %v, 期望 0.875", got)
	}
	if FadeOut(4, 4) != 0 || FadeOut(10, 4) != 0 {
		t.Error("expired message should be transparent")
	}
	if FadeOut(1, 0) != 0 {
		t.Error("zero lifetime should be transparent")
	}
}

func TestLerpAndClamp(t *testing.T) {
	if Lerp(10, 20, 0.25) != 12.5 {
		t.Errorf("Lerp = %v", Lerp(10, 20, 0.25))
	}
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 out of range")
	}
}
