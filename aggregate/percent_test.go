package aggregate

import (
	"math"
	"testing"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		current, previous float64
		exp               float64
	}{
		{10, 10, 0},
		{15, 5, (15.0 - 5.0) / (15.0 + 2.5) * 100}, // 57.14..., the asymmetric base
		{20, 10, 40},
		{0, 10, -200}, // full drawdown reads as -200 with this base, kept as is
	}

	for i, test := range tests {
		got := float64(PercentChange(test.current, test.previous))
		if math.Abs(got-test.exp) > 1e-9 {
			t.Errorf("test %v | expected %v got %v", i, test.exp, got)
		}
	}
}

func TestPercentChangeUndefined(t *testing.T) {
	// a zero base must surface as undefined, never as 0
	if p := PercentChange(0, 0); p.Defined() {
		t.Errorf("expected undefined for 0/0, got %v", float64(p))
	}
	if p := PercentChange(10, -20); p.Defined() {
		t.Errorf("expected undefined for zero denominator, got %v", float64(p))
	}
	if !math.IsNaN(float64(PercentChange(0, 0))) {
		t.Errorf("expected NaN for 0/0")
	}
}
