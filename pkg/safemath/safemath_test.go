package safemath

import (
	"math"
	"testing"
)

func TestAddUint64(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		sum  uint64
		ok   bool
	}{
		{"zero", 0, 0, 0, true},
		{"small", 3, 4, 7, true},
		{"max plus zero", math.MaxUint64, 0, math.MaxUint64, true},
		{"max plus one", math.MaxUint64, 1, 0, false},
		{"both huge", math.MaxUint64, math.MaxUint64, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sum, ok := AddUint64(tc.a, tc.b)
			if ok != tc.ok {
				t.Fatalf("AddUint64(%d, %d) ok = %v, want %v", tc.a, tc.b, ok, tc.ok)
			}
			if ok && sum != tc.sum {
				t.Fatalf("AddUint64(%d, %d) = %d, want %d", tc.a, tc.b, sum, tc.sum)
			}
		})
	}
}
