// Package safemath provides overflow-checked integer arithmetic for code
// that validates sizes and offsets taken from untrusted input.
package safemath

import "math/bits"

// AddUint64 returns a+b and reports whether the addition stayed within
// the uint64 range. When ok is false the sum is meaningless and the
// inputs should be treated as invalid.
func AddUint64(a, b uint64) (sum uint64, ok bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}
