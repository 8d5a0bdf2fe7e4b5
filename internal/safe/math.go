// Package safe provides overflow-checked arithmetic over the small
// integer quantities the Market Mirror aggregates. The domain's Qty
// values are bounded by spec.md's Price/Qty ranges, so overflow should
// never occur in practice; these helpers turn a silent wraparound into an
// immediate, loud failure instead of a wrong no-cross verdict.
package safe

import "fmt"

// AddQty adds b to a, panicking on signed overflow rather than wrapping.
func AddQty(a, b int) int {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		panic(fmt.Sprintf("safe: qty overflow adding %d to %d", b, a))
	}
	return sum
}
