package action

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sequenceRandom struct {
	ints []int
	i    int
}

func (r *sequenceRandom) Float64() float64 { return 0 }
func (r *sequenceRandom) Intn(n int) int {
	v := r.ints[r.i%len(r.ints)]
	r.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func TestBatchSizeIsOnePlusBoundedDraw(t *testing.T) {
	rng := &sequenceRandom{ints: []int{3}}
	src := NewRandomSource(rng, 10)
	batch := src.Batch()
	require.Len(t, batch, 4)
}

func TestDrawMapsTokenRangesToKinds(t *testing.T) {
	cases := []struct {
		token int
		want  Kind
	}{
		{tokenInsertOrder, InsertOrder},
		{tokenQuoteFirst, Quote},
		{tokenQuoteLast, Quote},
		{tokenAmendFirst, AmendOrder},
		{tokenAmendLast, AmendOrder},
		{tokenDeleteOrder, DeleteOrder},
		{tokenDeleteQuote, DeleteQuote},
	}
	for _, c := range cases {
		rng := &sequenceRandom{ints: []int{c.token}}
		src := NewRandomSource(rng, 1)
		got := src.draw()
		require.Equal(t, c.want, got, "token %d", c.token)
	}
}

func TestDrawCoversEveryTokenInRange(t *testing.T) {
	for token := 0; token < tokenCount; token++ {
		rng := &sequenceRandom{ints: []int{token}}
		src := NewRandomSource(rng, 1)
		require.NotPanics(t, func() { src.draw() })
	}
}
