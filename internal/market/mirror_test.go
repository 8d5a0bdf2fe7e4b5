package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ordermanager/internal/domain"
)

func TestSendInsertsIntoRestingSet(t *testing.T) {
	m := NewMirror(nil)
	store := domain.NewStore()
	order, op := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(3))

	m.Send(store, op)

	require.Equal(t, 1, m.Len())
	require.Equal(t, domain.SentToMarket, op.State)
	require.Equal(t, domain.OnMarket, order.State)
}

func TestSendReplacesPreviousRestingEntry(t *testing.T) {
	m := NewMirror(nil)
	store := domain.NewStore()
	order, insertOp := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(3))
	m.Send(store, insertOp)

	amendOp := store.AppendOrderOp(order, domain.AmendOrder, &domain.OrderLeg{Price: 6, Qty: 3})
	m.Send(store, amendOp)

	require.Equal(t, 1, m.Len(), "the amend replaces the insert, not adds to it")
	bids, _ := m.Aggregate(store)
	require.Equal(t, domain.Qty(3), bids[domain.Price(6)])
	require.NotContains(t, bids, domain.Price(5))
}

func TestSendPanicsWhenPreviousMissingFromMirror(t *testing.T) {
	m := NewMirror(nil)
	store := domain.NewStore()
	order, _ := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(3))
	// the insert op is never sent, so it never enters the mirror's resting set.
	amendOp := store.AppendOrderOp(order, domain.AmendOrder, &domain.OrderLeg{Price: 6, Qty: 3})

	require.Panics(t, func() { m.Send(store, amendOp) })
}

func TestSendPanicsOnCrossingPriceLevel(t *testing.T) {
	m := NewMirror(nil)
	store := domain.NewStore()
	_, bidOp := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(3))
	m.Send(store, bidOp)

	_, askOp := store.CreateOrder(domain.Sell, domain.Price(5), domain.Qty(2))

	var violation *domain.Violation
	func() {
		defer func() {
			if r := recover(); r != nil {
				v, ok := r.(*domain.Violation)
				require.True(t, ok)
				violation = v
			}
		}()
		m.Send(store, askOp)
	}()
	require.NotNil(t, violation)
	require.Equal(t, "MIRROR_CROSS", violation.Tag)
}

func TestSendDeleteMovesOwnerToDeleteSentToMarket(t *testing.T) {
	m := NewMirror(nil)
	store := domain.NewStore()
	order, insertOp := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(3))
	m.Send(store, insertOp)

	deleteOp := store.AppendOrderOp(order, domain.DeleteOrder, &domain.OrderLeg{Price: 5, Qty: 3})
	m.Send(store, deleteOp)

	require.Equal(t, domain.DeleteSentToMarket, order.State)
	require.Equal(t, 0, m.Len(), "a delete removes the resting entry without replacing it")
}

func TestAggregateSplitsQuoteLegsAcrossBothSides(t *testing.T) {
	m := NewMirror(nil)
	store := domain.NewStore()
	op := store.AppendQuoteOp(domain.InsertQuote, &domain.QuoteLegs{
		Bid: &domain.QuoteLeg{Price: 4, Qty: 10},
		Ask: &domain.QuoteLeg{Price: 6, Qty: 7},
	})
	m.Send(store, op)

	bids, asks := m.Aggregate(store)
	require.Equal(t, domain.Qty(10), bids[domain.Price(4)])
	require.Equal(t, domain.Qty(7), asks[domain.Price(6)])
}

func TestSendForwardsToConfiguredSink(t *testing.T) {
	sink := NewPaperSink()
	m := NewMirror(sink)
	store := domain.NewStore()
	_, op := store.CreateOrder(domain.Sell, domain.Price(9), domain.Qty(1))

	m.Send(store, op)

	require.Equal(t, 1, sink.Len())
	require.Equal(t, op.ID, sink.Received()[0].OpID)
}
