package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ordermanager/internal/domain"
)

func TestLivePriceDefaultsToOrderPriceWithNoInflightOperations(t *testing.T) {
	store := domain.NewStore()
	order, op := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(2))
	op.State = domain.Acked

	require.Equal(t, domain.Price(5), LivePrice(store, order))
}

func TestLivePriceAggregatesUnackedBuyTowardsTheMax(t *testing.T) {
	store := domain.NewStore()
	order, insertOp := store.CreateOrder(domain.Buy, domain.Price(5), domain.Qty(2))
	insertOp.State = domain.Acked
	amend := store.AppendOrderOp(order, domain.AmendOrder, &domain.OrderLeg{Price: 8, Qty: 2})
	amend.State = domain.SentToMarket // still unacked

	require.Equal(t, domain.Price(8), LivePrice(store, order), "an unacked buy amend must project to the higher price")
}

func TestLivePriceAggregatesUnackedSellTowardsTheMin(t *testing.T) {
	store := domain.NewStore()
	order, insertOp := store.CreateOrder(domain.Sell, domain.Price(8), domain.Qty(2))
	insertOp.State = domain.Acked
	amend := store.AppendOrderOp(order, domain.AmendOrder, &domain.OrderLeg{Price: 5, Qty: 2})
	amend.State = domain.SentToMarket

	require.Equal(t, domain.Price(5), LivePrice(store, order), "an unacked sell amend must project to the lower price")
}

func TestProjectAskIsInactiveWithNoQuoteOperations(t *testing.T) {
	store := domain.NewStore()
	side := ProjectAsk(store, store.Quote())
	require.False(t, side.Active)
}

func TestProjectAskCombinesAckedAndUnackedTowardsTheMin(t *testing.T) {
	store := domain.NewStore()
	op1 := store.AppendQuoteOp(domain.InsertQuote, &domain.QuoteLegs{Ask: &domain.QuoteLeg{Price: 9, Qty: 1}})
	op1.State = domain.Acked
	op2 := store.AppendQuoteOp(domain.InsertQuote, &domain.QuoteLegs{Ask: &domain.QuoteLeg{Price: 6, Qty: 1}})
	op2.State = domain.SentToMarket

	side := ProjectAsk(store, store.Quote())
	require.True(t, side.Active)
	require.Equal(t, domain.Price(6), side.Price)
}

func TestProjectBidCombinesAckedAndUnackedTowardsTheMax(t *testing.T) {
	store := domain.NewStore()
	op1 := store.AppendQuoteOp(domain.InsertQuote, &domain.QuoteLegs{Bid: &domain.QuoteLeg{Price: 3, Qty: 1}})
	op1.State = domain.Acked
	op2 := store.AppendQuoteOp(domain.InsertQuote, &domain.QuoteLegs{Bid: &domain.QuoteLeg{Price: 5, Qty: 1}})
	op2.State = domain.SentToMarket

	side := ProjectBid(store, store.Quote())
	require.True(t, side.Active)
	require.Equal(t, domain.Price(5), side.Price)
}

func TestProjectAskIgnoresLegsOnTheOppositeSide(t *testing.T) {
	store := domain.NewStore()
	op := store.AppendQuoteOp(domain.InsertQuote, &domain.QuoteLegs{Bid: &domain.QuoteLeg{Price: 3, Qty: 1}})
	op.State = domain.Acked

	side := ProjectAsk(store, store.Quote())
	require.False(t, side.Active)
}
