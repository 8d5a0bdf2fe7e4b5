package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessAcksFinalisesOrderOnDeleteAck(t *testing.T) {
	s := NewStore()
	order, insertOp := s.CreateOrder(Buy, Price(5), Qty(1))
	insertOp.State = Acked
	order.State = OnMarket
	deleteOp := s.AppendOrderOp(order, DeleteOrder, &OrderLeg{Price: 5, Qty: 1})
	deleteOp.State = SentToMarket
	order.State = DeleteSentToMarket

	acked := s.ProcessAcks(1)
	require.Equal(t, 1, acked)
	require.Equal(t, Finalised, order.State)
}

func TestProcessAcksNeverFinalisesTheQuoteSingleton(t *testing.T) {
	s := NewStore()
	op := s.AppendQuoteOp(DeleteQuote, &QuoteLegs{})
	op.State = SentToMarket
	s.quote.State = DeleteSentToMarket

	acked := s.ProcessAcks(5)
	require.Equal(t, 1, acked)
	require.Equal(t, Acked, op.State)
	require.NotEqual(t, Finalised, s.quote.State)
}

func TestProcessAcksSpendsASingleGlobalBudgetAcrossAllOrders(t *testing.T) {
	s := NewStore()
	orderA, opA := s.CreateOrder(Buy, Price(5), Qty(1))
	opA.State = SentToMarket
	orderA.State = OnMarket

	orderB, opB := s.CreateOrder(Sell, Price(6), Qty(1))
	opB.State = SentToMarket
	orderB.State = OnMarket

	acked := s.ProcessAcks(1)
	require.Equal(t, 1, acked, "the budget is shared across every order, not reset per order")
	require.Equal(t, Acked, opA.State)
	require.Equal(t, SentToMarket, opB.State, "the second order's operation must still be waiting")
}

func TestProcessAcksSkipsOperationsNotYetSentToMarket(t *testing.T) {
	s := NewStore()
	order, op := s.CreateOrder(Buy, Price(5), Qty(1))
	require.Equal(t, Initial, op.State)

	acked := s.ProcessAcks(10)
	require.Equal(t, 0, acked)
	require.Equal(t, PriorToMarket, order.State)
}
