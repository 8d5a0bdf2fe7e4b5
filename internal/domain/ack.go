package domain

// ProcessAcks walks the store's orders (and, last, the quote singleton)
// in iteration order, acknowledging SentToMarket operations until a
// single global budget of max is exhausted, and returns the number of
// operations acknowledged. Acking is arbitrary-order at the market
// (spec.md §4.5 simplifies the original's "pick an arbitrary
// SentToMarket operation" to chronological-per-owner — see DESIGN.md
// Open Question: ack ordering).
//
// Grounded on main.cpp's AckOrderOperations, including its one-shot
// global budget (itemsAcked is not reset per order).
func (s *Store) ProcessAcks(max int) int {
	acked := 0
	for _, o := range s.Orders() {
		if o.State == Finalised {
			continue
		}
		acked += s.ackChain(o.Ops, &o.State, false, max-acked)
		if acked >= max {
			return acked
		}
	}
	acked += s.ackChain(s.quote.Ops, &s.quote.State, true, max-acked)
	return acked
}

// ackChain acknowledges SentToMarket operations in chronological order
// within one owner's chain, up to budget entries; operations in any other
// state are skipped.
func (s *Store) ackChain(ops []OpID, state *OrderState, isQuote bool, budget int) int {
	acked := 0
	for _, id := range ops {
		if acked >= budget {
			break
		}
		op, ok := s.ops[id]
		if !ok {
			continue
		}
		if op.State != SentToMarket {
			continue
		}
		op.State = Acked
		acked++
		applyAckTransition(state, op.Kind, isQuote)
	}
	return acked
}

// applyAckTransition is spec.md §4.5's per-operation state-transition
// rule: a delete finalises its owning order, except that the quote
// singleton is never finalised (spec.md I7); any other acked operation
// moves the owner to OnMarket unless a delete is already in flight.
func applyAckTransition(state *OrderState, kind OperationKind, isQuote bool) {
	if kind.IsDelete() {
		if !isQuote {
			*state = Finalised
		}
		return
	}
	if *state != DeleteSentToMarket {
		*state = OnMarket
	}
}
