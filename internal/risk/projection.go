// Package risk implements the Price-Projection (spec.md §4.1) and
// Cross-Checker (spec.md §4.2) components. Both are grounded on
// main.cpp's GetLivePrice/CheckPendingInsertOrAmend/CheckPendingQuote,
// translated from raw-pointer operation chains into lookups through a
// domain.Store.
package risk

import "ordermanager/internal/domain"

func maxPrice(a, b domain.Price) domain.Price {
	if a > b {
		return a
	}
	return b
}

func minPrice(a, b domain.Price) domain.Price {
	if a < b {
		return a
	}
	return b
}

func aggregatorFor(side domain.Side) func(domain.Price, domain.Price) domain.Price {
	if side == domain.Buy {
		return maxPrice
	}
	return minPrice
}

// LivePrice returns the worst-case-against-cross projected price for an
// order: agg(inflight, lastAcked), where agg is max for Buy and min for
// Sell (spec.md §4.1). Directly mirrors main.cpp's GetLivePrice.
func LivePrice(book *domain.Store, order *domain.Order) domain.Price {
	agg := aggregatorFor(order.Side)
	inflight := order.Price
	lastAcked := order.Price

	for _, id := range order.Ops {
		op, ok := book.Op(id)
		if !ok || op.Single == nil {
			continue
		}
		if op.Kind != domain.InsertOrder && op.Kind != domain.AmendOrder {
			continue
		}
		if op.State == domain.Acked {
			lastAcked = op.Single.Price
		} else {
			inflight = agg(op.Single.Price, inflight)
		}
	}
	return agg(inflight, lastAcked)
}

// QuoteSide is one leg of the quote's projected price.
type QuoteSide struct {
	Price  domain.Price
	Active bool // false means "no active value on this side" (spec.md §3)
}

// ProjectAsk returns the quote's projected lowest ask: min over every
// unacked InsertQuote ask leg and the latest acked ask leg (spec.md
// §4.1). Active is false if the quote has never carried an ask.
func ProjectAsk(book *domain.Store, q *domain.QuoteBook) QuoteSide {
	return projectQuoteSide(book, q, true)
}

// ProjectBid returns the quote's projected highest bid, symmetric to
// ProjectAsk.
func ProjectBid(book *domain.Store, q *domain.QuoteBook) QuoteSide {
	return projectQuoteSide(book, q, false)
}

func projectQuoteSide(book *domain.Store, q *domain.QuoteBook, ask bool) QuoteSide {
	var lastAcked, extreme domain.Price
	haveAcked, haveUnacked := false, false

	for _, id := range q.Ops {
		op, ok := book.Op(id)
		if !ok || op.Kind != domain.InsertQuote || op.Quote == nil {
			continue
		}
		var leg *domain.QuoteLeg
		if ask {
			leg = op.Quote.Ask
		} else {
			leg = op.Quote.Bid
		}
		if leg == nil {
			continue
		}
		if op.State == domain.Acked {
			lastAcked = leg.Price
			haveAcked = true
			continue
		}
		if !haveUnacked {
			extreme = leg.Price
			haveUnacked = true
			continue
		}
		if ask {
			extreme = minPrice(extreme, leg.Price)
		} else {
			extreme = maxPrice(extreme, leg.Price)
		}
	}

	switch {
	case haveAcked && haveUnacked:
		if ask {
			return QuoteSide{Price: minPrice(lastAcked, extreme), Active: true}
		}
		return QuoteSide{Price: maxPrice(lastAcked, extreme), Active: true}
	case haveAcked:
		return QuoteSide{Price: lastAcked, Active: true}
	case haveUnacked:
		return QuoteSide{Price: extreme, Active: true}
	default:
		return QuoteSide{Active: false}
	}
}
