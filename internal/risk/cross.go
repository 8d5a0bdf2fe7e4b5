package risk

import "ordermanager/internal/domain"

// liveOpponent reports whether an order is still a live participant in
// cross-checking: not Finalised, not already DeleteSentToMarket (spec.md
// §4.2: "for each order that is not same-side, not Finalised, not
// DeleteSentToMarket").
func liveOpponent(o *domain.Order) bool {
	return o.State != domain.Finalised && o.State != domain.DeleteSentToMarket
}

// CheckOrder decides whether a freshly constructed or just-amended order
// is safe to release, per spec.md §4.2. pending.Price must already hold
// the caller's intended price (InsertOrder sets it at construction;
// AmendOrder mutates it before calling CheckOrder).
func CheckOrder(book *domain.Store, pending *domain.Order) bool {
	quote := book.Quote()

	if pending.Side == domain.Buy {
		ask := ProjectAsk(book, quote)
		if ask.Active && pending.Price >= ask.Price {
			return false // crosses the quote's ask
		}
	} else {
		bid := ProjectBid(book, quote)
		if bid.Active && pending.Price <= bid.Price {
			return false // crosses the quote's bid
		}
	}

	pendingLive := LivePrice(book, pending)
	for _, other := range book.Orders() {
		if other.ID == pending.ID {
			continue
		}
		if other.Side == pending.Side {
			continue
		}
		if !liveOpponent(other) {
			continue
		}
		otherLive := LivePrice(book, other)
		if pending.Side == domain.Buy {
			if pendingLive < otherLive {
				continue
			}
			return false
		}
		if pendingLive > otherLive {
			continue
		}
		return false
	}
	return true
}

// CheckQuote decides whether a pending two-sided quote operation is safe
// to release against every live opposing single order, per spec.md §4.2:
// the ask leg must stay strictly above every buy order's maxLive, the bid
// leg strictly below every sell order's minLive. Quotes never cross
// against themselves.
func CheckQuote(book *domain.Store, legs *domain.QuoteLegs) bool {
	for _, o := range book.Orders() {
		if !liveOpponent(o) {
			continue
		}
		if o.Side == domain.Buy {
			if legs.Ask == nil {
				continue
			}
			maxBuy := LivePrice(book, o)
			if legs.Ask.Price > maxBuy {
				continue
			}
			return false
		}
		if legs.Bid == nil {
			continue
		}
		minSell := LivePrice(book, o)
		if legs.Bid.Price < minSell {
			continue
		}
		return false
	}
	return true
}
