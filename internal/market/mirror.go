// Package market implements the Market Mirror (spec.md §4.6): a local
// replica of what the market currently believes is resting, used purely
// to assert the no-cross invariant before an operation is allowed to
// leave the process.
//
// Grounded on main.cpp's global `marketOperations` set and its
// SendToMarket function; the aggregation/no-cross check mirrors
// SendToMarket's bid/ask map construction.
package market

import (
	"ordermanager/internal/domain"
	"ordermanager/internal/safe"
)

// WireOperation is the external descriptor sent to a MarketSink
// (spec.md §6).
type WireOperation struct {
	OrderID      domain.OrderID
	OpID         domain.OpID
	Kind         domain.OperationKind
	PreviousOpID domain.OpID
	HasPrevious  bool
	Single       *domain.OrderLeg
	Quote        *domain.QuoteLegs
}

func toWire(op *domain.Operation) WireOperation {
	return WireOperation{
		OrderID:      op.OrderID,
		OpID:         op.ID,
		Kind:         op.Kind,
		PreviousOpID: op.Previous,
		HasPrevious:  op.HasPrev,
		Single:       op.Single,
		Quote:        op.Quote,
	}
}

// MarketSink is the opaque external collaborator spec.md §1 puts out of
// scope: "the market itself ... accepts operations". Mirror forwards
// every validated SendToMarket call to one.
type MarketSink interface {
	Send(WireOperation)
}

// NoopSink discards everything; NewMirror uses it when passed a nil sink.
type NoopSink struct{}

func (NoopSink) Send(WireOperation) {}

// Mirror is the local belief of what is resting at the market: a
// multiset of operation references (spec.md §3 Ownership: Mirror holds
// only non-owning references).
type Mirror struct {
	resting map[domain.OpID]*domain.Operation
	sink    MarketSink
}

func NewMirror(sink MarketSink) *Mirror {
	if sink == nil {
		sink = NoopSink{}
	}
	return &Mirror{resting: make(map[domain.OpID]*domain.Operation), sink: sink}
}

// Send implements throttle.Sink: advance op and its owner to
// SentToMarket/OnMarket (or DeleteSentToMarket), reconcile the mirror
// against op.Previous, verify the no-cross invariant, and forward the
// wire descriptor downstream (spec.md §4.6).
func (m *Mirror) Send(store *domain.Store, op *domain.Operation) {
	op.State = domain.SentToMarket
	m.setOwnerState(store, op)

	if op.HasPrev {
		if _, ok := m.resting[op.Previous]; !ok {
			domain.Raise("MIRROR_PREV_MISSING", "previousOperation absent from market mirror", op.OrderID, op.ID)
		}
		delete(m.resting, op.Previous)
	}
	if restingKind(op.Kind) {
		m.resting[op.ID] = op
	}

	m.checkNoCross(store, op)
	m.sink.Send(toWire(op))
}

func restingKind(k domain.OperationKind) bool {
	return k == domain.InsertOrder || k == domain.AmendOrder || k == domain.InsertQuote
}

func (m *Mirror) setOwnerState(store *domain.Store, op *domain.Operation) {
	if op.OrderID == store.Quote().ID {
		q := store.Quote()
		if op.Kind.IsDelete() {
			q.State = domain.DeleteSentToMarket
		} else {
			q.State = domain.OnMarket
		}
		return
	}
	o, ok := store.Order(op.OrderID)
	if !ok {
		return
	}
	if op.Kind.IsDelete() {
		o.State = domain.DeleteSentToMarket
	} else {
		o.State = domain.OnMarket
	}
}

// Aggregate returns the current bid/ask price->qty maps, computed fresh
// from the resting set (spec.md §4.6 step 4, and SPEC_FULL §4.7's
// supplemental stats snapshot).
func (m *Mirror) Aggregate(store *domain.Store) (bids, asks map[domain.Price]domain.Qty) {
	bids = make(map[domain.Price]domain.Qty)
	asks = make(map[domain.Price]domain.Qty)
	quoteID := store.Quote().ID

	for _, op := range m.resting {
		if op.OrderID == quoteID {
			if op.Quote == nil {
				continue
			}
			if op.Quote.Bid != nil {
				bids[op.Quote.Bid.Price] = domain.Qty(safe.AddQty(int(bids[op.Quote.Bid.Price]), int(op.Quote.Bid.Qty)))
			}
			if op.Quote.Ask != nil {
				asks[op.Quote.Ask.Price] = domain.Qty(safe.AddQty(int(asks[op.Quote.Ask.Price]), int(op.Quote.Ask.Qty)))
			}
			continue
		}
		o, ok := store.Order(op.OrderID)
		if !ok || op.Single == nil {
			continue
		}
		if o.Side == domain.Buy {
			bids[op.Single.Price] = domain.Qty(safe.AddQty(int(bids[op.Single.Price]), int(op.Single.Qty)))
		} else {
			asks[op.Single.Price] = domain.Qty(safe.AddQty(int(asks[op.Single.Price]), int(op.Single.Qty)))
		}
	}
	return bids, asks
}

func (m *Mirror) checkNoCross(store *domain.Store, op *domain.Operation) {
	bids, asks := m.Aggregate(store)
	for price := range bids {
		if _, crossed := asks[price]; crossed {
			domain.Raise("MIRROR_CROSS", "price level populated on both bid and ask", op.OrderID, op.ID)
		}
	}
}

// Len reports how many operations currently rest in the mirror.
func (m *Mirror) Len() int { return len(m.resting) }
