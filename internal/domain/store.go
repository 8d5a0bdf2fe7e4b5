package domain

// Random is the seeded source of randomness threaded through the
// simulation (spec.md §5: "every stochastic decision must be reproducible
// from a single seed"). Satisfied by *rand.Rand.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Store is the in-memory arena for orders, the quote singleton, and
// operations. It owns identifier allocation and the invariant-preserving
// primitives (append an operation, finalise and remove an order, discard
// superseded queued operations); it does not decide whether a given
// operation is accepted, throttled, or crosses — that is internal/risk,
// internal/throttle, and internal/orders layered on top.
//
// Grounded on the teacher's in-process domain model (internal/domain):
// plain maps and slices rather than a database, since spec.md's Non-goals
// exclude persistence.
type Store struct {
	nextOrderID OrderID
	nextOpID    OpID

	orders   map[OrderID]*Order
	orderSeq []OrderID // insertion order, for GetRandomLiveOrder/Orders

	quote *QuoteBook
	ops   map[OpID]*Operation
}

// NewStore creates a Store with the quote singleton already initialised
// at QuoteOrderID (spec.md I7 / main.cpp's InitQuotes).
func NewStore() *Store {
	s := &Store{
		nextOrderID: QuoteOrderID + 1,
		nextOpID:    1,
		orders:      make(map[OrderID]*Order),
		ops:         make(map[OpID]*Operation),
	}
	s.quote = &QuoteBook{ID: QuoteOrderID, State: PriorToMarket}
	return s
}

func (s *Store) Quote() *QuoteBook { return s.quote }

func (s *Store) Order(id OrderID) (*Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) Op(id OpID) (*Operation, bool) {
	op, ok := s.ops[id]
	return op, ok
}

// Orders returns live and dead orders in insertion order. Callers wanting
// only live orders should filter by State.
func (s *Store) Orders() []*Order {
	out := make([]*Order, 0, len(s.orderSeq))
	for _, id := range s.orderSeq {
		if o, ok := s.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) NumOrders() int { return len(s.orders) }

// CreateOrder allocates a new order and its opening InsertOrder
// operation, both in Initial state (main.cpp's InsertOrder, pre-check).
func (s *Store) CreateOrder(side Side, price Price, qty Qty) (*Order, *Operation) {
	id := s.nextOrderID
	s.nextOrderID++
	o := &Order{ID: id, Side: side, Price: price, Qty: qty, State: PriorToMarket}
	s.orders[id] = o
	s.orderSeq = append(s.orderSeq, id)

	op := s.newOp(id, InsertOrder, 0, false)
	op.Single = &OrderLeg{Price: price, Qty: qty}
	o.Ops = append(o.Ops, op.ID)
	return o, op
}

// AppendOrderOp allocates and appends a new order-side operation to an
// existing order's chain.
func (s *Store) AppendOrderOp(order *Order, kind OperationKind, leg *OrderLeg) *Operation {
	prev, hasPrev := order.LastOpID()
	op := s.newOp(order.ID, kind, prev, hasPrev)
	op.Single = leg
	order.Ops = append(order.Ops, op.ID)
	return op
}

// AppendQuoteOp allocates and appends a new two-sided quote operation to
// the quote singleton's chain. An operation that follows a DeleteQuote has
// no previous operation: the delete already took the quote off the market.
func (s *Store) AppendQuoteOp(kind OperationKind, legs *QuoteLegs) *Operation {
	prev, hasPrev := s.quote.LastOpID()
	if last, ok := s.ops[prev]; hasPrev && ok && last.Kind == DeleteQuote {
		prev, hasPrev = 0, false
	}
	op := s.newOp(s.quote.ID, kind, prev, hasPrev)
	op.Quote = legs
	s.quote.Ops = append(s.quote.Ops, op.ID)
	return op
}

// PopLastOp removes an order's most recently appended operation,
// undoing AppendOrderOp. Used when a freshly-appended amend fails the
// cross-check (spec.md §4.3: "pop the just-appended amend").
func (s *Store) PopLastOp(order *Order) {
	if len(order.Ops) == 0 {
		return
	}
	id := order.Ops[len(order.Ops)-1]
	order.Ops = order.Ops[:len(order.Ops)-1]
	delete(s.ops, id)
}

// PopLastQuoteOp is PopLastOp's quote-singleton counterpart.
func (s *Store) PopLastQuoteOp() {
	q := s.quote
	if len(q.Ops) == 0 {
		return
	}
	id := q.Ops[len(q.Ops)-1]
	q.Ops = q.Ops[:len(q.Ops)-1]
	delete(s.ops, id)
}

// RemoveOrder finalises and deletes an order from the store entirely. Only
// valid for orders that never reached the market (spec.md §4.3
// InsertOrder/AmendOrder rejection, and the PriorToMarket DeleteOrder
// shortcut).
func (s *Store) RemoveOrder(id OrderID) {
	o, ok := s.orders[id]
	if !ok {
		return
	}
	for _, opID := range o.Ops {
		delete(s.ops, opID)
	}
	delete(s.orders, id)
}

// DiscardQueuedPredecessors removes any earlier operation in op's owning
// chain that is still in state Queued, and rewires op.Previous/HasPrev to
// point past the discarded entry (main.cpp's RemoveDiscardedOperations).
// At most one such predecessor can exist per I2/I1, but the loop is
// written to tolerate more defensively.
func (s *Store) DiscardQueuedPredecessors(op *Operation) {
	chain := s.chainFor(op.OrderID)
	if chain == nil {
		return
	}
	kept := (*chain)[:0:0]
	for _, id := range *chain {
		if id == op.ID {
			kept = append(kept, id)
			continue
		}
		prior, ok := s.ops[id]
		if !ok {
			continue
		}
		if prior.State == Queued {
			op.Previous = prior.Previous
			op.HasPrev = prior.HasPrev
			delete(s.ops, id)
			continue
		}
		kept = append(kept, id)
	}
	*chain = kept
}

// chainFor returns a pointer to the Ops slice owning id's operations,
// whichever of Order.Ops/QuoteBook.Ops that is.
func (s *Store) chainFor(orderID OrderID) *[]OpID {
	if orderID == s.quote.ID {
		return &s.quote.Ops
	}
	if o, ok := s.orders[orderID]; ok {
		return &o.Ops
	}
	return nil
}

func (s *Store) newOp(orderID OrderID, kind OperationKind, prev OpID, hasPrev bool) *Operation {
	id := s.nextOpID
	s.nextOpID++
	op := &Operation{ID: id, OrderID: orderID, Previous: prev, HasPrev: hasPrev, Kind: kind, State: Initial}
	s.ops[id] = op
	return op
}

// GetRandomLiveOrder uniformly samples a live order (not the quote
// singleton, not Finalised, not DeleteSentToMarket) via bounded
// resampling, mirroring main.cpp's GetRandomLiveOrder. Returns false if no
// such order exists after a bounded number of attempts.
func (s *Store) GetRandomLiveOrder(rng Random) (*Order, bool) {
	n := len(s.orderSeq)
	if n == 0 {
		return nil, false
	}
	const maxAttempts = 64
	for attempt := 0; attempt < maxAttempts && attempt < n*4+8; attempt++ {
		id := s.orderSeq[rng.Intn(n)]
		o, ok := s.orders[id]
		if !ok {
			continue
		}
		if o.State == Finalised || o.State == DeleteSentToMarket {
			continue
		}
		return o, true
	}
	return nil, false
}
