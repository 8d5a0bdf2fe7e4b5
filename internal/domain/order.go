package domain

// Order is a single-sided client order. Its Price/Qty fields are the
// *intent* — the latest caller-requested values — not the market-resident
// price, which is a function over the operation chain (see internal/risk).
type Order struct {
	ID    OrderID
	Side  Side
	Price Price
	Qty   Qty
	State OrderState

	// Ops is the ordered, append-mostly chain of operation handles for this
	// order (spec.md I1: only the last may be Initial/Queued).
	Ops []OpID
}

// LastOpID returns the handle of the order's most recent operation, and
// false if the order has no operations yet.
func (o *Order) LastOpID() (OpID, bool) {
	if len(o.Ops) == 0 {
		return 0, false
	}
	return o.Ops[len(o.Ops)-1], true
}

// QuoteBook is the process-wide two-sided quote singleton (spec.md §9
// Design Notes option (a): a dedicated type rather than a tagged Order).
type QuoteBook struct {
	ID    OrderID
	State OrderState

	// Ops is the ordered chain of InsertQuote/DeleteQuote operation
	// handles. Unlike a single Order this chain is pruned periodically by
	// Store.GCQuoteOps (spec.md §6 QuoteOpsGcThreshold/QuoteOpsGcKeepTail)
	// rather than only at finalisation, since the singleton never
	// finalises.
	Ops []OpID
}

// LastOpID returns the handle of the quote book's most recent operation,
// and false if it has none yet.
func (q *QuoteBook) LastOpID() (OpID, bool) {
	if len(q.Ops) == 0 {
		return 0, false
	}
	return q.Ops[len(q.Ops)-1], true
}
