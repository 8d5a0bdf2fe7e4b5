package domain

// OrderID and OpID are stable handles into a Store's internal maps.
//
// The original C++ core threaded raw Operation* pointers through the
// throttle queue and the market mirror (see spec.md §9 Design Notes).
// Go's GC removes the dangling-pointer hazard that motivated replacing
// those with a generational arena index, but the *logical* hazard
// remains: a handle must not resolve to an entity that has since been
// finalised and garbage-collected from the book. A plain, never-reused
// sequential id looked up through Store's maps gives exactly that
// property — a stale handle simply fails to resolve — without the extra
// bookkeeping a generation counter would add for no benefit on top of Go's
// memory model. See DESIGN.md ("Stable identifiers over a generational
// arena").
type OrderID uint64

type OpID uint64

// QuoteOrderID is the reserved, never-recycled handle for the singleton
// quote book (spec.md I7: "The singleton QuoteBook always exists from
// InitQuotes until shutdown").
const QuoteOrderID OrderID = 1
