// Package engine implements the Driver loop (spec.md §4.7/C7): one
// logical tick running ActionSource drains → ThrottleQueue flush → Ack
// processing → optional garbage collection, single-threaded and
// cooperative (spec.md §5).
//
// Grounded on main.cpp's main() loop body and its
// GenerateOrderOperations/ProcessThrottleQueue/AckOrderOperations/GC
// sequence, and on the teacher's engine.Sequencer.Run for the
// recover+dump+re-panic wrapper around invariant violations.
package engine

import (
	"fmt"
	"log/slog"

	"ordermanager/internal/action"
	"ordermanager/internal/domain"
	"ordermanager/internal/infra"
	"ordermanager/internal/market"
	"ordermanager/internal/orders"
	"ordermanager/internal/throttle"
)

// Limits bundles the per-tick policy knobs spec.md §6 fixes at process
// start (no dynamic reload).
type Limits struct {
	MaxOperationsToClearFromQueue int
	MaxOperationsToAcknowledge    int
	UpperPrice                    domain.Price
	OrderGcThreshold              int
	QuoteOpsGcThreshold           int
	QuoteOpsGcKeepTail            int
}

// Simulation stitches C1-C6 into Tick. It owns the single seeded Random
// threaded through every stochastic decision (spec.md §5).
type Simulation struct {
	Store   *domain.Store
	Queue   *throttle.Queue
	Mirror  *market.Mirror
	Manager *orders.Manager
	Source  action.Source
	Rand    domain.Random
	Limits  Limits
	Log     *slog.Logger
	Metrics *infra.Metrics

	TickCount int
}

func New(store *domain.Store, queue *throttle.Queue, mirror *market.Mirror, mgr *orders.Manager, src action.Source, rng domain.Random, limits Limits, log *slog.Logger, metrics *infra.Metrics) *Simulation {
	if log == nil {
		log = slog.Default()
	}
	return &Simulation{Store: store, Queue: queue, Mirror: mirror, Manager: mgr, Source: src, Rand: rng, Limits: limits, Log: log, Metrics: metrics}
}

// Tick runs one full generate/flush/ack/gc cycle. A domain.Violation
// panic during the tick is dumped and re-raised: the process must abort
// rather than continue from a state that has already broken an
// invariant (spec.md §7).
func (s *Simulation) Tick() {
	defer func() {
		if r := recover(); r != nil {
			if v, ok := r.(*domain.Violation); ok {
				s.dumpState(v)
			}
			panic(r)
		}
	}()

	s.TickCount++
	s.generate()
	s.Queue.Flush(s.Store, s.Mirror, s.Rand, s.Limits.MaxOperationsToClearFromQueue)
	acked := s.Store.ProcessAcks(s.Rand.Intn(s.Limits.MaxOperationsToAcknowledge + 1))
	s.Log.Debug("tick complete", "tick", s.TickCount, "acked", acked, "orders", s.Store.NumOrders(), "queued", s.Queue.Len())

	if removed := s.Store.GCFinalisedOrders(s.Limits.OrderGcThreshold); removed > 0 {
		s.Log.Info("gc: cleared finalised orders", "removed", removed)
	}
	if trimmed := s.Store.GCQuoteOps(s.Limits.QuoteOpsGcThreshold, s.Limits.QuoteOpsGcKeepTail); trimmed > 0 {
		s.Log.Info("gc: trimmed quote operations", "trimmed", trimmed)
	}

	if s.Metrics != nil {
		s.Metrics.TicksTotal.Inc()
		s.Metrics.Acked.Add(float64(acked))
		s.Metrics.QueueDepth.Set(float64(s.Queue.Len()))
		s.Metrics.MirrorRestSize.Set(float64(s.Mirror.Len()))
		live := 0
		for _, o := range s.Store.Orders() {
			if o.State != domain.Finalised {
				live++
			}
		}
		s.Metrics.OrdersLive.Set(float64(live))
	}
}

func (s *Simulation) generate() {
	for _, kind := range s.Source.Batch() {
		s.dispatch(kind)
	}
}

func (s *Simulation) dispatch(kind action.Kind) {
	if s.Metrics != nil {
		s.Metrics.ActionsTotal.WithLabelValues(kindLabel(kind)).Inc()
	}
	switch kind {
	case action.InsertOrder:
		side := s.randomSide()
		price := s.randomPrice(1, s.Limits.UpperPrice)
		qty := s.randomQty()
		_, outcome := s.Manager.InsertOrder(side, price, qty)
		s.recordOutcome(outcome)
		s.Log.Debug("insert order", "side", side, "price", price, "qty", qty, "outcome", outcome)

	case action.AmendOrder:
		order, ok := s.Manager.RandomLiveOrder()
		if !ok {
			return
		}
		price := s.randomPrice(1, s.Limits.UpperPrice)
		qty := s.randomQty()
		outcome := s.Manager.AmendOrder(order, price, qty)
		s.recordOutcome(outcome)
		s.Log.Debug("amend order", "order", order.ID, "price", price, "qty", qty, "outcome", outcome)

	case action.DeleteOrder:
		order, ok := s.Manager.RandomLiveOrder()
		if !ok {
			return
		}
		outcome := s.Manager.DeleteOrder(order)
		s.recordOutcome(outcome)
		s.Log.Debug("delete order", "order", order.ID, "outcome", outcome)

	case action.Quote:
		bidPrice := s.randomPrice(1, s.Limits.UpperPrice-1)
		bidQty := s.randomQty()
		askPrice := s.randomPrice(bidPrice+1, s.Limits.UpperPrice)
		askQty := s.randomQty()
		legs := &domain.QuoteLegs{
			Bid: &domain.QuoteLeg{Price: bidPrice, Qty: bidQty},
			Ask: &domain.QuoteLeg{Price: askPrice, Qty: askQty},
		}
		outcome := s.Manager.Quote(legs)
		s.recordOutcome(outcome)
		s.Log.Debug("quote", "bid", bidPrice, "ask", askPrice, "outcome", outcome)

	case action.DeleteQuote:
		outcome := s.Manager.DeleteQuote()
		s.recordOutcome(outcome)
		s.Log.Debug("delete quote", "outcome", outcome)
	}
}

func kindLabel(kind action.Kind) string {
	switch kind {
	case action.InsertOrder:
		return "insert_order"
	case action.AmendOrder:
		return "amend_order"
	case action.DeleteOrder:
		return "delete_order"
	case action.Quote:
		return "quote"
	default:
		return "delete_quote"
	}
}

func (s *Simulation) recordOutcome(outcome domain.Outcome) {
	if s.Metrics != nil {
		s.Metrics.OutcomesTotal.WithLabelValues(outcome.String()).Inc()
	}
}

func (s *Simulation) randomPrice(lower, upper domain.Price) domain.Price {
	if upper <= lower {
		return lower
	}
	return lower + domain.Price(s.Rand.Intn(int(upper-lower)+1))
}

func (s *Simulation) randomQty() domain.Qty {
	return domain.Qty(1 + s.Rand.Intn(100))
}

func (s *Simulation) randomSide() domain.Side {
	if s.Rand.Intn(2) == 0 {
		return domain.Buy
	}
	return domain.Sell
}

func (s *Simulation) dumpState(v *domain.Violation) {
	if s.Metrics != nil {
		s.Metrics.ViolationsTotal.Inc()
	}
	s.Log.Error("invariant violation", "tag", v.Tag, "detail", v.Detail, "order", v.OrderID, "op", v.OpID, "tick", s.TickCount)
	if o, ok := s.Store.Order(v.OrderID); ok {
		s.Log.Error("offending order", "order", fmt.Sprintf("%+v", o))
		for _, id := range o.Ops {
			if op, ok := s.Store.Op(id); ok {
				s.Log.Error("order operation", "op", fmt.Sprintf("%+v", op))
			}
		}
	}
	bids, asks := s.Mirror.Aggregate(s.Store)
	s.Log.Error("market mirror snapshot", "bids", bids, "asks", asks)
}
