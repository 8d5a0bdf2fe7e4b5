// Package orders implements the Order/Quote State Machine (spec.md §4.3):
// the public operations an ActionSource drives — InsertOrder, AmendOrder,
// DeleteOrder, Quote, DeleteQuote — each running the Cross-Checker before
// handing accepted operations to the Throttle-Queue.
//
// Grounded on main.cpp's InsertOrder/AmendOrder/DeleteOrder/Quote
// functions, reshaped from free functions over global state into methods
// on a Manager value (spec.md §9 Design Notes).
package orders

import (
	"ordermanager/internal/domain"
	"ordermanager/internal/risk"
	"ordermanager/internal/throttle"
)

// Manager owns no state of its own beyond the references it orchestrates:
// the Store (C4's data), the Queue (C3), and the Sink the queue releases
// to (C6, via throttle.Sink).
type Manager struct {
	Store *domain.Store
	Queue *throttle.Queue
	Sink  throttle.Sink
	Rand  domain.Random
}

func NewManager(store *domain.Store, queue *throttle.Queue, sink throttle.Sink, rng domain.Random) *Manager {
	return &Manager{Store: store, Queue: queue, Sink: sink, Rand: rng}
}

// InsertOrder creates a new order and runs the Cross-Checker on it before
// submitting to the throttle. On cross, the order is discarded entirely
// and no market operation is ever emitted (spec.md §4.3).
func (m *Manager) InsertOrder(side domain.Side, price domain.Price, qty domain.Qty) (*domain.Order, domain.Outcome) {
	order, op := m.Store.CreateOrder(side, price, qty)
	if !risk.CheckOrder(m.Store, order) {
		m.Store.RemoveOrder(order.ID)
		return order, domain.Rejected
	}
	return order, m.Queue.Submit(m.Store, op, m.Sink, m.Rand)
}

// AmendOrder mutates the order's intent immediately, then runs the
// Cross-Checker on the amended state. On cross, the just-appended amend
// is popped and the order is killed via DeleteOrder (spec.md §4.3, P6).
func (m *Manager) AmendOrder(order *domain.Order, newPrice domain.Price, newQty domain.Qty) domain.Outcome {
	order.Price = newPrice
	order.Qty = newQty
	op := m.Store.AppendOrderOp(order, domain.AmendOrder, &domain.OrderLeg{Price: newPrice, Qty: newQty})

	if !risk.CheckOrder(m.Store, order) {
		m.Store.PopLastOp(order)
		return m.DeleteOrder(order)
	}
	return m.Queue.Submit(m.Store, op, m.Sink, m.Rand)
}

// DeleteOrder appends a DeleteOrder op and either finalises the order
// immediately (it never touched the market) or evicts any queued
// predecessor and submits the delete through the throttle (spec.md §4.3).
func (m *Manager) DeleteOrder(order *domain.Order) domain.Outcome {
	op := m.Store.AppendOrderOp(order, domain.DeleteOrder, &domain.OrderLeg{Price: order.Price, Qty: order.Qty})

	if order.State == domain.PriorToMarket {
		m.Queue.Evict(order.ID)
		order.State = domain.Finalised
		m.Store.RemoveOrder(order.ID)
		return domain.RemovedPreMarket
	}

	m.Queue.Evict(order.ID)
	m.Store.DiscardQueuedPredecessors(op)
	order.State = domain.DeleteSentToMarket
	return m.Queue.Submit(m.Store, op, m.Sink, m.Rand)
}

// Quote appends an InsertQuote operation to the quote singleton. Either
// leg of legs may be nil, meaning "no active value on that side" (spec.md
// §3). A quote is never rejected for being queued — only for crossing.
func (m *Manager) Quote(legs *domain.QuoteLegs) domain.Outcome {
	op := m.Store.AppendQuoteOp(domain.InsertQuote, legs)
	if !risk.CheckQuote(m.Store, legs) {
		m.Store.PopLastQuoteOp()
		return domain.Rejected
	}
	return m.Queue.Submit(m.Store, op, m.Sink, m.Rand)
}

// DeleteQuote appends a DeleteQuote operation and submits it through the
// throttle; the singleton itself is never removed (spec.md §4.3, I7).
func (m *Manager) DeleteQuote() domain.Outcome {
	q := m.Store.Quote()
	op := m.Store.AppendQuoteOp(domain.DeleteQuote, &domain.QuoteLegs{})
	m.Queue.Evict(q.ID)
	m.Store.DiscardQueuedPredecessors(op)
	return m.Queue.Submit(m.Store, op, m.Sink, m.Rand)
}

// RandomLiveOrder exposes Store.GetRandomLiveOrder for action generation,
// which must exclude the quote singleton and any order not in
// OnMarket|PriorToMarket (spec.md §4.3).
func (m *Manager) RandomLiveOrder() (*domain.Order, bool) {
	return m.Store.GetRandomLiveOrder(m.Rand)
}
