package market

import "sync"

// PaperSink is a MarketSink reference implementation that records every
// operation it receives instead of forwarding it anywhere, the way the
// teacher's paper execution simulator records fills instead of touching
// a real exchange. Useful for tests and for running the simulator
// without a live downstream connector.
type PaperSink struct {
	mu  sync.Mutex
	log []WireOperation
}

func NewPaperSink() *PaperSink {
	return &PaperSink{}
}

func (p *PaperSink) Send(op WireOperation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = append(p.log, op)
}

// Received returns every WireOperation recorded so far, oldest first.
func (p *PaperSink) Received() []WireOperation {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]WireOperation, len(p.log))
	copy(out, p.log)
	return out
}

func (p *PaperSink) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.log)
}
