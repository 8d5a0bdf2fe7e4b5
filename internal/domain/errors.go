package domain

import "fmt"

// Violation is raised by panic when a programmer/invariant assumption is
// broken. The Market Mirror raises one for a cross (MIRROR_CROSS) and for
// a previousOperation absent from the mirror on Send (MIRROR_PREV_MISSING).
// No other check raises one: acks are only ever applied to SentToMarket
// operations, and operations on a Finalised order are not checked. These
// are never recoverable; the caller (engine.Simulation.Tick) dumps state and
// re-panics rather than trying to continue.
//
// Grounded on the teacher's domain.Balance.VerifyInvariant/Debit panic
// style (panic with a formatted, greppable tag) and
// engine.Sequencer.Run's recover+DumpState+re-panic wrapper.
type Violation struct {
	Tag     string
	Detail  string
	OrderID OrderID
	OpID    OpID
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s (order=%d op=%d)", v.Tag, v.Detail, v.OrderID, v.OpID)
}

// Raise panics with a Violation. Named to read well at call sites:
// domain.Raise("MIRROR_CROSS", "...", orderID, opID)
func Raise(tag, detail string, orderID OrderID, opID OpID) {
	panic(&Violation{Tag: tag, Detail: detail, OrderID: orderID, OpID: opID})
}
