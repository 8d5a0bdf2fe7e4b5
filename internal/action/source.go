// Package action defines the pluggable ActionSource collaborator
// (spec.md §6) and a default seeded-random generator implementation,
// mirroring main.cpp's Action enum and GenerateOrderOperations/
// PerformAction.
//
// Structured as an interface plus a concrete implementation file, the
// shape the teacher repo uses for its pluggable strategy package.
package action

// Kind enumerates the distinct action tokens an ActionSource can emit.
// Several of the generator's tokens collapse to the same Kind (the
// repeated quote and amend tokens only weight the draw, see random.go);
// Source.Batch returns one Kind per drawn token, so each token yields a
// single action.
type Kind int

const (
	InsertOrder Kind = iota
	AmendOrder
	DeleteOrder
	Quote
	DeleteQuote
)

// Source produces a batch of action tokens for one tick.
type Source interface {
	Batch() []Kind
}
