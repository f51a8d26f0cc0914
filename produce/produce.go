package produce

import (
	"github.com/grafite-dev/grafite/value"
)

// Recipe is the caller-supplied mutation procedure. It receives the draft
// of the source graph (or the source itself when it is an inert primitive)
// and the untouched original. Returning a non-nil value makes that value
// the result of Produce, discarding the draft's changes; returning nil (or
// the draft itself) means "use the mutated draft". Return Nothing to make
// the result nil explicitly.
type Recipe func(draft, original any) (any, error)

// nothing is the type of the Nothing sentinel.
type nothing struct{}

// Nothing, returned from a Recipe, makes the result of Produce nil.
// Go cannot tell "returned nothing" apart from "returned nil", so nil
// means "use the draft" and Nothing means "produce nil".
var Nothing any = nothing{}

// Produce runs one copy-on-write update over source and returns the
// resulting graph.
//
// When the recipe mutates nothing, the result is source itself, reference
// identity preserved and no allocation done. Otherwise the result is a new
// graph sharing every unmutated subgraph with source by reference. Errors
// from the recipe propagate unchanged; the source graph is untouched either
// way, since every write lands on a copy.
//
// Each call owns its tracking state and runs synchronously on the calling
// goroutine. Concurrent Produce calls are fine as long as they operate on
// graphs no other goroutine is mutating; changing the source graph directly
// while an invocation is in flight is undefined behavior.
func Produce(source any, recipe Recipe, opts ...Option) (any, error) {
	if !value.IsNode(source) {
		// Wrapping is meaningless for inert values.
		ret, err := recipe(source, source)
		if err != nil {
			return nil, err
		}
		return finalizeReturn(nil, ret, source)
	}

	tx := newTx(opts...)
	root := tx.Wrap(source, nil, nil)
	ret, err := recipe(root, source)
	if err != nil {
		return nil, err
	}
	if ret != nil && !sameValue(ret, root) {
		return finalizeReturn(tx, ret, source)
	}
	if t, ok := tx.nodes[source]; ok && t.copy != nil {
		return t.copy, nil
	}
	return source, nil
}

// finalizeReturn resolves an explicit recipe return value: the Nothing
// sentinel yields nil, drafts yield their effective node, and anything else
// passes through. A nil return falls back to fallback.
func finalizeReturn(tx *Tx, ret any, fallback any) (any, error) {
	if ret == nil {
		return fallback, nil
	}
	if _, ok := ret.(nothing); ok {
		return nil, nil
	}
	if d, ok := ret.(Draft); ok && tx != nil {
		return tx.Effective(d.Original()), nil
	}
	return ret, nil
}
