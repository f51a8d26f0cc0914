package produce

import (
	"go.uber.org/zap"

	"github.com/grafite-dev/grafite/value"
)

// Mutate transitions node to the copied state if needed, applies the
// mutation to the copy, and rewires every recorded ancestor to reference
// the copy. This is the single entry point drafts use for writes.
func (tx *Tx) Mutate(node any, apply func(copy any)) {
	t := tx.mustLookup(node)
	if t.copy == nil {
		t.copy = tx.makeCopy(node)
	}
	apply(t.copy)
	tx.logger.Debug("mutate", zap.Stringer("kind", value.KindOf(node)))
	tx.propagate(node, t)
}

func (tx *Tx) makeCopy(node any) any {
	c := shallowClone(node)
	tx.byCopy[c] = node
	tx.logger.Debug("copy", zap.Stringer("kind", value.KindOf(node)))
	return c
}

// rewireItem is one pending splice: child's copy must replace child inside
// parent's copy.
type rewireItem struct {
	child  any
	parent any
	key    any
}

// propagate walks upward from a freshly mutated node through all recorded
// parent links, copying ancestors on first touch and splicing each child's
// copy into its parent's copy. An explicit worklist keeps deep graphs off
// the call stack, and the per-parent rewired set bounds the walk: each
// (parent, child) pair is spliced at most once per invocation, so cycles
// and diamond-shaped sharing terminate.
func (tx *Tx) propagate(node any, t *tracked) {
	work := make([]rewireItem, 0, len(t.parents))
	for l := range t.parents {
		work = append(work, rewireItem{child: node, parent: l.parent, key: l.key})
	}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]

		p := tx.mustLookup(it.parent)
		if _, done := p.rewired[it.child]; done {
			continue
		}
		p.rewired[it.child] = struct{}{}
		if p.copy == nil {
			p.copy = tx.makeCopy(it.parent)
		}
		c := tx.mustLookup(it.child)
		splice(p.copy, it.key, it.child, c.copy)
		tx.logger.Debug("rewire",
			zap.Stringer("parent", value.KindOf(it.parent)),
			zap.Stringer("child", value.KindOf(it.child)))

		for l := range p.parents {
			work = append(work, rewireItem{child: it.parent, parent: l.parent, key: l.key})
		}
	}
}

// splice points parentCopy's slot at key to childCopy. The slot is only
// rewritten while it still holds the child (or an earlier splice of its
// copy); a slot the caller overwrote with something else is left alone.
func splice(parentCopy, key, child, childCopy any) {
	switch p := parentCopy.(type) {
	case *value.Object:
		k := key.(string)
		if cur, ok := p.Get(k); ok && (sameValue(cur, child) || sameValue(cur, childCopy)) {
			p.Set(k, childCopy)
		}
	case *value.List:
		i := key.(int)
		if i >= 0 && i < p.Len() {
			if cur := p.Get(i); sameValue(cur, child) || sameValue(cur, childCopy) {
				p.Set(i, childCopy)
			}
		}
	case *value.Dict:
		if cur, ok := p.Get(key); ok && (sameValue(cur, child) || sameValue(cur, childCopy)) {
			p.Set(key, childCopy)
		}
	case *value.Set:
		if p.Has(child) {
			p.Replace(child, childCopy)
		}
	case *value.Box:
		if cur := p.Value(); sameValue(cur, child) || sameValue(cur, childCopy) {
			p.SetValue(childCopy)
		}
	default:
		panic("produce: invariant violation: rewiring into non-container copy")
	}
}
