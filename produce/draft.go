package produce

import (
	"time"

	"github.com/grafite-dev/grafite/value"
)

// defaultInterceptor builds the built-in draft for each node kind.
// Patterns are read-only leaves and stay unwrapped.
func defaultInterceptor(tx *Tx, node any) Draft {
	switch n := node.(type) {
	case *value.Object:
		return &ObjectDraft{tx: tx, node: n}
	case *value.List:
		return &ListDraft{tx: tx, node: n}
	case *value.Dict:
		return &DictDraft{tx: tx, node: n}
	case *value.Set:
		return &SetDraft{tx: tx, node: n}
	case *value.Box:
		return &BoxDraft{tx: tx, node: n}
	case *value.Time:
		return &TimeDraft{tx: tx, node: n}
	default:
		return nil
	}
}

// IsDraft reports whether v is a mutable view produced by this package (or
// a custom interceptor).
func IsDraft(v any) bool {
	_, ok := v.(Draft)
	return ok
}

// Original returns the source node behind a draft, or v itself when v is
// not a draft.
func Original(v any) any {
	if d, ok := v.(Draft); ok {
		return d.Original()
	}
	return v
}

// resolveWrite normalizes a value being written through a draft. Drafts
// resolve to their node; nodes the invocation already tracks are stored as
// their effective value, and the tracked identity is returned so the caller
// can record a parent link at the written slot. Fresh values pass through.
func (tx *Tx) resolveWrite(v any) (store, node any) {
	if d, ok := v.(Draft); ok {
		v = d.Original()
	}
	if value.IsNode(v) {
		if t, ok := tx.nodes[v]; ok {
			if t.copy != nil {
				return t.copy, v
			}
			return v, v
		}
	}
	return v, nil
}

// resolveRead interprets a slot value read through a draft. Children that
// belong to the source graph (the slot still holds its base value, or the
// slot holds a tracked node or its copy) come back wrapped, with the parent
// link recorded. Values the caller assigned fresh come back raw; they were
// never part of the immutable source and may be mutated directly.
func (tx *Tx) resolveRead(parent, key, baseV, effV any) any {
	if !value.IsNode(effV) {
		return effV
	}
	v := effV
	if orig, ok := tx.byCopy[v]; ok {
		v = orig
	}
	if sameValue(baseV, v) {
		return tx.Wrap(v, parent, key)
	}
	if _, ok := tx.nodes[v]; ok {
		return tx.Wrap(v, parent, key)
	}
	return v
}

// ObjectDraft is the mutable view over a record node.
type ObjectDraft struct {
	tx   *Tx
	node *value.Object
}

func (d *ObjectDraft) Original() any { return d.node }

func (d *ObjectDraft) eff() *value.Object {
	return d.tx.Effective(d.node).(*value.Object)
}

// Get returns the field value, wrapped when it is a node of the source
// graph. Missing fields return nil.
func (d *ObjectDraft) Get(key string) any {
	effV, ok := d.eff().Get(key)
	if !ok {
		return nil
	}
	baseV, _ := d.node.Get(key)
	return d.tx.resolveRead(d.node, key, baseV, effV)
}

// Has reports whether the field exists.
func (d *ObjectDraft) Has(key string) bool { return d.eff().Has(key) }

// Len returns the number of fields.
func (d *ObjectDraft) Len() int { return d.eff().Len() }

// Keys returns the field names in insertion order.
func (d *ObjectDraft) Keys() []string { return d.eff().Keys() }

// Set assigns a field. Assigning the value the field already holds is a
// no-op and triggers no copying.
func (d *ObjectDraft) Set(key string, v any) {
	store, node := d.tx.resolveWrite(v)
	if cur, ok := d.eff().Get(key); ok && sameValue(cur, store) {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Object).Set(key, store)
	})
	if node != nil {
		d.tx.recordParent(node, d.node, key)
	}
}

// Delete removes a field, reporting whether it existed.
func (d *ObjectDraft) Delete(key string) bool {
	if !d.eff().Has(key) {
		return false
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Object).Delete(key)
	})
	return true
}

// Range iterates the fields in insertion order, yielding wrapped values.
// Mutations made earlier in the recipe are visible.
func (d *ObjectDraft) Range(fn func(key string, v any) bool) {
	d.eff().Range(func(k string, effV any) bool {
		baseV, _ := d.node.Get(k)
		return fn(k, d.tx.resolveRead(d.node, k, baseV, effV))
	})
}

// ListDraft is the mutable view over an ordered list node.
type ListDraft struct {
	tx   *Tx
	node *value.List
}

func (d *ListDraft) Original() any { return d.node }

func (d *ListDraft) eff() *value.List {
	return d.tx.Effective(d.node).(*value.List)
}

// Get returns the element at i, wrapped when it is a node of the source
// graph. Panics when i is out of range.
func (d *ListDraft) Get(i int) any {
	effV := d.eff().Get(i)
	var baseV any
	if i < d.node.Len() {
		baseV = d.node.Get(i)
	}
	return d.tx.resolveRead(d.node, i, baseV, effV)
}

// Set replaces the element at i. Same-value writes are no-ops.
func (d *ListDraft) Set(i int, v any) {
	store, node := d.tx.resolveWrite(v)
	if sameValue(d.eff().Get(i), store) {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.List).Set(i, store)
	})
	if node != nil {
		d.tx.recordParent(node, d.node, i)
	}
}

// Append adds elements to the end of the list.
func (d *ListDraft) Append(vs ...any) {
	if len(vs) == 0 {
		return
	}
	start := d.eff().Len()
	stores := make([]any, len(vs))
	nodes := make([]any, len(vs))
	for i, v := range vs {
		stores[i], nodes[i] = d.tx.resolveWrite(v)
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.List).Append(stores...)
	})
	for i, n := range nodes {
		if n != nil {
			d.tx.recordParent(n, d.node, start+i)
		}
	}
}

// Truncate shortens the list to n elements. A no-op when n >= Len().
func (d *ListDraft) Truncate(n int) {
	if n >= d.eff().Len() {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.List).Truncate(n)
	})
}

// Len returns the number of elements.
func (d *ListDraft) Len() int { return d.eff().Len() }

// Range iterates the elements in order, yielding wrapped values.
func (d *ListDraft) Range(fn func(i int, v any) bool) {
	d.eff().Range(func(i int, effV any) bool {
		var baseV any
		if i < d.node.Len() {
			baseV = d.node.Get(i)
		}
		return fn(i, d.tx.resolveRead(d.node, i, baseV, effV))
	})
}

// DictDraft is the mutable view over a dictionary node. Keys are plain
// values and are never wrapped; only stored values take part in
// copy-on-write.
type DictDraft struct {
	tx   *Tx
	node *value.Dict
}

func (d *DictDraft) Original() any { return d.node }

func (d *DictDraft) eff() *value.Dict {
	return d.tx.Effective(d.node).(*value.Dict)
}

// resolveKey lets callers address entries with a draft of the key node.
func resolveKey(key any) any {
	if d, ok := key.(Draft); ok {
		return d.Original()
	}
	return key
}

// Get returns the value for key, wrapped when it is a node of the source
// graph, and whether the entry exists.
func (d *DictDraft) Get(key any) (any, bool) {
	key = resolveKey(key)
	effV, ok := d.eff().Get(key)
	if !ok {
		return nil, false
	}
	baseV, _ := d.node.Get(key)
	return d.tx.resolveRead(d.node, key, baseV, effV), true
}

// Has reports whether the entry exists.
func (d *DictDraft) Has(key any) bool { return d.eff().Has(resolveKey(key)) }

// Len returns the number of entries.
func (d *DictDraft) Len() int { return d.eff().Len() }

// Keys returns the keys in insertion order.
func (d *DictDraft) Keys() []any { return d.eff().Keys() }

// Set assigns an entry. Same-value writes are no-ops.
func (d *DictDraft) Set(key, v any) {
	key = resolveKey(key)
	store, node := d.tx.resolveWrite(v)
	if cur, ok := d.eff().Get(key); ok && sameValue(cur, store) {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Dict).Set(key, store)
	})
	if node != nil {
		d.tx.recordParent(node, d.node, key)
	}
}

// Delete removes an entry, reporting whether it existed.
func (d *DictDraft) Delete(key any) bool {
	key = resolveKey(key)
	if !d.eff().Has(key) {
		return false
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Dict).Delete(key)
	})
	return true
}

// Clear removes all entries.
func (d *DictDraft) Clear() {
	if d.eff().Len() == 0 {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Dict).Clear()
	})
}

// Range iterates the entries in insertion order, yielding wrapped values.
func (d *DictDraft) Range(fn func(key, v any) bool) {
	d.eff().Range(func(k, effV any) bool {
		baseV, _ := d.node.Get(k)
		return fn(k, d.tx.resolveRead(d.node, k, baseV, effV))
	})
}

// SetDraft is the mutable view over a unique-value collection node.
type SetDraft struct {
	tx   *Tx
	node *value.Set
}

func (d *SetDraft) Original() any { return d.node }

func (d *SetDraft) eff() *value.Set {
	return d.tx.Effective(d.node).(*value.Set)
}

// Has reports membership. Drafts and tracked nodes match whichever of the
// original or its copy the collection currently holds.
func (d *SetDraft) Has(v any) bool {
	store, node := d.tx.resolveWrite(v)
	s := d.eff()
	if s.Has(store) {
		return true
	}
	return node != nil && s.Has(node)
}

// Add inserts a member, reporting whether it was newly added.
func (d *SetDraft) Add(v any) bool {
	if d.Has(v) {
		return false
	}
	store, node := d.tx.resolveWrite(v)
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Set).Add(store)
	})
	if node != nil {
		d.tx.recordParent(node, d.node, store)
	}
	return true
}

// Delete removes a member, reporting whether it was present.
func (d *SetDraft) Delete(v any) bool {
	store, node := d.tx.resolveWrite(v)
	s := d.eff()
	target := store
	if !s.Has(target) {
		if node == nil || !s.Has(node) {
			return false
		}
		target = node
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Set).Delete(target)
	})
	return true
}

// Clear removes all members.
func (d *SetDraft) Clear() {
	if d.eff().Len() == 0 {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Set).Clear()
	})
}

// Len returns the number of members.
func (d *SetDraft) Len() int { return d.eff().Len() }

// Range iterates the members in insertion order, yielding wrapped values.
func (d *SetDraft) Range(fn func(v any) bool) {
	d.eff().Range(func(m any) bool {
		v := m
		if orig, ok := d.tx.byCopy[m]; ok {
			v = orig
		}
		var baseV any
		if d.node.Has(v) {
			baseV = v
		}
		return fn(d.tx.resolveRead(d.node, v, baseV, m))
	})
}

// boxSlot keys the single value slot of a Box in parent links.
type boxSlot struct{}

// BoxDraft is the mutable view over a boxed scalar node.
type BoxDraft struct {
	tx   *Tx
	node *value.Box
}

func (d *BoxDraft) Original() any { return d.node }

func (d *BoxDraft) eff() *value.Box {
	return d.tx.Effective(d.node).(*value.Box)
}

// Value returns the boxed value, wrapped when it is a node of the source
// graph.
func (d *BoxDraft) Value() any {
	return d.tx.resolveRead(d.node, boxSlot{}, d.node.Value(), d.eff().Value())
}

// SetValue replaces the boxed value. Same-value writes are no-ops.
func (d *BoxDraft) SetValue(v any) {
	store, node := d.tx.resolveWrite(v)
	if sameValue(d.eff().Value(), store) {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Box).SetValue(store)
	})
	if node != nil {
		d.tx.recordParent(node, d.node, boxSlot{})
	}
}

// TimeDraft is the mutable view over a boxed time node.
type TimeDraft struct {
	tx   *Tx
	node *value.Time
}

func (d *TimeDraft) Original() any { return d.node }

func (d *TimeDraft) eff() *value.Time {
	return d.tx.Effective(d.node).(*value.Time)
}

// Value returns the underlying time.
func (d *TimeDraft) Value() time.Time { return d.eff().Value() }

// SetValue replaces the underlying time. Setting the same instant is a
// no-op.
func (d *TimeDraft) SetValue(t time.Time) {
	if d.eff().Value().Equal(t) {
		return
	}
	d.tx.Mutate(d.node, func(c any) {
		c.(*value.Time).SetValue(t)
	})
}
