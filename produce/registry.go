package produce

import (
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grafite-dev/grafite/value"
)

// Draft is a mutable view over one node. The built-in drafts implement it;
// custom interceptors may supply their own.
type Draft interface {
	// Original returns the source node this draft wraps.
	Original() any
}

// Interceptor constructs the mutable view for a node. It is called at most
// once per node per invocation; returning nil leaves the node unwrapped, so
// reads hand it back raw.
type Interceptor func(tx *Tx, node any) Draft

// Option configures a single invocation.
type Option func(*Tx)

// WithLogger enables debug tracing of copy, mutate, and rewire steps.
func WithLogger(logger *zap.Logger) Option {
	return func(tx *Tx) {
		tx.logger = logger
	}
}

// WithInterceptor replaces the built-in draft constructor.
func WithInterceptor(i Interceptor) Option {
	return func(tx *Tx) {
		tx.intercept = i
	}
}

// link identifies one edge through which a child is reachable: the parent
// node and the key within it (field name, list index, dict key, or the set
// member itself).
type link struct {
	parent any
	key    any
}

// tracked is the per-node state of one invocation.
type tracked struct {
	view    any               // memoized draft, or the node itself when unwrappable
	copy    any               // shallow copy, nil until first mutation
	parents map[link]struct{} // discovered on read, add-only
	rewired map[any]struct{}  // children already spliced into copy
}

// Tx is the state of one Produce invocation. It is created by Produce,
// owned by a single goroutine, and discarded when the invocation returns.
// Its exported methods are the surface a custom Interceptor builds on.
type Tx struct {
	nodes     map[any]*tracked
	byCopy    map[any]any // copy -> original
	intercept Interceptor
	logger    *zap.Logger
}

func newTx(opts ...Option) *Tx {
	tx := &Tx{
		nodes:     make(map[any]*tracked),
		byCopy:    make(map[any]any),
		intercept: defaultInterceptor,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(tx)
	}
	tx.logger = tx.logger.With(zap.String("invocation", uuid.NewString()))
	return tx
}

// lookup returns the tracking state for node, creating it on first access.
func (tx *Tx) lookup(node any) *tracked {
	t, ok := tx.nodes[node]
	if !ok {
		t = &tracked{
			parents: make(map[link]struct{}),
			rewired: make(map[any]struct{}),
		}
		tx.nodes[node] = t
	}
	return t
}

// mustLookup returns existing tracking state and panics when there is none.
// A miss means a mutation reached a node the interception layer never saw,
// which would silently corrupt state if allowed to proceed.
func (tx *Tx) mustLookup(node any) *tracked {
	t, ok := tx.nodes[node]
	if !ok {
		panic("produce: invariant violation: mutation against untracked node")
	}
	return t
}

// recordParent notes that child is reachable from parent via key. Links are
// add-only for the life of the invocation.
func (tx *Tx) recordParent(child, parent, key any) {
	t := tx.lookup(child)
	t.parents[link{parent: parent, key: key}] = struct{}{}
}

// Wrap returns the memoized draft for node, recording the parent link when
// parent is non-nil. Inert values are returned as-is.
func (tx *Tx) Wrap(node, parent, key any) any {
	if !value.IsNode(node) {
		return node
	}
	t := tx.lookup(node)
	if parent != nil {
		tx.recordParent(node, parent, key)
	}
	if t.view == nil {
		if d := tx.intercept(tx, node); d != nil {
			t.view = d
		} else {
			t.view = node
		}
		tx.logger.Debug("wrap",
			zap.Stringer("kind", value.KindOf(node)))
	}
	return t.view
}

// Effective returns the node's shallow copy when one exists, else the node.
// Reads through drafts address the effective value.
func (tx *Tx) Effective(node any) any {
	if t, ok := tx.nodes[node]; ok && t.copy != nil {
		return t.copy
	}
	return node
}

// sameValue is == made safe for arbitrary dynamic types: incomparable
// values are never considered equal.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
