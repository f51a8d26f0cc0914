// Package produce implements copy-on-write updates over immutable value
// graphs with structural sharing.
//
// # Overview
//
// Produce takes a source graph and a recipe. The recipe receives a draft, a
// mutable view of the graph, and mutates it with ordinary assignments and
// collection operations. Produce returns a new graph in which every node on
// the path from the root to a mutated node is a fresh copy, while every
// untouched subgraph is shared with the source by reference. The source
// graph is never modified, even when the recipe fails partway through.
//
// Graphs may contain shared references and cycles. A node reachable through
// several paths converges on a single copy, provided each path was read
// through the draft during the invocation; parent links are discovered
// lazily on read, never by scanning the graph up front.
//
// # Mechanics
//
// Each invocation owns a transaction holding per-node tracking state: the
// memoized draft, the lazily created shallow copy, the set of discovered
// parent links, and the set of children already rewired into this node's
// copy. The first mutation of a node clones it shallowly, applies the
// change to the clone, and then walks the recorded parent links upward,
// splicing each ancestor's clone to reference the child's clone. The
// rewired set bounds that walk, so cyclic graphs terminate. All state dies
// with the invocation.
//
// # Example
//
//	user := value.NewObject()
//	user.Set("name", "Ada")
//	res, err := produce.Produce(user, func(draft, _ any) (any, error) {
//		draft.(*produce.ObjectDraft).Set("name", "Grace")
//		return nil, nil
//	})
//
// res is a new *value.Object; user still holds "Ada".
package produce
