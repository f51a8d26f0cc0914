package value

// Walk visits every node reachable from root exactly once, in preorder.
// Returning false from fn stops the traversal. Safe on cyclic graphs.
// Inert primitives are not visited.
func Walk(root any, fn func(node any) bool) {
	seen := make(map[any]bool)
	var visit func(v any) bool
	visit = func(v any) bool {
		if !IsNode(v) || seen[v] {
			return true
		}
		seen[v] = true
		if !fn(v) {
			return false
		}
		ok := true
		eachChild(v, func(_ any, child any) bool {
			ok = visit(child)
			return ok
		})
		return ok
	}
	visit(root)
}

// eachChild calls fn(key, child) for each direct child slot of node.
// Dict keys that are themselves nodes are visited as children too.
func eachChild(node any, fn func(key, child any) bool) {
	switch n := node.(type) {
	case *Object:
		n.Range(func(k string, v any) bool { return fn(k, v) })
	case *List:
		n.Range(func(i int, v any) bool { return fn(i, v) })
	case *Dict:
		n.Range(func(k, v any) bool {
			if IsNode(k) && !fn(k, k) {
				return false
			}
			return fn(k, v)
		})
	case *Set:
		n.Range(func(v any) bool { return fn(v, v) })
	}
}

// Report summarizes structural sharing between two graphs.
type Report struct {
	Total  int // nodes reachable in the new graph
	Reused int // nodes shared with the old graph by reference
	Copied int // nodes the old graph does not contain
}

// Share compares old and new graphs and reports how many of new's nodes are
// reference-identical to nodes of old.
func Share(old, new any) Report {
	inOld := make(map[any]bool)
	Walk(old, func(n any) bool {
		inOld[n] = true
		return true
	})
	var r Report
	Walk(new, func(n any) bool {
		r.Total++
		if inOld[n] {
			r.Reused++
		} else {
			r.Copied++
		}
		return true
	})
	return r
}
