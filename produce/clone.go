package produce

import (
	"github.com/grafite-dev/grafite/value"
)

// shallowClone duplicates a node's immediate entries: same child
// references, new container. Values that are not recognized nodes are
// returned unchanged; there is nothing to copy.
func shallowClone(node any) any {
	switch n := node.(type) {
	case *value.Object:
		return n.Clone()
	case *value.List:
		return n.Clone()
	case *value.Dict:
		return n.Clone()
	case *value.Set:
		return n.Clone()
	case *value.Box:
		return n.Clone()
	case *value.Time:
		return n.Clone()
	case *value.Pattern:
		return n.Clone()
	default:
		return node
	}
}
