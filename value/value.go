package value

import (
	"maps"
	"regexp"
	"slices"
	"time"
)

// Kind enumerates the node kinds a graph can contain.
type Kind int

const (
	KindInvalid Kind = iota // not a node (inert primitive or foreign type)
	KindObject
	KindList
	KindDict
	KindSet
	KindBox
	KindTime
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindSet:
		return "set"
	case KindBox:
		return "box"
	case KindTime:
		return "time"
	case KindPattern:
		return "pattern"
	default:
		return "invalid"
	}
}

// KindOf reports the node kind of v, or KindInvalid when v is an inert
// primitive or an unrecognized type.
func KindOf(v any) Kind {
	switch v.(type) {
	case *Object:
		return KindObject
	case *List:
		return KindList
	case *Dict:
		return KindDict
	case *Set:
		return KindSet
	case *Box:
		return KindBox
	case *Time:
		return KindTime
	case *Pattern:
		return KindPattern
	default:
		return KindInvalid
	}
}

// IsNode reports whether v is a graph node (as opposed to an inert value).
func IsNode(v any) bool {
	return KindOf(v) != KindInvalid
}

// Object is a record node: string-keyed fields with insertion-ordered keys.
type Object struct {
	keys   []string
	fields map[string]any
}

// NewObject creates an empty record.
func NewObject() *Object {
	return &Object{fields: make(map[string]any)}
}

// Get returns the field value and whether the field exists.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Set assigns a field, appending the key on first assignment.
func (o *Object) Set(key string, v any) {
	if _, ok := o.fields[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.fields[key] = v
}

// Delete removes a field, reporting whether it existed.
func (o *Object) Delete(key string) bool {
	if _, ok := o.fields[key]; !ok {
		return false
	}
	delete(o.fields, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// Has reports whether the field exists.
func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.fields) }

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

// Range calls fn for each field in insertion order until fn returns false.
func (o *Object) Range(fn func(key string, v any) bool) {
	for _, k := range o.keys {
		if !fn(k, o.fields[k]) {
			return
		}
	}
}

// Clone returns a shallow copy: same field values, new containers.
func (o *Object) Clone() *Object {
	return &Object{keys: slices.Clone(o.keys), fields: maps.Clone(o.fields)}
}

// List is an ordered sequence node.
type List struct {
	elems []any
}

// NewList creates a list holding the given elements.
func NewList(elems ...any) *List {
	return &List{elems: elems}
}

// Get returns the element at index i. Panics when i is out of range.
func (l *List) Get(i int) any { return l.elems[i] }

// Set replaces the element at index i. Panics when i is out of range.
func (l *List) Set(i int, v any) { l.elems[i] = v }

// Append adds elements to the end of the list.
func (l *List) Append(vs ...any) { l.elems = append(l.elems, vs...) }

// Truncate shortens the list to n elements. A no-op when n >= Len().
func (l *List) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(l.elems) {
		l.elems = l.elems[:n]
	}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// Range calls fn for each element in order until fn returns false.
func (l *List) Range(fn func(i int, v any) bool) {
	for i, v := range l.elems {
		if !fn(i, v) {
			return
		}
	}
}

// Clone returns a shallow copy with a new backing slice.
func (l *List) Clone() *List {
	return &List{elems: slices.Clone(l.elems)}
}

// Dict is a dictionary node keyed by arbitrary comparable values, with
// insertion order preserved. Using an incomparable key panics, the same as
// with a Go map.
type Dict struct {
	keys    []any
	entries map[any]any
}

// NewDict creates an empty dictionary.
func NewDict() *Dict {
	return &Dict{entries: make(map[any]any)}
}

// Get returns the value for key and whether the entry exists.
func (d *Dict) Get(key any) (any, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Set assigns an entry, appending the key on first assignment.
func (d *Dict) Set(key, v any) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = v
}

// Delete removes an entry, reporting whether it existed.
func (d *Dict) Delete(key any) bool {
	if _, ok := d.entries[key]; !ok {
		return false
	}
	delete(d.entries, key)
	d.keys = slices.DeleteFunc(d.keys, func(k any) bool { return k == key })
	return true
}

// Has reports whether the entry exists.
func (d *Dict) Has(key any) bool {
	_, ok := d.entries[key]
	return ok
}

// Clear removes all entries.
func (d *Dict) Clear() {
	d.keys = nil
	d.entries = make(map[any]any)
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []any { return slices.Clone(d.keys) }

// Range calls fn for each entry in insertion order until fn returns false.
func (d *Dict) Range(fn func(key, v any) bool) {
	for _, k := range d.keys {
		if !fn(k, d.entries[k]) {
			return
		}
	}
}

// Clone returns a shallow copy: same entries, new containers.
func (d *Dict) Clone() *Dict {
	return &Dict{keys: slices.Clone(d.keys), entries: maps.Clone(d.entries)}
}

// Set is a unique-value collection node. Membership is Go equality, which
// for nodes means reference identity. Insertion order is preserved.
type Set struct {
	members []any
	index   map[any]int
}

// NewSet creates a set holding the given members, dropping duplicates.
func NewSet(members ...any) *Set {
	s := &Set{index: make(map[any]int)}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts a member, reporting whether it was newly added.
func (s *Set) Add(v any) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.members)
	s.members = append(s.members, v)
	return true
}

// Delete removes a member, reporting whether it was present.
func (s *Set) Delete(v any) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.members = slices.Delete(s.members, i, i+1)
	for j := i; j < len(s.members); j++ {
		s.index[s.members[j]] = j
	}
	return true
}

// Has reports whether v is a member.
func (s *Set) Has(v any) bool {
	_, ok := s.index[v]
	return ok
}

// Clear removes all members.
func (s *Set) Clear() {
	s.members = nil
	s.index = make(map[any]int)
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

// Members returns the members in insertion order.
func (s *Set) Members() []any { return slices.Clone(s.members) }

// Range calls fn for each member in insertion order until fn returns false.
func (s *Set) Range(fn func(v any) bool) {
	for _, m := range s.members {
		if !fn(m) {
			return
		}
	}
}

// Replace swaps old for new in place, keeping old's position. Reports
// whether old was present. When new is already a member, old is simply
// removed.
func (s *Set) Replace(old, new any) bool {
	i, ok := s.index[old]
	if !ok {
		return false
	}
	if _, dup := s.index[new]; dup {
		return s.Delete(old)
	}
	delete(s.index, old)
	s.members[i] = new
	s.index[new] = i
	return true
}

// Clone returns a shallow copy: same members, new containers.
func (s *Set) Clone() *Set {
	return &Set{members: slices.Clone(s.members), index: maps.Clone(s.index)}
}

// Box is a boxed scalar node. It exists so a primitive can participate in a
// graph with its own identity.
type Box struct {
	val any
}

// NewBox creates a box holding v.
func NewBox(v any) *Box { return &Box{val: v} }

// Value returns the boxed value.
func (b *Box) Value() any { return b.val }

// SetValue replaces the boxed value.
func (b *Box) SetValue(v any) { b.val = v }

// Clone returns a new box holding the same value.
func (b *Box) Clone() *Box { return &Box{val: b.val} }

// Time is a boxed time.Time node.
type Time struct {
	t time.Time
}

// NewTime creates a time node holding t.
func NewTime(t time.Time) *Time { return &Time{t: t} }

// Value returns the underlying time.
func (t *Time) Value() time.Time { return t.t }

// SetValue replaces the underlying time.
func (t *Time) SetValue(v time.Time) { t.t = v }

// Clone returns a new node holding the same instant.
func (t *Time) Clone() *Time { return &Time{t: t.t} }

// Pattern is a compiled regular expression node. Patterns are read-only
// leaves: drafts never expose a mutable view of one.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern creates a pattern node around an already compiled expression.
func NewPattern(re *regexp.Regexp) *Pattern { return &Pattern{re: re} }

// CompilePattern compiles expr into a pattern node.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re}, nil
}

// Regexp returns the compiled expression.
func (p *Pattern) Regexp() *regexp.Regexp { return p.re }

// Clone returns a new node compiled from the same expression source.
func (p *Pattern) Clone() *Pattern {
	return &Pattern{re: regexp.MustCompile(p.re.String())}
}
