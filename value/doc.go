// Package value defines the node kinds that make up a Grafite graph.
//
// # Overview
//
// A graph is built from a closed set of container nodes (Object, List, Dict,
// Set) and boxed leaves (Box, Time, Pattern), connected by ordinary Go
// references. Inert primitives (nil, bool, string, numbers) may appear
// anywhere a child value is expected but are never nodes themselves.
//
// All node types are pointers, so two nodes are the same node exactly when
// their pointers are equal. The produce package relies on this: its tracking
// registry is keyed by node identity, never by structural equality.
//
// # Mutability
//
// The containers in this package are plain mutable values. Immutability is a
// discipline imposed by the produce package, not by the type system: once a
// graph has been handed to produce.Produce, callers must only change it
// through drafts. Mutating a source graph directly while an invocation is in
// flight is undefined behavior.
//
// # JSON
//
// FromJSON and ToJSON bridge JSON documents and graphs. JSON objects decode
// to *Object, arrays to *List; Dict, Set, Box, Time, and Pattern have no
// JSON syntax and round-trip through their underlying values where possible.
package value
