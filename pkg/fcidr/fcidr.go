// Package fcidr implements a functional CIDR set: a canonical binary
// trie representation of an arbitrary subset of the IPv4 address space.
package fcidr

import (
	"iter"
	"slices"

	"github.com/cidrctl/fcidr/pkg/cidr"
)

// Event describes one mutation applied to an Fcidr, for the optional
// trace hook (see WithTrace). The core package takes no logging
// dependency itself; callers that want a diagnostic trail supply a sink.
type Event struct {
	Op  string
	Arg cidr.Cidr
}

// Fcidr is a mutable set of IPv4 addresses, represented internally as a
// canonical binary radix trie keyed on successive bits of the address.
// The zero value is not usable; construct with New or NewEmpty.
type Fcidr struct {
	root  *node
	trace func(Event)
}

// Option configures an Fcidr at construction time, in the style of a
// functional-option logger hook.
type Option func(*Fcidr)

// WithTrace installs a sink invoked after every mutating operation.
func WithTrace(sink func(Event)) Option {
	return func(f *Fcidr) { f.trace = sink }
}

// NewEmpty returns the empty set: the full IPv4 space with every address
// excluded.
func NewEmpty(opts ...Option) *Fcidr {
	f := &Fcidr{root: newLeaf(cidr.Cidr{}, excluded)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New returns the singleton set equal to c — conceptually, insert c into
// an empty set.
func New(c cidr.Cidr, opts ...Option) *Fcidr {
	f := NewEmpty(opts...)
	f.Union(c)
	return f
}

// Union set-adds every address in c.
func (f *Fcidr) Union(c cidr.Cidr) {
	setLabel(f.root, c, included)
	f.emit(Event{Op: "union", Arg: c})
}

// Difference set-removes every address in c.
func (f *Fcidr) Difference(c cidr.Cidr) {
	setLabel(f.root, c, excluded)
	f.emit(Event{Op: "difference", Arg: c})
}

// Complement replaces the set with its complement within the full IPv4
// space.
func (f *Fcidr) Complement() {
	complement(f.root)
	f.emit(Event{Op: "complement"})
}

// IsSuperset reports whether every address in c is currently a member of
// the set.
func (f *Fcidr) IsSuperset(c cidr.Cidr) bool {
	return isSuperset(f.root, c)
}

// All returns an iterator over the set's canonical cover: the maximal
// disjoint CIDRs it contains, in ascending address order. It is a lazy
// push sequence over the trie, built with Go's range-over-func idiom
// rather than a stack-holding iterator struct.
func (f *Fcidr) All() iter.Seq[cidr.Cidr] {
	return func(yield func(cidr.Cidr) bool) {
		walk(f.root, yield)
	}
}

// Slice materializes All into a slice, for callers (serialization,
// tests) that want the whole cover at once.
func (f *Fcidr) Slice() []cidr.Cidr {
	return slices.Collect(f.All())
}

// IsEmpty reports whether the set contains no addresses at all.
func (f *Fcidr) IsEmpty() bool {
	return f.root.state == excluded
}

func (f *Fcidr) emit(e Event) {
	if f.trace != nil {
		f.trace(e)
	}
}
