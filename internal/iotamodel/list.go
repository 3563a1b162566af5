package iotamodel

import "strings"

// List is an ordered, persistent sequence of iotas. "Persistent" here
// means every mutating helper returns a new List backed by a fresh
// slice rather than mutating the receiver's backing array — callers
// that hold an older List never observe a later mutation, matching
// spec.md §3's copy-on-write requirement. (No general-purpose
// persistent-vector library appears anywhere in the retrieved pack's
// go.mod files, so this is plain stdlib slice copying — see DESIGN.md.)
type List struct {
	Items []Iota
}

func NewList(items ...Iota) List {
	cp := make([]Iota, len(items))
	copy(cp, items)
	return List{Items: cp}
}

func (l List) Kind() Kind       { return KindList }
func (l List) TypeName() string { return KindList.String() }

func (l List) Display() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tolerates requires equal length and pointwise tolerant elements.
func (l List) Tolerates(other Iota) bool {
	o, ok := other.(List)
	if !ok || len(o.Items) != len(l.Items) {
		return false
	}
	for i := range l.Items {
		if !l.Items[i].Tolerates(o.Items[i]) {
			return false
		}
	}
	return true
}

func (l List) SerializeNBT() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.SerializeNBT()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l List) SerializeJSON() any {
	values := make([]any, len(l.Items))
	for i, it := range l.Items {
		values[i] = it.SerializeJSON()
	}
	return map[string]any{"iotaType": "list", "value": values}
}

// Append returns a new List with v added at the end.
func (l List) Append(v Iota) List {
	next := make([]Iota, len(l.Items)+1)
	copy(next, l.Items)
	next[len(l.Items)] = v
	return List{Items: next}
}

// WithReplaced returns a new List with the element at index replaced by
// v. The index must be in range; callers are responsible for bounds
// checking and raising the appropriate Mishap.
func (l List) WithReplaced(index int, v Iota) List {
	next := make([]Iota, len(l.Items))
	copy(next, l.Items)
	next[index] = v
	return List{Items: next}
}

// Reversed returns a new List with elements in reverse order.
func (l List) Reversed() List {
	next := make([]Iota, len(l.Items))
	for i, it := range l.Items {
		next[len(l.Items)-1-i] = it
	}
	return List{Items: next}
}
