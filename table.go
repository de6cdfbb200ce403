// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dhash is a Go implementation of an open-addressing hash table
// which resolves collisions with double hashing. See
// https://en.wikipedia.org/wiki/Double_hashing.
//
// # Double hashing
//
// A Table stores elements that are their own keys: the element type supplies
// both the hash and the equality relation (see Element). The table is a
// single array of slots whose length is always a prime number. An element x
// with hash h starts probing at its home slot
//
//	home = h % capacity
//
// and, if the home slot is held by a different element, walks forward by a
// hash-dependent step
//
//	step = 1 + h % (capacity-2)
//
// wrapping around at capacity. Because capacity is prime every step in
// [1, capacity-2] is coprime with it, so the probe sequence visits every slot
// before repeating. Two elements that collide at the same home slot usually
// have different steps and therefore diverge, avoiding the primary
// clustering of linear probing.
//
// # Deletion
//
// Deletion is lazy. A removed element's slot is marked as a tombstone
// (ctrlDeleted) rather than emptied, as emptying it would cut the probe
// sequence of every element which probed past it. Tombstones of a different
// element are probed past like full slots; a tombstone of an equal element
// terminates the search so that re-inserting a removed element reuses its
// old slot.
//
// # Growth
//
// The table tracks two counts: used, the number of live elements, and
// occupied, the number of placements performed since the last rehash. The
// occupied count is never decremented by Remove, so tombstones count towards
// the load factor. After an insertion brings occupied above capacity/2 the
// table is rehashed into nextPrime(2*capacity) slots: every live element is
// re-inserted and every tombstone is dropped. Keeping the load factor at or
// below 1/2 guarantees an empty slot always exists to terminate a probe.
//
// The table never shrinks.
package dhash

import (
	"fmt"
	"math"
	"strings"
)

const (
	debug = false

	// DefaultSize is the approximate size used when New is passed a
	// non-positive size.
	DefaultSize = 101

	ctrlEmpty   ctrl = 0
	ctrlActive  ctrl = 1
	ctrlDeleted ctrl = 2
)

// Element is the contract a type must satisfy to be stored in a Table.
// Equal must be an equivalence relation and Hash must be consistent with it:
// elements which are Equal must have the same Hash. Mutating the state that
// Hash or Equal depend on while an element is in a Table is undefined
// behavior.
type Element[T any] interface {
	Hash() uint64
	Equal(other T) bool
}

// Each slot in the table is in one of three states:
//
//	  empty: never held an element since the last rehash or clear
//	 active: holds a live element
//	deleted: holds a removed element (a tombstone)
type ctrl uint8

func (c ctrl) String() string {
	switch c {
	case ctrlEmpty:
		return "empty"
	case ctrlActive:
		return "active"
	case ctrlDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("ctrl(%d)", uint8(c))
	}
}

// Slot holds an element and its control state. The zero Slot is empty.
type Slot[T any] struct {
	ctrl ctrl
	elem T
}

// Entry is an active slot index and the element stored there.
type Entry[T any] struct {
	Index   int
	Element T
}

// Table is an unordered set of elements with Insert, Find, Contains, Remove
// and All operations, resolving collisions with double hashing. Elements are
// hashed with their own Hash method unless a different hash function is
// specified using the WithHash option.
//
// A Table is NOT goroutine-safe.
type Table[T Element[T]] struct {
	// The hash function applied to elements of type T.
	hash func(x T) uint64
	// The allocator to use for the slots slice.
	allocator Allocator[T]
	// onGrow is invoked after every rehash.
	onGrow func(oldCapacity, newCapacity int)
	// slots is capacity in length. The capacity is always prime.
	slots []Slot[T]
	// The number of active slots (i.e. the number of elements in the table).
	used int
	// The number of placements since the last rehash. Tombstones remain
	// counted so that accumulated deletions also push the table towards a
	// rehash, which is the only point at which tombstones are reclaimed.
	occupied int
	// Cumulative probe steps taken past a home slot.
	probes int
	// Cumulative number of Find calls.
	finds int
}

// New constructs a new Table whose capacity is the smallest prime >=
// approximateSize. If approximateSize is not positive DefaultSize is used.
func New[T Element[T]](approximateSize int, options ...option[T]) *Table[T] {
	t := &Table[T]{
		hash:      func(x T) uint64 { return x.Hash() },
		allocator: defaultAllocator[T]{},
	}

	for _, op := range options {
		op.apply(t)
	}

	if approximateSize <= 0 {
		approximateSize = DefaultSize
	}
	t.slots = t.allocator.AllocSlots(nextPrime(approximateSize))

	t.checkInvariants()
	return t
}

// Close releases the table's slots back to its configured allocator. It is
// unnecessary to close a table using the default allocator. It is invalid to
// use a Table after it has been closed, though Close itself is idempotent.
func (t *Table[T]) Close() {
	if t.slots != nil {
		t.allocator.FreeSlots(t.slots)
		t.slots = nil
	}
	t.used = 0
	t.occupied = 0
}

// Insert adds x to the table, returning true if x was newly inserted. If an
// element equal to x is already present the table is left unchanged
// (including the stored element) and false is returned.
func (t *Table[T]) Insert(x T) bool {
	inserted := t.insert(x)
	t.checkInvariants()
	return inserted
}

// insert is Insert without the invariant check. It is also used to populate
// the new slots during rehash, where it cannot trigger a nested rehash as the
// capacity has at least doubled while the number of elements has not grown.
func (t *Table[T]) insert(x T) bool {
	i := t.findPos(x)
	s := &t.slots[i]
	if s.ctrl == ctrlActive {
		if debug {
			fmt.Printf("insert(%v): index=%d already present\n", x, i)
		}
		return false
	}

	// NB: reusing a tombstone of x still counts as a new placement.
	s.elem = x
	s.ctrl = ctrlActive
	t.used++
	t.occupied++
	if debug {
		fmt.Printf("insert(%v): index=%d used=%d occupied=%d\n", x, i, t.used, t.occupied)
	}

	if t.occupied > len(t.slots)/2 {
		t.rehash()
	}
	return true
}

// Find returns the element stored in the table which is equal to x (not
// necessarily x itself), returning ok=false if there is no such element.
func (t *Table[T]) Find(x T) (elem T, ok bool) {
	t.finds++
	i := t.findPos(x)
	if s := &t.slots[i]; s.ctrl == ctrlActive {
		return s.elem, true
	}
	return elem, false
}

// Contains returns true if an element equal to x is present in the table.
// Unlike Find, Contains is not counted by FindCount.
func (t *Table[T]) Contains(x T) bool {
	i := t.findPos(x)
	return t.slots[i].ctrl == ctrlActive
}

// Remove removes the element equal to x from the table, returning false if
// there is no such element. The slot becomes a tombstone until the next
// rehash.
func (t *Table[T]) Remove(x T) bool {
	i := t.findPos(x)
	s := &t.slots[i]
	if s.ctrl != ctrlActive {
		if debug {
			fmt.Printf("remove(%v): not found\n", x)
		}
		t.checkInvariants()
		return false
	}

	s.ctrl = ctrlDeleted
	t.used--
	if debug {
		fmt.Printf("remove(%v): index=%d used=%d\n", x, i, t.used)
	}
	t.checkInvariants()
	return true
}

// Clear deletes all elements from the table, retaining its capacity. The
// diagnostic FindCount and ProbeCount are not reset.
func (t *Table[T]) Clear() {
	var zero Slot[T]
	for i := range t.slots {
		t.slots[i] = zero
	}
	t.used = 0
	t.occupied = 0
	t.checkInvariants()
}

// Len returns the number of elements in the table.
func (t *Table[T]) Len() int {
	return t.used
}

// Capacity returns the number of slots in the table. The capacity is always
// prime.
func (t *Table[T]) Capacity() int {
	return len(t.slots)
}

// FindCount returns the number of Find calls made on the table.
func (t *Table[T]) FindCount() int {
	return t.finds
}

// ProbeCount returns the cumulative number of probe steps taken past a home
// slot across all searches, including the searches performed by rehashing.
func (t *Table[T]) ProbeCount() int {
	return t.probes
}

// OccupiedCount returns the number of slot placements since the last rehash
// or Clear. It is the count compared against capacity/2 to trigger a rehash.
func (t *Table[T]) OccupiedCount() int {
	return t.occupied
}

// All calls yield sequentially for each element in the table in ascending
// slot order. If yield returns false, iteration stops. The table must not be
// mutated during iteration.
func (t *Table[T]) All(yield func(index int, elem T) bool) {
	for i := range t.slots {
		if s := &t.slots[i]; s.ctrl == ctrlActive {
			if !yield(i, s.elem) {
				return
			}
		}
	}
}

// Entries returns up to limit active slots in ascending slot order. A
// negative limit returns every active slot.
func (t *Table[T]) Entries(limit int) []Entry[T] {
	var entries []Entry[T]
	if limit == 0 {
		return entries
	}
	t.All(func(i int, elem T) bool {
		entries = append(entries, Entry[T]{Index: i, Element: elem})
		return limit < 0 || len(entries) < limit
	})
	return entries
}

// Format renders up to limit active slots, one "index: element" line each.
func (t *Table[T]) Format(limit int) string {
	var buf strings.Builder
	for _, e := range t.Entries(limit) {
		fmt.Fprintf(&buf, "%d: %v\n", e.Index, e.Element)
	}
	return buf.String()
}

// String renders every active slot. See Format.
func (t *Table[T]) String() string {
	return t.Format(-1)
}

// findPos returns the index at which the search for x terminates: either the
// slot holding an element equal to x (active or deleted) or the first empty
// slot of x's probe sequence.
func (t *Table[T]) findPos(x T) int {
	i, n := t.locate(x)
	t.probes += n
	return i
}

// locate performs the probe for x without touching any counters, returning
// the terminating index and the number of steps taken.
func (t *Table[T]) locate(x T) (index, probes int) {
	h := t.hash(x)
	capacity := uint64(len(t.slots))
	i := int(h % capacity)
	if t.matches(i, x) {
		return i, 0
	}

	// Home slot is held by another element (or its tombstone). Compute the
	// double hashing step. Capacity is prime and at least 3, so step lies in
	// [1, capacity-2] and the sequence covers every slot.
	step := int(1 + h%(capacity-2))
	if debug {
		fmt.Printf("probe(%v): home=%d step=%d capacity=%d\n", x, i, step, capacity)
	}
	for {
		probes++
		i += step
		if i >= len(t.slots) {
			i -= len(t.slots)
		}
		if t.matches(i, x) {
			return i, probes
		}
	}
}

// matches returns true if the probe for x terminates at index i.
func (t *Table[T]) matches(i int, x T) bool {
	s := &t.slots[i]
	return s.ctrl == ctrlEmpty || s.elem.Equal(x)
}

// rehash grows the table to nextPrime(2*capacity) slots, re-inserting each
// active element and dropping the tombstones.
func (t *Table[T]) rehash() {
	oldSlots := t.slots
	oldCapacity := len(oldSlots)
	if oldCapacity > math.MaxInt/2-1 {
		panic(fmt.Sprintf("dhash: capacity overflow growing table of %d slots", oldCapacity))
	}
	newCapacity := nextPrime(2 * oldCapacity)

	if debug {
		fmt.Printf("rehash: capacity=%d->%d used=%d occupied=%d\n",
			oldCapacity, newCapacity, t.used, t.occupied)
	}

	t.slots = t.allocator.AllocSlots(newCapacity)
	t.used = 0
	t.occupied = 0
	for i := range oldSlots {
		if s := &oldSlots[i]; s.ctrl == ctrlActive {
			t.insert(s.elem)
		}
	}
	t.allocator.FreeSlots(oldSlots)

	if t.onGrow != nil {
		t.onGrow(oldCapacity, newCapacity)
	}
}

func (t *Table[T]) checkInvariants() {
	if invariants {
		if t.slots == nil {
			return
		}
		if !isPrime(len(t.slots)) {
			panic(fmt.Sprintf("invariant failed: capacity %d is not prime\n%s",
				len(t.slots), t.debugString()))
		}

		// Count the number of active and deleted slots, and verify every
		// active element terminates its own search at its slot.
		var used, deleted int
		for i := range t.slots {
			s := &t.slots[i]
			switch s.ctrl {
			case ctrlEmpty:
			case ctrlDeleted:
				deleted++
			case ctrlActive:
				if j, _ := t.locate(s.elem); j != i {
					panic(fmt.Sprintf("invariant failed: slot(%d): %v found at %d\n%s",
						i, s.elem, j, t.debugString()))
				}
				used++
			default:
				panic(fmt.Sprintf("invariant failed: slot(%d): unexpected %s", i, s.ctrl))
			}
		}

		if used != t.used {
			panic(fmt.Sprintf("invariant failed: found %d used slots, but used count is %d\n%s",
				used, t.used, t.debugString()))
		}
		if used+deleted > t.occupied || t.occupied > len(t.slots)/2 {
			panic(fmt.Sprintf("invariant failed: %d non-empty slots, occupied=%d capacity=%d\n%s",
				used+deleted, t.occupied, len(t.slots), t.debugString()))
		}
	}
}

func (t *Table[T]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  used=%d  occupied=%d\n", len(t.slots), t.used, t.occupied)
	for i := range t.slots {
		switch s := &t.slots[i]; s.ctrl {
		case ctrlEmpty:
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
		case ctrlDeleted:
			fmt.Fprintf(&buf, "  %4d: deleted %v [h=%016x]\n", i, s.elem, t.hash(s.elem))
		default:
			fmt.Fprintf(&buf, "  %4d: %v [h=%016x]\n", i, s.elem, t.hash(s.elem))
		}
	}
	return buf.String()
}
