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

package dhash

// option provide an interface to do work on Table while it is being created.
type option[T Element[T]] interface {
	apply(t *Table[T])
}

type hashOption[T Element[T]] struct {
	hash func(x T) uint64
}

func (op hashOption[T]) apply(t *Table[T]) {
	t.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a Table[T]
// in place of T's Hash method. The function must be consistent with T's
// Equal method.
func WithHash[T Element[T]](hash func(x T) uint64) option[T] {
	return hashOption[T]{hash}
}

// Allocator specifies an interface for allocating and releasing memory used
// by a Table. The default allocator utilizes Go's builtin make() and allows
// the GC to reclaim memory.
//
// If the allocator is manually managing memory and requires that slots be
// freed then Table.Close must be called in order to ensure FreeSlots is
// called for the final slots.
type Allocator[T any] interface {
	// AllocSlots should return a slice equivalent to make([]Slot[T], n). In
	// particular every returned slot must be the zero (empty) Slot.
	AllocSlots(n int) []Slot[T]

	// FreeSlots can optional release the memory associated with the supplied
	// slice that is guaranteed to have been allocated by AllocSlots.
	FreeSlots(v []Slot[T])
}

type defaultAllocator[T any] struct{}

func (defaultAllocator[T]) AllocSlots(n int) []Slot[T] {
	return make([]Slot[T], n)
}

func (defaultAllocator[T]) FreeSlots(v []Slot[T]) {
}

type allocatorOption[T Element[T]] struct {
	allocator Allocator[T]
}

func (op allocatorOption[T]) apply(t *Table[T]) {
	t.allocator = op.allocator
}

// WithAllocator is an option for specify the Allocator to use for a Table[T].
func WithAllocator[T Element[T]](allocator Allocator[T]) option[T] {
	return allocatorOption[T]{allocator}
}

type growthHookOption[T Element[T]] struct {
	fn func(oldCapacity, newCapacity int)
}

func (op growthHookOption[T]) apply(t *Table[T]) {
	t.onGrow = op.fn
}

// WithGrowthHook is an option to register a function invoked after each
// rehash with the capacity before and after. The function must not access
// the table.
func WithGrowthHook[T Element[T]](fn func(oldCapacity, newCapacity int)) option[T] {
	return growthHookOption[T]{fn}
}
