// Copyright 2026 The svcore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arena defines an Arena type with compressed pointers.
//
// The front-end never frees a single node or symbol on its own; the whole
// arena is dropped only when a Compilation is destroyed. Using four-byte
// indices instead of eight-byte pointers keeps the resulting symbol/syntax
// graphs cheap for the GC to walk even though they contain cycles (a Scope
// points at its members, and each member points back at its Scope).
package arena

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	pointersMinLenShift = 4
	pointersMinLen      = 1 << pointersMinLenShift
)

// Untyped is an untyped arena pointer.
//
// The value of a pointer equals one plus the number of elements allocated
// before it; the zero value means "nil".
type Untyped uint32

// Nil returns a nil arena pointer.
func Nil() Untyped {
	return 0
}

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed, typed arena pointer.
//
// It cannot be dereferenced directly; see [Pointer.In]. The zero value is
// nil.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// In looks up this pointer in the given arena.
//
// a must be the arena that allocated this pointer; otherwise this either
// returns an arbitrary element or panics. Panics if p is nil.
func (p Pointer[T]) In(a *Arena[T]) *T {
	return a.At(Untyped(p))
}

// Arena is a bump allocator that hands out compressed pointers. Internally
// it is a table of logarithmically-growing slices of T that mimics the
// resizing behavior of an ordinary slice, which guarantees that elements,
// once allocated, are never moved.
//
// This trades the 8-byte-per-element overhead of a []*T for a constant
// 24-byte overhead for the whole arena, at the cost of one extra pointer
// load per access. Lookup remains O(1).
//
// The zero Arena[T] is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(table[0]) == 1<<pointersMinLenShift.
	// 2. cap(table[n]) == 2*cap(table[n-1]).
	// 3. cap(table[n]) == len(table[n]) for n < len(table)-1.
	table [][]T
}

// New allocates a new value on the arena and returns a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.table == nil {
		a.table = [][]T{make([]T, 0, pointersMinLen)}
	}

	last := &a.table[len(a.table)-1]
	if len(*last) == cap(*last) {
		a.table = append(a.table, make([]T, 0, 2*cap(*last)))
		last = &a.table[len(a.table)-1]
	}

	*last = append(*last, value)
	return Pointer[T](Untyped(a.Len()))
}

// At dereferences an untyped arena pointer, as if by [Pointer.In].
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		a = nil // Trigger an ordinary nil dereference on purpose.
	}
	slice, idx := a.coordinates(int(ptr) - 1)
	return &a.table[slice][idx]
}

// Len returns the number of elements allocated in this arena so far.
func (a *Arena[T]) Len() int {
	if len(a.table) == 0 {
		return 0
	}
	// Only the last slice will be not-fully-filled.
	return a.lenOfFirstNSlices(len(a.table)-1) + len(a.table[len(a.table)-1])
}

// All calls yield once for every element allocated so far, in allocation
// order, along with the pointer that refers to it.
func (a *Arena[T]) All(yield func(Pointer[T], *T) bool) {
	idx := 0
	for _, slice := range a.table {
		for i := range slice {
			idx++
			if !yield(Pointer[T](Untyped(idx)), &slice[i]) {
				return
			}
		}
	}
}

// String implements [fmt.Stringer], for debugging.
func (a Arena[T]) String() string {
	var b strings.Builder
	b.WriteRune('[')
	for i, slice := range a.table {
		if i != 0 {
			b.WriteRune('|')
		}
		for i, v := range slice {
			if i != 0 {
				b.WriteRune(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteRune(']')
	return b.String()
}

// lenOfNthSlice returns the length of the nth slice, even if it isn't
// allocated yet.
func (*Arena[T]) lenOfNthSlice(n int) int {
	return pointersMinLen << n
}

// lenOfFirstNSlices returns the length of the first n slices.
func (a *Arena[T]) lenOfFirstNSlices(n int) int {
	// 2^m + 2^(m+1) + ... + 2^n == 2^(n+1) - 2^m, so the sum of
	// lenOfNthSlice(i) for i in [0, n) is:
	return max(0, a.lenOfNthSlice(n)-a.lenOfNthSlice(0))
}

// coordinates calculates the coordinates of the given index in table. It
// also performs a bounds check.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx >= a.Len() || idx < 0 {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx))
	}

	// Given pointersMinLenShift == n, the cumulative starting index of each
	// slice is 0b0<<n, 0b1<<n, 0b11<<n, 0b111<<n, ... Adding pointersMinLen
	// and taking the one-indexed high bit maps this to 1+n, 2+n, 3+n, ...;
	// subtracting n+1 gives the slice index directly.
	slice := bits.UintSize - bits.LeadingZeros(uint(idx)+pointersMinLen)
	slice -= pointersMinLenShift + 1

	idx -= a.lenOfFirstNSlices(slice)
	return slice, idx
}
