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

package hier

import (
	"github.com/hdlcore/svcore/internal/arena"
	"github.com/hdlcore/svcore/syntax"
)

// LookupLocation is a textual position within a Scope: the scope plus a
// monotonic order index assigned when the query site's own enclosing
// member (if any) was added. A counter is cheaper than re-deriving
// order from source spans at lookup time.
type LookupLocation struct {
	Scope arena.Pointer[Scope]
	Order int
}

type nameEntry struct {
	ptr   arena.Pointer[Symbol]
	order int
	// redeclarations records every later collision for this name, so a
	// caller can report every redeclaration site, not just the second.
	redeclarations []arena.Pointer[Symbol]
}

// Scope holds an ordered list of contained members and a name index
// over them. A statement-bodied scope is simply a Scope whose Body
// field is set — Go has no single-inheritance specialization, and
// nothing here needs two distinct scope types, so the body pointer is
// folded in as an optional field.
type Scope struct {
	self   arena.Pointer[Scope]
	Owner  arena.Pointer[Symbol]
	Parent arena.Pointer[Scope]
	// ParentLoc is the LookupLocation within Parent that this scope
	// hangs from, used to continue an ascending lookup from the parent's
	// own position. Zero value for the root scope, which has no parent.
	ParentLoc LookupLocation

	// Body is the statement tree owned by a statement-bodied scope; nil
	// for scopes that don't own one.
	Body *syntax.Node

	Members []arena.Pointer[Symbol]
	byName  map[string]*nameEntry
	order   int
}

// Self returns this scope's own arena pointer, the identity used to
// build a LookupLocation rooted here.
func (s *Scope) Self() arena.Pointer[Scope] { return s.self }

// HereLoc returns the LookupLocation denoting "immediately after every
// member added to this scope so far" — the location elaboration passes
// down when it wants the next member it creates to see everything
// already declared.
func (s *Scope) HereLoc() LookupLocation {
	return LookupLocation{Scope: s.self, Order: s.order}
}

// AddMember appends sym to the member list and, if name is non-empty,
// inserts it into the name index. A duplicate name does not overwrite
// the first entry; it is recorded and must be
// surfaced by the caller as a redeclaration diagnostic. Returns the
// LookupLocation immediately after sym in this scope, from which sym
// (and every earlier member) is visible.
func (s *Scope) AddMember(sym arena.Pointer[Symbol], name string) LookupLocation {
	order := s.order
	s.order++
	s.Members = append(s.Members, sym)
	after := LookupLocation{Scope: s.self, Order: s.order}

	if name == "" {
		return after
	}
	if s.byName == nil {
		s.byName = make(map[string]*nameEntry)
	}
	if existing, ok := s.byName[name]; ok {
		existing.redeclarations = append(existing.redeclarations, sym)
		return after
	}
	s.byName[name] = &nameEntry{ptr: sym, order: order}
	return after
}

// Redeclarations returns every member named name after the first,
// which is what a caller reports as the error.
func (s *Scope) Redeclarations(name string) []arena.Pointer[Symbol] {
	if entry, ok := s.byName[name]; ok {
		return entry.redeclarations
	}
	return nil
}

// find returns the first (kept) member named name declared directly in
// this scope, ignoring order.
func (s *Scope) find(name string) (arena.Pointer[Symbol], bool) {
	entry, ok := s.byName[name]
	if !ok {
		return arena.Pointer[Symbol](arena.Nil()), false
	}
	return entry.ptr, true
}

// visibleAt returns the member named name declared directly in this
// scope at an order index strictly less than maxOrder, or false if
// none qualifies.
func (s *Scope) visibleAt(name string, maxOrder int) (arena.Pointer[Symbol], bool) {
	entry, ok := s.byName[name]
	if !ok || entry.order >= maxOrder {
		return arena.Pointer[Symbol](arena.Nil()), false
	}
	return entry.ptr, true
}
