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
	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/internal/arena"
	"github.com/hdlcore/svcore/token"
)

// Compilation is the process-wide container for one elaboration run;
// its lifecycle is create, add compilation units, elaborate, query,
// drop. It owns the bump allocators for symbols and scopes; symbol
// identity is stable for the Compilation's lifetime. A Compilation is
// single-threaded: it performs no internal synchronization, and must
// not be shared across goroutines.
type Compilation struct {
	opts   Options
	diags  *diag.Sink
	binder Binder

	symbols arena.Arena[Symbol]
	scopes  arena.Arena[Scope]

	root         arena.Pointer[Symbol]
	units        []arena.Pointer[Symbol] // compilation units, in the order added
	topInstances []arena.Pointer[Symbol] // set by Finalize

	// definitions indexes every Definition registered while elaborating
	// module/interface/program declarations, keyed by name. This is the
	// registry a Binder.LookupDefinition implementation would typically
	// consult; the core itself never resolves a name through it
	// directly.
	definitions map[string]*Definition
	// referenced tracks which Definition names were the target of at
	// least one HierarchyInstantiation, for DefaultTopInstanceHeuristic.
	referenced map[string]bool

	aborted bool // set on an Internal-invariant-violation
}

// NewCompilation creates an empty Compilation using opts and binder for
// every opaque operation elaboration needs.
func NewCompilation(opts Options, binder Binder) *Compilation {
	c := &Compilation{
		opts:        opts,
		diags:       &diag.Sink{},
		binder:      binder,
		definitions: make(map[string]*Definition),
		referenced:  make(map[string]bool),
	}
	rootPtr, root := c.newSymbol(Symbol{Kind: KindRoot, Name: "$root"})
	root.Scope = c.newScope(rootPtr, arena.Pointer[Scope](arena.Nil()), LookupLocation{}).self
	c.root = rootPtr
	return c
}

// Diagnostics returns this Compilation's diagnostic sink.
func (c *Compilation) Diagnostics() *diag.Sink { return c.diags }

// Aborted reports whether an internal-invariant violation has fatally
// terminated this Compilation.
func (c *Compilation) Aborted() bool { return c.aborted }

// Abort records a fatal internal-invariant violation. Elaboration
// should stop calling into this Compilation once Aborted reports true.
func (c *Compilation) Abort(loc token.Location, message string) {
	c.diags.Errorf(diag.CodeInternalInvariantViolation, loc, "%s", message)
	c.aborted = true
}

// Root returns the Compilation's RootSymbol.
func (c *Compilation) Root() *Symbol { return c.Symbol(c.root) }

// Symbol dereferences an arena pointer into a stable *Symbol.
func (c *Compilation) Symbol(p arena.Pointer[Symbol]) *Symbol {
	if p.Nil() {
		return nil
	}
	return p.In(&c.symbols)
}

// Scope dereferences an arena pointer into a stable *Scope.
func (c *Compilation) Scope(p arena.Pointer[Scope]) *Scope {
	if p.Nil() {
		return nil
	}
	return p.In(&c.scopes)
}

// CompilationUnits returns the compilation units added so far, in the
// order they were added.
func (c *Compilation) CompilationUnits() []*Symbol {
	out := make([]*Symbol, len(c.units))
	for i, p := range c.units {
		out[i] = c.Symbol(p)
	}
	return out
}

// RegisterDefinition adds def to the Compilation's definition registry,
// keyed by name. Elaborating a module/interface/program declaration
// calls this once the Definition is built; Binder.LookupDefinition
// implementations typically resolve names against this registry.
func (c *Compilation) RegisterDefinition(def *Definition) {
	c.definitions[def.Name] = def
}

// Definitions returns every Definition registered so far, keyed by
// name.
func (c *Compilation) Definitions() map[string]*Definition {
	return c.definitions
}

// markReferenced records that name was the target of a
// HierarchyInstantiation, consulted by DefaultTopInstanceHeuristic.
func (c *Compilation) markReferenced(name string) {
	c.referenced[name] = true
}

func (c *Compilation) newSymbol(raw Symbol) (arena.Pointer[Symbol], *Symbol) {
	ptr := c.symbols.New(raw)
	sym := ptr.In(&c.symbols)
	sym.self = ptr
	return ptr, sym
}

// newPlaceholder allocates the stand-in symbol that replaces a subtree
// whose elaboration aborted, leaving a partial but navigable graph.
// cause is the diagnostic that killed the subtree, retrievable via
// AsPlaceholder.
func (c *Compilation) newPlaceholder(loc token.Location, parentScope arena.Pointer[Scope], cause *diag.Diagnostic) *Symbol {
	_, sym := c.newSymbol(Symbol{Kind: KindPlaceholder, Loc: loc, Parent: parentScope, cause: cause})
	return sym
}

func (c *Compilation) newScope(owner arena.Pointer[Symbol], parent arena.Pointer[Scope], parentLoc LookupLocation) *Scope {
	ptr := c.scopes.New(Scope{Owner: owner, Parent: parent, ParentLoc: parentLoc})
	sc := ptr.In(&c.scopes)
	sc.self = ptr
	return sc
}

// Find performs an exact-name lookup restricted to scopePtr, ignoring
// declaration order.
func (c *Compilation) Find(scopePtr arena.Pointer[Scope], name string) *Symbol {
	scope := c.Scope(scopePtr)
	ptr, ok := scope.find(name)
	if !ok {
		return nil
	}
	return c.Symbol(ptr)
}

// Lookup resolves name starting from loc, respecting
// forward-visibility: only members declared at strictly smaller order
// indices in the same scope are visible, then the search ascends to the
// parent scope using the parent's own LookupLocation. $root is the
// terminal parent.
func (c *Compilation) Lookup(loc LookupLocation, name string) *Symbol {
	cur := loc
	for {
		scope := c.Scope(cur.Scope)
		if scope == nil {
			return nil
		}
		if ptr, ok := scope.visibleAt(name, cur.Order); ok {
			return c.Symbol(ptr)
		}
		if scope.Parent.Nil() {
			return nil
		}
		cur = scope.ParentLoc
	}
}

// AddMember adds sym (named name) to the scope owned by ownerScope,
// returning the LookupLocation immediately after it, and reports a
// duplicate-declaration diagnostic if name collided with an existing
// member (the first declaration wins; the second gets the diagnostic).
func (c *Compilation) AddMember(ownerScope arena.Pointer[Scope], sym arena.Pointer[Symbol], name string, loc token.Location) LookupLocation {
	scope := c.Scope(ownerScope)
	before := len(scope.Redeclarations(name))
	res := scope.AddMember(sym, name)
	if name != "" && len(scope.Redeclarations(name)) > before {
		first := c.Find(ownerScope, name)
		d := c.diags.Errorf(diag.CodeDuplicateDeclaration, loc, "redeclaration of %q", name)
		if first != nil {
			d.Note(first.Loc, "first declared here")
		}
	}
	return res
}
