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

// Finalize is run once all compilation units have been added and
// elaborated. It applies the configured top-instance heuristic
// to every registered module Definition, instantiates the ones it
// selects directly under $root, and records them as Root's ordered
// top-instance list. Calling Finalize more than once is a no-op after
// the first call.
func (c *Compilation) Finalize() []*Symbol {
	if c.topInstances != nil {
		return c.topInstancesSymbols()
	}

	// DefaultTopInstanceHeuristic (and any caller-supplied one) decides
	// using c.referenced, which elaborateTopLevel never populates on its
	// own — HierarchyInstantiation nodes are only visited once their
	// enclosing Definition is actually instantiated, which for every
	// Definition at this point hasn't happened yet. Scan every
	// registered Definition's body syntax once up front so a Definition
	// instantiated only from inside another Definition's body (the
	// common case: "top" instantiates "leaf") is correctly excluded from
	// the unreferenced set, counting references anywhere in the
	// compilation rather than only in what's been elaborated so far.
	c.scanStaticReferences()

	tops := c.opts.topInstanceHeuristic()(c.definitions, c.referenced)
	rootScope := c.Root().Scope
	loc := c.Scope(rootScope).HereLoc()

	c.topInstances = make([]arena.Pointer[Symbol], 0, len(tops))
	for _, def := range tops {
		if def.Kind != KindModuleInstance {
			continue
		}
		params, ok := c.binder.ResolveOverrides(c, def, nil, loc)
		if !ok {
			continue
		}
		ptr, inst := c.newSymbol(Symbol{
			Kind:   def.Kind,
			Name:   def.Name,
			Loc:    def.Loc,
			Parent: rootScope,
			def:    def,
			params: params,
		})
		instScope := c.newScope(ptr, rootScope, loc)
		inst.Scope = instScope.self
		c.populate(inst, instScope, def, params)

		loc = c.AddMember(rootScope, ptr, inst.Name, inst.Loc)
		c.topInstances = append(c.topInstances, ptr)
	}
	return c.topInstancesSymbols()
}

// scanStaticReferences walks every registered Definition's body syntax
// for hierarchy instantiations and marks their target names referenced,
// so the unreferenced-definition test sees instantiations buried inside
// never-elaborated bodies (generate branches included — a definition
// referenced only from an un-taken branch still isn't a top).
func (c *Compilation) scanStaticReferences() {
	for _, def := range c.definitions {
		markInstantiationTargets(def.Body, c.referenced)
	}
}

func markInstantiationTargets(n *syntax.Node, referenced map[string]bool) {
	if n == nil {
		return
	}
	if n.Kind == syntax.KindHierarchyInstantiation {
		if name := childToken(n, 0).Text; name != "" {
			referenced[name] = true
		}
	}
	for _, child := range n.Children {
		markInstantiationTargets(child.Node(), referenced)
	}
}

func (c *Compilation) topInstancesSymbols() []*Symbol {
	out := make([]*Symbol, len(c.topInstances))
	for i, ptr := range c.topInstances {
		out[i] = c.Symbol(ptr)
	}
	return out
}
