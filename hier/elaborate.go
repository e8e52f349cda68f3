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
	"github.com/hdlcore/svcore/syntax"
)

// ElaborateCompilationUnit materializes a compilation-unit symbol:
// constructed once per compilation unit, name empty, parent is
// $root, members populated in source order from top-level
// declarations. The result is appended to the Compilation's ordered
// unit list.
func (c *Compilation) ElaborateCompilationUnit(node *syntax.Node) *Symbol {
	rootScope := c.Root().Scope
	ptr, sym := c.newSymbol(Symbol{Kind: KindCompilationUnit, Loc: node.LeftmostToken().Location, Parent: rootScope})
	scope := c.newScope(ptr, rootScope, c.Scope(rootScope).HereLoc())
	sym.Scope = scope.self

	for _, decl := range listItems(childNode(node, 0)) {
		c.elaborateTopLevel(decl, scope.self)
	}

	c.units = append(c.units, ptr)
	c.AddMember(rootScope, ptr, "", sym.Loc)
	return sym
}

// elaborateTopLevel dispatches a compilation-unit-level declaration:
// module/interface/program declarations are registered as Definitions;
// package declarations elaborate directly into a package symbol.
func (c *Compilation) elaborateTopLevel(decl *syntax.Node, scope arena.Pointer[Scope]) {
	switch decl.Kind {
	case syntax.KindModuleDecl:
		c.registerDefinitionFromSyntax(decl, KindModuleInstance)
	case syntax.KindInterfaceDecl:
		c.registerDefinitionFromSyntax(decl, KindInterfaceInstance)
	case syntax.KindProgramDecl:
		c.registerDefinitionFromSyntax(decl, KindProgramInstance)
	case syntax.KindPackageDecl:
		sym := c.ElaboratePackage(decl, scope, c.Scope(scope).HereLoc())
		c.AddMember(scope, sym.self, sym.Name, sym.Loc)
	}
}

func (c *Compilation) registerDefinitionFromSyntax(decl *syntax.Node, kind SymbolKind) {
	nameTok := childToken(decl, 0)
	def := &Definition{
		Kind: kind,
		Name: nameTok.Text,
		Loc:  nameTok.Location,
		Body: childNode(decl, 2),
	}
	for _, p := range listItems(childNode(decl, 1)) {
		def.Params = append(def.Params, ParamDecl{
			Name:    childToken(p, 0).Text,
			Default: childNode(p, 1),
		})
	}
	c.RegisterDefinition(def)
}

// ElaboratePackage materializes a package symbol: name taken from the
// syntax header, members populated from the body. Package parameters
// are permitted but never propagate to instances, so they are not
// treated specially here.
func (c *Compilation) ElaboratePackage(node *syntax.Node, parentScope arena.Pointer[Scope], loc LookupLocation) *Symbol {
	nameTok := childToken(node, 0)
	ptr, sym := c.newSymbol(Symbol{Kind: KindPackage, Name: nameTok.Text, Loc: nameTok.Location, Parent: parentScope})
	scope := c.newScope(ptr, parentScope, loc)
	sym.Scope = scope.self

	for _, member := range listItems(childNode(node, 1)) {
		c.elaborateBodyMember(member, scope.self)
	}
	return sym
}

// elaborateBodyMember dispatches one member of a module/package/block
// body. Instantiations may append more than one symbol (one
// HierarchyInstantiation can name several instances); generate
// constructs may append zero.
func (c *Compilation) elaborateBodyMember(member *syntax.Node, scope arena.Pointer[Scope]) {
	if c.Aborted() {
		return
	}
	switch member.Kind {
	case syntax.KindHierarchyInstantiation:
		c.ElaborateInstances(member, c.Scope(scope).HereLoc(), scope)
	case syntax.KindBlockStatement:
		sym := c.ElaborateSequentialBlock(member, scope, c.Scope(scope).HereLoc())
		c.AddMember(scope, sym.self, sym.Name, sym.Loc)
	case syntax.KindProceduralBlock:
		sym := c.ElaborateProceduralBlock(member, scope, c.Scope(scope).HereLoc())
		c.AddMember(scope, sym.self, sym.Name, sym.Loc)
	case syntax.KindIfGenerate:
		if sym, ok := c.ElaborateIfGenerate(member, c.Scope(scope).HereLoc(), scope); ok {
			c.AddMember(scope, sym.self, sym.Name, sym.Loc)
		}
	case syntax.KindLoopGenerate:
		sym := c.ElaborateLoopGenerate(member, c.Scope(scope).HereLoc(), scope)
		c.AddMember(scope, sym.self, sym.Name, sym.Loc)
	}
}

func elaborateBodyList(c *Compilation, list *syntax.Node, scope arena.Pointer[Scope]) {
	for _, member := range listItems(list) {
		c.elaborateBodyMember(member, scope)
	}
}

// ElaborateInstances materializes instance symbols: it resolves the
// referenced Definition by name, and for each instance name in the
// syntax constructs the appropriate concrete instance symbol, computes
// its ParameterMetadata, calls populate, and appends the result to
// scope in source order.
func (c *Compilation) ElaborateInstances(node *syntax.Node, loc LookupLocation, scope arena.Pointer[Scope]) []*Symbol {
	defNameTok := childToken(node, 0)
	def, ok := c.binder.LookupDefinition(c, loc, defNameTok.Text)
	if !ok {
		d := c.diags.Errorf(diag.CodeUnknownName, defNameTok.Location, "unknown definition %q", defNameTok.Text)
		ph := c.newPlaceholder(defNameTok.Location, scope, d)
		c.AddMember(scope, ph.self, "", ph.Loc)
		return nil
	}
	c.markReferenced(def.Name)

	params, ok := c.binder.ResolveOverrides(c, def, childNode(node, 1), loc)
	if !ok {
		d := c.diags.Errorf(diag.CodeConstantEvaluationFailure, defNameTok.Location, "failed to resolve parameters for %q", def.Name)
		ph := c.newPlaceholder(defNameTok.Location, scope, d)
		c.AddMember(scope, ph.self, "", ph.Loc)
		return nil
	}

	var out []*Symbol
	for _, nameNode := range listItems(childNode(node, 2)) {
		nameTok := childToken(nameNode, 0)
		instPtr, inst := c.newSymbol(Symbol{
			Kind:   def.Kind,
			Name:   nameTok.Text,
			Loc:    nameTok.Location,
			Parent: scope,
			def:    def,
			params: params,
		})
		instScope := c.newScope(instPtr, scope, loc)
		inst.Scope = instScope.self
		c.populate(inst, instScope, def, params)

		c.AddMember(scope, instPtr, inst.Name, inst.Loc)
		out = append(out, inst)
	}
	return out
}

// populate fills a fresh instance's scope: it clones the definition's
// body members into the instance's own scope. Parameter
// substitution within those members is delegated entirely to the
// binder — the only guarantee needed here is that symbol identities
// within one instance are disjoint from those of any other instance,
// which holds because elaborateBodyMember always allocates fresh
// symbols.
func (c *Compilation) populate(inst *Symbol, instScope *Scope, def *Definition, params []ParameterMetadata) {
	_ = params // substitution is the binder's concern
	for _, member := range listItems(def.Body) {
		c.elaborateBodyMember(member, instScope.self)
	}
}

// ElaborateSequentialBlock materializes a begin/end block symbol: name
// taken from an optional label, the statement tree stored on the
// embedded statement-bodied scope.
func (c *Compilation) ElaborateSequentialBlock(node *syntax.Node, parentScope arena.Pointer[Scope], loc LookupLocation) *Symbol {
	labelTok := childToken(node, 0)
	bodyList := childNode(node, 1)

	ptr, sym := c.newSymbol(Symbol{Kind: KindSequentialBlock, Name: labelTok.Text, Loc: labelTok.Location, Parent: parentScope})
	scope := c.newScope(ptr, parentScope, loc)
	scope.Body = bodyList
	sym.Scope = scope.self

	elaborateBodyList(c, bodyList, scope.self)
	return sym
}

// ElaborateProceduralBlock materializes an initial/always/final block:
// records the procedure kind and stores the body. A begin/end body's
// member list is elaborated into the block's own scope like any other
// body list; no other statement semantics are applied.
func (c *Compilation) ElaborateProceduralBlock(node *syntax.Node, parentScope arena.Pointer[Scope], loc LookupLocation) *Symbol {
	kwTok := childToken(node, 0)
	body := childNode(node, 1)

	ptr, sym := c.newSymbol(Symbol{
		Kind:     KindProceduralBlock,
		Loc:      kwTok.Location,
		Parent:   parentScope,
		procKind: procedureKindOf(kwTok.Kind),
	})
	scope := c.newScope(ptr, parentScope, loc)
	scope.Body = body
	sym.Scope = scope.self

	if body != nil && body.Kind == syntax.KindBlockStatement {
		elaborateBodyList(c, childNode(body, 1), scope.self)
	}
	return sym
}
