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

// ElaborateIfGenerate evaluates an if-generate's guard as a constant
// and returns the then-branch block when true, the else-branch when
// false and present, or (nil, false) when false with no else — in
// which case the parent scope gets no new member. A guard that fails
// to evaluate aborts only this subtree, which is replaced by a
// placeholder symbol carrying the diagnostic.
func (c *Compilation) ElaborateIfGenerate(node *syntax.Node, loc LookupLocation, parentScope arena.Pointer[Scope]) (*Symbol, bool) {
	guard := childNode(node, 0)
	val, ok := c.binder.EvalConstant(c, loc, guard)
	if !ok {
		guardLoc := guard.LeftmostToken().Location
		d := c.diags.Errorf(diag.CodeConstantEvaluationFailure, guardLoc, "if-generate guard is not a constant")
		return c.newPlaceholder(guardLoc, parentScope, d), true
	}

	var chosen *syntax.Node
	if val != 0 {
		chosen = childNode(node, 1)
	} else if n := childNode(node, 2); n != nil {
		chosen = n
	} else {
		return nil, false
	}

	labelTok := childToken(chosen, 0)
	ptr, sym := c.newSymbol(Symbol{Kind: KindGenerateBlock, Name: labelTok.Text, Loc: labelTok.Location, Parent: parentScope})
	scope := c.newScope(ptr, parentScope, loc)
	sym.Scope = scope.self

	elaborateBodyList(c, childNode(chosen, 1), scope.self)
	return sym, true
}

// ElaborateLoopGenerate expands a loop generate into a block array:
// it evaluates initial/condition/step as constants, creating one
// generate-block child per iteration while the condition holds, each
// exposing an implicit KindParameter symbol bound to that iteration's
// genvar value. Exceeding the iteration cap is fatal for this array.
func (c *Compilation) ElaborateLoopGenerate(node *syntax.Node, loc LookupLocation, parentScope arena.Pointer[Scope]) *Symbol {
	genvarTok := childToken(node, 0)
	initExpr := childNode(node, 1)
	condExpr := childNode(node, 2)
	stepExpr := childNode(node, 3)
	bodyTemplate := childNode(node, 4)
	arrayLabel := childToken(bodyTemplate, 0)

	arrayPtr, array := c.newSymbol(Symbol{Kind: KindGenerateBlockArray, Name: arrayLabel.Text, Loc: genvarTok.Location, Parent: parentScope})
	arrayScope := c.newScope(arrayPtr, parentScope, loc)
	array.Scope = arrayScope.self

	val, ok := c.binder.EvalConstant(c, loc, initExpr)
	if !ok {
		c.diags.Errorf(diag.CodeConstantEvaluationFailure, genvarTok.Location, "loop-generate initializer is not a constant")
		return array
	}

	iterCap := c.opts.iterationCap()
	count := 0
	for {
		iterScope := c.newScope(arena.Pointer[Symbol](arena.Nil()), arrayScope.self, arrayScope.HereLoc())
		paramPtr, _ := c.newSymbol(Symbol{Kind: KindParameter, Name: genvarTok.Text, Loc: genvarTok.Location, Parent: iterScope.self, constValue: val})
		iterScope.AddMember(paramPtr, genvarTok.Text)

		condVal, ok := c.binder.EvalConstant(c, iterScope.HereLoc(), condExpr)
		if !ok {
			c.diags.Errorf(diag.CodeConstantEvaluationFailure, genvarTok.Location, "loop-generate condition is not a constant")
			return array
		}
		if condVal == 0 {
			return array
		}

		count++
		if count > iterCap {
			c.diags.Errorf(diag.CodeIterationCapExceeded, genvarTok.Location, "loop-generate exceeded iteration cap of %d", iterCap)
			return array
		}

		genPtr, _ := c.newSymbol(Symbol{Kind: KindGenerateBlock, Loc: genvarTok.Location, Parent: arrayScope.self, Scope: iterScope.self})
		iterScope.Owner = genPtr
		elaborateBodyList(c, childNode(bodyTemplate, 1), iterScope.self)
		arrayScope.AddMember(genPtr, "")

		next, ok := c.binder.EvalConstant(c, iterScope.HereLoc(), stepExpr)
		if !ok {
			c.diags.Errorf(diag.CodeConstantEvaluationFailure, genvarTok.Location, "loop-generate step is not a constant")
			return array
		}
		val = next
	}
}
