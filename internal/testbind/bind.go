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

// Package testbind implements hier.Binder over the small expression
// grammar package svcore parses, for tests only. The real binder is an
// external collaborator out of scope for the core; driving
// generate-construct elaboration end to end needs a concrete one, so
// this package plays that role the same way testlex stands in for the
// lexer.
package testbind

import (
	"strconv"

	"github.com/hdlcore/svcore/hier"
	"github.com/hdlcore/svcore/syntax"
)

// Binder evaluates integer constant expressions by walking the syntax
// directly: int literals, identifiers resolved through the scope chain
// to genvar parameter symbols, and the binary operators the toy
// expression grammar produces.
type Binder struct{}

var _ hier.Binder = Binder{}

// EvalConstant implements hier.Binder.
func (b Binder) EvalConstant(c *hier.Compilation, loc hier.LookupLocation, expr *syntax.Node) (int64, bool) {
	if expr == nil {
		return 0, false
	}
	switch expr.Kind {
	case syntax.KindIntLiteralExpr:
		v, err := strconv.ParseInt(tokenText(expr, 0), 10, 64)
		return v, err == nil

	case syntax.KindIdentifierExpr:
		sym := c.Lookup(loc, tokenText(expr, 0))
		if sym == nil {
			return 0, false
		}
		v, ok := sym.AsParameter()
		return v, ok

	case syntax.KindBinaryExpr:
		return b.evalBinary(c, loc, expr)

	default:
		return 0, false
	}
}

// evalBinary handles both the 3-child (lhs op rhs) shape and the
// 2-child increment/decrement shape a loop-generate step can take, in
// which case the result is the operand's next value.
func (b Binder) evalBinary(c *hier.Compilation, loc hier.LookupLocation, expr *syntax.Node) (int64, bool) {
	if len(expr.Children) == 2 {
		op, operand := incDecParts(expr)
		v, ok := b.EvalConstant(c, loc, operand)
		if !ok {
			return 0, false
		}
		if op == "++" {
			return v + 1, true
		}
		return v - 1, true
	}

	op := expr.Children[1].Token().Text
	if op == "=" {
		// Genvar reassignment: the step's value is its right-hand side.
		return b.EvalConstant(c, loc, expr.Children[2].Node())
	}

	lhs, ok := b.EvalConstant(c, loc, expr.Children[0].Node())
	if !ok {
		return 0, false
	}
	rhs, ok := b.EvalConstant(c, loc, expr.Children[2].Node())
	if !ok {
		return 0, false
	}
	switch op {
	case "+":
		return lhs + rhs, true
	case "-":
		return lhs - rhs, true
	case "*":
		return lhs * rhs, true
	case "/":
		if rhs == 0 {
			return 0, false
		}
		return lhs / rhs, true
	case "<":
		return boolInt(lhs < rhs), true
	case "<=":
		return boolInt(lhs <= rhs), true
	case ">":
		return boolInt(lhs > rhs), true
	case ">=":
		return boolInt(lhs >= rhs), true
	case "==":
		return boolInt(lhs == rhs), true
	case "!=":
		return boolInt(lhs != rhs), true
	default:
		return 0, false
	}
}

// ResolveOverrides implements hier.Binder: each declared parameter
// takes its override's value when one names it, else its default; a
// parameter with neither fails the whole resolution.
func (b Binder) ResolveOverrides(c *hier.Compilation, def *hier.Definition, overrides *syntax.Node, loc hier.LookupLocation) ([]hier.ParameterMetadata, bool) {
	byName := map[string]*syntax.Node{}
	if overrides != nil {
		for _, item := range listItems(overrides) {
			if item.Kind != syntax.KindParamAssignment {
				continue
			}
			byName[tokenText(item, 0)] = item.Children[1].Node()
		}
	}

	params := make([]hier.ParameterMetadata, 0, len(def.Params))
	for _, decl := range def.Params {
		expr := decl.Default
		if over, ok := byName[decl.Name]; ok && over != nil {
			expr = over
		}
		v, ok := b.EvalConstant(c, loc, expr)
		if !ok {
			return nil, false
		}
		params = append(params, hier.ParameterMetadata{
			Decl:          decl,
			ResolvedType:  "int",
			ConstantValue: v,
		})
	}
	return params, true
}

// LookupDefinition implements hier.Binder by consulting the
// Compilation's own definition registry.
func (b Binder) LookupDefinition(c *hier.Compilation, loc hier.LookupLocation, name string) (*hier.Definition, bool) {
	def, ok := c.Definitions()[name]
	return def, ok
}

func incDecParts(expr *syntax.Node) (op string, operand *syntax.Node) {
	for _, child := range expr.Children {
		if child.IsToken() {
			op = child.Token().Text
		} else {
			operand = child.Node()
		}
	}
	return op, operand
}

func listItems(list *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	for _, child := range list.Children {
		if n := child.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func tokenText(n *syntax.Node, i int) string {
	if n == nil || i >= len(n.Children) {
		return ""
	}
	return n.Children[i].Token().Text
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
