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

// Package hier is the hierarchy/scope model: symbols, scopes, and the
// elaborators that materialize them from a parsed tree. It is the one
// package in this module that consumes the parser base's output and an
// external Binder to produce a navigable design hierarchy.
//
// A symbol is a kind discriminator plus an arena-indexed payload, with
// As* accessors keyed on the kind. One Compilation owns one symbol
// arena and one scope arena directly, so Symbol and Scope are plain
// arena-allocated structs rather than lightweight wrapper views over
// shared state.
package hier

import (
	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/internal/arena"
	"github.com/hdlcore/svcore/token"
)

// SymbolKind discriminates the kind of entity a Symbol represents.
// Parameter covers genvar implicit bindings; Placeholder stands in for
// a subtree whose elaboration aborted.
type SymbolKind uint8

const (
	KindInvalid SymbolKind = iota
	KindRoot
	KindCompilationUnit
	KindPackage
	KindModuleInstance
	KindInterfaceInstance
	KindProgramInstance
	KindSequentialBlock
	KindProceduralBlock
	KindGenerateBlock
	KindGenerateBlockArray
	KindParameter
	KindPlaceholder
)

// ProcedureKind discriminates which procedure keyword introduced a
// procedural block.
type ProcedureKind uint8

const (
	ProcInvalid ProcedureKind = iota
	ProcInitial
	ProcAlways
	ProcAlwaysComb
	ProcAlwaysLatch
	ProcAlwaysFF
	ProcFinal
)

// procedureKindOf maps the procedural-block keyword token kind to its
// ProcedureKind.
func procedureKindOf(k token.Kind) ProcedureKind {
	switch k {
	case token.KwInitial:
		return ProcInitial
	case token.KwAlways:
		return ProcAlways
	case token.KwAlwaysComb:
		return ProcAlwaysComb
	case token.KwAlwaysLatch:
		return ProcAlwaysLatch
	case token.KwAlwaysFF:
		return ProcAlwaysFF
	case token.KwFinal:
		return ProcFinal
	default:
		return ProcInvalid
	}
}

// Symbol is a named entity in the hierarchy: kind, name, source
// location, and a back-reference to its containing Scope. Symbols are
// allocated once on a Compilation's arena and never moved; identity is
// the arena pointer.
//
// Payload fields below the common prefix are valid only for the kinds
// documented on them; every kind shares this one struct since a single
// Compilation owns them all.
type Symbol struct {
	self   arena.Pointer[Symbol]
	Kind   SymbolKind
	Name   string
	Loc    token.Location
	Parent arena.Pointer[Scope] // containing scope; nil for Root

	// Scope is this symbol's own scope, if it has one (every kind but
	// Parameter and Placeholder does).
	Scope arena.Pointer[Scope]

	procKind ProcedureKind // valid: KindProceduralBlock

	def    *Definition         // valid: instance kinds
	params []ParameterMetadata // valid: instance kinds

	constValue int64 // valid: KindParameter

	cause *diag.Diagnostic // valid: KindPlaceholder
}

// IsKind reports whether this symbol has the given kind. Nil-safe.
func (s *Symbol) IsKind(k SymbolKind) bool { return s != nil && s.Kind == k }

// AsProceduralBlock returns this symbol's procedure kind, if it is a
// procedural block.
func (s *Symbol) AsProceduralBlock() (ProcedureKind, bool) {
	if !s.IsKind(KindProceduralBlock) {
		return ProcInvalid, false
	}
	return s.procKind, true
}

// AsInstance returns the Definition this symbol instantiates and its
// resolved parameters, if it is a module/interface/program instance.
func (s *Symbol) AsInstance() (*Definition, []ParameterMetadata, bool) {
	switch s.Kind {
	case KindModuleInstance, KindInterfaceInstance, KindProgramInstance:
		return s.def, s.params, true
	default:
		return nil, nil, false
	}
}

// AsParameter returns the constant value bound to this symbol, if it is
// a genvar implicit parameter.
func (s *Symbol) AsParameter() (int64, bool) {
	if !s.IsKind(KindParameter) {
		return 0, false
	}
	return s.constValue, true
}

// AsPlaceholder returns the diagnostic that caused this symbol's
// subtree to abort elaboration, if it is a Placeholder.
func (s *Symbol) AsPlaceholder() (*diag.Diagnostic, bool) {
	if !s.IsKind(KindPlaceholder) {
		return nil, false
	}
	return s.cause, true
}
