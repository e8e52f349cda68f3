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
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// ParamDecl is one parameter declared on a Definition, in source
// order. Default is the default-value expression syntax, nil if the
// parameter has none (an override is then mandatory).
type ParamDecl struct {
	Name    string
	Default *syntax.Node
}

// Type stands in for a resolved SystemVerilog type. Type checking is an
// external collaborator, so this core only needs a name to
// hand back to callers, not a structural type model.
type Type string

// ParameterMetadata is one resolved parameter attached to an instance
// during elaboration.
type ParameterMetadata struct {
	Decl          ParamDecl
	ResolvedType  Type
	ConstantValue int64
}

// Definition is the pre-elaboration descriptor produced from a module,
// interface, or program declaration; one Definition may back many
// instances.
type Definition struct {
	Kind   SymbolKind // KindModuleInstance, KindInterfaceInstance, or KindProgramInstance
	Name   string
	Loc    token.Location
	Params []ParamDecl
	// Body is the declaration's member-list syntax, re-elaborated into
	// each instance's own scope when the definition is instantiated.
	Body *syntax.Node
}
