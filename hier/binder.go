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

import "github.com/hdlcore/svcore/syntax"

// Binder is the external collaborator that performs everything this
// core treats as opaque: constant evaluation, parameter-override
// resolution, and definition lookup by name. The front-end core never
// interprets expression syntax itself —
// every method here takes the raw expression node and hands it back a
// result or reports failure by returning ok == false, which the caller
// turns into a Constant-evaluation-failure diagnostic and aborts only
// the affected subtree.
type Binder interface {
	// EvalConstant evaluates expr as a constant in the given scope at
	// the given lookup location (e.g. a genvar's current value must be
	// visible there). ok is false if the expression could not be
	// evaluated to a constant.
	EvalConstant(c *Compilation, loc LookupLocation, expr *syntax.Node) (value int64, ok bool)

	// ResolveOverrides combines def's default parameters with the
	// override list syntax (may be nil for "no overrides") into
	// resolved ParameterMetadata, one per entry in def.Params, in the
	// same order. ok is false if any required override is missing or
	// any override fails to evaluate.
	ResolveOverrides(c *Compilation, def *Definition, overrides *syntax.Node, loc LookupLocation) (params []ParameterMetadata, ok bool)

	// LookupDefinition resolves name to a Definition visible from loc.
	LookupDefinition(c *Compilation, loc LookupLocation, name string) (def *Definition, ok bool)
}
