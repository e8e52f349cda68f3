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
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultIterationCap is the default loop-generate iteration ceiling,
// the smallest maximum a conforming front-end may impose.
const DefaultIterationCap = 1 << 16

// Options configures a Compilation. The zero Options is valid and uses
// the defaults documented on each field; YAML-unmarshalable fields
// (TopInstanceHeuristic) are excluded from serialization since a
// function value can't be embedded in fixture YAML.
type Options struct {
	// IterationCap bounds loop-generate expansion. Zero
	// means DefaultIterationCap.
	IterationCap int `yaml:"iterationCap"`

	// TopInstanceHeuristic decides which Definitions populate the
	// root's top-instance list. Nil means DefaultTopInstanceHeuristic.
	TopInstanceHeuristic func(defs map[string]*Definition, referenced map[string]bool) []*Definition `yaml:"-"`
}

// LoadOptions unmarshals YAML into an Options value, so a batch driver
// can configure a Compilation without a bespoke flag parser.
// TopInstanceHeuristic is never set this way — it has no YAML
// representation and is tagged yaml:"-" — so callers that need a
// non-default heuristic must set it on the returned value themselves.
func LoadOptions(data []byte) (Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o Options) iterationCap() int {
	if o.IterationCap > 0 {
		return o.IterationCap
	}
	return DefaultIterationCap
}

func (o Options) topInstanceHeuristic() func(map[string]*Definition, map[string]bool) []*Definition {
	if o.TopInstanceHeuristic != nil {
		return o.TopInstanceHeuristic
	}
	return DefaultTopInstanceHeuristic
}

// DefaultTopInstanceHeuristic selects the tops of the design:
// a Definition is a top instance iff no HierarchyInstantiation anywhere
// in the compilation references it. referenced is keyed by Definition
// name and set by the elaborator as it resolves instantiations.
//
// defs is a map, so its iteration order is undefined; results are
// sorted by source location to keep the root's top-instance list
// deterministic across runs.
func DefaultTopInstanceHeuristic(defs map[string]*Definition, referenced map[string]bool) []*Definition {
	var tops []*Definition
	for name, def := range defs {
		if !referenced[name] {
			tops = append(tops, def)
		}
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Loc.Offset != tops[j].Loc.Offset {
			return tops[i].Loc.Offset < tops[j].Loc.Offset
		}
		return tops[i].Name < tops[j].Name
	})
	return tops
}
