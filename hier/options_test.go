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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlcore/svcore/token"
)

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions([]byte("iterationCap: 128\n"))
	require.NoError(t, err)
	assert.Equal(t, 128, opts.IterationCap)
	assert.Equal(t, 128, opts.iterationCap())
}

func TestLoadOptions_Invalid(t *testing.T) {
	_, err := LoadOptions([]byte("iterationCap: [not, an, int]\n"))
	assert.Error(t, err)
}

func TestOptions_Defaults(t *testing.T) {
	var opts Options
	assert.Equal(t, DefaultIterationCap, opts.iterationCap())
	assert.GreaterOrEqual(t, DefaultIterationCap, 1<<16)
	assert.NotNil(t, opts.topInstanceHeuristic())
}

func TestDefaultTopInstanceHeuristic_SortsByLocation(t *testing.T) {
	defs := map[string]*Definition{
		"b": {Name: "b", Loc: token.Location{Offset: 20}},
		"a": {Name: "a", Loc: token.Location{Offset: 10}},
		"c": {Name: "c", Loc: token.Location{Offset: 30}},
	}
	tops := DefaultTopInstanceHeuristic(defs, map[string]bool{"c": true})
	require.Len(t, tops, 2)
	assert.Equal(t, "a", tops[0].Name)
	assert.Equal(t, "b", tops[1].Name)
}
