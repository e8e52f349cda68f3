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

	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/token"
)

func newTestCompilation() *Compilation {
	return NewCompilation(Options{}, nil)
}

// Ordering property: iterating members yields them in the
// order they were added.
func TestScope_MemberOrder(t *testing.T) {
	c := newTestCompilation()
	rootScope := c.Scope(c.Root().Scope)

	var names []string
	for i, name := range []string{"a", "b", "c"} {
		ptr, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: name, Loc: token.Location{Offset: i}})
		c.AddMember(rootScope.self, ptr, name, token.Location{Offset: i})
	}
	for _, ptr := range rootScope.Members {
		names = append(names, c.Symbol(ptr).Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

// Two members named "x" in one scope are both present in order; the
// second triggers one redeclaration diagnostic; find("x") returns the
// first.
func TestScope_DuplicateDeclaration(t *testing.T) {
	c := newTestCompilation()
	rootScope := c.Scope(c.Root().Scope)

	first, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: "x", Loc: token.Location{Offset: 0}})
	c.AddMember(rootScope.self, first, "x", token.Location{Offset: 0})

	second, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: "x", Loc: token.Location{Offset: 10}})
	c.AddMember(rootScope.self, second, "x", token.Location{Offset: 10})

	require.Len(t, rootScope.Members, 2)
	assert.Equal(t, 1, c.Diagnostics().Len())
	assert.Equal(t, diag.CodeDuplicateDeclaration, c.Diagnostics().Diagnostics()[0].Code)

	found := c.Find(rootScope.self, "x")
	require.NotNil(t, found)
	assert.Equal(t, token.Location{Offset: 0}, found.Loc)
}

// Lookup-visibility property: for a LookupLocation (S, i),
// lookup(name) never returns a member of S with order index >= i.
func TestCompilation_LookupVisibility(t *testing.T) {
	c := newTestCompilation()
	rootScope := c.Scope(c.Root().Scope)

	beforePtr, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: "before"})
	locBefore := c.AddMember(rootScope.self, beforePtr, "before", token.Location{})
	_ = locBefore

	queryLoc := rootScope.HereLoc()

	afterPtr, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: "after"})
	c.AddMember(rootScope.self, afterPtr, "after", token.Location{})

	assert.NotNil(t, c.Lookup(queryLoc, "before"))
	assert.Nil(t, c.Lookup(queryLoc, "after"))
}

// lookup ascends to the parent scope using the parent's own
// LookupLocation, terminating at $root.
func TestCompilation_LookupAscendsToParent(t *testing.T) {
	c := newTestCompilation()
	rootScope := c.Scope(c.Root().Scope)

	outerPtr, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: "outer"})
	outerLoc := c.AddMember(rootScope.self, outerPtr, "outer", token.Location{})

	childScope := c.newScope(outerPtr, rootScope.self, outerLoc)
	innerPtr, _ := c.newSymbol(Symbol{Kind: KindPackage, Name: "inner"})
	innerLoc := c.AddMember(childScope.self, innerPtr, "inner", token.Location{})

	assert.NotNil(t, c.Lookup(innerLoc, "inner"))
	assert.NotNil(t, c.Lookup(innerLoc, "outer"))
	assert.Nil(t, c.Lookup(innerLoc, "nonexistent"))
}
