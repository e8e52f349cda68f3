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

package svcore_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcore "github.com/hdlcore/svcore"
	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/hier"
	"github.com/hdlcore/svcore/internal/testbind"
	"github.com/hdlcore/svcore/internal/testlex"
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// reconstruct concatenates every token's trivia and text over a
// left-to-right walk of the tree, which must reproduce the original
// byte sequence exactly.
func reconstruct(root *syntax.Node) string {
	var sb strings.Builder
	var walk func(e syntax.TokenOrSyntax)
	walk = func(e syntax.TokenOrSyntax) {
		if e.IsToken() {
			sb.WriteString(e.Token().SourceText())
			return
		}
		node := e.Node()
		if node == nil {
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(syntax.FromNode(root))
	return sb.String()
}

func requireRoundTrip(t *testing.T, src string) *svcore.ParsedFile {
	t.Helper()
	file := svcore.ParseFile(testlex.New(src))
	got := reconstruct(file.Root)
	if got != src {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(src),
			B:        difflib.SplitLines(got),
			FromFile: "source",
			ToFile:   "reconstructed",
			Context:  2,
		})
		t.Fatalf("round-trip mismatch:\n%s", diff)
	}
	return file
}

func TestRoundTrip_LegalInput(t *testing.T) {
	file := requireRoundTrip(t, `// leaf device
module leaf #(W = 8);
  initial begin
  end
endmodule

package util;
endpackage

module top;
  // three copies
  for (genvar i = 0; i < 3; i++) begin : g
    leaf #(W = 16) (m);
  end
  if (1) begin : opt
    always_comb begin
    end
  end
  begin : seq
  end
endmodule
`)
	assert.Equal(t, 0, file.Diags.Len())
}

// The round-trip property must hold on error paths too: skipped tokens
// survive as trivia, missing tokens contribute only what they stole.
func TestRoundTrip_ErrorInputs(t *testing.T) {
	cases := map[string]struct {
		src       string
		wantDiags int
	}{
		"garbage at top level": {
			src:       "%% @ module m;\nendmodule\n",
			wantDiags: 1,
		},
		"garbage in body": {
			src:       "module m;\n  % initial;\nendmodule\n",
			wantDiags: 1,
		},
		"missing module name": {
			src:       "module ;\nendmodule\n",
			wantDiags: 1,
		},
		"trailing comma in overrides": {
			src:       "module m;\n  leaf #(W = 1,) (u);\nendmodule\n",
			wantDiags: 1,
		},
		"unterminated module": {
			src:       "module m;\n  initial;\n",
			wantDiags: 1,
		},
		"empty input": {
			src:       "",
			wantDiags: 0,
		},
		"only trivia": {
			src:       "  // nothing here\n",
			wantDiags: 0,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			file := requireRoundTrip(t, tc.src)
			assert.Equal(t, tc.wantDiags, file.Diags.Len())
		})
	}
}

func TestCompileFiles(t *testing.T) {
	sources := []token.Source{
		testlex.New(`
module leaf;
endmodule
`),
		testlex.New(`
module top;
  leaf (a, b);
endmodule
`),
	}

	c, err := svcore.CompileFiles(context.Background(), sources, hier.Options{}, testbind.Binder{}, 2)
	require.NoError(t, err)
	require.Len(t, c.CompilationUnits(), 2)

	top := c.Find(c.Root().Scope, "top")
	require.NotNil(t, top)

	scope := c.Scope(top.Scope)
	require.Len(t, scope.Members, 2)
	for i, name := range []string{"a", "b"} {
		inst := c.Symbol(scope.Members[i])
		assert.Equal(t, name, inst.Name)
		assert.True(t, inst.IsKind(hier.KindModuleInstance))
	}
}

// Parse diagnostics and elaboration diagnostics for one file are
// merged in source order, with the parse records carried over intact
// rather than reformatted.
func TestElaborate_MergesDiagnosticsInSourceOrder(t *testing.T) {
	file := svcore.ParseFile(testlex.New("package p;\n  %\n  nosuch (u);\nendpackage\n"))
	require.Equal(t, 1, file.Diags.Len())

	c := hier.NewCompilation(hier.Options{}, testbind.Binder{})
	svcore.Elaborate(c, file)

	ds := c.Diagnostics().Diagnostics()
	require.Len(t, ds, 2)
	assert.Equal(t, diag.CodeSkippedTokens, ds[0].Code)
	assert.Equal(t, diag.CodeUnknownName, ds[1].Code)
	assert.Less(t, ds[0].Location.Offset, ds[1].Location.Offset)
	assert.Same(t, file.Diags.Diagnostics()[0], ds[0])
}

func TestCompileFiles_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svcore.CompileFiles(ctx, []token.Source{testlex.New("module m;\nendmodule\n")}, hier.Options{}, testbind.Binder{}, 1)
	assert.Error(t, err)
}

// symSummary is the comparable projection of a symbol graph used to
// check the idempotent-elaboration property: two
// elaborations of the same tree must agree on kinds, names, member
// order, and parameter values.
type symSummary struct {
	Kind    hier.SymbolKind
	Name    string
	Value   int64
	IsParam bool
	Members []symSummary
}

func summarize(c *hier.Compilation, sym *hier.Symbol) symSummary {
	s := symSummary{Kind: sym.Kind, Name: sym.Name}
	if v, ok := sym.AsParameter(); ok {
		s.Value = v
		s.IsParam = true
	}
	if !sym.Scope.Nil() {
		for _, ptr := range c.Scope(sym.Scope).Members {
			s.Members = append(s.Members, summarize(c, c.Symbol(ptr)))
		}
	}
	return s
}

func TestElaborationIsIdempotent(t *testing.T) {
	file := requireRoundTrip(t, `
module leaf #(W = 1);
endmodule

module top;
  for (genvar i = 0; i < 4; i++) begin : g
    leaf #(W = 2) (m);
  end
  if (1) begin : cfg
    initial;
  end
endmodule
`)

	run := func() symSummary {
		c := hier.NewCompilation(hier.Options{}, testbind.Binder{})
		svcore.Elaborate(c, file)
		c.Finalize()
		return summarize(c, c.Root())
	}

	first := run()
	second := run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("elaborations disagree (-first +second):\n%s", diff)
	}
}
