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

// Package parse is the parser base: a token window plus the
// error-recovery primitives every grammar production in a SystemVerilog
// parser builds on. It knows nothing about any
// particular production — that's the concrete grammar, out of scope —
// only how to consume tokens, recover from unexpected ones, and
// recognize the one list shape ("open item (sep item)* close") that
// recurs throughout the language.
package parse

import (
	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// Parser bundles a token Window, a diagnostics Sink, and the syntax Tree
// a grammar's recognizers publish nodes onto. One Parser is used for one
// compilation unit; it holds no synchronization because a Compilation
// (package hier) is single-threaded.
type Parser struct {
	win   *token.Window
	diags *diag.Sink
	tree  *syntax.Tree
}

// New returns a Parser consuming src and recording diagnostics into
// diags, publishing nodes onto tree.
func New(src token.Source, diags *diag.Sink, tree *syntax.Tree) *Parser {
	return &Parser{win: token.NewWindow(src), diags: diags, tree: tree}
}

// Window returns the underlying token window, for recognizers that need
// raw Peek/Consume access beyond expect/skip/list.
func (p *Parser) Window() *token.Window { return p.win }

// Diagnostics returns the sink this parser reports into.
func (p *Parser) Diagnostics() *diag.Sink { return p.diags }

// Tree returns the arena this parser publishes nodes onto.
func (p *Parser) Tree() *syntax.Tree { return p.tree }

// Expect consumes a token of the given kind. On a mismatch it reports an
// "expected X" diagnostic at the current location and returns a missing
// token of the expected kind, which steals the actual token's leading
// trivia so no source material is lost.
func (p *Parser) Expect(kind token.Kind) token.Token {
	if tok := p.win.ConsumeIf(kind); !tok.IsZero() {
		return tok
	}

	actual := p.win.Peek()
	p.diags.Errorf(diag.CodeExpectedToken, actual.Location,
		"expected %s, found %s", kind, actual.Kind)
	stolen := p.win.StealLeadingTrivia()
	return token.Missing(kind, actual.Location, stolen)
}

// Recovery is the outcome of SkipBadTokens: whether the caller can
// resume normal recognition, or must unwind entirely.
type Recovery int

const (
	Continue Recovery = iota
	Abort
)

// SkipBadTokens consumes tokens starting at the current position until
// either isRestart matches (Continue) or isAbort matches or EOF is
// reached (Abort), raising exactly one diagnostic at the first skipped
// token's location.
//
// The consumed tokens are packaged into a single SkippedTokens trivium,
// returned so the caller can attach it to whatever node or token
// survives next. If nothing was
// skipped before hitting isRestart (shouldn't normally happen — callers
// are expected to check isRestart before calling this), the returned
// Trivia is the zero value.
func (p *Parser) SkipBadTokens(isRestart, isAbort func(token.Kind) bool, code diag.Code, message string) (token.Trivia, Recovery) {
	first := p.win.Peek()
	p.diags.Errorf(code, first.Location, "%s", message)

	var skipped []token.Token
	for {
		cur := p.win.Peek()
		if isRestart(cur.Kind) {
			return packSkipped(skipped), Continue
		}
		if cur.Kind == token.EOF || isAbort(cur.Kind) {
			return packSkipped(skipped), Abort
		}
		skipped = append(skipped, p.win.Consume())
	}
}

func packSkipped(toks []token.Token) token.Trivia {
	if len(toks) == 0 {
		return token.Trivia{}
	}
	return token.NewSkippedTokens(toks)
}

func isPending(t token.Trivia) bool {
	return t.Kind == token.SkippedTokens
}
