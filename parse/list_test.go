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

package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/parse"
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// fixedSource replays a fixed token slice, repeating its final (EOF)
// token forever once exhausted, as required of a conforming Source.
type fixedSource struct {
	toks []token.Token
	pos  int
}

func (s *fixedSource) Next() token.Token {
	if s.pos >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

func ident(offset int, text string) token.Token {
	return token.Token{Kind: token.Identifier, Text: text, Location: token.Location{Offset: offset}}
}

func punct(offset int, kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text, Location: token.Location{Offset: offset}}
}

func eofTok(offset int) token.Token {
	return token.Token{Kind: token.EOF, Location: token.Location{Offset: offset}}
}

func isIdentStart(k token.Kind) bool { return k == token.Identifier }
func isRParen(k token.Kind) bool     { return k == token.RParen }

func newParser(toks []token.Token) (*parse.Parser, *diag.Sink, *syntax.Tree) {
	diags := &diag.Sink{}
	tree := &syntax.Tree{}
	src := &fixedSource{toks: toks}
	return parse.New(src, diags, tree), diags, tree
}

func parseIdentItem(p *parse.Parser) func(bool) token.Token {
	return func(bool) token.Token {
		return p.Expect(token.Identifier)
	}
}

// An empty list "()" yields open/close tokens and an empty element
// buffer, with zero diagnostics.
func TestParseSeparatedList_Empty(t *testing.T) {
	toks := []token.Token{
		punct(0, token.LParen, "("),
		punct(1, token.RParen, ")"),
		eofTok(2),
	}
	p, diags, _ := newParser(toks)

	list := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma, isIdentStart, isRParen, parseIdentItem(p))

	assert.Equal(t, token.LParen, list.Open.Kind)
	assert.Equal(t, token.RParen, list.Close.Kind)
	assert.Empty(t, list.Items)
	assert.Empty(t, list.Separators)
	assert.Equal(t, 0, diags.Len())
}

// A trailing separator "(a,)" yields elements [a, <missing>]
// joined by one separator, and exactly one "expected identifier"
// diagnostic.
func TestParseSeparatedList_TrailingSeparator(t *testing.T) {
	toks := []token.Token{
		punct(0, token.LParen, "("),
		ident(1, "a"),
		punct(2, token.Comma, ","),
		punct(3, token.RParen, ")"),
		eofTok(4),
	}
	p, diags, _ := newParser(toks)

	list := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma, isIdentStart, isRParen, parseIdentItem(p))

	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].Text)
	assert.True(t, list.Items[1].Missing)
	assert.Equal(t, token.Identifier, list.Items[1].Kind)
	require.Len(t, list.Separators, 1)
	assert.Equal(t, token.Comma, list.Separators[0].Kind)
	assert.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeExpectedToken, diags.Diagnostics()[0].Code)
}

// A bad token mid-list "(a, %, b)" yields elements
// [a, b] joined by one separator carrying a SkippedTokens trivium for
// the bad token, and exactly one diagnostic at '%'.
func TestParseSeparatedList_BadTokenMidList(t *testing.T) {
	toks := []token.Token{
		punct(0, token.LParen, "("),
		ident(1, "a"),
		punct(2, token.Comma, ","),
		punct(4, token.Unknown, "%"),
		punct(6, token.Comma, ","),
		ident(8, "b"),
		punct(9, token.RParen, ")"),
		eofTok(10),
	}
	p, diags, _ := newParser(toks)

	list := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma, isIdentStart, isRParen, parseIdentItem(p))

	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].Text)
	assert.Equal(t, "b", list.Items[1].Text)
	require.Len(t, list.Separators, 1)

	// The surviving separator is the second comma; the first comma was
	// consumed as the separator after "a", and the skipped '%' is
	// attached ahead of the second comma.
	sep := list.Separators[0]
	require.Len(t, sep.Trivia, 1)
	assert.Equal(t, token.SkippedTokens, sep.Trivia[0].Kind)
	require.Len(t, sep.Trivia[0].Skipped, 1)
	assert.Equal(t, "%", sep.Trivia[0].Skipped[0].Text)

	assert.Equal(t, 1, diags.Len())
}

// A missing separator between two items "(a b)" is synthesized: both
// items are kept, joined by a missing separator, with one diagnostic.
func TestParseSeparatedList_MissingSeparator(t *testing.T) {
	toks := []token.Token{
		punct(0, token.LParen, "("),
		ident(1, "a"),
		ident(3, "b"),
		punct(4, token.RParen, ")"),
		eofTok(5),
	}
	p, diags, _ := newParser(toks)

	list := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma, isIdentStart, isRParen, parseIdentItem(p))

	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].Text)
	assert.Equal(t, "b", list.Items[1].Text)
	require.Len(t, list.Separators, 1)
	assert.True(t, list.Separators[0].Missing)
	assert.Equal(t, token.Comma, list.Separators[0].Kind)
	assert.Equal(t, 1, diags.Len())
	assert.Equal(t, diag.CodeExpectedToken, diags.Diagnostics()[0].Code)
}

// Two separators with nothing between them "(a,,b)" keep both commas,
// with a missing item synthesized between them; one diagnostic.
func TestParseSeparatedList_DoubleSeparator(t *testing.T) {
	toks := []token.Token{
		punct(0, token.LParen, "("),
		ident(1, "a"),
		punct(2, token.Comma, ","),
		punct(3, token.Comma, ","),
		ident(4, "b"),
		punct(5, token.RParen, ")"),
		eofTok(6),
	}
	p, diags, _ := newParser(toks)

	list := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma, isIdentStart, isRParen, parseIdentItem(p))

	require.Len(t, list.Items, 3)
	assert.Equal(t, "a", list.Items[0].Text)
	assert.True(t, list.Items[1].Missing)
	assert.Equal(t, "b", list.Items[2].Text)
	require.Len(t, list.Separators, 2)
	assert.Equal(t, 1, diags.Len())
}

func TestExpect_MismatchProducesMissingToken(t *testing.T) {
	toks := []token.Token{
		punct(0, token.RParen, ")"),
		eofTok(1),
	}
	p, diags, _ := newParser(toks)

	tok := p.Expect(token.Identifier)
	assert.True(t, tok.Missing)
	assert.Equal(t, token.Identifier, tok.Kind)
	assert.Equal(t, "", tok.Text)
	assert.Equal(t, 1, diags.Len())

	// The actual token (RParen) is still there to be consumed next.
	assert.Equal(t, token.RParen, p.Window().Peek().Kind)
}

func TestSkipBadTokens_OneDiagnosticPerRun(t *testing.T) {
	toks := []token.Token{
		punct(0, token.Unknown, "%"),
		punct(1, token.Unknown, "@"),
		ident(2, "a"),
		eofTok(3),
	}
	p, diags, _ := newParser(toks)

	skipped, res := p.SkipBadTokens(isIdentStart, func(token.Kind) bool { return false }, diag.CodeSkippedTokens, "bad token")
	assert.Equal(t, parse.Continue, res)
	assert.Equal(t, token.SkippedTokens, skipped.Kind)
	assert.Len(t, skipped.Skipped, 2)
	assert.Equal(t, 1, diags.Len())
	assert.Equal(t, token.Identifier, p.Window().Peek().Kind)
}

func TestSkipBadTokens_AbortsOnAbortKind(t *testing.T) {
	toks := []token.Token{
		punct(0, token.Unknown, "%"),
		punct(1, token.Semicolon, ";"),
		ident(2, "a"),
		eofTok(3),
	}
	p, diags, _ := newParser(toks)

	_, res := p.SkipBadTokens(isIdentStart, func(k token.Kind) bool { return k == token.Semicolon }, diag.CodeSkippedTokens, "bad token")
	assert.Equal(t, parse.Abort, res)
	assert.Equal(t, 1, diags.Len())
	// The abort-triggering token itself is left unconsumed.
	assert.Equal(t, token.Semicolon, p.Window().Peek().Kind)
}
