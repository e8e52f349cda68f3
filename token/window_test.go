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

package token_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlcore/svcore/token"
)

// identSource yields n identifier tokens named t0..t(n-1), then repeats
// the same EOF token forever, counting how many times Next was called.
type identSource struct {
	n     int
	calls int
	eof   token.Token
}

func (s *identSource) Next() token.Token {
	s.calls++
	if s.calls > s.n {
		if s.eof.Kind != token.EOF {
			s.eof = token.Token{Kind: token.EOF, Location: token.Location{Offset: s.n}}
		}
		return s.eof
	}
	return token.Token{
		Kind:     token.Identifier,
		Text:     fmt.Sprintf("t%d", s.calls-1),
		Location: token.Location{Offset: s.calls - 1},
	}
}

func TestWindow_PeekDoesNotConsume(t *testing.T) {
	w := token.NewWindow(&identSource{n: 3})

	assert.Equal(t, "t0", w.Peek().Text)
	assert.Equal(t, "t0", w.Peek().Text)
	assert.Equal(t, "t1", w.PeekAt(1).Text)
	assert.Equal(t, "t0", w.Consume().Text)
	assert.Equal(t, "t1", w.Peek().Text)
}

func TestWindow_PeekIsLazy(t *testing.T) {
	src := &identSource{n: 10}
	w := token.NewWindow(src)

	w.Peek()
	assert.Equal(t, 1, src.calls)
	w.PeekAt(4)
	assert.Equal(t, 5, src.calls)
}

// Peeking far past the starting capacity grows the buffer rather than
// failing; the tokens seen through it are the right ones.
func TestWindow_LookaheadGrowsPastInitialCapacity(t *testing.T) {
	w := token.NewWindow(&identSource{n: 100})

	assert.Equal(t, "t70", w.PeekAt(70).Text)
	assert.Equal(t, "t0", w.Peek().Text)
	for i := 0; i < 100; i++ {
		assert.Equal(t, fmt.Sprintf("t%d", i), w.Consume().Text)
	}
	assert.Equal(t, token.EOF, w.Peek().Kind)
}

// Repeated peeks at EOF return the same EOF token.
func TestWindow_EOFIsSticky(t *testing.T) {
	w := token.NewWindow(&identSource{n: 1})

	w.Consume()
	first := w.Peek()
	require.Equal(t, token.EOF, first.Kind)
	assert.Equal(t, first, w.PeekAt(5))
	assert.Equal(t, first, w.Consume())
	assert.Equal(t, first, w.Peek())
}

func TestWindow_ConsumeIf(t *testing.T) {
	w := token.NewWindow(&identSource{n: 1})

	assert.True(t, w.ConsumeIf(token.Comma).IsZero())
	assert.Equal(t, "t0", w.Peek().Text)

	tok := w.ConsumeIf(token.Identifier)
	assert.Equal(t, "t0", tok.Text)

	last, ok := w.LastConsumed()
	require.True(t, ok)
	assert.Equal(t, tok, last)
}

func TestWindow_PrependTrivia(t *testing.T) {
	w := token.NewWindow(&identSource{n: 2})

	// Empty prepend is a no-op.
	w.PrependTrivia()
	assert.Empty(t, w.Peek().Trivia)

	w.PrependTrivia(token.Trivia{Kind: token.Whitespace, Text: " "})
	w.PrependTrivia(token.Trivia{Kind: token.LineComment, Text: "// c"})

	trivia := w.Peek().Trivia
	require.Len(t, trivia, 2)
	assert.Equal(t, "// c", trivia[0].Text)
	assert.Equal(t, " ", trivia[1].Text)

	// The next token is untouched.
	w.Consume()
	assert.Empty(t, w.Peek().Trivia)
}

func TestWindow_StealLeadingTrivia(t *testing.T) {
	w := token.NewWindow(&identSource{n: 1})
	w.PrependTrivia(token.Trivia{Kind: token.Whitespace, Text: "  "})

	stolen := w.StealLeadingTrivia()
	require.Len(t, stolen, 1)
	assert.Equal(t, "  ", stolen[0].Text)
	assert.Empty(t, w.Peek().Trivia)
}

// SourceText over a SkippedTokens trivium reconstructs the skipped
// tokens' own trivia and text, nested trivia included.
func TestToken_SourceTextWithSkippedTokens(t *testing.T) {
	skipped := token.Token{
		Kind: token.Unknown,
		Text: "%",
		Trivia: []token.Trivia{
			{Kind: token.Whitespace, Text: " "},
		},
	}
	tok := token.Token{
		Kind: token.Identifier,
		Text: "x",
		Trivia: []token.Trivia{
			token.NewSkippedTokens([]token.Token{skipped}),
			{Kind: token.Whitespace, Text: "\n"},
		},
	}
	assert.Equal(t, " %\nx", tok.SourceText())
}

func TestMissingToken_CarriesTrivia(t *testing.T) {
	trivia := []token.Trivia{{Kind: token.Whitespace, Text: "\t"}}
	tok := token.Missing(token.Semicolon, token.Location{Offset: 7}, trivia)

	assert.True(t, tok.Missing)
	assert.Equal(t, token.Semicolon, tok.Kind)
	assert.Equal(t, "", tok.Text)
	assert.Equal(t, "\t", tok.SourceText())
}
