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

package token

// TriviaKind discriminates the kind of non-semantic lexical material
// attached to a Token's leading trivia.
type TriviaKind uint8

const (
	Whitespace TriviaKind = iota
	LineComment
	BlockComment
	Directive
	SkippedTokens
)

// Trivia is a single piece of leading trivia. All kinds but SkippedTokens
// carry a raw text slice; SkippedTokens carries the contiguous run of
// tokens the parser discarded during error recovery. Trivia form a
// flat, ordered list attached to a single token, never a tree.
type Trivia struct {
	Kind    TriviaKind
	Text    string
	Skipped []Token
}

// SourceText reconstructs the exact source text this trivium contributed,
// which for SkippedTokens is the concatenation of each skipped token's
// own trivia and text. This is what the round-trip property
// walks to prove no source byte was lost.
func (t Trivia) SourceText() string {
	if t.Kind != SkippedTokens {
		return t.Text
	}
	var out []byte
	for _, tok := range t.Skipped {
		out = append(out, tok.SourceText()...)
	}
	return string(out)
}

// NewSkippedTokens packages a run of discarded tokens into a single
// SkippedTokens trivium.
func NewSkippedTokens(toks []Token) Trivia {
	return Trivia{Kind: SkippedTokens, Skipped: toks}
}
