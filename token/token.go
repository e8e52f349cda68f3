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

// Package token defines the lossless lexeme type the parser base
// consumes. A Token is immutable, value-semantics, and cheap to copy:
// its Trivia slice is a view into shared backing storage, not an owned
// copy, so prepending trivia never reallocates the bulk of a token
// stream.
package token

// Location is a source position: a byte offset plus the 1-based line and
// column it corresponds to. Column is computed by rune, not by display
// width — the latter only matters for diagnostics rendering, which this
// module doesn't do.
type Location struct {
	Offset int
	Line   int
	Column int
}

// Token is an immutable lexeme with its leading trivia attached.
//
// Missing is set by [Kind] mismatches inside expect; a missing
// token has the expected Kind, empty Text, and still carries whatever
// trivia was stolen from the token that failed to match, so that no
// source material is lost from the round-trip reconstruction.
type Token struct {
	Kind     Kind
	Location Location
	Text     string
	Trivia   []Trivia
	Missing  bool
}

// IsZero reports whether this is the zero Token (used as an "absent"
// sentinel by ConsumeIf and friends).
func (t Token) IsZero() bool {
	return t.Kind == Invalid && t.Text == "" && t.Trivia == nil && !t.Missing
}

// SourceText reconstructs the exact span of source text this token
// contributed: every leading trivium's text, in order, followed by the
// token's own text. Concatenating this over a post-order walk of a parsed
// tree reproduces the original input exactly, including on error
// paths.
func (t Token) SourceText() string {
	var out []byte
	for _, triv := range t.Trivia {
		out = append(out, triv.SourceText()...)
	}
	out = append(out, t.Text...)
	return string(out)
}

// Missing returns a synthetic token of the given kind at loc, flagged as
// missing, carrying trivia. Used exclusively by parse.Expect.
func Missing(kind Kind, loc Location, trivia []Trivia) Token {
	return Token{Kind: kind, Location: loc, Missing: true, Trivia: trivia}
}

// Source is the external token-producing collaborator: a
// cursor exposing "yield next token", where every yielded token carries
// its own accumulated leading trivia. End of file is signaled by a token
// of Kind EOF; a conforming Source must keep yielding that same EOF token
// (same Location) on every subsequent call.
type Source interface {
	Next() Token
}
