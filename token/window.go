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

// initialWindowCap is the starting lookahead buffer capacity;
// it doubles whenever a caller peeks past the end of the current buffer.
const initialWindowCap = 32

// Window provides O(1) lookahead of any small offset over a forward-only
// Source. Every downstream recognizer sees this same uniform
// interface, whether it's looking one token ahead to decide which
// production to take or reading the current token to consume it.
//
// Window buffers lazily from a streaming Source rather than requiring
// the whole input to be lexed up front; the lexer is an external
// collaborator, not something this package owns.
type Window struct {
	src Source

	// buf holds tokens already pulled from src that haven't been consumed
	// yet; buf[0] is always the current token once filled.
	buf []Token

	lastConsumed Token
	haveLast     bool
}

// NewWindow returns a Window buffering tokens lazily from src.
func NewWindow(src Source) *Window {
	return &Window{
		src: src,
		buf: make([]Token, 0, initialWindowCap),
	}
}

// fill ensures buf holds at least offset+1 tokens, doubling the buffer's
// backing capacity as needed.
func (w *Window) fill(offset int) {
	if offset < len(w.buf) {
		return
	}

	need := offset + 1
	if need > cap(w.buf) {
		newCap := cap(w.buf)
		if newCap == 0 {
			newCap = initialWindowCap
		}
		for newCap < need {
			newCap *= 2
		}
		grown := make([]Token, len(w.buf), newCap)
		copy(grown, w.buf)
		w.buf = grown
	}

	for len(w.buf) <= offset {
		w.buf = append(w.buf, w.src.Next())
	}
}

// Peek returns the current token without consuming it.
func (w *Window) Peek() Token {
	return w.PeekAt(0)
}

// PeekAt returns the token offset positions ahead of the current one,
// without consuming anything. offset must be >= 0.
func (w *Window) PeekAt(offset int) Token {
	w.fill(offset)
	return w.buf[offset]
}

// PeekIs is sugar for Peek().Kind == kind.
func (w *Window) PeekIs(kind Kind) bool {
	return w.Peek().Kind == kind
}

// Consume returns the current token and advances past it.
func (w *Window) Consume() Token {
	w.fill(0)
	tok := w.buf[0]
	w.buf = w.buf[1:]
	w.lastConsumed = tok
	w.haveLast = true
	return tok
}

// ConsumeIf consumes and returns the current token if its Kind matches;
// otherwise it returns the zero Token and leaves the stream untouched.
func (w *Window) ConsumeIf(kind Kind) Token {
	if !w.PeekIs(kind) {
		return Token{}
	}
	return w.Consume()
}

// LastConsumed returns the most recently consumed token, and whether one
// has been consumed yet.
func (w *Window) LastConsumed() (Token, bool) {
	return w.lastConsumed, w.haveLast
}

// StealLeadingTrivia clears the leading trivia of the current (not yet
// consumed) token and returns what was cleared. Used by Expect to move a
// mismatched token's trivia onto the missing token it synthesizes, so
// that trivia is attributed exactly once across the token stream and
// source reconstruction still holds on this path.
func (w *Window) StealLeadingTrivia() []Trivia {
	w.fill(0)
	trivia := w.buf[0].Trivia
	w.buf[0].Trivia = nil
	return trivia
}

// PrependTrivia inserts trivia before the existing leading trivia of the
// current (not yet consumed) token. A no-op
// if trivia is empty.
func (w *Window) PrependTrivia(trivia ...Trivia) {
	if len(trivia) == 0 {
		return
	}
	w.fill(0)
	w.buf[0] = Prepend(w.buf[0], trivia)
}

// Prepend returns tok with trivia inserted before its existing leading
// trivia. A no-op (returns tok unchanged) if trivia is empty.
func Prepend(tok Token, trivia []Trivia) Token {
	if len(trivia) == 0 {
		return tok
	}
	combined := make([]Trivia, 0, len(trivia)+len(tok.Trivia))
	combined = append(combined, trivia...)
	combined = append(combined, tok.Trivia...)
	tok.Trivia = combined
	return tok
}
