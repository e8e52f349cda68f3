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

package parse

import (
	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/token"
)

// List is the result of ParseSeparatedList: an open/close token pair
// plus the parsed items and the separator that followed each item but
// the last; items and separators are both preserved losslessly.
type List[T any] struct {
	Open  token.Token
	Items []T
	// Separators[i] is the separator that followed Items[i]; it has one
	// fewer entry than Items. A (tolerated) trailing separator is
	// followed by a synthesized missing item, so the count still holds;
	// the two are equal length only when recovery aborts right after a
	// separator, before any item follows it.
	Separators []token.Token
	Close      token.Token
}

// ParseSeparatedList is the generic recognizer reused by every
// list-shaped production of the form "open item (sep item)* close".
// isItemStart identifies a token that can begin an item;
// isEnd identifies a token that terminates the list (typically just the
// close token, but callers may widen it with other hard-stop kinds).
// parseItem is called once per item, told whether it's the first.
//
// parseItem is only ever called at a token that can start an item, at
// list end (to synthesize the item a dangling separator is missing), or
// at the second of two adjacent separators (to synthesize the item
// missing between them); any other token is skipped into trivia first,
// one diagnostic per contiguous run. A missing separator between two
// items is synthesized via Expect.
//
// isItemStart, isEnd and parseItem are ordinary function values, called
// at runtime; productions are not given specialized code paths per
// predicate.
func ParseSeparatedList[T any](
	p *Parser,
	openKind, closeKind, sepKind token.Kind,
	isItemStart, isEnd func(token.Kind) bool,
	parseItem func(isFirst bool) T,
) List[T] {
	var out List[T]
	out.Open = p.Expect(openKind)

	// pending is the single-slot skipped-token accumulator: attached to
	// the next surviving item/separator/close token, then cleared.
	var pending token.Trivia

	attachTo := func(tok token.Token) token.Token {
		if isPending(pending) {
			tok = token.Prepend(tok, []token.Trivia{pending})
			pending = token.Trivia{}
		}
		return tok
	}
	prependToUpcoming := func() {
		if isPending(pending) {
			p.Window().PrependTrivia(pending)
			pending = token.Trivia{}
		}
	}

	if !isEnd(p.Window().Peek().Kind) {
	outer:
		for {
			if isEnd(p.Window().Peek().Kind) {
				break
			}
			if !isItemStart(p.Window().Peek().Kind) {
				skipped, res := p.SkipBadTokens(isItemStart, isEnd, diag.CodeSkippedTokens, "unexpected token")
				if isPending(skipped) {
					pending = skipped
				}
				if res == Abort {
					break
				}
				// The current token now satisfies isItemStart (that's
				// what made SkipBadTokens return Continue).
				continue
			}

			prependToUpcoming()
			out.Items = append(out.Items, parseItem(len(out.Items) == 0))

			// sepPending is true while the most recent separator is
			// still waiting for its item.
			sepPending := false
			for {
				k := p.Window().Peek().Kind
				if isEnd(k) {
					if sepPending {
						// Trailing separator: keep it, and still call
						// parseItem so the missing item + diagnostic
						// are synthesized uniformly.
						prependToUpcoming()
						out.Items = append(out.Items, parseItem(false))
					}
					break outer
				}

				if k == sepKind {
					if sepPending {
						if isPending(pending) {
							// Tokens were just skipped between two
							// separators; the later separator supersedes
							// the dangling one and takes the skipped
							// trivia. The dangling separator is folded
							// into the first skipped token's leading
							// trivia, so it still round-trips.
							dangling := out.Separators[len(out.Separators)-1]
							pending.Skipped[0] = token.Prepend(pending.Skipped[0], []token.Trivia{token.NewSkippedTokens([]token.Token{dangling})})
							out.Separators[len(out.Separators)-1] = attachTo(p.Window().Consume())
							continue
						}
						// Two separators with nothing between them:
						// synthesize the missing item before consuming
						// the second one.
						prependToUpcoming()
						out.Items = append(out.Items, parseItem(false))
					}
					out.Separators = append(out.Separators, attachTo(p.Window().Consume()))
					sepPending = true
					continue
				}

				if isItemStart(k) {
					if !sepPending {
						// Item with no separator before it: synthesize
						// the missing separator.
						out.Separators = append(out.Separators, attachTo(p.Expect(sepKind)))
					}
					prependToUpcoming()
					out.Items = append(out.Items, parseItem(false))
					sepPending = false
					continue
				}

				isRestart := func(k token.Kind) bool { return k == sepKind || isItemStart(k) }
				skipped, res := p.SkipBadTokens(isRestart, isEnd, diag.CodeSkippedTokens, "unexpected token")
				if isPending(skipped) {
					pending = skipped
				}
				if res == Abort {
					break outer
				}
			}
		}
	}

	out.Close = attachTo(p.Expect(closeKind))
	return out
}
