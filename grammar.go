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

// This file is a concrete recognizer over the small SystemVerilog
// subset hier/view.go documents a child-slot contract for: module/
// interface/program/package declarations, hierarchy instantiation,
// sequential and procedural blocks, if- and loop-generate, and a
// minimal expression grammar. The full language is explicitly out of
// scope; this grammar exists to drive the parser base and
// the hierarchy elaborators with real, round-trippable token streams
// instead of hand-built trees.
//
// Every keyword and punctuation token that isn't given its own child
// slot is folded into the leading trivia of whatever token follows it
// (see discard/expectDiscard below), the same SkippedTokens vehicle
// error recovery uses — nothing here invents a second mechanism for
// "this token has no home in the tree but must still round-trip."
package svcore

import (
	"github.com/hdlcore/svcore/diag"
	"github.com/hdlcore/svcore/parse"
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// discard consumes the current token and folds it, with its own
// trivia, into the leading trivia of the token that follows.
func discard(p *parse.Parser) token.Token {
	tok := p.Window().Consume()
	p.Window().PrependTrivia(token.NewSkippedTokens([]token.Token{tok}))
	return tok
}

// expectDiscard is Expect followed by discard's fold-forward, with one
// difference on the mismatch path: since Expect doesn't consume
// anything when the kind doesn't match, the trivia it stole from the
// still-pending token is handed right back, rather than folded away.
func expectDiscard(p *parse.Parser, kind token.Kind) token.Token {
	tok := p.Expect(kind)
	if tok.Missing {
		p.Window().PrependTrivia(tok.Trivia...)
		return tok
	}
	p.Window().PrependTrivia(token.NewSkippedTokens([]token.Token{tok}))
	return tok
}

func wrapIdent(tree *syntax.Tree, tok token.Token) *syntax.Node {
	return tree.New(syntax.KindIdentifierExpr, []syntax.TokenOrSyntax{syntax.FromToken(tok)}, tok.Missing)
}

// childScratch vends the scratch buffers list publication assembles
// children in before copying them into tree-stable storage; published
// arrays never alias pool-owned memory.
var childScratch = parse.NewPool[syntax.TokenOrSyntax]()

// publishList turns a parse.List[*syntax.Node] into the KindList shape
// view.go documents: an open token, the (item, separator) run, and a
// close token.
func publishList(tree *syntax.Tree, list parse.List[*syntax.Node]) *syntax.Node {
	buf := childScratch.Get()
	*buf = append(*buf, syntax.FromToken(list.Open))
	for i, item := range list.Items {
		*buf = append(*buf, syntax.FromNode(item))
		if i < len(list.Separators) {
			*buf = append(*buf, syntax.FromToken(list.Separators[i]))
		}
	}
	*buf = append(*buf, syntax.FromToken(list.Close))
	return tree.New(syntax.KindList, parse.Publish(childScratch, buf), false)
}

// plainList wraps items in a bare KindList node with no open/close/
// separator tokens — used for body lists, whose members in this
// grammar follow one another with no delimiter at all, unlike the
// bracketed/comma-separated lists ParseSeparatedList recognizes.
func plainList(tree *syntax.Tree, items []*syntax.Node) *syntax.Node {
	buf := childScratch.Get()
	for _, item := range items {
		*buf = append(*buf, syntax.FromNode(item))
	}
	return tree.New(syntax.KindList, parse.Publish(childScratch, buf), false)
}

// ---- expressions ----

var binaryPrecedence = map[token.Kind]int{
	token.Star: 3, token.Slash: 3,
	token.Plus: 2, token.Minus: 2,
	token.Lt: 1, token.Le: 1, token.Gt: 1, token.Ge: 1,
	token.EqEq: 0, token.NotEq: 0,
}

func parseExpr(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	return parseBinaryExpr(p, tree, 0)
}

func parseBinaryExpr(p *parse.Parser, tree *syntax.Tree, minPrec int) *syntax.Node {
	lhs := parsePrimaryExpr(p, tree)
	for {
		prec, ok := binaryPrecedence[p.Window().Peek().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		op := p.Window().Consume()
		rhs := parseBinaryExpr(p, tree, prec+1)
		lhs = tree.New(syntax.KindBinaryExpr, []syntax.TokenOrSyntax{
			syntax.FromNode(lhs), syntax.FromToken(op), syntax.FromNode(rhs),
		}, false)
	}
}

func parsePrimaryExpr(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	switch p.Window().Peek().Kind {
	case token.Identifier:
		return wrapIdent(tree, p.Window().Consume())
	case token.IntLiteral:
		tok := p.Window().Consume()
		return tree.New(syntax.KindIntLiteralExpr, []syntax.TokenOrSyntax{syntax.FromToken(tok)}, false)
	case token.LParen:
		discard(p)
		inner := parseExpr(p, tree)
		expectDiscard(p, token.RParen)
		return inner
	default:
		tok := p.Expect(token.Identifier)
		return tree.New(syntax.KindIdentifierExpr, []syntax.TokenOrSyntax{syntax.FromToken(tok)}, true)
	}
}

// parseGenvarStep recognizes the three forms a loop-generate step may
// take: `i++`/`i--`/`++i`/`--i` (a 2-child KindBinaryExpr holding the
// identifier and the operator in source order, no right-hand side) or
// `i = expr` (the usual 3-child shape). There is no literal "1"
// synthesized for the increment forms — a fabricated token with
// non-empty text would add bytes the original source never had,
// breaking round-trip, so the binder is expected to
// special-case the 2-child shape itself.
func parseGenvarStep(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	if isIncDec(p.Window().Peek().Kind) {
		op := p.Window().Consume()
		name := p.Expect(token.Identifier)
		return tree.New(syntax.KindBinaryExpr, []syntax.TokenOrSyntax{
			syntax.FromToken(op), syntax.FromNode(wrapIdent(tree, name)),
		}, false)
	}

	name := p.Expect(token.Identifier)
	if isIncDec(p.Window().Peek().Kind) {
		op := p.Window().Consume()
		return tree.New(syntax.KindBinaryExpr, []syntax.TokenOrSyntax{
			syntax.FromNode(wrapIdent(tree, name)), syntax.FromToken(op),
		}, false)
	}

	eq := p.Expect(token.Equals)
	rhs := parseExpr(p, tree)
	return tree.New(syntax.KindBinaryExpr, []syntax.TokenOrSyntax{
		syntax.FromNode(wrapIdent(tree, name)), syntax.FromToken(eq), syntax.FromNode(rhs),
	}, false)
}

func isIncDec(k token.Kind) bool { return k == token.PlusPlus || k == token.MinusMinus }

// ---- top-level declarations ----

func isTopDeclStart(k token.Kind) bool {
	switch k {
	case token.KwModule, token.KwInterface, token.KwProgram, token.KwPackage:
		return true
	}
	return false
}

// ParseCompilationUnit recognizes a full source file: a sequence of
// top-level declarations, terminated by EOF. It is the entry point
// ParseFile calls.
func ParseCompilationUnit(p *parse.Parser) *syntax.Node {
	tree := p.Tree()

	var items []*syntax.Node
	for {
		k := p.Window().Peek().Kind
		if k == token.EOF {
			break
		}
		if isTopDeclStart(k) {
			items = append(items, parseTopDecl(p, tree))
			continue
		}
		skipped, res := p.SkipBadTokens(isTopDeclStart, func(token.Kind) bool { return false },
			diag.CodeSkippedTokens, "unexpected token at top level")
		if skipped.Kind == token.SkippedTokens {
			p.Window().PrependTrivia(skipped)
		}
		if res == parse.Abort {
			break
		}
	}

	body := plainList(tree, items)
	eof := p.Window().Consume()
	return tree.New(syntax.KindCompilationUnit, []syntax.TokenOrSyntax{
		syntax.FromNode(body), syntax.FromToken(eof),
	}, false)
}

func parseTopDecl(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	switch p.Window().Peek().Kind {
	case token.KwModule:
		return parseDefinitionDecl(p, tree, token.KwModule, token.KwEndmodule, syntax.KindModuleDecl)
	case token.KwInterface:
		return parseDefinitionDecl(p, tree, token.KwInterface, token.KwEndinterface, syntax.KindInterfaceDecl)
	case token.KwProgram:
		return parseDefinitionDecl(p, tree, token.KwProgram, token.KwEndprogram, syntax.KindProgramDecl)
	default:
		return parsePackageDecl(p, tree)
	}
}

// parseDefinitionDecl parses `KW name ('#' '(' paramAssignment,* ')')?
// ';' bodyMember* ENDKW`, matching hier/view.go's
// KindModuleDecl/InterfaceDecl/ProgramDecl shape: [0]=name,
// [1]=param-list or nil, [2]=body list.
func parseDefinitionDecl(p *parse.Parser, tree *syntax.Tree, openKw, endKw token.Kind, kind syntax.Kind) *syntax.Node {
	expectDiscard(p, openKw)
	name := p.Expect(token.Identifier)

	var params *syntax.Node
	if p.Window().PeekIs(token.Hash) {
		discard(p)
		params = parseParamList(p, tree)
	}
	expectDiscard(p, token.Semicolon)

	body := parseBodyList(p, tree, endKw)
	expectDiscard(p, endKw)

	return tree.New(kind, []syntax.TokenOrSyntax{
		syntax.FromToken(name), syntax.FromNode(params), syntax.FromNode(body),
	}, name.Missing)
}

// parsePackageDecl matches KindPackageDecl: [0]=name, [1]=body list.
func parsePackageDecl(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	expectDiscard(p, token.KwPackage)
	name := p.Expect(token.Identifier)
	expectDiscard(p, token.Semicolon)

	body := parseBodyList(p, tree, token.KwEndpackage)
	expectDiscard(p, token.KwEndpackage)

	return tree.New(syntax.KindPackageDecl, []syntax.TokenOrSyntax{
		syntax.FromToken(name), syntax.FromNode(body),
	}, name.Missing)
}

func parseParamList(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	list := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma,
		func(k token.Kind) bool { return k == token.Identifier },
		func(k token.Kind) bool { return k == token.RParen },
		func(isFirst bool) *syntax.Node { return parseParamAssignment(p, tree) },
	)
	return publishList(tree, list)
}

// parseParamAssignment matches KindParamAssignment: [0]=name, [1]=value
// expr or nil.
func parseParamAssignment(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	name := p.Expect(token.Identifier)
	var def *syntax.Node
	if p.Window().PeekIs(token.Equals) {
		discard(p)
		def = parseExpr(p, tree)
	}
	return tree.New(syntax.KindParamAssignment, []syntax.TokenOrSyntax{
		syntax.FromToken(name), syntax.FromNode(def),
	}, name.Missing)
}

// ---- body members ----

func isBodyMemberStart(k token.Kind) bool {
	switch k {
	case token.Identifier, token.KwBegin, token.KwInitial, token.KwAlways,
		token.KwAlwaysComb, token.KwAlwaysLatch, token.KwAlwaysFF, token.KwFinal,
		token.KwIf, token.KwFor:
		return true
	}
	return false
}

// parseBodyList parses a run of body members up to (but not consuming)
// one of endKinds, transparently stepping over an optional surrounding
// `generate`/`endgenerate` pair. Unlike the bracketed lists
// ParseSeparatedList handles, there is no separator between members —
// SkipBadTokens still gives single-diagnostic-per-run recovery for a
// token that starts neither a member nor an end keyword.
func parseBodyList(p *parse.Parser, tree *syntax.Tree, endKinds ...token.Kind) *syntax.Node {
	isEnd := func(k token.Kind) bool {
		if k == token.EOF {
			return true
		}
		for _, e := range endKinds {
			if k == e {
				return true
			}
		}
		return false
	}
	isRestart := func(k token.Kind) bool {
		return isBodyMemberStart(k) || k == token.KwGenerate || k == token.KwEndgenerate
	}

	var items []*syntax.Node
	for !isEnd(p.Window().Peek().Kind) {
		switch {
		case p.Window().PeekIs(token.KwGenerate), p.Window().PeekIs(token.KwEndgenerate):
			discard(p)
		case isBodyMemberStart(p.Window().Peek().Kind):
			items = append(items, parseBodyMember(p, tree))
		default:
			skipped, res := p.SkipBadTokens(isRestart, isEnd, diag.CodeSkippedTokens, "unexpected token in body")
			if skipped.Kind == token.SkippedTokens {
				p.Window().PrependTrivia(skipped)
			}
			if res == parse.Abort {
				return plainList(tree, items)
			}
		}
	}
	return plainList(tree, items)
}

func parseBodyMember(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	switch p.Window().Peek().Kind {
	case token.KwBegin:
		return parseBlockStatement(p, tree)
	case token.KwInitial, token.KwAlways, token.KwAlwaysComb, token.KwAlwaysLatch, token.KwAlwaysFF, token.KwFinal:
		return parseProceduralBlock(p, tree)
	case token.KwIf:
		return parseIfGenerate(p, tree)
	case token.KwFor:
		return parseLoopGenerate(p, tree)
	default:
		return parseHierarchyInstantiation(p, tree)
	}
}

// parseHierarchyInstantiation matches KindHierarchyInstantiation:
// [0]=definition name, [1]=override list or nil, [2]=instance-name
// list.
func parseHierarchyInstantiation(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	defName := p.Expect(token.Identifier)

	var overrides *syntax.Node
	if p.Window().PeekIs(token.Hash) {
		discard(p)
		overrides = parseParamList(p, tree)
	}

	instList := parse.ParseSeparatedList(p, token.LParen, token.RParen, token.Comma,
		func(k token.Kind) bool { return k == token.Identifier },
		func(k token.Kind) bool { return k == token.RParen },
		func(isFirst bool) *syntax.Node {
			return wrapIdent(tree, p.Expect(token.Identifier))
		},
	)
	instances := publishList(tree, instList)
	expectDiscard(p, token.Semicolon)

	return tree.New(syntax.KindHierarchyInstantiation, []syntax.TokenOrSyntax{
		syntax.FromToken(defName), syntax.FromNode(overrides), syntax.FromNode(instances),
	}, defName.Missing)
}

// parseBlockStatement matches KindBlockStatement: [0]=label or nil,
// [1]=body list.
func parseBlockStatement(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	expectDiscard(p, token.KwBegin)
	var label token.Token
	if p.Window().PeekIs(token.Colon) {
		discard(p)
		label = p.Expect(token.Identifier)
	}
	body := parseBodyList(p, tree, token.KwEnd)
	expectDiscard(p, token.KwEnd)
	return tree.New(syntax.KindBlockStatement, []syntax.TokenOrSyntax{
		syntax.FromToken(label), syntax.FromNode(body),
	}, false)
}

// parseProceduralBlock matches KindProceduralBlock: [0]=procedure-kind
// keyword, [1]=body.
func parseProceduralBlock(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	kw := p.Window().Consume()
	var body *syntax.Node
	if p.Window().PeekIs(token.KwBegin) {
		body = parseBlockStatement(p, tree)
	} else {
		expectDiscard(p, token.Semicolon)
	}
	return tree.New(syntax.KindProceduralBlock, []syntax.TokenOrSyntax{
		syntax.FromToken(kw), syntax.FromNode(body),
	}, false)
}

// parseGenerateBlockBody parses either a `begin [: label] member* end`
// block or, with no begin, a single bare member, returning the
// resulting KindGenerateBlock node ([0]=label or the zero token,
// [1]=body list). The label slot precedes the body in the child list
// exactly as it does in the source, so a left-to-right tree walk
// reproduces the token stream in order.
func parseGenerateBlockBody(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	if p.Window().PeekIs(token.KwBegin) {
		expectDiscard(p, token.KwBegin)
		var label token.Token
		if p.Window().PeekIs(token.Colon) {
			discard(p)
			label = p.Expect(token.Identifier)
		}
		body := parseBodyList(p, tree, token.KwEnd)
		expectDiscard(p, token.KwEnd)
		return tree.New(syntax.KindGenerateBlock, []syntax.TokenOrSyntax{
			syntax.FromToken(label), syntax.FromNode(body),
		}, false)
	}

	member := parseBodyMember(p, tree)
	body := plainList(tree, []*syntax.Node{member})
	return tree.New(syntax.KindGenerateBlock, []syntax.TokenOrSyntax{
		syntax.FromToken(token.Token{}), syntax.FromNode(body),
	}, false)
}

// parseIfGenerate matches KindIfGenerate: [0]=guard expr, [1]=then
// block, [2]=else block or nil.
func parseIfGenerate(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	expectDiscard(p, token.KwIf)
	expectDiscard(p, token.LParen)
	guard := parseExpr(p, tree)
	expectDiscard(p, token.RParen)

	then := parseGenerateBlockBody(p, tree)

	var elseBlock *syntax.Node
	if p.Window().PeekIs(token.KwElse) {
		discard(p)
		elseBlock = parseGenerateBlockBody(p, tree)
	}

	return tree.New(syntax.KindIfGenerate, []syntax.TokenOrSyntax{
		syntax.FromNode(guard), syntax.FromNode(then), syntax.FromNode(elseBlock),
	}, false)
}

// parseLoopGenerate matches KindLoopGenerate: [0]=genvar name, [1]=init
// expr, [2]=cond expr, [3]=step expr, [4]=body template. The template's
// own label (slot [0] of the KindGenerateBlock) doubles as the
// generated array's name.
func parseLoopGenerate(p *parse.Parser, tree *syntax.Tree) *syntax.Node {
	expectDiscard(p, token.KwFor)
	expectDiscard(p, token.LParen)
	expectDiscard(p, token.KwGenvar)
	genvar := p.Expect(token.Identifier)
	expectDiscard(p, token.Equals)
	initExpr := parseExpr(p, tree)
	expectDiscard(p, token.Semicolon)
	condExpr := parseExpr(p, tree)
	expectDiscard(p, token.Semicolon)
	stepExpr := parseGenvarStep(p, tree)
	expectDiscard(p, token.RParen)

	bodyTemplate := parseGenerateBlockBody(p, tree)

	return tree.New(syntax.KindLoopGenerate, []syntax.TokenOrSyntax{
		syntax.FromToken(genvar), syntax.FromNode(initExpr), syntax.FromNode(condExpr),
		syntax.FromNode(stepExpr), syntax.FromNode(bodyTemplate),
	}, false)
}
