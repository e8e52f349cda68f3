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

// Package syntax defines the arena-owned syntax tree the parser base
// builds. The concrete grammar for every
// SystemVerilog production is out of scope; what's specified
// here is the shape every production's node takes: a kind discriminator
// plus an ordered run of children, each either a child Node or a Token.
package syntax

import (
	"github.com/hdlcore/svcore/internal/arena"
	"github.com/hdlcore/svcore/token"
)

// Kind discriminates what grammar production a Node came from. The core
// doesn't define the full production set (that's the concrete grammar,
// out of scope); it defines a handful of kinds that the hierarchy model
// (package hier) elaborates directly, plus Missing/List for recovery and
// generic list shapes.
type Kind uint16

const (
	KindInvalid Kind = iota

	// KindMissing marks a node synthesized in place of one that couldn't
	// be parsed: a missing item in a separated list is a missing node of
	// the expected kind, not merely a missing token.
	KindMissing

	// KindList is the generic shape parseSeparatedList produces: an open
	// token, an ordered run of (item, separator) pairs, and a close
	// token, all captured as Children.
	KindList

	KindCompilationUnit
	KindPackageDecl
	KindModuleDecl
	KindInterfaceDecl
	KindProgramDecl
	KindHierarchyInstantiation
	KindBlockStatement
	KindProceduralBlock
	KindIfGenerate
	KindLoopGenerate
	KindGenerateBlock
	KindParamAssignment
	KindIdentifierExpr
	KindIntLiteralExpr
	KindBinaryExpr
)

// TokenOrSyntax is the tagged union used as the element type of a Node's
// children, and of separated-list buffers (item, separator pairs) before
// they're published into the tree.
type TokenOrSyntax struct {
	tok     token.Token
	node    *Node
	isToken bool
}

// FromToken wraps a Token as a TokenOrSyntax child.
func FromToken(tok token.Token) TokenOrSyntax {
	return TokenOrSyntax{tok: tok, isToken: true}
}

// FromNode wraps a *Node as a TokenOrSyntax child. Passing nil produces
// the zero TokenOrSyntax.
func FromNode(n *Node) TokenOrSyntax {
	if n == nil {
		return TokenOrSyntax{}
	}
	return TokenOrSyntax{node: n}
}

// IsToken reports whether this element holds a Token rather than a Node.
func (e TokenOrSyntax) IsToken() bool { return e.isToken }

// IsNode reports whether this element holds a *Node.
func (e TokenOrSyntax) IsNode() bool { return !e.isToken && e.node != nil }

// IsNil reports whether this element holds neither (the zero value).
func (e TokenOrSyntax) IsNil() bool { return !e.isToken && e.node == nil }

// Token returns the held Token, or the zero Token if this holds a Node.
func (e TokenOrSyntax) Token() token.Token {
	if e.isToken {
		return e.tok
	}
	return token.Token{}
}

// Node returns the held *Node, or nil if this holds a Token.
func (e TokenOrSyntax) Node() *Node {
	if e.isToken {
		return nil
	}
	return e.node
}

// LeftmostToken returns the first token that would appear in this
// element's source-text reconstruction: itself, if it's a Token, or the
// leftmost token of the leftmost non-nil child, recursively, if it's a
// Node. Returns the zero Token (IsZero() == true) for an empty subtree.
func (e TokenOrSyntax) LeftmostToken() token.Token {
	if e.isToken {
		return e.tok
	}
	if e.node == nil {
		return token.Token{}
	}
	return e.node.LeftmostToken()
}

// Node is a heterogeneous syntax tree node: a Kind discriminator plus an
// ordered run of children. Every Node is owned
// exclusively by the arena of the Tree that built it and is immutable
// after construction — recognizers build up a child list in a scratch
// slice and publish it once, via Tree.New.
type Node struct {
	Kind     Kind
	Children []TokenOrSyntax
	// Missing marks a node synthesized by error recovery in place of one
	// that could not be parsed, so even a failed parse yields a
	// structurally complete tree.
	Missing bool
}

// LeftmostToken returns the first token this node would contribute to a
// source-text reconstruction, i.e. the leftmost non-nil child's leftmost
// token, recursively. Returns the zero Token if the node has no children
// (or all children are nil).
func (n *Node) LeftmostToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	for _, child := range n.Children {
		if tok := child.LeftmostToken(); !tok.IsZero() || child.IsToken() {
			return tok
		}
	}
	return token.Token{}
}

// Tree is the arena that owns every Node produced while parsing one
// compilation unit; no node is ever shared across trees. The zero Tree
// is empty and ready to use.
type Tree struct {
	arena arena.Arena[Node]
}

// New allocates a Node on the tree's arena and returns a stable pointer
// to it. Callers build Children in a scratch slice first (see package
// parse's scratch pools) and pass the finished slice here; once
// published, a Node is never mutated.
func (t *Tree) New(kind Kind, children []TokenOrSyntax, missing bool) *Node {
	ptr := t.arena.New(Node{Kind: kind, Children: children, Missing: missing})
	return ptr.In(&t.arena)
}

// NewMissing allocates a KindMissing node with no children. It does not
// record which kind was expected; callers that need the expected kind
// for diagnostics record it themselves.
func (t *Tree) NewMissing() *Node {
	return t.New(KindMissing, nil, true)
}

// Len returns the number of nodes allocated on this tree so far.
func (t *Tree) Len() int {
	return t.arena.Len()
}
