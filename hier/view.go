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

package hier

import (
	"github.com/hdlcore/svcore/syntax"
	"github.com/hdlcore/svcore/token"
)

// The full SystemVerilog grammar is not this package's concern, but
// elaboration still needs some fixed child-slot convention to read a
// parsed tree, so this file fixes the minimal one the elaborators
// below rely on. A real grammar's
// parser populates syntax.Node.Children following exactly this layout
// for the kinds listed; everything else about a production (trivia,
// the concrete token sequence) is free.
//
//	KindCompilationUnit:       [0]=body list
//	KindModuleDecl/InterfaceDecl/ProgramDecl:
//	                           [0]=name, [1]=param-list or nil, [2]=body list
//	KindPackageDecl:           [0]=name, [1]=body list
//	KindHierarchyInstantiation:[0]=definition name, [1]=override list or nil,
//	                           [2]=instance-name list
//	KindParamAssignment:       [0]=name, [1]=value expr or nil
//	KindBlockStatement:        [0]=label or nil, [1]=body list
//	KindProceduralBlock:       [0]=procedure-kind keyword, [1]=body
//	KindIfGenerate:            [0]=guard expr, [1]=then block, [2]=else block or nil
//	KindGenerateBlock:         [0]=label or the zero token, [1]=body list
//	KindLoopGenerate:          [0]=genvar name, [1]=init expr, [2]=cond expr,
//	                           [3]=step expr, [4]=body template (itself a
//	                           KindGenerateBlock whose label names the
//	                           generated array)
//
// A "body list" is a KindList node whose Children are the member nodes
// in order; a bracketed list published from package parse's List shape
// also holds open/separator/close tokens. Only the item slots (the
// Node()s, skipping any tokens) are declarations.

func childNode(n *syntax.Node, i int) *syntax.Node {
	if n == nil || i >= len(n.Children) {
		return nil
	}
	return n.Children[i].Node()
}

func childToken(n *syntax.Node, i int) token.Token {
	if n == nil || i >= len(n.Children) {
		return token.Token{}
	}
	return n.Children[i].Token()
}

// listItems returns the item nodes of a KindList node (produced by
// package parse's ParseSeparatedList and published via syntax.Tree.New
// with KindList), skipping separators and any nil slots.
func listItems(list *syntax.Node) []*syntax.Node {
	if list == nil {
		return nil
	}
	var out []*syntax.Node
	for _, child := range list.Children {
		if child.IsToken() {
			continue // separator or open/close token
		}
		if n := child.Node(); n != nil {
			out = append(out, n)
		}
	}
	return out
}
