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

import "fmt"

// Kind discriminates the lexical category of a Token.
//
// The full SystemVerilog grammar's token set is out of this package's
// scope; this is
// the subset the parser base and its examples exercise.
type Kind uint16

const (
	Invalid Kind = iota
	EOF

	Identifier
	SystemIdentifier // $-prefixed system task/function name, e.g. $display
	IntLiteral
	StringLiteral

	// Keywords.
	KwModule
	KwEndmodule
	KwInterface
	KwEndinterface
	KwProgram
	KwEndprogram
	KwPackage
	KwEndpackage
	KwGenerate
	KwEndgenerate
	KwIf
	KwElse
	KwFor
	KwBegin
	KwEnd
	KwGenvar
	KwParameter
	KwLocalparam
	KwInitial
	KwAlways
	KwAlwaysComb
	KwAlwaysLatch
	KwAlwaysFF
	KwFinal

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Colon
	ColonColon
	Equals
	Hash
	Dot
	Plus
	PlusPlus
	Minus
	MinusMinus
	Star
	Slash
	Lt
	Le
	Gt
	Ge
	EqEq
	NotEq

	// Unknown is a character the lexer could not classify; it is the
	// canonical bad token that tests feed to skipBadTokens to be skipped.
	Unknown
)

var names = map[Kind]string{
	Invalid:          "<invalid>",
	EOF:              "<eof>",
	Identifier:       "identifier",
	SystemIdentifier: "system identifier",
	IntLiteral:       "integer literal",
	StringLiteral:    "string literal",
	KwModule:         "'module'",
	KwEndmodule:      "'endmodule'",
	KwInterface:      "'interface'",
	KwEndinterface:   "'endinterface'",
	KwProgram:        "'program'",
	KwEndprogram:     "'endprogram'",
	KwPackage:        "'package'",
	KwEndpackage:     "'endpackage'",
	KwGenerate:       "'generate'",
	KwEndgenerate:    "'endgenerate'",
	KwIf:             "'if'",
	KwElse:           "'else'",
	KwFor:            "'for'",
	KwBegin:          "'begin'",
	KwEnd:            "'end'",
	KwGenvar:         "'genvar'",
	KwParameter:      "'parameter'",
	KwLocalparam:     "'localparam'",
	KwInitial:        "'initial'",
	KwAlways:         "'always'",
	KwAlwaysComb:     "'always_comb'",
	KwAlwaysLatch:    "'always_latch'",
	KwAlwaysFF:       "'always_ff'",
	KwFinal:          "'final'",
	LParen:           "'('",
	RParen:           "')'",
	LBrace:           "'{'",
	RBrace:           "'}'",
	LBracket:         "'['",
	RBracket:         "']'",
	Semicolon:        "';'",
	Comma:            "','",
	Colon:            "':'",
	ColonColon:       "'::'",
	Equals:           "'='",
	Hash:             "'#'",
	Dot:              "'.'",
	Plus:             "'+'",
	PlusPlus:         "'++'",
	Minus:            "'-'",
	MinusMinus:       "'--'",
	Star:             "'*'",
	Slash:            "'/'",
	Lt:               "'<'",
	Le:               "'<='",
	Gt:               "'>'",
	Ge:               "'>='",
	EqEq:             "'=='",
	NotEq:            "'!='",
	Unknown:          "unrecognized token",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// Keywords maps keyword spelling to its Kind, for use by a token Source.
var Keywords = map[string]Kind{
	"module":       KwModule,
	"endmodule":    KwEndmodule,
	"interface":    KwInterface,
	"endinterface": KwEndinterface,
	"program":      KwProgram,
	"endprogram":   KwEndprogram,
	"package":      KwPackage,
	"endpackage":   KwEndpackage,
	"generate":     KwGenerate,
	"endgenerate":  KwEndgenerate,
	"if":           KwIf,
	"else":         KwElse,
	"for":          KwFor,
	"begin":        KwBegin,
	"end":          KwEnd,
	"genvar":       KwGenvar,
	"parameter":    KwParameter,
	"localparam":   KwLocalparam,
	"initial":      KwInitial,
	"always":       KwAlways,
	"always_comb":  KwAlwaysComb,
	"always_latch": KwAlwaysLatch,
	"always_ff":    KwAlwaysFF,
	"final":        KwFinal,
}
