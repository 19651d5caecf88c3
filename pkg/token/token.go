// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package token defines the lexical token kinds and the Token value
// itself: a kind tag, the raw lexeme, an optional post-escape-processed
// string for character and string literals, and a source span.
package token

import "github.com/cc89/compiler/pkg/source"

// Kind enumerates every token the lexer can produce.
type Kind int

// Token kinds, keywords first.
const (
	// Keywords.
	KwAuto Kind = iota
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInt
	KwLong
	KwRegister
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile

	Identifier
	IntLiteral
	FloatLiteral
	StringLiteral
	CharLiteral

	// Operators.
	OpAssign
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpMod
	OpInc
	OpDec
	OpLShift
	OpRShift
	OpAnd // &&
	OpOr  // ||
	OpNot // !
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot

	OpPlusAssign
	OpMinusAssign
	OpStarAssign
	OpSlashAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpLShiftAssign
	OpRShiftAssign

	OpQuestion
	Colon

	// Delimiters.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Arrow

	Hash
	DoubleHash

	EOF
	Unknown
)

// Keywords maps lexeme to Kind for all 32 C89 keywords. The lexer
// recognizes every one; constructs the parser does not accept (switch,
// goto, typedef, ...) surface as syntax errors there, not here.
var Keywords = map[string]Kind{
	"auto": KwAuto, "break": KwBreak, "case": KwCase, "char": KwChar,
	"const": KwConst, "continue": KwContinue, "default": KwDefault, "do": KwDo,
	"double": KwDouble, "else": KwElse, "enum": KwEnum, "extern": KwExtern,
	"float": KwFloat, "for": KwFor, "goto": KwGoto, "if": KwIf,
	"int": KwInt, "long": KwLong, "register": KwRegister, "return": KwReturn,
	"short": KwShort, "signed": KwSigned, "sizeof": KwSizeof, "static": KwStatic,
	"struct": KwStruct, "switch": KwSwitch, "typedef": KwTypedef, "union": KwUnion,
	"unsigned": KwUnsigned, "void": KwVoid, "volatile": KwVolatile, "while": KwWhile,
}

var names = map[Kind]string{
	KwAuto: "auto", KwBreak: "break", KwCase: "case", KwChar: "char",
	KwConst: "const", KwContinue: "continue", KwDefault: "default", KwDo: "do",
	KwDouble: "double", KwElse: "else", KwEnum: "enum", KwExtern: "extern",
	KwFloat: "float", KwFor: "for", KwGoto: "goto", KwIf: "if",
	KwInt: "int", KwLong: "long", KwRegister: "register", KwReturn: "return",
	KwShort: "short", KwSigned: "signed", KwSizeof: "sizeof", KwStatic: "static",
	KwStruct: "struct", KwSwitch: "switch", KwTypedef: "typedef", KwUnion: "union",
	KwUnsigned: "unsigned", KwVoid: "void", KwVolatile: "volatile", KwWhile: "while",
	Identifier: "identifier", IntLiteral: "int-literal", FloatLiteral: "float-literal",
	StringLiteral: "string-literal", CharLiteral: "char-literal",
	OpAssign: "=", OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpPlus: "+", OpMinus: "-", OpStar: "*", OpSlash: "/", OpMod: "%",
	OpInc: "++", OpDec: "--", OpLShift: "<<", OpRShift: ">>",
	OpAnd: "&&", OpOr: "||", OpNot: "!", OpBitAnd: "&", OpBitOr: "|",
	OpBitXor: "^", OpBitNot: "~",
	OpPlusAssign: "+=", OpMinusAssign: "-=", OpStarAssign: "*=", OpSlashAssign: "/=",
	OpModAssign: "%=", OpAndAssign: "&=", OpOrAssign: "|=", OpXorAssign: "^=",
	OpLShiftAssign: "<<=", OpRShiftAssign: ">>=",
	OpQuestion: "?", Colon: ":",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Semicolon: ";", Comma: ",", Dot: ".", Arrow: "->",
	Hash: "#", DoubleHash: "##",
	EOF: "<eof>", Unknown: "<unknown>",
}

// String renders a Kind as its canonical lexeme or name, used in
// diagnostics and in the JSON token dump.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "<?>"
}

// TypeKeywords is the set of keywords that can start a declarator's base
// type, used by the parser to distinguish a cast from a parenthesized
// expression and to recognize sizeof's type-name form.
var TypeKeywords = map[Kind]bool{
	KwVoid: true, KwChar: true, KwShort: true, KwInt: true, KwLong: true,
	KwFloat: true, KwDouble: true, KwStruct: true,
}

// Token is a single immutable lexical unit.
type Token struct {
	Kind Kind
	// Lexeme is the raw source text of the token.
	Lexeme string
	// Processed holds the escape-decoded value for char/string literals;
	// empty for every other kind.
	Processed string
	Span      source.Span
}

// IsAssignOp reports whether k is '=' or a compound-assignment operator.
func (k Kind) IsAssignOp() bool {
	switch k {
	case OpAssign, OpPlusAssign, OpMinusAssign, OpStarAssign, OpSlashAssign,
		OpModAssign, OpAndAssign, OpOrAssign, OpXorAssign, OpLShiftAssign, OpRShiftAssign:
		return true
	default:
		return false
	}
}
