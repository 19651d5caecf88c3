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

// Package parser implements recursive-descent parsing of declarations
// and statements plus precedence-climbing (Pratt) parsing of
// expressions. Errors are isolated per declaration: a failed
// declaration synchronizes to the next top-level keyword and parsing
// continues, so one bad function does not hide the rest of the file.
package parser

import (
	"strconv"
	"strings"

	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/source"
	"github.com/cc89/compiler/pkg/token"
	"github.com/cc89/compiler/pkg/types"
)

// Parser holds the token stream and scan position. Its public entry
// point never panics out — it collects diagnostics into the supplied
// diag.Bag and returns a (possibly partial) AST.
type Parser struct {
	toks    []token.Token
	pos     int
	diags   *diag.Bag
	structs map[string]*types.Type
}

// Parse scans toks into a TranslationUnit, recording diagnostics into
// diags.
func Parse(toks []token.Token, diags *diag.Bag) *ast.TranslationUnit {
	p := &Parser{toks: toks, diags: diags, structs: make(map[string]*types.Type)}
	return p.parseTranslationUnit()
}

// ---------------------------------------------------------------------
// Token stream primitives
// ---------------------------------------------------------------------

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) match(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if t, ok := p.match(k); ok {
		return t, true
	}
	p.diags.Errorf(p.cur().Span, "expected %q but found %q", k, p.cur().Kind)
	return token.Token{}, false
}

// synchronize skips tokens until the next ';' or '}' at nesting depth
// 0.
func (p *Parser) synchronize() {
	depth := 0
	for !p.atEOF() {
		switch p.cur().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		case token.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// declSyncKeywords are the top-level keywords declaration-level recovery
// skips forward to.
var declSyncKeywords = map[token.Kind]bool{
	token.KwInt: true, token.KwChar: true, token.KwVoid: true, token.KwFloat: true,
	token.KwDouble: true, token.KwLong: true, token.KwShort: true, token.KwStruct: true,
	token.KwExtern: true,
}

func (p *Parser) synchronizeDecl() {
	for !p.atEOF() && !declSyncKeywords[p.cur().Kind] {
		p.advance()
	}
}

// ---------------------------------------------------------------------
// Top level
// ---------------------------------------------------------------------

func (p *Parser) parseTranslationUnit() *ast.TranslationUnit {
	tu := &ast.TranslationUnit{}
	for !p.atEOF() {
		before := p.pos
		decls := p.parseTopLevelDecl()
		tu.Decls = append(tu.Decls, decls...)
		if p.pos == before {
			// Parser made no progress; force it forward to avoid looping.
			p.advance()
		}
	}
	return tu
}

func (p *Parser) parseTopLevelDecl() []ast.Decl {
	start := p.cur().Span
	extern := false
	if _, ok := p.match(token.KwExtern); ok {
		extern = true
	} else {
		p.match(token.KwStatic) // accepted, otherwise ignored
	}

	base, structDecl, ok := p.parseBaseType()
	if !ok {
		p.diags.Errorf(p.cur().Span, "expected a type but found %q", p.cur().Kind)
		p.synchronizeDecl()
		return nil
	}
	if structDecl != nil && p.check(token.Semicolon) {
		p.advance()
		return []ast.Decl{structDecl}
	}

	name, ptrDepth, ok := p.parseDeclaratorName()
	if !ok {
		p.synchronizeDecl()
		return nil
	}
	declType := withPointerDepth(base, ptrDepth)

	if p.check(token.LParen) {
		return []ast.Decl{p.parseFunctionTail(start, name, declType, extern)}
	}

	vars := p.parseVarDeclaratorsTail(start, base, name, declType, extern)
	decls := make([]ast.Decl, len(vars))
	for i, v := range vars {
		decls[i] = v
	}
	return decls
}

func withPointerDepth(base *types.Type, depth int) *types.Type {
	t := *base
	t.PointerDepth += depth
	return &t
}

// parseBaseType parses a type-keyword or `struct [tag] [{ members }]`
// base type. If a struct is defined inline (with a brace list), the
// returned *ast.StructDecl is non-nil so the caller can treat a bare
// `struct Foo { ... };` as a standalone declaration.
func (p *Parser) parseBaseType() (*types.Type, *ast.StructDecl, bool) {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.KwVoid:
		p.advance()
		return types.New(types.Void), nil, true
	case token.KwChar:
		p.advance()
		return types.New(types.Char), nil, true
	case token.KwShort:
		p.advance()
		return types.New(types.Short), nil, true
	case token.KwInt:
		p.advance()
		return types.New(types.Int), nil, true
	case token.KwLong:
		p.advance()
		return types.New(types.Long), nil, true
	case token.KwFloat:
		p.advance()
		return types.New(types.Float), nil, true
	case token.KwDouble:
		p.advance()
		return types.New(types.Double), nil, true
	case token.KwStruct:
		p.advance()
		var name string
		if t, ok := p.match(token.Identifier); ok {
			name = t.Lexeme
		}
		if p.check(token.LBrace) {
			st := p.registerStruct(name)
			p.advance()
			var members []types.Member
			for !p.check(token.RBrace) && !p.atEOF() {
				mbase, _, ok := p.parseBaseType()
				if !ok {
					p.synchronize()
					break
				}
				for {
					mname, mdepth, ok := p.parseDeclaratorName()
					if !ok {
						break
					}
					mtype := withPointerDepth(mbase, mdepth)
					mtype = p.parseArraySuffix(mtype)
					members = append(members, types.Member{Name: mname, Type: mtype})
					if _, ok := p.match(token.Comma); !ok {
						break
					}
				}
				p.expect(token.Semicolon)
			}
			p.expect(token.RBrace)
			st.Members = members
			return st, &ast.StructDecl{Name: name, Type: st, Span: start}, true
		}
		if name == "" {
			p.diags.Errorf(start, "expected a struct tag or member list")
			return nil, nil, false
		}
		return p.resolveStruct(name), nil, true
	default:
		return nil, nil, false
	}
}

func (p *Parser) registerStruct(name string) *types.Type {
	if name == "" {
		return types.NewStruct("", nil)
	}
	st := types.NewStruct(name, nil)
	p.structs[name] = st
	return st
}

// resolveStruct looks up a previously seen struct tag, or registers an
// (initially empty) placeholder. Resolution is deferred so a struct
// can hold a pointer to itself or to a not-yet-defined tag.
func (p *Parser) resolveStruct(name string) *types.Type {
	if st, ok := p.structs[name]; ok {
		return st
	}
	return p.registerStruct(name)
}

// isKnownStructTag reports whether name has been registered by a
// previously parsed struct declaration, used by cast-vs-parenthesized
// disambiguation.
func (p *Parser) isKnownStructTag(name string) bool {
	_, ok := p.structs[name]
	return ok
}

// parseDeclaratorName parses pointer stars then a mandatory identifier,
// returning the name and the pointer depth.
func (p *Parser) parseDeclaratorName() (string, int, bool) {
	depth := 0
	for {
		if _, ok := p.match(token.OpStar); ok {
			depth++
			continue
		}
		break
	}
	id, ok := p.expect(token.Identifier)
	if !ok {
		return "", depth, false
	}
	return id.Lexeme, depth, true
}

func (p *Parser) parseFunctionTail(start source.Span, name string, retType *types.Type, extern bool) *ast.FuncDecl {
	p.advance() // '('
	var params []ast.Param
	variadic := false
	if !p.check(token.RParen) {
		for {
			if p.isEllipsis() {
				variadic = true
				break
			}
			pbase, _, ok := p.parseBaseType()
			if !ok {
				p.diags.Errorf(p.cur().Span, "expected a parameter type")
				break
			}
			pdepth := 0
			for {
				if _, ok := p.match(token.OpStar); !ok {
					break
				}
				pdepth++
			}
			pname := ""
			if id, ok := p.match(token.Identifier); ok {
				pname = id.Lexeme
			}
			ptype := withPointerDepth(pbase, pdepth)
			params = append(params, ast.Param{Name: pname, Type: ptype})
			if _, ok := p.match(token.Comma); !ok {
				break
			}
			if p.isEllipsis() {
				variadic = true
				break
			}
		}
	}
	p.expect(token.RParen)

	fd := &ast.FuncDecl{Span: start, Name: name, ReturnType: retType, Params: params, IsVariadic: variadic, Extern: extern}
	if _, ok := p.match(token.Semicolon); ok {
		fd.Extern = true
		return fd
	}
	if variadic {
		p.diags.Errorf(start, "variadic function definitions are not supported")
	}
	fd.Body = p.parseCompound()
	return fd
}

// isEllipsis consumes "..." if present (the lexer has no dedicated
// ELLIPSIS token, so "..." surfaces as three Dot tokens), for
// variadic-parameter declarations. Only declarations may be variadic;
// a variadic definition is rejected.
func (p *Parser) isEllipsis() bool {
	if p.cur().Kind == token.Dot && p.peekAt(1).Kind == token.Dot && p.peekAt(2).Kind == token.Dot {
		p.advance()
		p.advance()
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseVarDeclaratorsTail(start source.Span, base *types.Type, firstName string, firstType *types.Type, extern bool) []*ast.VarDecl {
	var decls []*ast.VarDecl
	name, declType := firstName, firstType
	for {
		declType = p.parseArraySuffix(declType)
		var init ast.Expr
		if _, ok := p.match(token.OpAssign); ok {
			init = p.parseAssignment()
		}
		decls = append(decls, &ast.VarDecl{Span: start, Name: name, Type: declType, Init: init, Extern: extern})
		if _, ok := p.match(token.Comma); !ok {
			break
		}
		var depth int
		var ok bool
		name, depth, ok = p.parseDeclaratorName()
		if !ok {
			break
		}
		declType = withPointerDepth(base, depth)
	}
	p.expect(token.Semicolon)
	return decls
}

func (p *Parser) parseArraySuffix(t *types.Type) *types.Type {
	if _, ok := p.match(token.LBracket); ok {
		size := 0
		if tok, ok := p.match(token.IntLiteral); ok {
			size, _ = strconv.Atoi(tok.Lexeme)
		}
		p.expect(token.RBracket)
		nt := *t
		nt.IsArray = true
		nt.ArraySize = size
		return &nt
	}
	return t
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (p *Parser) parseCompound() *ast.Compound {
	start := p.cur().Span
	p.expect(token.LBrace)
	c := &ast.Compound{Span: start}
	for !p.check(token.RBrace) && !p.atEOF() {
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			c.Stmts = append(c.Stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return c
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseCompound()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		t := p.advance()
		p.expect(token.Semicolon)
		return &ast.Break{Span: t.Span}
	case token.KwContinue:
		t := p.advance()
		p.expect(token.Semicolon)
		return &ast.Continue{Span: t.Span}
	case token.KwInt, token.KwChar, token.KwShort, token.KwLong, token.KwFloat,
		token.KwDouble, token.KwVoid, token.KwStruct, token.KwExtern, token.KwStatic:
		return p.parseLocalDecl()
	case token.Semicolon:
		t := p.advance()
		return &ast.ExprStmt{Span: t.Span}
	default:
		start := p.cur().Span
		e := p.parseExpr()
		if e == nil {
			p.diags.Errorf(p.cur().Span, "unexpected token %q in statement", p.cur().Kind)
			p.synchronize()
			return nil
		}
		p.expect(token.Semicolon)
		return &ast.ExprStmt{Span: start, Expr: e}
	}
}

// parseLocalDecl parses one or more comma-separated local declarators,
// returning a single DeclStmt for one declarator and a DeclGroup (which
// opens no scope of its own) for several.
func (p *Parser) parseLocalDecl() ast.Stmt {
	start := p.cur().Span
	extern := false
	if _, ok := p.match(token.KwExtern); ok {
		extern = true
	} else {
		p.match(token.KwStatic)
	}
	base, structDecl, ok := p.parseBaseType()
	if !ok {
		p.diags.Errorf(p.cur().Span, "expected a type")
		p.synchronize()
		return nil
	}
	if structDecl != nil && p.check(token.Semicolon) {
		p.advance()
		// A local struct definition has no direct Stmt representation;
		// its Type is already registered for lookups via p.structs.
		return &ast.ExprStmt{Span: start}
	}
	name, depth, ok := p.parseDeclaratorName()
	if !ok {
		p.synchronize()
		return nil
	}
	declType := withPointerDepth(base, depth)
	vars := p.parseVarDeclaratorsTail(start, base, name, declType, extern)
	if len(vars) == 0 {
		return nil
	}
	if len(vars) == 1 {
		return &ast.DeclStmt{Span: start, Decl: vars[0]}
	}
	return &ast.DeclGroup{Span: start, Decls: vars}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance().Span
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseStatement()
	var els ast.Stmt
	if _, ok := p.match(token.KwElse); ok {
		els = p.parseStatement()
	}
	return &ast.If{Span: start, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance().Span
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseStatement()
	return &ast.While{Span: start, Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance().Span
	p.expect(token.LParen)
	var init ast.Stmt
	if !p.check(token.Semicolon) {
		switch p.cur().Kind {
		case token.KwInt, token.KwChar, token.KwShort, token.KwLong, token.KwFloat, token.KwDouble, token.KwVoid, token.KwStruct:
			init = p.parseLocalDecl()
		default:
			es := p.parseExpr()
			p.expect(token.Semicolon)
			init = &ast.ExprStmt{Expr: es}
		}
	} else {
		p.advance()
	}
	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.parseExpr()
	}
	p.expect(token.Semicolon)
	var step ast.Expr
	if !p.check(token.RParen) {
		step = p.parseExpr()
	}
	p.expect(token.RParen)
	body := p.parseStatement()
	return &ast.For{Span: start, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance().Span
	var val ast.Expr
	if !p.check(token.Semicolon) {
		val = p.parseExpr()
	}
	p.expect(token.Semicolon)
	return &ast.Return{Span: start, Value: val}
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// binaryPrecedence: || (1) < && (2) < == != (3) < relational (4) <
// shifts (5) < + - (6) < * / % (7). All left-associative.
var binaryPrecedence = map[token.Kind]int{
	token.OpOr: 1,
	token.OpAnd: 2,
	token.OpEq: 3, token.OpNe: 3,
	token.OpLt: 4, token.OpGt: 4, token.OpLe: 4, token.OpGe: 4,
	token.OpLShift: 5, token.OpRShift: 5,
	token.OpPlus: 6, token.OpMinus: 6,
	token.OpStar: 7, token.OpSlash: 7, token.OpMod: 7,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment implements the right-associative assignment level:
// it is lower precedence than every binary
// operator, and only valid with an lvalue-shaped left operand (checked
// later, by the semantic analyzer).
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseBinary(1)
	if left == nil {
		return nil
	}
	if p.cur().Kind.IsAssignOp() {
		op := p.advance()
		right := p.parseAssignment()
		return &ast.Assignment{Span: left.NodeSpan(), Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

// parseBinary is the precedence-climbing core: minPrec bounds which
// operators this call is allowed to consume.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		prec, ok := binaryPrecedence[p.cur().Kind]
		if !ok || prec < minPrec {
			return left
		}
		opTok := p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.Binary{Span: left.NodeSpan(), Op: opTok.Lexeme, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.OpPlus, token.OpMinus, token.OpNot, token.OpBitNot, token.OpStar, token.OpBitAnd, token.OpInc, token.OpDec:
		op := p.advance()
		operand := p.parseUnary()
		return &ast.Unary{Span: op.Span, Op: op.Lexeme, Operand: operand}
	case token.KwSizeof:
		start := p.advance().Span
		if p.check(token.LParen) && p.startsTypeNameAt(1) {
			p.advance()
			t, _, _ := p.parseBaseType()
			depth := 0
			for {
				if _, ok := p.match(token.OpStar); ok {
					depth++
					continue
				}
				break
			}
			t = withPointerDepth(t, depth)
			p.expect(token.RParen)
			return &ast.Sizeof{Span: start, TypeName: t}
		}
		operand := p.parseUnary()
		return &ast.Sizeof{Span: start, Operand: operand}
	case token.LParen:
		if p.isCastAhead() {
			start := p.advance().Span
			t, _, _ := p.parseBaseType()
			depth := 0
			for {
				if _, ok := p.match(token.OpStar); ok {
					depth++
					continue
				}
				break
			}
			t = withPointerDepth(t, depth)
			p.expect(token.RParen)
			operand := p.parseUnary()
			return &ast.Cast{Span: start, TargetType: t, Operand: operand}
		}
	}
	return p.parsePostfix()
}

// startsTypeNameAt reports whether the token n positions ahead begins a
// type-name (used for sizeof's `sizeof(type)` form): a type keyword, or
// `struct` followed by a known tag.
func (p *Parser) startsTypeNameAt(n int) bool {
	t := p.peekAt(n)
	if token.TypeKeywords[t.Kind] {
		if t.Kind == token.KwStruct {
			tag := p.peekAt(n + 1)
			return tag.Kind == token.Identifier && p.isKnownStructTag(tag.Lexeme)
		}
		return true
	}
	return false
}

// isCastAhead disambiguates a cast from a parenthesized expression:
// the parser is positioned at '(' and peeks whether the
// contents start with a type keyword, or a known struct tag, followed by
// ')'.
func (p *Parser) isCastAhead() bool {
	if !token.TypeKeywords[p.peekAt(1).Kind] {
		return false
	}
	if p.peekAt(1).Kind == token.KwStruct {
		tag := p.peekAt(2)
		if tag.Kind != token.Identifier || !p.isKnownStructTag(tag.Lexeme) {
			return false
		}
		i := 3
		for p.peekAt(i).Kind == token.OpStar {
			i++
		}
		return p.peekAt(i).Kind == token.RParen
	}
	i := 2
	for p.peekAt(i).Kind == token.OpStar {
		i++
	}
	return p.peekAt(i).Kind == token.RParen
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	if e == nil {
		return nil
	}
	for {
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Expr
			if !p.check(token.RParen) {
				for {
					args = append(args, p.parseAssignment())
					if _, ok := p.match(token.Comma); !ok {
						break
					}
				}
			}
			p.expect(token.RParen)
			e = &ast.Call{Span: e.NodeSpan(), Callee: e, Args: args}
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket)
			e = &ast.Index{Span: e.NodeSpan(), Base: e, Index: idx}
		case token.Dot:
			p.advance()
			name, _ := p.expect(token.Identifier)
			e = &ast.Member{Span: e.NodeSpan(), Base: e, Name: name.Lexeme, Arrow: false}
		case token.Arrow:
			p.advance()
			name, _ := p.expect(token.Identifier)
			e = &ast.Member{Span: e.NodeSpan(), Base: e, Name: name.Lexeme, Arrow: true}
		case token.OpInc, token.OpDec:
			op := p.advance()
			e = &ast.PostfixIncDec{Span: e.NodeSpan(), Op: op.Lexeme, Operand: e}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.IntLiteral:
		p.advance()
		return &ast.Literal{Span: t.Span, Kind: ast.IntLit, Raw: t.Lexeme, IntValue: parseIntLiteral(t.Lexeme)}
	case token.FloatLiteral:
		p.advance()
		return &ast.Literal{Span: t.Span, Kind: ast.FloatLit, Raw: t.Lexeme, FloatValue: parseFloatLiteral(t.Lexeme)}
	case token.CharLiteral:
		p.advance()
		var v int64
		if len(t.Processed) > 0 {
			v = int64(t.Processed[0])
		}
		return &ast.Literal{Span: t.Span, Kind: ast.CharLit, Raw: t.Lexeme, IntValue: v}
	case token.StringLiteral:
		p.advance()
		return &ast.Literal{Span: t.Span, Kind: ast.StringLit, Raw: t.Lexeme, StringValue: t.Processed}
	case token.Identifier:
		p.advance()
		return &ast.Ident{Span: t.Span, Name: t.Lexeme}
	case token.LParen:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RParen)
		return e
	default:
		p.diags.Errorf(t.Span, "unexpected token %q in expression", t.Kind)
		return nil
	}
}

// parseIntLiteral decodes an integer lexeme (decimal, 0x hex, or
// 0-prefixed octal), stripping any
// trailing u/U/l/L suffix letters. Malformed input (which the lexer
// should never actually produce) decodes as 0 rather than panicking.
func parseIntLiteral(lexeme string) int64 {
	s := strings.TrimRight(lexeme, "uUlL")
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
	}
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		u, _ := strconv.ParseUint(s, base, 64)
		return int64(u)
	}
	return v
}

// parseFloatLiteral decodes a floating-point lexeme, stripping any
// trailing f/F/l/L suffix letter.
func parseFloatLiteral(lexeme string) float64 {
	s := strings.TrimRight(lexeme, "fFlL")
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
