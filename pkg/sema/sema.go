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

// Package sema implements the semantic analyzer: name resolution, the
// usual arithmetic conversions, pointer-arithmetic and lvalue rules,
// struct member access, and the unused/conversion/shadow warnings (the
// sign-compare category exists but never fires, see analyzeBinary). Analysis is two passes: globals are pre-registered first so
// forward references resolve, then each body is walked recursively,
// writing resolved types back into the AST in place.
package sema

import (
	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/source"
	"github.com/cc89/compiler/pkg/symbols"
	"github.com/cc89/compiler/pkg/types"
)

// Analyzer walks a TranslationUnit, writing resolved types into every
// expression node and diagnostics into diags.
type Analyzer struct {
	diags   *diag.Bag
	scope   *symbols.Table
	curFunc *symbols.Symbol
}

// Analyze runs the analyzer over tu and returns the populated symbol
// table (the global scope still holds every top-level declaration).
func Analyze(tu *ast.TranslationUnit, diags *diag.Bag) *symbols.Table {
	a := &Analyzer{diags: diags, scope: symbols.NewTable()}
	a.registerGlobals(tu)
	for _, d := range tu.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Body != nil {
			a.analyzeFunctionBody(fd)
		}
	}
	return a.scope
}

// registerGlobals pre-registers every function and global variable so
// forward references within the translation unit resolve.
func (a *Analyzer) registerGlobals(tu *ast.TranslationUnit) {
	for _, d := range tu.Decls {
		switch n := d.(type) {
		case *ast.FuncDecl:
			params := make([]*types.Type, len(n.Params))
			for i, p := range n.Params {
				params[i] = p.Type
			}
			// A definition following a bodiless prototype of the same
			// function completes it rather than redeclaring it.
			if prev, ok := a.scope.LookupLocal(n.Name); ok && prev.Kind == symbols.Function && !prev.HasBody && n.Body != nil {
				prev.HasBody = true
				prev.Type = n.ReturnType
				prev.ParamTypes = params
				prev.IsVariadic = n.IsVariadic
				continue
			}
			sym := &symbols.Symbol{
				Name: n.Name, Type: n.ReturnType, Kind: symbols.Function,
				DeclaredAt: n.Span, IsVariadic: n.IsVariadic, ParamTypes: params,
				IsExtern: n.Extern, HasBody: n.Body != nil, Used: n.Body == nil,
			}
			a.declare(sym, n.Span)
		case *ast.VarDecl:
			sym := &symbols.Symbol{
				Name: n.Name, Type: n.Type, Kind: symbols.Variable,
				DeclaredAt: n.Span, IsExtern: n.Extern, Used: true,
			}
			a.declare(sym, n.Span)
			if n.Init != nil {
				n.Init = a.analyzeExpr(n.Init)
				a.checkAssignable(n.Type, n.Init, n.Span)
			}
		case *ast.StructDecl:
			// Struct types are already fully resolved by the parser's
			// deferred-resolution scheme; nothing to do here.
		}
	}
}

// declare records sym in the current scope, reporting a redeclaration
// error (same scope) or a shadow warning (outer scope).
func (a *Analyzer) declare(sym *symbols.Symbol, at source.Span) {
	if prev, ok := a.scope.Declare(sym); !ok {
		a.diags.Errorf(at, "redeclaration of %q", sym.Name)
		a.diags.Notef(prev.DeclaredAt, "previous declaration of %q is here", sym.Name)
		return
	}
	if outer, shadowed := a.scope.Shadows(sym.Name); shadowed {
		a.diags.Warnf(at, diag.CategoryShadow, "declaration of %q shadows a declaration at %s", sym.Name, outer.DeclaredAt.Start)
	}
}

func (a *Analyzer) analyzeFunctionBody(fd *ast.FuncDecl) {
	sym, _ := a.scope.Lookup(fd.Name)
	prevFunc := a.curFunc
	a.curFunc = sym
	a.scope.Push()
	for _, p := range fd.Params {
		if p.Name == "" {
			continue
		}
		a.declare(&symbols.Symbol{Name: p.Name, Type: p.Type, Kind: symbols.Variable, DeclaredAt: fd.Span}, fd.Span)
	}
	a.analyzeStmt(fd.Body, false)
	a.warnUnused()
	a.scope.Pop()
	a.curFunc = prevFunc
}

func (a *Analyzer) warnUnused() {
	for _, s := range a.scope.UnusedInScope() {
		if !a.diags.Enabled(diag.CategoryUnused) {
			continue
		}
		a.diags.Warnf(s.DeclaredAt, diag.CategoryUnused, "unused variable %q", s.Name)
	}
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// analyzeStmt walks s. ownScope is false for a function body (the
// caller already pushed the scope holding the parameters), true
// otherwise; a for loop pushes one scope for its init clause and its
// compound body opens a nested one.
func (a *Analyzer) analyzeStmt(s ast.Stmt, ownScope bool) {
	switch n := s.(type) {
	case nil:
		return
	case *ast.Compound:
		if ownScope {
			a.scope.Push()
		}
		for _, sub := range n.Stmts {
			a.analyzeStmt(sub, true)
		}
		if ownScope {
			a.warnUnused()
			a.scope.Pop()
		}
	case *ast.If:
		n.Cond = a.analyzeExpr(n.Cond)
		a.analyzeStmt(n.Then, true)
		a.analyzeStmt(n.Else, true)
	case *ast.While:
		n.Cond = a.analyzeExpr(n.Cond)
		a.analyzeStmt(n.Body, true)
	case *ast.For:
		a.scope.Push()
		a.analyzeStmt(n.Init, false)
		if n.Cond != nil {
			n.Cond = a.analyzeExpr(n.Cond)
		}
		if n.Step != nil {
			n.Step = a.analyzeExpr(n.Step)
		}
		a.analyzeStmt(n.Body, true)
		a.warnUnused()
		a.scope.Pop()
	case *ast.Return:
		retType := a.curFunc.Type
		if n.Value == nil {
			if retType != nil && !retType.IsVoid() {
				a.diags.Errorf(n.Span, "non-void function must return a value")
			}
			return
		}
		if retType != nil && retType.IsVoid() {
			a.diags.Errorf(n.Span, "void function must not return a value")
			n.Value = a.analyzeExpr(n.Value)
			return
		}
		n.Value = a.analyzeExpr(n.Value)
		a.checkAssignable(retType, n.Value, n.Span)
	case *ast.ExprStmt:
		if n.Expr != nil {
			n.Expr = a.analyzeExpr(n.Expr)
		}
	case *ast.DeclStmt:
		a.analyzeLocalDecl(n.Decl)
	case *ast.DeclGroup:
		for _, d := range n.Decls {
			a.analyzeLocalDecl(d)
		}
	case *ast.Break, *ast.Continue:
		// Nothing to resolve; loop-target bookkeeping is irgen's job.
	}
}

func (a *Analyzer) analyzeLocalDecl(d *ast.VarDecl) {
	a.declare(&symbols.Symbol{Name: d.Name, Type: d.Type, Kind: symbols.Variable, DeclaredAt: d.Span, IsExtern: d.Extern, Used: d.Extern}, d.Span)
	if d.Init != nil {
		d.Init = a.analyzeExpr(d.Init)
		a.checkAssignable(d.Type, d.Init, d.Span)
	}
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// analyzeExpr resolves e's type and returns the (possibly wrapped)
// expression to splice back into the parent; conversions surface as
// inserted ImplicitConversion wrappers.
func (a *Analyzer) analyzeExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.Literal:
		n.SetResolvedType(literalType(n))
		return n
	case *ast.Ident:
		sym, ok := a.scope.Lookup(n.Name)
		if !ok {
			a.diags.Errorf(n.Span, "undeclared identifier %q", n.Name)
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
		sym.Used = true
		n.SetResolvedType(sym.Type)
		return a.decay(n)
	case *ast.Binary:
		return a.analyzeBinary(n)
	case *ast.Unary:
		return a.analyzeUnary(n)
	case *ast.PostfixIncDec:
		n.Operand = a.analyzeExprNoDecay(n.Operand)
		a.checkLValue(n.Operand)
		n.SetResolvedType(n.Operand.ResolvedType())
		return n
	case *ast.Sizeof:
		if n.Operand != nil {
			n.Operand = a.analyzeExprNoDecay(n.Operand)
		}
		n.SetResolvedType(types.New(types.Long))
		return n
	case *ast.Cast:
		n.Operand = a.analyzeExpr(n.Operand)
		n.SetResolvedType(n.TargetType)
		return n
	case *ast.Call:
		return a.analyzeCall(n)
	case *ast.Assignment:
		return a.analyzeAssignment(n)
	case *ast.Index:
		n.Base = a.analyzeExprNoDecay(n.Base)
		n.Index = a.analyzeExpr(n.Index)
		bt := n.Base.ResolvedType()
		if bt == nil || (!bt.IsArray && !bt.IsPointer()) {
			a.diags.Errorf(n.Span, "subscript of non-array, non-pointer type")
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
		elem := elementType(bt)
		n.SetResolvedType(elem)
		return n
	case *ast.Member:
		return a.analyzeMember(n)
	case *ast.ImplicitConversion:
		return n
	default:
		return e
	}
}

// analyzeExprNoDecay analyzes e without applying array-to-pointer
// decay at the top level, for the contexts decay skips:
// sizeof and & operands, and the base of ++/--/subscript/member where
// decay is handled explicitly by the caller.
func (a *Analyzer) analyzeExprNoDecay(e ast.Expr) ast.Expr {
	if id, ok := e.(*ast.Ident); ok {
		sym, found := a.scope.Lookup(id.Name)
		if !found {
			a.diags.Errorf(id.Span, "undeclared identifier %q", id.Name)
			id.SetResolvedType(types.New(types.Unknown))
			return id
		}
		sym.Used = true
		id.SetResolvedType(sym.Type)
		return id
	}
	return a.analyzeExpr(e)
}

// decay wraps e in an ImplicitConversion if its type is an array,
// converting it to a pointer to its element type.
func (a *Analyzer) decay(e ast.Expr) ast.Expr {
	t := e.ResolvedType()
	if t == nil || !t.IsArray {
		return e
	}
	decayed := t.Decayed()
	conv := &ast.ImplicitConversion{Span: e.NodeSpan(), Type: decayed, Operand: e, Reason: "array decay"}
	return conv
}

func literalType(n *ast.Literal) *types.Type {
	switch n.Kind {
	case ast.IntLit, ast.CharLit:
		return types.New(types.Int)
	case ast.FloatLit:
		return types.New(types.Double)
	case ast.StringLit:
		return types.Pointer(types.Char, 1)
	default:
		return types.New(types.Unknown)
	}
}

func elementType(t *types.Type) *types.Type {
	c := *t
	if c.IsArray {
		c.IsArray = false
		c.ArraySize = 0
		return &c
	}
	c.PointerDepth--
	return &c
}

// commonArithmeticType implements the usual arithmetic conversions:
// double wins, then float, then integer promotion to int, then long.
func commonArithmeticType(a, b *types.Type) *types.Type {
	if a.Base == types.Double || b.Base == types.Double {
		return types.New(types.Double)
	}
	if a.Base == types.Float || b.Base == types.Float {
		return types.New(types.Float)
	}
	widen := func(t *types.Type) types.Base {
		switch t.Base {
		case types.Char, types.Short:
			return types.Int
		default:
			return t.Base
		}
	}
	ba, bb := widen(a), widen(b)
	if ba == types.Long || bb == types.Long {
		return types.New(types.Long)
	}
	return types.New(types.Int)
}

func (a *Analyzer) wrapConversion(e ast.Expr, target *types.Type, reason string) ast.Expr {
	if e.ResolvedType() != nil && (e.ResolvedType().IsUnknown() || target.IsUnknown()) {
		return e
	}
	if e.ResolvedType() != nil && e.ResolvedType().Equals(target) {
		return e
	}
	if e.ResolvedType() != nil && e.ResolvedType().IsNarrowingTo(target) {
		a.diags.Warnf(e.NodeSpan(), diag.CategoryConversion, "implicit narrowing conversion from %s to %s", e.ResolvedType(), target)
	}
	return &ast.ImplicitConversion{Span: e.NodeSpan(), Type: target, Operand: e, Reason: reason}
}

func (a *Analyzer) analyzeBinary(n *ast.Binary) ast.Expr {
	n.Left = a.analyzeExpr(n.Left)
	n.Right = a.analyzeExpr(n.Right)
	lt, rt := n.Left.ResolvedType(), n.Right.ResolvedType()
	if lt == nil || rt == nil {
		n.SetResolvedType(types.New(types.Unknown))
		return n
	}

	switch n.Op {
	case "+", "-":
		switch {
		case lt.IsPointer() && rt.IsIntegral():
			n.SetResolvedType(lt)
			return n
		case rt.IsPointer() && lt.IsIntegral() && n.Op == "+":
			n.SetResolvedType(rt)
			return n
		case lt.IsPointer() && rt.IsPointer():
			if n.Op != "-" || !lt.Equals(rt) {
				a.diags.Errorf(n.Span, "invalid pointer arithmetic between %s and %s", lt, rt)
				n.SetResolvedType(types.New(types.Unknown))
				return n
			}
			n.SetResolvedType(types.New(types.Int))
			return n
		case lt.IsPointer() || rt.IsPointer():
			a.diags.Errorf(n.Span, "invalid pointer arithmetic between %s and %s", lt, rt)
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
	case "*", "/", "%":
		if lt.IsPointer() || rt.IsPointer() {
			a.diags.Errorf(n.Span, "invalid operand types %s and %s for %q", lt, rt, n.Op)
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
	case "==", "!=", "<", "<=", ">", ">=":
		if lt.IsPointer() && rt.IsPointer() {
			n.Left = a.wrapConversion(n.Left, lt, "comparison")
			n.SetResolvedType(types.New(types.Int))
			return n
		}
		// This subset has no unsigned integer type, so the sign-compare
		// warning category is recognized (-W / --Wno sign-compare both
		// parse) but never actually fires.
	case "&&", "||":
		n.SetResolvedType(types.New(types.Int))
		return n
	}

	common := commonArithmeticType(lt, rt)
	n.Left = a.wrapConversion(n.Left, common, "usual arithmetic conversion")
	n.Right = a.wrapConversion(n.Right, common, "usual arithmetic conversion")
	switch n.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		n.SetResolvedType(types.New(types.Int))
	default:
		n.SetResolvedType(common)
	}
	return n
}

func (a *Analyzer) analyzeUnary(n *ast.Unary) ast.Expr {
	switch n.Op {
	case "&":
		n.Operand = a.analyzeExprNoDecay(n.Operand)
		a.checkLValue(n.Operand)
		t := n.Operand.ResolvedType()
		if t == nil {
			n.SetResolvedType(types.New(types.Unknown))
		} else {
			n.SetResolvedType(t.WithPointer())
		}
		return n
	case "*":
		n.Operand = a.analyzeExpr(n.Operand)
		t := n.Operand.ResolvedType()
		if t == nil || !t.IsPointer() {
			a.diags.Errorf(n.Span, "dereference of non-pointer type")
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
		n.SetResolvedType(t.Dereferenced())
		return n
	case "++", "--":
		n.Operand = a.analyzeExprNoDecay(n.Operand)
		a.checkLValue(n.Operand)
		n.SetResolvedType(n.Operand.ResolvedType())
		return n
	default: // + - ! ~
		n.Operand = a.analyzeExpr(n.Operand)
		t := n.Operand.ResolvedType()
		if t == nil {
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
		if n.Op == "!" {
			n.SetResolvedType(types.New(types.Int))
			return n
		}
		n.SetResolvedType(t)
		return n
	}
}

func (a *Analyzer) analyzeCall(n *ast.Call) ast.Expr {
	ident, isIdent := n.Callee.(*ast.Ident)
	if !isIdent {
		n.Callee = a.analyzeExpr(n.Callee)
		for i, arg := range n.Args {
			n.Args[i] = a.analyzeExpr(arg)
		}
		n.SetResolvedType(types.New(types.Unknown))
		return n
	}
	sym, ok := a.scope.Lookup(ident.Name)
	if !ok || sym.Kind != symbols.Function {
		a.diags.Errorf(n.Span, "call to undeclared function %q", ident.Name)
		for i, arg := range n.Args {
			n.Args[i] = a.analyzeExpr(arg)
		}
		n.SetResolvedType(types.New(types.Unknown))
		return n
	}
	sym.Used = true
	ident.SetResolvedType(sym.Type)
	n.Callee = ident

	if len(n.Args) < len(sym.ParamTypes) || (!sym.IsVariadic && len(n.Args) != len(sym.ParamTypes)) {
		a.diags.Errorf(n.Span, "%q expects %d argument(s), got %d", ident.Name, len(sym.ParamTypes), len(n.Args))
	}
	for i, arg := range n.Args {
		arg = a.analyzeExpr(arg)
		if i < len(sym.ParamTypes) {
			arg = a.wrapConversion(arg, sym.ParamTypes[i], "argument conversion")
		}
		n.Args[i] = arg
	}
	n.SetResolvedType(sym.Type)
	return n
}

func (a *Analyzer) analyzeAssignment(n *ast.Assignment) ast.Expr {
	n.Left = a.analyzeExprNoDecay(n.Left)
	a.checkLValue(n.Left)
	n.Right = a.analyzeExpr(n.Right)
	lt := n.Left.ResolvedType()
	if lt != nil {
		n.Right = a.wrapConversion(n.Right, lt, "assignment")
	}
	n.SetResolvedType(lt)
	return n
}

// checkAssignable reports an error when value's type is incompatible
// with target. It leaves value as it is: no conversion node is inserted
// and no narrowing warning is issued here.
func (a *Analyzer) checkAssignable(target *types.Type, value ast.Expr, at source.Span) {
	if target == nil || value.ResolvedType() == nil {
		return
	}
	if !target.CompatibleWith(value.ResolvedType()) {
		a.diags.Errorf(at, "cannot convert %s to %s", value.ResolvedType(), target)
	}
}

func (a *Analyzer) analyzeMember(n *ast.Member) ast.Expr {
	n.Base = a.analyzeExprNoDecay(n.Base)
	bt := n.Base.ResolvedType()
	if bt == nil {
		n.SetResolvedType(types.New(types.Unknown))
		return n
	}
	var structType *types.Type
	if n.Arrow {
		if !bt.IsPointer() || bt.PointerDepth != 1 {
			a.diags.Errorf(n.Span, "'->' requires a pointer-to-struct operand")
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
		structType = bt.Dereferenced()
	} else {
		if !bt.IsStruct() {
			a.diags.Errorf(n.Span, "'.' requires a struct operand")
			n.SetResolvedType(types.New(types.Unknown))
			return n
		}
		structType = bt
	}
	if !structType.HasMember(n.Name) {
		a.diags.Errorf(n.Span, "struct %s has no member %q", structType.StructName, n.Name)
		n.SetResolvedType(types.New(types.Unknown))
		return n
	}
	n.Offset = structType.MemberOffset(n.Name)
	n.SetResolvedType(structType.MemberType(n.Name))
	return n
}

// checkLValue reports an error if e does not designate a storage
// location (identifier, *p, a[i], s.m, p->m).
func (a *Analyzer) checkLValue(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident, *ast.Index, *ast.Member:
		return
	case *ast.Unary:
		if n.Op == "*" {
			return
		}
	}
	a.diags.Errorf(e.NodeSpan(), "expression is not assignable")
}
