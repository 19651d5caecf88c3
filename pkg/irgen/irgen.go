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

// Package irgen lowers a type-checked AST into the ir package's
// three-address representation: one lowering function per AST
// construct, threading a "current block" pointer that lowering appends
// to and replaces when a construct opens new blocks. Every local lives
// in an alloca slot; reads and writes go through load/store.
package irgen

import (
	"fmt"

	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/ir"
	"github.com/cc89/compiler/pkg/types"
)

// slot records where a local variable or parameter lives: the address
// operand of its entry-block alloca, plus its element type.
type slot struct {
	addr Operand
	typ  *types.Type
}

// Operand aliases ir.Operand so this file's signatures read naturally.
type Operand = ir.Operand

// Generator lowers one translation unit at a time.
type Generator struct {
	module  *ir.Module
	diags   *diag.Bag
	fn      *ir.Function
	block   *ir.Block
	vars    map[string]slot
	globals map[string]*types.Type

	breakTargets    []string
	continueTargets []string

	blockCounter int
}

// Generate lowers tu into a fresh ir.Module.
func Generate(tu *ast.TranslationUnit, diags *diag.Bag) *ir.Module {
	g := &Generator{module: &ir.Module{}, diags: diags, globals: make(map[string]*types.Type)}
	for _, d := range tu.Decls {
		if v, ok := d.(*ast.VarDecl); ok {
			g.globals[v.Name] = v.Type
			init := int64(0)
			if lit, ok := v.Init.(*ast.Literal); ok && lit.Kind == ast.IntLit {
				init = lit.IntValue
			}
			g.module.Globals = append(g.module.Globals, &ir.Global{Name: v.Name, Type: v.Type, Init: init})
		}
	}
	for _, d := range tu.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok {
			g.lowerFunction(fd)
		}
	}
	return g.module
}

func (g *Generator) label(prefix string) string {
	g.blockCounter++
	return fmt.Sprintf("%s%d", prefix, g.blockCounter)
}

func (g *Generator) emit(i ir.Instr) {
	g.block.Instrs = append(g.block.Instrs, i)
}

func (g *Generator) newBlock(name string) *ir.Block {
	return g.fn.NewBlock(name)
}

func (g *Generator) setBlock(b *ir.Block) {
	g.block = b
}

func (g *Generator) lowerFunction(fd *ast.FuncDecl) {
	params := make([]ir.Param, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = ir.Param{Name: p.Name, Type: p.Type}
	}
	fn := ir.NewFunction(fd.Name, params, fd.ReturnType, fd.IsVariadic, fd.Extern)
	g.module.Functions = append(g.module.Functions, fn)
	if fd.Body == nil {
		return
	}
	g.fn = fn
	g.vars = make(map[string]slot)
	g.breakTargets = nil
	g.continueTargets = nil

	entry := g.newBlock(fd.Name + "_entry")
	g.setBlock(entry)

	for _, p := range fd.Params {
		g.declareLocal(p.Name, p.Type)
		g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{g.vars[p.Name].addr, ir.ValueOperand(p.Name, 0, p.Type)}, Type: p.Type})
	}
	g.collectAndAllocate(fd.Body)

	g.lowerStmt(fd.Body)
	if term := g.block.Terminator(); term == nil || !term.Op.IsTerminator() {
		g.emit(ir.Instr{Op: ir.OpReturn})
	}
}

// collectAndAllocate walks s, finding every VarDecl and emitting its
// alloca in the (already-current) entry block, so every local's slot
// exists before any control flow splits.
func (g *Generator) collectAndAllocate(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Compound:
		for _, sub := range n.Stmts {
			g.collectAndAllocate(sub)
		}
	case *ast.If:
		g.collectAndAllocate(n.Then)
		g.collectAndAllocate(n.Else)
	case *ast.While:
		g.collectAndAllocate(n.Body)
	case *ast.For:
		g.collectAndAllocate(n.Init)
		g.collectAndAllocate(n.Body)
	case *ast.DeclStmt:
		g.declareLocal(n.Decl.Name, n.Decl.Type)
	case *ast.DeclGroup:
		for _, d := range n.Decls {
			g.declareLocal(d.Name, d.Type)
		}
	}
}

func (g *Generator) declareLocal(name string, t *types.Type) {
	if _, exists := g.vars[name]; exists {
		return
	}
	addr := g.fn.NewTemp(t.WithPointer())
	g.emit(ir.Instr{Op: ir.OpAlloca, Dest: &addr, Type: t})
	g.vars[name] = slot{addr: addr, typ: t}
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (g *Generator) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case nil:
		return
	case *ast.Compound:
		for _, sub := range n.Stmts {
			g.lowerStmt(sub)
		}
	case *ast.If:
		g.lowerIf(n)
	case *ast.While:
		g.lowerWhile(n)
	case *ast.For:
		g.lowerFor(n)
	case *ast.Return:
		g.lowerReturn(n)
	case *ast.ExprStmt:
		if n.Expr != nil {
			g.lowerExpr(n.Expr)
		}
	case *ast.DeclStmt:
		g.lowerVarDecl(n.Decl)
	case *ast.DeclGroup:
		for _, d := range n.Decls {
			g.lowerVarDecl(d)
		}
	case *ast.Break:
		if len(g.breakTargets) > 0 {
			target := g.breakTargets[len(g.breakTargets)-1]
			g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{target}})
			g.startDeadBlock()
		}
	case *ast.Continue:
		if len(g.continueTargets) > 0 {
			target := g.continueTargets[len(g.continueTargets)-1]
			g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{target}})
			g.startDeadBlock()
		}
	}
}

// startDeadBlock redirects lowering into a fresh, unreachable block so
// statements after a break/continue/return never land behind a
// terminator. Unreachable-block elimination removes it later.
func (g *Generator) startDeadBlock() {
	g.setBlock(g.newBlock(g.label("dead")))
}

func (g *Generator) lowerVarDecl(d *ast.VarDecl) {
	if d.Init == nil {
		return
	}
	val := g.lowerExpr(d.Init)
	addr := g.vars[d.Name].addr
	g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{addr, val}, Type: d.Type})
}

func (g *Generator) lowerIf(n *ast.If) {
	cond := g.lowerExpr(n.Cond)
	thenB := g.newBlock(g.label("if_then"))
	elseB := g.newBlock(g.label("if_else"))
	endB := g.newBlock(g.label("if_end"))
	g.emit(ir.Instr{Op: ir.OpBrCond, Args: []ir.Operand{cond}, Labels: []string{thenB.Name, elseB.Name}})

	g.setBlock(thenB)
	g.lowerStmt(n.Then)
	if term := g.block.Terminator(); term == nil || !term.Op.IsTerminator() {
		g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{endB.Name}})
	}

	g.setBlock(elseB)
	g.lowerStmt(n.Else)
	if term := g.block.Terminator(); term == nil || !term.Op.IsTerminator() {
		g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{endB.Name}})
	}

	g.setBlock(endB)
}

func (g *Generator) lowerWhile(n *ast.While) {
	condB := g.newBlock(g.label("while_cond"))
	bodyB := g.newBlock(g.label("while_body"))
	endB := g.newBlock(g.label("while_end"))

	g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{condB.Name}})

	g.setBlock(condB)
	cond := g.lowerExpr(n.Cond)
	g.emit(ir.Instr{Op: ir.OpBrCond, Args: []ir.Operand{cond}, Labels: []string{bodyB.Name, endB.Name}})

	g.breakTargets = append(g.breakTargets, endB.Name)
	g.continueTargets = append(g.continueTargets, condB.Name)
	g.setBlock(bodyB)
	g.lowerStmt(n.Body)
	if term := g.block.Terminator(); term == nil || !term.Op.IsTerminator() {
		g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{condB.Name}})
	}
	g.breakTargets = g.breakTargets[:len(g.breakTargets)-1]
	g.continueTargets = g.continueTargets[:len(g.continueTargets)-1]

	g.setBlock(endB)
}

func (g *Generator) lowerFor(n *ast.For) {
	if n.Init != nil {
		g.lowerStmt(n.Init)
	}
	condB := g.newBlock(g.label("for_cond"))
	bodyB := g.newBlock(g.label("for_body"))
	endB := g.newBlock(g.label("for_end"))

	g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{condB.Name}})

	g.setBlock(condB)
	if n.Cond != nil {
		cond := g.lowerExpr(n.Cond)
		g.emit(ir.Instr{Op: ir.OpBrCond, Args: []ir.Operand{cond}, Labels: []string{bodyB.Name, endB.Name}})
	} else {
		g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{bodyB.Name}})
	}

	g.breakTargets = append(g.breakTargets, endB.Name)
	g.continueTargets = append(g.continueTargets, condB.Name)
	g.setBlock(bodyB)
	g.lowerStmt(n.Body)
	if n.Step != nil {
		g.lowerExpr(n.Step)
	}
	if term := g.block.Terminator(); term == nil || !term.Op.IsTerminator() {
		g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{condB.Name}})
	}
	g.breakTargets = g.breakTargets[:len(g.breakTargets)-1]
	g.continueTargets = g.continueTargets[:len(g.continueTargets)-1]

	g.setBlock(endB)
}

func (g *Generator) lowerReturn(n *ast.Return) {
	if n.Value == nil {
		g.emit(ir.Instr{Op: ir.OpReturn})
	} else {
		val := g.lowerExpr(n.Value)
		g.emit(ir.Instr{Op: ir.OpReturn, Args: []ir.Operand{val}})
	}
	g.startDeadBlock()
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// lowerExpr evaluates e for its value.
func (g *Generator) lowerExpr(e ast.Expr) ir.Operand {
	switch n := e.(type) {
	case *ast.Literal:
		return g.lowerLiteral(n)
	case *ast.Ident:
		addr, t := g.addrOf(n.Name, n.ResolvedType())
		return g.load(addr, t)
	case *ast.Binary:
		return g.lowerBinary(n)
	case *ast.Unary:
		return g.lowerUnary(n)
	case *ast.PostfixIncDec:
		return g.lowerPostfixIncDec(n)
	case *ast.Sizeof:
		var sz int
		if n.TypeName != nil {
			sz = n.TypeName.SizeOf()
		} else {
			sz = n.Operand.ResolvedType().SizeOf()
		}
		return ir.IntOperand(int64(sz), types.New(types.Long))
	case *ast.Cast:
		val := g.lowerExpr(n.Operand)
		dst := g.fn.NewTemp(n.TargetType)
		g.emit(ir.Instr{Op: ir.OpMove, Dest: &dst, Args: []ir.Operand{val}, Type: n.TargetType})
		return dst
	case *ast.ImplicitConversion:
		val := g.lowerExpr(n.Operand)
		if val.Type != nil && val.Type.Equals(n.Type) {
			return val
		}
		dst := g.fn.NewTemp(n.Type)
		g.emit(ir.Instr{Op: ir.OpMove, Dest: &dst, Args: []ir.Operand{val}, Type: n.Type})
		return dst
	case *ast.Call:
		return g.lowerCall(n)
	case *ast.Assignment:
		return g.lowerAssignment(n)
	case *ast.Index:
		addr := g.indexAddr(n)
		return g.load(addr, n.ResolvedType())
	case *ast.Member:
		addr := g.memberAddr(n)
		return g.load(addr, n.ResolvedType())
	default:
		return ir.IntOperand(0, types.New(types.Int))
	}
}

func (g *Generator) lowerLiteral(n *ast.Literal) ir.Operand {
	switch n.Kind {
	case ast.IntLit, ast.CharLit:
		return ir.IntOperand(n.IntValue, n.ResolvedType())
	case ast.FloatLit:
		return ir.FloatOperand(n.FloatValue, n.ResolvedType())
	case ast.StringLit:
		idx := g.module.InternString(n.StringValue)
		return ir.StringOperand(idx)
	default:
		return ir.IntOperand(0, types.New(types.Int))
	}
}

func (g *Generator) load(addr ir.Operand, t *types.Type) ir.Operand {
	dst := g.fn.NewTemp(t)
	g.emit(ir.Instr{Op: ir.OpLoad, Dest: &dst, Args: []ir.Operand{addr}, Type: t})
	return dst
}

// addrOf returns the address operand for a named variable, local or
// global, plus its element type.
func (g *Generator) addrOf(name string, fallback *types.Type) (ir.Operand, *types.Type) {
	if s, ok := g.vars[name]; ok {
		return s.addr, s.typ
	}
	if t, ok := g.globals[name]; ok {
		return ir.Operand{Kind: ir.Label, LabelName: name, Type: t.WithPointer()}, t
	}
	return ir.Operand{Kind: ir.Label, LabelName: name, Type: fallback}, fallback
}

// lvalueAddr computes the address an assignment or & should target.
func (g *Generator) lvalueAddr(e ast.Expr) (ir.Operand, *types.Type) {
	switch n := e.(type) {
	case *ast.Ident:
		return g.addrOf(n.Name, n.ResolvedType())
	case *ast.Index:
		return g.indexAddr(n), n.ResolvedType()
	case *ast.Member:
		return g.memberAddr(n), n.ResolvedType()
	case *ast.Unary:
		if n.Op == "*" {
			return g.lowerExpr(n.Operand), n.ResolvedType()
		}
	}
	return ir.IntOperand(0, types.New(types.Unknown)), e.ResolvedType()
}

func (g *Generator) indexAddr(n *ast.Index) ir.Operand {
	var base ir.Operand
	switch b := n.Base.(type) {
	case *ast.Ident:
		if s, ok := g.vars[b.Name]; ok && s.typ.IsArray {
			base = s.addr
		} else if t, ok := g.globals[b.Name]; ok && t.IsArray {
			base = ir.Operand{Kind: ir.Label, LabelName: b.Name, Type: t.WithPointer()}
		} else {
			base = g.lowerExpr(n.Base)
		}
	default:
		base = g.lowerExpr(n.Base)
	}
	idx := g.lowerExpr(n.Index)
	elemSize := int64(1)
	if n.ResolvedType() != nil {
		elemSize = int64(n.ResolvedType().SizeOf())
	}
	scaled := g.scaleIndex(idx, elemSize)
	dst := g.fn.NewTemp(n.ResolvedType().WithPointer())
	g.emit(ir.Instr{Op: ir.OpAdd, Dest: &dst, Args: []ir.Operand{base, scaled}, Type: dst.Type})
	return dst
}

func (g *Generator) scaleIndex(idx ir.Operand, elemSize int64) ir.Operand {
	if elemSize == 1 {
		return idx
	}
	dst := g.fn.NewTemp(idx.Type)
	g.emit(ir.Instr{Op: ir.OpMul, Dest: &dst, Args: []ir.Operand{idx, ir.IntOperand(elemSize, idx.Type)}, Type: idx.Type})
	return dst
}

func (g *Generator) memberAddr(n *ast.Member) ir.Operand {
	var base ir.Operand
	if n.Arrow {
		base = g.lowerExpr(n.Base)
	} else {
		base, _ = g.lvalueAddr(n.Base)
	}
	if n.Offset == 0 {
		return base
	}
	dst := g.fn.NewTemp(n.ResolvedType().WithPointer())
	g.emit(ir.Instr{Op: ir.OpAdd, Dest: &dst, Args: []ir.Operand{base, ir.IntOperand(int64(n.Offset), types.New(types.Long))}, Type: dst.Type})
	return dst
}

func (g *Generator) lowerBinary(n *ast.Binary) ir.Operand {
	if n.Op == "&&" || n.Op == "||" {
		return g.lowerShortCircuit(n)
	}
	left := g.lowerExpr(n.Left)
	right := g.lowerExpr(n.Right)

	lt, rt := n.Left.ResolvedType(), n.Right.ResolvedType()
	if (n.Op == "+" || n.Op == "-") && lt != nil && rt != nil {
		if lt.IsPointer() && rt.IsPointer() && n.Op == "-" {
			// Pointer difference counts elements, not bytes.
			diff := g.fn.NewTemp(n.ResolvedType())
			g.emit(ir.Instr{Op: ir.OpSub, Dest: &diff, Args: []ir.Operand{left, right}, Type: n.ResolvedType()})
			elemSize := int64(lt.Dereferenced().SizeOf())
			if elemSize <= 1 {
				return diff
			}
			dst := g.fn.NewTemp(n.ResolvedType())
			g.emit(ir.Instr{Op: ir.OpDiv, Dest: &dst, Args: []ir.Operand{diff, ir.IntOperand(elemSize, n.ResolvedType())}, Type: n.ResolvedType()})
			return dst
		}
		if lt.IsPointer() && rt.IsIntegral() {
			right = g.scaleIndex(right, int64(lt.Dereferenced().SizeOf()))
		} else if rt.IsPointer() && lt.IsIntegral() {
			left = g.scaleIndex(left, int64(rt.Dereferenced().SizeOf()))
		}
	}

	op := binaryOpcode(n.Op)
	dst := g.fn.NewTemp(n.ResolvedType())
	g.emit(ir.Instr{Op: op, Dest: &dst, Args: []ir.Operand{left, right}, Type: n.ResolvedType()})
	return dst
}

func binaryOpcode(op string) ir.Opcode {
	switch op {
	case "+":
		return ir.OpAdd
	case "-":
		return ir.OpSub
	case "*":
		return ir.OpMul
	case "/":
		return ir.OpDiv
	case "%":
		return ir.OpMod
	case "<<":
		return ir.OpShl
	case ">>":
		return ir.OpShr
	case "&":
		return ir.OpAnd
	case "|":
		return ir.OpOr
	case "^":
		return ir.OpXor
	case "==":
		return ir.OpEq
	case "!=":
		return ir.OpNe
	case "<":
		return ir.OpLt
	case "<=":
		return ir.OpLe
	case ">":
		return ir.OpGt
	case ">=":
		return ir.OpGe
	default:
		return ir.OpAdd
	}
}

// lowerShortCircuit lowers && and || with control flow so the RHS is
// only evaluated when it can affect the result.
func (g *Generator) lowerShortCircuit(n *ast.Binary) ir.Operand {
	shortB := g.newBlock(g.label("logic_short"))
	rhsB := g.newBlock(g.label("logic_rhs"))
	endB := g.newBlock(g.label("logic_end"))
	resultAddr := g.fn.NewTemp(types.New(types.Int).WithPointer())
	g.emit(ir.Instr{Op: ir.OpAlloca, Dest: &resultAddr, Type: types.New(types.Int)})

	left := g.lowerExpr(n.Left)
	if n.Op == "&&" {
		g.emit(ir.Instr{Op: ir.OpBrCond, Args: []ir.Operand{left}, Labels: []string{rhsB.Name, shortB.Name}})
	} else {
		g.emit(ir.Instr{Op: ir.OpBrCond, Args: []ir.Operand{left}, Labels: []string{shortB.Name, rhsB.Name}})
	}

	g.setBlock(shortB)
	shortVal := ir.IntOperand(boolAsInt(n.Op == "||"), types.New(types.Int))
	g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{resultAddr, shortVal}, Type: types.New(types.Int)})
	g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{endB.Name}})

	g.setBlock(rhsB)
	right := g.lowerExpr(n.Right)
	g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{resultAddr, right}, Type: types.New(types.Int)})
	g.emit(ir.Instr{Op: ir.OpBr, Labels: []string{endB.Name}})

	g.setBlock(endB)
	return g.load(resultAddr, types.New(types.Int))
}

func boolAsInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func (g *Generator) lowerUnary(n *ast.Unary) ir.Operand {
	switch n.Op {
	case "&":
		addr, _ := g.lvalueAddr(n.Operand)
		return addr
	case "*":
		addr := g.lowerExpr(n.Operand)
		return g.load(addr, n.ResolvedType())
	case "++", "--":
		addr, t := g.lvalueAddr(n.Operand)
		old := g.load(addr, t)
		op := ir.OpAdd
		if n.Op == "--" {
			op = ir.OpSub
		}
		dst := g.fn.NewTemp(t)
		g.emit(ir.Instr{Op: op, Dest: &dst, Args: []ir.Operand{old, ir.IntOperand(1, t)}, Type: t})
		g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{addr, dst}, Type: t})
		return dst
	case "-":
		val := g.lowerExpr(n.Operand)
		dst := g.fn.NewTemp(n.ResolvedType())
		g.emit(ir.Instr{Op: ir.OpNeg, Dest: &dst, Args: []ir.Operand{val}, Type: n.ResolvedType()})
		return dst
	case "~":
		val := g.lowerExpr(n.Operand)
		dst := g.fn.NewTemp(n.ResolvedType())
		g.emit(ir.Instr{Op: ir.OpNot, Dest: &dst, Args: []ir.Operand{val}, Type: n.ResolvedType()})
		return dst
	case "!":
		val := g.lowerExpr(n.Operand)
		dst := g.fn.NewTemp(types.New(types.Int))
		g.emit(ir.Instr{Op: ir.OpEq, Dest: &dst, Args: []ir.Operand{val, ir.IntOperand(0, val.Type)}, Type: types.New(types.Int)})
		return dst
	default: // unary plus
		return g.lowerExpr(n.Operand)
	}
}

func (g *Generator) lowerPostfixIncDec(n *ast.PostfixIncDec) ir.Operand {
	addr, t := g.lvalueAddr(n.Operand)
	old := g.load(addr, t)
	op := ir.OpAdd
	if n.Op == "--" {
		op = ir.OpSub
	}
	dst := g.fn.NewTemp(t)
	g.emit(ir.Instr{Op: op, Dest: &dst, Args: []ir.Operand{old, ir.IntOperand(1, t)}, Type: t})
	g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{addr, dst}, Type: t})
	return old
}

func (g *Generator) lowerAssignment(n *ast.Assignment) ir.Operand {
	addr, t := g.lvalueAddr(n.Left)
	rhs := g.lowerExpr(n.Right)
	if n.Op != "=" {
		old := g.load(addr, t)
		op := binaryOpcode(n.Op[:len(n.Op)-1])
		dst := g.fn.NewTemp(t)
		g.emit(ir.Instr{Op: op, Dest: &dst, Args: []ir.Operand{old, rhs}, Type: t})
		rhs = dst
	}
	g.emit(ir.Instr{Op: ir.OpStore, Args: []ir.Operand{addr, rhs}, Type: t})
	return rhs
}

func (g *Generator) lowerCall(n *ast.Call) ir.Operand {
	ident, _ := n.Callee.(*ast.Ident)
	name := ""
	if ident != nil {
		name = ident.Name
	}
	args := make([]ir.Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.lowerExpr(a)
	}
	retType := n.ResolvedType()
	if retType == nil || retType.IsVoid() {
		g.emit(ir.Instr{Op: ir.OpCall, Callee: name, Args: args})
		return ir.Operand{}
	}
	dst := g.fn.NewTemp(retType)
	g.emit(ir.Instr{Op: ir.OpCall, Dest: &dst, Callee: name, Args: args, Type: retType})
	return dst
}
