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
package optimizer

import (
	"testing"

	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/ir"
	"github.com/cc89/compiler/pkg/types"
)

func intType() *types.Type { return types.New(types.Int) }

// singleInstrFunc builds a one-block function whose body is exactly
// instrs followed by a return of ret's value, so tests can focus on one
// rewrite at a time.
func singleInstrFunc(instrs []ir.Instr, ret ir.Operand) *ir.Function {
	fn := ir.NewFunction("f", nil, intType(), false, false)
	b := fn.NewBlock("entry")
	b.Instrs = append(b.Instrs, instrs...)
	b.Instrs = append(b.Instrs, ir.Instr{Op: ir.OpReturn, Args: []ir.Operand{ret}, Type: intType()})
	return fn
}

func countOp(fn *ir.Function, op ir.Opcode) int {
	n := 0
	for _, b := range fn.Blocks {
		for _, in := range b.Instrs {
			if in.Op == op {
				n++
			}
		}
	}
	return n
}

// TestConstantFold checks that an arithmetic instruction with two
// constant operands is replaced by a move of the folded value.
func TestConstantFold(t *testing.T) {
	dest := ir.ValueOperand("x", 0, intType())
	fn := singleInstrFunc([]ir.Instr{
		{Op: ir.OpAdd, Dest: &dest, Args: []ir.Operand{ir.IntOperand(2, intType()), ir.IntOperand(3, intType())}, Type: intType()},
	}, dest)

	diags := diag.NewBag()
	if !constantFold(fn, diags) {
		t.Fatal("constantFold reported no change")
	}
	if countOp(fn, ir.OpAdd) != 0 {
		t.Errorf("OpAdd still present after folding 2+3")
	}
	mv := fn.Blocks[0].Instrs[0]
	if mv.Op != ir.OpMove || mv.Args[0].IntConst != 5 {
		t.Errorf("expected a move of constant 5, got %#v", mv)
	}
}

// TestDivisionByZeroNeverFolded checks that division by a constant
// zero is left intact and a warning is recorded.
func TestDivisionByZeroNeverFolded(t *testing.T) {
	dest := ir.ValueOperand("x", 0, intType())
	fn := singleInstrFunc([]ir.Instr{
		{Op: ir.OpDiv, Dest: &dest, Args: []ir.Operand{ir.IntOperand(1, intType()), ir.IntOperand(0, intType())}, Type: intType()},
	}, dest)

	diags := diag.NewBag()
	constantFold(fn, diags)

	if countOp(fn, ir.OpDiv) != 1 {
		t.Errorf("OpDiv was folded away despite dividing by a constant zero")
	}
	if diags.HasErrors() {
		t.Errorf("division by zero should warn, not error: %v", diags.All())
	}
	found := false
	for _, d := range diags.All() {
		if d.Severity == diag.Warning {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning diagnostic, got %v", diags.All())
	}
}

// TestAlgebraicSimplify_AddZero checks x+0 -> x.
func TestAlgebraicSimplify_AddZero(t *testing.T) {
	param := ir.ValueOperand("p", 0, intType())
	dest := ir.ValueOperand("x", 0, intType())
	fn := singleInstrFunc([]ir.Instr{
		{Op: ir.OpAdd, Dest: &dest, Args: []ir.Operand{param, ir.IntOperand(0, intType())}, Type: intType()},
	}, dest)

	if !algebraicSimplify(fn) {
		t.Fatal("algebraicSimplify reported no change for x+0")
	}
	mv := fn.Blocks[0].Instrs[0]
	if mv.Op != ir.OpMove || mv.Args[0].Name != "p" {
		t.Errorf("expected x+0 rewritten to a move of p, got %#v", mv)
	}
}

// TestAlgebraicSimplify_MulByOne checks x*1 -> x.
func TestAlgebraicSimplify_MulByOne(t *testing.T) {
	param := ir.ValueOperand("p", 0, intType())
	dest := ir.ValueOperand("x", 0, intType())
	fn := singleInstrFunc([]ir.Instr{
		{Op: ir.OpMul, Dest: &dest, Args: []ir.Operand{param, ir.IntOperand(1, intType())}, Type: intType()},
	}, dest)

	if !algebraicSimplify(fn) {
		t.Fatal("algebraicSimplify reported no change for x*1")
	}
	mv := fn.Blocks[0].Instrs[0]
	if mv.Op != ir.OpMove || mv.Args[0].Name != "p" {
		t.Errorf("expected x*1 rewritten to a move of p, got %#v", mv)
	}
}

// TestDeadCodeEliminate checks that a pure instruction whose result is
// never read anywhere is removed.
func TestDeadCodeEliminate(t *testing.T) {
	a := ir.ValueOperand("a", 0, intType())
	dead := ir.ValueOperand("dead", 0, intType())
	fn := singleInstrFunc([]ir.Instr{
		{Op: ir.OpAdd, Dest: &dead, Args: []ir.Operand{a, ir.IntOperand(1, intType())}, Type: intType()},
	}, a)

	if !deadCodeEliminate(fn) {
		t.Fatal("deadCodeEliminate reported no change")
	}
	if countOp(fn, ir.OpAdd) != 0 {
		t.Errorf("unused OpAdd instruction survived dead-code elimination")
	}
}

// TestCommonSubexpressionEliminate checks that a repeated pure
// computation within a block is rewritten to reuse the earlier result.
func TestCommonSubexpressionEliminate(t *testing.T) {
	a := ir.ValueOperand("a", 0, intType())
	b := ir.ValueOperand("b", 0, intType())
	t1 := ir.ValueOperand("t", 0, intType())
	t2 := ir.ValueOperand("t", 1, intType())
	fn := ir.NewFunction("f", nil, intType(), false, false)
	blk := fn.NewBlock("entry")
	blk.Instrs = append(blk.Instrs,
		ir.Instr{Op: ir.OpAdd, Dest: &t1, Args: []ir.Operand{a, b}, Type: intType()},
		ir.Instr{Op: ir.OpAdd, Dest: &t2, Args: []ir.Operand{a, b}, Type: intType()},
		ir.Instr{Op: ir.OpReturn, Args: []ir.Operand{t2}, Type: intType()},
	)

	if !commonSubexpressionEliminate(fn) {
		t.Fatal("commonSubexpressionEliminate reported no change")
	}
	ret := blk.Instrs[len(blk.Instrs)-1]
	if ret.Args[0].Name != "t" || ret.Args[0].Version != 0 {
		t.Errorf("return still reads the second add's result, want it rewritten to the first: %#v", ret.Args[0])
	}
}
