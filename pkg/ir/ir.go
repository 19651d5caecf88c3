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

// Package ir defines the three-address, alloca/load/store
// intermediate representation: a Module of Functions, each an ordered
// list of basic Blocks ending in exactly one terminator. Opcodes are a
// closed set of named constants dispatched through a single Instr
// shape, since every instruction shares the same (dest, args, labels)
// layout.
package ir

import "github.com/cc89/compiler/pkg/types"

// Opcode identifies an instruction family.
type Opcode int

// Opcodes, grouped by family: arithmetic, compare, memory, control,
// move.
const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpAnd
	OpOr
	OpXor
	OpNeg
	OpNot

	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	OpLoad
	OpStore
	OpAlloca
	OpAddr

	OpBr
	OpBrCond
	OpReturn
	OpCall

	OpMove
)

var opNames = map[Opcode]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpShl: "shl", OpShr: "shr", OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpNeg: "neg", OpNot: "not",
	OpEq: "eq", OpNe: "ne", OpLt: "lt", OpLe: "le", OpGt: "gt", OpGe: "ge",
	OpLoad: "load", OpStore: "store", OpAlloca: "alloca", OpAddr: "addr",
	OpBr: "br", OpBrCond: "br_cond", OpReturn: "return", OpCall: "call",
	OpMove: "move",
}

func (o Opcode) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "<?>"
}

// IsTerminator reports whether o ends a basic block. Every
// well-formed block ends in exactly one terminator.
func (o Opcode) IsTerminator() bool {
	return o == OpBr || o == OpBrCond || o == OpReturn
}

// OperandKind distinguishes the four operand categories.
type OperandKind int

// Operand kinds.
const (
	Const OperandKind = iota
	Value
	Label
	StringRef
)

// Operand is a tagged union over a constant, an SSA value reference, a
// basic-block label, or a .rodata string reference.
type Operand struct {
	Kind OperandKind
	Type *types.Type

	// Const.
	IntConst     int64
	FloatConst   float64
	IsFloatConst bool

	// Value: a (name, version) pair. SSA equality is the pair, never
	// pointer identity.
	Name    string
	Version int

	// Label.
	LabelName string

	// StringRef: index into the owning Module's Strings table.
	StringIndex int
}

// IntOperand constructs an integer constant operand.
func IntOperand(v int64, t *types.Type) Operand {
	return Operand{Kind: Const, Type: t, IntConst: v}
}

// FloatOperand constructs a floating-point constant operand.
func FloatOperand(v float64, t *types.Type) Operand {
	return Operand{Kind: Const, Type: t, FloatConst: v, IsFloatConst: true}
}

// ValueOperand constructs an SSA value reference.
func ValueOperand(name string, version int, t *types.Type) Operand {
	return Operand{Kind: Value, Type: t, Name: name, Version: version}
}

// LabelOperand constructs a basic-block label reference.
func LabelOperand(name string) Operand {
	return Operand{Kind: Label, LabelName: name}
}

// StringOperand constructs a .rodata string reference.
func StringOperand(index int) Operand {
	return Operand{Kind: StringRef, StringIndex: index, Type: types.Pointer(types.Char, 1)}
}

// IsConstZero reports whether op is the integer or float constant 0,
// used by the optimizer's algebraic simplifications.
func (op Operand) IsConstZero() bool {
	return op.Kind == Const && ((!op.IsFloatConst && op.IntConst == 0) || (op.IsFloatConst && op.FloatConst == 0))
}

// IsConstOne reports whether op is the integer or float constant 1.
func (op Operand) IsConstOne() bool {
	return op.Kind == Const && ((!op.IsFloatConst && op.IntConst == 1) || (op.IsFloatConst && op.FloatConst == 1))
}

// Instr is a single IR instruction. Dest is nil for instructions with
// no result (store, br, br_cond, return, and void calls).
type Instr struct {
	Op   Opcode
	Dest *Operand
	Args []Operand
	Type *types.Type

	// Callee is set for OpCall.
	Callee string

	// Labels holds branch targets: one entry for OpBr, two (then, else)
	// for OpBrCond.
	Labels []string
}

// Block is a maximal straight-line instruction sequence with a single
// entry and a single terminator.
type Block struct {
	Name   string
	Instrs []Instr
}

// Terminator returns the block's final instruction, or nil if the
// block is (invalidly) empty.
func (b *Block) Terminator() *Instr {
	if len(b.Instrs) == 0 {
		return nil
	}
	return &b.Instrs[len(b.Instrs)-1]
}

// Param is one IR-level function parameter.
type Param struct {
	Name string
	Type *types.Type
}

// Function owns an ordered list of basic blocks; the first is the
// entry block.
type Function struct {
	Name       string
	Params     []Param
	ReturnType *types.Type
	IsVariadic bool
	Extern     bool
	Blocks     []*Block

	nextTemp    int
	nextVersion map[string]int
}

// NewFunction constructs an empty Function ready for lowering.
func NewFunction(name string, params []Param, ret *types.Type, variadic, extern bool) *Function {
	return &Function{Name: name, Params: params, ReturnType: ret, IsVariadic: variadic, Extern: extern, nextVersion: make(map[string]int)}
}

// NewBlock appends and returns a fresh, empty basic block.
func (f *Function) NewBlock(name string) *Block {
	b := &Block{Name: name}
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewTemp allocates a fresh SSA temporary name (%t0, %t1, ...) from
// the function's monotonic counter.
func (f *Function) NewTemp(t *types.Type) Operand {
	name := "t"
	v := f.nextTemp
	f.nextTemp++
	return ValueOperand(name, v, t)
}

// NewVersion allocates the next SSA version of a named program
// variable (%name.k).
func (f *Function) NewVersion(name string, t *types.Type) Operand {
	v := f.nextVersion[name]
	f.nextVersion[name] = v + 1
	return ValueOperand(name, v, t)
}

// Global is a module-scope variable emitted into `.data`.
type Global struct {
	Name string
	Type *types.Type
	Init int64
}

// Module owns an ordered list of functions plus module-scope globals
// and an interned string table.
type Module struct {
	Functions []*Function
	Globals   []*Global
	Strings   []string
}

// InternString adds s to the module's .rodata table (deduplicating)
// and returns its index.
func (m *Module) InternString(s string) int {
	for i, existing := range m.Strings {
		if existing == s {
			return i
		}
	}
	m.Strings = append(m.Strings, s)
	return len(m.Strings) - 1
}
