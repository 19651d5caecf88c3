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
package codegen

import (
	"strings"
	"testing"

	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/irgen"
	"github.com/cc89/compiler/pkg/lexer"
	"github.com/cc89/compiler/pkg/optimizer"
	"github.com/cc89/compiler/pkg/parser"
	"github.com/cc89/compiler/pkg/sema"
	"github.com/cc89/compiler/pkg/source"
)

func generateAsm(t *testing.T, src string, level optimizer.Level) string {
	t.Helper()
	diags := diag.NewBag()
	file := source.NewFile("t.c", []byte(src))
	toks := lexer.New(file, diags).LexAll()
	tu := parser.Parse(toks, diags)
	sema.Analyze(tu, diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors for %q: %v", src, diags.All())
	}
	m := irgen.Generate(tu, diags)
	if diags.HasErrors() {
		t.Fatalf("irgen reported errors for %q: %v", src, diags.All())
	}
	optimizer.Run(m, level, diags)
	return Generate(m, level)
}

// TestPrologueEpilogueShape checks that a function with locals gets a
// standard SysV stack frame, 16-byte aligned, and a matching epilogue.
func TestPrologueEpilogueShape(t *testing.T) {
	asm := generateAsm(t, `int main(){int x=1;int y=2;return x+y;}`, optimizer.O1)
	if !strings.Contains(asm, "pushq %rbp") || !strings.Contains(asm, "movq %rsp, %rbp") {
		t.Errorf("missing standard prologue:\n%s", asm)
	}
	if !strings.Contains(asm, "movq %rbp, %rsp") || !strings.Contains(asm, "popq %rbp") || !strings.Contains(asm, "ret") {
		t.Errorf("missing standard epilogue:\n%s", asm)
	}
}

// TestCallOverflowArgsStackPushWithAlignment checks SysV argument
// handling for a call with more than six arguments: the seventh
// argument is pushed, with padding inserted to keep %rsp 16-byte
// aligned across the call, and %al is zeroed before every call.
func TestCallOverflowArgsStackPushWithAlignment(t *testing.T) {
	src := `int seven(int a,int b,int c,int d,int e,int f,int g){return g;} int main(){return seven(1,2,3,4,5,6,7);}`
	asm := generateAsm(t, src, optimizer.O1)

	if !strings.Contains(asm, "subq $8, %rsp") {
		t.Errorf("expected 8-byte alignment padding before the overflow push:\n%s", asm)
	}
	if !strings.Contains(asm, "pushq %rax") {
		t.Errorf("expected the seventh argument pushed onto the stack:\n%s", asm)
	}
	if !strings.Contains(asm, "addq $16, %rsp") {
		t.Errorf("expected %%rsp restored by 16 (8 padding + 8 pushed arg) after the call:\n%s", asm)
	}
	if !strings.Contains(asm, "xorb %al, %al") {
		t.Errorf("expected %%al zeroed before the call:\n%s", asm)
	}
	if !strings.Contains(asm, "call seven") || strings.Contains(asm, "call seven@PLT") {
		t.Errorf("expected a direct call to the locally defined function seven, not @PLT:\n%s", asm)
	}
	if !strings.Contains(asm, "16(%rbp)") {
		t.Errorf("expected seven's seventh parameter read from its incoming stack slot at 16(%%rbp):\n%s", asm)
	}
}

// TestExternCallUsesPLT checks that calling an extern function emits
// the @PLT call form.
func TestExternCallUsesPLT(t *testing.T) {
	src := `extern int printf(char*,...); int main(){printf("hi\n");return 0;}`
	asm := generateAsm(t, src, optimizer.O1)
	if !strings.Contains(asm, "call printf@PLT") {
		t.Errorf("expected call printf@PLT:\n%s", asm)
	}
}

// --- peephole rule coverage -------------------------------------------------

func TestPeephole_SelfMoveEliminated(t *testing.T) {
	out := peephole([]string{"\tmovq %rax, %rax", "\tret"})
	for _, l := range out {
		if l == "\tmovq %rax, %rax" {
			t.Errorf("self-move survived peephole: %v", out)
		}
	}
}

func TestPeephole_ZeroAddSubEliminated(t *testing.T) {
	out := peephole([]string{"\taddq $0, %rax", "\tsubq $0, %rcx", "\tret"})
	for _, l := range out {
		if strings.Contains(l, "$0,") {
			t.Errorf("zero add/sub survived peephole: %v", out)
		}
	}
}

func TestPeephole_ImulByPowerOfTwoBecomesShift(t *testing.T) {
	out := peephole([]string{"\timulq $8, %rax", "\tret"})
	joined := strings.Join(out, "\n")
	if strings.Contains(joined, "imulq $8,") {
		t.Errorf("imulq $8 survived peephole: %v", out)
	}
	if !strings.Contains(joined, "shlq $3, %rax") {
		t.Errorf("expected imulq $8 rewritten to shlq $3: %v", out)
	}
}

func TestPeephole_RoundTripMoveDropped(t *testing.T) {
	out := peephole([]string{"\tmovq -8(%rbp), %rax", "\tmovq %rax, -8(%rbp)", "\tret"})
	if len(out) != 1 || out[0] != "\tret" {
		t.Errorf("expected the round-trip move pair fully dropped, got %v", out)
	}
}

func TestPeephole_RedundantReloadDropped(t *testing.T) {
	out := peephole([]string{"\tmovq %rax, -8(%rbp)", "\tmovq -8(%rbp), %rax", "\tret"})
	if len(out) != 2 || out[0] != "\tmovq %rax, -8(%rbp)" || out[1] != "\tret" {
		t.Errorf("expected only the redundant reload dropped, got %v", out)
	}
}
