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
package sema

import (
	"testing"

	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/lexer"
	"github.com/cc89/compiler/pkg/parser"
	"github.com/cc89/compiler/pkg/source"
	"github.com/cc89/compiler/pkg/types"
)

func analyze(t *testing.T, src string) (*ast.TranslationUnit, *diag.Bag) {
	t.Helper()
	diags := diag.NewBag()
	file := source.NewFile("t.c", []byte(src))
	toks := lexer.New(file, diags).LexAll()
	tu := parser.Parse(toks, diags)
	Analyze(tu, diags)
	return tu, diags
}

func mainBody(t *testing.T, tu *ast.TranslationUnit) *ast.Compound {
	t.Helper()
	for _, d := range tu.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name == "main" {
			return fn.Body
		}
	}
	t.Fatal("no main() found")
	return nil
}

// TestScopeShadow checks that "{ int x; { char x; } }" resolves the
// inner x to the inner (char) declaration, and that outer statements
// still see the outer (int) declaration.
func TestScopeShadow(t *testing.T) {
	src := `int main(){int x; char y; { char x; y = x; } x = 1; return 0;}`
	tu, diags := analyze(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.All())
	}
	body := mainBody(t, tu)

	inner := body.Stmts[2].(*ast.Compound)
	innerAssign := inner.Stmts[1].(*ast.ExprStmt).Expr.(*ast.Assignment)
	innerX := innerAssign.Right.(*ast.Ident)
	if innerX.ResolvedType().Base != types.Char {
		t.Errorf("inner x resolved to base %v, want Char", innerX.ResolvedType().Base)
	}

	outerAssign := body.Stmts[3].(*ast.ExprStmt).Expr.(*ast.Assignment)
	outerX := outerAssign.Left.(*ast.Ident)
	if outerX.ResolvedType().Base != types.Int {
		t.Errorf("outer x resolved to base %v, want Int", outerX.ResolvedType().Base)
	}
}

// TestRedeclarationDetection checks that two declarations of the same
// name in the same scope produce exactly one error, and that its
// location matches the second declaration.
func TestRedeclarationDetection(t *testing.T) {
	src := `int main(){int x; int x; return 0;}`
	tu, diags := analyze(t, src)

	if diags.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1 (diags: %v)", diags.ErrorCount(), diags.All())
	}

	body := mainBody(t, tu)
	second := body.Stmts[1].(*ast.DeclStmt)
	var found bool
	for _, d := range diags.All() {
		if d.Severity == diag.Error {
			found = d.Span == second.Decl.Span
		}
	}
	if !found {
		t.Errorf("redeclaration error span does not match the second declaration's span")
	}
}

// TestMultiDeclaratorScope checks that `int a, b;` declares every
// declarator in the enclosing scope, not a throwaway inner one.
func TestMultiDeclaratorScope(t *testing.T) {
	src := `int main(){int a, b; a = 1; b = a + 2; return b;}`
	_, diags := analyze(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.All())
	}
}

// TestUndeclaredIdentifierSingleError checks that an unresolved name
// produces exactly one error, with no conversion-failure cascade from
// its Unknown recovery type.
func TestUndeclaredIdentifierSingleError(t *testing.T) {
	for _, src := range []string{
		`int main(){return x;}`,
		`int main(){int y = x; return y;}`,
	} {
		_, diags := analyze(t, src)
		if diags.ErrorCount() != 1 {
			t.Errorf("%q: error count = %d, want 1 (diags: %v)", src, diags.ErrorCount(), diags.All())
		}
	}
}

// TestTypeCheckSoundness checks that well-typed programs produce zero
// errors and ill-typed ones produce at least one.
func TestTypeCheckSoundness(t *testing.T) {
	wellTyped := []string{
		`int main(){int x = 1; return x;}`,
		`int main(){int a, b; a = 1; b = 2; return a + b;}`,
		`int main(){int *p; int x; p = &x; *p = 2; return *p;}`,
		`struct P { int x; int y; }; int main(){struct P p; p.x = 1; return p.x;}`,
		`int main(){int a[10]; a[0] = 5; return a[0];}`,
		`int f(int a, int b){return a + b;} int main(){return f(1, 2);}`,
	}
	for _, src := range wellTyped {
		_, diags := analyze(t, src)
		if diags.HasErrors() {
			t.Errorf("expected zero errors for %q, got %v", src, diags.All())
		}
	}

	illTyped := []string{
		`int main(){return x;}`,                     // undeclared identifier
		`int main(){int x; int x; return 0;}`,        // redeclaration
		`void f(){} int main(){int x = f(); return 0;}`, // void used as a value
		`int main(){1 = 2; return 0;}`,               // non-lvalue assignment
		`struct P { int x; }; int main(){struct P p; return p.z;}`, // unknown member
		`int f(int a){return a;} int main(){return f(1, 2);}`,      // wrong arity
	}
	for _, src := range illTyped {
		_, diags := analyze(t, src)
		if !diags.HasErrors() {
			t.Errorf("expected at least one error for %q, got none", src)
		}
	}
}
