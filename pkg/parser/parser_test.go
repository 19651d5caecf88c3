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
package parser

import (
	"testing"

	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/lexer"
	"github.com/cc89/compiler/pkg/source"
)

// parseReturnExpr parses `int main(){return <expr>;}` and returns the
// expression under the return statement, along with the diagnostics
// collected while parsing.
func parseReturnExpr(t *testing.T, expr string) (ast.Expr, *diag.Bag) {
	t.Helper()
	src := "int main(){return " + expr + ";}"
	diags := diag.NewBag()
	file := source.NewFile("t.c", []byte(src))
	toks := lexer.New(file, diags).LexAll()
	tu := Parse(toks, diags)
	if len(tu.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(tu.Decls))
	}
	fn, ok := tu.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("unexpected decl shape for %q", src)
	}
	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected a return statement, got %T", fn.Body.Stmts[0])
	}
	return ret.Value, diags
}

// TestPrecedence checks that for every pair of operators (a, b) with
// prec(a) < prec(b), "x a y b z" parses with a as the root operator.
func TestPrecedence(t *testing.T) {
	pairs := []struct{ lo, hi string }{
		{"||", "&&"},
		{"&&", "=="},
		{"==", "<"},
		{"<", "<<"},
		{"<<", "+"},
		{"+", "*"},
	}
	for _, p := range pairs {
		expr, diags := parseReturnExpr(t, "x "+p.lo+" y "+p.hi+" z")
		if diags.HasErrors() {
			t.Fatalf("%s/%s: unexpected errors: %v", p.lo, p.hi, diags.All())
		}
		bin, ok := expr.(*ast.Binary)
		if !ok {
			t.Fatalf("%s/%s: root is %T, not *ast.Binary", p.lo, p.hi, expr)
		}
		if bin.Op != p.lo {
			t.Errorf("%s/%s: root op = %q, want %q", p.lo, p.hi, bin.Op, p.lo)
		}
	}
}

// TestLeftAssociativity checks "a - b - c" parses as "((a - b) - c)",
// and likewise for the other same-precedence operators in the table.
func TestLeftAssociativity(t *testing.T) {
	for _, op := range []string{"-", "+", "*", "/", "%"} {
		expr, diags := parseReturnExpr(t, "a "+op+" b "+op+" c")
		if diags.HasErrors() {
			t.Fatalf("%s: unexpected errors: %v", op, diags.All())
		}
		outer, ok := expr.(*ast.Binary)
		if !ok || outer.Op != op {
			t.Fatalf("%s: root is %#v, want a %q binary", op, expr, op)
		}
		inner, ok := outer.Left.(*ast.Binary)
		if !ok || inner.Op != op {
			t.Fatalf("%s: left child is %#v, want a %q binary", op, outer.Left, op)
		}
		if _, ok := inner.Left.(*ast.Ident); !ok {
			t.Errorf("%s: innermost left operand is %T, want *ast.Ident", op, inner.Left)
		}
		if c, ok := outer.Right.(*ast.Ident); !ok || c.Name != "c" {
			t.Errorf("%s: outer right operand is %#v, want ident c", op, outer.Right)
		}
	}
}

// TestErrorRecovery checks that a malformed declaration does not stop
// the parser from reporting subsequent, well-formed declarations in
// the same translation unit.
func TestErrorRecovery(t *testing.T) {
	src := "int bad( { return 1; } int good(){return 2;}"
	diags := diag.NewBag()
	file := source.NewFile("t.c", []byte(src))
	toks := lexer.New(file, diags).LexAll()
	tu := Parse(toks, diags)

	if !diags.HasErrors() {
		t.Fatalf("expected at least one diagnostic for the malformed declaration")
	}
	var sawGood bool
	for _, d := range tu.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name == "good" {
			sawGood = true
		}
	}
	if !sawGood {
		t.Errorf("parser failed to recover and parse the well-formed decl after the malformed one; decls: %#v", tu.Decls)
	}
}
