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
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/ir"
	"github.com/cc89/compiler/pkg/source"
	"github.com/cc89/compiler/pkg/token"
	"github.com/cc89/compiler/pkg/types"
)

// dumpTokens renders toks as a stable JSON tree: one object per token
// with "kind", "location", and the lexeme.
func dumpTokens(toks []token.Token) string {
	rows := make([]map[string]any, len(toks))
	for i, t := range toks {
		rows[i] = map[string]any{
			"kind":     t.Kind.String(),
			"lexeme":   t.Lexeme,
			"location": locationJSON(t.Span.Start),
		}
	}
	out, _ := json.Marshal(rows)
	return string(out)
}

func locationJSON(loc source.Location) map[string]any {
	return map[string]any{"file": loc.Filename, "line": loc.Line, "column": loc.Column}
}

// dumpAST renders tu as a stable JSON tree, one node per declaration
// with "kind" plus type-specific fields.
func dumpAST(tu *ast.TranslationUnit) string {
	if tu == nil {
		return "null"
	}
	decls := make([]map[string]any, len(tu.Decls))
	for i, d := range tu.Decls {
		decls[i] = astNodeJSON(d)
	}
	out, _ := json.Marshal(map[string]any{"kind": "TranslationUnit", "decls": decls})
	return string(out)
}

func astNodeJSON(n ast.Node) map[string]any {
	if n == nil {
		return nil
	}
	m := map[string]any{"location": locationJSON(n.NodeSpan().Start)}
	switch d := n.(type) {
	case *ast.FuncDecl:
		m["kind"] = "FuncDecl"
		m["name"] = d.Name
		m["extern"] = d.Extern
		m["variadic"] = d.IsVariadic
		params := make([]map[string]any, len(d.Params))
		for i, p := range d.Params {
			params[i] = map[string]any{"name": p.Name, "type": typeString(p.Type)}
		}
		m["params"] = params
		m["returnType"] = typeString(d.ReturnType)
		m["hasBody"] = d.Body != nil
	case *ast.VarDecl:
		m["kind"] = "VarDecl"
		m["name"] = d.Name
		m["type"] = typeString(d.Type)
		m["extern"] = d.Extern
	case *ast.StructDecl:
		m["kind"] = "StructDecl"
		m["name"] = d.Name
	default:
		m["kind"] = fmt.Sprintf("%T", n)
	}
	return m
}

func typeString(t *types.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// dumpIR renders m as a stable JSON tree: one object per function with
// its ordered blocks and instructions.
func dumpIR(m *ir.Module) string {
	if m == nil {
		return "null"
	}
	fns := make([]map[string]any, len(m.Functions))
	for i, fn := range m.Functions {
		blocks := make([]map[string]any, len(fn.Blocks))
		for j, b := range fn.Blocks {
			instrs := make([]string, len(b.Instrs))
			for k, in := range b.Instrs {
				instrs[k] = instrText(in)
			}
			blocks[j] = map[string]any{"name": b.Name, "instrs": instrs}
		}
		fns[i] = map[string]any{
			"kind":   "Function",
			"name":   fn.Name,
			"extern": fn.Extern,
			"blocks": blocks,
		}
	}
	out, _ := json.Marshal(map[string]any{"functions": fns, "globals": m.Globals, "strings": m.Strings})
	return string(out)
}

func instrText(in ir.Instr) string {
	text := in.Op.String()
	if in.Dest != nil {
		text = operandText(*in.Dest) + " = " + text
	}
	for _, a := range in.Args {
		text += " " + operandText(a)
	}
	if in.Callee != "" {
		text += " @" + in.Callee
	}
	for _, l := range in.Labels {
		text += " ->" + l
	}
	return text
}

func operandText(op ir.Operand) string {
	switch op.Kind {
	case ir.Const:
		if op.IsFloatConst {
			return fmt.Sprintf("%v", op.FloatConst)
		}
		return fmt.Sprintf("%d", op.IntConst)
	case ir.Value:
		return fmt.Sprintf("%%%s.%d", op.Name, op.Version)
	case ir.Label:
		return "@" + op.LabelName
	case ir.StringRef:
		return fmt.Sprintf(".LC%d", op.StringIndex)
	default:
		return "?"
	}
}
