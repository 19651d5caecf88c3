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

// Package compiler wires the lexer, parser, semantic analyzer, IR
// generator, optimizer, and code generator into a single driver-facing
// entry point: a top-level Compile function orchestrating every stage
// behind one Config struct.
package compiler

import (
	"github.com/cc89/compiler/pkg/ast"
	"github.com/cc89/compiler/pkg/codegen"
	"github.com/cc89/compiler/pkg/diag"
	"github.com/cc89/compiler/pkg/ir"
	"github.com/cc89/compiler/pkg/irgen"
	"github.com/cc89/compiler/pkg/lexer"
	"github.com/cc89/compiler/pkg/optimizer"
	"github.com/cc89/compiler/pkg/parser"
	"github.com/cc89/compiler/pkg/sema"
	"github.com/cc89/compiler/pkg/source"
	"github.com/cc89/compiler/pkg/token"
	log "github.com/sirupsen/logrus"
)

// Process exit codes reported to the driver.
const (
	ExitSuccess           = 0
	ExitCompilationError  = 1
	ExitUsageError        = 2
	ExitIOError           = 3
)

// Config gathers every driver-level knob.
type Config struct {
	OptLevel optimizer.Level
	Warnings map[diag.Category]bool
}

// Result is everything a driver needs to report outcome and, on
// success, write output.
type Result struct {
	Tokens   []token.Token
	AST      *ast.TranslationUnit
	Module   *ir.Module
	Assembly string
	Diags    *diag.Bag
	ExitCode int
}

// Compile runs every stage over src in order. Parsing is always
// attempted even after lexer errors, but semantic analysis (and
// everything after it) is skipped when the parser produced no
// top-level declarations, and IR generation / optimization / codegen
// are skipped once any stage has recorded an error — no assembly is
// ever produced for an ill-formed program.
func Compile(filename string, src []byte, cfg Config) Result {
	diags := diag.NewBag()
	for cat, enabled := range cfg.Warnings {
		diags.SetCategory(cat, enabled)
	}

	file := source.NewFile(filename, src)
	log.Debugf("lexing %s (%d bytes)", filename, len(src))
	lx := lexer.New(file, diags)
	toks := lx.LexAll()

	log.Debug("parsing")
	tu := parser.Parse(toks, diags)
	result := Result{Tokens: toks, AST: tu, Diags: diags}

	if len(tu.Decls) == 0 {
		result.ExitCode = exitCodeFor(diags)
		return result
	}

	log.Debug("running semantic analysis")
	sema.Analyze(tu, diags)
	if diags.HasErrors() {
		result.ExitCode = ExitCompilationError
		return result
	}

	log.Debug("lowering to IR")
	module := irgen.Generate(tu, diags)
	result.Module = module
	if diags.HasErrors() {
		result.ExitCode = ExitCompilationError
		return result
	}

	log.Debugf("optimizing at level %d", cfg.OptLevel)
	optimizer.Run(module, cfg.OptLevel, diags)

	log.Debug("generating assembly")
	result.Assembly = codegen.Generate(module, cfg.OptLevel)
	result.ExitCode = exitCodeFor(diags)
	return result
}

func exitCodeFor(diags *diag.Bag) int {
	if diags.HasErrors() {
		return ExitCompilationError
	}
	return ExitSuccess
}
