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

// Package symbols implements the symbol table and scope stack shared
// by the semantic analyzer: an ordered sequence of hash-map frames with
// shadowing, the bottom frame being the global scope. Lookup scans
// innermost to outermost and returns the first hit.
package symbols

import (
	"github.com/cc89/compiler/pkg/source"
	"github.com/cc89/compiler/pkg/types"
)

// Kind distinguishes variables from functions.
type Kind int

// Symbol kinds.
const (
	Variable Kind = iota
	Function
)

// Symbol records everything the semantic analyzer and later stages need
// to know about one declared name.
type Symbol struct {
	Name        string
	Type        *types.Type
	ScopeLevel  int
	Kind        Kind
	DeclaredAt  source.Span
	Used        bool
	IsBuiltin   bool
	IsVariadic  bool
	ParamTypes  []*types.Type
	IsExtern    bool
	HasBody     bool
}

// Scope is one hash-map frame in the scope stack.
type Scope struct {
	level   int
	symbols map[string]*Symbol
}

func newScope(level int) *Scope {
	return &Scope{level: level, symbols: make(map[string]*Symbol)}
}

// Table is the scope stack: an ordered sequence of Scopes, innermost
// last. The bottom entry is the global scope and Pop refuses to remove
// it.
type Table struct {
	stack []*Scope
}

// NewTable constructs a Table with just the (unpoppable) global scope.
func NewTable() *Table {
	return &Table{stack: []*Scope{newScope(0)}}
}

// Push opens a new, innermost scope — called on entry to a compound
// statement, function body, or a for-loop's init clause.
func (t *Table) Push() {
	t.stack = append(t.stack, newScope(len(t.stack)))
}

// Pop closes the innermost scope. It is a no-op (and returns false) if
// only the global scope remains.
func (t *Table) Pop() bool {
	if len(t.stack) <= 1 {
		return false
	}
	t.stack = t.stack[:len(t.stack)-1]
	return true
}

// Level returns the current nesting depth; 0 is global.
func (t *Table) Level() int {
	return len(t.stack) - 1
}

// AtGlobalScope reports whether the innermost scope is the global one.
func (t *Table) AtGlobalScope() bool {
	return len(t.stack) == 1
}

// Declare adds a symbol to the innermost scope. It returns the existing
// symbol and false if name is already declared in that same scope;
// shadowing a binding from an outer scope succeeds and returns
// (nil, true).
func (t *Table) Declare(sym *Symbol) (existing *Symbol, ok bool) {
	top := t.stack[len(t.stack)-1]
	sym.ScopeLevel = top.level
	if prev, dup := top.symbols[sym.Name]; dup {
		return prev, false
	}
	top.symbols[sym.Name] = sym
	return nil, true
}

// Shadows reports whether declaring name in the current (innermost)
// scope would shadow an existing binding from an outer scope, and
// returns that outer Symbol if so.
func (t *Table) Shadows(name string) (*Symbol, bool) {
	for i := len(t.stack) - 2; i >= 0; i-- {
		if s, ok := t.stack[i].symbols[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// Lookup scans from innermost to outermost scope and returns the first
// match.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if s, ok := t.stack[i].symbols[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// LookupLocal looks up name only within the innermost scope.
func (t *Table) LookupLocal(name string) (*Symbol, bool) {
	top := t.stack[len(t.stack)-1]
	s, ok := top.symbols[name]
	return s, ok
}

// UnusedInScope returns every Variable symbol declared in the innermost
// scope whose Used flag is still false, for the unused-variable warning
// emitted on scope exit.
func (t *Table) UnusedInScope() []*Symbol {
	top := t.stack[len(t.stack)-1]
	var out []*Symbol
	for _, s := range top.symbols {
		if s.Kind == Variable && !s.Used && !s.IsBuiltin {
			out = append(out, s)
		}
	}
	return out
}
