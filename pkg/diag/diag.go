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

// Package diag implements the diagnostic collector shared by every
// compiler stage: an append-only bag of severity-tagged, span-carrying
// records, plus the renderer that formats them for the terminal.
package diag

import (
	"fmt"
	"strings"

	"github.com/cc89/compiler/pkg/source"
)

// Severity classifies a Diagnostic.
type Severity int

// Severity values, ordered error > warning > note so sorting by severity
// puts the most important diagnostics first.
const (
	Error Severity = iota
	Warning
	Note
)

// String renders a Severity the way it appears in the one-line format
// ("<file>:<line>:<col>: <severity>: <message>").
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Category names the optional warning category a Diagnostic belongs to.
// Only Warning-severity diagnostics carry a non-empty Category; it is
// used by Bag.Enabled to implement -W/-Wno-.
type Category string

// Warning categories recognised by -W / -Wno-.
const (
	CategoryUnused      Category = "unused"
	CategoryConversion  Category = "conversion"
	CategorySignCompare Category = "sign-compare"
	CategoryShadow      Category = "shadow"
)

// Diagnostic is a single reported issue.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     source.Span
	Category Category
	// Notes are secondary diagnostics attached to this one, e.g. pointing
	// at a prior declaration in a redeclaration error.
	Notes []Diagnostic
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped anywhere Go code expects one.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span.Start, d.Severity, d.Message)
}

// Bag is an append-only diagnostic collector threaded by reference through
// every pipeline stage. It owns the strings of every diagnostic it holds
// and caps the number of errors recorded, leaving later errors
// silently dropped so that a pathological input cannot exhaust memory
// while still letting the stage run to completion for better recovery.
type Bag struct {
	diags    []Diagnostic
	errCount int
	// MaxErrors caps the number of Error-severity diagnostics retained.
	// Zero means "use the default" (100).
	MaxErrors int
	// enabled tracks which warning categories are active. A category
	// absent from the map defaults to enabled.
	enabled map[Category]bool
}

// NewBag constructs an empty Bag with the default error cap.
func NewBag() *Bag {
	return &Bag{MaxErrors: 100, enabled: make(map[Category]bool)}
}

// SetCategory enables or disables a warning category, implementing -W
// <name> / --Wno <name>.
func (b *Bag) SetCategory(c Category, enabled bool) {
	b.enabled[c] = enabled
}

// Enabled reports whether warnings in the given category should be
// recorded. Categories not explicitly toggled default to enabled.
func (b *Bag) Enabled(c Category) bool {
	if v, ok := b.enabled[c]; ok {
		return v
	}
	return true
}

func (b *Bag) cap() int {
	if b.MaxErrors <= 0 {
		return 100
	}
	return b.MaxErrors
}

// Add records a diagnostic, subject to the error cap and to warning
// category filtering.
func (b *Bag) Add(d Diagnostic) {
	if d.Severity == Warning && d.Category != "" && !b.Enabled(d.Category) {
		return
	}
	if d.Severity == Error {
		if b.errCount >= b.cap() {
			return
		}
		b.errCount++
	}
	b.diags = append(b.diags, d)
}

// Errorf appends an Error-severity diagnostic.
func (b *Bag) Errorf(span source.Span, format string, args ...any) {
	b.Add(Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...), Span: span})
}

// Warnf appends a Warning-severity diagnostic in the given category.
func (b *Bag) Warnf(span source.Span, category Category, format string, args ...any) {
	b.Add(Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...), Span: span, Category: category})
}

// Notef appends a standalone Note-severity diagnostic.
func (b *Bag) Notef(span source.Span, format string, args ...any) {
	b.Add(Diagnostic{Severity: Note, Message: fmt.Sprintf(format, args...), Span: span})
}

// All returns every diagnostic recorded so far, in insertion order.
func (b *Bag) All() []Diagnostic {
	return b.diags
}

// ErrorCount returns the number of Error-severity diagnostics recorded
// (capped at MaxErrors).
func (b *Bag) ErrorCount() int {
	return b.errCount
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	return b.errCount > 0
}

// RenderOptions controls Render's output.
type RenderOptions struct {
	// Color enables ANSI color escapes.
	Color bool
	// File resolves a diagnostic's filename to its source text for the
	// excerpt+caret lines. Nil disables excerpts.
	File func(filename string) *source.File
}

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

func colorFor(s Severity) string {
	switch s {
	case Error:
		return ansiRed
	case Warning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

// Render formats all diagnostics in the Bag as the one-line-per-diagnostic
// format above, optionally followed by a source excerpt and
// caret indicator, with ANSI color when opts.Color is set.
func Render(diags []Diagnostic, opts RenderOptions) string {
	var sb strings.Builder

	for _, d := range diags {
		renderOne(&sb, d, opts, 0)
	}

	return sb.String()
}

func renderOne(sb *strings.Builder, d Diagnostic, opts RenderOptions, indent int) {
	prefix := strings.Repeat("  ", indent)
	if opts.Color {
		fmt.Fprintf(sb, "%s%s%s:%s %s%s:%s %s\n", prefix,
			ansiBold, d.Span.Start, ansiReset,
			colorFor(d.Severity), d.Severity, ansiReset, d.Message)
	} else {
		fmt.Fprintf(sb, "%s%s: %s: %s\n", prefix, d.Span.Start, d.Severity, d.Message)
	}

	if opts.File != nil {
		if f := opts.File(d.Span.Start.Filename); f != nil {
			line := f.Line(d.Span.Start.Line)
			if line != "" {
				fmt.Fprintf(sb, "%s%s\n", prefix, line)
				col := d.Span.Start.Column
				if col < 1 {
					col = 1
				}
				fmt.Fprintf(sb, "%s%s^\n", prefix, strings.Repeat(" ", col-1))
			}
		}
	}

	for _, n := range d.Notes {
		renderOne(sb, n, opts, indent+1)
	}
}
