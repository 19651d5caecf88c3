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

// Package source tracks source-file content and locations within it.
package source

import "fmt"

// File represents a single source file as loaded by the driver. Contents
// are held as runes so column positions line up with Unicode code points
// rather than bytes.
type File struct {
	// Name is the filename reported in diagnostics. It may be rewritten by
	// a `#line` directive partway through lexing, in which case later
	// tokens carry the rewritten name via their own Location rather than
	// mutating this File.
	Name string
	// Contents is the full text of the file.
	Contents []rune
}

// NewFile constructs a File from raw bytes, decoding them as UTF-8 runes.
func NewFile(name string, bytes []byte) *File {
	return &File{Name: name, Contents: []rune(string(bytes))}
}

// Line returns the 1-based line's text, without its trailing newline, or
// "" if the line is out of range. Used to render diagnostic excerpts.
func (f *File) Line(n int) string {
	line := 1
	start := -1
	for i, r := range f.Contents {
		if line == n && start == -1 {
			start = i
		}
		if r == '\n' {
			if line == n {
				return string(f.Contents[start:i])
			}
			line++
		}
	}
	if line == n && start != -1 {
		return string(f.Contents[start:])
	}
	return ""
}

// Location is a (filename, line, column) triple. Lines and columns are
// 1-based. Filename and line/column are tracked independently of byte or
// rune offset because `#line` directives rewrite both without moving the
// physical scan position.
type Location struct {
	Filename string
	Line     int
	Column   int
}

// String renders a location as "<file>:<line>:<col>".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// Span is a half-open range of locations, [Start, End), both within the
// same logical file. Most tokens and AST nodes carry just a Start; Span is
// used where the extent matters (e.g. multi-line constructs in dumps).
type Span struct {
	Start Location
	End   Location
}

// NewSpan builds a Span covering a single location (Start == End).
func NewSpan(loc Location) Span {
	return Span{Start: loc, End: loc}
}
