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

// Package types implements the C89-subset type system: base scalar
// types, pointers, fixed-size arrays and flat (unpadded) structs, along
// with the compatibility and conversion rules the semantic analyzer
// needs. A type is a single tagged value rather than a class
// hierarchy, so copies are cheap and equality is structural.
package types

import (
	"fmt"
	"strings"
)

// Base identifies the base type category.
type Base int

// Base type constants.
const (
	Void Base = iota
	Char
	Short
	Int
	Long
	Float
	Double
	Struct
	Unknown
)

func (b Base) String() string {
	switch b {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Struct:
		return "struct"
	default:
		return "<unknown>"
	}
}

// integerRank orders integer base types from narrowest to widest for the
// usual arithmetic conversions and for narrowing-warning detection.
var integerRank = map[Base]int{Char: 0, Short: 1, Int: 2, Long: 3}

// Member describes one field of a struct type, in declaration order.
type Member struct {
	Name string
	Type *Type
}

// Type is a single value describing a C89-subset type: a base category,
// a pointer depth, optional array-ness, and (for structs) a name plus an
// ordered member list. An array-of-pointers type has both PointerDepth > 0
// and IsArray true.
type Type struct {
	Base         Base
	PointerDepth int
	IsArray      bool
	ArraySize    int // 0 denotes an unsized array
	StructName   string
	Members      []Member
}

// New constructs a plain base type with no pointer/array qualification.
func New(base Base) *Type {
	return &Type{Base: base}
}

// Pointer constructs a pointer-to-base type with the given indirection
// depth (1 for T*, 2 for T**, ...).
func Pointer(base Base, depth int) *Type {
	return &Type{Base: base, PointerDepth: depth}
}

// Array constructs an array-of-base type with the given element count (0
// for an unsized array).
func Array(base Base, size int) *Type {
	return &Type{Base: base, IsArray: true, ArraySize: size}
}

// NewStruct constructs a named struct type from an ordered member list.
func NewStruct(name string, members []Member) *Type {
	return &Type{Base: Struct, StructName: name, Members: members}
}

// WithPointer returns a copy of t with one additional level of pointer
// indirection. Used when lowering "&expr".
func (t *Type) WithPointer() *Type {
	c := *t
	c.PointerDepth++
	return &c
}

// Dereferenced returns a copy of t with one level of pointer indirection
// removed; it is the caller's responsibility to check IsPointer first.
func (t *Type) Dereferenced() *Type {
	c := *t
	c.PointerDepth--
	return &c
}

// Decayed returns the pointer-to-element type an array decays to in any
// context other than sizeof or address-of.
func (t *Type) Decayed() *Type {
	c := *t
	c.IsArray = false
	c.ArraySize = 0
	c.PointerDepth++
	return &c
}

// IsUnknown reports whether t is the error-recovery type given to
// expressions that already failed to resolve.
func (t *Type) IsUnknown() bool {
	return t.Base == Unknown
}

// IsPointer reports whether t has at least one level of pointer
// indirection.
func (t *Type) IsPointer() bool {
	return t.PointerDepth > 0
}

// IsVoid reports whether t is exactly void (no pointer, no array).
func (t *Type) IsVoid() bool {
	return t.Base == Void && t.PointerDepth == 0 && !t.IsArray
}

// IsVoidPointer reports whether t is void* (void**, etc. count too:
// assignability only requires Base==Void with depth>=1 on one side).
func (t *Type) IsVoidPointer() bool {
	return t.Base == Void && t.PointerDepth > 0
}

// IsIntegral reports whether t is an unqualified integer base type.
func (t *Type) IsIntegral() bool {
	if t.PointerDepth > 0 || t.IsArray {
		return false
	}
	switch t.Base {
	case Char, Short, Int, Long:
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is an unqualified floating base type.
func (t *Type) IsFloating() bool {
	if t.PointerDepth > 0 || t.IsArray {
		return false
	}
	return t.Base == Float || t.Base == Double
}

// IsArithmetic reports whether t is integral or floating.
func (t *Type) IsArithmetic() bool {
	return t.IsIntegral() || t.IsFloating()
}

// IsStruct reports whether t is a (non-pointer, non-array) struct value.
func (t *Type) IsStruct() bool {
	return t.Base == Struct && t.PointerDepth == 0 && !t.IsArray
}

// Equals reports structural equality; struct types compare by name.
func (t *Type) Equals(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Base != o.Base || t.PointerDepth != o.PointerDepth ||
		t.IsArray != o.IsArray || t.ArraySize != o.ArraySize {
		return false
	}
	if t.Base == Struct {
		return t.StructName == o.StructName
	}
	return true
}

// CompatibleWith reports whether a value of type o is assignable to t:
// identical base+depth+array; or both arithmetic; or one side is void*
// and the other any pointer; or identical struct name.
func (t *Type) CompatibleWith(o *Type) bool {
	// An Unknown operand already produced a diagnostic; reporting a
	// conversion failure on top of it would just cascade.
	if t.IsUnknown() || o.IsUnknown() {
		return true
	}
	if t.Equals(o) {
		return true
	}
	if t.IsArithmetic() && o.IsArithmetic() {
		return true
	}
	if t.IsPointer() && o.IsPointer() && (t.IsVoidPointer() || o.IsVoidPointer()) {
		return true
	}
	if t.IsStruct() && o.IsStruct() {
		return t.StructName == o.StructName
	}
	return false
}

// IsNarrowingTo reports whether converting t -> target can lose
// information: any float->integer conversion or any wider-integer->
// narrower-integer conversion.
func (t *Type) IsNarrowingTo(target *Type) bool {
	if t.IsFloating() && target.IsIntegral() {
		return true
	}
	if t.IsIntegral() && target.IsIntegral() {
		return integerRank[t.Base] > integerRank[target.Base]
	}
	return false
}

// MemberType returns the type of the named member, or nil if t is not a
// struct or has no such member.
func (t *Type) MemberType(name string) *Type {
	for _, m := range t.Members {
		if m.Name == name {
			return m.Type
		}
	}
	return nil
}

// HasMember reports whether t has a member with the given name.
func (t *Type) HasMember(name string) bool {
	return t.MemberType(name) != nil
}

// MemberOffset returns the byte offset of the named member, computed as
// the sum of the sizes of all preceding members (no padding). Returns
// -1 if there is no such member.
func (t *Type) MemberOffset(name string) int {
	offset := 0
	for _, m := range t.Members {
		if m.Name == name {
			return offset
		}
		offset += m.Type.SizeOf()
	}
	return -1
}

// baseSize returns the size, in bytes, of a scalar base type with no
// pointer or array qualification.
func baseSize(b Base) int {
	switch b {
	case Char:
		return 1
	case Short:
		return 2
	case Int, Float:
		return 4
	case Long, Double:
		return 8
	default:
		return 8 // pointers and struct tags that fall through
	}
}

// SizeOf returns the size in bytes of t, used for pointer arithmetic
// scaling, stack slot sizing, and struct layout.
func (t *Type) SizeOf() int {
	if t.PointerDepth > 0 {
		if t.IsArray {
			n := t.ArraySize
			if n == 0 {
				n = 1
			}
			return n * 8
		}
		return 8
	}
	if t.IsArray {
		n := t.ArraySize
		if n == 0 {
			n = 1
		}
		return n * baseSize(t.Base)
	}
	if t.Base == Struct {
		total := 0
		for _, m := range t.Members {
			total += m.Type.SizeOf()
		}
		if total == 0 {
			return 8
		}
		return total
	}
	return baseSize(t.Base)
}

// String renders t the way a diagnostic message would reference it, e.g.
// "int", "float*", "char**", "int[10]".
func (t *Type) String() string {
	var sb strings.Builder
	if t.Base == Struct {
		fmt.Fprintf(&sb, "struct %s", t.StructName)
	} else {
		sb.WriteString(t.Base.String())
	}
	sb.WriteString(strings.Repeat("*", t.PointerDepth))
	if t.IsArray {
		if t.ArraySize > 0 {
			fmt.Fprintf(&sb, "[%d]", t.ArraySize)
		} else {
			sb.WriteString("[]")
		}
	}
	return sb.String()
}
