// Package symbols models the method and field symbols of one compilation
// snapshot: ordered parameter lists, return types, containing types and
// native-interop markers.
package symbols

import (
	"oplint/internal/source"
	"oplint/internal/types"
)

// MethodID identifies a method within one Table. 0 is the invalid sentinel.
type MethodID uint32

// FieldID identifies a field within one Table. 0 is the invalid sentinel.
type FieldID uint32

// NoMethodID marks an absent method.
const NoMethodID MethodID = 0

// NoFieldID marks an absent field.
const NoFieldID FieldID = 0

// IsValid reports whether the id refers to a real method.
func (id MethodID) IsValid() bool {
	return id != NoMethodID
}

// IsValid reports whether the id refers to a real field.
func (id FieldID) IsValid() bool {
	return id != NoFieldID
}

// Param is one positional method parameter.
type Param struct {
	Name string
	Type types.TypeID
}

// MethodSymbol is one method in the compilation snapshot.
type MethodSymbol struct {
	ID         MethodID
	Name       string
	Containing types.TypeID
	Params     []Param
	Result     types.TypeID
	IsStatic   bool
	// Interop marks a method declared as a native entry point
	// (DllImport-style declarations).
	Interop bool
	Span    source.Span
}

// FieldSymbol is one field in the compilation snapshot.
type FieldSymbol struct {
	ID         FieldID
	Name       string
	Containing types.TypeID
	Type       types.TypeID
	IsStatic   bool
	Span       source.Span
}
