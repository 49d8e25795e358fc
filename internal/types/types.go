// Package types models the named types of one compilation snapshot.
// Symbols are identified by fully qualified metadata name plus the
// structural facts the rules need: special-type classification, the
// interface set, value-type-ness and whether a finalizer is declared.
package types

import (
	"oplint/internal/source"
)

// TypeID identifies a type within one Table. 0 is the invalid sentinel.
type TypeID uint32

// NoTypeID marks an absent or unresolved type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to a real type.
func (id TypeID) IsValid() bool {
	return id != NoTypeID
}

// SpecialType classifies types the runtime treats specially.
type SpecialType uint8

const (
	// SpecialNone marks an ordinary type.
	SpecialNone SpecialType = iota
	// SpecialObject is the root reference type.
	SpecialObject
	// SpecialBool is the boolean primitive.
	SpecialBool
	// SpecialVoid is the unit return type.
	SpecialVoid
)

func (s SpecialType) String() string {
	switch s {
	case SpecialNone:
		return "None"
	case SpecialObject:
		return "Object"
	case SpecialBool:
		return "Bool"
	case SpecialVoid:
		return "Void"
	default:
		return "Unknown"
	}
}

// TypeSymbol is one named type in the compilation snapshot.
type TypeSymbol struct {
	ID           TypeID
	FullName     string // fully qualified metadata name
	Special      SpecialType
	IsValueType  bool
	HasFinalizer bool
	Interfaces   []TypeID // interfaces implemented, directly or transitively
	Span         source.Span
}

// IsBool reports whether the type is the boolean primitive.
func (t *TypeSymbol) IsBool() bool {
	return t != nil && t.Special == SpecialBool
}
