package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Table stores the type symbols of one compilation snapshot and answers
// the queries rules need. All queries are pure reads over the snapshot;
// once built, a Table is safe for concurrent readers.
type Table struct {
	symbols []TypeSymbol
	byName  map[string]TypeID
}

// NewTable constructs an empty table with index 0 reserved as invalid.
func NewTable() *Table {
	t := &Table{
		byName: make(map[string]TypeID, 32),
	}
	t.symbols = append(t.symbols, TypeSymbol{}) // reserve 0 as invalid sentinel
	return t
}

// Add registers a symbol and returns its id. A repeated full name keeps
// the first registration, matching a compilation where a metadata name
// resolves to one type.
func (t *Table) Add(sym TypeSymbol) TypeID {
	if id, ok := t.byName[sym.FullName]; ok && sym.FullName != "" {
		return id
	}
	lenSymbols, err := safecast.Conv[uint32](len(t.symbols))
	if err != nil {
		panic(fmt.Errorf("len(symbols) overflow: %w", err))
	}
	id := TypeID(lenSymbols)
	sym.ID = id
	t.symbols = append(t.symbols, sym)
	if sym.FullName != "" {
		t.byName[sym.FullName] = id
	}
	return id
}

// Len returns the number of registered types, excluding the sentinel.
func (t *Table) Len() int {
	return len(t.symbols) - 1
}

// Resolve looks a type up by its fully qualified metadata name.
// The second result is false when the compilation has no such type.
func (t *Table) Resolve(fullName string) (TypeID, bool) {
	id, ok := t.byName[fullName]
	return id, ok
}

// Get returns the symbol for an id, or nil for the sentinel and
// out-of-range ids.
func (t *Table) Get(id TypeID) *TypeSymbol {
	if id == NoTypeID || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Equal reports whether two ids denote the same valid type.
func (t *Table) Equal(a, b TypeID) bool {
	return a.IsValid() && a == b
}

// Interfaces returns the interface set of a type.
func (t *Table) Interfaces(id TypeID) []TypeID {
	sym := t.Get(id)
	if sym == nil {
		return nil
	}
	return sym.Interfaces
}

// Implements reports whether the type implements the given interface.
func (t *Table) Implements(id, iface TypeID) bool {
	if !iface.IsValid() {
		return false
	}
	for _, impl := range t.Interfaces(id) {
		if impl == iface {
			return true
		}
	}
	return false
}

// HasFinalizer reports whether the type declares a finalizer.
func (t *Table) HasFinalizer(id TypeID) bool {
	sym := t.Get(id)
	return sym != nil && sym.HasFinalizer
}

// IsValueType reports whether the type is a value type.
func (t *Table) IsValueType(id TypeID) bool {
	sym := t.Get(id)
	return sym != nil && sym.IsValueType
}

// IsBool reports whether the type is the boolean primitive.
func (t *Table) IsBool(id TypeID) bool {
	return t.Get(id).IsBool()
}
