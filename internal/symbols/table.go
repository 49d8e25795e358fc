package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Table stores method and field symbols. Like the type table it is
// write-once: built while materializing a snapshot, read-only during
// analysis, so concurrent readers need no locking.
type Table struct {
	methods []MethodSymbol
	fields  []FieldSymbol
}

// NewTable constructs an empty table with index 0 of each arena reserved.
func NewTable() *Table {
	t := &Table{}
	t.methods = append(t.methods, MethodSymbol{})
	t.fields = append(t.fields, FieldSymbol{})
	return t
}

// AddMethod registers a method symbol and returns its id.
func (t *Table) AddMethod(sym MethodSymbol) MethodID {
	lenMethods, err := safecast.Conv[uint32](len(t.methods))
	if err != nil {
		panic(fmt.Errorf("len(methods) overflow: %w", err))
	}
	id := MethodID(lenMethods)
	sym.ID = id
	t.methods = append(t.methods, sym)
	return id
}

// AddField registers a field symbol and returns its id.
func (t *Table) AddField(sym FieldSymbol) FieldID {
	lenFields, err := safecast.Conv[uint32](len(t.fields))
	if err != nil {
		panic(fmt.Errorf("len(fields) overflow: %w", err))
	}
	id := FieldID(lenFields)
	sym.ID = id
	t.fields = append(t.fields, sym)
	return id
}

// Method returns the symbol for an id, or nil for the sentinel and
// out-of-range ids.
func (t *Table) Method(id MethodID) *MethodSymbol {
	if id == NoMethodID || int(id) >= len(t.methods) {
		return nil
	}
	return &t.methods[id]
}

// Field returns the symbol for an id, or nil when invalid.
func (t *Table) Field(id FieldID) *FieldSymbol {
	if id == NoFieldID || int(id) >= len(t.fields) {
		return nil
	}
	return &t.fields[id]
}

// InteropMarker reports whether the method carries a native-interop
// marker. Absent methods report false.
func (t *Table) InteropMarker(id MethodID) bool {
	m := t.Method(id)
	return m != nil && m.Interop
}

// NumMethods returns the number of registered methods.
func (t *Table) NumMethods() int {
	return len(t.methods) - 1
}

// NumFields returns the number of registered fields.
func (t *Table) NumFields() int {
	return len(t.fields) - 1
}
