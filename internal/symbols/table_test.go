package symbols

import (
	"testing"

	"oplint/internal/types"
)

func TestTableMethods(t *testing.T) {
	tab := NewTable()
	id := tab.AddMethod(MethodSymbol{
		Name:    "NativeOpen",
		Result:  types.TypeID(3),
		Interop: true,
	})

	m := tab.Method(id)
	if m == nil || m.Name != "NativeOpen" {
		t.Fatalf("method lookup failed: %+v", m)
	}
	if !tab.InteropMarker(id) {
		t.Fatalf("interop marker lost")
	}
	if tab.InteropMarker(NoMethodID) {
		t.Fatalf("sentinel must not carry a marker")
	}
	if tab.Method(MethodID(99)) != nil {
		t.Fatalf("out-of-range id must return nil")
	}
}

func TestTableFields(t *testing.T) {
	tab := NewTable()
	id := tab.AddField(FieldSymbol{Name: "handle", Type: types.TypeID(2)})
	f := tab.Field(id)
	if f == nil || f.Name != "handle" {
		t.Fatalf("field lookup failed: %+v", f)
	}
	if tab.Field(NoFieldID) != nil {
		t.Fatalf("sentinel field must be nil")
	}
}
