package types

import "testing"

func TestTableResolve(t *testing.T) {
	tab := NewTable()
	id := tab.Add(TypeSymbol{FullName: "System.Boolean", Special: SpecialBool, IsValueType: true})

	got, ok := tab.Resolve("System.Boolean")
	if !ok || got != id {
		t.Fatalf("resolve = (%v, %v), want (%v, true)", got, ok, id)
	}
	if _, ok := tab.Resolve("System.Missing"); ok {
		t.Fatalf("absent type must not resolve")
	}
	if !tab.IsBool(id) {
		t.Fatalf("System.Boolean must classify as bool")
	}
}

func TestTableAddDeduplicatesByName(t *testing.T) {
	tab := NewTable()
	a := tab.Add(TypeSymbol{FullName: "System.IntPtr", IsValueType: true})
	b := tab.Add(TypeSymbol{FullName: "System.IntPtr", IsValueType: true})
	if a != b {
		t.Fatalf("same metadata name must intern to one id")
	}
}

func TestTableImplements(t *testing.T) {
	tab := NewTable()
	iface := tab.Add(TypeSymbol{FullName: "System.IDisposable"})
	impl := tab.Add(TypeSymbol{FullName: "App.Resource", Interfaces: []TypeID{iface}})
	plain := tab.Add(TypeSymbol{FullName: "App.Plain"})

	if !tab.Implements(impl, iface) {
		t.Fatalf("Resource must implement IDisposable")
	}
	if tab.Implements(plain, iface) {
		t.Fatalf("Plain must not implement IDisposable")
	}
	if tab.Implements(impl, NoTypeID) {
		t.Fatalf("invalid interface id must never match")
	}
}

func TestTableSentinel(t *testing.T) {
	tab := NewTable()
	if tab.Get(NoTypeID) != nil {
		t.Fatalf("sentinel id must not resolve to a symbol")
	}
	if tab.Equal(NoTypeID, NoTypeID) {
		t.Fatalf("invalid ids are never equal")
	}
	if tab.Len() != 0 {
		t.Fatalf("empty table len = %d", tab.Len())
	}
}
