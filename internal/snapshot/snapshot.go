// Package snapshot defines the serialized form of a compilation
// snapshot: the semantic tables, operation trees and embedded source
// text a host exports for offline analysis. The wire format is msgpack
// with an explicit schema version for safe invalidation.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is incremented whenever the payload format changes.
const SchemaVersion uint16 = 1

// ErrSchema is returned when a payload carries an unknown schema version.
var ErrSchema = errors.New("snapshot: unsupported schema version")

// Span mirrors source.Span on the wire.
type Span struct {
	File  uint32
	Start uint32
	End   uint32
}

// File carries one source file's path and content.
type File struct {
	Path    string
	Content []byte
}

// Type is one type symbol. Ids referenced across the payload
// (Interfaces, Containing, Node.Type, ...) are 1-based positions in the
// Types list; 0 means "none", matching the in-memory sentinel.
type Type struct {
	FullName  string
	Special   uint8
	ValueType bool
	Finalizer bool
	Ifaces    []uint32
	Span      Span
}

// Param is one positional method parameter.
type Param struct {
	Name string
	Type uint32
}

// Method is one method symbol; ids are 1-based positions in Methods.
type Method struct {
	Name       string
	Containing uint32
	Params     []Param
	Result     uint32
	Static     bool
	Interop    bool
	Span       Span
}

// Field is one field symbol; ids are 1-based positions in Fields.
type Field struct {
	Name       string
	Containing uint32
	Type       uint32
	Static     bool
	Span       Span
}

// Node is one operation-tree node. Exactly the references meaningful
// for Kind are populated; the rest stay at their zero value.
type Node struct {
	Kind      uint8
	Type      uint32
	Span      Span
	Implicit  bool
	ConstKind uint8
	ConstBool bool

	Method uint32 `msgpack:",omitempty"` // anonymous function, method reference, invocation
	Field  uint32 `msgpack:",omitempty"` // field reference
	Text   string `msgpack:",omitempty"` // literal

	Target   *Node   `msgpack:",omitempty"` // delegate creation, assignment
	Value    *Node   `msgpack:",omitempty"` // return, assignment, throw
	Instance *Node   `msgpack:",omitempty"` // method/field reference, invocation
	Body     *Node   `msgpack:",omitempty"` // anonymous function
	Cond     *Node   `msgpack:",omitempty"` // conditional
	Then     *Node   `msgpack:",omitempty"`
	Else     *Node   `msgpack:",omitempty"`
	Operand  *Node   `msgpack:",omitempty"` // conversion
	Expr     *Node   `msgpack:",omitempty"` // expression statement
	Args     []*Node `msgpack:",omitempty"` // invocation
	Children []*Node `msgpack:",omitempty"` // block
}

// Body binds a method id to its top-level operation block. Roots are
// analyzed; extra bodies only back method-reference resolution.
type Body struct {
	Method uint32
	Root   *Node
}

// Snapshot is the top-level payload.
type Snapshot struct {
	Schema  uint16
	Files   []File
	Types   []Type
	Methods []Method
	Fields  []Field
	Bodies  []Body
	Roots   []Body
}

// Write serializes a snapshot.
func Write(w io.Writer, snap *Snapshot) error {
	if snap.Schema == 0 {
		snap.Schema = SchemaVersion
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Read deserializes a snapshot and checks its schema version.
func Read(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if snap.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, snap.Schema, SchemaVersion)
	}
	return &snap, nil
}
