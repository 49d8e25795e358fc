package optree

// ConstKind classifies a host-computed compile-time constant value.
type ConstKind uint8

const (
	// ConstNone marks an operation without a constant value.
	ConstNone ConstKind = iota
	// ConstBool marks a boolean constant.
	ConstBool
)

// Constant is a compile-time constant value attached to an operation.
// Only literal constants the host computed count; no flow analysis is
// performed on top of them.
type Constant struct {
	Kind ConstKind
	Bool bool // valid when Kind == ConstBool
}

// TrueConstant is the boolean constant true.
func TrueConstant() Constant {
	return Constant{Kind: ConstBool, Bool: true}
}

// FalseConstant is the boolean constant false.
func FalseConstant() Constant {
	return Constant{Kind: ConstBool, Bool: false}
}

// IsTrue reports whether the constant is the boolean true.
func (c Constant) IsTrue() bool {
	return c.Kind == ConstBool && c.Bool
}

// IsBool reports whether the constant is boolean at all.
func (c Constant) IsBool() bool {
	return c.Kind == ConstBool
}
