// Package wasmtypes is the small, shared vocabulary of WebAssembly value
// and type-group shapes needed by both the Typer boundary
// (internal/typer) and the Wasm binary lifter (internal/wasmlift). It
// exists only to break the otherwise-circular dependency between those
// two packages; it carries no lifting logic.
package wasmtypes

// ValueType is a WebAssembly value type, numeric or reference, as
// needed by the type section and by memory/SIMD/reference-type
// encodings.
type ValueType int

const (
	I32 ValueType = iota
	I64
	F32
	F64
	V128
	FuncRef
	ExternRef
	AnyRef
	EqRef
	I31Ref
	StructRef
	ArrayRef
	ExnRef
	NoneRef
	NoExternRef
	NoFuncRef
	NoExnRef
	// RefTyped marks an indexed reference type; its type reference
	// travels out of band on the operand that uses it (e.g.
	// fil.WasmFunctionSignature.ParamRefs, fil.WasmRefNullType.TypeRef),
	// since ValueType alone is a flat enum.
	RefTyped
)

// HeapTypeByte is the fixed byte table for abstract heap types.
var HeapTypeByte = map[ValueType]byte{
	ExternRef:   0x6F,
	FuncRef:     0x70,
	AnyRef:      0x6E,
	EqRef:       0x6D,
	I31Ref:      0x6C,
	StructRef:   0x6B,
	ArrayRef:    0x6A,
	ExnRef:      0x69,
	NoneRef:     0x71,
	NoExternRef: 0x72,
	NoFuncRef:   0x73,
	NoExnRef:    0x74,
}

// Signature is a Wasm function type: ordered input types to ordered
// output types.
type Signature struct {
	Params  []ValueType
	Results []ValueType
}

// Equal reports whether two signatures describe the same shape, used
// for signature de-duplication.
func (s Signature) Equal(o Signature) bool {
	if len(s.Params) != len(o.Params) || len(s.Results) != len(o.Results) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range s.Results {
		if s.Results[i] != o.Results[i] {
			return false
		}
	}
	return true
}

// TypeDescKind distinguishes the three Wasm GC type-group member shapes.
type TypeDescKind int

const (
	TypeDescArray TypeDescKind = iota
	TypeDescStruct
	TypeDescSignature
)

// Field is one struct field or array element type, with its mutability.
type Field struct {
	Type    ValueType
	Mutable bool
}

// TypeDescriptor is one member of a type group: an array, struct, or
// signature definition.
// Self- and forward-referential members within one group are modeled
// with Placeholder: a TypeDescriptor may reference another member of the
// same group by TypeRef before that member itself has been resolved.
type TypeDescriptor struct {
	Kind      TypeDescKind
	Fields    []Field    // TypeDescArray (len 1), TypeDescStruct (len N)
	Signature Signature  // TypeDescSignature
	GroupRefs []TypeRef  // members of the same group this descriptor refers to, if any
}

// TypeRef is a stable handle into a type arena, resolved to a concrete
// module-local index only at emission time.
type TypeRef int

// Placeholder is the sentinel TypeRef used before a forward reference
// is resolved; -1 never resolves to a valid index.
const Placeholder TypeRef = -1

// TypeGroup is an ordered cluster of mutually-referential TypeDescriptors
// emitted together.
type TypeGroup struct {
	Index   int
	Members []TypeDescriptor
}
