// Package typer is the consumed interface of the type inference pass
// that labels every FIL variable with a static type. The inference
// pass itself lives outside this subsystem: this package defines only
// the boundary the Wasm lifter needs, plus a reference in-memory
// implementation used by tests. The IL dumper does not depend on it;
// the JS lifter consults it only when asked to annotate or collect
// type information (the dump-types/collect-types options) or to
// delegate an embedded Wasm module.
package typer

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// StaticType is the coarse classification the Wasm lifter needs in
// order to decide whether a JS-side value may be imported as a given
// Wasm external kind.
type StaticType int

const (
	Unknown StaticType = iota
	JSFunction
	JSGlobalValue
	JSTable
	JSMemory
	JSTag
	JSSuspendingObject
	WasmIndexedRef
)

// String renders the type the way --dump-types annotates a declaration.
func (s StaticType) String() string {
	switch s {
	case JSFunction:
		return "JSFunction"
	case JSGlobalValue:
		return "JSGlobalValue"
	case JSTable:
		return "JSTable"
	case JSMemory:
		return "JSMemory"
	case JSTag:
		return "JSTag"
	case JSSuspendingObject:
		return "JSSuspendingObject"
	case WasmIndexedRef:
		return "WasmIndexedRef"
	default:
		return "unknown"
	}
}

// Info is the Typer's consumed surface.
type Info interface {
	// TypeOf returns the static type assigned to v.
	TypeOf(v fil.Variable) StaticType

	// SignatureOf returns the Wasm signature associated with v (for
	// variables imported/used as functions or tags), if any.
	SignatureOf(v fil.Variable) (wasmtypes.Signature, bool)

	// TypeGroupOf returns the module-local type-group index that
	// defines desc, if this Typer has already resolved one.
	TypeGroupOf(desc wasmtypes.TypeDescriptor) (groupIndex int, ok bool)
}

// StaticInfo is a simple map-backed reference implementation of Info,
// built for tests: the Wasm lifter never constructs one on its own, it
// is always injected by the caller.
type StaticInfo struct {
	Types      map[fil.Variable]StaticType
	Signatures map[fil.Variable]wasmtypes.Signature
	Groups     map[wasmtypes.TypeDescKind]int
}

// NewStaticInfo returns an empty StaticInfo ready to be populated.
func NewStaticInfo() *StaticInfo {
	return &StaticInfo{
		Types:      make(map[fil.Variable]StaticType),
		Signatures: make(map[fil.Variable]wasmtypes.Signature),
		Groups:     make(map[wasmtypes.TypeDescKind]int),
	}
}

func (s *StaticInfo) TypeOf(v fil.Variable) StaticType {
	return s.Types[v]
}

func (s *StaticInfo) SignatureOf(v fil.Variable) (wasmtypes.Signature, bool) {
	sig, ok := s.Signatures[v]
	return sig, ok
}

func (s *StaticInfo) TypeGroupOf(desc wasmtypes.TypeDescriptor) (int, bool) {
	idx, ok := s.Groups[desc.Kind]
	return idx, ok
}
