package fil

import "github.com/cwbudde/fillift/internal/wasmtypes"

// ImportKind classifies what external kind a WasmImport instruction
// binds its source variable as.
type ImportKind int

const (
	ImportGlobal ImportKind = iota
	ImportTable
	ImportMemory
	ImportTag
	ImportFunction
	ImportSuspendingObject
)

// WasmImport backs OpWasmImport. The imported value is identified by the
// instruction's output variable, not by a field here; Signature is populated for
// function/tag imports, where the same JS value may be imported more
// than once under different signatures from different call sites.
type WasmImport struct {
	Kind      ImportKind
	Signature *wasmtypes.Signature
}

// WasmDefineGlobal backs OpWasmDefineGlobal.
type WasmDefineGlobal struct {
	Type    wasmtypes.ValueType
	Mutable bool
}

// WasmDefineTable backs OpWasmDefineTable.
type WasmDefineTable struct {
	ElemType wasmtypes.ValueType
	Min      uint32
	Max      uint32
	HasMax   bool
}

// WasmDefineMemory backs OpWasmDefineMemory.
type WasmDefineMemory struct {
	Min    uint32
	Max    uint32
	HasMax bool
	Shared bool
}

// WasmDefineTag backs OpWasmDefineTag.
type WasmDefineTag struct {
	Signature wasmtypes.Signature
}

// WasmDefineTypeGroup backs OpWasmDefineTypeGroup.
type WasmDefineTypeGroup struct {
	Group wasmtypes.TypeGroup
}

// WasmResolveForwardReference backs OpWasmResolveForwardReference: it
// resolves a Placeholder introduced earlier in the same type group to
// the concrete member now available at Concrete.
type WasmResolveForwardReference struct {
	GroupIndex int
	MemberIdx  int
	Concrete   wasmtypes.TypeRef
}

// WasmDefineDataSegment backs OpWasmDefineDataSegment.
type WasmDefineDataSegment struct {
	Bytes []byte
}

// WasmDefineElementSegment backs OpWasmDefineElementSegment. Active
// false marks a passive segment. For an active segment the first input
// is the table; the remaining inputs (all of them, for a passive
// segment) are the functions referenced by the segment, in order.
type WasmDefineElementSegment struct {
	Active bool
}

// WasmFunctionSignature backs OpWasmBeginFunction.
type WasmFunctionSignature struct {
	Signature wasmtypes.Signature
	ParamRefs []wasmtypes.TypeRef // per-param module-local type ref, only for RefTyped params
}

// WasmBlockSignature backs OpWasmBeginBlock/BeginLoop/BeginIf/BeginTry
// and their reopening forms (begin-else, begin-catch, begin-catch-all
// carry it too so the closing opcode can find the matching type).
type WasmBlockSignature struct {
	Params  []wasmtypes.ValueType
	Results []wasmtypes.ValueType
}

// WasmConstValue backs OpWasmConst.
type WasmConstValue struct {
	Type    wasmtypes.ValueType
	Int     int64
	Float32 float32
	Float64 float64
}

// WasmNumericOp backs OpWasmNumericOp: Mnemonic names a numeric
// instruction independent of its encoding (e.g. "i32.add", "f64.lt"),
// looked up in the opcode table at emission time.
type WasmNumericOp struct {
	Mnemonic string
}

// WasmConvOp backs OpWasmConvOp: a numeric conversion between value
// types, optionally signed and/or saturating.
type WasmConvOp struct {
	From       wasmtypes.ValueType
	To         wasmtypes.ValueType
	Signed     bool
	Saturating bool
}

// WasmReassign backs OpWasmReassign. Unlike every other Wasm opcode it
// resolves its own destination (a local slot or a global index) instead
// of going through the default output-spill path.
type WasmReassign struct {
	TargetIsGlobal bool
}

// WasmMemoryImmediate backs OpWasmMemoryLoad/Store and their atomic
// counterparts: natural alignment as log2(bytes), a static offset, and
// which memory (almost always 0).
type WasmMemoryImmediate struct {
	Type        wasmtypes.ValueType
	Mnemonic    string // e.g. "i32.load", "i64.load8_u", "i32.atomic.store"
	AlignLog2   uint32
	Offset      uint32
	MemoryIndex uint32
}

// WasmBranchTable backs OpWasmBranchTable: Targets are label variables
// resolved via InnerOutputs bindings at the branch's enclosing blocks;
// Default is the fallback label when the index is out of range.
type WasmBranchTable struct {
	Default Variable
	Targets []Variable
}

// WasmCallIndirect backs OpWasmCallIndirect/OpWasmReturnCallIndirect.
type WasmCallIndirect struct {
	Signature wasmtypes.Signature
}

// WasmSimdConstValue backs OpWasmSimdConst: 16 raw v128 bytes.
type WasmSimdConstValue struct {
	Bytes [16]byte
}

// WasmSimdOp backs OpWasmSimdOp, analogous to WasmNumericOp.
type WasmSimdOp struct {
	Mnemonic string
}

// WasmStructNew backs OpWasmStructNew.
type WasmStructNew struct {
	GroupIndex int
	MemberIdx  int
}

// WasmArrayNewFixed backs OpWasmArrayNewFixed.
type WasmArrayNewFixed struct {
	GroupIndex int
	MemberIdx  int
	Count      int
}

// WasmRefNullType backs OpWasmRefNull: the abstract or indexed heap
// type of the null reference produced.
type WasmRefNullType struct {
	HeapType wasmtypes.ValueType
	TypeRef  wasmtypes.TypeRef // only when HeapType == RefTyped
}

// BranchHintValue backs the optional branch-hint annotation a Wasm
// branch instruction may carry for the metadata.code.branch_hint
// custom section.
type BranchHintValue int

const (
	NoBranchHint BranchHintValue = iota
	BranchLikely
	BranchUnlikely
)

// WasmBranchHint backs OpWasmBranch/OpWasmBranchIf's optional hint.
// Label is carried as an ordinary input variable (it resolves through
// InnerOutputs bindings), so this struct only carries the hint.
type WasmBranchHint struct {
	Hint BranchHintValue
}
