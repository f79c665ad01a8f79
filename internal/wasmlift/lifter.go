// Package wasmlift implements the Wasm binary lifter (C3): a multi-pass
// compiler from the embedded Wasm-subset of a fil.Code range into a
// valid .wasm byte stream. The pass split mirrors a compiler split
// across several files by instruction category (expressions,
// statements, functions), adapted here to binary emission instead of a
// bytecode VM.
package wasmlift

import (
	"fmt"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
	"github.com/cwbudde/fillift/internal/leb128"
	"github.com/cwbudde/fillift/internal/typer"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// localSlot is one entry of a function's local-slot table (Invariant
// W-locals): once assigned it never changes variable or type.
type localSlot struct {
	Variable fil.Variable
	Type     wasmtypes.ValueType
}

// branchHintEntry is one recorded (hint, offset-in-body) pair destined
// for the metadata.code.branch_hint custom section.
type branchHintEntry struct {
	Hint   fil.BranchHintValue
	Offset int
}

// FunctionInfo is the per-function state the emission pass accumulates.
type FunctionInfo struct {
	Signature   wasmtypes.Signature
	Body        []byte
	Locals      []localSlot
	BranchHints []branchHintEntry
	Output      fil.Variable

	// Labels maps a Wasm label variable to the outer-block depth recorded
	// at its point of definition (Invariant W-branch).
	Labels map[fil.Variable]int

	depth      int // current nesting depth while emitting this function's body
	varToSlot  map[fil.Variable]int
	paramCount int

	// pendingResults tracks the most recently produced output
	// variable(s), capped at len(Signature.Results): when the body falls
	// off the end with no explicit wasm-return, these stand in for the
	// implicit multi-value return.
	pendingResults []fil.Variable
}

// wasmVT is a local alias kept short for the many local-slot/operand
// type parameters threaded through the emission pass.
type wasmVT = wasmtypes.ValueType

// recordProduced appends v to the function's pending-result window,
// capped at the number of declared results.
func (fn *FunctionInfo) recordProduced(v fil.Variable) {
	n := len(fn.Signature.Results)
	if n == 0 {
		return
	}
	fn.pendingResults = append(fn.pendingResults, v)
	if len(fn.pendingResults) > n {
		fn.pendingResults = fn.pendingResults[len(fn.pendingResults)-n:]
	}
}

// importEntry is one de-duplicated import recorded by the import
// analysis pass.
type importEntry struct {
	Kind      fil.ImportKind
	Source    fil.Variable
	Signature *wasmtypes.Signature
}

func (e importEntry) key() string {
	sig := ""
	if e.Signature != nil {
		sig = signatureKey(*e.Signature)
	}
	return fmt.Sprintf("%d:%d:%s", e.Kind, e.Source, sig)
}

type globalDef struct {
	Type    wasmtypes.ValueType
	Mutable bool
	Init    fil.Variable
}

type tableDef struct {
	ElemType wasmtypes.ValueType
	Min, Max uint32
	HasMax   bool
}

type memoryDef struct {
	Min, Max uint32
	HasMax   bool
	Shared   bool
}

type tagDef struct {
	Signature wasmtypes.Signature
}

type elementSegment struct {
	Active  bool
	Table   int
	Funcs   []int
}

// Lifter is C3's lifting state, matching spec's Wasm Lifter state
// field-for-field. A fresh Lifter is constructed per embedded Wasm
// block by internal/jslift; it is never reused across programs.
type Lifter struct {
	ti typer.Info

	signatures []wasmtypes.Signature
	sigIndex   map[string]int

	typeGroups      []wasmtypes.TypeGroup
	typeDescToIndex map[string]int
	forwardRefs     map[string]wasmtypes.TypeRef

	imports    []importEntry
	importKeys map[string]int

	globals   []globalDef
	tables    []tableDef
	memories  []memoryDef
	tags      []tagDef
	functions []*FunctionInfo

	exports []Export

	dataSegments    [][]byte
	elementSegments []elementSegment

	currentFunction *FunctionInfo
	exprWriter      map[fil.Variable][]byte

	// currentIndex is the index of the instruction presently being
	// emitted by emitFunctions, kept up to date so resolveIndex /
	// branchDepthFor / the unhandled-opcode paths can attach it to a
	// filerr.Error without threading the index through every call site.
	currentIndex int
	code         fil.Code

	// moduleConsts caches the byte encoding of module-level constant
	// producers (global/table initializers), captured during the import
	// pass since those instructions sit outside any function body and
	// the emission pass only walks instructions inside one.
	moduleConsts map[fil.Variable][]byte

	// varKind records which index space a non-local variable belongs to,
	// populated by the import pass and by module-level define opcodes, so
	// resolveIndex can look it up without re-scanning the instructions.
	varKind map[fil.Variable]fil.ImportKind
}

// New constructs a Lifter consuming ti for signature/type-group
// information. ti may be nil for inputs that never require type lookup
// (e.g. a Wasm block with no imports or GC types).
func New(ti typer.Info) *Lifter {
	return &Lifter{
		ti:              ti,
		sigIndex:        make(map[string]int),
		typeDescToIndex: make(map[string]int),
		forwardRefs:     make(map[string]wasmtypes.TypeRef),
		importKeys:      make(map[string]int),
		exprWriter:      make(map[fil.Variable][]byte),
		moduleConsts:    make(map[fil.Variable][]byte),
		varKind:         make(map[fil.Variable]fil.ImportKind),
	}
}

// ImportBinding pairs one recorded Wasm import with the JS-side import
// object field name a host must supply it under (the same name the
// import section encodes for that slot).
type ImportBinding struct {
	Variable fil.Variable
	Name     string
}

// Lift runs the four-pass pipeline over code (a begin-wasm-module ...
// end-wasm-module instruction range, boundaries excluded by the
// caller) and returns the assembled module bytes plus the ordered list
// of source variables the host must bind as imports.
func (l *Lifter) Lift(code fil.Code) ([]byte, []ImportBinding, error) {
	l.code = code
	if err := l.analyzeImports(code); err != nil {
		return nil, nil, err
	}
	l.assignTypeIndices()
	l.assignSignatureIndices()
	if err := l.emitFunctions(code); err != nil {
		return nil, nil, err
	}
	bytes := l.assembleSections()

	kindCounts := map[fil.ImportKind]int{}
	imported := make([]ImportBinding, len(l.imports))
	for i, im := range l.imports {
		name := Export{Kind: importExportKind(im.Kind), IsImport: true, Index: kindCounts[im.Kind]}.name()
		kindCounts[im.Kind]++
		imported[i] = ImportBinding{Variable: im.Source, Name: name}
	}
	return bytes, imported, nil
}

// signatureKey renders a Signature to a stable map key for
// de-duplication.
func signatureKey(s wasmtypes.Signature) string {
	b := make([]byte, 0, len(s.Params)+len(s.Results)+1)
	for _, p := range s.Params {
		b = append(b, byte(p))
	}
	b = append(b, '|')
	for _, r := range s.Results {
		b = append(b, byte(r))
	}
	return string(b)
}

// signatureIndex returns s's module-local index, registering it if
// this is the first time it has been seen (signature de-duplication).
func (l *Lifter) signatureIndex(s wasmtypes.Signature) int {
	k := signatureKey(s)
	if idx, ok := l.sigIndex[k]; ok {
		return l.userDefinedTypeCount() + idx
	}
	idx := len(l.signatures)
	l.signatures = append(l.signatures, s)
	l.sigIndex[k] = idx
	return l.userDefinedTypeCount() + idx
}

// resolveIndex implements Invariant W-indices: the first kind-matching
// slot referencing variable, imports searched before definitions.
func (l *Lifter) resolveIndex(kind fil.ImportKind, v fil.Variable) (int, error) {
	n := 0
	for _, im := range l.imports {
		if im.Kind == kind {
			if im.Source == v {
				return n, nil
			}
			n++
		}
	}
	switch kind {
	case fil.ImportFunction:
		for i, fn := range l.functions {
			if fn.Output == v {
				return n + i, nil
			}
		}
	case fil.ImportGlobal:
		for i, g := range l.globals {
			if g.Init == v {
				return n + i, nil
			}
		}
	}
	return 0, filerr.NewInCode(filerr.FailedIndexLookup, l.code, l.currentIndex,
		"no %v slot for %s", kind, v)
}

func appendLEB32(dst []byte, x uint32) []byte {
	return append(dst, leb128.EncodeUint64(uint64(x))...)
}

func appendSLEB32(dst []byte, x int32) []byte {
	return append(dst, leb128.EncodeInt64(int64(x))...)
}
