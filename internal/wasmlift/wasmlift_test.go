package wasmlift

import (
	"bytes"
	"context"
	"testing"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/wasmtypes"
	"github.com/tetratelabs/wazero"
)

// Scenario S4: i32.const 41, i32.const 1, i32.add, end-of-function
// emits the bytes 0x41 0x29 0x41 0x01 0x6A 0x0B.
func TestScenarioS4ConstAdd(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmBeginFunction,
			Operands: fil.WasmFunctionSignature{Signature: wasmtypes.Signature{Results: []wasmtypes.ValueType{wasmtypes.I32}}},
			Outputs:  []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpWasmConst, Operands: fil.WasmConstValue{Type: wasmtypes.I32, Int: 41}, Outputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpWasmConst, Operands: fil.WasmConstValue{Type: wasmtypes.I32, Int: 1}, Outputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpWasmNumericOp, Operands: fil.WasmNumericOp{Mnemonic: "i32.add"}, Inputs: []fil.Variable{1, 2}, Outputs: []fil.Variable{3}},
		{Index: 4, Opcode: fil.OpWasmEndFunction},
	}
	l := New(nil)
	wasmBytes, imports, err := l.Lift(code)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if len(imports) != 0 {
		t.Fatalf("expected no imports, got %d", len(imports))
	}
	if len(l.functions) != 1 {
		t.Fatalf("expected one function, got %d", len(l.functions))
	}
	want := []byte{0x41, 0x29, 0x41, 0x01, 0x6A, 0x0B}
	if got := l.functions[0].Body; !bytes.Equal(got, want) {
		t.Errorf("function body = % X, want % X", got, want)
	}
	validateWithWazero(t, wasmBytes)
}

// Scenario S5: a branch from a doubly-nested block ([] -> [] signature)
// targets the outer block, encoding br 1 as 0x0C 0x01.
func TestScenarioS5BranchDepth(t *testing.T) {
	emptySig := fil.WasmBlockSignature{}
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmBeginFunction,
			Operands: fil.WasmFunctionSignature{Signature: wasmtypes.Signature{}},
			Outputs:  []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpWasmBeginBlock, Operands: emptySig, InnerOutputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpWasmBeginBlock, Operands: emptySig, InnerOutputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpWasmBranch, Inputs: []fil.Variable{1}},
		{Index: 4, Opcode: fil.OpWasmEndBlock},
		{Index: 5, Opcode: fil.OpWasmEndBlock},
		{Index: 6, Opcode: fil.OpWasmEndFunction},
	}
	l := New(nil)
	wasmBytes, _, err := l.Lift(code)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	body := l.functions[0].Body
	want := []byte{
		opBlock, 0x40, // outer block, empty type
		opBlock, 0x40, // inner block, empty type
		opBr, 0x01, // br 1: targets the outer block
		opEnd, // close inner
		opEnd, // close outer
		opEnd, // end of function
	}
	if !bytes.Equal(body, want) {
		t.Errorf("function body = % X, want % X", body, want)
	}
	validateWithWazero(t, wasmBytes)
}

// Scenario S6: a single type group holding one struct{i32 mutable}
// emits type-section body = ULEB(1) 0x4E ULEB(1) 0x5F ULEB(1) 0x7F 0x01.
func TestScenarioS6StructTypeGroup(t *testing.T) {
	group := wasmtypes.TypeGroup{
		Index: 0,
		Members: []wasmtypes.TypeDescriptor{
			{Kind: wasmtypes.TypeDescStruct, Fields: []wasmtypes.Field{{Type: wasmtypes.I32, Mutable: true}}},
		},
	}
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmDefineTypeGroup, Operands: fil.WasmDefineTypeGroup{Group: group}},
	}
	l := New(nil)
	if _, _, err := l.Lift(code); err != nil {
		t.Fatalf("Lift: %v", err)
	}
	want := []byte{0x01, 0x4E, 0x01, 0x5F, 0x01, 0x7F, 0x01}
	if got := l.typeSectionBody(); !bytes.Equal(got, want) {
		t.Errorf("typeSectionBody() = % X, want % X", got, want)
	}
}

// Testable property #4: Wasm index monotonicity -- imports occupy a
// contiguous prefix, definitions follow in FIL appearance order.
func TestImportIndexMonotonicity(t *testing.T) {
	sig := wasmtypes.Signature{Params: []wasmtypes.ValueType{wasmtypes.I32}, Results: []wasmtypes.ValueType{wasmtypes.I32}}
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmImport, Operands: fil.WasmImport{Kind: fil.ImportFunction, Signature: &sig}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpWasmImport, Operands: fil.WasmImport{Kind: fil.ImportFunction, Signature: &sig}, Outputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpWasmBeginFunction, Operands: fil.WasmFunctionSignature{Signature: sig}, Outputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpWasmEndFunction},
	}
	l := New(nil)
	_, imports, err := l.Lift(code)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(imports))
	}
	idx, err := l.resolveIndex(fil.ImportFunction, 2)
	if err != nil {
		t.Fatalf("resolveIndex: %v", err)
	}
	if idx != 2 {
		t.Errorf("defined function index = %d, want 2 (after the two imports)", idx)
	}
}

// A branch to a label that was never recorded is a lift error.
func TestInvalidBranchIsFatal(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmBeginFunction, Operands: fil.WasmFunctionSignature{Signature: wasmtypes.Signature{}}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpWasmBranch, Inputs: []fil.Variable{99}},
		{Index: 2, Opcode: fil.OpWasmEndFunction},
	}
	if _, _, err := New(nil).Lift(code); err == nil {
		t.Errorf("expected an error for a branch to an unrecorded label")
	}
}

// Testable property #11: accessing memory 0 emits a single alignment
// byte; memory k>0 emits (align|0x40) + leb(k).
func TestMemoryImmediateForms(t *testing.T) {
	mem0 := memoryImmediateBytes(fil.WasmMemoryImmediate{AlignLog2: 2, Offset: 0, MemoryIndex: 0})
	if want := []byte{0x02, 0x00}; !bytes.Equal(mem0, want) {
		t.Errorf("memory 0 immediate = % X, want % X", mem0, want)
	}

	memK := memoryImmediateBytes(fil.WasmMemoryImmediate{AlignLog2: 2, Offset: 4, MemoryIndex: 3})
	want := append([]byte{0x02 | 0x40}, appendLEB32(nil, 3)...)
	want = append(want, appendLEB32(nil, 4)...)
	if !bytes.Equal(memK, want) {
		t.Errorf("memory k>0 immediate = % X, want % X", memK, want)
	}
}

// End-to-end check that a memory load actually lands in a function
// body with the expected opcode and memory-immediate encoding.
func TestMemoryLoadEndToEnd(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmBeginFunction,
			Operands:     fil.WasmFunctionSignature{Signature: wasmtypes.Signature{Params: []wasmtypes.ValueType{wasmtypes.I32}, Results: []wasmtypes.ValueType{wasmtypes.I32}}},
			InnerOutputs: []fil.Variable{1}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpWasmMemoryLoad,
			Operands: fil.WasmMemoryImmediate{Type: wasmtypes.I32, Mnemonic: "i32.load", AlignLog2: 2, Offset: 0, MemoryIndex: 0},
			Inputs:   []fil.Variable{1}, Outputs: []fil.Variable{2}},
		{Index: 2, Opcode: fil.OpWasmReturn, Inputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpWasmEndFunction},
	}
	l := New(nil)
	if _, _, err := l.Lift(code); err != nil {
		t.Fatalf("Lift: %v", err)
	}
	body := l.functions[0].Body
	loadSeq := []byte{0x28, 0x02, 0x00} // i32.load align=2 offset=0
	if !bytes.Contains(body, loadSeq) {
		t.Errorf("function body % X does not contain the expected load encoding % X", body, loadSeq)
	}
	if body[len(body)-1] != opEnd {
		t.Errorf("function body does not end with opEnd: % X", body)
	}
}

// struct.new referencing a type group the module never defined is a
// lift error, not a silent fall-back to type index 0.
func TestStructNewUnknownTypeGroupIsError(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmBeginFunction, Operands: fil.WasmFunctionSignature{Signature: wasmtypes.Signature{}}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpWasmStructNew, Operands: fil.WasmStructNew{GroupIndex: 7, MemberIdx: 0}, Outputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpWasmEndFunction},
	}
	if _, _, err := New(nil).Lift(code); err == nil {
		t.Errorf("expected an error for struct.new referencing an undefined type group")
	}
}

// validateWithWazero decodes and validates the emitted module with an
// independent Wasm runtime (Testable property #8: re-emission preserves
// semantics well enough for a conforming decoder to accept it).
func validateWithWazero(t *testing.T, wasmBytes []byte) {
	t.Helper()
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)
	compiled, err := r.CompileModule(ctx, wasmBytes)
	if err != nil {
		t.Fatalf("wazero rejected emitted module: %v", err)
	}
	defer compiled.Close(ctx)
}
