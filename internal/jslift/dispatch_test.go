package jslift

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/fillift/internal/defuse"
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
	"github.com/cwbudde/fillift/internal/typer"
	"github.com/cwbudde/fillift/internal/wasmtypes"
	"github.com/gkampitakis/go-snaps/snaps"
)

func mustValidate(t *testing.T, code fil.Code) fil.Code {
	t.Helper()
	if err := code.Validate(); err != nil {
		t.Fatalf("invalid fixture code: %v", err)
	}
	return code
}

func liftToString(t *testing.T, code fil.Code) string {
	t.Helper()
	out, err := New(Config{}, code, defuse.NewLinearScan(code)).LiftCode()
	if err != nil {
		t.Fatalf("LiftCode: %v", err)
	}
	return out
}

func TestDispatchIfElse(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpLoadBoolean, Operands: fil.BooleanLiteral{Value: true}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginIf, Inputs: []fil.Variable{0}},
		{Index: 2, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "then"}, Outputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 4, Opcode: fil.OpBeginElse},
		{Index: 5, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "else"}, Outputs: []fil.Variable{2}},
		{Index: 6, Opcode: fil.OpPrint, Inputs: []fil.Variable{2}},
		{Index: 7, Opcode: fil.OpEndIf},
	})
	snaps.MatchSnapshot(t, "if_else", liftToString(t, code))
}

func TestDispatchSwitchFallthroughAndDefault(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 1}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginSwitch, Inputs: []fil.Variable{0}},
		{Index: 2, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 1}, Outputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpBeginSwitchCase, Operands: fil.SwitchCase{FallsThrough: true}, Inputs: []fil.Variable{1}},
		{Index: 4, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "one"}, Outputs: []fil.Variable{2}},
		{Index: 5, Opcode: fil.OpPrint, Inputs: []fil.Variable{2}},
		{Index: 6, Opcode: fil.OpEndSwitchCase, Operands: fil.SwitchCase{FallsThrough: true}},
		{Index: 7, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 2}, Outputs: []fil.Variable{3}},
		{Index: 8, Opcode: fil.OpBeginSwitchCase, Inputs: []fil.Variable{3}},
		{Index: 9, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "two"}, Outputs: []fil.Variable{4}},
		{Index: 10, Opcode: fil.OpPrint, Inputs: []fil.Variable{4}},
		{Index: 11, Opcode: fil.OpEndSwitchCase},
		{Index: 12, Opcode: fil.OpBeginSwitchCase, Operands: fil.SwitchCase{IsDefault: true}},
		{Index: 13, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "default"}, Outputs: []fil.Variable{5}},
		{Index: 14, Opcode: fil.OpPrint, Inputs: []fil.Variable{5}},
		{Index: 15, Opcode: fil.OpEndSwitchCase},
		{Index: 16, Opcode: fil.OpEndSwitch},
	})
	snaps.MatchSnapshot(t, "switch_fallthrough_and_default", liftToString(t, code))
}

func TestDispatchWhileLoop(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpLoadBoolean, Operands: fil.BooleanLiteral{Value: true}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginWhileLoopHeader, Inputs: []fil.Variable{0}},
		{Index: 2, Opcode: fil.OpBeginWhileLoopBody},
		{Index: 3, Opcode: fil.OpLoopBreak},
		{Index: 4, Opcode: fil.OpEndWhileLoop},
	})
	snaps.MatchSnapshot(t, "while_loop", liftToString(t, code))
}

func TestDispatchDoWhileLoop(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginDoWhileLoopHeader},
		{Index: 1, Opcode: fil.OpBeginDoWhileLoopBody},
		{Index: 2, Opcode: fil.OpLoopContinue},
		{Index: 3, Opcode: fil.OpLoadBoolean, Operands: fil.BooleanLiteral{Value: false}, Outputs: []fil.Variable{0}},
		{Index: 4, Opcode: fil.OpEndDoWhileLoop, Inputs: []fil.Variable{0}},
	})
	snaps.MatchSnapshot(t, "do_while_loop", liftToString(t, code))
}

func TestDispatchClassicForLoop(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginForLoopInitializer},
		{Index: 1, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 0}, Outputs: []fil.Variable{0}},
		{Index: 2, Opcode: fil.OpBeginForLoopCondition},
		{Index: 3, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 10}, Outputs: []fil.Variable{1}},
		{Index: 4, Opcode: fil.OpBinaryOperation, Operands: fil.BinaryOperation{Operator: "<"}, Inputs: []fil.Variable{0, 1}, Outputs: []fil.Variable{2}},
		{Index: 5, Opcode: fil.OpBeginForLoopAfterthought},
		{Index: 6, Opcode: fil.OpPostfixOperation, Operands: fil.PostfixOperation{Operator: "++"}, Inputs: []fil.Variable{0}, Outputs: []fil.Variable{0}},
		{Index: 7, Opcode: fil.OpBeginForLoopBody},
		{Index: 8, Opcode: fil.OpPrint, Inputs: []fil.Variable{0}},
		{Index: 9, Opcode: fil.OpEndForLoop},
	})
	snaps.MatchSnapshot(t, "classic_for_loop", liftToString(t, code))
}

func TestDispatchForInLoop(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpCreateObject, Operands: fil.ObjectDestructure{}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginForInLoop, Inputs: []fil.Variable{0}, InnerOutputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpEndForInLoop},
	})
	snaps.MatchSnapshot(t, "for_in_loop", liftToString(t, code))
}

func TestDispatchForOfLoop(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpCreateArray, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginForOfLoop, Inputs: []fil.Variable{0}, InnerOutputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpEndForOfLoop},
	})
	snaps.MatchSnapshot(t, "for_of_loop", liftToString(t, code))
}

func TestDispatchRepeatLoop(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 5}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginRepeatLoop, Inputs: []fil.Variable{0}, InnerOutputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpEndRepeatLoop},
	})
	snaps.MatchSnapshot(t, "repeat_loop", liftToString(t, code))
}

func TestDispatchTryCatchFinally(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginTry},
		{Index: 1, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "boom"}, Outputs: []fil.Variable{0}},
		{Index: 2, Opcode: fil.OpThrow, Inputs: []fil.Variable{0}},
		{Index: 3, Opcode: fil.OpBeginCatch, InnerOutputs: []fil.Variable{1}},
		{Index: 4, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 5, Opcode: fil.OpBeginFinally},
		{Index: 6, Opcode: fil.OpLoadString, Operands: fil.StringLiteral{Value: "cleanup"}, Outputs: []fil.Variable{2}},
		{Index: 7, Opcode: fil.OpPrint, Inputs: []fil.Variable{2}},
		{Index: 8, Opcode: fil.OpEndTryCatch},
	})
	snaps.MatchSnapshot(t, "try_catch_finally", liftToString(t, code))
}

func TestDispatchWith(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpCreateObject, Operands: fil.ObjectDestructure{}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginWith, Inputs: []fil.Variable{0}},
		{Index: 2, Opcode: fil.OpLoadUndefined, Outputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 4, Opcode: fil.OpEndWith},
	})
	snaps.MatchSnapshot(t, "with_statement", liftToString(t, code))
}

// Covers the instance/static/private scope axis crossed with the
// method/getter/setter kind axis, plus a constructor body referencing
// its parameter via this.
func TestDispatchClassMembers(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginClassDefinition, Operands: fil.ClassDefinition{Name: "Widget"}, Outputs: []fil.Variable{0}},

		{Index: 1, Opcode: fil.OpBeginClassConstructor, InnerOutputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpLoadThis, Outputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpSetProperty, Operands: fil.PropertyAccess{Property: "value"}, Inputs: []fil.Variable{2, 1}},
		{Index: 4, Opcode: fil.OpEndClassConstructor},

		{
			Index:    5,
			Opcode:   fil.OpBeginClassMember,
			Operands: fil.ClassMemberSignature{Member: fil.ClassMember{Scope: fil.ClassMemberInstance, Kind: fil.ClassMemberMethod}, Name: "getValue"},
		},
		{Index: 6, Opcode: fil.OpLoadThis, Outputs: []fil.Variable{3}},
		{Index: 7, Opcode: fil.OpGetProperty, Operands: fil.PropertyAccess{Property: "value"}, Inputs: []fil.Variable{3}, Outputs: []fil.Variable{4}},
		{Index: 8, Opcode: fil.OpReturn, Inputs: []fil.Variable{4}},
		{Index: 9, Opcode: fil.OpEndClassMember},

		{
			Index:    10,
			Opcode:   fil.OpBeginClassMember,
			Operands: fil.ClassMemberSignature{Member: fil.ClassMember{Scope: fil.ClassMemberStatic, Kind: fil.ClassMemberMethod}, Name: "create"},
		},
		{Index: 11, Opcode: fil.OpReturn},
		{Index: 12, Opcode: fil.OpEndClassMember},

		{
			Index:    13,
			Opcode:   fil.OpBeginClassMember,
			Operands: fil.ClassMemberSignature{Member: fil.ClassMember{Scope: fil.ClassMemberPrivate, Kind: fil.ClassMemberMethod}, Name: "secret"},
		},
		{Index: 14, Opcode: fil.OpReturn},
		{Index: 15, Opcode: fil.OpEndClassMember},

		{
			Index:    16,
			Opcode:   fil.OpBeginClassMember,
			Operands: fil.ClassMemberSignature{Member: fil.ClassMember{Scope: fil.ClassMemberInstance, Kind: fil.ClassMemberGetter}, Name: "size"},
		},
		{Index: 17, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 1}, Outputs: []fil.Variable{5}},
		{Index: 18, Opcode: fil.OpReturn, Inputs: []fil.Variable{5}},
		{Index: 19, Opcode: fil.OpEndClassMember},

		{
			Index:        20,
			Opcode:       fil.OpBeginClassMember,
			Operands:     fil.ClassMemberSignature{Member: fil.ClassMember{Scope: fil.ClassMemberInstance, Kind: fil.ClassMemberSetter}, Name: "size"},
			InnerOutputs: []fil.Variable{6},
		},
		{Index: 21, Opcode: fil.OpPrint, Inputs: []fil.Variable{6}},
		{Index: 22, Opcode: fil.OpEndClassMember},

		{Index: 23, Opcode: fil.OpEndClassDefinition},
	})
	snaps.MatchSnapshot(t, "class_members", liftToString(t, code))
}

// Covers every FunctionKind variant functionHeader branches on.
// FunctionConstructor is otherwise only reached through
// OpBeginClassConstructor's own handleClass path, never handleFunction;
// it is exercised directly here since it is still a named member of
// the FunctionKind family.
func TestDispatchFunctionKindFamily(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionPlain, Name: "plain"}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpEndFunction},

		{Index: 2, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionArrow}, Outputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpEndFunction},

		{Index: 4, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionGenerator, Name: "gen"}, Outputs: []fil.Variable{2}},
		{Index: 5, Opcode: fil.OpEndFunction},

		{Index: 6, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionAsync, Name: "doAsync"}, Outputs: []fil.Variable{3}},
		{Index: 7, Opcode: fil.OpEndFunction},

		{Index: 8, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionAsyncArrow}, Outputs: []fil.Variable{4}},
		{Index: 9, Opcode: fil.OpEndFunction},

		{Index: 10, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionAsyncGenerator, Name: "agen"}, Outputs: []fil.Variable{5}},
		{Index: 11, Opcode: fil.OpEndFunction},

		{Index: 12, Opcode: fil.OpBeginFunction, Operands: fil.FunctionSignature{Kind: fil.FunctionConstructor}, Outputs: []fil.Variable{6}},
		{Index: 13, Opcode: fil.OpEndFunction},
	})
	snaps.MatchSnapshot(t, "function_kind_family", liftToString(t, code))
}

func TestDispatchCodeStringNesting(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginCodeString, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpBeginCodeString, Outputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 1}, Outputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpPrint, Inputs: []fil.Variable{2}},
		{Index: 4, Opcode: fil.OpEndCodeString},
		{Index: 5, Opcode: fil.OpEndCodeString},
	})
	out := liftToString(t, code)
	if !strings.Contains(out, "\\`") {
		t.Errorf("expected the nested code string to use an escaped backtick, got %q", out)
	}
	snaps.MatchSnapshot(t, "nested_code_string", out)
}

// Covers wasmmodule.go's delegation to internal/wasmlift: an embedded
// module range is compiled whole and replaced with JS that compiles
// and instantiates the resulting bytes.
func TestDispatchWasmModuleDelegation(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpBeginWasmModule, Outputs: []fil.Variable{0}},
		{
			Index:    1,
			Opcode:   fil.OpWasmBeginFunction,
			Operands: fil.WasmFunctionSignature{Signature: wasmtypes.Signature{Results: []wasmtypes.ValueType{wasmtypes.I32}}},
			Outputs:  []fil.Variable{1},
		},
		{Index: 2, Opcode: fil.OpWasmConst, Operands: fil.WasmConstValue{Type: wasmtypes.I32, Int: 41}, Outputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpWasmConst, Operands: fil.WasmConstValue{Type: wasmtypes.I32, Int: 1}, Outputs: []fil.Variable{3}},
		{Index: 4, Opcode: fil.OpWasmNumericOp, Operands: fil.WasmNumericOp{Mnemonic: "i32.add"}, Inputs: []fil.Variable{2, 3}, Outputs: []fil.Variable{4}},
		{Index: 5, Opcode: fil.OpWasmEndFunction},
		{Index: 6, Opcode: fil.OpEndWasmModule},
	})
	out := liftToString(t, code)
	if !strings.Contains(out, "new WebAssembly.Module(") {
		t.Errorf("expected a WebAssembly.Module instantiation, got %q", out)
	}
	if !strings.Contains(out, "new WebAssembly.Instance(") {
		t.Errorf("expected a WebAssembly.Instance instantiation, got %q", out)
	}
}

// Regression test for the parenthesization bug: "{pattern} = src;" reads
// as a block statement, not an assignment, so the object-and-assign
// form must be wrapped in parens.
func TestDestructureObjectAndAssignIsParenthesized(t *testing.T) {
	code := mustValidate(t, fil.Code{
		{Index: 0, Opcode: fil.OpLoadUndefined, Outputs: []fil.Variable{0}},
		{
			Index:    1,
			Opcode:   fil.OpDestructObjectAndAssign,
			Operands: fil.ObjectDestructure{Keys: []string{"x"}},
			Inputs:   []fil.Variable{0},
			Outputs:  []fil.Variable{1},
		},
	})
	got := strings.TrimSpace(liftToString(t, code))
	want := "({x: v1} = undefined);"
	if got != want {
		t.Errorf("LiftCode() = %q, want %q", got, want)
	}
}

// Regression test: the Explore/Probe/Fixup scaffolds must each report
// every outcome the runtime-assisted protocol distinguishes.
func TestMutatorScaffoldsEmitAllOutcomeTags(t *testing.T) {
	if !strings.Contains(exploreScaffold, "EXPLORE_ACTION:") || !strings.Contains(exploreScaffold, "EXPLORE_FAILURE:") || !strings.Contains(exploreScaffold, "EXPLORE_ERROR:") {
		t.Errorf("explore.js must emit EXPLORE_ACTION/EXPLORE_FAILURE/EXPLORE_ERROR")
	}
	if !strings.Contains(probeScaffold, "PROBING_RESULTS:") || !strings.Contains(probeScaffold, "PROBING_ERROR:") {
		t.Errorf("probe.js must emit PROBING_RESULTS/PROBING_ERROR")
	}
	if !strings.Contains(fixupScaffold, "FIXUP_ACTION:") || !strings.Contains(fixupScaffold, "FIXUP_FAILURE:") || !strings.Contains(fixupScaffold, "FIXUP_ERROR:") {
		t.Errorf("fixup.js must emit FIXUP_ACTION/FIXUP_FAILURE/FIXUP_ERROR")
	}
}

// A Wasm opcode reached outside any begin-wasm-module/end-wasm-module
// range is a structural error reported through internal/filerr, not a
// bare fmt.Errorf.
func TestDispatchWasmOpcodeOutsideModuleRangeIsFilerr(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpWasmConst, Operands: fil.WasmConstValue{Type: wasmtypes.I32, Int: 1}, Outputs: []fil.Variable{0}},
	}
	_, err := New(Config{}, code, defuse.NewLinearScan(code)).LiftCode()
	if err == nil {
		t.Fatal("expected an error")
	}
	var ferr *filerr.Error
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a *filerr.Error in the error chain, got %v", err)
	}
	if ferr.Kind != filerr.InvalidInput {
		t.Errorf("Kind = %v, want InvalidInput", ferr.Kind)
	}
}

func TestIncludeCommentsEmitsPerInstructionComment(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 42}, Outputs: []fil.Variable{0}, Comment: "answer"},
		{Index: 1, Opcode: fil.OpPrint, Inputs: []fil.Variable{0}},
	}
	cfg := Config{Options: IncludeComments}
	out, err := New(cfg, code, defuse.NewLinearScan(code)).LiftCode()
	if err != nil {
		t.Fatalf("LiftCode: %v", err)
	}
	if !strings.Contains(out, "// answer") {
		t.Errorf("expected the instruction comment in output, got %q", out)
	}
}

func TestIncludeCommentsOffDropsComment(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 42}, Outputs: []fil.Variable{0}, Comment: "answer"},
		{Index: 1, Opcode: fil.OpPrint, Inputs: []fil.Variable{0}},
	}
	out, err := New(Config{}, code, defuse.NewLinearScan(code)).LiftCode()
	if err != nil {
		t.Fatalf("LiftCode: %v", err)
	}
	if strings.Contains(out, "answer") {
		t.Errorf("expected no comment in output, got %q", out)
	}
}

func TestDumpTypesAnnotatesDeclaration(t *testing.T) {
	info := typer.NewStaticInfo()
	info.Types[1] = typer.JSFunction
	code := fil.Code{
		{Index: 0, Opcode: fil.OpLoadThis, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpGetProperty, Operands: fil.PropertyAccess{Property: "x"}, Inputs: []fil.Variable{0}, Outputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpPrint, Inputs: []fil.Variable{1}},
		{Index: 3, Opcode: fil.OpReturn, Inputs: []fil.Variable{1}},
	}
	cfg := Config{Options: DumpTypes, TyperInfo: info}
	out, err := New(cfg, code, defuse.NewLinearScan(code)).LiftCode()
	if err != nil {
		t.Fatalf("LiftCode: %v", err)
	}
	if !strings.Contains(out, "// v1: JSFunction") {
		t.Errorf("expected a type annotation comment for v1, got %q", out)
	}
}

func TestCollectTypesAccumulatesPerVariableTypes(t *testing.T) {
	info := typer.NewStaticInfo()
	info.Types[0] = typer.JSGlobalValue
	code := fil.Code{
		{Index: 0, Opcode: fil.OpLoadThis, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpPrint, Inputs: []fil.Variable{0}},
	}
	l := New(Config{Options: CollectTypes, TyperInfo: info}, code, defuse.NewLinearScan(code))
	if _, err := l.LiftCode(); err != nil {
		t.Fatalf("LiftCode: %v", err)
	}
	got := l.CollectedTypes()
	if got[0] != typer.JSGlobalValue {
		t.Errorf("CollectedTypes()[0] = %v, want JSGlobalValue", got[0])
	}
}

func TestCollectTypesOffReturnsNilMap(t *testing.T) {
	code := fil.Code{
		{Index: 0, Opcode: fil.OpLoadThis, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpPrint, Inputs: []fil.Variable{0}},
	}
	l := New(Config{}, code, defuse.NewLinearScan(code))
	if _, err := l.LiftCode(); err != nil {
		t.Fatalf("LiftCode: %v", err)
	}
	if got := l.CollectedTypes(); got != nil {
		t.Errorf("CollectedTypes() = %v, want nil", got)
	}
}
