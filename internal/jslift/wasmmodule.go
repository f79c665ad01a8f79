package jslift

import (
	"strconv"
	"strings"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
	"github.com/cwbudde/fillift/internal/wasmlift"
)

// handleWasmModule locates the matching end-wasm-module instruction,
// delegates the enclosed range to the Wasm binary lifter, and emits JS
// that compiles and instantiates the resulting bytes. The whole range
// is marked skipped via wasmSkipUntil since it was consumed as a unit.
func (l *Lifter) handleWasmModule(in fil.Instruction) error {
	depth := 1
	end := -1
	for i := in.Index + 1; i < len(l.code); i++ {
		switch l.code[i].Opcode {
		case fil.OpBeginWasmModule:
			depth++
		case fil.OpEndWasmModule:
			depth--
		}
		if depth == 0 {
			end = i
			break
		}
	}
	if end == -1 {
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unterminated wasm module")
	}

	inner := l.code[in.Index+1 : end]
	moduleBytes, imports, err := l.newWasmLifter().Lift(inner)
	if err != nil {
		return filerr.NewInCode(filerr.Fatal, l.code, in.Index, "embedded wasm module: %s", err)
	}

	l.emitWasmInstantiation(in, moduleBytes, imports)
	l.wasmSkipUntil = end + 1
	return nil
}

// wasmByteArrayLiteral renders b as a Uint8Array literal of decimal
// byte values.
func wasmByteArrayLiteral(b []byte) string {
	parts := make([]string, len(b))
	for i, x := range b {
		parts[i] = strconv.Itoa(int(x))
	}
	return "new Uint8Array([" + strings.Join(parts, ",") + "])"
}

// emitWasmInstantiation binds in's output variable to the
// WebAssembly.Instance of the module, threading the host-side import bindings the Wasm
// lifter reported back through imports.
func (l *Lifter) emitWasmInstantiation(in fil.Instruction, moduleBytes []byte, imports []wasmlift.ImportBinding) {
	out := in.Output()
	bytesName := "wbytes" + out.String()
	moduleName := "wmod" + out.String()

	l.writer.EmitLine("const " + bytesName + " = " + wasmByteArrayLiteral(moduleBytes) + ";")
	l.writer.EmitLine("const " + moduleName + " = new WebAssembly.Module(" + bytesName + ");")

	importLines := make([]string, len(imports))
	for i, ib := range imports {
		importLines[i] = ib.Name + ": " + l.operand(ib.Variable).Text()
	}
	importsObj := "{env: {" + strings.Join(importLines, ", ") + "}}"

	e := expr.New(expr.NewExpression, "new WebAssembly.Instance("+moduleName+", "+importsObj+")")
	l.define(out, in.Index, e)
}
