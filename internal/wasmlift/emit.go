package wasmlift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
)

// emitFunctions is pipeline pass 3: iterate the Wasm instructions once
// more, building each function's body bytes, plus capturing data and
// element segment content (module-level, not part of any function
// body).
func (l *Lifter) emitFunctions(code fil.Code) error {
	funcIdx := -1
	for _, in := range code {
		l.currentIndex = in.Index
		switch in.Opcode {
		case fil.OpWasmBeginFunction:
			funcIdx++
			l.currentFunction = l.functions[funcIdx]
			continue

		case fil.OpWasmEndFunction:
			if err := l.flushFunctionResult(); err != nil {
				return err
			}
			l.currentFunction.Body = append(l.currentFunction.Body, opEnd)
			l.currentFunction = nil
			continue

		case fil.OpWasmDefineDataSegment:
			op := in.Operands.(fil.WasmDefineDataSegment)
			l.dataSegments = append(l.dataSegments, op.Bytes)
			continue

		case fil.OpWasmDefineElementSegment:
			op := in.Operands.(fil.WasmDefineElementSegment)
			seg := elementSegment{Active: op.Active}
			inputs := in.Inputs
			if op.Active && len(inputs) > 0 {
				idx, err := l.resolveIndex(fil.ImportTable, inputs[0])
				if err != nil {
					return err
				}
				seg.Table = idx
				inputs = inputs[1:]
			}
			for _, v := range inputs {
				idx, err := l.resolveIndex(fil.ImportFunction, v)
				if err != nil {
					return err
				}
				seg.Funcs = append(seg.Funcs, idx)
			}
			l.elementSegments = append(l.elementSegments, seg)
			continue

		case fil.OpWasmImport, fil.OpWasmDefineGlobal, fil.OpWasmDefineTable,
			fil.OpWasmDefineMemory, fil.OpWasmDefineTag, fil.OpWasmDefineTypeGroup:
			continue // fully handled by analyzeImports

		case fil.OpWasmResolveForwardReference:
			op := in.Operands.(fil.WasmResolveForwardReference)
			l.resolveForwardReference(op.GroupIndex, op.MemberIdx, op.Concrete)
			continue
		}

		if l.currentFunction == nil {
			continue
		}
		if err := l.emitBodyInstruction(in); err != nil {
			return err
		}
	}
	return nil
}

// operandBytes resolves one input variable to the byte sequence that
// pushes its value: inlined producer bytes if still pending in
// exprWriter (consumed on use), otherwise a local.get against its
// assigned slot.
func (l *Lifter) operandBytes(v fil.Variable) ([]byte, error) {
	if b, ok := l.exprWriter[v]; ok {
		delete(l.exprWriter, v)
		return b, nil
	}
	fn := l.currentFunction
	if fn == nil {
		return nil, filerr.NewInCode(filerr.InvalidInput, l.code, l.currentIndex,
			"operand %s referenced outside a function body", v)
	}
	slot, ok := fn.varToSlot[v]
	if !ok {
		return nil, filerr.NewInCode(filerr.FailedIndexLookup, l.code, l.currentIndex,
			"%s has no local slot", v)
	}
	return append([]byte{opLocalGet}, appendLEB32(nil, uint32(slot))...), nil
}

// allocLocal appends a new slot to the current function's local table
// and returns its index (Invariant W-locals: slots are only ever
// appended, never reassigned).
func (l *Lifter) allocLocal(v fil.Variable, t wasmVT) int {
	fn := l.currentFunction
	idx := len(fn.Locals)
	fn.Locals = append(fn.Locals, localSlot{Variable: v, Type: t})
	fn.varToSlot[v] = idx
	return idx
}

// spill commits bytes (an already-built instruction's full byte
// sequence, operands included) to the function body, then allocates a
// local slot for output and registers a local.get producer sequence
// for later consumers, per the default spill discipline.
func (l *Lifter) spill(bytes []byte, output fil.Variable, t wasmVT) {
	fn := l.currentFunction
	fn.Body = append(fn.Body, bytes...)
	slot := l.allocLocal(output, t)
	fn.Body = append(fn.Body, opLocalSet)
	fn.Body = appendLEB32(fn.Body, uint32(slot))
	l.exprWriter[output] = append([]byte{opLocalGet}, appendLEB32(nil, uint32(slot))...)
	fn.recordProduced(output)
}

// deferValue stores bytes as v's pending producer sequence without
// touching the function body: the value is only realized when a
// consumer pulls it via operandBytes, or flushed at function end if it
// turns out to be a live result (scenario S4's direct const-add
// inlining with no intervening locals).
func (l *Lifter) deferValue(bytes []byte, v fil.Variable) {
	l.exprWriter[v] = bytes
	l.currentFunction.recordProduced(v)
}

// flushFunctionResult appends any still-pending producer bytes for the
// function's trailing result values directly to the body ahead of the
// closing `end`, in the order the signature's results are declared.
// Pending entries that are not part of the result (dead pure values)
// are simply discarded -- they compute nothing observable.
func (l *Lifter) flushFunctionResult() error {
	fn := l.currentFunction
	if len(fn.Signature.Results) == 0 {
		return nil
	}
	// The last distinct producer(s) recorded, in production order, stand
	// in for the implicit multi-value return; FIL emits exactly one
	// producing instruction per declared result when no explicit
	// wasm-return opcode is present.
	for _, v := range fn.pendingResults {
		if b, ok := l.exprWriter[v]; ok {
			fn.Body = append(fn.Body, b...)
			delete(l.exprWriter, v)
		}
	}
	return nil
}
