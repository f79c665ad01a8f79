package wasmlift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
)

// analyzeImports is pipeline pass 1: record one de-duplicated import
// entry per (kind, variable[, signature]) and accumulate the defined
// globals/tables/memories/tags/type-groups/exports seen in code, in
// FIL appearance order.
func (l *Lifter) analyzeImports(code fil.Code) error {
	for _, in := range code {
		switch in.Opcode {
		case fil.OpWasmImport:
			op, ok := in.Operands.(fil.WasmImport)
			if !ok {
				return filerr.NewInCode(filerr.InvalidInput, code, in.Index, "WasmImport missing operands")
			}
			src := in.Output()
			entry := importEntry{Kind: op.Kind, Source: src, Signature: op.Signature}
			k := entry.key()
			if _, seen := l.importKeys[k]; !seen {
				l.importKeys[k] = len(l.imports)
				l.imports = append(l.imports, entry)
			}
			l.varKind[src] = op.Kind

		case fil.OpWasmDefineGlobal:
			op := in.Operands.(fil.WasmDefineGlobal)
			var init fil.Variable = fil.Invalid
			if len(in.Inputs) > 0 {
				init = in.Inputs[0]
			}
			l.globals = append(l.globals, globalDef{Type: op.Type, Mutable: op.Mutable, Init: init})
			l.varKind[in.Output()] = fil.ImportGlobal
			l.exports = append(l.exports, Export{Kind: ExportGlobal, Index: len(l.globals) - 1, SourceVariable: in.Output()})

		case fil.OpWasmDefineTable:
			op := in.Operands.(fil.WasmDefineTable)
			l.tables = append(l.tables, tableDef{ElemType: op.ElemType, Min: op.Min, Max: op.Max, HasMax: op.HasMax})
			l.varKind[in.Output()] = fil.ImportTable
			l.exports = append(l.exports, Export{Kind: ExportTable, Index: len(l.tables) - 1, SourceVariable: in.Output()})

		case fil.OpWasmDefineMemory:
			op := in.Operands.(fil.WasmDefineMemory)
			l.memories = append(l.memories, memoryDef{Min: op.Min, Max: op.Max, HasMax: op.HasMax, Shared: op.Shared})
			l.varKind[in.Output()] = fil.ImportMemory
			l.exports = append(l.exports, Export{Kind: ExportMemory, Index: len(l.memories) - 1, SourceVariable: in.Output()})

		case fil.OpWasmDefineTag:
			op := in.Operands.(fil.WasmDefineTag)
			l.tags = append(l.tags, tagDef{Signature: op.Signature})
			l.varKind[in.Output()] = fil.ImportTag
			l.exports = append(l.exports, Export{Kind: ExportTag, Index: len(l.tags) - 1, SourceVariable: in.Output()})

		case fil.OpWasmDefineTypeGroup:
			op := in.Operands.(fil.WasmDefineTypeGroup)
			l.typeGroups = append(l.typeGroups, op.Group)

		case fil.OpWasmConst:
			op := in.Operands.(fil.WasmConstValue)
			l.moduleConsts[in.Output()] = l.buildConst(op)

		case fil.OpWasmRefNull:
			op := in.Operands.(fil.WasmRefNullType)
			l.moduleConsts[in.Output()] = append([]byte{opRefNull}, l.heapTypeByte(op)...)

		case fil.OpWasmBeginFunction:
			op := in.Operands.(fil.WasmFunctionSignature)
			fn := &FunctionInfo{Signature: op.Signature, Output: in.Output(), Labels: make(map[fil.Variable]int), varToSlot: make(map[fil.Variable]int)}
			for i, pv := range in.InnerOutputs {
				if i >= len(op.Signature.Params) {
					break
				}
				fn.Locals = append(fn.Locals, localSlot{Variable: pv, Type: op.Signature.Params[i]})
				fn.varToSlot[pv] = i
			}
			fn.paramCount = len(fn.Locals)
			l.functions = append(l.functions, fn)
			l.varKind[in.Output()] = fil.ImportFunction
		}
	}
	return nil
}
