package ildump

import (
	"strconv"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// tryDumpWasmOp handles the embedded Wasm module boundary and every
// Wasm opcode. ildump dumps Wasm ranges inline with the surrounding
// JavaScript instructions rather than delegating them, unlike jslift:
// a flat instruction trace is useful precisely because it does not
// hide what one lifter handed to the other.
func (d *Dumper) tryDumpWasmOp(in fil.Instruction, depth int) bool {
	switch in.Opcode {
	case fil.OpBeginWasmModule, fil.OpEndWasmModule:
		d.writeLine(in, depth, inputFields(in), nil)

	case fil.OpWasmBeginFunction:
		sig := in.Operands.(fil.WasmFunctionSignature)
		d.writeLine(in, depth, []string{signatureText(sig.Signature)}, in.InnerOutputs)

	case fil.OpWasmEndFunction:
		d.writeLine(in, depth, nil, nil)

	case fil.OpWasmImport:
		op := in.Operands.(fil.WasmImport)
		fields := append(inputFields(in), importKindName(op.Kind))
		if op.Signature != nil {
			fields = append(fields, signatureText(*op.Signature))
		}
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmDefineGlobal:
		op := in.Operands.(fil.WasmDefineGlobal)
		fields := append(inputFields(in), valueTypeName(op.Type), formatBool("mutable", op.Mutable))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmDefineTable:
		op := in.Operands.(fil.WasmDefineTable)
		fields := []string{valueTypeName(op.ElemType), "min=" + strconv.FormatUint(uint64(op.Min), 10)}
		if op.HasMax {
			fields = append(fields, "max="+strconv.FormatUint(uint64(op.Max), 10))
		}
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmDefineMemory:
		op := in.Operands.(fil.WasmDefineMemory)
		fields := []string{"min=" + strconv.FormatUint(uint64(op.Min), 10)}
		if op.HasMax {
			fields = append(fields, "max="+strconv.FormatUint(uint64(op.Max), 10))
		}
		fields = append(fields, formatBool("shared", op.Shared))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmDefineTag:
		op := in.Operands.(fil.WasmDefineTag)
		d.writeLine(in, depth, []string{signatureText(op.Signature)}, nil)

	case fil.OpWasmDefineTypeGroup:
		op := in.Operands.(fil.WasmDefineTypeGroup)
		d.writeLine(in, depth, []string{"group=" + strconv.Itoa(op.Group.Index), "members=" + strconv.Itoa(len(op.Group.Members))}, nil)

	case fil.OpWasmResolveForwardReference:
		op := in.Operands.(fil.WasmResolveForwardReference)
		fields := []string{
			"group=" + strconv.Itoa(op.GroupIndex),
			"member=" + strconv.Itoa(op.MemberIdx),
			"concrete=" + strconv.Itoa(int(op.Concrete)),
		}
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmDefineDataSegment:
		op := in.Operands.(fil.WasmDefineDataSegment)
		fields := append(inputFields(in), "bytes="+strconv.Itoa(len(op.Bytes)))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmDefineElementSegment:
		op := in.Operands.(fil.WasmDefineElementSegment)
		fields := append(inputFields(in), formatBool("active", op.Active))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmConst:
		op := in.Operands.(fil.WasmConstValue)
		d.writeLine(in, depth, []string{valueTypeName(op.Type), wasmConstText(op)}, nil)

	case fil.OpWasmNumericOp:
		op := in.Operands.(fil.WasmNumericOp)
		d.writeLine(in, depth, append(inputFields(in), op.Mnemonic), nil)

	case fil.OpWasmConvOp:
		op := in.Operands.(fil.WasmConvOp)
		fields := append(inputFields(in), valueTypeName(op.From)+"->"+valueTypeName(op.To),
			formatBool("signed", op.Signed), formatBool("sat", op.Saturating))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmReassign:
		op := in.Operands.(fil.WasmReassign)
		d.writeLine(in, depth, append(inputFields(in), formatBool("global", op.TargetIsGlobal)), nil)

	case fil.OpWasmBeginBlock, fil.OpWasmBeginLoop, fil.OpWasmBeginIf, fil.OpWasmBeginElse,
		fil.OpWasmBeginTry, fil.OpWasmBeginCatch, fil.OpWasmBeginCatchAll:
		sig := in.Operands.(fil.WasmBlockSignature)
		fields := append(inputFields(in), "("+valueTypeList(sig.Params)+") -> ("+valueTypeList(sig.Results)+")")
		d.writeLine(in, depth, fields, in.InnerOutputs)

	case fil.OpWasmEndBlock, fil.OpWasmEndLoop, fil.OpWasmEndIf, fil.OpWasmEndTry:
		d.writeLine(in, depth, nil, nil)

	case fil.OpWasmBranch, fil.OpWasmBranchIf, fil.OpWasmReturn:
		d.writeLine(in, depth, inputFields(in), nil)

	case fil.OpWasmBranchTable:
		op := in.Operands.(fil.WasmBranchTable)
		fields := append(inputFields(in), "targets=["+joinVars(op.Targets)+"]", "default="+op.Default.String())
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmCallFunction, fil.OpWasmReturnCall:
		d.writeLine(in, depth, inputFields(in), nil)

	case fil.OpWasmCallIndirect, fil.OpWasmReturnCallIndirect:
		op := in.Operands.(fil.WasmCallIndirect)
		d.writeLine(in, depth, append(inputFields(in), signatureText(op.Signature)), nil)

	case fil.OpWasmMemoryLoad, fil.OpWasmMemoryStore, fil.OpWasmAtomicMemoryLoad, fil.OpWasmAtomicMemoryStore:
		op := in.Operands.(fil.WasmMemoryImmediate)
		fields := append(inputFields(in), op.Mnemonic,
			"align="+strconv.FormatUint(uint64(op.AlignLog2), 10),
			"offset="+strconv.FormatUint(uint64(op.Offset), 10))
		if op.MemoryIndex != 0 {
			fields = append(fields, "mem="+strconv.FormatUint(uint64(op.MemoryIndex), 10))
		}
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmSimdConst:
		op := in.Operands.(fil.WasmSimdConstValue)
		d.writeLine(in, depth, []string{"0x" + hexBytes(op.Bytes[:])}, nil)

	case fil.OpWasmSimdOp:
		op := in.Operands.(fil.WasmSimdOp)
		d.writeLine(in, depth, append(inputFields(in), op.Mnemonic), nil)

	case fil.OpWasmStructNew:
		op := in.Operands.(fil.WasmStructNew)
		fields := append(inputFields(in), "group="+strconv.Itoa(op.GroupIndex), "member="+strconv.Itoa(op.MemberIdx))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmArrayNewFixed:
		op := in.Operands.(fil.WasmArrayNewFixed)
		fields := append(inputFields(in), "group="+strconv.Itoa(op.GroupIndex), "member="+strconv.Itoa(op.MemberIdx),
			"count="+strconv.Itoa(op.Count))
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmRefNull:
		op := in.Operands.(fil.WasmRefNullType)
		fields := []string{valueTypeName(op.HeapType)}
		if op.HeapType == wasmtypes.RefTyped {
			fields = append(fields, "typeRef="+strconv.Itoa(int(op.TypeRef)))
		}
		d.writeLine(in, depth, fields, nil)

	case fil.OpWasmRefFunc:
		d.writeLine(in, depth, inputFields(in), nil)

	default:
		return false
	}
	return true
}

func wasmConstText(op fil.WasmConstValue) string {
	switch op.Type {
	case wasmtypes.F32:
		return formatFloat(float64(op.Float32))
	case wasmtypes.F64:
		return formatFloat(op.Float64)
	default:
		return strconv.FormatInt(op.Int, 10)
	}
}

func hexBytes(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}
