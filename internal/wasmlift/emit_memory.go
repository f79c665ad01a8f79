package wasmlift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
)

// memoryImmediateBytes encodes a memarg: natural alignment, the
// multi-memory index flag, and the static offset, per spec's "Memory
// instructions" / "Atomic memory instructions" encoding.
func memoryImmediateBytes(imm fil.WasmMemoryImmediate) []byte {
	align := imm.AlignLog2
	var out []byte
	if imm.MemoryIndex != 0 {
		out = appendLEB32(out, align|0x40)
		out = appendLEB32(out, imm.MemoryIndex)
	} else {
		out = appendLEB32(out, align)
	}
	out = appendLEB32(out, imm.Offset)
	return out
}

func (l *Lifter) emitMemoryLoad(in fil.Instruction) error {
	imm := in.Operands.(fil.WasmMemoryImmediate)
	body, err := l.operandsBytes(in.Inputs)
	if err != nil {
		return err
	}
	b, ok := loadOpcodes[imm.Mnemonic]
	if !ok {
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown load mnemonic %q", imm.Mnemonic)
	}
	body = append(body, b)
	body = append(body, memoryImmediateBytes(imm)...)
	l.spill(body, in.Output(), imm.Type)
	return nil
}

func (l *Lifter) emitMemoryStore(in fil.Instruction) error {
	imm := in.Operands.(fil.WasmMemoryImmediate)
	body, err := l.operandsBytes(in.Inputs)
	if err != nil {
		return err
	}
	b, ok := storeOpcodes[imm.Mnemonic]
	if !ok {
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown store mnemonic %q", imm.Mnemonic)
	}
	body = append(body, b)
	body = append(body, memoryImmediateBytes(imm)...)
	l.currentFunction.Body = append(l.currentFunction.Body, body...)
	return nil
}

func (l *Lifter) emitAtomicLoad(in fil.Instruction) error {
	imm := in.Operands.(fil.WasmMemoryImmediate)
	body, err := l.operandsBytes(in.Inputs)
	if err != nil {
		return err
	}
	b, ok := atomicLoadOpcodes[imm.Mnemonic]
	if !ok {
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown atomic load mnemonic %q", imm.Mnemonic)
	}
	body = append(body, prefixAtomic, b)
	body = append(body, memoryImmediateBytes(imm)...)
	l.spill(body, in.Output(), imm.Type)
	return nil
}

func (l *Lifter) emitAtomicStore(in fil.Instruction) error {
	imm := in.Operands.(fil.WasmMemoryImmediate)
	body, err := l.operandsBytes(in.Inputs)
	if err != nil {
		return err
	}
	b, ok := atomicStoreOpcodes[imm.Mnemonic]
	if !ok {
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown atomic store mnemonic %q", imm.Mnemonic)
	}
	body = append(body, prefixAtomic, b)
	body = append(body, memoryImmediateBytes(imm)...)
	l.currentFunction.Body = append(l.currentFunction.Body, body...)
	return nil
}
