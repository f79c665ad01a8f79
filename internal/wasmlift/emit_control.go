package wasmlift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// branchDepthFor implements the literal W-branch formula.
func (l *Lifter) branchDepthFor(label fil.Variable) (int, error) {
	fn := l.currentFunction
	recorded, ok := fn.Labels[label]
	if !ok {
		return 0, filerr.NewInCode(filerr.FailedIndexLookup, l.code, l.currentIndex,
			"no label recorded for %s", label)
	}
	d := fn.depth - recorded - 1
	if d < 0 {
		return 0, filerr.NewInCode(filerr.InvalidBranch, l.code, l.currentIndex,
			"label %s resolves to negative depth", label)
	}
	return d, nil
}

func (l *Lifter) recordLabel(label fil.Variable, reopen bool) {
	fn := l.currentFunction
	depth := fn.depth
	if reopen {
		depth--
	}
	fn.Labels[label] = depth
}

func labelOf(in fil.Instruction) fil.Variable {
	if len(in.InnerOutputs) > 0 {
		return in.InnerOutputs[0]
	}
	return fil.Invalid
}

func (l *Lifter) emitBlockStart(in fil.Instruction, opcode byte) error {
	fn := l.currentFunction
	sig := in.Operands.(fil.WasmBlockSignature)
	reopen := in.Opcode.IsBlockReopen()
	if lbl := labelOf(in); lbl != fil.Invalid {
		l.recordLabel(lbl, reopen)
	}
	fn.Body = append(fn.Body, opcode)
	if !reopen {
		fn.Body = append(fn.Body, l.blockTypeBytes(wasmtypes.Signature{Params: sig.Params, Results: sig.Results})...)
		fn.depth++
	}
	return nil
}

func (l *Lifter) emitBlockEnd(in fil.Instruction) error {
	fn := l.currentFunction
	fn.Body = append(fn.Body, opEnd)
	fn.depth--
	if fn.depth < 0 {
		return filerr.NewInCode(filerr.InvalidBranch, l.code, in.Index, "block end with none open")
	}
	return nil
}

func (l *Lifter) emitBranch(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpWasmBranch:
		d, err := l.branchDepthFor(in.Inputs[0])
		if err != nil {
			return err
		}
		l.currentFunction.Body = append(append(l.currentFunction.Body, opBr), appendLEB32(nil, uint32(d))...)

	case fil.OpWasmBranchIf:
		cond, err := l.operandBytes(in.Inputs[0])
		if err != nil {
			return err
		}
		d, err := l.branchDepthFor(in.Inputs[1])
		if err != nil {
			return err
		}
		body := append(cond, opBrIf)
		body = appendLEB32(body, uint32(d))
		l.currentFunction.Body = append(l.currentFunction.Body, body...)

	case fil.OpWasmBranchTable:
		op := in.Operands.(fil.WasmBranchTable)
		idx, err := l.operandBytes(in.Inputs[0])
		if err != nil {
			return err
		}
		body := append(idx, opBrTable)
		body = appendLEB32(body, uint32(len(op.Targets)))
		for _, t := range op.Targets {
			d, err := l.branchDepthFor(t)
			if err != nil {
				return err
			}
			body = appendLEB32(body, uint32(d))
		}
		dd, err := l.branchDepthFor(op.Default)
		if err != nil {
			return err
		}
		body = appendLEB32(body, uint32(dd))
		l.currentFunction.Body = append(l.currentFunction.Body, body...)

	case fil.OpWasmReturn:
		body, err := l.operandsBytes(in.Inputs)
		if err != nil {
			return err
		}
		body = append(body, opReturn)
		l.currentFunction.Body = append(l.currentFunction.Body, body...)
	}
	return nil
}

func (l *Lifter) emitCall(in fil.Instruction) error {
	fn := l.currentFunction
	switch in.Opcode {
	case fil.OpWasmCallFunction, fil.OpWasmReturnCall:
		callee := in.Inputs[0]
		idx, err := l.resolveIndex(fil.ImportFunction, callee)
		if err != nil {
			return err
		}
		args, err := l.operandsBytes(in.Inputs[1:])
		if err != nil {
			return err
		}
		op := byte(opCall)
		if in.Opcode == fil.OpWasmReturnCall {
			op = opReturnCall
		}
		body := append(args, op)
		body = appendLEB32(body, uint32(idx))
		if in.Opcode == fil.OpWasmReturnCall || len(in.Outputs) == 0 {
			fn.Body = append(fn.Body, body...)
			return nil
		}
		l.spill(body, in.Output(), 0)
		return nil

	case fil.OpWasmCallIndirect, fil.OpWasmReturnCallIndirect:
		op := in.Operands.(fil.WasmCallIndirect)
		table, err := l.resolveIndex(fil.ImportTable, in.Inputs[0])
		if err != nil {
			return err
		}
		index, err := l.operandBytes(in.Inputs[1])
		if err != nil {
			return err
		}
		args, err := l.operandsBytes(in.Inputs[2:])
		if err != nil {
			return err
		}
		sigIdx := l.signatureIndex(op.Signature)
		opcode := byte(opCallIndirect)
		if in.Opcode == fil.OpWasmReturnCallIndirect {
			opcode = opReturnCallIndirect
		}
		body := append(args, index...)
		body = append(body, opcode)
		body = appendLEB32(body, uint32(sigIdx))
		body = appendLEB32(body, uint32(table))
		if in.Opcode == fil.OpWasmReturnCallIndirect || len(in.Outputs) == 0 {
			fn.Body = append(fn.Body, body...)
			return nil
		}
		l.spill(body, in.Output(), 0)
		return nil
	}
	return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index,
		"opcode %s not handled by emitCall", in.Opcode)
}

// emitReassign is OpWasmReassign's dedicated handler: it never uses the
// default spill/inline discipline, instead resolving its own
// destination and emitting a plain set.
func (l *Lifter) emitReassign(in fil.Instruction) error {
	op := in.Operands.(fil.WasmReassign)
	src, err := l.operandBytes(in.Inputs[1])
	if err != nil {
		return err
	}
	body := src
	if op.TargetIsGlobal {
		idx, err := l.resolveIndex(fil.ImportGlobal, in.Inputs[0])
		if err != nil {
			return err
		}
		body = append(body, opGlobalSet)
		body = appendLEB32(body, uint32(idx))
	} else {
		fn := l.currentFunction
		slot, ok := fn.varToSlot[in.Inputs[0]]
		if !ok {
			return filerr.NewInCode(filerr.FailedIndexLookup, l.code, in.Index,
				"%s has no local slot", in.Inputs[0])
		}
		body = append(body, opLocalSet)
		body = appendLEB32(body, uint32(slot))
	}
	l.currentFunction.Body = append(l.currentFunction.Body, body...)
	return nil
}
