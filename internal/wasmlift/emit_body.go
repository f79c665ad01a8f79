package wasmlift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
)

// emitBodyInstruction dispatches one in-function instruction to its
// category handler; one case per Wasm opcode, mirroring the single
// exhaustive switch the JS lifter uses for its own opcode partition.
func (l *Lifter) emitBodyInstruction(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpWasmConst, fil.OpWasmNumericOp, fil.OpWasmConvOp,
		fil.OpWasmRefNull, fil.OpWasmRefFunc, fil.OpWasmStructNew,
		fil.OpWasmArrayNewFixed, fil.OpWasmSimdConst, fil.OpWasmSimdOp:
		return l.emitNumericLike(in)

	case fil.OpWasmMemoryLoad:
		return l.emitMemoryLoad(in)
	case fil.OpWasmMemoryStore:
		return l.emitMemoryStore(in)
	case fil.OpWasmAtomicMemoryLoad:
		return l.emitAtomicLoad(in)
	case fil.OpWasmAtomicMemoryStore:
		return l.emitAtomicStore(in)

	case fil.OpWasmReassign:
		return l.emitReassign(in)

	case fil.OpWasmBeginBlock:
		return l.emitBlockStart(in, opBlock)
	case fil.OpWasmBeginLoop:
		return l.emitBlockStart(in, opLoop)
	case fil.OpWasmBeginIf:
		return l.emitBlockStart(in, opIf)
	case fil.OpWasmBeginElse:
		return l.emitBlockStart(in, opElse)
	case fil.OpWasmBeginTry:
		return l.emitBlockStart(in, opTry)
	case fil.OpWasmBeginCatch:
		return l.emitBlockStart(in, opCatch)
	case fil.OpWasmBeginCatchAll:
		return l.emitBlockStart(in, opCatchAll)
	case fil.OpWasmEndBlock, fil.OpWasmEndLoop, fil.OpWasmEndIf, fil.OpWasmEndTry:
		return l.emitBlockEnd(in)

	case fil.OpWasmBranch, fil.OpWasmBranchIf, fil.OpWasmBranchTable, fil.OpWasmReturn:
		return l.emitBranch(in)

	case fil.OpWasmCallFunction, fil.OpWasmCallIndirect, fil.OpWasmReturnCall, fil.OpWasmReturnCallIndirect:
		return l.emitCall(in)

	default:
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index,
			"unhandled opcode %s", in.Opcode)
	}
}
