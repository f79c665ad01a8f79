package jslift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
)

// dispatch routes one instruction to its category handler. The FIL
// opcode space is large but closed, so one exhaustive switch (rather
// than virtual dispatch per opcode) is the whole of the lifter's
// control flow.
func (l *Lifter) dispatch(in fil.Instruction) error {
	if in.Index < l.wasmSkipUntil {
		return nil
	}

	switch in.Opcode {
	case fil.OpLoadInteger, fil.OpLoadFloat, fil.OpLoadBigInt, fil.OpLoadString,
		fil.OpLoadBoolean, fil.OpLoadUndefined, fil.OpLoadNull, fil.OpLoadThis,
		fil.OpLoadArguments, fil.OpLoadRegExp:
		return l.handleLiteral(in)

	case fil.OpBinaryOperation, fil.OpUnaryOperation, fil.OpPostfixOperation,
		fil.OpTernaryOperation, fil.OpReassign, fil.OpDup, fil.OpSpread,
		fil.OpGetProperty, fil.OpSetProperty, fil.OpGetElement, fil.OpSetElement,
		fil.OpDeleteProperty, fil.OpCallFunction, fil.OpCallMethod,
		fil.OpCallComputedMethod, fil.OpConstruct, fil.OpCreateArray,
		fil.OpCreateObject, fil.OpCreateTemplateString:
		return l.handleExpression(in)

	case fil.OpReturn, fil.OpThrow, fil.OpYield, fil.OpYieldEach, fil.OpAwait,
		fil.OpPrint, fil.OpLoopBreak, fil.OpLoopContinue:
		return l.handleSimpleStatement(in)

	case fil.OpDestructArray, fil.OpDestructObject,
		fil.OpDestructArrayAndAssign, fil.OpDestructObjectAndAssign:
		return l.handleDestructure(in)

	case fil.OpExplore, fil.OpProbe, fil.OpFixup:
		return l.handleMutator(in)

	case fil.OpBeginIf, fil.OpBeginElse, fil.OpEndIf,
		fil.OpBeginSwitch, fil.OpBeginSwitchCase, fil.OpEndSwitchCase, fil.OpEndSwitch,
		fil.OpBeginWhileLoopHeader, fil.OpBeginWhileLoopBody, fil.OpEndWhileLoop,
		fil.OpBeginDoWhileLoopHeader, fil.OpBeginDoWhileLoopBody, fil.OpEndDoWhileLoop,
		fil.OpBeginForLoopInitializer, fil.OpBeginForLoopCondition,
		fil.OpBeginForLoopAfterthought, fil.OpBeginForLoopBody, fil.OpEndForLoop,
		fil.OpBeginForInLoop, fil.OpEndForInLoop, fil.OpBeginForOfLoop, fil.OpEndForOfLoop,
		fil.OpBeginRepeatLoop, fil.OpEndRepeatLoop,
		fil.OpBeginTry, fil.OpBeginCatch, fil.OpBeginFinally, fil.OpEndTryCatch,
		fil.OpBeginWith, fil.OpEndWith,
		fil.OpBeginBlockStatement, fil.OpEndBlockStatement:
		return l.handleBlock(in)

	case fil.OpBeginCodeString, fil.OpEndCodeString:
		return l.handleCodeString(in)

	case fil.OpBeginFunction, fil.OpEndFunction:
		return l.handleFunction(in)

	case fil.OpBeginClassDefinition, fil.OpEndClassDefinition,
		fil.OpBeginClassConstructor, fil.OpEndClassConstructor,
		fil.OpBeginClassMember, fil.OpEndClassMember:
		return l.handleClass(in)

	case fil.OpBeginWasmModule:
		return l.handleWasmModule(in)

	case fil.OpEndWasmModule:
		// Reached only if a begin-wasm-module was missing or malformed;
		// handleWasmModule otherwise consumes the whole range via
		// wasmSkipUntil.
		return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "end-wasm-module with no matching begin")

	default:
		if in.Opcode.IsWasm() {
			return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index,
				"Wasm opcode %s encountered outside a wasm module range", in.Opcode)
		}
		return l.unhandledOpcode(in)
	}
}
