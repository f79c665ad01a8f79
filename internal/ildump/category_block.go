package ildump

import "github.com/cwbudde/fillift/internal/fil"

// tryDumpBlockOp handles every block-structured JavaScript construct
// and the code-string nesting markers. Indentation for these opcodes
// was already resolved into depth by fil.Code.Depths, so rendering
// here is uniform: inputs as leading fields, InnerOutputs (loop
// variables, catch parameters) as the trailing variadic.
func (d *Dumper) tryDumpBlockOp(in fil.Instruction, depth int) bool {
	switch in.Opcode {
	case fil.OpBeginIf, fil.OpBeginElse, fil.OpEndIf,
		fil.OpBeginSwitch,
		fil.OpEndSwitch,
		fil.OpBeginWhileLoopHeader, fil.OpBeginWhileLoopBody, fil.OpEndWhileLoop,
		fil.OpBeginDoWhileLoopHeader, fil.OpBeginDoWhileLoopBody, fil.OpEndDoWhileLoop,
		fil.OpBeginForLoopInitializer, fil.OpBeginForLoopCondition,
		fil.OpBeginForLoopAfterthought, fil.OpBeginForLoopBody, fil.OpEndForLoop,
		fil.OpEndForInLoop, fil.OpEndForOfLoop, fil.OpEndRepeatLoop,
		fil.OpBeginTry, fil.OpEndTryCatch,
		fil.OpBeginWith, fil.OpEndWith,
		fil.OpBeginBlockStatement, fil.OpEndBlockStatement,
		fil.OpBeginCodeString, fil.OpEndCodeString:
		d.writeLine(in, depth, inputFields(in), in.InnerOutputs)

	case fil.OpBeginSwitchCase:
		sc := in.Operands.(fil.SwitchCase)
		fields := append(inputFields(in), formatBool("default", sc.IsDefault))
		d.writeLine(in, depth, fields, nil)

	case fil.OpEndSwitchCase:
		sc := in.Operands.(fil.SwitchCase)
		d.writeLine(in, depth, []string{formatBool("fallsThrough", sc.FallsThrough)}, nil)

	case fil.OpBeginForInLoop, fil.OpBeginForOfLoop, fil.OpBeginRepeatLoop:
		d.writeLine(in, depth, inputFields(in), in.InnerOutputs)

	case fil.OpBeginCatch, fil.OpBeginFinally:
		d.writeLine(in, depth, inputFields(in), in.InnerOutputs)

	default:
		return false
	}
	return true
}
