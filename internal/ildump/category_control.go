package ildump

import "github.com/cwbudde/fillift/internal/fil"

// tryDumpControlOp handles simple statements, destructuring, and the
// runtime-assisted mutator calls.
func (d *Dumper) tryDumpControlOp(in fil.Instruction, depth int) bool {
	switch in.Opcode {
	case fil.OpReturn, fil.OpThrow, fil.OpYield, fil.OpYieldEach, fil.OpAwait,
		fil.OpPrint, fil.OpLoopBreak, fil.OpLoopContinue:
		d.writeLine(in, depth, inputFields(in), nil)

	case fil.OpDestructArray, fil.OpDestructArrayAndAssign:
		ad := in.Operands.(fil.ArrayDestructure)
		fields := append(inputFields(in), "indices=["+joinInts(ad.Indices)+"]", formatBool("rest", ad.HasRest))
		d.writeLine(in, depth, fields, nil)

	case fil.OpDestructObject, fil.OpDestructObjectAndAssign:
		od := in.Operands.(fil.ObjectDestructure)
		fields := append(inputFields(in), "keys=["+joinStrings(od.Keys)+"]", formatBool("rest", od.HasRest))
		d.writeLine(in, depth, fields, nil)

	case fil.OpExplore, fil.OpProbe, fil.OpFixup:
		mc := in.Operands.(fil.MutatorCall)
		fields := append(inputFields(in), quote(mc.InstructionID))
		if len(mc.ExtraArgs) > 0 {
			fields = append(fields, joinStrings(mc.ExtraArgs))
		}
		if mc.Seed != nil {
			fields = append(fields, "seed="+formatSeed(*mc.Seed))
		}
		d.writeLine(in, depth, fields, nil)

	default:
		return false
	}
	return true
}
