package ildump

import "github.com/cwbudde/fillift/internal/fil"

// tryDumpFunctionOp handles function and class-member definition
// opcodes, whose InnerOutputs are the bound parameter variables.
func (d *Dumper) tryDumpFunctionOp(in fil.Instruction, depth int) bool {
	switch in.Opcode {
	case fil.OpBeginFunction:
		sig := in.Operands.(fil.FunctionSignature)
		fields := []string{sig.Kind.String()}
		if sig.Name != "" {
			fields = append(fields, quote(sig.Name))
		}
		fields = append(fields, formatBool("rest", sig.HasRestParam))
		d.writeLine(in, depth, fields, in.InnerOutputs)

	case fil.OpEndFunction:
		d.writeLine(in, depth, nil, nil)

	case fil.OpBeginClassDefinition:
		cd := in.Operands.(fil.ClassDefinition)
		fields := append(inputFields(in), quote(cd.Name), formatBool("super", cd.HasSuper))
		d.writeLine(in, depth, fields, nil)

	case fil.OpEndClassDefinition:
		d.writeLine(in, depth, nil, nil)

	case fil.OpBeginClassConstructor, fil.OpEndClassConstructor:
		d.writeLine(in, depth, nil, in.InnerOutputs)

	case fil.OpBeginClassMember:
		cms := in.Operands.(fil.ClassMemberSignature)
		fields := []string{cms.Member.String(), quote(cms.Name)}
		d.writeLine(in, depth, fields, in.InnerOutputs)

	case fil.OpEndClassMember:
		d.writeLine(in, depth, nil, nil)

	default:
		return false
	}
	return true
}
