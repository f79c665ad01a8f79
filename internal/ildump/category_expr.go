package ildump

import "github.com/cwbudde/fillift/internal/fil"

// tryDumpExpressionOp handles operator, property/element, and call
// opcodes -- every non-literal value-producing instruction that isn't
// itself a block-structured construct.
func (d *Dumper) tryDumpExpressionOp(in fil.Instruction, depth int) bool {
	switch in.Opcode {
	case fil.OpBinaryOperation:
		op := in.Operands.(fil.BinaryOperation).Operator
		d.writeLine(in, depth, append(inputFields(in), quote(op)), nil)

	case fil.OpUnaryOperation:
		op := in.Operands.(fil.UnaryOperation).Operator
		d.writeLine(in, depth, append(inputFields(in), quote(op)), nil)

	case fil.OpPostfixOperation:
		op := in.Operands.(fil.PostfixOperation).Operator
		d.writeLine(in, depth, append(inputFields(in), quote(op)), nil)

	case fil.OpTernaryOperation, fil.OpReassign, fil.OpDup, fil.OpSpread:
		d.writeLine(in, depth, inputFields(in), nil)

	case fil.OpGetProperty, fil.OpDeleteProperty:
		prop := in.Operands.(fil.PropertyAccess).Property
		d.writeLine(in, depth, append(inputFields(in), quote(prop)), nil)

	case fil.OpSetProperty:
		prop := in.Operands.(fil.PropertyAccess).Property
		d.writeLine(in, depth, append(inputFields(in), quote(prop)), nil)

	case fil.OpGetElement, fil.OpSetElement:
		d.writeLine(in, depth, inputFields(in), nil)

	case fil.OpCallFunction:
		ca := in.Operands.(fil.CallArguments)
		d.writeLine(in, depth, append(inputFields(in), formatBool("spread", ca.HasSpread)), nil)

	case fil.OpCallMethod, fil.OpCallComputedMethod:
		mc := in.Operands.(fil.MethodCall)
		fields := inputFields(in)
		if !mc.Computed {
			fields = append(fields, quote(mc.MethodName))
		}
		fields = append(fields, formatBool("spread", mc.HasSpread))
		d.writeLine(in, depth, fields, nil)

	case fil.OpConstruct:
		ca := in.Operands.(fil.CallArguments)
		d.writeLine(in, depth, append(inputFields(in), formatBool("spread", ca.HasSpread)), nil)

	default:
		return false
	}
	return true
}
