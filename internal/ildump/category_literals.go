package ildump

import (
	"strconv"

	"github.com/cwbudde/fillift/internal/fil"
)

// tryDumpLiteralOp handles the load/literal and composite-literal
// opcode family.
func (d *Dumper) tryDumpLiteralOp(in fil.Instruction, depth int) bool {
	switch in.Opcode {
	case fil.OpLoadInteger:
		lit := in.Operands.(fil.IntegerLiteral)
		d.writeLine(in, depth, []string{strconv.FormatInt(lit.Value, 10)}, nil)
	case fil.OpLoadFloat:
		lit := in.Operands.(fil.FloatLiteral)
		d.writeLine(in, depth, []string{formatFloat(lit.Value)}, nil)
	case fil.OpLoadBigInt:
		lit := in.Operands.(fil.BigIntLiteral)
		d.writeLine(in, depth, []string{lit.Decimal + "n"}, nil)
	case fil.OpLoadString:
		lit := in.Operands.(fil.StringLiteral)
		d.writeLine(in, depth, []string{quote(lit.Value)}, nil)
	case fil.OpLoadBoolean:
		lit := in.Operands.(fil.BooleanLiteral)
		d.writeLine(in, depth, []string{formatBool("value", lit.Value)}, nil)
	case fil.OpLoadUndefined, fil.OpLoadNull, fil.OpLoadThis, fil.OpLoadArguments:
		d.writeLine(in, depth, nil, nil)
	case fil.OpLoadRegExp:
		lit := in.Operands.(fil.RegExpLiteral)
		d.writeLine(in, depth, []string{"/" + lit.Pattern + "/" + lit.Flags}, nil)
	case fil.OpCreateArray:
		d.writeLine(in, depth, inputFields(in), nil)
	case fil.OpCreateObject:
		keys := in.Operands.(fil.ObjectDestructure).Keys
		d.writeLine(in, depth, objectFields(in.Inputs, keys), nil)
	case fil.OpCreateTemplateString:
		d.writeLine(in, depth, inputFields(in), nil)
	default:
		return false
	}
	return true
}

func objectFields(inputs []fil.Variable, keys []string) []string {
	fields := make([]string, len(inputs))
	for i, v := range inputs {
		if i < len(keys) {
			fields[i] = quote(keys[i]) + ": " + v.String()
		} else {
			fields[i] = v.String()
		}
	}
	return fields
}
