package jslift

import (
	"fmt"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
)

func (l *Lifter) handleSimpleStatement(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpReturn:
		if len(in.Inputs) == 0 {
			l.writer.EmitLine("return;")
			return nil
		}
		l.writer.EmitLine("return " + l.operand(in.Inputs[0]).Text() + ";")

	case fil.OpThrow:
		l.writer.EmitLine("throw " + l.operand(in.Inputs[0]).Text() + ";")

	case fil.OpYield:
		v := l.operand(in.Inputs[0])
		e := expr.New(expr.YieldExpression, "yield ")
		e = e.ExtendExpr(v, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpYieldEach:
		v := l.operand(in.Inputs[0])
		e := expr.New(expr.YieldExpression, "yield* ")
		e = e.ExtendExpr(v, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpAwait:
		v := l.operand(in.Inputs[0])
		e := expr.New(expr.UnaryExpression, "await ")
		e = e.ExtendExpr(v, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpPrint:
		v := l.operand(in.Inputs[0])
		l.writer.EmitLine(fmt.Sprintf("fuzzilli('FUZZILLI_PRINT', %s);", v.Text()))

	case fil.OpLoopBreak:
		l.writer.EmitLine("break;")

	case fil.OpLoopContinue:
		l.writer.EmitLine("continue;")

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}
