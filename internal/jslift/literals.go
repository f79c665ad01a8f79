package jslift

import (
	"math"
	"math/big"
	"strconv"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
)

// renderFloat implements "Numeric literals" for
// LoadFloat: NaN and the infinities render as identifiers, everything
// else via its shortest round-trip decimal form.
func renderFloat(v float64) (text string, class expr.Class) {
	switch {
	case math.IsNaN(v):
		return "NaN", expr.Keyword
	case math.IsInf(v, 1):
		return "Infinity", expr.Keyword
	case math.IsInf(v, -1):
		return "-Infinity", expr.NegativeNumberLiteral
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v < 0 {
		return s, expr.NegativeNumberLiteral
	}
	return s, expr.NumberLiteral
}

// renderBigInt implements LoadBigInt: "<decimal>n".
func renderBigInt(decimal string) string {
	n, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return decimal + "n"
	}
	return n.String() + "n"
}

func (l *Lifter) handleLiteral(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpLoadInteger:
		lit := in.Operands.(fil.IntegerLiteral)
		l.define(in.Output(), in.Index, expr.New(expr.NumberLiteral, strconv.FormatInt(lit.Value, 10)))
	case fil.OpLoadFloat:
		lit := in.Operands.(fil.FloatLiteral)
		text, class := renderFloat(lit.Value)
		l.define(in.Output(), in.Index, expr.New(class, text))
	case fil.OpLoadBigInt:
		lit := in.Operands.(fil.BigIntLiteral)
		l.define(in.Output(), in.Index, expr.New(expr.NumberLiteral, renderBigInt(lit.Decimal)))
	case fil.OpLoadString:
		lit := in.Operands.(fil.StringLiteral)
		l.define(in.Output(), in.Index, expr.New(expr.StringLiteral, strconv.Quote(lit.Value)))
	case fil.OpLoadBoolean:
		lit := in.Operands.(fil.BooleanLiteral)
		text := "false"
		if lit.Value {
			text = "true"
		}
		l.define(in.Output(), in.Index, expr.New(expr.Keyword, text))
	case fil.OpLoadUndefined:
		l.define(in.Output(), in.Index, expr.New(expr.Keyword, "undefined"))
	case fil.OpLoadNull:
		l.define(in.Output(), in.Index, expr.New(expr.Keyword, "null"))
	case fil.OpLoadThis:
		l.define(in.Output(), in.Index, expr.New(expr.Keyword, "this"))
	case fil.OpLoadArguments:
		l.define(in.Output(), in.Index, expr.New(expr.Keyword, "arguments"))
	case fil.OpLoadRegExp:
		lit := in.Operands.(fil.RegExpLiteral)
		l.define(in.Output(), in.Index, expr.New(expr.RegExpLiteral, "/"+lit.Pattern+"/"+lit.Flags))
	default:
		return l.unhandledOpcode(in)
	}
	return nil
}
