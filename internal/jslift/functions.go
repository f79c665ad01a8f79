package jslift

import (
	"strings"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
)

// renderParams renders an ordered parameter variable list, converting
// the final entry to rest form when hasRest is set.
func renderParams(params []fil.Variable, hasRest bool) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if hasRest && i == len(params)-1 {
			parts[i] = "..." + p.String()
		} else {
			parts[i] = p.String()
		}
	}
	return strings.Join(parts, ", ")
}

func declPrefix(out fil.Variable) string {
	if out == fil.Invalid {
		return ""
	}
	return "const " + out.String() + " = "
}

// functionHeader renders the opening line for one FunctionKind. Every
// kind but FunctionConstructor is bound to its output
// variable via a const declaration, since FIL treats a defined function
// as an ordinary value later referenced by CallFunction.
func functionHeader(sig fil.FunctionSignature, params string, out fil.Variable) string {
	switch sig.Kind {
	case fil.FunctionGenerator:
		return declPrefix(out) + "function* " + sig.Name + "(" + params + ") {"
	case fil.FunctionAsync:
		return declPrefix(out) + "async function " + sig.Name + "(" + params + ") {"
	case fil.FunctionAsyncGenerator:
		return declPrefix(out) + "async function* " + sig.Name + "(" + params + ") {"
	case fil.FunctionArrow:
		return declPrefix(out) + "(" + params + ") => {"
	case fil.FunctionAsyncArrow:
		return declPrefix(out) + "async (" + params + ") => {"
	case fil.FunctionConstructor:
		return "constructor(" + params + ") {"
	default:
		return declPrefix(out) + "function " + sig.Name + "(" + params + ") {"
	}
}

func (l *Lifter) handleFunction(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpBeginFunction:
		sig := in.Operands.(fil.FunctionSignature)
		l.funcKindStack = append(l.funcKindStack, sig.Kind)

		params := renderParams(in.InnerOutputs, sig.HasRestParam)
		out := in.Output()
		l.writer.EmitLine(functionHeader(sig, params, out))
		l.writer.Indent()

		if out != fil.Invalid {
			l.exprs[out] = expr.New(expr.Identifier, out.String())
		}
		for _, p := range in.InnerOutputs {
			l.exprs[p] = expr.New(expr.Identifier, p.String())
		}

	case fil.OpEndFunction:
		l.writer.Dedent()
		n := len(l.funcKindStack)
		kind := fil.FunctionPlain
		if n > 0 {
			kind = l.funcKindStack[n-1]
			l.funcKindStack = l.funcKindStack[:n-1]
		}
		if kind == fil.FunctionArrow || kind == fil.FunctionAsyncArrow {
			l.writer.EmitLine("};")
		} else {
			l.writer.EmitLine("}")
		}

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}
