package jslift

import (
	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
)

// classMemberHeader renders the opening line for one class-member
// opcode, applying the private-name "#" convention and the
// static/getter/setter modifiers implied by its two-axis Member field.
func classMemberHeader(cms fil.ClassMemberSignature, params []fil.Variable) string {
	m := cms.Member
	prefix := ""
	if m.Scope == fil.ClassMemberStatic {
		prefix = "static "
	}
	name := cms.Name
	if m.Scope == fil.ClassMemberPrivate {
		name = "#" + name
	}
	switch m.Kind {
	case fil.ClassMemberGetter:
		return prefix + "get " + name + "() {"
	case fil.ClassMemberSetter:
		return prefix + "set " + name + "(" + renderParams(params, false) + ") {"
	default:
		return prefix + name + "(" + renderParams(params, false) + ") {"
	}
}

func (l *Lifter) handleClass(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpBeginClassDefinition:
		cd := in.Operands.(fil.ClassDefinition)
		out := in.Output()
		header := "class " + cd.Name
		if cd.HasSuper {
			header += " extends " + l.operand(in.Inputs[0]).Text()
		}
		header += " {"
		if out != fil.Invalid {
			header = declPrefix(out) + header
			l.exprs[out] = expr.New(expr.Identifier, out.String())
		}
		l.writer.EmitLine(header)
		l.writer.Indent()

	case fil.OpEndClassDefinition:
		l.writer.Dedent()
		l.writer.EmitLine("};")

	case fil.OpBeginClassConstructor:
		l.writer.EmitLine("constructor(" + renderParams(in.InnerOutputs, false) + ") {")
		l.writer.Indent()
		for _, p := range in.InnerOutputs {
			l.exprs[p] = expr.New(expr.Identifier, p.String())
		}

	case fil.OpEndClassConstructor:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginClassMember:
		cms := in.Operands.(fil.ClassMemberSignature)
		l.writer.EmitLine(classMemberHeader(cms, in.InnerOutputs))
		l.writer.Indent()
		for _, p := range in.InnerOutputs {
			l.exprs[p] = expr.New(expr.Identifier, p.String())
		}

	case fil.OpEndClassMember:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}
