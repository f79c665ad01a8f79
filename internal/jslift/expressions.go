package jslift

import (
	"strings"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
)

func (l *Lifter) unhandledOpcode(in fil.Instruction) error {
	return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unhandled opcode %s", in.Opcode)
}

func (l *Lifter) handleExpression(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpBinaryOperation:
		op := in.Operands.(fil.BinaryOperation).Operator
		lhs := l.operand(in.Inputs[0])
		rhs := l.operand(in.Inputs[1])
		e := expr.New(expr.BinaryExpression, "")
		e = e.ExtendExpr(lhs, expr.LHS)
		e = e.Extend(" " + op + " ")
		e = e.ExtendExpr(rhs, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpUnaryOperation:
		op := in.Operands.(fil.UnaryOperation).Operator
		operand := l.operand(in.Inputs[0])
		e := expr.New(expr.UnaryExpression, op)
		if isWordOperator(op) {
			e = e.Extend(" ")
		}
		e = e.ExtendExpr(operand, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpPostfixOperation:
		op := in.Operands.(fil.PostfixOperation).Operator
		operand := l.operand(in.Inputs[0])
		e := expr.New(expr.PostfixExpression, "")
		e = e.ExtendExpr(operand, expr.LHS)
		e = e.Extend(op)
		l.define(in.Output(), in.Index, e)

	case fil.OpTernaryOperation:
		cond := l.operand(in.Inputs[0])
		thenE := l.operand(in.Inputs[1])
		elseE := l.operand(in.Inputs[2])
		e := expr.New(expr.TernaryExpression, "")
		e = e.ExtendExpr(cond, expr.LHS)
		e = e.Extend(" ? ")
		e = e.ExtendExpr(thenE, expr.RHS)
		e = e.Extend(" : ")
		e = e.ExtendExpr(elseE, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpReassign:
		target := l.operand(in.Inputs[0])
		value := l.operand(in.Inputs[1])
		e := expr.New(expr.AssignmentExpression, "")
		e = e.ExtendExpr(target, expr.LHS)
		e = e.Extend(" = ")
		e = e.ExtendExpr(value, expr.RHS)
		l.emitExprStatement(e)

	case fil.OpDup:
		src := l.operand(in.Inputs[0])
		l.define(in.Output(), in.Index, src)

	case fil.OpSpread:
		inner := l.operand(in.Inputs[0])
		e := expr.New(expr.SpreadExpression, "...")
		e = e.ExtendExpr(inner, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpCreateArray:
		parts := make([]string, len(in.Inputs))
		for i, v := range in.Inputs {
			parts[i] = l.operand(v).Text()
		}
		e := expr.New(expr.ArrayLiteral, "["+strings.Join(parts, ", ")+"]")
		l.define(in.Output(), in.Index, e)

	case fil.OpCreateObject:
		keys := in.Operands.(fil.ObjectDestructure).Keys
		parts := make([]string, len(in.Inputs))
		for i, v := range in.Inputs {
			key := ""
			if i < len(keys) {
				key = keys[i] + ": "
			}
			parts[i] = key + l.operand(v).Text()
		}
		e := expr.New(expr.ObjectLiteral, "{"+strings.Join(parts, ", ")+"}")
		l.define(in.Output(), in.Index, e)

	case fil.OpCreateTemplateString:
		parts := make([]string, len(in.Inputs))
		for i, v := range in.Inputs {
			parts[i] = "${" + l.operand(v).Text() + "}"
		}
		e := expr.New(expr.TemplateLiteral, "`"+strings.Join(parts, "")+"`")
		l.define(in.Output(), in.Index, e)

	case fil.OpGetProperty:
		prop := in.Operands.(fil.PropertyAccess).Property
		obj := l.operand(in.Inputs[0])
		e := expr.New(expr.MemberExpression, "")
		e = e.ExtendExpr(obj, expr.LHS)
		e = e.Extend("." + prop)
		l.define(in.Output(), in.Index, e)

	case fil.OpSetProperty:
		prop := in.Operands.(fil.PropertyAccess).Property
		obj := l.operand(in.Inputs[0])
		val := l.operand(in.Inputs[1])
		e := expr.New(expr.AssignmentExpression, "")
		member := expr.New(expr.MemberExpression, "")
		member = member.ExtendExpr(obj, expr.LHS)
		member = member.Extend("." + prop)
		e = e.ExtendExpr(member, expr.LHS)
		e = e.Extend(" = ")
		e = e.ExtendExpr(val, expr.RHS)
		l.emitExprStatement(e)

	case fil.OpDeleteProperty:
		prop := in.Operands.(fil.PropertyAccess).Property
		obj := l.operand(in.Inputs[0])
		member := expr.New(expr.MemberExpression, "")
		member = member.ExtendExpr(obj, expr.LHS)
		member = member.Extend("." + prop)
		e := expr.New(expr.UnaryExpression, "delete ")
		e = e.ExtendExpr(member, expr.RHS)
		l.define(in.Output(), in.Index, e)

	case fil.OpGetElement:
		obj := l.operand(in.Inputs[0])
		idx := l.operand(in.Inputs[1])
		e := expr.New(expr.MemberExpression, "")
		e = e.ExtendExpr(obj, expr.LHS)
		e = e.Extend("[")
		e = e.ExtendExpr(idx, expr.RHS)
		e = e.Extend("]")
		l.define(in.Output(), in.Index, e)

	case fil.OpSetElement:
		obj := l.operand(in.Inputs[0])
		idx := l.operand(in.Inputs[1])
		val := l.operand(in.Inputs[2])
		member := expr.New(expr.MemberExpression, "")
		member = member.ExtendExpr(obj, expr.LHS)
		member = member.Extend("[")
		member = member.ExtendExpr(idx, expr.RHS)
		member = member.Extend("]")
		e := expr.New(expr.AssignmentExpression, "")
		e = e.ExtendExpr(member, expr.LHS)
		e = e.Extend(" = ")
		e = e.ExtendExpr(val, expr.RHS)
		l.emitExprStatement(e)

	case fil.OpCallFunction:
		callee := l.operand(in.Inputs[0])
		args := in.Inputs[1:]
		l.define(in.Output(), in.Index, l.renderCall(callee, args, in.Operands.(fil.CallArguments).HasSpread))

	case fil.OpCallMethod, fil.OpCallComputedMethod:
		mc := in.Operands.(fil.MethodCall)
		recv := l.operand(in.Inputs[0])
		var member expr.Expression
		argStart := 1
		if mc.Computed {
			propExpr := l.operand(in.Inputs[1])
			member = expr.New(expr.MemberExpression, "")
			member = member.ExtendExpr(recv, expr.LHS)
			member = member.Extend("[")
			member = member.ExtendExpr(propExpr, expr.RHS)
			member = member.Extend("]")
			argStart = 2
		} else {
			member = expr.New(expr.MemberExpression, "")
			member = member.ExtendExpr(recv, expr.LHS)
			member = member.Extend("." + mc.MethodName)
		}
		l.define(in.Output(), in.Index, l.renderCall(member, in.Inputs[argStart:], mc.HasSpread))

	case fil.OpConstruct:
		callee := l.operand(in.Inputs[0])
		args := in.Inputs[1:]
		parts := make([]string, len(args))
		hasSpread := in.Operands.(fil.CallArguments).HasSpread
		for i, v := range args {
			a := l.operand(v)
			if hasSpread && i == len(args)-1 {
				spread := expr.New(expr.SpreadExpression, "...")
				spread = spread.ExtendExpr(a, expr.RHS)
				a = spread
			}
			parts[i] = a.Text()
		}
		e := expr.New(expr.NewExpression, "new ")
		e = e.ExtendExpr(callee, expr.LHS)
		e = e.Extend("(" + strings.Join(parts, ", ") + ")")
		l.define(in.Output(), in.Index, e)

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}

// renderCall composes a CallExpression from a callee expression and
// argument input variables, honoring the shared has-spread flag on the
// final argument.
func (l *Lifter) renderCall(callee expr.Expression, args []fil.Variable, hasSpread bool) expr.Expression {
	parts := make([]string, len(args))
	for i, v := range args {
		a := l.operand(v)
		if hasSpread && i == len(args)-1 {
			spread := expr.New(expr.SpreadExpression, "...")
			spread = spread.ExtendExpr(a, expr.RHS)
			a = spread
		}
		parts[i] = a.Text()
	}
	e := expr.New(expr.CallExpression, "")
	e = e.ExtendExpr(callee, expr.LHS)
	e = e.Extend("(" + strings.Join(parts, ", ") + ")")
	return e
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "delete", "await":
		return true
	default:
		return false
	}
}
