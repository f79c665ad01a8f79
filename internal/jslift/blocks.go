package jslift

import (
	"fmt"
	"strings"

	"github.com/cwbudde/fillift/internal/expr"
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/scriptwriter"
)

// joinScratchLines strips indentation and a trailing statement
// semicolon from each line of a scratch-captured phase, then rejoins
// them with ", " to form a single for-loop header clause.
func joinScratchLines(text string) string {
	trimmed := strings.TrimRight(text, "\n")
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(strings.TrimSpace(ln), ";")
	}
	return strings.Join(lines, ", ")
}

// forLoopFrame accumulates the three header clauses of a classic for
// loop, one phase at a time, since FIL threads each phase's body
// through the ordinary instruction stream rather than as a single
// expression operand.
type forLoopFrame struct {
	init, cond, after string
}

// pushScratchWriter redirects subsequent EmitLine calls to a fresh,
// throwaway writer, used to capture a phase's lifted statements as
// plain text so they can be re-joined into a single for-loop header
// clause.
func (l *Lifter) pushScratchWriter() {
	l.scratchStack = append(l.scratchStack, l.writer)
	l.writer = scriptwriter.New(scriptwriter.Config{})
}

// popScratchJoined restores the previous writer and returns the
// scratch writer's lines, each stripped of indentation and trailing
// semicolon, joined with ", ".
func (l *Lifter) popScratchJoined() string {
	text := l.writer.String()
	n := len(l.scratchStack)
	l.writer = l.scratchStack[n-1]
	l.scratchStack = l.scratchStack[:n-1]
	return joinScratchLines(text)
}

func (l *Lifter) handleBlock(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpBeginIf:
		l.writer.EmitLine("if (" + l.operand(in.Inputs[0]).Text() + ") {")
		l.writer.Indent()

	case fil.OpBeginElse:
		l.writer.Dedent()
		l.writer.EmitLine("} else {")
		l.writer.Indent()

	case fil.OpEndIf:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginSwitch:
		l.writer.EmitLine("switch (" + l.operand(in.Inputs[0]).Text() + ") {")
		l.writer.Indent()

	case fil.OpBeginSwitchCase:
		sc := in.Operands.(fil.SwitchCase)
		if sc.IsDefault {
			l.writer.EmitLine("default:")
		} else {
			l.writer.EmitLine("case " + l.operand(in.Inputs[0]).Text() + ":")
		}
		l.writer.Indent()

	case fil.OpEndSwitchCase:
		sc := in.Operands.(fil.SwitchCase)
		if !sc.FallsThrough {
			l.writer.EmitLine("break;")
		}
		l.writer.Dedent()

	case fil.OpEndSwitch:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginWhileLoopHeader:
		l.writer.EmitLine("while (" + l.operand(in.Inputs[0]).Text() + ") {")

	case fil.OpBeginWhileLoopBody:
		l.writer.Indent()

	case fil.OpEndWhileLoop:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginDoWhileLoopHeader:
		l.writer.EmitLine("do {")

	case fil.OpBeginDoWhileLoopBody:
		l.writer.Indent()

	case fil.OpEndDoWhileLoop:
		l.writer.Dedent()
		l.writer.EmitLine("} while (" + l.operand(in.Inputs[0]).Text() + ");")

	case fil.OpBeginForLoopInitializer:
		l.forStack = append(l.forStack, forLoopFrame{})
		l.pushScratchWriter()

	case fil.OpBeginForLoopCondition:
		l.forStack[len(l.forStack)-1].init = l.popScratchJoined()
		l.pushScratchWriter()

	case fil.OpBeginForLoopAfterthought:
		l.forStack[len(l.forStack)-1].cond = l.popScratchJoined()
		l.pushScratchWriter()

	case fil.OpBeginForLoopBody:
		l.forStack[len(l.forStack)-1].after = l.popScratchJoined()
		f := l.forStack[len(l.forStack)-1]
		l.writer.EmitLine(fmt.Sprintf("for (%s; %s; %s) {", f.init, f.cond, f.after))
		l.writer.Indent()

	case fil.OpEndForLoop:
		l.writer.Dedent()
		l.writer.EmitLine("}")
		l.forStack = l.forStack[:len(l.forStack)-1]

	case fil.OpBeginForInLoop:
		v := loopVariable(in)
		l.writer.EmitLine("for (const " + v.String() + " in " + l.operand(in.Inputs[0]).Text() + ") {")
		l.writer.Indent()
		l.exprs[v] = expr.New(expr.Identifier, v.String())

	case fil.OpEndForInLoop:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginForOfLoop:
		v := loopVariable(in)
		l.writer.EmitLine("for (const " + v.String() + " of " + l.operand(in.Inputs[0]).Text() + ") {")
		l.writer.Indent()
		l.exprs[v] = expr.New(expr.Identifier, v.String())

	case fil.OpEndForOfLoop:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginRepeatLoop:
		v := loopVariable(in)
		count := l.operand(in.Inputs[0]).Text()
		l.writer.EmitLine(fmt.Sprintf("for (let %s = 0; %s < %s; %s++) {", v, v, count, v))
		l.writer.Indent()
		l.exprs[v] = expr.New(expr.Identifier, v.String())

	case fil.OpEndRepeatLoop:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginTry:
		l.writer.EmitLine("try {")
		l.writer.Indent()

	case fil.OpBeginCatch:
		l.writer.Dedent()
		if len(in.InnerOutputs) > 0 {
			v := in.InnerOutputs[0]
			l.writer.EmitLine("} catch (" + v.String() + ") {")
			l.exprs[v] = expr.New(expr.Identifier, v.String())
		} else {
			l.writer.EmitLine("} catch {")
		}
		l.writer.Indent()

	case fil.OpBeginFinally:
		l.writer.Dedent()
		l.writer.EmitLine("} finally {")
		l.writer.Indent()

	case fil.OpEndTryCatch:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginWith:
		l.writer.EmitLine("with (" + l.operand(in.Inputs[0]).Text() + ") {")
		l.writer.Indent()

	case fil.OpEndWith:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	case fil.OpBeginBlockStatement:
		l.writer.EmitLine("{")
		l.writer.Indent()

	case fil.OpEndBlockStatement:
		l.writer.Dedent()
		l.writer.EmitLine("}")

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}

// loopVariable returns the loop-bound induction variable of a for-in/
// for-of/repeat instruction: its sole inner output.
func loopVariable(in fil.Instruction) fil.Variable {
	if len(in.InnerOutputs) > 0 {
		return in.InnerOutputs[0]
	}
	return fil.Invalid
}

// handleCodeString implements code-string lifting: the nested
// instructions are dispatched at a deeper indentation directly into the
// enclosing writer, becoming the template literal's body verbatim.
// codeStringDepth picks the outer-vs-nested backtick delimiter form.
func (l *Lifter) handleCodeString(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpBeginCodeString:
		delim := codeStringDelim(l.codeStringDepth)
		if out := in.Output(); out != fil.Invalid {
			l.writer.EmitLine("let " + out.String() + " = " + delim)
			l.exprs[out] = expr.New(expr.Identifier, out.String())
		} else {
			l.writer.EmitLine(delim)
		}
		l.writer.Indent()
		l.codeStringDepth++

	case fil.OpEndCodeString:
		l.codeStringDepth--
		l.writer.Dedent()
		l.writer.EmitLine(codeStringDelim(l.codeStringDepth) + ";")

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}

func codeStringDelim(depth int) string {
	if depth > 0 {
		return "\\`"
	}
	return "`"
}
