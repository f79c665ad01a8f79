package jslift

import (
	"strings"

	"github.com/cwbudde/fillift/internal/fil"
)

// renderArrayPattern implements array destructuring: entries are
// rendered in order, each preceded by (index - last-index) bare commas
// to represent skipped elements, the final entry getting a "..." prefix
// when has-rest-element is set.
func renderArrayPattern(indices []int, outputs []fil.Variable, hasRest bool) string {
	var b strings.Builder
	b.WriteByte('[')
	lastIndex := -1
	for i, idx := range indices {
		skips := idx - lastIndex - 1
		if i > 0 {
			skips++ // the ordinary separator between two listed elements
		}
		for ; skips > 0; skips-- {
			b.WriteByte(',')
		}
		if hasRest && i == len(indices)-1 {
			b.WriteString("...")
		}
		if i < len(outputs) {
			b.WriteString(outputs[i].String())
		}
		lastIndex = idx
	}
	b.WriteByte(']')
	return b.String()
}

// renderObjectPattern implements the object form: "key: output" pairs in
// order, with a trailing "...rest" when has-rest-element is set.
func renderObjectPattern(keys []string, outputs []fil.Variable, hasRest bool) string {
	parts := make([]string, 0, len(keys)+1)
	for i, key := range keys {
		if i < len(outputs) {
			parts = append(parts, key+": "+outputs[i].String())
		} else {
			parts = append(parts, key+": ")
		}
	}
	if hasRest && len(outputs) > len(keys) {
		parts = append(parts, "..."+outputs[len(outputs)-1].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (l *Lifter) handleDestructure(in fil.Instruction) error {
	switch in.Opcode {
	case fil.OpDestructArray:
		d := in.Operands.(fil.ArrayDestructure)
		pattern := renderArrayPattern(d.Indices, in.Outputs, d.HasRest)
		src := l.operand(in.Inputs[0])
		l.writer.EmitLine("const " + pattern + " = " + src.Text() + ";")

	case fil.OpDestructObject:
		d := in.Operands.(fil.ObjectDestructure)
		pattern := renderObjectPattern(d.Keys, in.Outputs, d.HasRest)
		src := l.operand(in.Inputs[0])
		l.writer.EmitLine("const " + pattern + " = " + src.Text() + ";")

	case fil.OpDestructArrayAndAssign:
		d := in.Operands.(fil.ArrayDestructure)
		pattern := renderArrayPattern(d.Indices, in.Outputs, d.HasRest)
		src := l.operand(in.Inputs[0])
		l.writer.EmitLine(pattern + " = " + src.Text() + ";")

	case fil.OpDestructObjectAndAssign:
		d := in.Operands.(fil.ObjectDestructure)
		pattern := renderObjectPattern(d.Keys, in.Outputs, d.HasRest)
		src := l.operand(in.Inputs[0])
		// A statement starting with "{" parses as a block, not an
		// object pattern, so the assignment form must be parenthesized.
		l.writer.EmitLine("(" + pattern + " = " + src.Text() + ");")

	default:
		return l.unhandledOpcode(in)
	}
	return nil
}
