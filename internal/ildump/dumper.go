package ildump

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/fillift/internal/fil"
)

// Dumper renders a fil.Code stream as flat, human-readable IL text. A
// Dumper carries no state across calls to Dump/DumpInstruction beyond
// the code it was built for and its precomputed indent depths -- a
// fresh value is constructed per lift, never reused across programs.
type Dumper struct {
	writer io.Writer
	code   fil.Code
	depths []int
}

// NewDumper creates a dumper for code, writing to writer.
func NewDumper(code fil.Code, writer io.Writer) *Dumper {
	return &Dumper{
		writer: writer,
		code:   code,
		depths: code.Depths(),
	}
}

// Dump renders every instruction in order.
func (d *Dumper) Dump() error {
	for i := range d.code {
		if err := d.DumpInstruction(i); err != nil {
			return err
		}
	}
	return nil
}

// DumpInstruction renders the instruction at position i (not
// Instruction.Index, which may differ if the caller sliced a Code
// window -- position i in this Dumper's code).
func (d *Dumper) DumpInstruction(i int) error {
	if i < 0 || i >= len(d.code) {
		return fmt.Errorf("ildump: instruction position %d out of range (len %d)", i, len(d.code))
	}
	in := d.code[i]
	depth := d.depths[i]

	if d.tryDumpLiteralOp(in, depth) {
		return nil
	}
	if d.tryDumpExpressionOp(in, depth) {
		return nil
	}
	if d.tryDumpControlOp(in, depth) {
		return nil
	}
	if d.tryDumpBlockOp(in, depth) {
		return nil
	}
	if d.tryDumpFunctionOp(in, depth) {
		return nil
	}
	if d.tryDumpWasmOp(in, depth) {
		return nil
	}

	return fmt.Errorf("ildump: instruction %d: unhandled opcode %s", in.Index, in.Opcode)
}

// writeLine renders one instruction's textual form:
// "<output> <- <OpcodeName> <field>, <field>, [<variadic>]", indented
// to depth and suffixed with the instruction's comment if present.
func (d *Dumper) writeLine(in fil.Instruction, depth int, fields []string, variadic []fil.Variable) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(outputText(in))
	b.WriteString(" <- ")
	b.WriteString(in.Opcode.String())

	if len(fields) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(fields, ", "))
	}
	if len(variadic) > 0 {
		if len(fields) > 0 {
			b.WriteString(", ")
		} else {
			b.WriteString(" ")
		}
		b.WriteString("[" + joinVars(variadic) + "]")
	}
	if in.Comment != "" {
		b.WriteString("  // " + in.Comment)
	}
	fmt.Fprintln(d.writer, b.String())
}

// outputText renders an instruction's output binding: "_" for none, a
// single "v<n>" for the common case, or a comma-joined list for
// multi-output opcodes (array/object destructuring).
func outputText(in fil.Instruction) string {
	switch len(in.Outputs) {
	case 0:
		return "_"
	case 1:
		return in.Outputs[0].String()
	default:
		return joinVars(in.Outputs)
	}
}

// inputFields renders every input variable as a leading field, the
// common case for opcodes whose fields are just "its inputs, in
// order" with no extra literal payload.
func inputFields(in fil.Instruction) []string {
	fields := make([]string, len(in.Inputs))
	for i, v := range in.Inputs {
		fields[i] = v.String()
	}
	return fields
}
