package fil

import "fmt"

// Instruction is an (Opcode, operands, input variables, output
// variable(s), inner-output variables, index-in-program) tuple.
// InnerOutputs exist only on block-starting instructions and denote
// values bound for the duration of the block (loop induction variables,
// catch parameters, function parameters, Wasm block labels).
type Instruction struct {
	Opcode       Opcode
	Operands     Operands
	Inputs       []Variable
	Outputs      []Variable
	InnerOutputs []Variable
	Index        int
	Comment      string
}

// Output returns the instruction's sole output variable, or Invalid if
// it has none. Most opcodes define at most one output; multi-output
// opcodes (array/object destructuring) use Outputs directly.
func (in Instruction) Output() Variable {
	if len(in.Outputs) == 0 {
		return Invalid
	}
	return in.Outputs[0]
}

// Code is an ordered sequence of Instructions, known (once Validate
// succeeds) to be structurally well-formed: every block-start has a
// matching block-end, and nesting is properly paired.
type Code []Instruction

// blockFrame tracks one open block during validation.
type blockFrame struct {
	opener Instruction
}

// Validate confirms block nesting is properly paired. A structural
// problem here is a programmer or fuzzer-mutation error, not a
// recoverable condition -- callers treat a non-nil error as fatal.
//
// Every block-starting opcode either replaces the current top-of-stack
// frame (if it is a phase transition of that frame's opener -- else
// after if, catch/finally after try, the next phase of a for-loop
// header, the body after a loop header) or pushes a genuinely new
// nested frame (e.g. a switch-case inside its switch). A terminal
// closer only ever pops.
func (c Code) Validate() error {
	var stack []blockFrame
	for _, in := range c {
		if in.Opcode.IsBlockStart() {
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if containsOpcode(blockEnds[top.opener.Opcode], in.Opcode) {
					stack[len(stack)-1] = blockFrame{opener: in}
					continue
				}
			}
			stack = append(stack, blockFrame{opener: in})
			continue
		}
		if isBlockCloser(in.Opcode) {
			if len(stack) == 0 {
				return fmt.Errorf("fil: instruction %d (%s) closes a block with none open", in.Index, in.Opcode)
			}
			top := stack[len(stack)-1]
			if !containsOpcode(blockEnds[top.opener.Opcode], in.Opcode) {
				return fmt.Errorf("fil: instruction %d (%s) does not validly close block opened by instruction %d (%s)",
					in.Index, in.Opcode, top.opener.Index, top.opener.Opcode)
			}
			stack = stack[:len(stack)-1]
			continue
		}
	}
	if len(stack) != 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("fil: instruction %d (%s) opens a block that is never closed", top.opener.Index, top.opener.Opcode)
	}
	return nil
}

// isBlockCloser reports whether op appears as a closing alternative of
// any block-opening opcode.
func isBlockCloser(op Opcode) bool {
	for _, closers := range blockEnds {
		if containsOpcode(closers, op) {
			return true
		}
	}
	return false
}

func containsOpcode(list []Opcode, op Opcode) bool {
	for _, c := range list {
		if c == op {
			return true
		}
	}
	return false
}

// Program is the root container the lifters consume: a top-level Code
// stream plus module-level metadata that is not itself part of any one
// instruction.
type Program struct {
	Code Code

	// GlobalObjectIdentifier names the host global object in emitted
	// JavaScript (e.g. "this", "globalThis", "global"); empty means the
	// lifter's default.
	GlobalObjectIdentifier string
}
