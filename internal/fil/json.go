package fil

import (
	"encoding/json"
	"fmt"
)

// instructionJSON is the wire shape of an Instruction: Opcode is the
// canonical name (ParseOpcode/String), and Operands is decoded into
// the concrete struct the opcode expects via operandsPrototype, the
// same opcode-to-struct pairing the lifters' category dispatchers use
// for reading an Instruction's Operands field.
type instructionJSON struct {
	Opcode       string          `json:"opcode"`
	Operands     json.RawMessage `json:"operands,omitempty"`
	Inputs       []Variable      `json:"inputs,omitempty"`
	Outputs      []Variable      `json:"outputs,omitempty"`
	InnerOutputs []Variable      `json:"innerOutputs,omitempty"`
	Index        int             `json:"index"`
	Comment      string          `json:"comment,omitempty"`
}

// MarshalJSON renders the instruction with its opcode as a name
// instead of its numeric value, so a hand-authored fixture reads like
// the IL dumper's output ("BeginFunction", not "79").
func (in Instruction) MarshalJSON() ([]byte, error) {
	wire := instructionJSON{
		Opcode:       in.Opcode.String(),
		Inputs:       in.Inputs,
		Outputs:      in.Outputs,
		InnerOutputs: in.InnerOutputs,
		Index:        in.Index,
		Comment:      in.Comment,
	}
	if in.Operands != nil {
		raw, err := json.Marshal(in.Operands)
		if err != nil {
			return nil, fmt.Errorf("fil: marshaling operands for instruction %d (%s): %w", in.Index, in.Opcode, err)
		}
		wire.Operands = raw
	}
	return json.Marshal(wire)
}

// UnmarshalJSON parses an instruction back from its wire shape,
// allocating the concrete Operands type operandsPrototype says the
// named opcode expects.
func (in *Instruction) UnmarshalJSON(data []byte) error {
	var wire instructionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	op, ok := ParseOpcode(wire.Opcode)
	if !ok {
		return fmt.Errorf("fil: instruction %d: unknown opcode name %q", wire.Index, wire.Opcode)
	}

	in.Opcode = op
	in.Inputs = wire.Inputs
	in.Outputs = wire.Outputs
	in.InnerOutputs = wire.InnerOutputs
	in.Index = wire.Index
	in.Comment = wire.Comment
	in.Operands = nil

	if len(wire.Operands) == 0 {
		return nil
	}

	proto := operandsPrototype(op)
	if proto == nil {
		return fmt.Errorf("fil: instruction %d (%s): carries operands but has no known operand shape", wire.Index, op)
	}
	if err := json.Unmarshal(wire.Operands, proto); err != nil {
		return fmt.Errorf("fil: instruction %d (%s): decoding operands: %w", wire.Index, op, err)
	}
	in.Operands = derefOperands(proto)
	return nil
}

// operandsPrototype returns a pointer to a zero-valued Operands struct
// for op, ready to be passed to json.Unmarshal, or nil if op carries no
// operand payload. This mirrors the opcode groupings of
// internal/ildump's category dispatch, just for decoding rather than
// rendering.
func operandsPrototype(op Opcode) Operands {
	switch op {
	case OpLoadInteger:
		return &IntegerLiteral{}
	case OpLoadFloat:
		return &FloatLiteral{}
	case OpLoadBigInt:
		return &BigIntLiteral{}
	case OpLoadString:
		return &StringLiteral{}
	case OpLoadBoolean:
		return &BooleanLiteral{}
	case OpLoadRegExp:
		return &RegExpLiteral{}
	case OpCreateObject:
		return &ObjectDestructure{}
	case OpBinaryOperation:
		return &BinaryOperation{}
	case OpUnaryOperation:
		return &UnaryOperation{}
	case OpPostfixOperation:
		return &PostfixOperation{}
	case OpGetProperty, OpSetProperty, OpDeleteProperty:
		return &PropertyAccess{}
	case OpCallFunction, OpConstruct:
		return &CallArguments{}
	case OpCallMethod, OpCallComputedMethod:
		return &MethodCall{}
	case OpExplore, OpProbe, OpFixup:
		return &MutatorCall{}
	case OpDestructArray, OpDestructArrayAndAssign:
		return &ArrayDestructure{}
	case OpDestructObject, OpDestructObjectAndAssign:
		return &ObjectDestructure{}
	case OpBeginSwitchCase, OpEndSwitchCase:
		return &SwitchCase{}
	case OpBeginFunction:
		return &FunctionSignature{}
	case OpBeginClassMember:
		return &ClassMemberSignature{}
	case OpBeginClassDefinition:
		return &ClassDefinition{}

	case OpWasmBeginFunction:
		return &WasmFunctionSignature{}
	case OpWasmImport:
		return &WasmImport{}
	case OpWasmDefineGlobal:
		return &WasmDefineGlobal{}
	case OpWasmDefineTable:
		return &WasmDefineTable{}
	case OpWasmDefineMemory:
		return &WasmDefineMemory{}
	case OpWasmDefineTag:
		return &WasmDefineTag{}
	case OpWasmDefineTypeGroup:
		return &WasmDefineTypeGroup{}
	case OpWasmResolveForwardReference:
		return &WasmResolveForwardReference{}
	case OpWasmDefineDataSegment:
		return &WasmDefineDataSegment{}
	case OpWasmDefineElementSegment:
		return &WasmDefineElementSegment{}
	case OpWasmConst:
		return &WasmConstValue{}
	case OpWasmNumericOp:
		return &WasmNumericOp{}
	case OpWasmConvOp:
		return &WasmConvOp{}
	case OpWasmReassign:
		return &WasmReassign{}
	case OpWasmBeginBlock, OpWasmBeginLoop, OpWasmBeginIf, OpWasmBeginElse,
		OpWasmBeginTry, OpWasmBeginCatch, OpWasmBeginCatchAll:
		return &WasmBlockSignature{}
	case OpWasmBranchTable:
		return &WasmBranchTable{}
	case OpWasmCallIndirect, OpWasmReturnCallIndirect:
		return &WasmCallIndirect{}
	case OpWasmMemoryLoad, OpWasmMemoryStore, OpWasmAtomicMemoryLoad, OpWasmAtomicMemoryStore:
		return &WasmMemoryImmediate{}
	case OpWasmSimdConst:
		return &WasmSimdConstValue{}
	case OpWasmSimdOp:
		return &WasmSimdOp{}
	case OpWasmStructNew:
		return &WasmStructNew{}
	case OpWasmArrayNewFixed:
		return &WasmArrayNewFixed{}
	case OpWasmRefNull:
		return &WasmRefNullType{}

	default:
		return nil
	}
}

// derefOperands unwraps the pointer operandsPrototype hands back so
// Instruction.Operands holds the same value shape (by value, not by
// pointer) that hand-built fixtures and the lifters' type assertions
// expect.
func derefOperands(proto Operands) Operands {
	switch v := proto.(type) {
	case *IntegerLiteral:
		return *v
	case *FloatLiteral:
		return *v
	case *BigIntLiteral:
		return *v
	case *StringLiteral:
		return *v
	case *BooleanLiteral:
		return *v
	case *RegExpLiteral:
		return *v
	case *BinaryOperation:
		return *v
	case *UnaryOperation:
		return *v
	case *PostfixOperation:
		return *v
	case *PropertyAccess:
		return *v
	case *CallArguments:
		return *v
	case *MethodCall:
		return *v
	case *MutatorCall:
		return *v
	case *ArrayDestructure:
		return *v
	case *ObjectDestructure:
		return *v
	case *SwitchCase:
		return *v
	case *FunctionSignature:
		return *v
	case *ClassMemberSignature:
		return *v
	case *ClassDefinition:
		return *v
	case *WasmFunctionSignature:
		return *v
	case *WasmImport:
		return *v
	case *WasmDefineGlobal:
		return *v
	case *WasmDefineTable:
		return *v
	case *WasmDefineMemory:
		return *v
	case *WasmDefineTag:
		return *v
	case *WasmDefineTypeGroup:
		return *v
	case *WasmResolveForwardReference:
		return *v
	case *WasmDefineDataSegment:
		return *v
	case *WasmDefineElementSegment:
		return *v
	case *WasmConstValue:
		return *v
	case *WasmNumericOp:
		return *v
	case *WasmConvOp:
		return *v
	case *WasmReassign:
		return *v
	case *WasmBlockSignature:
		return *v
	case *WasmBranchTable:
		return *v
	case *WasmCallIndirect:
		return *v
	case *WasmMemoryImmediate:
		return *v
	case *WasmSimdConstValue:
		return *v
	case *WasmSimdOp:
		return *v
	case *WasmStructNew:
		return *v
	case *WasmArrayNewFixed:
		return *v
	case *WasmRefNullType:
		return *v
	default:
		return proto
	}
}
