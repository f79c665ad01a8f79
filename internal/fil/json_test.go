package fil

import (
	"encoding/json"
	"testing"
)

func TestInstructionJSONRoundTrip(t *testing.T) {
	code := Code{
		{Index: 0, Opcode: OpLoadInteger, Operands: IntegerLiteral{Value: 42}, Outputs: []Variable{0}},
		{Index: 1, Opcode: OpBinaryOperation, Operands: BinaryOperation{Operator: "+"}, Inputs: []Variable{0, 0}, Outputs: []Variable{1}},
		{Index: 2, Opcode: OpReturn, Inputs: []Variable{1}},
	}

	data, err := json.Marshal(code)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Code
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got) != len(code) {
		t.Fatalf("got %d instructions, want %d", len(got), len(code))
	}
	if got[0].Operands.(IntegerLiteral).Value != 42 {
		t.Errorf("instruction 0 operands = %#v, want IntegerLiteral{42}", got[0].Operands)
	}
	if got[1].Operands.(BinaryOperation).Operator != "+" {
		t.Errorf("instruction 1 operands = %#v, want BinaryOperation{\"+\"}", got[1].Operands)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("round-tripped code failed validation: %v", err)
	}
}

func TestParseOpcodeRoundTrip(t *testing.T) {
	for _, op := range []Opcode{OpLoadInteger, OpBeginFunction, OpWasmBeginFunction, OpReturn} {
		name := op.String()
		got, ok := ParseOpcode(name)
		if !ok {
			t.Fatalf("ParseOpcode(%q) not found", name)
		}
		if got != op {
			t.Errorf("ParseOpcode(%q) = %v, want %v", name, got, op)
		}
	}
}

func TestUnmarshalUnknownOpcodeErrors(t *testing.T) {
	var in Instruction
	err := json.Unmarshal([]byte(`{"opcode":"NotARealOpcode","index":0}`), &in)
	if err == nil {
		t.Fatal("expected an error for an unknown opcode name")
	}
}
