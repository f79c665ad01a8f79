package filerr

import (
	"strings"
	"testing"

	"github.com/cwbudde/fillift/internal/fil"
)

func sampleCode() fil.Code {
	return fil.Code{
		{Index: 0, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 1}, Outputs: []fil.Variable{0}},
		{Index: 1, Opcode: fil.OpLoadInteger, Operands: fil.IntegerLiteral{Value: 2}, Outputs: []fil.Variable{1}},
		{Index: 2, Opcode: fil.OpBinaryOperation, Operands: fil.BinaryOperation{Operator: "+"}, Inputs: []fil.Variable{0, 1}, Outputs: []fil.Variable{2}},
		{Index: 3, Opcode: fil.OpReturn, Inputs: []fil.Variable{2}},
	}
}

func TestErrorFormatWithoutCode(t *testing.T) {
	err := New(InvalidBranch, 3, "branch depth %d is negative", -1)
	got := err.Format()
	if !strings.Contains(got, "[invalid-branch]") || !strings.Contains(got, "instruction 3") {
		t.Errorf("unexpected format: %q", got)
	}
}

func TestErrorFormatWithCodeWindow(t *testing.T) {
	err := NewInCode(FailedIndexLookup, sampleCode(), 2, "no import bound for v0")
	got := err.Format()
	if !strings.Contains(got, "->") {
		t.Errorf("expected a marker line pointing at the failing instruction, got %q", got)
	}
	if !strings.Contains(got, "BinaryOperation") {
		t.Errorf("expected the disassembly window to include the failing opcode, got %q", got)
	}
}

func TestErrorsJoinsMultiple(t *testing.T) {
	errs := []*Error{
		New(InvalidInput, 0, "bad input"),
		New(MissingTypeInformation, 1, "missing type"),
	}
	got := Errors(errs)
	if !strings.Contains(got, "2 error(s)") {
		t.Errorf("expected a count header, got %q", got)
	}
}

func TestKindStrings(t *testing.T) {
	kinds := []Kind{
		UnknownImportType, FailedIndexLookup, FailedSignatureLookup,
		InvalidBranch, MissingTypeInformation, FailedRetrieval, InvalidInput,
		Fatal,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Errorf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
