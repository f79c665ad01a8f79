// Package filerr formats lifting errors with instruction-index context,
// the way internal/errors formats compiler errors with source-line
// context: message + position + a short window of surrounding code +
// a caret, except the "position" is an instruction index into a
// fil.Code and the "source line" is a disassembled IL window rendered
// through internal/ildump rather than a source line.
package filerr

import (
	"fmt"
	"strings"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/ildump"
)

// Kind enumerates the ways a lift can fail.
type Kind int

const (
	// UnknownImportType means a Wasm input was reassigned in the
	// surrounding JS to a value whose static type no longer matches a
	// Wasm-importable kind.
	UnknownImportType Kind = iota
	// FailedIndexLookup means resolve-index(kind, variable) found no
	// matching import or definition.
	FailedIndexLookup
	// FailedSignatureLookup means a signature was referenced without
	// having been registered.
	FailedSignatureLookup
	// InvalidBranch means label resolution yielded a negative branch
	// depth.
	InvalidBranch
	// MissingTypeInformation means an indexed-reference or tag import
	// had no signature/type info available.
	MissingTypeInformation
	// FailedRetrieval means an import-binding lookup failed during
	// final binding.
	FailedRetrieval
	// InvalidInput means a FIL input variable's static type disagreed
	// with the opcode's expectation.
	InvalidInput
	// Fatal is the catch-all for programmer errors: it must abort with
	// diagnostic context naming the offending instruction index.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case UnknownImportType:
		return "unknown-import-type"
	case FailedIndexLookup:
		return "failed-index-lookup"
	case FailedSignatureLookup:
		return "failed-signature-lookup"
	case InvalidBranch:
		return "invalid-branch"
	case MissingTypeInformation:
		return "missing-type-information"
	case FailedRetrieval:
		return "failed-retrieval"
	case InvalidInput:
		return "invalid-input"
	case Fatal:
		return "fatal"
	default:
		return "unknown-error-kind"
	}
}

// Error is a lifting failure tied to a specific instruction.
type Error struct {
	Kind             Kind
	Message          string
	InstructionIndex int
	Code             fil.Code // optional: enables a disassembly window
}

// New builds an Error with no surrounding code available for context.
func New(kind Kind, index int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), InstructionIndex: index}
}

// NewInCode builds an Error that can render a disassembly window from
// code around the failing instruction.
func NewInCode(kind Kind, code fil.Code, index int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), InstructionIndex: index, Code: code}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Format()
}

// Format renders the error as "[kind] message at instruction N",
// followed by a short disassembly window around the failing
// instruction when Code is available.
func (e *Error) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s at instruction %d\n", e.Kind, e.Message, e.InstructionIndex)

	window := e.window(2, 2)
	if len(window) == 0 {
		return strings.TrimRight(sb.String(), "\n")
	}

	for _, w := range window {
		marker := "  "
		if w.index == e.InstructionIndex {
			marker = "->"
		}
		fmt.Fprintf(&sb, "%s %4d | %s\n", marker, w.index, w.line)
	}

	return strings.TrimRight(sb.String(), "\n")
}

type windowLine struct {
	index int
	line  string
}

// window dumps the instructions from InstructionIndex-before to
// InstructionIndex+after (clamped to Code's bounds) one line at a
// time, via ildump, so the window always reflects the same textual
// form a caller would see from a full dump.
func (e *Error) window(before, after int) []windowLine {
	if len(e.Code) == 0 || e.InstructionIndex < 0 || e.InstructionIndex >= len(e.Code) {
		return nil
	}

	start := e.InstructionIndex - before
	if start < 0 {
		start = 0
	}
	end := e.InstructionIndex + after
	if end >= len(e.Code) {
		end = len(e.Code) - 1
	}

	var lines []windowLine
	for i := start; i <= end; i++ {
		var sb strings.Builder
		d := ildump.NewDumper(e.Code, &sb)
		if err := d.DumpInstruction(i); err != nil {
			continue
		}
		lines = append(lines, windowLine{index: i, line: strings.TrimRight(sb.String(), "\n")})
	}
	return lines
}

// Errors formats multiple lifting errors, matching the header/body
// shape of a multi-error compiler report.
func Errors(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "lifting failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
