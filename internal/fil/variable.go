// Package fil defines the fuzzer intermediate representation consumed by
// the lifting subsystem: variables, opcodes, instructions, and the
// ordered instruction stream (Code). The package carries no lifting
// logic of its own -- it is the external data model the lifters walk.
package fil

import "strconv"

// Variable is a non-negative integer identity with a canonical textual
// name "v<n>".
type Variable int

// String renders the canonical textual name of the variable.
func (v Variable) String() string {
	return "v" + strconv.Itoa(int(v))
}

// Invalid is the zero-value sentinel for "no variable" (e.g. an
// instruction with no output).
const Invalid Variable = -1
