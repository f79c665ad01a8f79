// Package ildump implements the flat, human-readable IL textual dumper:
// one line per instruction of the form
// "<output> <- <OpcodeName> <field>, <field>, [<variadic>]", with
// indentation tracking nested blocks. It is modeled directly on the
// category-dispatched bytecode.Disassembler of the language this module
// replaces the runtime of, carrying no mutable state beyond one Dump
// call.
package ildump

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// quote renders s as a double-quoted Go-syntax string literal, the
// textual-dump convention for inline string fields.
func quote(s string) string {
	return strconv.Quote(s)
}

// joinVars renders a variable slice as a comma-separated "v<n>" list.
func joinVars(vars []fil.Variable) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func joinStrings(vals []string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = quote(v)
	}
	return strings.Join(parts, ", ")
}

func formatBool(name string, b bool) string {
	return fmt.Sprintf("%s=%t", name, b)
}

func formatSeed(v int64) string {
	return strconv.FormatInt(v, 10)
}

// formatFloat renders a float64, special-casing NaN/Inf the way the JS
// lifter does rather than deferring to Go's default formatting.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

var valueTypeNames = map[wasmtypes.ValueType]string{
	wasmtypes.I32:         "i32",
	wasmtypes.I64:         "i64",
	wasmtypes.F32:         "f32",
	wasmtypes.F64:         "f64",
	wasmtypes.V128:        "v128",
	wasmtypes.FuncRef:     "funcref",
	wasmtypes.ExternRef:   "externref",
	wasmtypes.AnyRef:      "anyref",
	wasmtypes.EqRef:       "eqref",
	wasmtypes.I31Ref:      "i31ref",
	wasmtypes.StructRef:   "structref",
	wasmtypes.ArrayRef:    "arrayref",
	wasmtypes.ExnRef:      "exnref",
	wasmtypes.NoneRef:     "noneref",
	wasmtypes.NoExternRef: "noexternref",
	wasmtypes.NoFuncRef:   "nofuncref",
	wasmtypes.NoExnRef:    "noexnref",
	wasmtypes.RefTyped:    "(ref)",
}

func valueTypeName(t wasmtypes.ValueType) string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func valueTypeList(types []wasmtypes.ValueType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = valueTypeName(t)
	}
	return strings.Join(parts, " ")
}

func signatureText(sig wasmtypes.Signature) string {
	return "(" + valueTypeList(sig.Params) + ") -> (" + valueTypeList(sig.Results) + ")"
}

var importKindNames = map[fil.ImportKind]string{
	fil.ImportGlobal:           "global",
	fil.ImportTable:            "table",
	fil.ImportMemory:           "memory",
	fil.ImportTag:              "tag",
	fil.ImportFunction:         "function",
	fil.ImportSuspendingObject: "suspending-object",
}

func importKindName(k fil.ImportKind) string {
	if name, ok := importKindNames[k]; ok {
		return name
	}
	return "unknown"
}
