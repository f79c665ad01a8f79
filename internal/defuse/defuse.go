// Package defuse is the consumed interface of the def-use / variable
// liveness analysis: the JS lifter's inlining decision needs a use-set
// per variable, plus whether an effectful producer runs between a
// variable's definition and its use. This package is that shared
// boundary, plus a reference linear-scan implementation used by tests
// and by the default wiring in pkg/fillift.
package defuse

import "github.com/cwbudde/fillift/internal/fil"

// Analysis is the def-use/liveness surface the lifters consume.
type Analysis interface {
	// Uses returns the instruction indices that consume v as an input,
	// in program order, one entry per input occurrence: an instruction
	// that reads v twice appears twice.
	Uses(v fil.Variable) []int

	// IsEffectfulBetween reports whether any effectful producer runs
	// strictly between defIndex and useIndex (exclusive), used by
	// inlining condition for effectful expressions.
	IsEffectfulBetween(defIndex, useIndex int) bool
}

// LinearScan is a single-pass reference implementation over fil.Code.
type LinearScan struct {
	uses       map[fil.Variable][]int
	effectful  []bool // effectful[i] true if instruction i may have a side effect
}

// NewLinearScan walks code once, building the use-set of every variable
// and an effect marker per instruction index.
func NewLinearScan(code fil.Code) *LinearScan {
	ls := &LinearScan{
		uses:      make(map[fil.Variable][]int),
		effectful: make([]bool, len(code)),
	}
	for i, in := range code {
		for _, v := range in.Inputs {
			ls.uses[v] = append(ls.uses[v], in.Index)
		}
		ls.effectful[i] = isEffectfulOpcode(in.Opcode)
	}
	return ls
}

func (ls *LinearScan) Uses(v fil.Variable) []int {
	return ls.uses[v]
}

func (ls *LinearScan) IsEffectfulBetween(defIndex, useIndex int) bool {
	lo, hi := defIndex, useIndex
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo + 1; i < hi && i < len(ls.effectful); i++ {
		if ls.effectful[i] {
			return true
		}
	}
	return false
}

// isEffectfulOpcode is a conservative classification used only to drive
// IsEffectfulBetween; it is deliberately broader than expr.Purity, which
// tracks effectfulness of composed expressions rather than raw opcodes.
func isEffectfulOpcode(op fil.Opcode) bool {
	switch op {
	case fil.OpLoadInteger, fil.OpLoadFloat, fil.OpLoadBigInt, fil.OpLoadString,
		fil.OpLoadBoolean, fil.OpLoadUndefined, fil.OpLoadNull, fil.OpDup:
		return false
	default:
		return true
	}
}
