package wasmlift

import (
	"fmt"

	"github.com/cwbudde/fillift/internal/wasmtypes"
)

// descKey renders a (group, member) pair to a stable de-duplication
// key. Two descriptors with the same shape inside different groups
// still get distinct module-local indices (type groups are emitted
// group-by-group), so the key is scoped by group index.
func descKey(groupIdx, memberIdx int) string {
	return fmt.Sprintf("%d:%d", groupIdx, memberIdx)
}

// assignTypeIndices is pipeline pass 2 (part 1): assigns module-local
// indices to every user-defined type in every referenced type group,
// group-by-group in increasing group index (Testable property #9).
func (l *Lifter) assignTypeIndices() {
	for i := 1; i < len(l.typeGroups); i++ {
		for j := i; j > 0 && l.typeGroups[j].Index < l.typeGroups[j-1].Index; j-- {
			l.typeGroups[j], l.typeGroups[j-1] = l.typeGroups[j-1], l.typeGroups[j]
		}
	}
	next := 0
	for _, g := range l.typeGroups {
		for m := range g.Members {
			l.typeDescToIndex[descKey(g.Index, m)] = next
			next++
		}
	}
}

// typeIndexOf resolves a (groupIndex, memberIdx) pair to its assigned
// module-local type index. It does not consult the resolutions that
// resolveForwardReference records for OpWasmResolveForwardReference.
func (l *Lifter) typeIndexOf(groupIdx, memberIdx int) (int, bool) {
	idx, ok := l.typeDescToIndex[descKey(groupIdx, memberIdx)]
	return idx, ok
}

func (l *Lifter) resolveForwardReference(groupIdx, memberIdx int, concrete wasmtypes.TypeRef) {
	l.forwardRefs[descKey(groupIdx, memberIdx)] = concrete
}

// assignSignatureIndices is pipeline pass 2 (part 2): after the
// user-defined type block, allocate one signature index per distinct
// signature among import signatures, defined tag signatures, defined
// function signatures, and the signatures carried by the Wasm
// structured-control operand structs (Signature indices are consulted
// lazily via Lifter.signatureIndex, so this pass only needs to
// pre-register the ones known ahead of the emission pass).
func (l *Lifter) assignSignatureIndices() {
	for _, im := range l.imports {
		if im.Signature != nil {
			l.signatureIndex(*im.Signature)
		}
	}
	for _, t := range l.tags {
		l.signatureIndex(t.Signature)
	}
	for _, fn := range l.functions {
		l.signatureIndex(fn.Signature)
	}
}

// userDefinedTypeCount is the total number of module-local type indices
// consumed by type groups, i.e. the offset at which the standalone
// signature block begins in the type section.
func (l *Lifter) userDefinedTypeCount() int {
	n := 0
	for _, g := range l.typeGroups {
		n += len(g.Members)
	}
	return n
}
