package wasmlift

import (
	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

const (
	secCustom   = 0
	secType     = 1
	secImport   = 2
	secFunction = 3
	secTable    = 4
	secMemory   = 5
	secGlobal   = 6
	secExport   = 7
	secElement  = 9
	secCode     = 10
	secData     = 11
	secDataCnt  = 12
	secTag      = 13
)

// branchHintSectionName is the exact byte string of the custom section
// carrying recorded branch hints.
const branchHintSectionName = "metadata.code.branch_hint"

func section(id byte, body []byte) []byte {
	out := []byte{id}
	out = appendLEB32(out, uint32(len(body)))
	return append(out, body...)
}

func lenPrefixed(body []byte) []byte {
	return append(appendLEB32(nil, uint32(len(body))), body...)
}

// assembleSections is pipeline pass 4: appends every section in the
// exact binary-format order, each length-prefixed.
func (l *Lifter) assembleSections() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00} // "\0asm" + version 1

	if b := l.typeSectionBody(); len(b) > 0 {
		out = append(out, section(secType, b)...)
	}
	if b := l.importSectionBody(); len(b) > 0 {
		out = append(out, section(secImport, b)...)
	}
	if b := l.functionSectionBody(); len(b) > 0 {
		out = append(out, section(secFunction, b)...)
	}
	if b := l.tableSectionBody(); len(b) > 0 {
		out = append(out, section(secTable, b)...)
	}
	if b := l.memorySectionBody(); len(b) > 0 {
		out = append(out, section(secMemory, b)...)
	}
	if b := l.tagSectionBody(); len(b) > 0 {
		out = append(out, section(secTag, b)...)
	}
	if b := l.globalSectionBody(); len(b) > 0 {
		out = append(out, section(secGlobal, b)...)
	}
	if b := l.exportSectionBody(); len(b) > 0 {
		out = append(out, section(secExport, b)...)
	}
	if b := l.elementSectionBody(); len(b) > 0 {
		out = append(out, section(secElement, b)...)
	}
	if len(l.dataSegments) > 0 {
		out = append(out, section(secDataCnt, appendLEB32(nil, uint32(len(l.dataSegments))))...)
	}
	if b := l.branchHintSectionBody(); len(b) > 0 {
		out = append(out, section(secCustom, append(lenPrefixed([]byte(branchHintSectionName)), b...))...)
	}
	if b := l.codeSectionBody(); len(b) > 0 {
		out = append(out, section(secCode, b)...)
	}
	if b := l.dataSectionBody(); len(b) > 0 {
		out = append(out, section(secData, b)...)
	}
	return out
}

// typeSectionBody: type groups (ascending group index) then standalone
// signatures, per spec's "Type section layout".
func (l *Lifter) typeSectionBody() []byte {
	var body []byte
	count := 0
	for range l.typeGroups {
		count++
	}
	count += len(l.signatures)
	if count == 0 {
		return nil
	}
	body = appendLEB32(body, uint32(count))
	for _, g := range l.typeGroups {
		body = append(body, 0x4E)
		body = appendLEB32(body, uint32(len(g.Members)))
		for _, m := range g.Members {
			body = append(body, l.typeDescBytes(m)...)
		}
	}
	for _, s := range l.signatures {
		body = append(body, l.signatureBytes(s)...)
	}
	return body
}

func (l *Lifter) signatureBytes(s wasmtypes.Signature) []byte {
	b := []byte{0x60}
	b = appendLEB32(b, uint32(len(s.Params)))
	for _, p := range s.Params {
		b = append(b, l.valueTypeBytes(p, wasmtypes.Placeholder)...)
	}
	b = appendLEB32(b, uint32(len(s.Results)))
	for _, r := range s.Results {
		b = append(b, l.valueTypeBytes(r, wasmtypes.Placeholder)...)
	}
	return b
}

func (l *Lifter) typeDescBytes(d wasmtypes.TypeDescriptor) []byte {
	switch d.Kind {
	case wasmtypes.TypeDescArray:
		f := d.Fields[0]
		b := []byte{0x5E}
		b = append(b, l.valueTypeBytes(f.Type, wasmtypes.Placeholder)...)
		b = append(b, boolByte(f.Mutable))
		return b
	case wasmtypes.TypeDescStruct:
		b := []byte{0x5F}
		b = appendLEB32(b, uint32(len(d.Fields)))
		for _, f := range d.Fields {
			b = append(b, l.valueTypeBytes(f.Type, wasmtypes.Placeholder)...)
			b = append(b, boolByte(f.Mutable))
		}
		return b
	default:
		return l.signatureBytes(d.Signature)
	}
}

func boolByte(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}

func (l *Lifter) importSectionBody() []byte {
	if len(l.imports) == 0 {
		return nil
	}
	var body []byte
	body = appendLEB32(body, uint32(len(l.imports)))
	kindCounts := map[fil.ImportKind]int{}
	for _, im := range l.imports {
		body = append(body, lenPrefixed([]byte("env"))...)
		name := Export{Kind: importExportKind(im.Kind), IsImport: true, Index: kindCounts[im.Kind]}.name()
		kindCounts[im.Kind]++
		body = append(body, lenPrefixed([]byte(name))...)
		body = append(body, l.importDescBytes(im)...)
	}
	return body
}

func importExportKind(k fil.ImportKind) ExportKind {
	switch k {
	case fil.ImportTable:
		return ExportTable
	case fil.ImportMemory:
		return ExportMemory
	case fil.ImportGlobal:
		return ExportGlobal
	case fil.ImportTag:
		return ExportTag
	default:
		return ExportFunction
	}
}

func (l *Lifter) importDescBytes(im importEntry) []byte {
	switch im.Kind {
	case fil.ImportFunction, fil.ImportSuspendingObject:
		idx := 0
		if im.Signature != nil {
			idx = l.signatureIndex(*im.Signature)
		}
		return append([]byte{exportKindFunction}, appendLEB32(nil, uint32(idx))...)
	case fil.ImportTable:
		return []byte{exportKindTable, byte(wasmtypes.FuncRef), 0x00}
	case fil.ImportMemory:
		return []byte{exportKindMemory, 0x00}
	case fil.ImportGlobal:
		return append([]byte{exportKindGlobal}, l.valueTypeBytes(wasmtypes.I32, wasmtypes.Placeholder)...)
	case fil.ImportTag:
		idx := 0
		if im.Signature != nil {
			idx = l.signatureIndex(*im.Signature)
		}
		return append([]byte{exportKindTag, 0x00}, appendLEB32(nil, uint32(idx))...)
	default:
		return []byte{exportKindFunction, 0x00}
	}
}

func (l *Lifter) functionSectionBody() []byte {
	if len(l.functions) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.functions)))
	for _, fn := range l.functions {
		body = appendLEB32(body, uint32(l.signatureIndex(fn.Signature)))
	}
	return body
}

func (l *Lifter) tableSectionBody() []byte {
	if len(l.tables) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.tables)))
	for _, t := range l.tables {
		body = append(body, l.valueTypeBytes(t.ElemType, wasmtypes.Placeholder)...)
		body = append(body, limitsBytes(t.Min, t.Max, t.HasMax, false)...)
	}
	return body
}

func (l *Lifter) memorySectionBody() []byte {
	if len(l.memories) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.memories)))
	for _, m := range l.memories {
		body = append(body, limitsBytes(m.Min, m.Max, m.HasMax, m.Shared)...)
	}
	return body
}

func limitsBytes(min, max uint32, hasMax, shared bool) []byte {
	flag := byte(0)
	if hasMax {
		flag |= 0x01
	}
	if shared {
		flag |= 0x02
	}
	b := []byte{flag}
	b = appendLEB32(b, min)
	if hasMax {
		b = appendLEB32(b, max)
	}
	return b
}

func (l *Lifter) tagSectionBody() []byte {
	if len(l.tags) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.tags)))
	for _, t := range l.tags {
		body = append(body, 0x00)
		body = appendLEB32(body, uint32(l.signatureIndex(t.Signature)))
	}
	return body
}

func (l *Lifter) globalSectionBody() []byte {
	if len(l.globals) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.globals)))
	for _, g := range l.globals {
		body = append(body, l.valueTypeBytes(g.Type, wasmtypes.Placeholder)...)
		body = append(body, boolByte(g.Mutable))
		if b, ok := l.moduleConsts[g.Init]; ok {
			body = append(body, b...)
		}
		body = append(body, opEnd)
	}
	return body
}

func (l *Lifter) exportSectionBody() []byte {
	if len(l.exports) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.exports)))
	for _, e := range l.exports {
		body = append(body, lenPrefixed([]byte(e.name()))...)
		body = append(body, e.byteKind())
		body = appendLEB32(body, uint32(e.Index))
	}
	return body
}

func (l *Lifter) elementSectionBody() []byte {
	if len(l.elementSegments) == 0 {
		return nil
	}
	passive := make([]elementSegment, 0)
	active := make([]elementSegment, 0)
	for _, s := range l.elementSegments {
		if s.Active {
			active = append(active, s)
		} else {
			passive = append(passive, s)
		}
	}
	ordered := append(passive, active...)
	body := appendLEB32(nil, uint32(len(ordered)))
	for _, s := range ordered {
		if s.Active {
			body = append(body, 0x00)
			body = append(body, opI32Const)
			body = appendSLEB32(body, 0)
			body = append(body, opEnd)
		} else {
			body = append(body, 0x01, 0x00) // passive, elemkind func
		}
		body = appendLEB32(body, uint32(len(s.Funcs)))
		for _, f := range s.Funcs {
			body = appendLEB32(body, uint32(f))
		}
	}
	return body
}

func (l *Lifter) codeSectionBody() []byte {
	if len(l.functions) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.functions)))
	for _, fn := range l.functions {
		localsDecl := localsDeclBytes(fn)
		full := append(append([]byte{}, localsDecl...), fn.Body...)
		body = append(body, lenPrefixed(full)...)
	}
	return body
}

// localsDeclBytes encodes the non-parameter locals as runs of
// (count, type) pairs, collapsing consecutive same-typed slots.
func localsDeclBytes(fn *FunctionInfo) []byte {
	extra := fn.Locals[fn.paramCount:]
	type run struct {
		t wasmtypes.ValueType
		n int
	}
	var runs []run
	for _, l := range extra {
		if len(runs) > 0 && runs[len(runs)-1].t == l.Type {
			runs[len(runs)-1].n++
			continue
		}
		runs = append(runs, run{t: l.Type, n: 1})
	}
	body := appendLEB32(nil, uint32(len(runs)))
	for _, r := range runs {
		body = appendLEB32(body, uint32(r.n))
		body = append(body, numericValueBytes[r.t])
	}
	return body
}

func (l *Lifter) branchHintSectionBody() []byte {
	var withHints []*FunctionInfo
	for _, fn := range l.functions {
		if len(fn.BranchHints) > 0 {
			withHints = append(withHints, fn)
		}
	}
	if len(withHints) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(withHints)))
	for _, fn := range withHints {
		idx, _ := l.resolveIndex(fil.ImportFunction, fn.Output)
		body = appendLEB32(body, uint32(idx))
		body = appendLEB32(body, uint32(len(fn.BranchHints)))
		for _, h := range fn.BranchHints {
			body = appendLEB32(body, uint32(h.Offset))
			body = append(body, 0x01)
			if h.Hint == fil.BranchLikely {
				body = append(body, 0x01)
			} else {
				body = append(body, 0x00)
			}
		}
	}
	return body
}

func (l *Lifter) dataSectionBody() []byte {
	if len(l.dataSegments) == 0 {
		return nil
	}
	body := appendLEB32(nil, uint32(len(l.dataSegments)))
	for _, d := range l.dataSegments {
		body = append(body, 0x01) // passive
		body = append(body, lenPrefixed(d)...)
	}
	return body
}
