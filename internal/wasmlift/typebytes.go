package wasmlift

import "github.com/cwbudde/fillift/internal/wasmtypes"

const (
	refNullable    byte = 0x63
	refNonNullable byte = 0x64
)

var numericValueBytes = map[wasmtypes.ValueType]byte{
	wasmtypes.I32:  0x7F,
	wasmtypes.I64:  0x7E,
	wasmtypes.F32:  0x7D,
	wasmtypes.F64:  0x7C,
	wasmtypes.V128: 0x7B,
}

// valueTypeBytes encodes vt as it appears in a param/result/local type
// list. Abstract reference types share their single-byte encoding with
// their heap-type byte (the short-form abbreviation the binary format
// defines for them); RefTyped (an indexed GC type) instead encodes the
// full `(ref null? typeidx)` form.
func (l *Lifter) valueTypeBytes(vt wasmtypes.ValueType, ref wasmtypes.TypeRef) []byte {
	if b, ok := numericValueBytes[vt]; ok {
		return []byte{b}
	}
	if vt == wasmtypes.RefTyped {
		idx, _ := l.typeIndexOf(int(ref), 0)
		return append([]byte{refNullable}, appendSLEB32(nil, int32(idx))...)
	}
	if b, ok := wasmtypes.HeapTypeByte[vt]; ok {
		return []byte{b}
	}
	return []byte{0x40} // empty/unknown falls back to the "no type" byte
}

// blockTypeBytes encodes a structured-control blocktype: the empty
// form, the single-result abbreviation, or a signature-index reference
// for anything multi-value.
func (l *Lifter) blockTypeBytes(sig wasmtypes.Signature) []byte {
	if len(sig.Params) == 0 && len(sig.Results) == 0 {
		return []byte{0x40}
	}
	if len(sig.Params) == 0 && len(sig.Results) == 1 {
		return l.valueTypeBytes(sig.Results[0], wasmtypes.Placeholder)
	}
	idx := l.signatureIndex(sig)
	return appendSLEB32(nil, int32(idx))
}
