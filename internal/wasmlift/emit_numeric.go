package wasmlift

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/fillift/internal/fil"
	"github.com/cwbudde/fillift/internal/filerr"
	"github.com/cwbudde/fillift/internal/leb128"
	"github.com/cwbudde/fillift/internal/wasmtypes"
)

func valueTypeName(vt wasmtypes.ValueType) string {
	switch vt {
	case wasmtypes.I32:
		return "i32"
	case wasmtypes.I64:
		return "i64"
	case wasmtypes.F32:
		return "f32"
	case wasmtypes.F64:
		return "f64"
	default:
		return ""
	}
}

func signSuffix(signed bool) string {
	if signed {
		return "_s"
	}
	return "_u"
}

// convMnemonic renders the table key used by convOpcodes/satTruncOpcodes
// for a given conversion shape.
func convMnemonic(op fil.WasmConvOp) string {
	from, to := valueTypeName(op.From), valueTypeName(op.To)
	switch {
	case to == "i32" && from == "i64" && !op.Saturating:
		return "i32.wrap_i64"
	case (to == "i32" || to == "i64") && (from == "f32" || from == "f64"):
		base := to + ".trunc"
		if op.Saturating {
			base += "_sat"
		}
		return base + "_" + from + signSuffix(op.Signed)
	case to == "i64" && from == "i32":
		return "i64.extend_i32" + signSuffix(op.Signed)
	case (to == "f32" || to == "f64") && (from == "i32" || from == "i64"):
		return to + ".convert_" + from + signSuffix(op.Signed)
	case to == "f32" && from == "f64":
		return "f32.demote_f64"
	case to == "f64" && from == "f32":
		return "f64.promote_f32"
	case to == "i32" && from == "f32":
		return "i32.reinterpret_f32"
	case to == "i64" && from == "f64":
		return "i64.reinterpret_f64"
	case to == "f32" && from == "i32":
		return "f32.reinterpret_i32"
	case to == "f64" && from == "i64":
		return "f64.reinterpret_i64"
	default:
		return ""
	}
}

func (l *Lifter) buildConst(op fil.WasmConstValue) []byte {
	switch op.Type {
	case wasmtypes.I32:
		return append([]byte{opI32Const}, appendSLEB32(nil, int32(op.Int))...)
	case wasmtypes.I64:
		return append([]byte{opI64Const}, appendSLEB64(nil, op.Int)...)
	case wasmtypes.F32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(op.Float32))
		return append([]byte{opF32Const}, buf[:]...)
	case wasmtypes.F64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(op.Float64))
		return append([]byte{opF64Const}, buf[:]...)
	default:
		return nil
	}
}

func appendSLEB64(dst []byte, x int64) []byte {
	return append(dst, leb128.EncodeInt64(x)...)
}

// emitNumericLike handles the pure, deferrable numeric family: consts,
// arithmetic/comparison ops, conversions, ref.null/ref.func, GC
// constructors and SIMD consts/ops -- every opcode whose result can be
// inlined directly at its single use per the operand-inlining rule.
func (l *Lifter) emitNumericLike(in fil.Instruction) error {
	body, err := l.operandsBytes(in.Inputs)
	if err != nil {
		return err
	}

	switch in.Opcode {
	case fil.OpWasmConst:
		op := in.Operands.(fil.WasmConstValue)
		body = append(body, l.buildConst(op)...)
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmNumericOp:
		op := in.Operands.(fil.WasmNumericOp)
		b, ok := numericOpcodes[op.Mnemonic]
		if !ok {
			return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown numeric mnemonic %q", op.Mnemonic)
		}
		body = append(body, b)
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmConvOp:
		op := in.Operands.(fil.WasmConvOp)
		mnem := convMnemonic(op)
		if op.Saturating {
			sub, ok := satTruncOpcodes[mnem]
			if !ok {
				return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown saturating conversion %q", mnem)
			}
			body = append(body, prefixNumericSat)
			body = appendLEB32(body, uint32(sub))
		} else {
			b, ok := convOpcodes[mnem]
			if !ok {
				return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown conversion %q", mnem)
			}
			body = append(body, b)
		}
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmRefNull:
		op := in.Operands.(fil.WasmRefNullType)
		body = append(body, opRefNull)
		body = append(body, l.heapTypeByte(op)...)
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmRefFunc:
		idx, err := l.resolveIndex(fil.ImportFunction, in.Inputs[0])
		if err != nil {
			return err
		}
		body = append(body, opRefFunc)
		body = appendLEB32(body, uint32(idx))
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmStructNew:
		op := in.Operands.(fil.WasmStructNew)
		idx, ok := l.typeIndexOf(op.GroupIndex, op.MemberIdx)
		if !ok {
			return filerr.NewInCode(filerr.FailedSignatureLookup, l.code, in.Index,
				"struct.new: no type index for group %d member %d", op.GroupIndex, op.MemberIdx)
		}
		body = append(body, prefixGC)
		body = appendLEB32(body, gcOpcodes["struct.new"])
		body = appendLEB32(body, uint32(idx))
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmArrayNewFixed:
		op := in.Operands.(fil.WasmArrayNewFixed)
		idx, ok := l.typeIndexOf(op.GroupIndex, op.MemberIdx)
		if !ok {
			return filerr.NewInCode(filerr.FailedSignatureLookup, l.code, in.Index,
				"array.new_fixed: no type index for group %d member %d", op.GroupIndex, op.MemberIdx)
		}
		body = append(body, prefixGC)
		body = appendLEB32(body, gcOpcodes["array.new_fixed"])
		body = appendLEB32(body, uint32(idx))
		body = appendLEB32(body, uint32(op.Count))
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmSimdConst:
		op := in.Operands.(fil.WasmSimdConstValue)
		body = append(body, prefixSimd)
		body = appendLEB32(body, simdOpcodes["v128.const"])
		body = append(body, op.Bytes[:]...)
		l.deferValue(body, in.Output())
		return nil

	case fil.OpWasmSimdOp:
		op := in.Operands.(fil.WasmSimdOp)
		sub, ok := simdOpcodes[op.Mnemonic]
		if !ok {
			return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "unknown SIMD mnemonic %q", op.Mnemonic)
		}
		body = append(body, prefixSimd)
		body = appendLEB32(body, sub)
		l.deferValue(body, in.Output())
		return nil
	}
	return filerr.NewInCode(filerr.InvalidInput, l.code, in.Index, "opcode %s not handled by emitNumericLike", in.Opcode)
}

func (l *Lifter) heapTypeByte(op fil.WasmRefNullType) []byte {
	if op.HeapType == wasmtypes.RefTyped {
		idx, _ := l.typeIndexOf(int(op.TypeRef), 0)
		return appendSLEB32(nil, int32(idx))
	}
	if b, ok := wasmtypes.HeapTypeByte[op.HeapType]; ok {
		return []byte{b}
	}
	return []byte{wasmtypes.HeapTypeByte[wasmtypes.NoneRef]}
}

// operandsBytes resolves every input in order and concatenates the
// results, consuming each from exprWriter or falling back to
// local.get.
func (l *Lifter) operandsBytes(inputs []fil.Variable) ([]byte, error) {
	var out []byte
	for _, v := range inputs {
		b, err := l.operandBytes(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
