package wasmhelper

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/template-resolver/errors"
)

// toInt64 accepts the integer and whole float values templates produce.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v <= math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f <= math.MaxInt64 && f == math.Trunc(f) {
			return int64(v), true
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	if n, ok := toInt64(value); ok {
		return float64(n), true
	}
	return 0, false
}

func inRange(n, lo, hi int64) bool {
	return n >= lo && n <= hi
}

// lower encodes a template value as the flat core value of t.
func lower(t wit.Type, value any, index int) (uint64, error) {
	mismatch := func(want string) error {
		return errors.TypeMismatch(errors.PhaseRuntime, "param "+strconv.Itoa(index), want, value)
	}

	switch t.(type) {
	case wit.Bool:
		b, ok := value.(bool)
		if !ok {
			return 0, mismatch("bool")
		}
		if b {
			return 1, nil
		}
		return 0, nil
	case wit.Char:
		var r rune
		switch v := value.(type) {
		case rune:
			r = v
		case string:
			if utf8.RuneCountInString(v) != 1 {
				return 0, mismatch("char")
			}
			r, _ = utf8.DecodeRuneInString(v)
		default:
			return 0, mismatch("char")
		}
		if !validChar(r) {
			return 0, mismatch("char")
		}
		return api.EncodeI32(r), nil
	case wit.F32:
		f, ok := toFloat64(value)
		if !ok {
			return 0, mismatch("f32")
		}
		return api.EncodeF32(float32(f)), nil
	case wit.F64:
		f, ok := toFloat64(value)
		if !ok {
			return 0, mismatch("f64")
		}
		return api.EncodeF64(f), nil
	}

	n, ok := toInt64(value)
	if !ok {
		return 0, mismatch("integer")
	}
	switch t.(type) {
	case wit.U8:
		ok = inRange(n, 0, math.MaxUint8)
	case wit.S8:
		ok = inRange(n, math.MinInt8, math.MaxInt8)
	case wit.U16:
		ok = inRange(n, 0, math.MaxUint16)
	case wit.S16:
		ok = inRange(n, math.MinInt16, math.MaxInt16)
	case wit.U32:
		ok = inRange(n, 0, math.MaxUint32)
	case wit.S32:
		ok = inRange(n, math.MinInt32, math.MaxInt32)
	case wit.U64:
		ok = n >= 0
	case wit.S64:
		ok = true
	default:
		return 0, errors.Unsupported(errors.PhaseRuntime, fmt.Sprintf("WIT type %T", t))
	}
	if !ok {
		return 0, errors.InvalidInput(errors.PhaseRuntime, fmt.Sprintf("param %d: %d out of range", index, n))
	}
	if flatType(t) == api.ValueTypeI64 {
		return api.EncodeI64(n), nil
	}
	return api.EncodeI32(int32(uint32(n))), nil
}

// lift decodes a flat core value of t into a template value. Integers
// become int, floats float64.
func lift(t wit.Type, raw uint64) any {
	switch t.(type) {
	case wit.Bool:
		return uint32(raw) != 0
	case wit.Char:
		return string(rune(uint32(raw)))
	case wit.F32:
		return float64(api.DecodeF32(raw))
	case wit.F64:
		return api.DecodeF64(raw)
	case wit.U8:
		return int(uint8(raw))
	case wit.S8:
		return int(int8(raw))
	case wit.U16:
		return int(uint16(raw))
	case wit.S16:
		return int(int16(raw))
	case wit.U32:
		return int(api.DecodeU32(raw))
	case wit.S32:
		return int(api.DecodeI32(raw))
	case wit.U64:
		return raw
	case wit.S64:
		return int(int64(raw))
	}
	return nil
}

// validChar rejects surrogates and values past the last code point.
func validChar(r rune) bool {
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	return r >= 0 && r < 0x110000
}
