package kv

import (
	"encoding/binary"
	"fmt"
)

// Key tags, per spec.md §4.7: schema entries are keyed 0x01|table_name,
// row entries are keyed 0x02|table_name|encoded_pk.
const (
	tagSchema byte = 0x01
	tagRow    byte = 0x02
)

// SchemaKey returns the key under which table's catalog record is stored.
func SchemaKey(table string) []byte {
	return append([]byte{tagSchema}, table...)
}

// RowKeyPrefix returns the prefix shared by every row key of table, usable
// directly with Store.Scan to enumerate a table in primary-key order.
func RowKeyPrefix(table string) []byte {
	key := make([]byte, 0, 1+len(table)+1)
	key = append(key, tagRow)
	key = append(key, table...)
	// A length-delimiting separator keeps "ab"/"c" from colliding with
	// "a"/"bc" when scanning by table-name prefix.
	key = append(key, 0x00)
	return key
}

// RowKey returns the key for the row of table whose primary key is pk.
func RowKey(table string, pk Value) []byte {
	return append(RowKeyPrefix(table), EncodePrimaryKey(pk)...)
}

// EncodePrimaryKey encodes any of the four scalar Value kinds so that
// byte-wise comparison of the encoding matches the value's natural order.
// Integer flips the sign bit of its big-endian two's-complement form so
// that negative integers sort before non-negative ones. Float flips the
// sign bit of a non-negative value's IEEE-754 bits (so it sorts after
// every negative value) and flips every bit of a negative value's bits
// (so more-negative values, which have larger magnitude bit patterns,
// sort first); NaN was already canonicalized to a single bit pattern by
// FloatValue, so it takes one fixed, deterministic position across
// replicas. Boolean encodes as a single 0x00/0x01 byte. String is encoded
// as its raw UTF-8 bytes, which already sort correctly against each
// other. Null cannot reach here: the primary-key column is always
// declared NOT NULL (catalog.NewTable), and sql/exec's insert path
// rejects a null primary-key value before it ever reaches RowKey.
func EncodePrimaryKey(v Value) []byte {
	switch v.Kind() {
	case KindInteger:
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(v.Integer())^signBit)
		return buf
	case KindFloat:
		bits := v.f
		if bits&signBit != 0 {
			bits = ^bits
		} else {
			bits ^= signBit
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, bits)
		return buf
	case KindBoolean:
		if v.Boolean() {
			return []byte{1}
		}
		return []byte{0}
	case KindString:
		return []byte(v.Text())
	default:
		panic(fmt.Sprintf("kv: %s cannot be a primary key", v.Kind()))
	}
}

const signBit = uint64(1) << 63

// cell tags used by the row value encoding, distinct from Kind so the wire
// format is stable even if Kind's iota ordering ever changes.
const (
	cellNull byte = iota
	cellBoolean
	cellInteger
	cellFloat
	cellString
)

// EncodeRow serializes row as a length-prefixed sequence of tagged cells.
func EncodeRow(row []Value) []byte {
	var buf []byte
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(row)))
	buf = append(buf, lenBuf...)

	for _, v := range row {
		switch v.Kind() {
		case KindNull:
			buf = append(buf, cellNull)
		case KindBoolean:
			buf = append(buf, cellBoolean)
			if v.Boolean() {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case KindInteger:
			buf = append(buf, cellInteger)
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(v.Integer()))
			buf = append(buf, b[:]...)
		case KindFloat:
			buf = append(buf, cellFloat)
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], v.f)
			buf = append(buf, b[:]...)
		case KindString:
			buf = append(buf, cellString)
			s := v.Text()
			slen := make([]byte, 4)
			binary.BigEndian.PutUint32(slen, uint32(len(s)))
			buf = append(buf, slen...)
			buf = append(buf, s...)
		}
	}
	return buf
}

// DecodeRow is the inverse of EncodeRow.
func DecodeRow(data []byte) ([]Value, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("kv: row encoding too short")
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	row := make([]Value, 0, n)
	for i := uint32(0); i < n; i++ {
		if len(data) < 1 {
			return nil, fmt.Errorf("kv: truncated row encoding")
		}
		tag := data[0]
		data = data[1:]
		switch tag {
		case cellNull:
			row = append(row, NullValue())
		case cellBoolean:
			if len(data) < 1 {
				return nil, fmt.Errorf("kv: truncated boolean cell")
			}
			row = append(row, BooleanValue(data[0] != 0))
			data = data[1:]
		case cellInteger:
			if len(data) < 8 {
				return nil, fmt.Errorf("kv: truncated integer cell")
			}
			row = append(row, IntegerValue(int64(binary.BigEndian.Uint64(data[:8]))))
			data = data[8:]
		case cellFloat:
			if len(data) < 8 {
				return nil, fmt.Errorf("kv: truncated float cell")
			}
			bits := binary.BigEndian.Uint64(data[:8])
			v := Value{kind: KindFloat, f: bits}
			row = append(row, v)
			data = data[8:]
		case cellString:
			if len(data) < 4 {
				return nil, fmt.Errorf("kv: truncated string length")
			}
			slen := binary.BigEndian.Uint32(data[:4])
			data = data[4:]
			if uint32(len(data)) < slen {
				return nil, fmt.Errorf("kv: truncated string cell")
			}
			row = append(row, StringValue(string(data[:slen])))
			data = data[slen:]
		default:
			return nil, fmt.Errorf("kv: unknown cell tag %d", tag)
		}
	}
	return row, nil
}
