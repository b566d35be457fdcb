package kv

import (
	"bytes"
	"testing"
)

func TestEncodePrimaryKeyPreservesIntegerOrder(t *testing.T) {
	vals := []int64{-100, -1, 0, 1, 100}
	var encoded [][]byte
	for _, v := range vals {
		encoded = append(encoded, EncodePrimaryKey(IntegerValue(v)))
	}
	for i := 1; i < len(encoded); i++ {
		if bytes.Compare(encoded[i-1], encoded[i]) >= 0 {
			t.Fatalf("expected %v < %v for values %d, %d", encoded[i-1], encoded[i], vals[i-1], vals[i])
		}
	}
}

func TestEncodePrimaryKeyPreservesStringOrder(t *testing.T) {
	a := EncodePrimaryKey(StringValue("apple"))
	b := EncodePrimaryKey(StringValue("banana"))
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("expected %q < %q", a, b)
	}
}

func TestEncodePrimaryKeyPreservesFloatOrder(t *testing.T) {
	vals := []float64{-100.5, -1.5, -0.0, 0.0, 1.5, 100.5}
	var encoded [][]byte
	for _, v := range vals {
		encoded = append(encoded, EncodePrimaryKey(FloatValue(v)))
	}
	for i := 1; i < len(encoded); i++ {
		if bytes.Compare(encoded[i-1], encoded[i]) > 0 {
			t.Fatalf("expected %v <= %v for values %v, %v", encoded[i-1], encoded[i], vals[i-1], vals[i])
		}
	}
}

func TestEncodePrimaryKeyBoolean(t *testing.T) {
	f := EncodePrimaryKey(BooleanValue(false))
	tr := EncodePrimaryKey(BooleanValue(true))
	if bytes.Compare(f, tr) >= 0 {
		t.Fatalf("expected false encoding %q < true encoding %q", f, tr)
	}
}

func TestRowKeyPrefixDoesNotCollideAcrossTableNames(t *testing.T) {
	p1 := RowKeyPrefix("ab")
	p2 := RowKeyPrefix("a")
	if bytes.HasPrefix(RowKey("a", StringValue("bc")), p1) {
		t.Fatal("row of table \"a\" must not match prefix of table \"ab\"")
	}
	if !bytes.HasPrefix(RowKey("a", StringValue("bc")), p2) {
		t.Fatal("row of table \"a\" must match its own prefix")
	}
}

func TestEncodeDecodeRowRoundTrip(t *testing.T) {
	row := []Value{
		NullValue(),
		BooleanValue(true),
		IntegerValue(-42),
		FloatValue(3.14),
		StringValue("hi"),
	}
	decoded, err := DecodeRow(EncodeRow(row))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(row) {
		t.Fatalf("got %d values, want %d", len(decoded), len(row))
	}
	for i := range row {
		if !row[i].Equal(decoded[i]) {
			t.Fatalf("value %d: got %+v, want %+v", i, decoded[i], row[i])
		}
	}
}
