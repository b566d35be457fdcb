package catalog

import (
	"encoding/binary"
	"fmt"
)

// encodeTable serializes a Table as a length-prefixed field sequence,
// mirroring kv.EncodeRow's tagged-cell shape rather than reusing
// encoding/gob so that catalog records share the same on-disk style as row
// values (spec.md §4.7: "Schema values encode the full Table record").
func encodeTable(t Table) []byte {
	var buf []byte
	buf = appendString(buf, t.Name)
	buf = appendString(buf, t.PrimaryKey)

	countBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(countBuf, uint32(len(t.Columns)))
	buf = append(buf, countBuf...)

	for _, c := range t.Columns {
		buf = appendString(buf, c.Name)
		buf = append(buf, byte(c.Type))
		if c.Nullable {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

func decodeTable(data []byte) (Table, error) {
	name, data, err := readString(data)
	if err != nil {
		return Table{}, err
	}
	pk, data, err := readString(data)
	if err != nil {
		return Table{}, err
	}
	if len(data) < 4 {
		return Table{}, fmt.Errorf("catalog: truncated column count")
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	columns := make([]Column, 0, n)
	for i := uint32(0); i < n; i++ {
		var cname string
		cname, data, err = readString(data)
		if err != nil {
			return Table{}, err
		}
		if len(data) < 2 {
			return Table{}, fmt.Errorf("catalog: truncated column %q", cname)
		}
		columns = append(columns, Column{
			Name:     cname,
			Type:     DataType(data[0]),
			Nullable: data[1] != 0,
		})
		data = data[2:]
	}
	return Table{Name: name, Columns: columns, PrimaryKey: pk}, nil
}

func appendString(buf []byte, s string) []byte {
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(s)))
	buf = append(buf, lenBuf...)
	return append(buf, s...)
}

func readString(data []byte) (string, []byte, error) {
	if len(data) < 4 {
		return "", nil, fmt.Errorf("catalog: truncated string length")
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < n {
		return "", nil, fmt.Errorf("catalog: truncated string")
	}
	return string(data[:n]), data[n:], nil
}
