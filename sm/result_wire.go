package sm

import (
	"encoding/binary"

	"raftsql/kv"
)

// encodeResultWire serializes a Result as: a one-byte has-error flag, an
// optional length-prefixed error string, and a length-prefixed sequence
// of kv.EncodeRow-encoded rows. kv.Value cannot cross a gob boundary
// (its fields are unexported), so Result gets its own small wire format
// rather than reusing kv.EncodeRow's cell tags for the outer envelope.
func encodeResultWire(r Result) []byte {
	var buf []byte
	if r.Error != nil {
		buf = append(buf, 1)
		msg := r.Error.Error()
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(msg)))
		buf = append(buf, lenBuf...)
		buf = append(buf, msg...)
		return buf
	}
	buf = append(buf, 0)

	countBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(countBuf, uint32(len(r.Rows)))
	buf = append(buf, countBuf...)
	for _, row := range r.Rows {
		encoded := kv.EncodeRow(row)
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(encoded)))
		buf = append(buf, lenBuf...)
		buf = append(buf, encoded...)
	}
	return buf
}

func decodeResultWire(data []byte) (Result, error) {
	if len(data) < 1 {
		return Result{}, errShortResult
	}
	hasError := data[0] != 0
	data = data[1:]

	if hasError {
		if len(data) < 4 {
			return Result{}, errShortResult
		}
		n := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		if uint32(len(data)) < n {
			return Result{}, errShortResult
		}
		return Result{Error: resultError(string(data[:n]))}, nil
	}

	if len(data) < 4 {
		return Result{}, errShortResult
	}
	count := binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	rows := make([][]kv.Value, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 4 {
			return Result{}, errShortResult
		}
		rowLen := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		if uint32(len(data)) < rowLen {
			return Result{}, errShortResult
		}
		row, err := kv.DecodeRow(data[:rowLen])
		if err != nil {
			return Result{}, err
		}
		rows = append(rows, row)
		data = data[rowLen:]
	}
	return Result{Rows: rows}, nil
}

// resultError re-hydrates an error that crossed the wire as plain text:
// the applier only needs its message, since the client-facing PlanError/
// ParseError distinction is already resolved by the time the leader
// encodes the result.
type resultError string

func (e resultError) Error() string { return string(e) }

var errShortResult = resultError("sm: truncated result encoding")
