package raftpb

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
)

// Encoder writes length-prefixed, gob-encoded Messages to a stream.
//
// Framing follows the teacher's MessageBinaryEncoder
// (gyuho-db/raft/raftpb/message_binary_encoder_decoder.go): an 8-byte
// big-endian length prefix followed by the payload, so a reader never
// has to guess where one message ends and the next begins.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode writes msg to the stream.
func (e *Encoder) Encode(msg *Message) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(msg); err != nil {
		return err
	}
	if err := binary.Write(e.w, binary.BigEndian, uint64(buf.Len())); err != nil {
		return err
	}
	_, err := e.w.Write(buf.Bytes())
	return err
}

// Decoder reads length-prefixed, gob-encoded Messages from a stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// Decode reads the next Message from the stream.
func (d *Decoder) Decode() (Message, error) {
	var n uint64
	if err := binary.Read(d.r, binary.BigEndian, &n); err != nil {
		return Message{}, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return Message{}, err
	}
	var msg Message
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
