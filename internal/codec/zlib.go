package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibLevel is the deflate level used for Bytes zlib columns.
//
// Reference: spec §6.4.
const ZlibLevel = 9

// zlibEncode deflates raw's bytes at ZlibLevel. No endian flip is
// applied here (or ever) to zlib-compressed data: the underlying bits
// travel unchanged; decoded output is flipped later if needed.
//
// Reference: spec §4.2.3.
func zlibEncode(raw *Bytes) (*Bytes, error) {
	var buf bytes.Buffer
	buf.Grow(len(raw.Data)*4 + 16)
	w, err := zlib.NewWriterLevel(&buf, ZlibLevel)
	if err != nil {
		return nil, &CodecError{Reason: "zlib writer: " + err.Error()}
	}
	if _, err := w.Write(raw.Data); err != nil {
		return nil, &CodecError{Reason: "zlib deflate: " + err.Error()}
	}
	if err := w.Close(); err != nil {
		return nil, &CodecError{Reason: "zlib deflate close: " + err.Error()}
	}
	return &Bytes{
		NPoints:        raw.NPoints,
		Interpretation: raw.Interpretation,
		Compression:    CompressionZlib,
		Data:           buf.Bytes(),
	}, nil
}

// zlibDecode inflates pcb's bytes into a raw column of
// Interpretation.Size()*NPoints bytes.
func zlibDecode(pcb *Bytes) (*Bytes, error) {
	r, err := zlib.NewReader(bytes.NewReader(pcb.Data))
	if err != nil {
		return nil, &CodecError{Reason: "zlib reader: " + err.Error()}
	}
	defer r.Close()

	want := pcb.NPoints * pcb.Interpretation.Size()
	out := MakeBytes(pcb.Interpretation, pcb.NPoints)
	n, err := io.ReadFull(r, out.Data)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, &CodecError{Reason: "zlib inflate: " + err.Error()}
	}
	if n != want {
		return nil, &CodecError{Reason: "zlib inflate: short output"}
	}
	return out, nil
}
