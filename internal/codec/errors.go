package codec

import "fmt"

// SchemaError indicates the dimension schema is malformed or cannot
// support the requested operation (missing X/Y, position collision,
// unparsable XML, unknown interpretation).
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s", e.Reason)
}

// DataMismatchError indicates two pieces of data that are supposed to
// agree (wkb size vs schema, pcid between point and patch, schemas
// being merged) do not.
type DataMismatchError struct {
	Reason string
}

func (e *DataMismatchError) Error() string {
	return fmt.Sprintf("data mismatch: %s", e.Reason)
}

// CodecError indicates a byte-column or wire-format codec failure:
// unknown compression code, endian flip on a readonly multi-byte
// column, an unsupported sig-bits word width, or an RLE stream whose
// run counts do not sum to npoints.
type CodecError struct {
	Reason string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec error: %s", e.Reason)
}

// OutOfRangeError indicates a requested dimension, index, or range
// falls outside the valid domain.
type OutOfRangeError struct {
	Reason string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("out of range: %s", e.Reason)
}

// NotImplementedError indicates an optional codec (GHT, LAZ) was
// invoked without a registered adapter.
type NotImplementedError struct {
	Reason string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Reason)
}
