package io

// Serializable defines the binary encoding/decoding interface. Errors are
// returned via BinReader/BinWriter Err field. These functions must have
// safe behavior when the passed BinReader/BinWriter is in an error state.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}

// ToByteArray is a helper function that serializes a to a byte slice.
func ToByteArray(a Serializable) ([]byte, error) {
	w := NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FromByteArray is a helper function that deserializes a from a byte slice.
func FromByteArray(a Serializable, data []byte) error {
	r := NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	return r.Err
}
