package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/fjordstone/pbfile/pkg/fault"
)

const (
	// MagicLength is the exact length of a container magic number.
	MagicLength = 8

	// HeaderLength is the size of the fixed container header.
	HeaderLength = MagicLength + 4

	// Version is the container format version this library reads and
	// writes. Future versions may append fields to the header; only
	// version 1 is implemented.
	Version = 1
)

// EncodeHeader encodes the 12-byte container header for the given magic.
// The magic must be exactly MagicLength bytes; anything else is a caller
// bug and panics.
func EncodeHeader(magic string) []byte {
	if len(magic) != MagicLength {
		panic(fmt.Sprintf("codec: magic number must be %d bytes, got %d", MagicLength, len(magic)))
	}
	b := make([]byte, 0, HeaderLength)
	b = append(b, magic...)
	return binary.LittleEndian.AppendUint32(b, Version)
}

// DecodeHeader validates a container header against the expected magic.
// It returns a fault.ErrCorruption error if the magic does not match and
// a fault.ErrNotSupported error if the version field is anything but the
// supported version.
func DecodeHeader(b []byte, magic string) error {
	if len(magic) != MagicLength {
		panic(fmt.Sprintf("codec: magic number must be %d bytes, got %d", MagicLength, len(magic)))
	}
	fileMagic, version, err := ParseHeader(b)
	if err != nil {
		return err
	}
	if string(fileMagic) != magic {
		return fault.Corruptionf("invalid magic number: expected %q, found %q", magic, fileMagic)
	}
	if version != Version {
		return fault.NotSupportedf("container has version %d, only version %d is supported", version, Version)
	}
	return nil
}

// ParseHeader splits a header into its magic and version fields without
// validating either, for inspection tooling.
func ParseHeader(b []byte) (fileMagic []byte, version uint32, err error) {
	if len(b) < HeaderLength {
		return nil, 0, fault.Corruptionf("container header too short: %d bytes, want %d", len(b), HeaderLength)
	}
	return b[:MagicLength], binary.LittleEndian.Uint32(b[MagicLength:HeaderLength]), nil
}
