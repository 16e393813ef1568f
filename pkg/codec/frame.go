package codec

import (
	"encoding/binary"
	"hash/crc32"
	"math"
)

const (
	// LengthSize is the size in bytes of a frame's length field.
	LengthSize = 4

	// ChecksumSize is the size in bytes of a frame's checksum field.
	ChecksumSize = 4

	// FrameOverhead is the number of framing bytes added around a payload.
	FrameOverhead = LengthSize + ChecksumSize
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Checksum computes a rolling CRC32C over the given byte slices, in order.
func Checksum(parts ...[]byte) uint32 {
	var crc uint32
	for _, p := range parts {
		crc = crc32.Update(crc, castagnoli, p)
	}
	return crc
}

// EncodeFrame encodes one record frame:
//
//	[Length(4)][Payload][CRC32C(4)]
//
// where the checksum covers the length bytes and the payload. Panics if
// the payload cannot be addressed by the 4-byte length field.
func EncodeFrame(payload []byte) []byte {
	return AppendFrame(make([]byte, 0, FrameOverhead+len(payload)), payload)
}

// AppendFrame appends the frame encoding of payload to dst and returns
// the extended slice.
func AppendFrame(dst, payload []byte) []byte {
	if uint64(len(payload)) > math.MaxUint32 {
		panic("codec: payload too large for frame length field")
	}
	start := len(dst)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	dst = append(dst, payload...)
	return binary.LittleEndian.AppendUint32(dst, Checksum(dst[start:]))
}
