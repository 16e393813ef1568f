// Package codec implements the byte-level format of protobuf container
// files: the fixed file header and the length-prefixed, checksummed
// record frame.
//
// # File layout
//
// A container file begins with a 12-byte header:
//
//	[Magic(8)][Version(4)]
//
// Magic is a caller-supplied 8-byte identifier that distinguishes file
// kinds; Version is a little-endian uint32 and is currently always 1.
// The header is followed by zero or more record frames:
//
//	[Length(4)][Payload(Length)][CRC32C(4)]
//
// Length is the little-endian byte count of the payload. The checksum
// is CRC32C (Castagnoli) computed over the raw length bytes and the
// payload; the checksum field is excluded from its own computation.
//
// All multi-byte integers in the format are little-endian. Files are
// append-only and read sequentially; there is no index.
//
// # Responsibilities
//
// This package is pure byte manipulation: it never performs I/O. Frame
// boundaries during reads depend on file-size checks between fields, so
// frame decoding lives in the container package's sequential reader
// rather than here. The package also provides the protobuf marshaling
// wrappers used by the writer, including the byte-size consistency
// check that aborts the process when an encoded message's size differs
// from its measured size (a sign of concurrent modification).
package codec
