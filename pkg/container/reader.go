package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble/vfs"
	"google.golang.org/protobuf/proto"

	"github.com/fjordstone/pbfile/pkg/codec"
	"github.com/fjordstone/pbfile/pkg/fault"
)

// Reader sequentially replays a container file, validating the header
// and every record checksum.
//
// A Reader keeps a single monotonically increasing cursor; it never
// rewinds. The clean end of the container is reported as io.EOF.
type Reader struct {
	file        vfs.File
	path        string
	offset      int64
	initialized bool
	closed      bool
}

// NewReader wraps an open file. path is used only for error messages.
func NewReader(file vfs.File, path string) *Reader {
	return &Reader{file: file, path: path}
}

// Init reads and validates the container header. A file too short to
// hold a header cannot be a valid container, so EOF here is corruption.
func (r *Reader) Init(magic string) error {
	if r.closed {
		panic("container: Init on closed Reader")
	}
	if r.initialized {
		panic("container: Init called twice on Reader")
	}
	header, err := r.validateAndRead(codec.HeaderLength, eofNotOK)
	if err != nil {
		return fmt.Errorf("reading header of container file %s: %w", r.path, err)
	}
	if err := codec.DecodeHeader(header, magic); err != nil {
		if errors.Is(err, fault.ErrCorruption) {
			corruptionsDetected.Inc()
		}
		return fmt.Errorf("container file %s: %w", r.path, err)
	}
	r.initialized = true
	return nil
}

// ReadNextPB reads the next record and decodes it into msg. It returns
// io.EOF, untouched, at the clean end of the container; callers loop
// until they see it.
func (r *Reader) ReadNextPB(msg proto.Message) error {
	start := r.offset
	payload, err := r.ReadNextBytes()
	if err != nil {
		return err
	}
	// A record that fails to parse despite a correct checksum is not
	// corruption of the container; the payload likely belongs to a
	// different schema.
	if err := codec.Unmarshal(payload, msg); err != nil {
		return fmt.Errorf("record at offset %d of %s: %w", start, r.path, err)
	}
	return nil
}

// ReadNextBytes reads the next record frame and returns its payload
// after checksum validation, without decoding it.
func (r *Reader) ReadNextBytes() ([]byte, error) {
	if r.closed {
		panic("container: read on closed Reader")
	}
	if !r.initialized {
		panic("container: read before Init")
	}

	// Frame boundary: running out of bytes here is the expected end of
	// the container, not a fault.
	lengthBytes, err := r.validateAndRead(codec.LengthSize, eofOK)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading record length from %s: %w", r.path, err)
	}
	length := binary.LittleEndian.Uint32(lengthBytes)

	// Past the length field a well-formed file never runs short.
	payload, err := r.validateAndRead(int64(length), eofNotOK)
	if err != nil {
		return nil, fmt.Errorf("reading %d-byte record payload from %s: %w", length, r.path, err)
	}
	checksumBytes, err := r.validateAndRead(codec.ChecksumSize, eofNotOK)
	if err != nil {
		return nil, fmt.Errorf("reading record checksum from %s: %w", r.path, err)
	}

	stored := binary.LittleEndian.Uint32(checksumBytes)
	if actual := codec.Checksum(lengthBytes, payload); actual != stored {
		corruptionsDetected.Inc()
		return nil, fault.Corruptionf("incorrect checksum in %s: computed 0x%08x, stored 0x%08x",
			r.path, actual, stored)
	}
	recordsRead.Inc()
	return payload, nil
}

// Offset returns the next unread byte offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Close releases the underlying file. It is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", r.path, err)
	}
	return nil
}

type eofPolicy bool

const (
	eofOK    eofPolicy = true
	eofNotOK eofPolicy = false
)

// validateAndRead reads exactly length bytes at the cursor. The file
// size is consulted first: when the remaining bytes cannot satisfy the
// read, the result is io.EOF if the policy allows it and the cursor is
// exactly at the end of the file, and corruption in every other case.
// A short read despite a sufficient reported size (for
// example a concurrent truncation) is also corruption. On success the
// cursor advances by length.
func (r *Reader) validateAndRead(length int64, policy eofPolicy) ([]byte, error) {
	stat, err := r.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("querying file size: %w", err)
	}
	size := stat.Size()
	if r.offset+length > size {
		// Clean end of file only when the cursor sits exactly on the
		// last frame boundary. Trailing bytes too few to satisfy the
		// read mean the file was cut mid-frame.
		if policy == eofOK && r.offset == size {
			return nil, io.EOF
		}
		corruptionsDetected.Inc()
		return nil, fault.Corruptionf("file too short to be valid: tried to read %d bytes at offset %d but file size is only %d",
			length, r.offset, size)
	}

	buf := make([]byte, length)
	n, err := r.file.ReadAt(buf, r.offset)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == length) {
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w", length, r.offset, err)
	}
	if int64(n) < length {
		corruptionsDetected.Inc()
		return nil, fault.Corruptionf("unexpected short read: tried to read %d bytes at offset %d, got %d",
			length, r.offset, n)
	}
	r.offset += int64(n)
	return buf, nil
}
