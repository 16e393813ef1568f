package container

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cockroachdb/pebble/vfs"
	"google.golang.org/protobuf/proto"

	"github.com/fjordstone/pbfile/pkg/codec"
)

const defaultWriterBufferSize = 64 * 1024

// Writer appends a container header and record frames to an open file.
//
// The write sequence is Init, zero or more Append/AppendBytes calls,
// then Close. Callers that need the data to survive a crash must call
// Sync before Close. Writer assumes exclusive ownership of the file and
// closes it on Close.
type Writer struct {
	file        vfs.File
	buf         *bufio.Writer
	path        string
	initialized bool
	closed      bool
}

// NewWriter wraps an open file. path is used only for error messages.
func NewWriter(file vfs.File, path string) *Writer {
	return &Writer{
		file: file,
		buf:  bufio.NewWriterSize(file, defaultWriterBufferSize),
		path: path,
	}
}

// Init writes the container header. It must be called exactly once,
// before any append; violating that is a caller bug and panics.
func (w *Writer) Init(magic string) error {
	if w.closed {
		panic("container: Init on closed Writer")
	}
	if w.initialized {
		panic("container: Init called twice on Writer")
	}
	if _, err := w.buf.Write(codec.EncodeHeader(magic)); err != nil {
		return fmt.Errorf("writing header to %s: %w", w.path, err)
	}
	w.initialized = true
	return nil
}

// Append encodes msg and appends it as a single record frame.
//
// The message's byte size is measured once and written as the frame
// length. If encoding then produces a different number of bytes, from
// a concurrently modified message or an encoder inconsistency, the
// process is aborted: the frame already promises a length the payload
// would not honor.
func (w *Writer) Append(msg proto.Message) error {
	w.checkAppendable()
	size := proto.Size(msg)
	if int64(size) > math.MaxUint32 {
		panic("container: message too large for frame length field")
	}
	frame := make([]byte, 0, codec.FrameOverhead+size)
	frame = binary.LittleEndian.AppendUint32(frame, uint32(size))
	frame, err := codec.AppendMessage(frame, msg, size)
	if err != nil {
		return fmt.Errorf("marshaling record for %s: %w", w.path, err)
	}
	frame = binary.LittleEndian.AppendUint32(frame, codec.Checksum(frame))
	return w.writeFrame(frame)
}

// AppendBytes appends an already-encoded payload as a record frame.
func (w *Writer) AppendBytes(payload []byte) error {
	w.checkAppendable()
	return w.writeFrame(codec.EncodeFrame(payload))
}

func (w *Writer) writeFrame(frame []byte) error {
	if _, err := w.buf.Write(frame); err != nil {
		return fmt.Errorf("appending record to %s: %w", w.path, err)
	}
	recordsAppended.Inc()
	bytesAppended.Add(float64(len(frame)))
	return nil
}

func (w *Writer) checkAppendable() {
	if w.closed {
		panic("container: Append on closed Writer")
	}
	if !w.initialized {
		panic("container: Append before Init")
	}
}

// Flush pushes buffered bytes to the operating system. It does not
// guarantee durability across a crash; use Sync for that.
func (w *Writer) Flush() error {
	if w.closed {
		panic("container: Flush on closed Writer")
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", w.path, err)
	}
	return nil
}

// Sync flushes buffered bytes and syncs them to stable storage.
func (w *Writer) Sync() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", w.path, err)
	}
	return nil
}

// Close flushes any buffered bytes and closes the underlying file.
// It is idempotent; calls after the first return nil.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", w.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", w.path, closeErr)
	}
	return nil
}
