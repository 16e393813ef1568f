package pbutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"

	"github.com/fjordstone/pbfile/pkg/codec"
	"github.com/fjordstone/pbfile/pkg/container"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "pbfile").Logger()

// SyncMode selects whether a path-level write must survive a crash.
type SyncMode int

const (
	// NoSync publishes atomically but does not force data to stable
	// storage; a crash shortly after the write may lose it.
	NoSync SyncMode = iota

	// Sync forces the temp file's data and the directory's metadata to
	// stable storage before and after the rename.
	Sync
)

// WritePBToPath atomically writes msg's raw wire encoding to path.
// The file has no header, framing, or checksum; use the container form
// when integrity checking is needed.
func WritePBToPath(fs vfs.FS, path string, msg proto.Message, sync SyncMode) error {
	data, err := codec.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message for %s: %w", path, err)
	}

	tmp := tempPath(path)
	file, err := fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp file %s: %w", tmp, err)
	}
	deleter := newFileDeleter(fs, tmp)
	defer deleter.Delete()
	closed := false
	defer func() {
		if !closed {
			closeQuietly(file, tmp)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("writing message to %s: %w", tmp, err)
	}
	if sync == Sync {
		if err := file.Sync(); err != nil {
			return fmt.Errorf("syncing %s: %w", tmp, err)
		}
	}
	closed = true
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	return publish(fs, tmp, path, deleter, sync)
}

// ReadPBFromPath reads a single-message file and decodes it into msg.
func ReadPBFromPath(fs vfs.FS, path string, msg proto.Message) error {
	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer closeQuietly(file, path)

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := codec.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	return nil
}

// WritePBContainerToPath atomically writes a container file at path
// holding msg as its only record.
func WritePBContainerToPath(fs vfs.FS, path, magic string, msg proto.Message, sync SyncMode) error {
	return WriteContainerToPath(fs, path, magic, sync, func(w *container.Writer) error {
		return w.Append(msg)
	})
}

// WriteContainerToPath atomically writes a container file at path,
// invoking fill to append its records. This is the general form; most
// callers want WritePBContainerToPath.
func WriteContainerToPath(fs vfs.FS, path, magic string, sync SyncMode, fill func(*container.Writer) error) error {
	if len(magic) != codec.MagicLength {
		return fmt.Errorf("writing container %s: magic number must be %d bytes, got %d",
			path, codec.MagicLength, len(magic))
	}

	tmp := tempPath(path)
	file, err := fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp file %s: %w", tmp, err)
	}
	deleter := newFileDeleter(fs, tmp)
	defer deleter.Delete()

	w := container.NewWriter(file, tmp)
	defer func() {
		// Safety net for early returns; Close is idempotent.
		if err := w.Close(); err != nil {
			logger.Warn().Err(err).Str("path", tmp).Msg("could not close container writer")
		}
	}()

	if err := w.Init(magic); err != nil {
		return err
	}
	if err := fill(w); err != nil {
		return err
	}
	if sync == Sync {
		if err := w.Sync(); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return publish(fs, tmp, path, deleter, sync)
}

// ReadPBContainerFromPath opens the container at path, validates its
// header against magic, and decodes exactly one record into msg. A
// container with no records yields io.EOF.
func ReadPBContainerFromPath(fs vfs.FS, path, magic string, msg proto.Message) error {
	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening container file %s: %w", path, err)
	}
	r := container.NewReader(file, path)
	defer closeReaderQuietly(r, path)

	if err := r.Init(magic); err != nil {
		return err
	}
	if err := r.ReadNextPB(msg); err != nil {
		return err
	}
	return r.Close()
}

// ReadPBContainerRecords replays every record in the container at path,
// decoding each into msg and invoking fn after each decode. msg is
// reset between records, so fn must copy anything it keeps. Reading
// stops at the clean end of the container, or at the first error from
// the file or from fn.
func ReadPBContainerRecords(fs vfs.FS, path, magic string, msg proto.Message, fn func(proto.Message) error) error {
	file, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening container file %s: %w", path, err)
	}
	r := container.NewReader(file, path)
	defer closeReaderQuietly(r, path)

	if err := r.Init(magic); err != nil {
		return err
	}
	for {
		proto.Reset(msg)
		err := r.ReadNextPB(msg)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := fn(msg); err != nil {
			return err
		}
	}
	return r.Close()
}

// publish renames the temp file onto the final path, discharges the
// deletion obligation, and syncs the directory when durability was
// requested so the rename itself survives a crash.
func publish(fs vfs.FS, tmp, path string, deleter *fileDeleter, sync SyncMode) error {
	if err := fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	deleter.Cancel()
	if sync == Sync {
		if err := syncDir(fs, fs.PathDir(path)); err != nil {
			return err
		}
	}
	return nil
}

func syncDir(fs vfs.FS, dir string) error {
	d, err := fs.OpenDir(dir)
	if err != nil {
		return fmt.Errorf("opening directory %s: %w", dir, err)
	}
	syncErr := d.Sync()
	closeErr := d.Close()
	if syncErr != nil {
		return fmt.Errorf("syncing directory %s: %w", dir, syncErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing directory %s: %w", dir, closeErr)
	}
	return nil
}

// closeQuietly is the close-on-unwind safety net: by the time it runs
// the caller has either already closed the file or is returning an
// error of its own, so a close failure here is only logged.
func closeQuietly(file vfs.File, path string) {
	if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logger.Warn().Err(err).Str("path", path).Msg("could not close file")
	}
}

func closeReaderQuietly(r *container.Reader, path string) {
	if err := r.Close(); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not close container reader")
	}
}
