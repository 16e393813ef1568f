// Package fault defines the error taxonomy shared by the container file
// packages.
//
// Errors fall into a small set of categories that callers are expected to
// distinguish with errors.Is:
//
//   - ErrCorruption: the bytes on disk do not form a valid container
//     (bad magic, checksum mismatch, mid-frame truncation, short read).
//   - ErrNotSupported: the file declares a format version this library
//     does not implement.
//   - io.EOF: the clean end of a well-formed container. Not a fault;
//     sequential readers return it when no more records exist.
//
// Everything else (failed open, read, write, sync, rename, or a payload
// that fails to parse despite a correct checksum) propagates as a plain
// wrapped error describing the operation and path.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruption indicates on-disk data failed an integrity check.
	ErrCorruption = errors.New("data corruption detected")

	// ErrNotSupported indicates a format version this library cannot read.
	ErrNotSupported = errors.New("not supported")
)

// Corruptionf builds a corruption error with diagnostic context.
// The result matches ErrCorruption under errors.Is.
func Corruptionf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrCorruption)
}

// NotSupportedf builds a version-compatibility error with diagnostic
// context. The result matches ErrNotSupported under errors.Is.
func NotSupportedf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotSupported)
}
