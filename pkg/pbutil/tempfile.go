package pbutil

import (
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
)

// tempPath derives a unique temp-file name next to the final path, so
// the eventual rename stays on one filesystem.
func tempPath(path string) string {
	return path + ".tmp." + ksuid.New().String()
}

// fileDeleter is a cleanup obligation for a temp file. It is armed on
// creation and runs on scope exit via defer; Cancel discharges it once
// the file has been renamed away and must no longer be deleted.
type fileDeleter struct {
	fs       vfs.FS
	path     string
	canceled bool
}

func newFileDeleter(fs vfs.FS, path string) *fileDeleter {
	return &fileDeleter{fs: fs, path: path}
}

// Cancel discharges the obligation.
func (d *fileDeleter) Cancel() {
	d.canceled = true
}

// Delete removes the temp file unless the obligation was canceled.
// Failures are logged, not returned: Delete runs during unwind, where
// no caller is left to receive an error.
func (d *fileDeleter) Delete() {
	if d.canceled {
		return
	}
	if err := d.fs.Remove(d.path); err != nil {
		logger.Warn().Err(err).Str("path", d.path).Msg("could not delete temp file")
	}
}
