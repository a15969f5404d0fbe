package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gorewood/aeon3md/internal/output"
)

// BackupSuffix is appended to files that are replaced.
const BackupSuffix = ".bak"

// Logger receives export progress. *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}

// FileWriter writes notes into one directory, keeping a .bak copy of every
// file it replaces.
//
// The rename to .bak and the following write are not atomic: if the process
// dies in between, only the backup remains.
type FileWriter struct {
	dir     string
	log     Logger
	written []string
	backups []string
}

// NewFileWriter creates a writer for dir. A nil logger discards progress.
func NewFileWriter(dir string, log Logger) *FileWriter {
	if log == nil {
		log = nopLogger{}
	}
	return &FileWriter{dir: dir, log: log}
}

// Dir returns the output directory.
func (w *FileWriter) Dir() string {
	return w.dir
}

// Written returns the paths written so far.
func (w *FileWriter) Written() []string {
	return w.written
}

// Backups returns the backup paths created so far.
func (w *FileWriter) Backups() []string {
	return w.backups
}

// Write stores content in dir/name. An existing file is renamed to
// name.bak first; if writing then fails the backup is moved back.
func (w *FileWriter) Write(name, content string) error {
	path := filepath.Join(w.dir, name)
	backup := path + BackupSuffix

	backedUp := false
	info, err := os.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		if err := os.Rename(path, backup); err != nil {
			return output.NewSystemErrorWithCause(fmt.Sprintf("cannot overwrite %s", path), err)
		}
		backedUp = true
	case err == nil:
		return output.NewSystemError(fmt.Sprintf("cannot overwrite %s: not a regular file", path))
	case !errors.Is(err, fs.ErrNotExist):
		return output.NewSystemErrorWithCause(fmt.Sprintf("cannot overwrite %s", path), err)
	}

	if err := writeFile(path, content); err != nil {
		if backedUp {
			if restoreErr := os.Rename(backup, path); restoreErr != nil {
				w.log.Debugf("restoring %s failed: %v", backup, restoreErr)
			}
		}
		return output.NewSystemErrorWithCause(fmt.Sprintf("cannot write %s", path), err)
	}

	if backedUp {
		w.backups = append(w.backups, backup)
	}
	w.written = append(w.written, path)
	w.log.Debugf("%s written", path)
	return nil
}

// writeFile is replaced in tests to simulate a failing disk.
var writeFile = writeFileContent

func writeFileContent(path, content string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = f.WriteString(content)
	return err
}
