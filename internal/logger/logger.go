// Package logger provides the rotating file writer the application
// logs through.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// RotateWriter is an io.Writer that rotates its file by size and age,
// renaming the old file with a timestamp suffix.
type RotateWriter struct {
	filename    string
	maxSize     int64
	maxAge      time.Duration
	currentSize int64
	file        *os.File
	created     time.Time
}

// NewRotateWriter creates a RotateWriter for the given file. maxSize
// is the byte limit before rotation, maxAge the file age limit; zero
// disables the respective check.
func NewRotateWriter(filename string, maxSize int64, maxAge time.Duration) (*RotateWriter, error) {
	w := &RotateWriter{
		filename: filename,
		maxSize:  maxSize,
		maxAge:   maxAge,
	}
	if err := w.openFile(); err != nil {
		return nil, err
	}
	return w, nil
}

// Write appends to the current file, rotating first when a limit
// would be exceeded.
func (w *RotateWriter) Write(p []byte) (n int, err error) {
	if w.file == nil {
		if err := w.openFile(); err != nil {
			return 0, err
		}
	}

	if w.shouldRotate(int64(len(p))) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = w.file.Write(p)
	w.currentSize += int64(n)
	return n, err
}

// Close closes the current log file.
func (w *RotateWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *RotateWriter) shouldRotate(size int64) bool {
	if w.maxSize > 0 && w.currentSize+size > w.maxSize {
		return true
	}
	if w.maxAge > 0 && time.Since(w.created) > w.maxAge {
		return true
	}
	return false
}

func (w *RotateWriter) rotate() error {
	if err := w.Close(); err != nil {
		return err
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	dir := filepath.Dir(w.filename)
	base := filepath.Base(w.filename)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	archived := filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, timestamp, ext))

	if err := os.Rename(w.filename, archived); err != nil && !os.IsNotExist(err) {
		return err
	}

	return w.openFile()
}

func (w *RotateWriter) openFile() error {
	dir := filepath.Dir(w.filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(w.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("erro ao fechar arquivo de log após falha de Stat: %v\n", cerr)
		}
		return err
	}

	w.file = f
	w.currentSize = info.Size()
	w.created = time.Now()
	return nil
}

// GetWriter creates a rotating io.Writer for the given log file.
func GetWriter(filename string, maxSize int64, maxAge time.Duration) (io.Writer, error) {
	return NewRotateWriter(filename, maxSize, maxAge)
}
