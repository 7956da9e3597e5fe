// Package persistence stores snapshots as zstd-compressed gob streams.
package persistence

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// SaveGob gob-encodes object through a zstd stream into filePath.
// It creates necessary directories if they don't exist. The snapshot is
// written to a temporary file and renamed into place, so readers never
// observe a partial file.
func SaveGob(filePath string, object any) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer for %s: %w", filePath, err)
	}
	if err := gob.NewEncoder(enc).Encode(object); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to gob encode to file %s: %w", filePath, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush zstd stream for %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("failed to move snapshot into %s: %w", filePath, err)
	}
	committed = true
	return nil
}

// LoadGob decodes a snapshot written by SaveGob into objectPointer.
// If the file does not exist, it returns os.ErrNotExist, allowing callers
// to handle fresh starts gracefully.
func LoadGob(filePath string, objectPointer any) error {
	file, err := os.Open(filePath) // #nosec G304 -- filePath is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close file %s: %v", filePath, closeErr)
		}
	}()

	dec, err := zstd.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to open zstd stream %s: %w", filePath, err)
	}
	defer dec.Close()

	if err := gob.NewDecoder(dec).Decode(objectPointer); err != nil {
		return fmt.Errorf("failed to gob decode from file %s: %w", filePath, err)
	}
	return nil
}
