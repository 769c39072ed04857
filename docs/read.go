package docs

import (
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadDocument memory-maps the file at path read-only and passes its
// contents to fn. The slice is only valid until fn returns; callers must
// copy anything they keep.
func ReadDocument(path string, fn func(data []byte)) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close: %w", closeErr))
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		fn(nil)
		return nil
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap: %w", err)
	}
	defer func() {
		if unmapErr := mapped.Unmap(); unmapErr != nil {
			err = errors.Join(err, fmt.Errorf("unmap: %w", unmapErr))
		}
	}()

	fn(mapped)
	return nil
}
