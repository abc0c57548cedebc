package res

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned when a key is not in the table and no
	// passthrough applies. It matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("res: key not found: %w", fs.ErrNotExist)

	// ErrDecompression is returned when a stored payload fails to decode.
	ErrDecompression = errors.New("res: decompression failed")

	// ErrCodecUnavailable is returned when an entry needs a codec the table
	// was built without.
	ErrCodecUnavailable = errors.New("res: codec unavailable")
)

func notFound(op, key string) error {
	return &fs.PathError{Op: op, Path: key, Err: ErrNotFound}
}
