//go:build unix

package egrid

import (
	"bytes"
	"io"

	"golang.org/x/sys/unix"
)

func openSource(path string) (io.ReaderAt, int64, func() error, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, 0, nil, err
	}
	if size == 0 || size > int64(int(^uint(0)>>1)) {
		return fileSource(f, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return fileSource(f, size)
	}
	// The mapping stays valid after the descriptor is closed.
	_ = f.Close()
	return bytes.NewReader(data), size, func() error { return unix.Munmap(data) }, nil
}
