//go:build !unix

package egrid

import "io"

func openSource(path string) (io.ReaderAt, int64, func() error, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, 0, nil, err
	}
	return fileSource(f, size)
}
