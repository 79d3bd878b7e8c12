package egrid

import (
	"fmt"
	"io"
	"os"
)

// Open loads the grid file at path. The file is mapped (or read through
// ReadAt where mapping is unavailable) only for the duration of the call and
// is released on every return path.
func Open(path string, opts ...Option) (g *Grid, err error) {
	src, size, release, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			g, err = nil, fmt.Errorf("release %s: %w", path, rerr)
		}
	}()

	o := resolveOptions(opts)
	o.log = o.log.With("path", path)
	o.log.Debug("opening grid", "size", size)

	g, err = decode(src, size, o)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}

func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}
	return f, st.Size(), nil
}

// fileSource reads through the open file; used when mapping is not possible.
func fileSource(f *os.File, size int64) (io.ReaderAt, int64, func() error, error) {
	return f, size, f.Close, nil
}
