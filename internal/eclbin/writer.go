package eclbin

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// Writer encodes records in the same blocked layout Reader consumes.
// Call Flush when done.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// WriteHeader writes a header block only. It is exported so callers can
// produce records with hand-made payloads.
func (w *Writer) WriteHeader(h Header) error {
	kw, err := padKeyword(h.Keyword)
	if err != nil {
		return err
	}
	if len(h.Type) != TypeLen {
		return fmt.Errorf("type tag %q must be %d characters", string(h.Type), TypeLen)
	}
	if h.Count < 0 || h.Count > math.MaxInt32 {
		return fmt.Errorf("count %d out of range", h.Count)
	}
	var b [HeaderSize]byte
	binary.BigEndian.PutUint32(b[0:4], headerPayload)
	copy(b[4:12], kw)
	binary.BigEndian.PutUint32(b[12:16], uint32(h.Count))
	copy(b[16:20], h.Type)
	binary.BigEndian.PutUint32(b[20:24], headerPayload)
	_, err = w.w.Write(b[:])
	return err
}

// WriteBlock writes one framed data block.
func (w *Writer) WriteBlock(payload []byte) error {
	var m [markerSize]byte
	binary.BigEndian.PutUint32(m[:], uint32(len(payload)))
	if _, err := w.w.Write(m[:]); err != nil {
		return err
	}
	if _, err := w.w.Write(payload); err != nil {
		return err
	}
	_, err := w.w.Write(m[:])
	return err
}

func (w *Writer) WriteInts(keyword string, v []int32) error {
	if err := w.WriteHeader(Header{Keyword: keyword, Count: len(v), Type: TypeInt}); err != nil {
		return err
	}
	return writeChunks(w, len(v), numericBlockLen, 4, func(dst []byte, i int) {
		binary.BigEndian.PutUint32(dst, uint32(v[i]))
	})
}

func (w *Writer) WriteFloats(keyword string, v []float32) error {
	if err := w.WriteHeader(Header{Keyword: keyword, Count: len(v), Type: TypeReal}); err != nil {
		return err
	}
	return writeChunks(w, len(v), numericBlockLen, 4, func(dst []byte, i int) {
		binary.BigEndian.PutUint32(dst, math.Float32bits(v[i]))
	})
}

// WriteChars writes a CHAR record. Values are blank-padded to 8 characters.
func (w *Writer) WriteChars(keyword string, v []string) error {
	for _, s := range v {
		if len(s) > 8 {
			return fmt.Errorf("%s: value %q longer than 8 characters", keyword, s)
		}
	}
	if err := w.WriteHeader(Header{Keyword: keyword, Count: len(v), Type: TypeChar}); err != nil {
		return err
	}
	return writeChunks(w, len(v), charBlockLen, 8, func(dst []byte, i int) {
		copy(dst, v[i]+strings.Repeat(" ", 8-len(v[i])))
	})
}

// WriteMessage writes a payload-free MESS record such as ENDGRID.
func (w *Writer) WriteMessage(keyword string) error {
	return w.WriteHeader(Header{Keyword: keyword, Type: TypeMessage})
}

func writeChunks(w *Writer, count, per, size int, put func(dst []byte, i int)) error {
	buf := make([]byte, min(count, per)*size)
	for start := 0; start < count; start += per {
		n := min(per, count-start)
		p := buf[:n*size]
		for i := range n {
			put(p[i*size:], start+i)
		}
		if err := w.WriteBlock(p); err != nil {
			return err
		}
	}
	return nil
}
