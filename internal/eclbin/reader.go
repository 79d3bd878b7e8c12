package eclbin

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samcharles93/eclgrid/internal/bigarray"
)

// Reader decodes records from a random-access source. It keeps its own
// position; the underlying io.ReaderAt is never seeked.
type Reader struct {
	r    io.ReaderAt
	size int64
	pos  int64
}

// NewReader returns a reader over the first size bytes of r.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{r: r, size: size}
}

// Pos returns the current read offset.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Size returns the total readable size.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 {
	return r.size - r.pos
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	if int64(n) > r.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	if err := r.readAt(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *Reader) readAt(buf []byte) error {
	n, err := r.r.ReadAt(buf, r.pos)
	if n == len(buf) {
		r.pos += int64(n)
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int64) error {
	if n < 0 || n > r.Remaining() {
		return io.ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadString reads n bytes of character data with trailing blanks removed.
func (r *Reader) ReadString(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), " \x00"), nil
}

// ReadHeader reads the next record header.
func (r *Reader) ReadHeader() (Header, error) {
	start := r.pos
	b, err := r.ReadBytes(HeaderSize)
	if err != nil {
		return Header{}, err
	}
	lead := int32(binary.BigEndian.Uint32(b[0:4]))
	trail := int32(binary.BigEndian.Uint32(b[20:24]))
	if lead != headerPayload || trail != headerPayload {
		return Header{}, fmt.Errorf("%w: header markers %d/%d at offset %d", ErrCorruptRecord, lead, trail, start)
	}
	count := int32(binary.BigEndian.Uint32(b[12:16]))
	if count < 0 {
		return Header{}, fmt.Errorf("%w: negative count %d at offset %d", ErrCorruptRecord, count, start)
	}
	return Header{
		Keyword: strings.TrimRight(string(b[4:12]), " "),
		Count:   int(count),
		Type:    Type(b[16:20]),
	}, nil
}

// CheckPayload reports an error wrapping io.ErrUnexpectedEOF when fewer
// bytes remain than the payload of h occupies. Counts come from the file, so
// callers check before allocating for them.
func (r *Reader) CheckPayload(h Header) error {
	need, err := h.PayloadSize()
	if err != nil {
		return err
	}
	if left := r.Remaining(); need > left {
		return fmt.Errorf("%s payload needs %d bytes, %d remain: %w", h.Keyword, need, left, io.ErrUnexpectedEOF)
	}
	return nil
}

// ReadInts reads the payload of an INTE record.
func (r *Reader) ReadInts(h Header) ([]int32, error) {
	if h.Type != TypeInt {
		return nil, fmt.Errorf("%w: %s is %s, want %s", ErrTypeMismatch, h.Keyword, h.Type, TypeInt)
	}
	if err := r.CheckPayload(h); err != nil {
		return nil, err
	}
	out := make([]int32, h.Count)
	err := r.readBlocks(h, 4, func(start int, p []byte) error {
		for i := range len(p) / 4 {
			out[start+i] = int32(binary.BigEndian.Uint32(p[4*i:]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadFloats reads the payload of a REAL record.
func (r *Reader) ReadFloats(h Header) ([]float32, error) {
	if h.Type != TypeReal {
		return nil, fmt.Errorf("%w: %s is %s, want %s", ErrTypeMismatch, h.Keyword, h.Type, TypeReal)
	}
	if err := r.CheckPayload(h); err != nil {
		return nil, err
	}
	out := make([]float32, h.Count)
	err := r.readBlocks(h, 4, func(start int, p []byte) error {
		decodeFloats(out[start:start+len(p)/4], p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadFloatsInto reads the payload of a REAL record into dst, which must
// have exactly h.Count elements.
func (r *Reader) ReadFloatsInto(h Header, dst *bigarray.Array[float32]) error {
	if h.Type != TypeReal {
		return fmt.Errorf("%w: %s is %s, want %s", ErrTypeMismatch, h.Keyword, h.Type, TypeReal)
	}
	if dst.Len() != uint64(h.Count) {
		return fmt.Errorf("%w: %s has %d elements, destination holds %d", ErrCorruptRecord, h.Keyword, h.Count, dst.Len())
	}
	if err := r.CheckPayload(h); err != nil {
		return err
	}
	scratch := make([]float32, min(h.Count, h.Type.BlockLen()))
	return r.readBlocks(h, 4, func(start int, p []byte) error {
		n := len(p) / 4
		if n > len(scratch) {
			scratch = make([]float32, n)
		}
		decodeFloats(scratch[:n], p)
		return dst.Fill(uint64(start), scratch[:n])
	})
}

// SkipData skips the payload of any record without decoding it.
func (r *Reader) SkipData(h Header) error {
	size, err := h.Type.ElemSize()
	if err != nil {
		return err
	}
	if size == 0 || h.Count == 0 {
		return nil
	}
	return r.walkBlocks(h, size, func(_ int, n int) error {
		return r.Skip(int64(n))
	})
}

func decodeFloats(dst []float32, p []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.BigEndian.Uint32(p[4*i:]))
	}
}

// readBlocks reads every data block of h and hands its payload to fn along
// with the element index of the block's first element.
func (r *Reader) readBlocks(h Header, elemSize int, fn func(start int, payload []byte) error) error {
	return r.walkBlocks(h, elemSize, func(start int, n int) error {
		p, err := r.ReadBytes(n)
		if err != nil {
			return err
		}
		return fn(start, p)
	})
}

// walkBlocks validates block framing. body must consume exactly n bytes.
func (r *Reader) walkBlocks(h Header, elemSize int, body func(start int, n int) error) error {
	done := 0
	for done < h.Count {
		at := r.pos
		lead, err := r.ReadInt32()
		if err != nil {
			return fmt.Errorf("%s block marker: %w", h.Keyword, err)
		}
		if lead <= 0 || int(lead)%elemSize != 0 || int(lead)/elemSize > h.Count-done {
			return fmt.Errorf("%w: %s block marker %d at offset %d", ErrCorruptRecord, h.Keyword, lead, at)
		}
		if err := body(done, int(lead)); err != nil {
			return fmt.Errorf("%s block at offset %d: %w", h.Keyword, at, err)
		}
		trail, err := r.ReadInt32()
		if err != nil {
			return fmt.Errorf("%s block marker: %w", h.Keyword, err)
		}
		if trail != lead {
			return fmt.Errorf("%w: %s block markers %d/%d at offset %d", ErrCorruptRecord, h.Keyword, lead, trail, at)
		}
		done += int(lead) / elemSize
	}
	return nil
}
