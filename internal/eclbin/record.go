// Package eclbin reads and writes the blocked, big-endian record format used by
// Eclipse-style unformatted output files (EGRID, INIT, UNRST, ...).
//
// Every record starts with a 24-byte header block holding an 8-character
// keyword, an element count and a 4-character type tag. The payload follows
// as one or more data blocks, each framed by leading and trailing int32 byte
// counts.
package eclbin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// HeaderSize is the on-disk size of a record header including its markers.
	HeaderSize = 24

	KeywordLen = 8
	TypeLen    = 4

	headerPayload = KeywordLen + 4 + TypeLen
	markerSize    = 4

	numericBlockLen = 1000
	charBlockLen    = 105
)

var (
	ErrCorruptRecord = errors.New("eclbin: corrupt record")
	ErrTypeMismatch  = errors.New("eclbin: record type mismatch")
	ErrUnknownType   = errors.New("eclbin: unknown record type")
)

type Type string

const (
	TypeInt     Type = "INTE"
	TypeReal    Type = "REAL"
	TypeDouble  Type = "DOUB"
	TypeLogical Type = "LOGI"
	TypeChar    Type = "CHAR"
	TypeMessage Type = "MESS"
)

// ElemSize returns the byte width of one element. C0nn types carry nn-byte
// strings.
func (t Type) ElemSize() (int, error) {
	switch t {
	case TypeInt, TypeReal, TypeLogical:
		return 4, nil
	case TypeDouble, TypeChar:
		return 8, nil
	case TypeMessage:
		return 0, nil
	}
	if len(t) == TypeLen && t[0] == 'C' {
		if n, err := strconv.Atoi(string(t[1:])); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
}

// BlockLen returns the maximum number of elements in one data block.
func (t Type) BlockLen() int {
	if t == TypeChar || (len(t) == TypeLen && t[0] == 'C') {
		return charBlockLen
	}
	return numericBlockLen
}

// Header describes one record.
type Header struct {
	Keyword string
	Count   int
	Type    Type
}

func (h Header) String() string {
	return fmt.Sprintf("%s (%d) %s", h.Keyword, h.Count, h.Type)
}

// PayloadSize returns the number of bytes the payload occupies on disk when
// written with full-size blocks.
func (h Header) PayloadSize() (int64, error) {
	size, err := h.Type.ElemSize()
	if err != nil {
		return 0, err
	}
	if size == 0 || h.Count == 0 {
		return 0, nil
	}
	per := h.Type.BlockLen()
	blocks := (h.Count + per - 1) / per
	return int64(h.Count)*int64(size) + int64(blocks)*2*markerSize, nil
}

func padKeyword(kw string) (string, error) {
	if len(kw) > KeywordLen {
		return "", fmt.Errorf("keyword %q longer than %d characters", kw, KeywordLen)
	}
	return kw + strings.Repeat(" ", KeywordLen-len(kw)), nil
}
