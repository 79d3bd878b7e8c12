// Package bigarray provides a flat array that is stored as fixed-size blocks
// so that very large fields never need a single contiguous allocation.
package bigarray

import (
	"errors"
	"fmt"
)

// DefaultBlockShift gives blocks of 1<<19 (524288) elements.
const DefaultBlockShift = 19

// ErrIndexOutOfRange is returned for any index >= Len().
var ErrIndexOutOfRange = errors.New("bigarray: index out of range")

// Array is a fixed-length array addressed with a 64-bit index.
// Block number and in-block offset come from a shift and a mask.
type Array[T any] struct {
	blocks [][]T
	length uint64
	shift  uint
	mask   uint64
}

// New allocates an array of n zero elements using DefaultBlockShift.
func New[T any](n uint64) *Array[T] {
	return NewWithBlockShift[T](n, DefaultBlockShift)
}

// NewWithBlockShift allocates an array of n zero elements in blocks of
// 1<<shift elements. The last block holds only the remainder.
func NewWithBlockShift[T any](n uint64, shift uint) *Array[T] {
	if shift > 30 {
		shift = 30
	}
	size := uint64(1) << shift
	numBlocks := n >> shift
	if n&(size-1) != 0 {
		numBlocks++
	}

	blocks := make([][]T, numBlocks)
	for b := range blocks {
		blockLen := size
		if uint64(b) == numBlocks-1 {
			blockLen = n - uint64(b)*size
		}
		blocks[b] = make([]T, blockLen)
	}

	return &Array[T]{
		blocks: blocks,
		length: n,
		shift:  shift,
		mask:   size - 1,
	}
}

// Len returns the number of elements.
func (a *Array[T]) Len() uint64 {
	return a.length
}

// BlockSize returns the number of elements in every block but the last.
func (a *Array[T]) BlockSize() uint64 {
	return a.mask + 1
}

// BlockCount returns the number of allocated blocks.
func (a *Array[T]) BlockCount() int {
	return len(a.blocks)
}

// At returns the element at index i.
func (a *Array[T]) At(i uint64) (T, error) {
	if i >= a.length {
		var zero T
		return zero, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, a.length)
	}
	return a.blocks[i>>a.shift][i&a.mask], nil
}

// Set stores v at index i.
func (a *Array[T]) Set(i uint64, v T) error {
	if i >= a.length {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, a.length)
	}
	a.blocks[i>>a.shift][i&a.mask] = v
	return nil
}

// Fill copies src into the array starting at index start, crossing block
// boundaries as needed. Nothing is written if src does not fit.
func (a *Array[T]) Fill(start uint64, src []T) error {
	end := start + uint64(len(src))
	if end < start || end > a.length {
		return fmt.Errorf("%w: fill [%d, %d) (len %d)", ErrIndexOutOfRange, start, end, a.length)
	}
	for len(src) > 0 {
		block := a.blocks[start>>a.shift]
		n := copy(block[start&a.mask:], src)
		src = src[n:]
		start += uint64(n)
	}
	return nil
}
