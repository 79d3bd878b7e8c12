package egrid

import "errors"

var (
	// ErrRecordShape marks a record whose type or element count does not
	// match what its keyword requires.
	ErrRecordShape = errors.New("egrid: unexpected record shape")
	// ErrRecordOrder marks a record that arrives before the records it
	// depends on, or a write-once record that appears twice.
	ErrRecordOrder = errors.New("egrid: record out of order")
	// ErrMissingKeyword is returned when the file ends without a required
	// grid keyword.
	ErrMissingKeyword = errors.New("egrid: missing keyword")

	ErrCellOutOfRange   = errors.New("egrid: cell index out of range")
	ErrPillarOutOfRange = errors.New("egrid: pillar index out of range")
)
