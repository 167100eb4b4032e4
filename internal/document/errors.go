package document

import "errors"

var (
	// ErrOutOfRange indicates a position outside any block's content.
	ErrOutOfRange = errors.New("position out of range")

	// ErrRangeInvalid indicates a range whose end precedes its start.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrCrossBlock indicates a read that spans more than one block.
	ErrCrossBlock = errors.New("range spans multiple blocks")
)
