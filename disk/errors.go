package disk

import "errors"

var (
	// ErrBufferSize is returned when a page buffer is not exactly PageSize bytes.
	ErrBufferSize = errors.New("page buffer must be exactly one page long")
	// ErrInvalidPageID is returned when InvalidPageID is used to address a page.
	ErrInvalidPageID = errors.New("invalid page id")
	// ErrInvalidPageIDLength is returned when decoding a page ID from a buffer
	// that is not PageIDSize bytes long.
	ErrInvalidPageIDLength = errors.New("invalid page id length")
	// ErrClosed is returned by operations on a closed disk.
	ErrClosed = errors.New("disk is closed")
)
