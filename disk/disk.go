package disk

import (
	"fmt"
	"math"
)

// PageSize is the size of a page on disk. Page i of the heap file occupies
// bytes [i*PageSize, (i+1)*PageSize).
const PageSize = 4096

// maxPageID is the largest ID whose page still ends at a representable file
// offset.
const maxPageID = PageID(math.MaxInt64/PageSize - 1)

type Disk interface {
	/*
		AllocatePage reserves the next page ID.

		Nothing is written; the page only exists once WritePageData has been
		called for it.
	*/
	AllocatePage() PageID
	// ReadPageData reads a whole page into buf, which must be PageSize long.
	ReadPageData(id PageID, buf []byte) error
	// WritePageData writes a whole page. data must be PageSize long.
	WritePageData(id PageID, data []byte) error
	// Sync makes all previous writes durable.
	Sync() error
	// Close releases the disk. It does not imply Sync.
	Close() error
}

// checkAccess validates the arguments shared by ReadPageData and
// WritePageData.
func checkAccess(id PageID, buf []byte) error {
	if _, ok := id.Valid(); !ok {
		return ErrInvalidPageID
	}
	if id > maxPageID {
		return fmt.Errorf("%w: page %s is beyond the largest file offset", ErrInvalidPageID, id)
	}
	if len(buf) != PageSize {
		return ErrBufferSize
	}
	return nil
}
