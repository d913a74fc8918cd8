package disk

import (
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

/*
RAMDisk is a memory mock of a disk.

It follows the same contract as DiskManager, including io.ErrUnexpectedEOF
for pages that have never been written, so layers above the disk can be
tested without touching the file system.
*/
type RAMDisk struct {
	nextPageID PageID
	pages      map[PageID][]byte
	// numPages is one past the highest written page. Unwritten pages below
	// it read as zeros, like the holes of a sparse heap file.
	numPages uint64
	closed     bool
}

func NewRAMDisk(initialSize uint) *RAMDisk {
	return &RAMDisk{
		pages: make(map[PageID][]byte, initialSize),
	}
}

func (r *RAMDisk) AllocatePage() PageID {
	id := r.nextPageID
	r.nextPageID++

	return id
}

func (r *RAMDisk) ReadPageData(id PageID, buf []byte) error {
	if r.closed {
		return ErrClosed
	}
	if err := checkAccess(id, buf); err != nil {
		return fmt.Errorf("read page %s: %w", id, err)
	}

	if id.Uint64() >= r.numPages {
		return fmt.Errorf("read page %s: %w", id, io.ErrUnexpectedEOF)
	}

	page, ok := r.pages[id]
	if !ok {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
	copy(buf, page)

	return nil
}

func (r *RAMDisk) WritePageData(id PageID, data []byte) error {
	if r.closed {
		return ErrClosed
	}
	if err := checkAccess(id, data); err != nil {
		return fmt.Errorf("write page %s: %w", id, err)
	}

	r.pages[id] = slices.Clone(data)
	if id.Uint64() >= r.numPages {
		r.numPages = id.Uint64() + 1
	}

	return nil
}

// Sync is a no-op.
func (r *RAMDisk) Sync() error {
	if r.closed {
		return ErrClosed
	}
	return nil
}

func (r *RAMDisk) Close() error {
	r.closed = true
	return nil
}

// PageIDs returns the IDs of all written pages, in ascending order.
func (r *RAMDisk) PageIDs() []PageID {
	ids := make([]PageID, 0, len(r.pages))
	for id := range r.pages {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
