package disk

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

// PageIDSize is the number of bytes a PageID occupies when embedded in page
// contents.
const PageIDSize = 8

// PageID names a page by its position within the heap file.
type PageID uint64

// InvalidPageID is the sentinel meaning "no page". It is never allocated.
const InvalidPageID = PageID(math.MaxUint64)

// DefaultPageID returns the default page ID, which is the sentinel.
//
// The zero value of PageID is page 0, a real page, so code that needs a "not
// yet assigned" ID must start from DefaultPageID rather than from PageID{}.
func DefaultPageID() PageID {
	return InvalidPageID
}

// PageIDFromOptional maps a missing ID to InvalidPageID.
func PageIDFromOptional(id *PageID) PageID {
	if id == nil {
		return InvalidPageID
	}
	return *id
}

// PageIDFromBytes decodes a page ID previously stored with Bytes or PutBytes.
//
// b must be exactly PageIDSize bytes long, otherwise an error wrapping
// ErrInvalidPageIDLength is returned.
func PageIDFromBytes(b []byte) (PageID, error) {
	if len(b) != PageIDSize {
		return InvalidPageID, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPageIDLength, len(b), PageIDSize)
	}
	return PageID(binary.LittleEndian.Uint64(b)), nil
}

// Valid returns the ID and true, or InvalidPageID and false for the sentinel.
func (id PageID) Valid() (PageID, bool) {
	if id == InvalidPageID {
		return InvalidPageID, false
	}
	return id, true
}

// Uint64 returns the raw page ordinal.
func (id PageID) Uint64() uint64 {
	return uint64(id)
}

// offset is the byte position of the page within the heap file.
func (id PageID) offset() int64 {
	return int64(id.Uint64() * PageSize)
}

// PutBytes encodes the ID into the first PageIDSize bytes of dst in
// little-endian order. It panics if dst is too short, like binary.PutUint64.
func (id PageID) PutBytes(dst []byte) {
	binary.LittleEndian.PutUint64(dst, uint64(id))
}

// Bytes returns the little-endian encoding of the ID.
func (id PageID) Bytes() []byte {
	b := make([]byte, PageIDSize)
	id.PutBytes(b)
	return b
}

func (id PageID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

func (id *PageID) UnmarshalBinary(data []byte) error {
	decoded, err := PageIDFromBytes(data)
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

func (id PageID) String() string {
	if id == InvalidPageID {
		return "invalid"
	}
	return strconv.FormatUint(uint64(id), 10)
}
