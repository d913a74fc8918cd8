package disk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

/*
DiskManager stores pages in a single heap file.

The heap file is a plain sequence of PageSize pages without any header. The
next page ID is derived from the file length when the file is opened, so a
trailing partial page is ignored and left as it is.

Reads and writes are positional and never move a shared file cursor. The
allocation counter is not guarded: AllocatePage must not be called
concurrently.
*/
type DiskManager struct {
	heapFile   *os.File
	path       string
	nextPageID PageID
	// dirPending is set while the directory entry of a newly created heap
	// file has not been synced yet.
	dirPending bool
	closed     bool
}

// Open opens the heap file at path, creating it if it does not exist.
func Open(path string) (*DiskManager, error) {
	_, err := os.Stat(path)
	created := errors.Is(err, os.ErrNotExist)

	heapFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("open heap file %s: %w", path, err)
	}

	d, err := NewDiskManager(heapFile)
	if err != nil {
		heapFile.Close()
		return nil, err
	}
	d.dirPending = created

	return d, nil
}

// NewDiskManager creates a DiskManager over an already opened heap file. The
// file must be open for reading and writing. The DiskManager takes ownership
// of it.
func NewDiskManager(heapFile *os.File) (*DiskManager, error) {
	info, err := heapFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat heap file %s: %w", heapFile.Name(), err)
	}

	return &DiskManager{
		heapFile:   heapFile,
		path:       heapFile.Name(),
		nextPageID: PageID(info.Size() / PageSize),
	}, nil
}

// Path returns the location of the heap file.
func (d *DiskManager) Path() string {
	return d.path
}

// NumPages returns the number of pages allocated so far, which is also the
// next ID AllocatePage will return.
func (d *DiskManager) NumPages() uint64 {
	return d.nextPageID.Uint64()
}

func (d *DiskManager) AllocatePage() PageID {
	id := d.nextPageID
	d.nextPageID++

	return id
}

/*
ReadPageData reads page id into buf.

If the heap file does not contain the whole page, an error matching
io.ErrUnexpectedEOF is returned.
*/
func (d *DiskManager) ReadPageData(id PageID, buf []byte) error {
	if d.closed {
		return ErrClosed
	}
	if err := checkAccess(id, buf); err != nil {
		return fmt.Errorf("read page %s: %w", id, err)
	}

	n, err := d.heapFile.ReadAt(buf, id.offset())
	if n == len(buf) {
		// ReadAt may report io.EOF together with a full read at the end of the file.
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("read page %s from %s: %w", id, d.path, err)
}

/*
WritePageData writes data as page id.

Writing past the end of the heap file extends it; the operating system fills
any gap with zeros.
*/
func (d *DiskManager) WritePageData(id PageID, data []byte) error {
	if d.closed {
		return ErrClosed
	}
	if err := checkAccess(id, data); err != nil {
		return fmt.Errorf("write page %s: %w", id, err)
	}

	if _, err := d.heapFile.WriteAt(data, id.offset()); err != nil {
		return fmt.Errorf("write page %s to %s: %w", id, d.path, err)
	}

	return nil
}

/*
Sync flushes the heap file to stable storage.

If the heap file was created by Open, the first successful Sync also syncs the
parent directory so that the file itself survives a crash.
*/
func (d *DiskManager) Sync() error {
	if d.closed {
		return ErrClosed
	}
	if err := d.heapFile.Sync(); err != nil {
		return fmt.Errorf("sync heap file %s: %w", d.path, err)
	}

	if d.dirPending {
		if err := syncDir(filepath.Dir(d.path)); err != nil {
			return fmt.Errorf("sync directory of heap file %s: %w", d.path, err)
		}
		d.dirPending = false
	}

	return nil
}

// Close releases the heap file. It does not sync. Closing twice is a no-op.
func (d *DiskManager) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if err := d.heapFile.Close(); err != nil {
		return fmt.Errorf("close heap file %s: %w", d.path, err)
	}

	return nil
}

func syncDir(dir string) error {
	// Directories cannot be opened for syncing on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}

	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
