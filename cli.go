package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tobiasfamos/HeapDisk/disk"
	"github.com/tobiasfamos/HeapDisk/util"
)

// defaultPreviewSize is how many leading bytes of a page `read` prints unless
// told otherwise.
const defaultPreviewSize = 32

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type CLI struct {
	disk *disk.DiskManager
}

func NewCLI(path string) (*CLI, error) {
	dm, err := disk.Open(path)
	if err != nil {
		return nil, err
	}

	return &CLI{disk: dm}, nil
}

func (cli *CLI) Close() error {
	return cli.disk.Close()
}

// Handle executes a single command. The second return value is false once the
// CLI should stop.
func (cli *CLI) Handle(cmd string) (string, bool) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return cli.Help(), true
	}

	switch parts[0] {
	case "alloc":
		id := cli.disk.AllocatePage()
		slog.Debug("page allocated", "page", id)
		return okStyle.Render(fmt.Sprintf("Allocated page %s", id)), true

	case "write":
		if len(parts) != 3 {
			return cli.Help(), true
		}

		id, err := parsePageID(parts[1])
		if err != nil {
			return errorStyle.Render(err.Error()), true
		}

		data, err := parsePageData(parts[2])
		if err != nil {
			return errorStyle.Render(err.Error()), true
		}

		if err := cli.disk.WritePageData(id, data); err != nil {
			slog.Error("write failed", "page", id, "err", err)
			return errorStyle.Render(fmt.Sprintf("Error writing page: %v", err)), true
		}

		return okStyle.Render(fmt.Sprintf("Successfully wrote page %s", id)), true

	case "read":
		if len(parts) != 2 && len(parts) != 3 {
			return cli.Help(), true
		}

		id, err := parsePageID(parts[1])
		if err != nil {
			return errorStyle.Render(err.Error()), true
		}

		preview := defaultPreviewSize
		if len(parts) == 3 {
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return errorStyle.Render(fmt.Sprintf("Invalid length %s: %v", parts[2], err)), true
			}
			preview = util.Clamp(n, 1, disk.PageSize)
		}

		buf := make([]byte, disk.PageSize)
		if err := cli.disk.ReadPageData(id, buf); err != nil {
			slog.Error("read failed", "page", id, "err", err)
			return errorStyle.Render(fmt.Sprintf("Error reading page: %v", err)), true
		}

		return fmt.Sprintf("%s = %x", id, buf[:preview]), true

	case "pages":
		return fmt.Sprintf("%d pages allocated", cli.disk.NumPages()), true

	case "sync":
		if err := cli.disk.Sync(); err != nil {
			return errorStyle.Render(fmt.Sprintf("Error syncing heap file: %v", err)), true
		}
		return okStyle.Render("Heap file synced"), true

	case "exit":
		if err := cli.Close(); err != nil {
			return errorStyle.Render(fmt.Sprintf("Error closing heap file: %v", err)), false
		}
		return "Heap file successfully closed", false

	default:
		return cli.Help(), true
	}
}

func (cli *CLI) Help() string {
	out := ""
	out += "Valid commands:\n"
	out += "\n"
	out += "\talloc\n"
	out += "\n"
	out += "\twrite <page> <value>\n"
	out += "\tExample: write 0 0x4242\n"
	out += "\tExample: write 0 fill:ab\n"
	out += "\n"
	out += "\tread <page>\n"
	out += "\tread <page> <bytes>\n"
	out += "\tExample: read 0\n"
	out += "\tExample: read 0 4096\n"
	out += "\n"
	out += "\tpages\n"
	out += "\tsync\n"
	out += "\texit\n"

	return out
}

func parsePageID(s string) (disk.PageID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return disk.InvalidPageID, fmt.Errorf("Invalid page %s: %v", s, err)
	}

	return disk.PageID(n), nil
}

// parsePageData turns a command value into a full page. "0x..." is copied to
// the start of an otherwise zeroed page; "fill:XX" repeats one byte.
func parsePageData(s string) ([]byte, error) {
	if fill, ok := strings.CutPrefix(s, "fill:"); ok {
		b, err := strconv.ParseUint(fill, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("Invalid fill byte %s: %v", fill, err)
		}
		return bytes.Repeat([]byte{byte(b)}, disk.PageSize), nil
	}

	hexString, ok := strings.CutPrefix(s, "0x")
	if !ok {
		return nil, fmt.Errorf("Invalid value: Must be hex-encoded with leading 0x prefix or fill:XX")
	}

	val, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, fmt.Errorf("Invalid hex-encoded string: %v", err)
	}
	if len(val) > disk.PageSize {
		return nil, fmt.Errorf("Value must be %d bytes at most, was %d", disk.PageSize, len(val))
	}

	data := make([]byte, disk.PageSize)
	copy(data, val)

	return data, nil
}
