package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T, path string) *CLI {
	cli, err := NewCLI(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })

	return cli
}

func TestCLI_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap_file")
	cli := newTestCLI(t, path)

	out, cont := cli.Handle("alloc")
	assert.True(t, cont)
	assert.Contains(t, out, "Allocated page 0")

	out, _ = cli.Handle("write 0 fill:ab")
	assert.Contains(t, out, "Successfully wrote page 0")

	out, _ = cli.Handle("sync")
	assert.Contains(t, out, "synced")

	out, cont = cli.Handle("exit")
	assert.False(t, cont)
	assert.Contains(t, out, "successfully closed")

	cli = newTestCLI(t, path)

	out, _ = cli.Handle("alloc")
	assert.Contains(t, out, "Allocated page 1")

	out, _ = cli.Handle("read 0 4")
	assert.Equal(t, "0 = abababab", out)
}

func TestCLI_WriteHex(t *testing.T) {
	cli := newTestCLI(t, filepath.Join(t.TempDir(), "heap_file"))

	cli.Handle("write 2 0x4242")
	out, _ := cli.Handle("read 2 3")
	assert.Equal(t, "2 = 424200", out)

	out, _ = cli.Handle("pages")
	assert.Equal(t, "0 pages allocated", out)
}

func TestCLI_Errors(t *testing.T) {
	cli := newTestCLI(t, filepath.Join(t.TempDir(), "heap_file"))

	tests := []struct {
		cmd      string
		expected string
	}{
		{"read 0", "Error reading page"},
		{"read x", "Invalid page"},
		{"read 0 x", "Invalid length"},
		{"write 0 4242", "Must be hex-encoded"},
		{"write 0 0xzz", "Invalid hex-encoded string"},
		{"write 0 fill:zz", "Invalid fill byte"},
		{"write 18446744073709551615 fill:00", "invalid page id"},
	}

	for _, test := range tests {
		out, cont := cli.Handle(test.cmd)
		assert.True(t, cont, test.cmd)
		assert.Contains(t, out, test.expected, test.cmd)
	}
}

func TestCLI_Help(t *testing.T) {
	cli := newTestCLI(t, filepath.Join(t.TempDir(), "heap_file"))

	for _, cmd := range []string{"", "unknown", "write 0", "read"} {
		out, cont := cli.Handle(cmd)
		assert.True(t, cont)
		assert.True(t, strings.HasPrefix(out, "Valid commands:"), cmd)
	}
}
