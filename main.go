package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Usage = help
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		abort(err.Error())
	}
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) != 1 {
		help()
		os.Exit(2)
	}

	path := args[0]
	cli, err := NewCLI(path)
	if err != nil {
		abort(fmt.Sprintf("Error opening heap file: %v\nMake sure the parent directory exists.", err))
	}
	slog.Info("heap file opened", "path", path, "pages", cli.disk.NumPages())

	r := bufio.NewReader(os.Stdin)
	for {
		cmd, ok := prompt(r, promptStyle.Render(fmt.Sprintf("HeapDisk @ %s>", path)))
		if !ok {
			cmd = "exit"
		}
		response, cont := cli.Handle(cmd)
		fmt.Println(response)
		if !cont {
			return
		}
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}

// prompt reads one command. It returns false once stdin is exhausted.
func prompt(r *bufio.Reader, label string) (string, bool) {
	for {
		fmt.Fprint(os.Stderr, label+" ")
		out, err := r.ReadString('\n')
		out = strings.TrimSpace(out)
		if out != "" {
			return out, true
		}
		if err != nil {
			return "", false
		}
	}
}

func help() {
	fmt.Fprintln(os.Stderr, "Usage: ./HeapDisk [-log-level level] <heap_file>")
	flag.PrintDefaults()
}

func abort(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+msg))
	os.Exit(1)
}
