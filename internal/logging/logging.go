package logging

import (
	"io"
	"log"
	"os"
)

const prefix = "ping-monitor "

func New(w io.Writer) *log.Logger {
	return log.New(w, prefix, log.LstdFlags)
}

// Open returns a logger on stderr, or one appending to path when it is set.
// The returned closer must be closed once logging is done.
func Open(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return New(os.Stderr), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}
