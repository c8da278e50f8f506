package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// LogFile is the name of the debug log inside the log directory.
const LogFile = "sand.log"

// SetupLogging points the standard logger at dir/sand.log when debug is set
// and discards log output otherwise. The caller closes the returned file,
// which is nil when logging is disabled.
func SetupLogging(debug bool, dir string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging started")
	return f, nil
}
