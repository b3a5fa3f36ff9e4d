// Package runlog appends one JSON line per generated (or failed) level to
// levels.jsonl so batch runs can be audited afterwards.
package runlog

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FileName is the log file written inside the run log directory.
const FileName = "levels.jsonl"

// Record describes the outcome of one batch item.
type Record struct {
	Timestamp     time.Time `json:"timestamp"`
	ID            string    `json:"id"`
	Seed          int64     `json:"seed"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Attempts      int       `json:"attempts"`
	Passes        int       `json:"passes,omitempty"`
	FloorFraction float64   `json:"floor_fraction,omitempty"`
	PathLength    int       `json:"path_length,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// Append writes rec as a single JSON line to dir/levels.jsonl.
// Errors are logged but never returned; a disk problem must not fail a batch.
func Append(dir string, rec Record, logger *slog.Logger) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("run log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("run log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Warn("run log: cannot marshal JSON", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		logger.Warn("run log: write failed", "error", err)
	}
}

// DefaultDir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/ctf-cavegen,
// defaulting to ~/.local/share/ctf-cavegen.
func DefaultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ctf-cavegen"), nil
}
