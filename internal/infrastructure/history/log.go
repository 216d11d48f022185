package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/stylefinder/backend/internal/domain"
)

// FileLog is an append-only JSONL search-history log, one record per line,
// keyed by user and timestamp. Writes are serialized; readers are external
// (the core never reads history back).
type FileLog struct {
	path  string
	mutex sync.Mutex
}

// NewFileLog creates a history log writing to the given path
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Append writes one history record. The file is opened per append so the
// log survives rotation out from under a long-lived process.
func (l *FileLog) Append(ctx context.Context, record domain.HistoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode history record: %w", err)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}
	return nil
}
