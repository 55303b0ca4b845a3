package transcript

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger records user/bot exchanges for later analysis. Appends are
// best-effort: recording must never block or fail the reply path.
type Logger interface {
	Append(userID, userText, botText string)
}

// FileLogger appends exchanges to one plain-text file per user.
type FileLogger struct {
	dir string
}

// NewFileLogger creates the transcript directory if needed.
func NewFileLogger(dir string) (*FileLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}
	return &FileLogger{dir: dir}, nil
}

// Append records one exchange. Errors are logged and swallowed.
func (l *FileLogger) Append(userID, userText, botText string) {
	path := filepath.Join(l.dir, fileName(userID))

	ts := time.Now().Format("2006-01-02T15:04:05")
	record := fmt.Sprintf("[%s] USER: %s\n[%s] BOT : %s\n\n", ts, userText, ts, botText)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("[transcript] open %s: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(record); err != nil {
		log.Printf("[transcript] write %s: %v", path, err)
	}
}

// fileName maps a user identifier to a safe file name inside the transcript
// directory.
func fileName(userID string) string {
	var b strings.Builder
	for _, r := range userID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown.log"
	}
	return b.String() + ".log"
}
