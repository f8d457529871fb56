package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/garapadev/garapagent/internal/paths"
)

// MaxEntries bounds the stored entries per workspace. An exchange is two
// entries (one user, one assistant), so this keeps the last 50 exchanges.
const MaxEntries = 100

// Entry is one side of a past exchange.
type Entry struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is a bounded, best-effort persistent conversation log. Failures to
// persist are swallowed; history is a convenience, not a guarantee.
type Log struct {
	path    string
	mu      sync.Mutex
	entries []Entry
}

// Open loads the history log for a workspace from
// ~/.garapagent/history/<workspace-hash>.json, creating directories as needed.
func Open(workspaceRoot string) (*Log, error) {
	dir := paths.GetHistoryDir()
	if err := paths.EnsureDir(dir); err != nil {
		return nil, err
	}

	l := &Log{path: filepath.Join(dir, paths.GetWorkspaceHash(workspaceRoot)+".json")}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &l.entries); err != nil {
		// Corrupt history is discarded rather than blocking the session.
		l.entries = nil
	}
	return l, nil
}

// Append records an exchange entry and persists the log.
func (l *Log) Append(role, content string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{Role: role, Content: content, Timestamp: time.Now()})
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}
	l.save()
}

// Entries returns a copy of the stored exchanges, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) save() {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(l.path, data, 0644)
}
