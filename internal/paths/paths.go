package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// GetGlobalDir returns the root GarapaAgent directory in the user's home (~/.garapagent)
func GetGlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".garapagent")
}

// GetWorkspaceHash returns a short SHA256 hash of the absolute workspace path
func GetWorkspaceHash(workspaceRoot string) string {
	abs, err := filepath.Abs(workspaceRoot)
	if err != nil {
		abs = workspaceRoot
	}
	hash := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(hash[:8])
}

// GetHistoryDir returns the global conversation-history directory
func GetHistoryDir() string {
	return filepath.Join(GetGlobalDir(), "history")
}

// EnsureDir creates the directory and all parents if they don't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
