package host

import (
	"fmt"
	"os"
	"path/filepath"
)

// NativeHost implements Host with standard OS calls and a PTY-backed
// terminal. Used when garapagent runs against a local workspace.
type NativeHost struct {
	root     string
	terminal *Terminal
}

func NewNativeHost(root string) *NativeHost {
	return &NativeHost{root: root}
}

func (h *NativeHost) Root() string {
	return h.root
}

func (h *NativeHost) ReadFile(path string) ([]byte, error) {
	abs, err := h.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (h *NativeHost) WriteFile(path string, data []byte) error {
	abs, err := h.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	return os.WriteFile(abs, data, 0644)
}

func (h *NativeHost) FileExists(path string) bool {
	abs, err := h.resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// RunInTerminal lazily starts the interactive terminal and submits the
// command line to it.
func (h *NativeHost) RunInTerminal(command string) error {
	if h.terminal == nil {
		term, err := StartTerminal(h.root)
		if err != nil {
			return fmt.Errorf("start terminal: %w", err)
		}
		h.terminal = term
	}
	return h.terminal.Submit(command)
}

// SearchProject runs a recursive grep in the terminal surface. A native
// host has no search UI to focus, so the terminal stands in for it.
func (h *NativeHost) SearchProject(query string) error {
	return h.RunInTerminal(fmt.Sprintf("grep -rn %q .", query))
}

// resolve maps an action path to an absolute one: absolute paths are used
// verbatim, relative paths anchor at the workspace root.
func (h *NativeHost) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if h.root == "" {
		return "", fmt.Errorf("no workspace root to resolve %q against", path)
	}
	return filepath.Join(h.root, path), nil
}
