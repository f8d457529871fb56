package host

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
)

// outputBuffer is a thread-safe byte buffer with a size cap.
type outputBuffer struct {
	mu     sync.RWMutex
	buffer []byte
}

const maxBufferedOutput = 1024 * 1024

func (b *outputBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffer = append(b.buffer, p...)
	if len(b.buffer) > maxBufferedOutput {
		b.buffer = b.buffer[len(b.buffer)-maxBufferedOutput:]
	}
	return len(p), nil
}

func (b *outputBuffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.buffer)
}

// Terminal is an interactive shell on a pseudo-terminal. Commands are
// submitted as keystrokes; output accumulates in a bounded buffer for
// later inspection but is never fed back into the action protocol.
type Terminal struct {
	ID     string
	cmd    *exec.Cmd
	ptmx   *os.File
	output *outputBuffer

	mu      sync.Mutex
	running bool
}

// StartTerminal spawns the user's shell in a PTY rooted at dir.
func StartTerminal(dir string) (*Terminal, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	c := exec.Command(shell)
	c.Dir = dir

	ptmx, err := pty.Start(c)
	if err != nil {
		return nil, fmt.Errorf("failed to start pty: %w", err)
	}

	t := &Terminal{
		ID:      uuid.New().String(),
		cmd:     c,
		ptmx:    ptmx,
		output:  &outputBuffer{},
		running: true,
	}

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				t.output.Write(buf[:n])
			}
			if err != nil {
				t.mu.Lock()
				t.running = false
				t.mu.Unlock()
				return
			}
		}
	}()

	// Give the shell a moment to print its prompt before first input.
	time.Sleep(100 * time.Millisecond)

	return t, nil
}

// Submit writes a command line to the shell.
func (t *Terminal) Submit(command string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return fmt.Errorf("terminal %s is not running", t.ID)
	}
	_, err := t.ptmx.Write([]byte(command + "\n"))
	return err
}

// Output returns the buffered terminal output so far.
func (t *Terminal) Output() string {
	return t.output.String()
}

// Close terminates the shell and releases the PTY.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return nil
	}
	t.running = false
	if t.cmd.Process != nil {
		_ = t.cmd.Process.Kill()
	}
	return t.ptmx.Close()
}
