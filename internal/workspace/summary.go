package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Info describes the host workspace for prompt composition. ActiveFile,
// Language and Selection are supplied by the connected editor when present.
type Info struct {
	Root       string
	Name       string
	ActiveFile string
	Language   string
	Selection  string
}

// NewInfo builds an Info for a local workspace root.
func NewInfo(root string) Info {
	return Info{Root: root, Name: filepath.Base(root)}
}

var sourceExtensions = map[string]bool{
	".ts": true, ".js": true, ".tsx": true, ".jsx": true,
	".json": true, ".go": true, ".py": true, ".md": true,
}

const (
	maxRecentFiles = 5
	maxTreeDepth   = 3
)

// Summary renders the workspace as a single descriptive block for the
// composer. It is input data, never interpreted.
func (i Info) Summary() string {
	if i.Root == "" {
		return "No workspace open."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Workspace: %s\n", i.Name)

	if i.ActiveFile != "" {
		fmt.Fprintf(&sb, "Active file: %s\n", i.ActiveFile)
		if i.Language != "" {
			fmt.Fprintf(&sb, "Language: %s\n", i.Language)
		}
		if i.Selection != "" {
			fmt.Fprintf(&sb, "Selected text:\n%s\n", i.Selection)
		}
	}

	if recent := i.recentFiles(); len(recent) > 0 {
		fmt.Fprintf(&sb, "Recent files: %s\n", strings.Join(recent, ", "))
	}

	sb.WriteString("File structure:\n")
	sb.WriteString(i.fileTree())

	return sb.String()
}

// recentFiles returns a bounded sample of source files in the workspace.
func (i Info) recentFiles() []string {
	var found []string
	filepath.Walk(i.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") || name == "node_modules" {
			if info.IsDir() && path != i.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && sourceExtensions[filepath.Ext(name)] {
			found = append(found, name)
			if len(found) >= maxRecentFiles {
				return filepath.SkipAll
			}
		}
		return nil
	})
	return found
}

// fileTree renders the workspace tree up to maxTreeDepth, skipping hidden
// entries. Depth is limited to avoid a massive context block.
func (i Info) fileTree() string {
	var sb strings.Builder

	err := filepath.Walk(i.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		relPath, err := filepath.Rel(i.Root, path)
		if err != nil || relPath == "." {
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules" {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := strings.Count(relPath, string(os.PathSeparator))
		if depth >= maxTreeDepth {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		indent := strings.Repeat("  ", depth)
		if info.IsDir() {
			fmt.Fprintf(&sb, "%s%s/\n", indent, info.Name())
		} else {
			fmt.Fprintf(&sb, "%s%s\n", indent, info.Name())
		}
		return nil
	})
	if err != nil {
		return fmt.Sprintf("Error generating file tree: %v\n", err)
	}

	return sb.String()
}
