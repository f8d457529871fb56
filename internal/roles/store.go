package roles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of role documents inside the roles directory.
const Extension = ".mdc"

// DirName is the roles directory, relative to the workspace root.
const DirName = "roles"

// Role is a named behavior profile loaded from the workspace.
type Role struct {
	Name    string // file stem, case-preserving
	Content string
	Path    string
}

// Store holds the roles discovered in one workspace.
type Store struct {
	dir   string
	roles []Role
}

// Load scans <workspaceRoot>/roles for *.mdc documents. A missing or
// unreadable directory yields an empty store; roles are a soft dependency.
func Load(workspaceRoot string) *Store {
	dir := filepath.Join(workspaceRoot, DirName)
	s := &Store{dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return s
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		s.roles = append(s.roles, Role{
			Name:    strings.TrimSuffix(entry.Name(), Extension),
			Content: string(content),
			Path:    filepath.Join(dir, entry.Name()),
		})
	}

	// Directory order is filesystem-dependent; sort so that the
	// first-match rule in Resolve is deterministic.
	sort.Slice(s.roles, func(i, j int) bool {
		return s.roles[i].Name < s.roles[j].Name
	})

	return s
}

// All returns the loaded roles in store order.
func (s *Store) All() []Role {
	return s.roles
}

// Len returns the number of loaded roles.
func (s *Store) Len() int {
	return len(s.roles)
}

// Resolve matches a user-typed name against the store. A candidate matches
// when its lower-cased name contains the query or the query contains the
// name, so "front" finds "frontend-developer" and "frontend-developer-v2"
// finds a stored "frontend-developer". The first hit in store order wins.
func (s *Store) Resolve(query string) (Role, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Role{}, false
	}
	for _, r := range s.roles {
		name := strings.ToLower(r.Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return r, true
		}
	}
	return Role{}, false
}

// Title extracts the leading "# Title" line of a role document, used in
// listings. Documents without one get a generic label.
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return "Custom role"
}
