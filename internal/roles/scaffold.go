package roles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ScaffoldResult reports what ScaffoldDefaults did.
type ScaffoldResult struct {
	Created int
	Skipped int
	Dir     string
}

// ScaffoldDefaults writes the default role documents plus a README into
// <workspaceRoot>/roles. Existing files are never overwritten, so the
// operation is safe to invoke repeatedly.
func ScaffoldDefaults(workspaceRoot string) (ScaffoldResult, error) {
	if workspaceRoot == "" {
		return ScaffoldResult{}, fmt.Errorf("no workspace root")
	}

	dir := filepath.Join(workspaceRoot, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ScaffoldResult{}, fmt.Errorf("create roles dir: %w", err)
	}

	res := ScaffoldResult{Dir: dir}

	names := make([]string, 0, len(defaultRoles))
	for name := range defaultRoles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		created, err := writeIfAbsent(filepath.Join(dir, name+Extension), defaultRoles[name])
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Skipped++
		}
	}

	created, err := writeIfAbsent(filepath.Join(dir, "README.md"), readmeContent)
	if err != nil {
		return res, err
	}
	if created {
		res.Created++
	} else {
		res.Skipped++
	}

	return res, nil
}

func writeIfAbsent(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
