package roles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScaffoldDefaultsIdempotent(t *testing.T) {
	root := t.TempDir()

	first, err := ScaffoldDefaults(root)
	if err != nil {
		t.Fatalf("first scaffold: %v", err)
	}
	if first.Created != len(defaultRoles)+1 { // roles + README
		t.Errorf("first run created %d files, want %d", first.Created, len(defaultRoles)+1)
	}
	if first.Skipped != 0 {
		t.Errorf("first run skipped %d files, want 0", first.Skipped)
	}

	second, err := ScaffoldDefaults(root)
	if err != nil {
		t.Fatalf("second scaffold: %v", err)
	}
	if second.Created != 0 {
		t.Errorf("second run created %d files, want 0", second.Created)
	}
	if second.Skipped != len(defaultRoles)+1 {
		t.Errorf("second run skipped %d files, want %d", second.Skipped, len(defaultRoles)+1)
	}
}

func TestScaffoldDefaultsKeepsUserEdits(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	custom := "# Mine\ncustomized"
	path := filepath.Join(dir, "frontend-developer"+Extension)
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ScaffoldDefaults(root); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Error("scaffold overwrote an existing role file")
	}
}

func TestScaffoldDefaultsNoWorkspace(t *testing.T) {
	if _, err := ScaffoldDefaults(""); err == nil {
		t.Error("expected error without a workspace root")
	}
}

func TestScaffoldedRolesAreLoadable(t *testing.T) {
	root := t.TempDir()
	if _, err := ScaffoldDefaults(root); err != nil {
		t.Fatal(err)
	}

	s := Load(root)
	if s.Len() != len(defaultRoles) {
		t.Fatalf("loaded %d roles, want %d", s.Len(), len(defaultRoles))
	}
	if _, ok := s.Resolve("frontend"); !ok {
		t.Error("scaffolded frontend-developer not resolvable")
	}
}
