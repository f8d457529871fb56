package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ProjectInfo is the result of scanning a workspace for its stack.
type ProjectInfo struct {
	Type           string
	Framework      string
	PackageManager string
}

// DetectOS names the host platform for the setup report.
func DetectOS() string {
	switch runtime.GOOS {
	case "windows":
		return "🪟 Windows"
	case "darwin":
		return "🍎 macOS"
	case "linux":
		return "🐧 Linux"
	default:
		return "❓ " + runtime.GOOS
	}
}

// AnalyzeProject inspects the workspace root for well-known manifest files
// and infers project type, framework and package manager.
func AnalyzeProject(root string) ProjectInfo {
	unknown := ProjectInfo{Type: "Unknown", Framework: "None", PackageManager: "None"}
	if root == "" {
		return unknown
	}

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		return analyzeNodeProject(root, data)
	}

	if fileExists(filepath.Join(root, "requirements.txt")) || fileExists(filepath.Join(root, "pyproject.toml")) {
		return ProjectInfo{Type: "Backend", Framework: "Python", PackageManager: "pip"}
	}
	if fileExists(filepath.Join(root, "Cargo.toml")) {
		return ProjectInfo{Type: "Backend", Framework: "Rust", PackageManager: "cargo"}
	}
	if fileExists(filepath.Join(root, "go.mod")) {
		return ProjectInfo{Type: "Backend", Framework: "Go", PackageManager: "go mod"}
	}

	return unknown
}

func analyzeNodeProject(root string, packageJSON []byte) ProjectInfo {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	_ = json.Unmarshal(packageJSON, &manifest)

	has := func(name string) bool {
		_, ok := manifest.Dependencies[name]
		if !ok {
			_, ok = manifest.DevDependencies[name]
		}
		return ok
	}

	framework := "Node.js"
	switch {
	case has("next"):
		framework = "Next.js"
	case has("react"):
		framework = "React"
	case has("vue"):
		framework = "Vue.js"
	case has("angular"):
		framework = "Angular"
	case has("nestjs"):
		framework = "NestJS"
	case has("express"):
		framework = "Express.js"
	}

	projectType := "Backend"
	if has("react") || has("vue") || has("angular") {
		projectType = "Frontend"
		if has("express") || has("nestjs") {
			projectType = "Fullstack"
		}
	}

	packageManager := "npm"
	if fileExists(filepath.Join(root, "yarn.lock")) {
		packageManager = "yarn"
	} else if fileExists(filepath.Join(root, "pnpm-lock.yaml")) {
		packageManager = "pnpm"
	}

	return ProjectInfo{Type: projectType, Framework: framework, PackageManager: packageManager}
}

// Dependency is one tool probed by CheckDependencies.
type Dependency struct {
	Name      string
	Installed bool
	Version   string
}

var probedTools = []struct {
	name    string
	command string
	args    []string
}{
	{"Node.js", "node", []string{"--version"}},
	{"npm", "npm", []string{"--version"}},
	{"Git", "git", []string{"--version"}},
	{"Go", "go", []string{"version"}},
	{"Docker", "docker", []string{"--version"}},
}

// CheckDependencies probes common development tools on PATH and captures
// their version strings.
func CheckDependencies() []Dependency {
	results := make([]Dependency, 0, len(probedTools))
	for _, tool := range probedTools {
		out, err := exec.Command(tool.command, tool.args...).Output()
		if err != nil {
			results = append(results, Dependency{Name: tool.name})
			continue
		}
		results = append(results, Dependency{
			Name:      tool.name,
			Installed: true,
			Version:   strings.TrimSpace(string(out)),
		})
	}
	return results
}

// WriteDevelopRules writes roles/develop.mdc with environment-specific
// guidance. An existing file is left alone so user edits survive.
func WriteDevelopRules(root, osName string, info ProjectInfo) (bool, error) {
	if root == "" {
		return false, fmt.Errorf("no workspace root")
	}
	dir := filepath.Join(root, "roles")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}

	path := filepath.Join(dir, "develop.mdc")
	if fileExists(path) {
		return false, nil
	}

	content := fmt.Sprintf(`# Development Environment Assistant

You help with day-to-day development in this workspace.

## Environment

- Operating system: %s
- Project type: %s
- Framework: %s
- Package manager: %s

## Guidelines

- Prefer %s for dependency management in this project.
- Suggest commands appropriate for the detected operating system.
- Keep changes minimal and consistent with the existing project layout.
`, osName, info.Type, info.Framework, info.PackageManager, info.PackageManager)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// SetupReport renders the full /setup markdown report.
func SetupReport(osName string, info ProjectInfo, deps []Dependency, wroteRules bool) string {
	var sb strings.Builder

	sb.WriteString("# 🚀 GarapaAgent - Development Environment Setup\n\n")
	fmt.Fprintf(&sb, "**Operating system:** %s\n\n", osName)

	sb.WriteString("## 📁 Project Analysis\n\n")
	fmt.Fprintf(&sb, "**Project type:** %s\n", info.Type)
	fmt.Fprintf(&sb, "**Framework:** %s\n", info.Framework)
	fmt.Fprintf(&sb, "**Package manager:** %s\n\n", info.PackageManager)

	sb.WriteString("## 📦 Dependency Status\n\n")
	for _, dep := range deps {
		if dep.Installed {
			fmt.Fprintf(&sb, "✅ **%s**: %s\n", dep.Name, dep.Version)
		} else {
			fmt.Fprintf(&sb, "❌ **%s**: not installed\n", dep.Name)
		}
	}

	if wroteRules {
		sb.WriteString("\n✅ **`roles/develop.mdc` created with environment-specific rules**\n")
	} else {
		sb.WriteString("\nℹ️ **`roles/develop.mdc` already exists, left unchanged**\n")
	}

	sb.WriteString("\n💡 **Next steps:**\n")
	sb.WriteString("- Use `/role develop` to activate the development assistant\n")
	sb.WriteString("- Install any missing tools listed above\n")

	return sb.String()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
