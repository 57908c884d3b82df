// Package hooks installs and removes a git hook block that lints the
// project's script annotations.
package hooks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/platform"
)

// Supported lists the hooks a block may be installed into.
var Supported = []string{"pre-commit", "pre-push", "post-merge", "post-checkout"}

// ErrNotRepository is returned when dir is not inside a git worktree.
var ErrNotRepository = errors.New("not inside a git repository")

const shebang = "#!/bin/sh"

func beginMarker() string { return "# >>> " + branding.CLIName() + " >>>" }
func endMarker() string   { return "# <<< " + branding.CLIName() + " <<<" }

// Result describes what Install or Uninstall did.
type Result struct {
	Path    string
	Changed bool
}

// Install adds the lint block to hook in the repository containing dir. An
// existing block is left untouched.
func Install(dir, hook string) (*Result, error) {
	path, rel, err := resolve(dir, hook)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading hook %s: %w", path, err)
	}
	if strings.Contains(string(content), beginMarker()) {
		return &Result{Path: path}, nil
	}

	var b strings.Builder
	if len(content) == 0 {
		b.WriteString(shebang + "\n")
	} else {
		b.Write(content)
		if !strings.HasSuffix(string(content), "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString(block(rel))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating hooks directory: %w", err)
	}
	if err := platform.WriteExecutable(path, []byte(b.String())); err != nil {
		return nil, fmt.Errorf("writing hook: %w", err)
	}
	return &Result{Path: path, Changed: true}, nil
}

// Uninstall removes the lint block from hook. A hook left with nothing but
// the shebang is deleted.
func Uninstall(dir, hook string) (*Result, error) {
	path, _, err := resolve(dir, hook)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Result{Path: path}, nil
		}
		return nil, fmt.Errorf("reading hook %s: %w", path, err)
	}

	var kept []string
	inside, found := false, false
	for _, line := range strings.Split(string(content), "\n") {
		switch {
		case strings.TrimSpace(line) == beginMarker():
			inside, found = true, true
		case strings.TrimSpace(line) == endMarker():
			inside = false
		case !inside:
			kept = append(kept, line)
		}
	}
	if !found {
		return &Result{Path: path}, nil
	}

	rest := strings.Join(kept, "\n")
	if strings.TrimSpace(rest) == "" || strings.TrimSpace(rest) == shebang {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("removing hook %s: %w", path, err)
		}
		return &Result{Path: path, Changed: true}, nil
	}
	if err := platform.WriteExecutable(path, []byte(rest)); err != nil {
		return nil, fmt.Errorf("writing hook: %w", err)
	}
	return &Result{Path: path, Changed: true}, nil
}

// block returns the marked hook block. rel is the project directory relative
// to the worktree root.
func block(rel string) string {
	cmd := branding.CLIName() + " lint"
	if rel != "." && rel != "" {
		cmd = fmt.Sprintf("(cd %q && %s)", filepath.ToSlash(rel), cmd)
	}
	return beginMarker() + "\n" + cmd + " || exit $?\n" + endMarker() + "\n"
}

// resolve returns the hook file path and dir relative to the worktree root.
func resolve(dir, hook string) (path, rel string, err error) {
	if !supported(hook) {
		return "", "", fmt.Errorf("unsupported hook %q (supported: %s)", hook, strings.Join(Supported, ", "))
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", "", fmt.Errorf("%w: %s", ErrNotRepository, abs)
		}
		return "", "", fmt.Errorf("opening repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", "", fmt.Errorf("opening worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	hooksDir := filepath.Join(root, ".git", "hooks")
	if cfg, err := repo.Config(); err == nil && cfg.Raw != nil {
		if custom := cfg.Raw.Section("core").Option("hooksPath"); custom != "" {
			hooksDir = custom
			if !filepath.IsAbs(custom) {
				hooksDir = filepath.Join(root, custom)
			}
		}
	}

	rel, err = filepath.Rel(evalSymlinks(root), evalSymlinks(abs))
	if err != nil {
		rel = "."
	}
	return filepath.Join(hooksDir, hook), rel, nil
}

func evalSymlinks(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return p
}

func supported(hook string) bool {
	for _, h := range Supported {
		if h == hook {
			return true
		}
	}
	return false
}
