package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// ValidatePath rejects paths with traversal sequences and absolute
// paths that point into reserved system directories. The check is purely
// lexical; it never touches the filesystem, so symlink escapes must be
// caught separately.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.Contains(path, "..") ||
		(filepath.IsAbs(path) && IsReservedDir(filepath.Clean(path))) {
		return fmt.Errorf("path traversal rejected")
	}
	return nil
}

// CheckFileAccess checks that path names an existing regular file and
// that the process can actually open it. With requireWrite it also
// confirms write access. The directory scanner uses this to filter out
// card files that would fail at parse time anyway.
func CheckFileAccess(path string, requireWrite bool) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("file does not exist: %s", path)
	case err != nil:
		return fmt.Errorf("cannot stat file: %w", err)
	case info.IsDir():
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file not readable: %w", err)
	}
	f.Close()

	if !requireWrite {
		return nil
	}
	f, err = os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("file is not writable: %w", err)
	}
	return f.Close()
}

// ExpandHome rewrites a leading "~/" to the user's home directory. Paths
// without the prefix, and paths where the home directory cannot be
// determined, come back unchanged.
func ExpandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// IsReservedDir reports whether path names, or sits inside, a system
// directory that must never hold card collections or repository clones.
// Symlinks are resolved first, so a link into /etc is caught even when the
// link itself lives somewhere harmless.
func IsReservedDir(path string) bool {
	abs, err := canonicalize(path)
	if err != nil {
		return true // unresolvable paths are treated as reserved
	}

	// The filesystem root is never acceptable.
	if abs == "/" || abs == `\` || abs == `C:\` {
		return true
	}

	return slices.ContainsFunc(reservedDirs(), func(dir string) bool {
		return underReserved(abs, dir)
	})
}

// underReserved reports whether abs matches reserved or lies beneath it.
// User temp directories are exempt even when the system temp root sits
// under a reserved prefix (macOS puts them below /var).
func underReserved(abs, reserved string) bool {
	canonical, err := canonicalize(reserved)
	if err != nil {
		return false
	}

	if strings.EqualFold(abs, canonical) {
		return true
	}

	prefix := strings.ToLower(canonical) + string(os.PathSeparator)
	if strings.HasPrefix(strings.ToLower(abs), prefix) {
		return !isUserTempDir(abs)
	}
	return false
}

// reservedByOS maps runtime.GOOS to directories that never accept card
// collections or clones.
var reservedByOS = map[string][]string{
	"windows": {
		`C:\Windows`,
		`C:\Program Files`,
		`C:\Program Files (x86)`,
		`C:\System32`,
		`C:\ProgramData\Microsoft`,
	},
	"darwin": {
		"/System",
		"/usr/bin",
		"/usr/sbin",
		"/bin",
		"/sbin",
		"/etc",
		"/var/log",
		"/var/db",
		"/var/root",
		"/Library/System",
		"/Applications",
		"/private/etc",
	},
	"linux": {
		"/bin",
		"/sbin",
		"/usr/bin",
		"/usr/sbin",
		"/etc",
		"/boot",
		"/dev",
		"/proc",
		"/sys",
		"/var/log",
		"/var/lib",
		"/var/cache",
		"/root",
	},
}

// reservedDirs returns the reserved directory list for the current
// platform plus critical dotdirs in the user's home. Platforms without
// their own list fall back to the linux one.
func reservedDirs() []string {
	list, ok := reservedByOS[runtime.GOOS]
	if !ok {
		list = reservedByOS["linux"]
	}

	dirs := slices.Clone(list)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".ssh"), filepath.Join(home, ".gnupg"))
	}
	return dirs
}

// isUserTempDir recognizes per-user temp locations that are safe to
// use even though they sit under otherwise reserved prefixes.
func isUserTempDir(path string) bool {
	lower := strings.ToLower(path)
	switch runtime.GOOS {
	case "darwin":
		// macOS keeps per-user temp dirs under /var/folders/xx/yyyy/T.
		if strings.Contains(lower, "/var/folders/") {
			return true
		}
	case "linux":
		if path == "/tmp" || strings.HasPrefix(path, "/tmp/") {
			return true
		}
	case "windows":
		if strings.Contains(lower, `\temp\`) || strings.Contains(lower, `\tmp\`) {
			return true
		}
	}

	return strings.HasPrefix(filepath.Clean(path), filepath.Clean(os.TempDir()))
}

// ValidateStorageDir vets a directory path before it is accepted as a
// card source or clone destination. The path must be absolute or
// home-relative, must not resolve into a reserved directory, and its
// parent must exist:
//
//	err := fileops.ValidateStorageDir("~/training/cards")
func ValidateStorageDir(path string) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return fmt.Errorf("storage path is empty")
	}
	if err := ValidatePath(trimmed); err != nil {
		return err
	}

	expanded := ExpandHome(trimmed)
	if !filepath.IsAbs(expanded) && !strings.HasPrefix(trimmed, "~/") {
		return fmt.Errorf("path must be absolute or start with ~/")
	}

	// An existing symlink at the path must not lead into a reserved tree.
	if resolved, err := filepath.EvalSymlinks(expanded); err == nil && IsReservedDir(resolved) {
		return fmt.Errorf("path resolves to reserved directory")
	}
	if IsReservedDir(expanded) {
		return fmt.Errorf("path is a reserved system directory")
	}

	parent := filepath.Dir(expanded)
	if parent == "." {
		return nil
	}
	if _, err := os.Stat(parent); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("parent directory does not exist: %s", parent)
		}
		return fmt.Errorf("cannot access parent directory: %w", err)
	}
	return nil
}

// scriptPatterns are rejected anywhere in card content. Cards render as
// markdown in terminals and chat clients, so script fragments have no
// legitimate place in them.
var scriptPatterns = []string{
	"<script", "javascript:", "vbscript:", "data:text/html",
	"eval(", "exec(", "onload=", "onerror=", "onclick=",
}

// ValidateContent screens text from card files before it enters
// the catalog: control characters and script injection patterns both fail
// validation.
func ValidateContent(content string) error {
	if strings.ContainsFunc(content, func(r rune) bool {
		return r < 32 && r != '\n' && r != '\r' && r != '\t'
	}) {
		return fmt.Errorf("content contains control characters")
	}

	lower := strings.ToLower(content)
	for _, p := range scriptPatterns {
		if strings.Contains(lower, p) {
			return fmt.Errorf("content contains blocked pattern %q", p)
		}
	}
	return nil
}

// SanitizeID reduces a user-supplied name to a safe identifier, for
// example when a card source ID is derived from a display name. Only
// alphanumerics, spaces, hyphens, underscores, and periods survive; runs
// of separators collapse to a single underscore, so "personal cards!"
// comes back as "personal_cards".
func SanitizeID(name string, maxLen int) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("identifier is empty")
	}

	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_', r == '.':
			return r
		}
		return -1
	}, name)

	// Runs of spaces become single underscores, then doubled separators
	// collapse until none remain.
	out := strings.Join(strings.Fields(kept), "_")
	out = strings.ReplaceAll(out, "--", "_")
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}

	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}

	out = strings.Trim(out, "_-.")
	if out == "" {
		return "", fmt.Errorf("nothing left after sanitization")
	}
	return out, nil
}

// CheckFileSize fails when the file at path is larger than limit
// bytes. Catalog loading applies this to card files so a single oversized
// file cannot exhaust memory.
func CheckFileSize(path string, limit int64) error {
	if limit <= 0 {
		return fmt.Errorf("invalid size limit: %d", limit)
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("file does not exist: %s", path)
	case err != nil:
		return fmt.Errorf("cannot stat file: %w", err)
	case info.IsDir():
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if info.Size() > limit {
		return fmt.Errorf("file size %d bytes exceeds limit of %d bytes", info.Size(), limit)
	}
	return nil
}
