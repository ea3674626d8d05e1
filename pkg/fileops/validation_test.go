package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeTestFile creates a file with the given content under dir and
// returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func isWindows() bool {
	return runtime.GOOS == "windows"
}

// checkErr asserts the outcome of a validation call: an empty sub means
// no error is expected, otherwise the error text must contain sub.
func checkErr(t *testing.T, err error, sub string) {
	t.Helper()
	switch {
	case sub == "" && err != nil:
		t.Errorf("unexpected error: %v", err)
	case sub != "" && err == nil:
		t.Errorf("expected error containing %q, got none", sub)
	case sub != "" && !strings.Contains(err.Error(), sub):
		t.Errorf("error = %v, want substring %q", err, sub)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		errSub string
	}{
		{"relative card path", "cards/pressing/floor-press.md", ""},
		{"absolute path outside reserved trees", "/home/user/training/cards", ""},
		{"current directory prefix", "./floor-press.md", ""},
		{"repeated separators", "cards//pressing///floor-press.md", ""},
		{"empty path", "", "path is empty"},
		{"whitespace only", "   ", "path is empty"},
		{"parent traversal", "../../../etc/passwd", "path traversal rejected"},
		{"embedded traversal", "cards/../../etc/passwd", "path traversal rejected"},
		{"double dot inside a filename", "card..md", "path traversal rejected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, ValidatePath(tt.path), tt.errSub)
		})
	}
}

func TestCheckFileAccess(t *testing.T) {
	tempDir := t.TempDir()
	card := writeTestFile(t, tempDir, "floor-press.md", "# Floor Press")

	t.Run("readable file", func(t *testing.T) {
		checkErr(t, CheckFileAccess(card, false), "")
	})

	t.Run("writable file", func(t *testing.T) {
		checkErr(t, CheckFileAccess(card, true), "")
	})

	t.Run("missing file", func(t *testing.T) {
		checkErr(t, CheckFileAccess(filepath.Join(tempDir, "missing.md"), false), "does not exist")
	})

	t.Run("directory instead of file", func(t *testing.T) {
		checkErr(t, CheckFileAccess(tempDir, false), "directory, not a file")
	})

	t.Run("unreadable file", func(t *testing.T) {
		if isWindows() || os.Getenv("CI") != "" || os.Geteuid() == 0 {
			t.Skip("permission bits are not enforced here")
		}
		locked := writeTestFile(t, tempDir, "locked.md", "# Locked")
		if err := os.Chmod(locked, 0000); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(locked, 0644) })
		checkErr(t, CheckFileAccess(locked, false), "not readable")
	})
}

func TestIsReservedDir(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"filesystem root", "/", true},
		{"etc", "/etc", !isWindows()},
		{"file under etc", "/etc/passwd", !isWindows()},
		{"usr bin", "/usr/bin", !isWindows()},
		{"var log", "/var/log", !isWindows()},
		{"temp directory", os.TempDir(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReservedDir(tt.path); got != tt.want {
				t.Errorf("IsReservedDir(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	t.Run("windows system paths", func(t *testing.T) {
		if !isWindows() {
			t.Skip("windows-only reserved paths")
		}
		for _, path := range []string{`C:\Windows`, `C:\Program Files`, `c:\windows`} {
			if !IsReservedDir(path) {
				t.Errorf("IsReservedDir(%q) = false, want true", path)
			}
		}
	})

	t.Run("home directory is usable", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("cannot determine home directory: %v", err)
		}
		if os.Geteuid() == 0 {
			t.Skip("root's home directory is itself reserved")
		}
		if IsReservedDir(home) {
			t.Errorf("IsReservedDir(%q) = true, want false", home)
		}
	})

	t.Run("ssh directory under home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("cannot determine home directory: %v", err)
		}
		if !IsReservedDir(filepath.Join(home, ".ssh")) {
			t.Error("IsReservedDir() should treat ~/.ssh as reserved")
		}
	})
}

func TestReservedDirectoriesList(t *testing.T) {
	dirs := reservedDirs()
	if len(dirs) == 0 {
		t.Fatal("reservedDirs() returned an empty list")
	}

	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			t.Error("reserved directory list contains an empty entry")
		}
		if seen[dir] {
			t.Errorf("reserved directory list contains %q twice", dir)
		}
		seen[dir] = true
	}

	if !seen["/etc"] && !seen[`C:\Windows`] {
		t.Error("reserved directory list misses the core system directory for this platform")
	}
}

func TestValidateStorageDir(t *testing.T) {
	tempDir := t.TempDir()

	type storageCase struct {
		name   string
		path   string
		errSub string
	}
	tests := []storageCase{
		{"empty", "", "storage path is empty"},
		{"whitespace only", "   ", "storage path is empty"},
		{"subdirectory of an existing directory", filepath.Join(tempDir, "cards"), ""},
		{"parent traversal", "../outside/cards", "path traversal rejected"},
		{"bare relative path", "relative/path", "must be absolute or start with"},
		{"ssh directory", "~/.ssh", "reserved"},
	}
	if !isWindows() {
		tests = append(tests, storageCase{"system directory", "/etc", "path traversal rejected"})
	}
	if os.Geteuid() != 0 {
		// Root's home directory sits on the reserved list.
		tests = append(tests, storageCase{"home relative path", "~/training", ""})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, ValidateStorageDir(tt.path), tt.errSub)
		})
	}
}

func TestValidateContent(t *testing.T) {
	clean := []string{
		"# Floor Press\n\nKeep the shoulder blades pinned back.",
		"tempo\t3-1-1",
		"line one\r\nline two",
		"",
		"负重 deload week 🏋️",
	}
	for _, content := range clean {
		if err := ValidateContent(content); err != nil {
			t.Errorf("ValidateContent(%q) unexpected error: %v", content, err)
		}
	}

	hostile := []struct {
		name    string
		content string
		errSub  string
	}{
		{"null byte", "card\x00content", "control characters"},
		{"escape character", "card\x1bcontent", "control characters"},
		{"script tag", "<script>alert('x')</script>", "<script"},
		{"uppercase script tag", "<SCRIPT>alert('x')</SCRIPT>", "<script"},
		{"javascript url", "[video](javascript:alert(1))", "javascript:"},
		{"eval call", "eval(window.name)", "eval("},
		{"onload handler", "<img src=x onload=run()>", "onload="},
	}
	for _, tt := range hostile {
		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, ValidateContent(tt.content), tt.errSub)
		})
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		limit  int
		want   string
		errSub string
	}{
		{"already clean", "personal_cards", 50, "personal_cards", ""},
		{"spaces become underscores", "personal card collection", 50, "personal_card_collection", ""},
		{"special characters dropped", "cards@#$%^&*()with!special", 50, "cardswithspecial", ""},
		{"runs of spaces collapse", "cards  with   multiple    spaces", 50, "cards_with_multiple_spaces", ""},
		{"hyphens kept", "gym-cards", 50, "gym-cards", ""},
		{"periods kept", "cards.v2", 50, "cards.v2", ""},
		{"separators trimmed from ends", "_-my-cards-_", 50, "my-cards", ""},
		{"consecutive separators collapse", "cards--with__consecutive", 50, "cards_with_consecutive", ""},
		{"truncated to limit", strings.Repeat("a", 150), 100, strings.Repeat("a", 100), ""},
		{"short limit", "toolongidentifier", 10, "toolongide", ""},
		{"zero limit means unlimited", strings.Repeat("b", 150), 0, strings.Repeat("b", 150), ""},
		{"unicode dropped", "cards_with_unicode_字符", 50, "cards_with_unicode", ""},
		{"markup stripped", "<script>alert('xss')</script>", 50, "scriptalertxssscript", ""},
		{"empty", "", 50, "", "identifier is empty"},
		{"whitespace only", "   ", 50, "", "identifier is empty"},
		{"nothing survives", "@#$%^&*()", 50, "", "left after sanitization"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeID(tt.in, tt.limit)
			checkErr(t, err, tt.errSub)
			if tt.errSub == "" && got != tt.want {
				t.Errorf("SanitizeID(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		limit   int64
		errSub  string
	}{
		{"well under the limit", "short card", 1024, ""},
		{"empty file", "", 10, ""},
		{"exactly at the limit", strings.Repeat("x", 50), 50, ""},
		{"one byte over", strings.Repeat("x", 51), 50, "exceeds limit"},
		{"far over", strings.Repeat("card content ", 100), 50, "exceeds limit"},
		{"zero limit", "content", 0, "invalid size limit"},
		{"negative limit", "content", -1, "invalid size limit"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, tempDir, fmt.Sprintf("card-%d.md", i), tt.content)
			checkErr(t, CheckFileSize(path, tt.limit), tt.errSub)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		checkErr(t, CheckFileSize(filepath.Join(tempDir, "missing.md"), 100), "does not exist")
	})

	t.Run("directory instead of file", func(t *testing.T) {
		checkErr(t, CheckFileSize(tempDir, 100), "directory, not a file")
	})
}

func BenchmarkValidatePath(b *testing.B) {
	for range b.N {
		if err := ValidatePath("cards/pressing/floor-press.md"); err != nil {
			b.Fatal(err)
		}
	}
}
