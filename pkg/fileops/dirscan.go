package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ScanOptions controls what a directory scan visits and reports.
type ScanOptions struct {
	// SkipUnreadable skips directories and files that cannot be read
	// instead of aborting the scan.
	SkipUnreadable bool

	// MaxDepth caps recursion. The scan root itself counts as depth 1, so
	// MaxDepth 1 lists only files directly under the root.
	MaxDepth int

	// KeepHidden visits dotfiles and dot-directories too.
	KeepHidden bool

	// SkipDirs lists directory names (exact matches, not paths) that are
	// never descended into.
	SkipDirs []string

	// KeepFile limits results to files for which it returns true. A nil
	// filter includes every file.
	KeepFile func(name string) bool

	// KeepDir overrides the built-in directory skipping when non-nil: a
	// directory is entered only if it returns true.
	KeepDir func(name string) bool

	// CheckAccess additionally verifies that every discovered file is
	// readable. Optional because opening every file is slow on large trees.
	CheckAccess bool
}

// FileEntry describes one file found during a scan.
type FileEntry struct {
	Name    string // base name of the file
	Path    string // relative to the scan root
	IsDir   bool
	Size    int64 // zero for directories
	ModTime time.Time
	Mode    os.FileMode
}

// Scanner walks a directory tree inside an os.Root boundary, so symlinks
// cannot pull files from outside the scanned directory into the results.
// Loop protection and depth limits make it safe to point at arbitrary
// user-supplied card directories.
type Scanner struct {
	root     *os.Root
	opts     *ScanOptions
	found    []FileEntry
	seen     map[string]bool // visited directories, guards against symlink loops
	rootPath string          // absolute scan root, used for symlink validation
}

// NewScanner validates dir and prepares a scanner rooted at it. The path
// may be relative and may start with ~. Reserved system directories are
// rejected outright. Pass nil opts for the defaults.
//
// Callers own the root handle:
//
//	sc, err := fileops.NewScanner(cardDir, nil)
//	if err != nil { ... }
//	defer sc.Close()
func NewScanner(dir string, opts *ScanOptions) (*Scanner, error) {
	if opts == nil {
		opts = defaultScanOptions()
	}

	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("scan directory cannot be empty")
	}

	abs, err := filepath.Abs(ExpandHome(dir))
	if err != nil {
		return nil, fmt.Errorf("cannot make scan path absolute: %w", err)
	}
	if err := ValidatePath(abs); err != nil {
		return nil, fmt.Errorf("scan path rejected: %w", err)
	}
	if IsReservedDir(abs) {
		return nil, fmt.Errorf("refusing to scan reserved directory: %s", abs)
	}

	switch info, err := os.Stat(abs); {
	case err != nil:
		return nil, fmt.Errorf("cannot access scan path %s: %w", abs, err)
	case !info.IsDir():
		return nil, fmt.Errorf("scan path is not a directory: %s", abs)
	}

	// os.Root confines every subsequent open to the scan area.
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot open scan root: %w", err)
	}

	return &Scanner{root: root, opts: opts, seen: make(map[string]bool), rootPath: abs}, nil
}

// defaultSkipDirs are directory names that never hold cards: VCS metadata,
// package caches, and editor state.
var defaultSkipDirs = []string{
	"node_modules", ".git", "vendor", "target", "build",
	".next", "dist", ".cache", "__pycache__", ".vscode", ".idea",
}

func defaultScanOptions() *ScanOptions {
	return &ScanOptions{
		SkipUnreadable: true,
		MaxDepth:       20,
		KeepHidden:     true,
		SkipDirs:       slices.Clone(defaultSkipDirs),
	}
}

// Close releases the scanner's root handle. The scanner cannot be reused
// afterwards; further closes are no-ops.
func (s *Scanner) Close() error {
	if s.root == nil {
		return nil
	}
	err := s.root.Close()
	s.root = nil
	return err
}

// Scan walks the tree under the scan root and returns every file that
// passes the configured filters. Calling it again re-walks the tree from
// scratch.
func (s *Scanner) Scan() ([]FileEntry, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner is closed")
	}

	s.found = nil
	s.seen = make(map[string]bool)

	if err := s.walk(".", 1); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return slices.Clone(s.found), nil
}

func (s *Scanner) walk(rel string, depth int) error {
	if depth > s.opts.MaxDepth {
		return nil
	}

	// Symlink loops revisit a directory; the seen set breaks the cycle.
	key := filepath.Clean(rel)
	if s.seen[key] {
		return nil
	}
	s.seen[key] = true

	if s.skipDir(filepath.Base(rel)) {
		return nil
	}

	d, err := s.root.Open(rel)
	if err != nil {
		if s.opts.SkipUnreadable {
			return nil
		}
		return fmt.Errorf("cannot open %s: %w", rel, err)
	}
	defer d.Close()

	ents, err := d.ReadDir(-1)
	if err != nil {
		if s.opts.SkipUnreadable {
			return nil
		}
		return fmt.Errorf("cannot read %s: %w", rel, err)
	}

	for _, ent := range ents {
		child := filepath.Join(rel, ent.Name())

		if ent.IsDir() {
			// A directory that is itself a symlink must resolve inside the
			// scan root before it is followed.
			full := filepath.Join(s.rootPath, child)
			if isLink, err := IsSymlink(full); err == nil && isLink {
				if err := CheckLinkTarget(full, []string{s.rootPath}); err != nil {
					if s.opts.SkipUnreadable {
						continue
					}
					return fmt.Errorf("unsafe symlink at %s: %w", child, err)
				}
			}

			if err := s.walk(child, depth+1); err != nil {
				return err
			}
			continue
		}

		if !s.keepFile(ent.Name()) {
			continue
		}
		fe, err := s.fileEntry(ent, child)
		if err != nil {
			if s.opts.SkipUnreadable {
				continue
			}
			return fmt.Errorf("cannot stat %s: %w", child, err)
		}
		s.found = append(s.found, fe)
	}

	return nil
}

// skipDir reports whether a directory name is excluded from the walk.
func (s *Scanner) skipDir(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if s.opts.KeepDir != nil {
		return !s.opts.KeepDir(name)
	}
	if !s.opts.KeepHidden && strings.HasPrefix(name, ".") {
		return true
	}
	return slices.Contains(s.opts.SkipDirs, name)
}

// keepFile reports whether a file name passes the hidden-file rule and the
// configured filter.
func (s *Scanner) keepFile(name string) bool {
	if !s.opts.KeepHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if s.opts.KeepFile != nil {
		return s.opts.KeepFile(name)
	}
	return true
}

func (s *Scanner) fileEntry(ent os.DirEntry, path string) (FileEntry, error) {
	info, err := ent.Info()
	if err != nil {
		return FileEntry{}, err
	}

	if s.opts.CheckAccess && !ent.IsDir() {
		// Scan paths are relative to the root handle; access validation
		// needs the real filesystem path.
		if err := CheckFileAccess(filepath.Join(s.rootPath, path), false); err != nil {
			return FileEntry{}, err
		}
	}

	return FileEntry{
		Name: ent.Name(), Path: path, IsDir: ent.IsDir(),
		Size: info.Size(), ModTime: info.ModTime(), Mode: info.Mode(),
	}, nil
}

// ScanSummary aggregates the most recent scan.
type ScanSummary struct {
	Files   int
	Bytes   int64
	Largest int64 // size of the biggest file seen
}

// Summary tallies counts and sizes over the most recent scan results.
func (s *Scanner) Summary() ScanSummary {
	var sum ScanSummary
	for _, f := range s.found {
		if f.IsDir {
			continue
		}
		sum.Files++
		sum.Bytes += f.Size
		sum.Largest = max(sum.Largest, f.Size)
	}
	return sum
}

// ScanMatching scans dir in one call, keeping the files match accepts.
// Hidden files are excluded and the default skip list applies:
//
//	cards, err := fileops.ScanMatching(dir, isCardFile, 10)
func ScanMatching(dir string, match func(string) bool, maxDepth int) ([]FileEntry, error) {
	sc, err := NewScanner(dir, &ScanOptions{
		SkipUnreadable: true,
		MaxDepth:       maxDepth,
		SkipDirs:       slices.Clone(defaultSkipDirs),
		KeepFile:       match,
	})
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	return sc.Scan()
}

// IsEmptyDir reports whether the directory at path contains no entries.
// Reads at most one name, so it is cheap even on large directories.
func IsEmptyDir(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err == io.EOF {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}
