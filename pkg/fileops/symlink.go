package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// IsSymlink reports whether path is a symbolic link. The check uses lstat,
// so the link itself is examined rather than its target.
func IsSymlink(path string) (bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	return fi.Mode()&os.ModeSymlink != 0, nil
}

// ResolveSymlink follows a symlink chain to its final target and returns
// the target path. Broken links yield an error.
func ResolveSymlink(link string) (string, error) {
	target, err := filepath.EvalSymlinks(link)
	if err != nil {
		return "", fmt.Errorf("cannot resolve symlink %s: %w", link, err)
	}
	return target, nil
}

// canonicalize makes a path absolute and resolves any symlinks along it.
// On macOS this folds /tmp into /private/tmp so containment checks compare
// like with like. Resolution failures fall back to the absolute path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// within reports whether target sits at or below base.
func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..")
}

// CheckLinkTarget checks that link is a real symlink whose
// resolved target lies inside one of the allowed base directories. The
// directory scanner applies this to every symlink it encounters so card
// collections cannot smuggle in files from outside the scanned tree.
func CheckLinkTarget(link string, allowedBases []string) error {
	isLink, err := IsSymlink(link)
	if err != nil {
		return fmt.Errorf("cannot inspect %s: %w", link, err)
	}
	if !isLink {
		return fmt.Errorf("path is not a symbolic link: %s", link)
	}

	resolved, err := ResolveSymlink(link)
	if err != nil {
		return fmt.Errorf("broken symlink: %w", err)
	}

	target, err := canonicalize(resolved)
	if err != nil {
		return fmt.Errorf("cannot canonicalize symlink target: %w", err)
	}

	ok := slices.ContainsFunc(allowedBases, func(base string) bool {
		canon, err := canonicalize(base)
		return err == nil && within(canon, target)
	})
	if !ok {
		return fmt.Errorf("symlink target is not within any allowed base path: %s", resolved)
	}
	return nil
}
