package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"fittrack/internal/logging"
	"fittrack/pkg/fileops"
)

// Source abstracts where extra exercise cards come from. Implementations
// must resolve to a local filesystem directory that the catalog loader can
// scan for card files.
type Source interface {
	// Prepare resolves the source to a local card directory, syncing
	// remote content first when the backend has any. The returned
	// SyncInfo feeds status messages shown to the user.
	Prepare(logger *logging.Logger) (localPath string, info SyncInfo, err error)
}

// SyncInfo reports what Prepare did, for status output.
type SyncInfo struct {
	Cloned  bool   // a fresh clone was created
	Updated bool   // new commits were fetched into an existing clone
	Dirty   bool   // the working tree carries local edits
	Message string // one-line status for the user
}

// SourceType identifies the storage backend of a configured card source.
type SourceType string

const (
	// SourceTypeDir indicates a plain local directory of card files.
	SourceTypeDir SourceType = "dir"

	// SourceTypeGit indicates a Git-hosted card repository.
	SourceTypeGit SourceType = "git"
)

// String returns the string representation of the source type.
func (st SourceType) String() string {
	return string(st)
}

// IsValid checks if the source type is a known type.
func (st SourceType) IsValid() bool {
	return st == SourceTypeDir || st == SourceTypeGit
}

// SourceEntry is a single configured card source as persisted in the config
// file. It is the domain entity for sources; the config package only stores
// and retrieves it.
//
// Fields:
//   - ID: unique identifier, used for clone paths (e.g. "team-cards")
//   - Name: display name for UI (e.g. "Team Cards")
//   - Type: source type ("dir" or "git")
//   - Path: card directory for dir sources; optional clone-path override
//     for git sources (default is under the XDG data dir)
//   - RemoteURL: Git repository URL (only for Type == SourceTypeGit)
//   - Branch: Git branch (optional, only for git sources)
//   - LastSyncTime: Unix timestamp of last sync (only for git sources)
type SourceEntry struct {
	ID   string     `yaml:"id"`
	Name string     `yaml:"name"`
	Type SourceType `yaml:"type"`

	Path string `yaml:"path,omitempty"`

	RemoteURL    *string `yaml:"remote_url,omitempty"`
	Branch       *string `yaml:"branch,omitempty"`
	LastSyncTime *int64  `yaml:"last_sync_time,omitempty"`
}

// IsRemote returns true if this source is a remote Git repository.
func (e SourceEntry) IsRemote() bool {
	return e.Type == SourceTypeGit
}

// GetRemoteURL returns the remote URL, or empty string for dir sources.
func (e SourceEntry) GetRemoteURL() string {
	if e.RemoteURL != nil {
		return *e.RemoteURL
	}
	return ""
}

// GetBranch returns the branch name if specified, or empty string for the
// default branch.
func (e SourceEntry) GetBranch() string {
	if e.Branch != nil {
		return *e.Branch
	}
	return ""
}

// String returns a representation of the source entry for logging.
func (e SourceEntry) String() string {
	if e.IsRemote() {
		return fmt.Sprintf("Source{ID: %s, Name: %s, Type: %s, RemoteURL: %s}",
			e.ID, e.Name, e.Type, e.GetRemoteURL())
	}
	return fmt.Sprintf("Source{ID: %s, Name: %s, Type: %s, Path: %s}",
		e.ID, e.Name, e.Type, e.Path)
}

// Validate checks that the entry is internally consistent. Called when the
// config file is loaded so a typo surfaces before any sync is attempted.
func (e SourceEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("source ID cannot be empty")
	}
	sanitized, err := fileops.SanitizeID(e.ID, 64)
	if err != nil || sanitized != e.ID {
		return fmt.Errorf("invalid source ID %q (use letters, digits, dashes and underscores)", e.ID)
	}

	trimmedName := strings.TrimSpace(e.Name)
	if trimmedName == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if len(trimmedName) > 100 {
		return fmt.Errorf("source name too long (%d characters, maximum 100)", len(trimmedName))
	}

	if !e.Type.IsValid() {
		return fmt.Errorf("invalid source type %q (must be %q or %q)",
			e.Type, SourceTypeDir, SourceTypeGit)
	}

	if e.Type == SourceTypeGit {
		if e.RemoteURL == nil || strings.TrimSpace(*e.RemoteURL) == "" {
			return fmt.Errorf("git source must have a remote URL")
		}
		if e.Branch != nil && strings.TrimSpace(*e.Branch) == "" {
			return fmt.Errorf("branch cannot be empty string (omit it for the default branch)")
		}
		if e.LastSyncTime != nil && *e.LastSyncTime <= 0 {
			return fmt.Errorf("last_sync_time must be positive Unix timestamp, got: %d", *e.LastSyncTime)
		}
	} else {
		if strings.TrimSpace(e.Path) == "" {
			return fmt.Errorf("dir source must have a path")
		}
		if e.RemoteURL != nil && *e.RemoteURL != "" {
			return fmt.Errorf("dir source should not have a remote URL")
		}
		if e.Branch != nil && *e.Branch != "" {
			return fmt.Errorf("dir source should not have a branch")
		}
		if e.LastSyncTime != nil {
			return fmt.Errorf("dir source should not have a last_sync_time")
		}
	}

	return nil
}

// Source builds the runtime Source for this entry.
func (e SourceEntry) Source() (Source, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	switch e.Type {
	case SourceTypeDir:
		return NewDirSource(e.Path), nil
	case SourceTypeGit:
		clonePath := strings.TrimSpace(e.Path)
		if clonePath == "" {
			clonePath = DefaultClonePath(e.ID)
		}
		return NewGitSource(e.GetRemoteURL(), e.Branch, clonePath), nil
	default:
		return nil, fmt.Errorf("invalid source type %q", e.Type)
	}
}

// DefaultClonePath returns the clone destination for a git source, under
// the per-user data directory.
func DefaultClonePath(id string) string {
	safe, err := fileops.SanitizeID(id, 64)
	if err != nil || safe == "" {
		safe = "source"
	}
	return filepath.Join(xdg.DataHome, "fittrack", "library", safe)
}

// DirSource reads cards straight from a local directory. Prepare never
// touches the network.
type DirSource struct {
	// Path to the card directory, absolute or home-relative (~/...).
	Path string
}

// NewDirSource creates a DirSource for the given path.
func NewDirSource(path string) DirSource {
	return DirSource{Path: path}
}

// Prepare checks that the configured directory is usable: non-empty,
// outside reserved locations, existing, and actually a directory.
func (ds DirSource) Prepare(logger *logging.Logger) (string, SyncInfo, error) {
	if logger != nil {
		logger.Info("Preparing card directory source", "path", ds.Path)
	}

	dir := strings.TrimSpace(ds.Path)
	if dir == "" {
		return "", SyncInfo{}, fmt.Errorf("card directory path cannot be empty")
	}
	dir = filepath.Clean(fileops.ExpandHome(dir))

	if err := fileops.ValidateStorageDir(dir); err != nil {
		return "", SyncInfo{}, fmt.Errorf("invalid card directory path: %w", err)
	}

	switch info, err := os.Stat(dir); {
	case os.IsNotExist(err):
		return "", SyncInfo{}, fmt.Errorf("card directory does not exist: %s", dir)
	case err != nil:
		return "", SyncInfo{}, fmt.Errorf("cannot access card directory: %w", err)
	case !info.IsDir():
		return "", SyncInfo{}, fmt.Errorf("card source path is not a directory: %s", dir)
	}

	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	if logger != nil {
		logger.Debug("Card directory source validated", "resolved_path", dir)
	}
	return dir, SyncInfo{Message: "Using local card directory"}, nil
}
