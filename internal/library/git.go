package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport/http"

	"fittrack/internal/logging"
	"fittrack/pkg/fileops"
)

// cloneDirState classifies the clone target directory before any network
// operation touches it. Only the empty and same-repo states proceed; the
// rest require the user to resolve the directory manually, nothing is ever
// overwritten.
type cloneDirState int

const (
	cloneDirEmpty cloneDirState = iota
	cloneDirSameRepo
	cloneDirDifferentRepo
	cloneDirConflict
	cloneDirError
)

func (s cloneDirState) String() string {
	switch s {
	case cloneDirEmpty:
		return "empty"
	case cloneDirSameRepo:
		return "clone of this repository"
	case cloneDirDifferentRepo:
		return "clone of a different repository"
	case cloneDirConflict:
		return "non-git content"
	case cloneDirError:
		return "not usable"
	default:
		return "unknown"
	}
}

// GitSource is a Git-hosted card repository used as an exercise card source.
// It handles cloning, fetching, and authentication using GitHub Personal
// Access Tokens.
//
// Lifecycle handled by Prepare:
//   - URL validation and normalization (SSH converted to HTTPS)
//   - Directory conflict detection (never overwrites a different repo)
//   - Shallow clone on first use, fetch on subsequent runs
//   - Dirty working tree detection (local edits are preserved, sync skipped)
//   - Public access first, PAT fallback for private repositories
type GitSource struct {
	RemoteURL string  // HTTPS or SSH remote, SSH is rewritten to HTTPS on use
	Branch    *string // nil means the remote's default branch
	Path      string  // local directory the repository is cloned into
}

// NewGitSource creates a new GitSource instance.
//
// URL validation is deferred to Prepare(); both HTTPS and SSH formats are
// accepted. A nil branch uses the remote's default branch.
func NewGitSource(remoteURL string, branch *string, clonePath string) GitSource {
	return GitSource{RemoteURL: remoteURL, Branch: branch, Path: clonePath}
}

// branchName returns the configured branch, or "" for the remote default.
func (gs GitSource) branchName() string {
	if gs.Branch == nil {
		return ""
	}
	return strings.TrimSpace(*gs.Branch)
}

// Prepare clones or fetches the card repository and returns the local path.
//
// Directory conflict resolution:
//   - empty or missing directory: clone
//   - same repository already present: fetch updates
//   - different repository or non-git content: error, resolve manually
//
// Network failures during fetch degrade to the cached clone so the catalog
// still loads offline.
func (gs GitSource) Prepare(logger *logging.Logger) (string, SyncInfo, error) {
	if logger != nil {
		logger.Info("Preparing Git card source",
			"remoteURL", gs.RemoteURL,
			"branch", gs.Branch,
			"localPath", gs.Path)
	}

	if err := gs.checkConfig(); err != nil {
		return "", SyncInfo{}, err
	}

	remoteURL, err := gs.canonicalRemoteURL()
	if err != nil {
		return "", SyncInfo{}, fmt.Errorf("invalid remote URL: %w", err)
	}

	clonePath, err := gs.resolveLocalPath()
	if err != nil {
		return "", SyncInfo{}, err
	}

	state, err := gs.classifyCloneDir(clonePath, remoteURL)
	if state == cloneDirConflict || state == cloneDirDifferentRepo {
		return "", SyncInfo{}, fmt.Errorf("directory conflict at %s (%s): remove or relocate the existing directory",
			clonePath, state)
	}
	if err != nil {
		return "", SyncInfo{}, err
	}

	var info SyncInfo
	switch state {
	case cloneDirEmpty:
		err := withAuthFallback(logger, func(auth *http.BasicAuth) error {
			return gs.clone(clonePath, remoteURL, auth, logger)
		})
		if err != nil {
			return "", SyncInfo{}, err
		}
		info = SyncInfo{Cloned: true, Message: "Cloned card repository"}

	case cloneDirSameRepo:
		info, err = gs.syncExisting(clonePath, logger)
		if err != nil {
			return "", SyncInfo{}, err
		}

	default:
		return "", SyncInfo{}, fmt.Errorf("unexpected directory status: %s", state)
	}

	if logger != nil {
		logger.Info("Git card source prepared", "localPath", clonePath, "status", info.Message)
	}

	return clonePath, info, nil
}

// checkConfig rejects a GitSource with missing required fields.
func (gs GitSource) checkConfig() error {
	switch {
	case strings.TrimSpace(gs.RemoteURL) == "":
		return fmt.Errorf("remote URL cannot be empty")
	case strings.TrimSpace(gs.Path) == "":
		return fmt.Errorf("local path cannot be empty")
	}
	return nil
}

// canonicalRemoteURL rewrites the configured remote as an HTTPS URL with a
// .git suffix, so SSH-configured sources clone over HTTPS where PAT
// authentication works.
func (gs GitSource) canonicalRemoteURL() (string, error) {
	parts, err := parseRepoURL(gs.RemoteURL)
	if err != nil {
		return "", fmt.Errorf("unsupported repository URL: %w", err)
	}
	return fmt.Sprintf("https://%s/%s/%s.git", parts.Host, parts.Owner, parts.Name), nil
}

// resolveLocalPath expands and cleans the configured clone path.
//
// Security validation here is distinct from classifyCloneDir: this rejects
// traversal and reserved directories, that one detects Git-specific
// conflicts. Both are required.
func (gs GitSource) resolveLocalPath() (string, error) {
	dir := filepath.Clean(fileops.ExpandHome(gs.Path))

	if err := fileops.ValidatePath(dir); err != nil {
		return "", fmt.Errorf("clone path rejected: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot make clone path absolute: %w", err)
	}
	return abs, nil
}

// classifyCloneDir decides whether dir can be used for the repository at
// wantRemoteURL: missing or empty means clone, an existing clone of the
// same repository means fetch, and anything else is a conflict the user has
// to resolve.
func (gs GitSource) classifyCloneDir(dir, wantRemoteURL string) (cloneDirState, error) {
	switch info, err := os.Stat(dir); {
	case os.IsNotExist(err):
		return cloneDirEmpty, nil
	case err != nil:
		return cloneDirError, fmt.Errorf("cannot access directory %s: %w", dir, err)
	case !info.IsDir():
		return cloneDirError, fmt.Errorf("path exists but is not a directory: %s", dir)
	}

	empty, err := fileops.IsEmptyDir(dir)
	if err != nil {
		return cloneDirError, fmt.Errorf("cannot check if directory is empty: %w", err)
	}
	if empty {
		return cloneDirEmpty, nil
	}

	// git.PlainOpen reliably distinguishes git repositories from other
	// content, so repo detection and remote lookup happen in one step.
	current, err := originRemoteURL(dir)
	switch {
	case err == nil:
	case strings.Contains(err.Error(), "not a git repository"):
		return cloneDirConflict, fmt.Errorf("directory contains non-git content: %s", dir)
	default:
		return cloneDirError, fmt.Errorf("cannot read current git remote: %w", err)
	}

	if comparableRepoURL(current) == comparableRepoURL(wantRemoteURL) {
		return cloneDirSameRepo, nil
	}
	return cloneDirDifferentRepo, fmt.Errorf("directory contains different git repository (current: %s, expected: %s)", current, wantRemoteURL)
}

// clone performs the initial repository clone.
//
// The clone is shallow (depth 1, single branch when one is configured); the
// card repository is a read-only cache, history is not needed.
func (gs GitSource) clone(dest, remoteURL string, auth *http.BasicAuth, logger *logging.Logger) error {
	if logger != nil {
		logger.Info("Cloning card repository", "remoteURL", remoteURL, "localPath", dest)
	}

	parent := filepath.Dir(dest)
	if err := fileops.ValidatePath(parent); err != nil {
		return fmt.Errorf("clone parent directory rejected: %w", err)
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("cannot create clone parent directory: %w", err)
	}

	opts := &git.CloneOptions{
		URL:   remoteURL,
		Depth: 1,
		Auth:  auth,
	}
	if branch := gs.branchName(); branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainClone(dest, opts); err != nil {
		return cloneFailure(err, gs.RemoteURL)
	}

	if logger != nil {
		logger.Info("Card repository cloned successfully", "localPath", dest)
	}
	return nil
}

// syncExisting fetches updates into an existing clone with the public-first
// auth strategy and reports the outcome as SyncInfo.
func (gs GitSource) syncExisting(clonePath string, logger *logging.Logger) (SyncInfo, error) {
	var info SyncInfo
	err := withAuthFallback(logger, func(auth *http.BasicAuth) error {
		var fetchErr error
		info, fetchErr = gs.fetch(clonePath, auth, logger)
		return fetchErr
	})
	if err != nil {
		return SyncInfo{}, err
	}
	return info, nil
}

// fetch pulls remote updates into an existing clone.
//
// A dirty working tree is never overwritten: the sync is skipped and the
// cached content is used as-is, with the state reported in SyncInfo. After
// a successful fetch the configured branch is checked out; checkout
// failures are logged but do not fail the fetch, so a clone with a stale
// branch configuration stays usable.
func (gs GitSource) fetch(clonePath string, auth *http.BasicAuth, logger *logging.Logger) (SyncInfo, error) {
	if logger != nil {
		logger.Info("Fetching card repository updates", "localPath", clonePath)
	}

	repo, err := git.PlainOpen(clonePath)
	if err != nil {
		return SyncInfo{}, fmt.Errorf("cannot open cached clone: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return SyncInfo{}, fmt.Errorf("cannot access working tree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return SyncInfo{}, fmt.Errorf("cannot read working tree status: %w", err)
	}
	if !status.IsClean() {
		if logger != nil {
			logger.Warn("Working tree has uncommitted changes, skipping sync", "localPath", clonePath)
		}
		return SyncInfo{Dirty: true, Message: "Local changes present, sync skipped"}, nil
	}

	origin, err := repo.Remote("origin")
	if err != nil {
		return SyncInfo{}, fmt.Errorf("no origin remote configured: %w", err)
	}

	// Force handles force-pushed branches on the remote.
	err = origin.Fetch(&git.FetchOptions{Auth: auth, Force: true})

	var info SyncInfo
	switch {
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		info = SyncInfo{Message: "Card repository already up to date"}
		if logger != nil {
			logger.Debug("Card repository already up to date")
		}
	case err != nil:
		return SyncInfo{}, fetchFailure(err)
	default:
		info = SyncInfo{Updated: true, Message: "Card repository updated"}
		if logger != nil {
			logger.Info("Card repository updated successfully")
		}
	}

	if branch := gs.branchName(); branch != "" {
		if err := ensureBranch(repo, wt, branch, logger); err != nil {
			if logger != nil {
				logger.Warn("Failed to checkout configured branch",
					"branch", branch,
					"error", err)
			}
		}
	}

	return info, nil
}

// storedAuth returns BasicAuth built from the stored PAT, or nil auth when
// no token is saved so public repositories keep working without setup.
// GitHub expects the PAT as the password with any non-empty username.
func storedAuth(logger *logging.Logger) (*http.BasicAuth, error) {
	vault := NewTokenStore()
	if !vault.HasToken() {
		return nil, nil
	}

	token, err := vault.Token()
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("Authenticating with stored GitHub token")
	}
	return &http.BasicAuth{Username: "token", Password: token}, nil
}

// withAuthFallback runs a Git operation without credentials first, retrying
// with the stored PAT only when the failure looks like an authentication
// error. Non-auth errors are returned unchanged.
func withAuthFallback(logger *logging.Logger, op func(auth *http.BasicAuth) error) error {
	err := op(nil)
	if err == nil || !isAuthError(err) {
		return err
	}

	if logger != nil {
		logger.Debug("Public access failed, trying with authentication")
	}

	auth, authErr := storedAuth(logger)
	if authErr != nil {
		return fmt.Errorf("GitHub authentication failed: %w", authErr)
	}
	if auth == nil {
		return fmt.Errorf("GitHub authentication required - add a Personal Access Token with 'fittrack auth set-token'")
	}

	return op(auth)
}

// authErrorPatterns are the substrings that mark a Git transport error as
// credential-related rather than a network or repository problem.
var authErrorPatterns = []string{
	"authentication required",
	"401",
	"unauthorized",
	"403",
	"forbidden",
}

// isAuthError reports whether err looks like an authentication failure.
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(strings.ToLower(err.Error()), authErrorPatterns...)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// cloneFailure maps technical Git clone errors to actionable messages.
func cloneFailure(err error, remoteURL string) error {
	msg := strings.ToLower(err.Error())

	switch {
	case isAuthError(err):
		if containsAny(msg, "403", "forbidden") {
			return fmt.Errorf("GitHub token lacks required permissions - ensure 'repo' scope is enabled, then run 'fittrack auth set-token'")
		}
		return fmt.Errorf("GitHub authentication failed - update your Personal Access Token with 'fittrack auth set-token'")
	case containsAny(msg, "404", "not found"):
		return fmt.Errorf("repository not found - check the URL or ensure you have access: %s", remoteURL)
	case containsAny(msg, "network", "connection", "timeout"):
		return fmt.Errorf("network failure while cloning - check your connection and retry: %w", err)
	default:
		return fmt.Errorf("clone failed: %w", err)
	}
}

// fetchFailure maps fetch errors to actionable messages. Fetch errors are
// less critical than clone errors since the cached clone keeps working
// offline.
func fetchFailure(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case isAuthError(err):
		return fmt.Errorf("GitHub token has expired or is invalid - update it with 'fittrack auth set-token'")
	case containsAny(msg, "network", "connection", "timeout"):
		return fmt.Errorf("network failure while fetching - cached card repository will be used: %w", err)
	default:
		return fmt.Errorf("fetch failed: %w", err)
	}
}

// originRemoteURL returns the origin remote URL of the repository at path.
// Returns a "not a git repository" error for non-repo content.
func originRemoteURL(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		return "", fmt.Errorf("directory is not a git repository: %s", path)
	case err != nil:
		return "", fmt.Errorf("cannot open repository: %w", err)
	}

	origin, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("no origin remote: %w", err)
	}

	cfg := origin.Config()
	if cfg == nil || len(cfg.URLs) == 0 {
		return "", fmt.Errorf("origin remote has no URLs")
	}
	return cfg.URLs[0], nil
}

// ensureBranch checks out branch, creating a local branch from origin's
// copy when none exists yet. Local changes are never discarded.
func ensureBranch(repo *git.Repository, wt *git.Worktree, branch string, logger *logging.Logger) error {
	if logger != nil {
		logger.Debug("Switching to configured branch", "branch", branch)
	}

	head, err := repo.Head()
	if err != nil && !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("cannot read HEAD: %w", err)
	}
	if head != nil && head.Name().Short() == branch {
		if logger != nil {
			logger.Debug("Branch already checked out", "branch", branch)
		}
		return nil
	}

	localRef := plumbing.NewBranchReferenceName(branch)
	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return fmt.Errorf("remote 'origin' has no branch %q", branch)
	}

	_, err = repo.Reference(localRef, true)
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		if logger != nil {
			logger.Debug("Creating local branch from origin", "branch", branch)
		}
		ref := plumbing.NewHashReference(localRef, remoteRef.Hash())
		if err := repo.Storer.SetReference(ref); err != nil {
			return fmt.Errorf("cannot create local branch: %w", err)
		}
	case err != nil:
		return fmt.Errorf("cannot read local branch ref: %w", err)
	}

	if err := wt.Checkout(&git.CheckoutOptions{Branch: localRef, Force: false}); err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	if logger != nil {
		logger.Info("Checked out branch", "branch", branch)
	}
	return nil
}
