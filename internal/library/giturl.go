package library

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// repoURLParts is the decomposition of a Git remote URL into the pieces
// the card source machinery cares about.
type repoURLParts struct {
	Host  string
	Owner string
	Name  string
}

var (
	// git@github.com:owner/repo.git
	sshRemotePattern = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	// git@github.com:anything, for URL comparison only
	sshHostPattern = regexp.MustCompile(`^git@([^:]+):(.+)$`)
)

// parseRepoURL splits a Git remote URL into host, owner, and repository
// name. SSH and HTTP(S) forms are accepted; the .git suffix is optional.
func parseRepoURL(raw string) (repoURLParts, error) {
	raw = strings.TrimSpace(raw)

	if m := sshRemotePattern.FindStringSubmatch(raw); m != nil {
		return repoURLParts{Host: m[1], Owner: m[2], Name: m[3]}, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return repoURLParts{}, fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Host == "" {
		return repoURLParts{}, fmt.Errorf("URL missing host component")
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return repoURLParts{}, fmt.Errorf("URL path should contain owner/repo: %s", parsed.Path)
	}

	owner, name := segments[0], strings.TrimSuffix(segments[1], ".git")
	if owner == "" || name == "" {
		return repoURLParts{}, fmt.Errorf("could not extract owner/repo from URL path: %s", parsed.Path)
	}

	return repoURLParts{Host: parsed.Host, Owner: owner, Name: name}, nil
}

// comparableRepoURL reduces a remote URL to host/owner/repo form so the
// SSH and HTTPS spellings of the same repository compare equal.
func comparableRepoURL(raw string) string {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	if m := sshHostPattern.FindStringSubmatch(raw); m != nil {
		return m[1] + "/" + m[2]
	}
	if after, ok := strings.CutPrefix(raw, "https://"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(raw, "http://"); ok {
		return after
	}
	return raw
}
