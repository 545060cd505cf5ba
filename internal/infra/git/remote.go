// Package git resolves repository identity from local git metadata.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/runoshun/git-triage/internal/domain"
)

// DefaultRemote is the remote inspected for the repository identity.
const DefaultRemote = "origin"

// Ensure Detector implements domain.RepoDetector.
var _ domain.RepoDetector = (*Detector)(nil)

// Detector reads owner/repo from a remote URL.
type Detector struct {
	remote string
}

// NewDetector creates a Detector for the named remote.
// An empty name selects DefaultRemote.
func NewDetector(remote string) *Detector {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Detector{remote: remote}
}

// DetectRepo opens the repository containing dir and parses its remote URL.
func (d *Detector) DetectRepo(dir string) (domain.RepoRef, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return domain.RepoRef{}, fmt.Errorf("%w: open git repository: %w", domain.ErrRepoNotDetected, err)
	}

	remote, err := repo.Remote(d.remote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return domain.RepoRef{}, fmt.Errorf("%w: remote %q not found", domain.ErrRepoNotDetected, d.remote)
		}
		return domain.RepoRef{}, fmt.Errorf("%w: %w", domain.ErrRepoNotDetected, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return domain.RepoRef{}, fmt.Errorf("%w: remote %q has no URL", domain.ErrRepoNotDetected, d.remote)
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner/repo from a remote URL.
// Supported forms:
//
//	https://github.com/owner/repo(.git)
//	ssh://git@github.com/owner/repo(.git)
//	git@github.com:owner/repo(.git)
func ParseRemoteURL(raw string) (domain.RepoRef, error) {
	raw = strings.TrimSpace(raw)
	var path string

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return domain.RepoRef{}, fmt.Errorf("%w: %q: %w", domain.ErrRepoNotDetected, raw, err)
		}
		path = u.Path
	} else if _, after, ok := strings.Cut(raw, ":"); ok && strings.Contains(raw, "@") {
		// scp-like syntax
		path = after
	} else {
		return domain.RepoRef{}, fmt.Errorf("%w: unsupported remote URL %q", domain.ErrRepoNotDetected, raw)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	ref, err := domain.ParseRepoRef(path)
	if err != nil {
		return domain.RepoRef{}, fmt.Errorf("%w: remote URL %q: %w", domain.ErrRepoNotDetected, raw, err)
	}
	return ref, nil
}
