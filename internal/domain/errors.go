package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrConfig          = errors.New("invalid orchestrator config")
	ErrConfigNotFound  = errors.New("configuration file not found")
	ErrAuth            = errors.New("missing or invalid issue tracker credentials")
	ErrInvalidRepoRef  = errors.New("repository must be in owner/repo form")
	ErrRepoNotDetected = errors.New("could not determine repository (set GITHUB_REPOSITORY or --repo)")
)

// TrackerError wraps a failure from the issue tracker with the operation
// and the repository/issue it targeted.
type TrackerError struct {
	Err   error
	Op    string
	Repo  RepoRef
	Issue int // 0 when the call is not issue-scoped
}

func (e *TrackerError) Error() string {
	if e.Issue > 0 {
		return fmt.Sprintf("%s %s#%d: %v", e.Op, e.Repo, e.Issue, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Repo, e.Err)
}

func (e *TrackerError) Unwrap() error {
	return e.Err
}
