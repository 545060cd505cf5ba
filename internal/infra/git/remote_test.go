package git

import (
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-triage/internal/domain"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want domain.RepoRef
	}{
		{"https", "https://github.com/acme/widgets.git", domain.RepoRef{Owner: "acme", Repo: "widgets"}},
		{"https without suffix", "https://github.com/acme/widgets", domain.RepoRef{Owner: "acme", Repo: "widgets"}},
		{"https trailing slash", "https://github.com/acme/widgets/", domain.RepoRef{Owner: "acme", Repo: "widgets"}},
		{"ssh url", "ssh://git@github.com/acme/widgets.git", domain.RepoRef{Owner: "acme", Repo: "widgets"}},
		{"scp-like", "git@github.com:acme/widgets.git", domain.RepoRef{Owner: "acme", Repo: "widgets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemoteURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRemoteURL_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"/local/path/repo",
		"https://github.com/acme",
		"https://example.com/group/sub/repo.git",
	} {
		_, err := ParseRemoteURL(raw)
		assert.ErrorIs(t, err, domain.ErrRepoNotDetected, raw)
	}
}

func TestDetector_DetectRepo(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:acme/widgets.git"},
	})
	require.NoError(t, err)

	got, err := NewDetector("").DetectRepo(dir)

	require.NoError(t, err)
	assert.Equal(t, domain.RepoRef{Owner: "acme", Repo: "widgets"}, got)
}

func TestDetector_DetectRepo_NoRemote(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = NewDetector("upstream").DetectRepo(dir)

	assert.ErrorIs(t, err, domain.ErrRepoNotDetected)
}

func TestDetector_DetectRepo_NotARepository(t *testing.T) {
	_, err := NewDetector("").DetectRepo(t.TempDir())

	assert.ErrorIs(t, err, domain.ErrRepoNotDetected)
}
