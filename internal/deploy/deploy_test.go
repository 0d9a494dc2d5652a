package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafailong/clojure-journal/internal/config"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

func exampleConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(config.ExampleDocument), nil)
	require.NoError(t, err)
	return cfg
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		edit func(*config.Config)
		want Target
	}{
		{
			name: "https with git user",
			env:  Env{GitUser: "rafailong"},
			want: Target{
				Organization: "Rafailong",
				Project:      "clojure-journal",
				Branch:       "deployment",
				RemoteURL:    "https://rafailong@github.com/Rafailong/clojure-journal.git",
				Host:         "rafailong.github.io",
				PagesURL:     "https://rafailong.github.io/clojure-journal/",
			},
		},
		{
			name: "ssh",
			env:  Env{UseSSH: true},
			want: Target{
				Organization: "Rafailong",
				Project:      "clojure-journal",
				Branch:       "deployment",
				RemoteURL:    "git@github.com:Rafailong/clojure-journal.git",
				UseSSH:       true,
				Host:         "rafailong.github.io",
				PagesURL:     "https://rafailong.github.io/clojure-journal/",
			},
		},
		{
			name: "environment overrides",
			env:  Env{UseSSH: true, DeploymentBranch: "pages", OrganizationName: "acme", ProjectName: "docs", GitHubHost: "ghe.example.com"},
			want: Target{
				Organization: "acme",
				Project:      "docs",
				Branch:       "pages",
				RemoteURL:    "git@ghe.example.com:acme/docs.git",
				UseSSH:       true,
				Host:         "acme.github.io",
				PagesURL:     "https://acme.github.io/docs/",
			},
		},
		{
			name: "default branch",
			env:  Env{GitUser: "u"},
			edit: func(c *config.Config) { c.DeploymentBranch = "" },
			want: Target{
				Organization: "Rafailong",
				Project:      "clojure-journal",
				Branch:       DefaultBranch,
				RemoteURL:    "https://u@github.com/Rafailong/clojure-journal.git",
				Host:         "rafailong.github.io",
				PagesURL:     "https://rafailong.github.io/clojure-journal/",
			},
		},
		{
			name: "user site",
			env:  Env{GitUser: "u"},
			edit: func(c *config.Config) {
				c.DeploymentBranch = ""
				c.ProjectName = "rafailong.github.io"
			},
			want: Target{
				Organization: "Rafailong",
				Project:      "rafailong.github.io",
				Branch:       UserSiteBranch,
				RemoteURL:    "https://u@github.com/Rafailong/rafailong.github.io.git",
				Host:         "rafailong.github.io",
				PagesURL:     "https://rafailong.github.io/",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := exampleConfig(t)
			if tt.edit != nil {
				tt.edit(cfg)
			}
			got, err := Resolve(cfg, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		env      Env
		edit     func(*config.Config)
		category ferrors.ErrorCategory
	}{
		{"missing organization", Env{UseSSH: true}, func(c *config.Config) { c.OrganizationName = "" }, ferrors.CategoryConfig},
		{"missing project", Env{UseSSH: true}, func(c *config.Config) { c.ProjectName = "" }, ferrors.CategoryConfig},
		{"missing git user", Env{}, nil, ferrors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := exampleConfig(t)
			if tt.edit != nil {
				tt.edit(cfg)
			}
			_, err := Resolve(cfg, tt.env)
			require.Error(t, err)
			assert.Equal(t, tt.category, ferrors.GetCategory(err))
		})
	}
}

func TestResolveNeverExposesPassword(t *testing.T) {
	for _, name := range []string{EnvUseSSH, EnvDeploymentBranch, EnvOrganizationName, EnvProjectName, EnvGitHubHost} {
		t.Setenv(name, "")
	}
	t.Setenv(EnvGitUser, "u")
	t.Setenv("GIT_PASS", "s3cret")
	got, err := Resolve(exampleConfig(t), EnvFromOS())
	require.NoError(t, err)
	assert.NotContains(t, got.RemoteURL, "s3cret")
	assert.NotContains(t, fmt.Sprintf("%+v", got), "s3cret")
}

func TestEnvFromOS(t *testing.T) {
	t.Setenv(EnvGitUser, "rafa")
	t.Setenv(EnvUseSSH, "TRUE")
	t.Setenv(EnvDeploymentBranch, "deployment")
	t.Setenv(EnvOrganizationName, "")
	t.Setenv(EnvProjectName, "")
	t.Setenv(EnvGitHubHost, "")

	env := EnvFromOS()
	assert.Equal(t, "rafa", env.GitUser)
	assert.True(t, env.UseSSH)
	assert.Equal(t, "deployment", env.DeploymentBranch)
}

func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# journal\n"), 0o600))
	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add("README.md")
	require.NoError(t, err)
	hash, err := w.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, repo, hash
}

func sourceBranch(t *testing.T, repo *git.Repository) string {
	t.Helper()
	head, err := repo.Head()
	require.NoError(t, err)
	return head.Name().Short()
}

func TestInspectBranchLocations(t *testing.T) {
	dir, repo, hash := initRepo(t)
	current := sourceBranch(t, repo)

	target := &Target{Branch: "deployment"}
	require.NoError(t, Inspect(dir, target))
	assert.Equal(t, current, target.SourceBranch)
	assert.False(t, target.BranchExists)
	assert.Empty(t, target.BranchLocation)

	remoteRef := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(RemoteName, "deployment"), hash)
	require.NoError(t, repo.Storer.SetReference(remoteRef))
	require.NoError(t, Inspect(dir, target))
	assert.True(t, target.BranchExists)
	assert.Equal(t, BranchRemote, target.BranchLocation)

	localRef := plumbing.NewHashReference(plumbing.NewBranchReferenceName("deployment"), hash)
	require.NoError(t, repo.Storer.SetReference(localRef))
	require.NoError(t, Inspect(dir, target))
	assert.Equal(t, BranchLocal, target.BranchLocation)
}

func TestInspectFromSubdirectory(t *testing.T) {
	dir, repo, _ := initRepo(t)
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	target := &Target{Branch: "deployment"}
	require.NoError(t, Inspect(sub, target))
	assert.Equal(t, sourceBranch(t, repo), target.SourceBranch)
}

func TestInspectRejectsDeploymentBranch(t *testing.T) {
	dir, repo, _ := initRepo(t)
	w, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, w.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName("deployment"), Create: true}))

	err = Inspect(dir, &Target{Branch: "deployment"})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryValidation, ferrors.GetCategory(err))
}

func TestInspectUnbornBranch(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	target := &Target{Branch: "deployment"}
	require.NoError(t, Inspect(dir, target))
	assert.NotEmpty(t, target.SourceBranch)
	assert.False(t, target.BranchExists)
}

func TestInspectNotARepository(t *testing.T) {
	err := Inspect(t.TempDir(), &Target{Branch: "deployment"})
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryGit, ferrors.GetCategory(err))
}

func TestPlan(t *testing.T) {
	dir, _, _ := initRepo(t)
	target, err := Plan(dir, exampleConfig(t), Env{UseSSH: true})
	require.NoError(t, err)
	assert.Equal(t, "deployment", target.Branch)
	assert.NotEmpty(t, target.SourceBranch)
}
