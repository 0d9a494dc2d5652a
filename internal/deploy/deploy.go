// Package deploy resolves where the built site is published on GitHub Pages
// and checks that the local repository is in a state to publish from.
package deploy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/Rafailong/clojure-journal/internal/config"
	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

const (
	DefaultGitHubHost = "github.com"
	DefaultBranch     = "gh-pages"
	// UserSiteBranch is used for <org>.github.io repositories, which GitHub
	// serves from their default branch.
	UserSiteBranch = "master"
	RemoteName     = "origin"
)

// Branch locations reported by Target.BranchLocation.
const (
	BranchLocal  = "local"
	BranchRemote = "origin"
)

// Target is a resolved deployment target. It never carries GIT_PASS.
type Target struct {
	Organization string `json:"organizationName" yaml:"organizationName"`
	Project      string `json:"projectName" yaml:"projectName"`
	Branch       string `json:"deploymentBranch" yaml:"deploymentBranch"`
	RemoteURL    string `json:"remoteUrl" yaml:"remoteUrl"`
	UseSSH       bool   `json:"useSsh" yaml:"useSsh"`
	Host         string `json:"pagesHost" yaml:"pagesHost"`
	PagesURL     string `json:"pagesUrl" yaml:"pagesUrl"`

	// Filled by Inspect.
	SourceBranch   string `json:"sourceBranch,omitempty" yaml:"sourceBranch,omitempty"`
	BranchExists   bool   `json:"branchExists" yaml:"branchExists"`
	BranchLocation string `json:"branchLocation,omitempty" yaml:"branchLocation,omitempty"`
}

// Resolve computes the deployment target from the configuration and the
// environment. Environment values take precedence over the configuration.
func Resolve(cfg *config.Config, env Env) (*Target, error) {
	org := firstNonEmpty(env.OrganizationName, cfg.OrganizationName)
	if org == "" {
		return nil, ferrors.SchemaViolation("organizationName is required for deployment").
			WithContext("field", "organizationName").
			Build()
	}
	project := firstNonEmpty(env.ProjectName, cfg.ProjectName)
	if project == "" {
		return nil, ferrors.SchemaViolation("projectName is required for deployment").
			WithContext("field", "projectName").
			Build()
	}
	if !env.UseSSH && env.GitUser == "" {
		return nil, ferrors.ValidationError("set the GIT_USER environment variable, or USE_SSH=true").
			WithContext("env", EnvGitUser).
			Build()
	}

	host := strings.ToLower(org) + ".github.io"
	userSite := strings.EqualFold(project, host)
	branch := firstNonEmpty(env.DeploymentBranch, cfg.DeploymentBranch)
	if branch == "" {
		branch = DefaultBranch
		if userSite {
			branch = UserSiteBranch
		}
	}

	gh := firstNonEmpty(env.GitHubHost, DefaultGitHubHost)
	t := &Target{
		Organization: org,
		Project:      project,
		Branch:       branch,
		UseSSH:       env.UseSSH,
		Host:         host,
		PagesURL:     "https://" + host + "/" + project + "/",
	}
	if userSite {
		t.PagesURL = "https://" + host + "/"
	}
	if env.UseSSH {
		t.RemoteURL = fmt.Sprintf("git@%s:%s/%s.git", gh, org, project)
	} else {
		t.RemoteURL = fmt.Sprintf("https://%s@%s/%s/%s.git", env.GitUser, gh, org, project)
	}
	return t, nil
}

// Inspect opens the git repository containing dir and records the current
// branch and where the deployment branch exists. Deploying from the
// deployment branch itself is rejected.
func Inspect(dir string, t *Target) error {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ferrors.GitError("failed to open git repository").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Unborn branch: read the symbolic HEAD.
		ref, rerr := repo.Storer.Reference(plumbing.HEAD)
		if rerr != nil {
			return ferrors.GitError("failed to read HEAD").WithCause(rerr).Build()
		}
		t.SourceBranch = ref.Target().Short()
	case err != nil:
		return ferrors.GitError("failed to read HEAD").WithCause(err).Build()
	case !head.Name().IsBranch():
		return ferrors.GitError("HEAD is detached; check out a branch to deploy from").
			WithContext("head", head.Hash().String()).
			Build()
	default:
		t.SourceBranch = head.Name().Short()
	}

	if t.SourceBranch == t.Branch {
		return ferrors.ValidationError("cannot deploy from the deployment branch").
			WithContext("branch", t.Branch).
			Build()
	}

	t.BranchExists, t.BranchLocation = false, ""
	if _, err := repo.Reference(plumbing.NewBranchReferenceName(t.Branch), true); err == nil {
		t.BranchExists, t.BranchLocation = true, BranchLocal
	} else if _, err := repo.Reference(plumbing.NewRemoteReferenceName(RemoteName, t.Branch), true); err == nil {
		t.BranchExists, t.BranchLocation = true, BranchRemote
	}
	return nil
}

// Plan resolves the target and inspects the repository at dir.
func Plan(dir string, cfg *config.Config, env Env) (*Target, error) {
	t, err := Resolve(cfg, env)
	if err != nil {
		return nil, err
	}
	if err := Inspect(dir, t); err != nil {
		return nil, err
	}
	return t, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
