package deploy

import (
	"os"
	"strings"
)

// Environment variables read by EnvFromOS. GIT_PASS is not read: the target is
// only resolved and printed, never pushed.
const (
	EnvGitUser          = "GIT_USER"
	EnvUseSSH           = "USE_SSH"
	EnvDeploymentBranch = "DEPLOYMENT_BRANCH"
	EnvOrganizationName = "ORGANIZATION_NAME"
	EnvProjectName      = "PROJECT_NAME"
	EnvGitHubHost       = "GITHUB_HOST"
)

// Env holds the deployment settings taken from the process environment.
type Env struct {
	GitUser          string
	UseSSH           bool
	DeploymentBranch string
	OrganizationName string
	ProjectName      string
	GitHubHost       string
}

// EnvFromOS reads Env from the process environment.
func EnvFromOS() Env {
	return Env{
		GitUser:          os.Getenv(EnvGitUser),
		UseSSH:           strings.EqualFold(strings.TrimSpace(os.Getenv(EnvUseSSH)), "true"),
		DeploymentBranch: os.Getenv(EnvDeploymentBranch),
		OrganizationName: os.Getenv(EnvOrganizationName),
		ProjectName:      os.Getenv(EnvProjectName),
		GitHubHost:       os.Getenv(EnvGitHubHost),
	}
}
