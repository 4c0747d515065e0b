package request

import "strings"

// TriggerRequest describes one test run to schedule for a repository.
type TriggerRequest struct {
	Repo         string   // GitHub repository in owner/name form
	Branch       string   // Branch to test, mutually exclusive with Pull
	Pull         string   // Pull request ID to test, mutually exclusive with Branch
	ExpectedSHA1 string   // Commit the checkout is pinned to (optional)
	Suites       []string // Testsuite contexts to run, in order (optional)
}

// RepoName returns the repository name without its owner.
func (r *TriggerRequest) RepoName() string {
	_, name, _ := strings.Cut(r.Repo, "/")
	return name
}

// Owner returns the repository owner.
func (r *TriggerRequest) Owner() string {
	owner, _, _ := strings.Cut(r.Repo, "/")
	return owner
}

// TargetName is the branch when set, otherwise the pull request ID.
func (r *TriggerRequest) TargetName() string {
	if r.Branch != "" {
		return r.Branch
	}
	return r.Pull
}

// IsPull reports whether the request targets a pull request.
func (r *TriggerRequest) IsPull() bool {
	return r.Branch == "" && r.Pull != ""
}
