package request

import (
	"errors"
	"fmt"
	"strings"
)

const suiteSeparator = "|"

var (
	ErrMissingRepo       = errors.New("--repo is required")
	ErrInvalidRepo       = errors.New("repo must be in OWNER/REPO form")
	ErrMissingTarget     = errors.New("one of --branch or --pull is required")
	ErrConflictingTarget = errors.New("--branch and --pull are mutually exclusive")
)

// New builds a validated TriggerRequest from raw flag values.
func New(repo, branch, pull, expectedSHA1, suites string) (*TriggerRequest, error) {
	r := &TriggerRequest{
		Repo:         repo,
		Branch:       branch,
		Pull:         pull,
		ExpectedSHA1: expectedSHA1,
		Suites:       ParseSuites(suites),
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trigger request: %w", err)
	}

	return r, nil
}

// ParseSuites splits a pipe-separated list of testsuite contexts.
// An empty string yields no suites.
func ParseSuites(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, suiteSeparator)
}

func (r *TriggerRequest) Validate() error {
	if r.Repo == "" {
		return ErrMissingRepo
	}

	if !strings.Contains(r.Repo, "/") {
		return fmt.Errorf("%w, got '%s'", ErrInvalidRepo, r.Repo)
	}

	switch {
	case r.Branch != "" && r.Pull != "":
		return ErrConflictingTarget
	case r.Branch == "" && r.Pull == "":
		return ErrMissingTarget
	}

	return nil
}
