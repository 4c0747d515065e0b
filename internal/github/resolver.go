// Package github looks up the commit a trigger should be pinned to.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/go-github/v58/github"
	"github.com/projectatomic/papr-trigger/internal/request"
	"golang.org/x/oauth2"
)

type Resolver struct {
	logger *slog.Logger
	client *github.Client
}

// New returns a Resolver authenticated with token. An empty token makes
// unauthenticated requests, which are heavily rate limited.
func New(ctx context.Context, token string, logger *slog.Logger) *Resolver {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(ctx, ts)
	} else {
		logger.Warn("no GitHub token configured, using unauthenticated requests")
	}

	return NewWithClient(github.NewClient(hc), logger)
}

func NewWithClient(client *github.Client, logger *slog.Logger) *Resolver {
	return &Resolver{
		logger: logger,
		client: client,
	}
}

// HeadSHA returns the commit currently at the head of the branch or pull
// request r targets.
func (g *Resolver) HeadSHA(ctx context.Context, r *request.TriggerRequest) (string, error) {
	owner, repo := r.Owner(), r.RepoName()

	if r.IsPull() {
		number, err := strconv.Atoi(r.Pull)
		if err != nil {
			return "", fmt.Errorf("invalid pull request ID '%s': %w", r.Pull, err)
		}

		pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
		if err != nil {
			return "", fmt.Errorf("failed to get pull request %s#%d: %w", r.Repo, number, err)
		}

		sha := pr.GetHead().GetSHA()
		if sha == "" {
			return "", fmt.Errorf("pull request %s#%d has no head commit", r.Repo, number)
		}
		g.logger.Debug("resolved pull request head", "repo", r.Repo, "pull", number, "sha", sha)
		return sha, nil
	}

	branch, _, err := g.client.Repositories.GetBranch(ctx, owner, repo, r.Branch, 1)
	if err != nil {
		return "", fmt.Errorf("failed to get branch %s:%s: %w", r.Repo, r.Branch, err)
	}

	sha := branch.GetCommit().GetSHA()
	if sha == "" {
		return "", fmt.Errorf("branch %s:%s has no head commit", r.Repo, r.Branch)
	}
	g.logger.Debug("resolved branch head", "repo", r.Repo, "branch", r.Branch, "sha", sha)
	return sha, nil
}

// Pin fills in ExpectedSHA1 from the current head unless it is already set.
func (g *Resolver) Pin(ctx context.Context, r *request.TriggerRequest) error {
	if r.ExpectedSHA1 != "" {
		return nil
	}

	sha, err := g.HeadSHA(ctx, r)
	if err != nil {
		return err
	}

	g.logger.Info("pinning head commit", "repo", r.Repo, "target", r.TargetName(), "sha", sha)
	r.ExpectedSHA1 = sha
	return nil
}
