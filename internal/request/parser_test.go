package request

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSuites(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "f28", want: []string{"f28"}},
		{name: "order preserved", input: "x|y|a", want: []string{"x", "y", "a"}},
		{name: "duplicates kept", input: "x|x", want: []string{"x", "x"}},
		{name: "context with spaces", input: "ci/centos/7 | fedora", want: []string{"ci/centos/7 ", " fedora"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSuites(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSuites(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		branch  string
		pull    string
		wantErr error
	}{
		{name: "branch", repo: "jlebon/papr-sandbox", branch: "tmp"},
		{name: "pull", repo: "a/b", pull: "42"},
		{name: "missing repo", branch: "tmp", wantErr: ErrMissingRepo},
		{name: "repo without owner", repo: "papr", branch: "tmp", wantErr: ErrInvalidRepo},
		{name: "neither target", repo: "a/b", wantErr: ErrMissingTarget},
		{name: "both targets", repo: "a/b", branch: "main", pull: "1", wantErr: ErrConflictingTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.repo, tt.branch, tt.pull, "", "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if r != nil {
					t.Errorf("expected nil request on error, got %+v", r)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Repo != tt.repo {
				t.Errorf("expected repo %s, got %s", tt.repo, r.Repo)
			}
		})
	}
}

func TestNames(t *testing.T) {
	r := &TriggerRequest{Repo: "projectatomic/rpm-ostree/extra", Pull: "1234"}

	if got := r.RepoName(); got != "rpm-ostree/extra" {
		t.Errorf("RepoName() = %s, want everything after the first slash", got)
	}
	if got := r.Owner(); got != "projectatomic" {
		t.Errorf("Owner() = %s", got)
	}
	if got := r.TargetName(); got != "1234" {
		t.Errorf("TargetName() = %s, want pull ID", got)
	}
	if !r.IsPull() {
		t.Error("expected pull request target")
	}

	r = &TriggerRequest{Repo: "a/b", Branch: "master"}
	if got := r.TargetName(); got != "master" {
		t.Errorf("TargetName() = %s, want branch", got)
	}
	if r.IsPull() {
		t.Error("expected branch target")
	}
}
