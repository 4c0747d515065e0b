// Package submit hands a built pod manifest to the cluster.
package submit

import (
	"context"

	corev1 "k8s.io/api/core/v1"
)

// Submitter creates a pod in the cluster and returns its name when the
// implementation can learn it.
type Submitter interface {
	Submit(ctx context.Context, pod *corev1.Pod) (string, error)
}

const (
	ModeCLI = "cli"
	ModeAPI = "api"
)
