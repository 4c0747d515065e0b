// Package k8s talks to the cluster API directly to create and follow
// PAPR pods.
package k8s

import (
	"fmt"
	"log/slog"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultWaitTimeout  = 2 * time.Hour
)

type KubernetesBackend struct {
	namespace string
	logger    *slog.Logger
	client    client.Client
	clientset kubernetes.Interface

	PollInterval time.Duration
	WaitTimeout  time.Duration
}

func New(cfg *rest.Config, namespace string, logger *slog.Logger) (*KubernetesBackend, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	return NewWithClients(c, clientset, namespace, logger), nil
}

// NewWithClients wires an existing client and clientset, e.g. fakes.
func NewWithClients(c client.Client, clientset kubernetes.Interface, namespace string, logger *slog.Logger) *KubernetesBackend {
	return &KubernetesBackend{
		namespace:    namespace,
		logger:       logger,
		client:       c,
		clientset:    clientset,
		PollInterval: DefaultPollInterval,
		WaitTimeout:  DefaultWaitTimeout,
	}
}

func (k *KubernetesBackend) Namespace() string {
	return k.namespace
}
