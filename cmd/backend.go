package cmd

import (
	"github.com/projectatomic/papr-trigger/internal/backend/k8s"
	"github.com/spf13/viper"
)

func newBackend() (*k8s.KubernetesBackend, error) {
	kubeconfig := viper.GetString("kubeconfig")

	namespace := viper.GetString("namespace")
	if namespace == "" {
		ns, err := k8s.CurrentNamespace(kubeconfig)
		if err != nil {
			return nil, err
		}
		namespace = ns
	}

	cfg, err := k8s.GetConfig(kubeconfig)
	if err != nil {
		return nil, err
	}

	b, err := k8s.New(cfg, namespace, GetLogger())
	if err != nil {
		return nil, err
	}

	if d := viper.GetDuration("poll-interval"); d > 0 {
		b.PollInterval = d
	}
	if d := viper.GetDuration("wait-timeout"); d > 0 {
		b.WaitTimeout = d
	}

	return b, nil
}
