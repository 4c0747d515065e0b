package k8s

import (
	"context"
	"fmt"

	"github.com/projectatomic/papr-trigger/internal/pod"
	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// ConfigKey is the config map key papr reads as /etc/papr/config.
const ConfigKey = "config"

// Setup creates the namespace, the GitHub token secret and the papr
// config map PAPR pods expect. Existing objects are updated in place.
func (k *KubernetesBackend) Setup(ctx context.Context, s pod.Settings, githubToken string, config []byte) error {
	s = s.WithDefaults()
	k.logger.Info("setting up kubernetes backend", "namespace", k.namespace)

	if err := validateConfig(config); err != nil {
		return err
	}

	// Create namespace if it doesn't exist
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name: k.namespace,
		},
	}

	if err := k.client.Create(ctx, ns); err != nil {
		if err := k.client.Get(ctx, client.ObjectKey{Name: k.namespace}, ns); err != nil {
			return fmt.Errorf("failed to create or get namespace: %w", err)
		}
		k.logger.Info("namespace already exists", "namespace", k.namespace)
	} else {
		k.logger.Info("namespace created", "namespace", k.namespace)
	}

	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      s.TokenSecret,
			Namespace: k.namespace,
			Labels:    map[string]string{"app": pod.AppLabel},
		},
		Type:       corev1.SecretTypeOpaque,
		StringData: map[string]string{s.TokenSecretKey: githubToken},
	}

	if err := k.client.Create(ctx, secret); err != nil {
		existing := &corev1.Secret{}
		if err := k.client.Get(ctx, client.ObjectKeyFromObject(secret), existing); err != nil {
			return fmt.Errorf("failed to create or get secret: %w", err)
		}

		existing.StringData = secret.StringData
		if err := k.client.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update secret: %w", err)
		}
		k.logger.Info("secret updated", "name", secret.Name)
	} else {
		k.logger.Info("secret created", "name", secret.Name)
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      s.ConfigMap,
			Namespace: k.namespace,
			Labels:    map[string]string{"app": pod.AppLabel},
		},
		Data: map[string]string{ConfigKey: string(config)},
	}

	if err := k.client.Create(ctx, cm); err != nil {
		existing := &corev1.ConfigMap{}
		if err := k.client.Get(ctx, client.ObjectKeyFromObject(cm), existing); err != nil {
			return fmt.Errorf("failed to create or get config map: %w", err)
		}

		existing.Data = cm.Data
		if err := k.client.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update config map: %w", err)
		}
		k.logger.Info("config map updated", "name", cm.Name)
	} else {
		k.logger.Info("config map created", "name", cm.Name)
	}

	return nil
}

func validateConfig(config []byte) error {
	if len(config) == 0 {
		return fmt.Errorf("papr config is empty")
	}

	var doc interface{}
	if err := yaml.Unmarshal(config, &doc); err != nil {
		return fmt.Errorf("failed to parse papr config: %w", err)
	}

	return nil
}
