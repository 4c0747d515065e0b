package k8s

import (
	"context"
	"testing"

	"github.com/projectatomic/papr-trigger/internal/pod"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const testConfig = `
default:
  context: ci
  cluster:
    hosts:
      - distro: fedora/28/atomic
`

func TestSetup(t *testing.T) {
	k, c := newFakeBackend()
	ctx := context.Background()

	if err := k.Setup(ctx, pod.DefaultSettings(), "token-1", []byte(testConfig)); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	ns := &corev1.Namespace{}
	if err := c.Get(ctx, client.ObjectKey{Name: "papr"}, ns); err != nil {
		t.Fatalf("namespace not created: %v", err)
	}

	secret := &corev1.Secret{}
	if err := c.Get(ctx, client.ObjectKey{Namespace: "papr", Name: "github-token"}, secret); err != nil {
		t.Fatalf("secret not created: %v", err)
	}
	if got := secretToken(secret); got != "token-1" {
		t.Errorf("unexpected secret token %q", got)
	}

	cm := &corev1.ConfigMap{}
	if err := c.Get(ctx, client.ObjectKey{Namespace: "papr", Name: "papr-config"}, cm); err != nil {
		t.Fatalf("config map not created: %v", err)
	}
	if cm.Data[ConfigKey] != testConfig {
		t.Errorf("unexpected config map data %v", cm.Data)
	}

	// a second run updates in place
	if err := k.Setup(ctx, pod.DefaultSettings(), "token-2", []byte("context: other\n")); err != nil {
		t.Fatalf("second Setup failed: %v", err)
	}

	if err := c.Get(ctx, client.ObjectKeyFromObject(secret), secret); err != nil {
		t.Fatal(err)
	}
	if got := secretToken(secret); got != "token-2" {
		t.Errorf("secret not updated, token %q", got)
	}

	if err := c.Get(ctx, client.ObjectKeyFromObject(cm), cm); err != nil {
		t.Fatal(err)
	}
	if cm.Data[ConfigKey] != "context: other\n" {
		t.Errorf("config map not updated: %v", cm.Data)
	}
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	k, _ := newFakeBackend()

	for _, config := range []string{"", "key: [unterminated"} {
		if err := k.Setup(context.Background(), pod.DefaultSettings(), "token", []byte(config)); err == nil {
			t.Errorf("expected error for config %q", config)
		}
	}
}

// secretToken reads the token whether or not the client folded
// StringData into Data.
func secretToken(s *corev1.Secret) string {
	if v, ok := s.StringData["token"]; ok {
		return v
	}
	return string(s.Data["token"])
}
