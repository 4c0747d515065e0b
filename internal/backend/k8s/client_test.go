package k8s

import (
	"os"
	"path/filepath"
	"testing"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: ci
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: ci
  context:
    cluster: ci
    namespace: projectatomic-ci
current-context: ci
`

func TestGetConfigWithKubeconfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	if err := os.WriteFile(path, []byte(testKubeconfig), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := GetConfig(path)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.Host != "https://127.0.0.1:6443" {
		t.Errorf("unexpected host %s", cfg.Host)
	}

	ns, err := CurrentNamespace(path)
	if err != nil {
		t.Fatalf("CurrentNamespace failed: %v", err)
	}
	if ns != "projectatomic-ci" {
		t.Errorf("expected namespace from context, got %s", ns)
	}
}
