// Package testutil starts envtest control planes for integration suites.
package testutil

import (
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/envtest"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const (
	Timeout         = 30 * time.Second
	PollingInterval = 3 * time.Second
)

func init() {
	gomega.SetDefaultEventuallyTimeout(Timeout)
	gomega.SetDefaultEventuallyPollingInterval(PollingInterval)
}

// Available reports whether an envtest control plane can be started.
func Available() bool {
	return os.Getenv("KUBEBUILDER_ASSETS") != "" || useExistingCluster()
}

func useExistingCluster() bool {
	return os.Getenv("CI_USE_EXISTING_CLUSTER") == "true"
}

func NewEnvTest() *envtest.Environment {
	if os.Getenv("CI_SILENCE_CTRL") != "" {
		ctrl.SetLogger(logr.New(log.NullLogSink{}))
	} else {
		ctrl.SetLogger(zap.New(zap.WriteTo(ginkgo.GinkgoWriter), zap.UseDevMode(true)))
	}

	existing := useExistingCluster()
	return &envtest.Environment{
		UseExistingCluster: &existing,
	}
}

func StartTestEnv(testEnv *envtest.Environment) (*rest.Config, error) {
	cfg, err := testEnv.Start()
	if err != nil {
		return nil, err
	}

	if config := os.Getenv("CI_KUBECONFIG"); config != "" {
		err = WriteKubeConfig(cfg, config)
	}

	return cfg, err
}

// WriteKubeConfig stores cfg as a single-context kubeconfig at path.
func WriteKubeConfig(cfg *rest.Config, path string) error {
	kubeconfig := clientcmdapi.NewConfig()
	kubeconfig.Clusters["envtest"] = &clientcmdapi.Cluster{
		Server:                   cfg.Host,
		CertificateAuthorityData: cfg.CAData,
	}
	kubeconfig.AuthInfos["envtest"] = &clientcmdapi.AuthInfo{
		ClientCertificateData: cfg.CertData,
		ClientKeyData:         cfg.KeyData,
		Token:                 cfg.BearerToken,
	}
	kubeconfig.Contexts["envtest"] = &clientcmdapi.Context{
		Cluster:  "envtest",
		AuthInfo: "envtest",
	}
	kubeconfig.CurrentContext = "envtest"

	return clientcmd.WriteToFile(*kubeconfig, path)
}

// NewNamespaceName returns a unique namespace name for one test.
func NewNamespaceName() string {
	return "papr-test-" + uuid.NewString()[:8]
}
