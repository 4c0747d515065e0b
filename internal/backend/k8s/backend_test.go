package k8s_test

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/projectatomic/papr-trigger/internal/backend/k8s"
	"github.com/projectatomic/papr-trigger/internal/pod"
	"github.com/projectatomic/papr-trigger/internal/request"
	"github.com/projectatomic/papr-trigger/internal/testutil"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

var _ = Describe("Backend", func() {
	var b *k8s.KubernetesBackend

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		namespace = testutil.NewNamespaceName()

		DeferCleanup(func() {
			Expect(k8sClient.Delete(ctx, &corev1.Namespace{
				ObjectMeta: metav1.ObjectMeta{
					Name: namespace,
				},
			})).ToNot(HaveOccurred())
		})

		cfg, err := k8s.GetConfig(kubeconfigPath)
		Expect(err).NotTo(HaveOccurred())

		b, err = k8s.New(cfg, namespace, logger)
		Expect(err).NotTo(HaveOccurred())

		err = b.Setup(ctx, pod.DefaultSettings(), "test-github-token", []byte("context: ci\n"))
		Expect(err).NotTo(HaveOccurred())
	})

	When("Setup", func() {
		It("creates the token secret and the config map", func() {
			secret := &corev1.Secret{}
			Expect(k8sClient.Get(ctx, client.ObjectKey{Namespace: namespace, Name: "github-token"}, secret)).To(Succeed())
			Expect(string(secret.Data["token"])).To(Equal("test-github-token"))

			cm := &corev1.ConfigMap{}
			Expect(k8sClient.Get(ctx, client.ObjectKey{Namespace: namespace, Name: "papr-config"}, cm)).To(Succeed())
			Expect(cm.Data).To(HaveKeyWithValue(k8s.ConfigKey, "context: ci\n"))
		})

		It("is idempotent", func() {
			err := b.Setup(ctx, pod.DefaultSettings(), "rotated-token", []byte("context: ci\n"))
			Expect(err).NotTo(HaveOccurred())

			secret := &corev1.Secret{}
			Expect(k8sClient.Get(ctx, client.ObjectKey{Namespace: namespace, Name: "github-token"}, secret)).To(Succeed())
			Expect(string(secret.Data["token"])).To(Equal("rotated-token"))
		})
	})

	When("Submit", func() {
		It("creates a pod with a generated name", func() {
			r := &request.TriggerRequest{Repo: "jlebon/papr-sandbox", Branch: "tmp", Suites: []string{"x", "y"}}

			name, err := b.Submit(ctx, pod.Build(r, pod.DefaultSettings()))
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(HavePrefix("papr-papr-sandbox-tmp-"))

			podList := &corev1.PodList{}
			Expect(k8sClient.List(ctx, podList, client.InNamespace(namespace), client.MatchingLabels{"app": "papr"})).To(Succeed())
			Expect(podList.Items).To(HaveLen(1))

			created := podList.Items[0]
			Expect(created.Spec.RestartPolicy).To(Equal(corev1.RestartPolicyNever))
			Expect(created.Spec.Containers[0].Args).To(HaveExactElements(
				"papr", "--debug", "runtest", "--conf", "/etc/papr/config",
				"--repo", "jlebon/papr-sandbox", "--branch", "tmp",
				"--suite", "x", "--suite", "y",
			))
		})

		It("reports pending pods", func() {
			r := &request.TriggerRequest{Repo: "a/b", Pull: "42"}

			name, err := b.Submit(ctx, pod.Build(r, pod.DefaultSettings()))
			Expect(err).NotTo(HaveOccurred())

			phase, err := b.GetPodStatus(ctx, name)
			Expect(err).NotTo(HaveOccurred())
			Expect(phase).To(Equal(corev1.PodPending))
		})
	})
})
