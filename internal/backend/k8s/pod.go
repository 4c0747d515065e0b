package k8s

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

var ErrPodFailed = errors.New("pod failed")

// Submit creates p in the backend namespace and returns the name the
// cluster generated for it.
func (k *KubernetesBackend) Submit(ctx context.Context, p *corev1.Pod) (string, error) {
	p = p.DeepCopy()
	p.Namespace = k.namespace

	k.logger.Info("creating pod", "generateName", p.GenerateName, "namespace", k.namespace)

	if err := k.client.Create(ctx, p); err != nil {
		k.logger.Error("failed to create pod in kubernetes", "generateName", p.GenerateName, "error", err)
		return "", fmt.Errorf("failed to create pod %s: %w", p.GenerateName, err)
	}

	k.logger.Info("pod created", "pod", p.Name)
	return p.Name, nil
}

func (k *KubernetesBackend) GetPodStatus(ctx context.Context, name string) (corev1.PodPhase, error) {
	p := &corev1.Pod{}
	if err := k.client.Get(ctx, client.ObjectKey{Name: name, Namespace: k.namespace}, p); err != nil {
		return "", fmt.Errorf("failed to get pod: %w", err)
	}

	if p.Status.Phase == "" {
		return corev1.PodPending, nil
	}
	return p.Status.Phase, nil
}

func finished(phase corev1.PodPhase) bool {
	return phase == corev1.PodSucceeded || phase == corev1.PodFailed
}

// WaitForPod polls the pod until it finishes, then copies its logs to out.
func (k *KubernetesBackend) WaitForPod(ctx context.Context, name string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	ticker := time.NewTicker(k.PollInterval)
	defer ticker.Stop()

	timeout := time.After(k.WaitTimeout)
	var last corev1.PodPhase

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("timeout waiting for pod %s to finish", name)
		case <-ticker.C:
			phase, err := k.GetPodStatus(ctx, name)
			if err != nil {
				k.logger.Error("failed to get pod status", "pod", name, "error", err)
				continue
			}

			if phase != last {
				k.logger.Info("pod status changed", "pod", name, "status", phase)
				last = phase
			}

			if !finished(phase) {
				continue
			}

			k.printPodLogs(ctx, name, out)

			if phase == corev1.PodFailed {
				return fmt.Errorf("%w: %s", ErrPodFailed, name)
			}
			k.logger.Info("pod completed successfully", "pod", name)
			return nil
		}
	}
}

func (k *KubernetesBackend) printPodLogs(ctx context.Context, name string, out io.Writer) {
	req := k.clientset.CoreV1().Pods(k.namespace).GetLogs(name, &corev1.PodLogOptions{})

	logs, err := req.Stream(ctx)
	if err != nil {
		k.logger.Error("failed to get logs", "pod", name, "error", err)
		return
	}
	defer logs.Close()

	k.logger.Info("=== Pod logs ===", "pod", name)

	scanner := bufio.NewScanner(logs)
	for scanner.Scan() {
		fmt.Fprintln(out, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		k.logger.Error("error reading logs", "error", err)
	}

	k.logger.Info("=== End of logs ===", "pod", name)
}
