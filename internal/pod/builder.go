// Package pod builds the PAPR pod manifest for a trigger request.
package pod

import (
	"fmt"
	"strings"

	"github.com/projectatomic/papr-trigger/internal/request"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Build returns the pod that runs `papr runtest` for r. It has no side
// effects and the returned pod is not modified by this package again.
//
// Jobs would be a better fit, but the clusters we target do not support
// backoffLimit, so a bare pod with restartPolicy Never is used instead.
func Build(r *request.TriggerRequest, s Settings) *corev1.Pod {
	s = s.WithDefaults()

	container := corev1.Container{
		Name:            ContainerName,
		Image:           s.Image,
		ImagePullPolicy: corev1.PullAlways,
		SecurityContext: &corev1.SecurityContext{
			RunAsUser: int64Ptr(0),
		},
		Command: []string{"sh", "-c", bootstrapScript(s)},
		Args:    Args(r),
		Env: []corev1.EnvVar{
			{
				Name: "GITHUB_TOKEN",
				ValueFrom: &corev1.EnvVarSource{
					SecretKeyRef: &corev1.SecretKeySelector{
						LocalObjectReference: corev1.LocalObjectReference{
							Name: s.TokenSecret,
						},
						Key:      s.TokenSecretKey,
						Optional: boolPtr(false),
					},
				},
			},
		},
		VolumeMounts: []corev1.VolumeMount{
			{
				Name:      ConfigVolume,
				MountPath: ConfigDir,
			},
		},
	}

	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			GenerateName: GenerateName(r),
			Labels: map[string]string{
				"app": AppLabel,
			},
		},
		Spec: corev1.PodSpec{
			RestartPolicy:      corev1.RestartPolicyNever,
			ServiceAccountName: s.ServiceAccount,
			Containers:         []corev1.Container{container},
			Volumes: []corev1.Volume{
				{
					Name: ConfigVolume,
					VolumeSource: corev1.VolumeSource{
						ConfigMap: &corev1.ConfigMapVolumeSource{
							LocalObjectReference: corev1.LocalObjectReference{
								Name: s.ConfigMap,
							},
						},
					},
				},
			},
		},
	}
}

// GenerateName is the pod name prefix; the cluster appends a random suffix.
func GenerateName(r *request.TriggerRequest) string {
	return fmt.Sprintf("papr-%s-%s-", r.RepoName(), r.TargetName())
}

// Args returns the container arguments. The first element becomes $0 of
// the bootstrap script, the rest are forwarded to papr as "$@".
func Args(r *request.TriggerRequest) []string {
	args := []string{"papr", "--debug", "runtest", "--conf", ConfigFile, "--repo", r.Repo}

	if r.Branch != "" {
		args = append(args, "--branch", r.Branch)
	} else {
		args = append(args, "--pull", r.Pull)
	}

	if r.ExpectedSHA1 != "" {
		args = append(args, "--expected-sha1", r.ExpectedSHA1)
	}

	for _, suite := range r.Suites {
		args = append(args, "--suite", suite)
	}

	return args
}

func bootstrapScript(s Settings) string {
	script := []string{
		"cd /var/tmp",
		fmt.Sprintf("git clone -b %s -c user.name=papr -c user.email=papr@example.com %s papr", s.ToolingBranch, s.ToolingRepo),
		"pip3 install -I /var/tmp/papr",
		`papr "$@"`,
	}
	return strings.Join(script, "\n") + "\n"
}

func boolPtr(b bool) *bool {
	return &b
}

func int64Ptr(i int64) *int64 {
	return &i
}
