package submit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/projectatomic/papr-trigger/internal/pod"
	corev1 "k8s.io/api/core/v1"
)

const DefaultCLI = "oc"

// Command submits pods by piping their JSON manifest into
// `<cli> create -f -`.
type Command struct {
	logger    *slog.Logger
	cli       string
	namespace string

	Stdout io.Writer
	Stderr io.Writer
}

func NewCommand(cli, namespace string, logger *slog.Logger) *Command {
	if cli == "" {
		cli = DefaultCLI
	}
	return &Command{
		logger:    logger,
		cli:       cli,
		namespace: namespace,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

func (c *Command) Args() []string {
	args := []string{"create", "-f", "-"}
	if c.namespace != "" {
		args = append(args, "--namespace", c.namespace)
	}
	return args
}

func (c *Command) Submit(ctx context.Context, p *corev1.Pod) (string, error) {
	data, err := pod.Marshal(p)
	if err != nil {
		return "", err
	}

	manifest, err := anonymousFile(data)
	if err != nil {
		return "", fmt.Errorf("failed to stage pod manifest: %w", err)
	}
	defer manifest.Close()

	c.logger.Info("creating pod", "cli", c.cli, "generateName", p.GenerateName, "namespace", c.namespace)

	cmd := exec.CommandContext(ctx, c.cli, c.Args()...)
	cmd.Stdin = manifest
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s create failed: %w", c.cli, err)
	}

	return "", nil
}

// anonymousFile writes data to a temporary file that is unlinked right
// away and returns it rewound to the start.
func anonymousFile(data []byte) (*os.File, error) {
	f, err := os.CreateTemp("", "papr-pod-")
	if err != nil {
		return nil, err
	}

	if err := os.Remove(f.Name()); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
