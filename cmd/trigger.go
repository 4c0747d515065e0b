package cmd

import (
	"fmt"
	"os"

	"github.com/projectatomic/papr-trigger/internal/backend/k8s"
	"github.com/projectatomic/papr-trigger/internal/github"
	"github.com/projectatomic/papr-trigger/internal/pod"
	"github.com/projectatomic/papr-trigger/internal/request"
	"github.com/projectatomic/papr-trigger/internal/submit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addTriggerFlags(cmd *cobra.Command) {
	cmd.Flags().String("repo", "", "GitHub repo to test (OWNER/REPO)")
	cmd.Flags().String("branch", "", "GitHub branch to test")
	cmd.Flags().String("pull", "", "GitHub pull request ID to test")
	cmd.Flags().String("expected-sha1", "", "expected SHA1 of commit to test")
	cmd.Flags().String("suites", "", "pipe-separated list of testsuites to run (CONTEXT1|CONTEXT2|...)")

	mustMarkRequired(cmd, "repo")
	cmd.MarkFlagsMutuallyExclusive("branch", "pull")
	cmd.MarkFlagsOneRequired("branch", "pull")

	cmd.Flags().Bool("pin-head", false, "resolve --expected-sha1 from the current branch or pull request head on GitHub")
	cmd.Flags().Bool("dry-run", false, "print the pod manifest instead of creating it")
	cmd.Flags().StringP("output", "o", string(pod.FormatJSON), "manifest format for --dry-run (json, yaml)")
	cmd.Flags().Bool("wait", false, "wait for the pod to finish and print its logs (api submitter only)")

	cmd.Flags().String("submitter", submit.ModeCLI, "how to create the pod: 'cli' pipes the manifest to the cluster CLI, 'api' uses the API directly")
	cmd.Flags().String("kube-cli", submit.DefaultCLI, "cluster CLI used by the cli submitter")
	cmd.Flags().String("image", pod.DefaultImage, "PAPR container image")
	cmd.Flags().String("tooling-repo", pod.DefaultToolingRepo, "git repository PAPR is installed from")
	cmd.Flags().String("tooling-branch", pod.DefaultToolingBranch, "branch of the PAPR repository to install")
	cmd.Flags().String("service-account", pod.DefaultServiceAccount, "service account the pod runs as")
	cmd.Flags().String("config-map", pod.DefaultConfigMap, "config map mounted at "+pod.ConfigDir)
	cmd.Flags().String("token-secret", pod.DefaultTokenSecret, "secret holding the GitHub token")
	bindFlags(cmd.Flags(), "output", "submitter", "kube-cli", "image", "tooling-repo", "tooling-branch",
		"service-account", "config-map", "token-secret")

	cmd.RunE = runTrigger
}

func runTrigger(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	repo, _ := cmd.Flags().GetString("repo")
	branch, _ := cmd.Flags().GetString("branch")
	pull, _ := cmd.Flags().GetString("pull")
	expectedSHA1, _ := cmd.Flags().GetString("expected-sha1")
	suites, _ := cmd.Flags().GetString("suites")
	pinHead, _ := cmd.Flags().GetBool("pin-head")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	wait, _ := cmd.Flags().GetBool("wait")

	r, err := request.New(repo, branch, pull, expectedSHA1, suites)
	if err != nil {
		logger.Error("invalid arguments", "error", err)
		return err
	}

	mode := viper.GetString("submitter")
	if mode != submit.ModeCLI && mode != submit.ModeAPI {
		return fmt.Errorf("unknown submitter '%s', expected %s or %s", mode, submit.ModeCLI, submit.ModeAPI)
	}
	if wait && mode != submit.ModeAPI && !dryRun {
		return fmt.Errorf("--wait requires --submitter %s", submit.ModeAPI)
	}

	format, err := pod.ParseFormat(viper.GetString("output"))
	if err != nil {
		return err
	}

	settings, err := podSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if pinHead {
		resolver := github.New(ctx, os.Getenv("GITHUB_TOKEN"), logger)
		if err := resolver.Pin(ctx, r); err != nil {
			logger.Error("failed to resolve head commit", "error", err)
			return err
		}
	}

	p := pod.Build(r, settings)
	logger.Info("built papr pod", "repo", r.Repo, "target", r.TargetName(), "generateName", p.GenerateName, "suites", len(r.Suites))

	if dryRun {
		return pod.Encode(cmd.OutOrStdout(), p, format)
	}

	var (
		s       submit.Submitter
		backend *k8s.KubernetesBackend
	)

	switch mode {
	case submit.ModeCLI:
		c := submit.NewCommand(viper.GetString("kube-cli"), viper.GetString("namespace"), logger)
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		s = c
	case submit.ModeAPI:
		backend, err = newBackend()
		if err != nil {
			logger.Error("failed to create backend", "error", err)
			return err
		}
		s = backend
	}

	name, err := s.Submit(ctx, p)
	if err != nil {
		logger.Error("failed to create pod", "error", err)
		return err
	}

	if name != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "pod/%s created\n", name)
	}

	if wait && backend != nil {
		if err := backend.WaitForPod(ctx, name, cmd.OutOrStdout()); err != nil {
			logger.Error("pod did not succeed", "pod", name, "error", err)
			return err
		}
	}

	logger.Info("trigger completed", "pod", name)
	return nil
}

func podSettings() (pod.Settings, error) {
	var s pod.Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("failed to read pod settings: %w", err)
	}
	return s.WithDefaults(), nil
}
