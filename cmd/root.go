package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/projectatomic/papr-trigger/internal/backend/k8s"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	ctrl "sigs.k8s.io/controller-runtime"
)

var (
	cfgFile string
	logger  *slog.Logger
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "papr-trigger",
		Short: "Schedule a PAPR test run for a GitHub branch or pull request",
		Long: `papr-trigger converts a GitHub event into a new PAPR pod. PAPR will then
create a new collection of jobs for each testsuite to be tested.

It is run by the papr-trigger-* CI jobs, but can just as easily be run
directly when hacking on PAPR, e.g.:

  papr-trigger --repo jlebon/papr-sandbox --branch tmp`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.papr-trigger.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("kubeconfig", "", "path to kubeconfig file")
	cmd.PersistentFlags().String("namespace", "", "kubernetes namespace (default is the current context's namespace)")
	cmd.PersistentFlags().Duration("poll-interval", k8s.DefaultPollInterval, "how often to poll the pod status when waiting")
	cmd.PersistentFlags().Duration("wait-timeout", k8s.DefaultWaitTimeout, "how long to wait for the pod to finish")
	bindFlags(cmd.PersistentFlags(), "log-level", "kubeconfig", "namespace", "poll-interval", "wait-timeout")

	addTriggerFlags(cmd)

	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	logger = newLogger(slog.LevelInfo)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".papr-trigger")
	}

	viper.SetEnvPrefix("PAPR_TRIGGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Info("using config file", "file", viper.ConfigFileUsed())
	}

	switch viper.GetString("log-level") {
	case "debug":
		logger = newLogger(slog.LevelDebug)
	case "warn":
		logger = newLogger(slog.LevelWarn)
	case "error":
		logger = newLogger(slog.LevelError)
	default:
		logger = newLogger(slog.LevelInfo)
	}

	ctrl.SetLogger(logr.FromSlogHandler(logger.Handler()))
}

// Logs go to stderr, stdout belongs to the cluster CLI and dry-run output.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func GetLogger() *slog.Logger {
	return logger
}
