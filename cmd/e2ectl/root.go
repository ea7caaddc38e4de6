package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/logging"
)

// app is the state shared by all subcommands, filled in before any of them run
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	baseURL   string
	outputDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "e2ectl",
		Short:         "Tooling around the browser end-to-end suites",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", "", "application base URL (overrides BASE_URL)")
	flags.StringVarP(&a.outputDir, "output-dir", "o", "", "output directory (overrides OUTPUT_DIR)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newConfigCmd(a),
		newCheckCmd(a),
		newProfilesCmd(a),
		newRegisterCmd(a),
		newReportCmd(a),
	)
	return root
}

// init resolves the configuration from the environment and the global flags
// and builds a console-only logger
func (a *app) init(cmd *cobra.Command) error {
	cfg := config.FromEnv()
	if a.baseURL != "" {
		cfg = cfg.WithBaseURL(a.baseURL)
	}
	if a.outputDir != "" {
		cfg = cfg.WithOutputDir(a.outputDir)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.New(config.LogConfig{Level: level}, cmd.ErrOrStderr()).Logger
	if err := cfg.Validate(); err != nil {
		a.logger.Warn("using built-in capability profiles", zap.Error(err))
	}
	return nil
}
