package main

import (
	"fmt"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath  string
	engine      string
	headless    bool
	userDataDir string
	userAgent   string
	logLevel    string
	logDir      string
	plain       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "llmmixer",
		Short: "LLMMixer - eight AI chat services side by side",
		Long: `LLMMixer tiles ChatGPT, Claude, DeepSeek, Gemini, Grok, Kimi, Mistral and
Qwen in one window. Each service gets its own browser pane; panes can be
hidden, resized and reordered, and the layout is restored on the next start.

Run without arguments to start the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logDir != "" {
				logging.SetDirectory(opts.logDir)
			}
			return logging.SetLevel(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "settings document path (default $LLMMIXER_CONFIG or <user config dir>/LLMMixer/settings.json)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&opts.logDir, "log-dir", "", "directory for session log files")

	f := root.Flags()
	f.StringVar(&opts.engine, "engine", "", fmt.Sprintf("browser engine: %s or %s", config.EnginePlaywright, config.EngineRod))
	f.BoolVar(&opts.headless, "headless", false, "run the browser without windows")
	f.StringVar(&opts.userDataDir, "user-data-dir", "", "browser profile directory")
	f.StringVar(&opts.userAgent, "user-agent", "", "user agent presented to the services")
	f.BoolVar(&opts.plain, "plain", false, "read line commands from stdin instead of running the full-screen shell")

	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// browserFlags returns the browser options given on the command line.
func (o *rootOptions) browserFlags(cmd *cobra.Command) config.BrowserOptions {
	flags := config.BrowserOptions{
		Engine:      o.engine,
		UserDataDir: o.userDataDir,
		UserAgent:   o.userAgent,
	}
	if cmd.Flags().Changed("headless") {
		h := o.headless
		flags.Headless = &h
	}
	return flags
}

// openStore opens the settings document named by --config, or the default.
func (o *rootOptions) openStore(logger config.Logger) (*config.FileStore, error) {
	return config.NewFileStore(o.configPath, logger)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "LLMMixer v%s\n", version)
		},
	}
}
